package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vansales/backend/internal/domain/accounting"
)

// AccountModel is the persistence model for the Account aggregate root.
type AccountModel struct {
	TenantAggregateModel
	Code     string                 `gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_tenant_code,priority:2"`
	Name     string                 `gorm:"type:varchar(255);not null"`
	Type     accounting.AccountType `gorm:"type:varchar(20);not null;index:idx_accounts_tenant_type,priority:2"`
	Category string                 `gorm:"type:varchar(50)"`
	ParentID *uuid.UUID             `gorm:"type:uuid;index"`
	IsSystem bool                   `gorm:"not null;default:false"`
	IsActive bool                   `gorm:"not null;default:true"`
	Balance  decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account.
func (m *AccountModel) ToDomain() *accounting.Account {
	account := &accounting.Account{
		Code:     m.Code,
		Name:     m.Name,
		Type:     m.Type,
		Category: m.Category,
		ParentID: m.ParentID,
		IsSystem: m.IsSystem,
		IsActive: m.IsActive,
		Balance:  m.Balance,
	}
	m.PopulateTenantAggregateRoot(&account.TenantAggregateRoot)
	return account
}

// FromDomain populates the persistence model from a domain Account.
func (m *AccountModel) FromDomain(a *accounting.Account) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Code = a.Code
	m.Name = a.Name
	m.Type = a.Type
	m.Category = a.Category
	m.ParentID = a.ParentID
	m.IsSystem = a.IsSystem
	m.IsActive = a.IsActive
	m.Balance = a.Balance
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *accounting.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// JournalEntryModel is the persistence model for the JournalEntry aggregate root.
type JournalEntryModel struct {
	TenantAggregateModel
	EntryNumber     string                  `gorm:"type:varchar(30);not null;uniqueIndex:idx_journal_entries_tenant_number,priority:2"`
	EntryDate       time.Time               `gorm:"not null;index:idx_journal_entries_tenant_date,priority:2"`
	Description     string                  `gorm:"type:text"`
	ReferenceType   string                  `gorm:"type:varchar(30);index:idx_journal_entries_tenant_reference,priority:2"`
	ReferenceID     *uuid.UUID              `gorm:"type:uuid;index:idx_journal_entries_tenant_reference,priority:3"`
	TotalDebit      decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCredit     decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	IsPosted        bool                    `gorm:"not null;default:true"`
	IsReversed      bool                    `gorm:"not null;default:false"`
	ReversalEntryID *uuid.UUID              `gorm:"type:uuid"`
	PostedBy        *uuid.UUID              `gorm:"type:uuid"`
	Lines           []JournalEntryLineModel `gorm:"foreignKey:JournalEntryID;references:ID"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry.
func (m *JournalEntryModel) ToDomain() *accounting.JournalEntry {
	entry := &accounting.JournalEntry{
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		IsPosted:        m.IsPosted,
		IsReversed:      m.IsReversed,
		ReversalEntryID: m.ReversalEntryID,
		PostedBy:        m.PostedBy,
		Lines:           make([]accounting.JournalEntryLine, len(m.Lines)),
	}
	m.PopulateTenantAggregateRoot(&entry.TenantAggregateRoot)
	for i := range m.Lines {
		entry.Lines[i] = m.Lines[i].ToDomain()
	}
	return entry
}

// FromDomain populates the persistence model from a domain JournalEntry.
func (m *JournalEntryModel) FromDomain(e *accounting.JournalEntry) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.EntryNumber = e.EntryNumber
	m.EntryDate = e.EntryDate
	m.Description = e.Description
	m.ReferenceType = e.ReferenceType
	m.ReferenceID = e.ReferenceID
	m.TotalDebit = e.TotalDebit
	m.TotalCredit = e.TotalCredit
	m.IsPosted = e.IsPosted
	m.IsReversed = e.IsReversed
	m.ReversalEntryID = e.ReversalEntryID
	m.PostedBy = e.PostedBy
	m.Lines = make([]JournalEntryLineModel, len(e.Lines))
	for i := range e.Lines {
		m.Lines[i].FromDomain(e.Lines[i])
	}
}

// JournalEntryModelFromDomain creates a new persistence model from a domain JournalEntry.
func JournalEntryModelFromDomain(e *accounting.JournalEntry) *JournalEntryModel {
	m := &JournalEntryModel{}
	m.FromDomain(e)
	return m
}

// JournalEntryLineModel is the persistence model for one entry leg.
type JournalEntryLineModel struct {
	BaseModel
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Debit          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Credit         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Description    string          `gorm:"type:text"`
	Position       int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (JournalEntryLineModel) TableName() string {
	return "journal_entry_lines"
}

// ToDomain converts the persistence model to a domain line.
func (m *JournalEntryLineModel) ToDomain() accounting.JournalEntryLine {
	return accounting.JournalEntryLine{
		ID:             m.ID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
		Description:    m.Description,
		Position:       m.Position,
	}
}

// FromDomain populates the persistence model from a domain line.
func (m *JournalEntryLineModel) FromDomain(l accounting.JournalEntryLine) {
	m.ID = l.ID
	m.JournalEntryID = l.JournalEntryID
	m.AccountID = l.AccountID
	m.Debit = l.Debit
	m.Credit = l.Credit
	m.Description = l.Description
	m.Position = l.Position
}
