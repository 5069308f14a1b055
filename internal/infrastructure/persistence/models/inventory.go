package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vansales/backend/internal/domain/inventory"
	"github.com/vansales/backend/internal/domain/shared/strategy"
)

// CostHistoryModel is the persistence model for one cost observation.
type CostHistoryModel struct {
	TenantAggregateModel
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_cost_history_tenant_product,priority:2"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RecordedAt time.Time       `gorm:"not null;index:idx_cost_history_tenant_product,priority:3"`
	Sequence   int64           `gorm:"not null;default:0;index:idx_cost_history_tenant_product,priority:4"`
	Source     string          `gorm:"type:varchar(30)"`
}

// TableName returns the table name for GORM
func (CostHistoryModel) TableName() string {
	return "cost_history"
}

// ToDomain converts the persistence model to a domain CostHistoryEntry.
func (m *CostHistoryModel) ToDomain() *inventory.CostHistoryEntry {
	entry := &inventory.CostHistoryEntry{
		ProductID:  m.ProductID,
		UnitCost:   m.UnitCost,
		RecordedAt: m.RecordedAt,
		Sequence:   m.Sequence,
		Source:     m.Source,
	}
	m.PopulateTenantAggregateRoot(&entry.TenantAggregateRoot)
	return entry
}

// FromDomain populates the persistence model from a domain CostHistoryEntry.
func (m *CostHistoryModel) FromDomain(e *inventory.CostHistoryEntry) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.ProductID = e.ProductID
	m.UnitCost = e.UnitCost
	m.RecordedAt = e.RecordedAt
	m.Sequence = e.Sequence
	m.Source = e.Source
}

// ValuationSettingModel is the persistence model for a tenant's costing policy.
type ValuationSettingModel struct {
	TenantAggregateModel
	Method strategy.CostMethod `gorm:"type:varchar(30);not null;default:'fifo'"`
}

// TableName returns the table name for GORM
func (ValuationSettingModel) TableName() string {
	return "valuation_settings"
}

// ToDomain converts the persistence model to a domain ValuationSetting.
func (m *ValuationSettingModel) ToDomain() *inventory.ValuationSetting {
	setting := &inventory.ValuationSetting{
		Method: m.Method,
	}
	m.PopulateTenantAggregateRoot(&setting.TenantAggregateRoot)
	return setting
}

// FromDomain populates the persistence model from a domain ValuationSetting.
func (m *ValuationSettingModel) FromDomain(s *inventory.ValuationSetting) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.Method = s.Method
}
