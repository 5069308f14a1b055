package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/domain/trade"
)

// SaleCompletedHandler projects a completed sale into the ledger: the
// revenue side (cash and/or receivable against sales revenue) and, when a
// cost basis was computed, the cost side (COGS against inventory).
type SaleCompletedHandler struct {
	ledgerAdapter
	logger *zap.Logger
}

// NewSaleCompletedHandler creates a new handler for sale completed events
func NewSaleCompletedHandler(
	entryRepo accounting.JournalEntryRepository,
	accountRepo accounting.AccountRepository,
	accountService *AccountService,
	logger *zap.Logger,
) *SaleCompletedHandler {
	return &SaleCompletedHandler{
		ledgerAdapter: ledgerAdapter{
			entryRepo:      entryRepo,
			accountRepo:    accountRepo,
			accountService: accountService,
		},
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SaleCompletedHandler) EventTypes() []string {
	return []string{trade.EventTypeSaleCompleted}
}

// Handle posts one balanced journal entry for the sale
func (h *SaleCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	saleEvent, ok := event.(*trade.SaleCompletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypeSaleCompleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeSaleCompleted, event.EventType())
	}

	h.logger.Info("processing sale completed event for ledger posting",
		zap.String("sale_id", saleEvent.SaleID.String()),
		zap.String("sale_number", saleEvent.SaleNumber),
		zap.String("total_amount", saleEvent.TotalAmount.String()),
		zap.String("cost_basis", saleEvent.CostBasis.String()),
	)

	exists, err := h.alreadyPosted(ctx, saleEvent.TenantID(), accounting.ReferenceTypeSale, saleEvent.SaleID)
	if err != nil {
		return fmt.Errorf("failed to check existing sale entry: %w", err)
	}
	if exists {
		h.logger.Warn("journal entry already exists for sale, skipping",
			zap.String("sale_id", saleEvent.SaleID.String()),
			zap.String("sale_number", saleEvent.SaleNumber),
		)
		return nil
	}

	if saleEvent.TotalAmount.IsZero() && saleEvent.CostBasis.IsZero() {
		h.logger.Info("skipping ledger posting for zero-value sale",
			zap.String("sale_id", saleEvent.SaleID.String()),
		)
		return nil
	}

	accounts, err := h.systemAccounts(ctx, saleEvent.TenantID(),
		accounting.CodeCash,
		accounting.CodeAccountsReceivable,
		accounting.CodeSalesRevenue,
		accounting.CodeCOGS,
		accounting.CodeInventory,
	)
	if err != nil {
		h.logger.Error("failed to resolve ledger accounts for sale",
			zap.String("sale_id", saleEvent.SaleID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to resolve ledger accounts: %w", err)
	}

	description := fmt.Sprintf("Sale %s", saleEvent.SaleNumber)
	var lines []accounting.LineInput
	if saleEvent.AmountCollected.IsPositive() {
		lines = append(lines, accounting.LineInput{
			AccountID:   accounts[accounting.CodeCash].ID,
			Debit:       saleEvent.AmountCollected,
			Description: description + " - collected",
		})
	}
	if saleEvent.AmountOnCredit.IsPositive() {
		lines = append(lines, accounting.LineInput{
			AccountID:   accounts[accounting.CodeAccountsReceivable].ID,
			Debit:       saleEvent.AmountOnCredit,
			Description: description + " - on credit",
		})
	}
	if saleEvent.TotalAmount.IsPositive() {
		lines = append(lines, accounting.LineInput{
			AccountID:   accounts[accounting.CodeSalesRevenue].ID,
			Credit:      saleEvent.TotalAmount,
			Description: description,
		})
	}
	if saleEvent.CostBasis.IsPositive() {
		lines = append(lines,
			accounting.LineInput{
				AccountID:   accounts[accounting.CodeCOGS].ID,
				Debit:       saleEvent.CostBasis,
				Description: description + " - cost of goods sold",
			},
			accounting.LineInput{
				AccountID:   accounts[accounting.CodeInventory].ID,
				Credit:      saleEvent.CostBasis,
				Description: description + " - inventory relief",
			},
		)
	}

	entry, err := accounting.NewJournalEntry(saleEvent.TenantID(), saleEvent.OccurredAt(), description, lines)
	if err != nil {
		h.logger.Error("failed to compose sale journal entry",
			zap.String("sale_id", saleEvent.SaleID.String()),
			zap.String("sale_number", saleEvent.SaleNumber),
			zap.Error(err),
		)
		return fmt.Errorf("failed to compose sale journal entry: %w", err)
	}
	entry.WithReference(accounting.ReferenceTypeSale, saleEvent.SaleID)

	if err := h.entryRepo.CreatePosted(ctx, entry); err != nil {
		h.logger.Error("failed to post sale journal entry",
			zap.String("sale_id", saleEvent.SaleID.String()),
			zap.String("sale_number", saleEvent.SaleNumber),
			zap.Error(err),
		)
		return fmt.Errorf("failed to post sale journal entry: %w", err)
	}

	h.logger.Info("sale posted to ledger",
		zap.String("entry_id", entry.ID.String()),
		zap.String("entry_number", entry.EntryNumber),
		zap.String("sale_id", saleEvent.SaleID.String()),
		zap.String("total_debit", entry.TotalDebit.String()),
	)
	return nil
}
