package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/domain/trade"
)

// SupplierPaidHandler projects a payment to a supplier into the ledger:
// accounts payable goes down, cash goes down.
type SupplierPaidHandler struct {
	ledgerAdapter
	logger *zap.Logger
}

// NewSupplierPaidHandler creates a new handler for supplier paid events
func NewSupplierPaidHandler(
	entryRepo accounting.JournalEntryRepository,
	accountRepo accounting.AccountRepository,
	accountService *AccountService,
	logger *zap.Logger,
) *SupplierPaidHandler {
	return &SupplierPaidHandler{
		ledgerAdapter: ledgerAdapter{
			entryRepo:      entryRepo,
			accountRepo:    accountRepo,
			accountService: accountService,
		},
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SupplierPaidHandler) EventTypes() []string {
	return []string{trade.EventTypeSupplierPaid}
}

// Handle posts one balanced journal entry for the supplier payment
func (h *SupplierPaidHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	paidEvent, ok := event.(*trade.SupplierPaidEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypeSupplierPaid),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeSupplierPaid, event.EventType())
	}

	h.logger.Info("processing supplier paid event for ledger posting",
		zap.String("payment_id", paidEvent.PaymentID.String()),
		zap.String("payment_number", paidEvent.PaymentNumber),
		zap.String("amount", paidEvent.Amount.String()),
	)

	exists, err := h.alreadyPosted(ctx, paidEvent.TenantID(), accounting.ReferenceTypeSupplierPayment, paidEvent.PaymentID)
	if err != nil {
		return fmt.Errorf("failed to check existing payment entry: %w", err)
	}
	if exists {
		h.logger.Warn("journal entry already exists for supplier payment, skipping",
			zap.String("payment_id", paidEvent.PaymentID.String()),
			zap.String("payment_number", paidEvent.PaymentNumber),
		)
		return nil
	}

	if !paidEvent.Amount.IsPositive() {
		h.logger.Info("skipping ledger posting for zero-value payment",
			zap.String("payment_id", paidEvent.PaymentID.String()),
		)
		return nil
	}

	accounts, err := h.systemAccounts(ctx, paidEvent.TenantID(),
		accounting.CodeAccountsPayable,
		accounting.CodeCash,
	)
	if err != nil {
		h.logger.Error("failed to resolve ledger accounts for supplier payment",
			zap.String("payment_id", paidEvent.PaymentID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to resolve ledger accounts: %w", err)
	}

	description := fmt.Sprintf("Supplier payment %s", paidEvent.PaymentNumber)
	entry, err := accounting.NewJournalEntry(paidEvent.TenantID(), paidEvent.OccurredAt(), description,
		[]accounting.LineInput{
			{
				AccountID:   accounts[accounting.CodeAccountsPayable].ID,
				Debit:       paidEvent.Amount,
				Description: description + " - payable settled",
			},
			{
				AccountID:   accounts[accounting.CodeCash].ID,
				Credit:      paidEvent.Amount,
				Description: description + " - cash out",
			},
		})
	if err != nil {
		h.logger.Error("failed to compose supplier payment journal entry",
			zap.String("payment_id", paidEvent.PaymentID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to compose supplier payment journal entry: %w", err)
	}
	entry.WithReference(accounting.ReferenceTypeSupplierPayment, paidEvent.PaymentID)

	if err := h.entryRepo.CreatePosted(ctx, entry); err != nil {
		h.logger.Error("failed to post supplier payment journal entry",
			zap.String("payment_id", paidEvent.PaymentID.String()),
			zap.String("payment_number", paidEvent.PaymentNumber),
			zap.Error(err),
		)
		return fmt.Errorf("failed to post supplier payment journal entry: %w", err)
	}

	h.logger.Info("supplier payment posted to ledger",
		zap.String("entry_id", entry.ID.String()),
		zap.String("entry_number", entry.EntryNumber),
		zap.String("payment_id", paidEvent.PaymentID.String()),
	)
	return nil
}
