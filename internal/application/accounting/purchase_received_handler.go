package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vansales/backend/internal/domain/accounting"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/domain/trade"
)

// PurchaseReceivedHandler projects a received supplier invoice into the
// ledger: inventory goes up, accounts payable goes up.
type PurchaseReceivedHandler struct {
	ledgerAdapter
	logger *zap.Logger
}

// NewPurchaseReceivedHandler creates a new handler for purchase received events
func NewPurchaseReceivedHandler(
	entryRepo accounting.JournalEntryRepository,
	accountRepo accounting.AccountRepository,
	accountService *AccountService,
	logger *zap.Logger,
) *PurchaseReceivedHandler {
	return &PurchaseReceivedHandler{
		ledgerAdapter: ledgerAdapter{
			entryRepo:      entryRepo,
			accountRepo:    accountRepo,
			accountService: accountService,
		},
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PurchaseReceivedHandler) EventTypes() []string {
	return []string{trade.EventTypePurchaseReceived}
}

// Handle posts one balanced journal entry for the supplier invoice
func (h *PurchaseReceivedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	purchaseEvent, ok := event.(*trade.PurchaseReceivedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypePurchaseReceived),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypePurchaseReceived, event.EventType())
	}

	h.logger.Info("processing purchase received event for ledger posting",
		zap.String("purchase_id", purchaseEvent.PurchaseID.String()),
		zap.String("purchase_number", purchaseEvent.PurchaseNumber),
		zap.String("total_amount", purchaseEvent.TotalAmount.String()),
	)

	exists, err := h.alreadyPosted(ctx, purchaseEvent.TenantID(), accounting.ReferenceTypePurchase, purchaseEvent.PurchaseID)
	if err != nil {
		return fmt.Errorf("failed to check existing purchase entry: %w", err)
	}
	if exists {
		h.logger.Warn("journal entry already exists for purchase, skipping",
			zap.String("purchase_id", purchaseEvent.PurchaseID.String()),
			zap.String("purchase_number", purchaseEvent.PurchaseNumber),
		)
		return nil
	}

	if !purchaseEvent.TotalAmount.IsPositive() {
		h.logger.Info("skipping ledger posting for zero-value purchase",
			zap.String("purchase_id", purchaseEvent.PurchaseID.String()),
		)
		return nil
	}

	accounts, err := h.systemAccounts(ctx, purchaseEvent.TenantID(),
		accounting.CodeInventory,
		accounting.CodeAccountsPayable,
	)
	if err != nil {
		h.logger.Error("failed to resolve ledger accounts for purchase",
			zap.String("purchase_id", purchaseEvent.PurchaseID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to resolve ledger accounts: %w", err)
	}

	description := fmt.Sprintf("Purchase %s", purchaseEvent.PurchaseNumber)
	entry, err := accounting.NewJournalEntry(purchaseEvent.TenantID(), purchaseEvent.OccurredAt(), description,
		[]accounting.LineInput{
			{
				AccountID:   accounts[accounting.CodeInventory].ID,
				Debit:       purchaseEvent.TotalAmount,
				Description: description + " - goods received",
			},
			{
				AccountID:   accounts[accounting.CodeAccountsPayable].ID,
				Credit:      purchaseEvent.TotalAmount,
				Description: description + " - supplier invoice",
			},
		})
	if err != nil {
		h.logger.Error("failed to compose purchase journal entry",
			zap.String("purchase_id", purchaseEvent.PurchaseID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to compose purchase journal entry: %w", err)
	}
	entry.WithReference(accounting.ReferenceTypePurchase, purchaseEvent.PurchaseID)

	if err := h.entryRepo.CreatePosted(ctx, entry); err != nil {
		h.logger.Error("failed to post purchase journal entry",
			zap.String("purchase_id", purchaseEvent.PurchaseID.String()),
			zap.String("purchase_number", purchaseEvent.PurchaseNumber),
			zap.Error(err),
		)
		return fmt.Errorf("failed to post purchase journal entry: %w", err)
	}

	h.logger.Info("purchase posted to ledger",
		zap.String("entry_id", entry.ID.String()),
		zap.String("entry_number", entry.EntryNumber),
		zap.String("purchase_id", purchaseEvent.PurchaseID.String()),
	)
	return nil
}
