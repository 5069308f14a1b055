package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vansales/backend/internal/domain/accounting"
)

// ledgerAdapter is the shared plumbing of the event adapters: each one
// composes a balanced entry for one business event type and posts it, with
// the originating document as the idempotency reference.
type ledgerAdapter struct {
	entryRepo      accounting.JournalEntryRepository
	accountRepo    accounting.AccountRepository
	accountService *AccountService
}

// alreadyPosted reports whether an entry for the document exists. Events
// can be redelivered; the reference check makes every adapter idempotent.
func (a *ledgerAdapter) alreadyPosted(ctx context.Context, tenantID uuid.UUID, refType string, refID uuid.UUID) (bool, error) {
	return a.entryRepo.ExistsByReference(ctx, tenantID, refType, refID)
}

// systemAccounts resolves the named well-known accounts, bootstrapping the
// default chart once if any are missing.
func (a *ledgerAdapter) systemAccounts(ctx context.Context, tenantID uuid.UUID, codes ...string) (map[string]*accounting.Account, error) {
	accounts, err := a.accountRepo.FindByCodesForTenant(ctx, tenantID, codes)
	if err != nil {
		return nil, err
	}
	if len(accounts) < len(codes) {
		if _, err := a.accountService.EnsureDefaultAccounts(ctx, tenantID); err != nil {
			return nil, err
		}
		accounts, err = a.accountRepo.FindByCodesForTenant(ctx, tenantID, codes)
		if err != nil {
			return nil, err
		}
	}
	for _, code := range codes {
		if _, ok := accounts[code]; !ok {
			return nil, fmt.Errorf("system account %s missing for tenant %s", code, tenantID)
		}
	}
	return accounts, nil
}
