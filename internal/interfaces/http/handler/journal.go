package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	accountingapp "github.com/vansales/backend/internal/application/accounting"
)

// JournalHandler handles journal entry and account ledger API endpoints
type JournalHandler struct {
	BaseHandler
	journalService *accountingapp.JournalService
	ledgerService  *accountingapp.LedgerService
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(
	journalService *accountingapp.JournalService,
	ledgerService *accountingapp.LedgerService,
) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		ledgerService:  ledgerService,
	}
}

// Post handles POST /journal-entries
func (h *JournalHandler) Post(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	var req accountingapp.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.PostedBy = getUserID(c)

	entry, err := h.journalService.PostEntry(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// List handles GET /journal-entries
func (h *JournalHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	var filter accountingapp.EntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get handles GET /journal-entries/:id
func (h *JournalHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid journal entry ID")
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Reverse handles POST /journal-entries/:id/reverse
func (h *JournalHandler) Reverse(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid journal entry ID")
		return
	}

	var req accountingapp.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	req.ReversedBy = getUserID(c)

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reversal)
}

// Ledger handles GET /accounts/:id/ledger
func (h *JournalHandler) Ledger(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	accountID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	from, ok := parseDateQuery(c, "from")
	if !ok {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	ledger, err := h.ledgerService.AccountLedger(c.Request.Context(), tenantID, accountID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ledger)
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}
