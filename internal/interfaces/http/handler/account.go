package handler

import (
	"github.com/gin-gonic/gin"

	accountingapp "github.com/vansales/backend/internal/application/accounting"
)

// AccountHandler handles chart-of-accounts API endpoints
type AccountHandler struct {
	BaseHandler
	accountService *accountingapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *accountingapp.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// List handles GET /accounts
func (h *AccountHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	var filter accountingapp.AccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// Get handles GET /accounts/:id
func (h *AccountHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Create handles POST /accounts
func (h *AccountHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	var req accountingapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// Update handles PUT /accounts/:id
func (h *AccountHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req accountingapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Delete handles DELETE /accounts/:id
func (h *AccountHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Bootstrap handles POST /accounts/bootstrap: it creates any missing
// default-chart accounts and reports the ones it created.
func (h *AccountHandler) Bootstrap(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	created, err := h.accountService.EnsureDefaultAccounts(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"created": created})
}
