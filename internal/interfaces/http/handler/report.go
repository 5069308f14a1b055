package handler

import (
	"github.com/gin-gonic/gin"

	accountingapp "github.com/vansales/backend/internal/application/accounting"
)

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *accountingapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *accountingapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TrialBalance handles GET /reports/trial-balance
func (h *ReportHandler) TrialBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	asOf, ok := parseDateQuery(c, "as_of")
	if !ok {
		h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
		return
	}
	source := accountingapp.TrialBalanceSource(c.Query("source"))

	report, err := h.reportService.TrialBalance(c.Request.Context(), tenantID, asOf, source)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// IncomeStatement handles GET /reports/income-statement
func (h *ReportHandler) IncomeStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	from, ok := parseDateQuery(c, "from")
	if !ok || from == nil {
		h.BadRequest(c, "Query parameter from is required, expected YYYY-MM-DD")
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok || to == nil {
		h.BadRequest(c, "Query parameter to is required, expected YYYY-MM-DD")
		return
	}

	report, err := h.reportService.IncomeStatement(c.Request.Context(), tenantID, *from, *to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// BalanceSheet handles GET /reports/balance-sheet
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	asOf, ok := parseDateQuery(c, "as_of")
	if !ok {
		h.BadRequest(c, "Invalid as_of date, expected YYYY-MM-DD")
		return
	}

	report, err := h.reportService.BalanceSheet(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Reconcile handles POST /reports/reconciliation
func (h *ReportHandler) Reconcile(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	result, err := h.reportService.ReconcileBalances(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
