package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/vansales/backend/internal/application/inventory"
	"github.com/vansales/backend/internal/domain/inventory"
)

// ValuationHandler handles cost valuation API endpoints
type ValuationHandler struct {
	BaseHandler
	valuationService *inventoryapp.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationService *inventoryapp.ValuationService) *ValuationHandler {
	return &ValuationHandler{valuationService: valuationService}
}

// GetSettings handles GET /valuation/settings
func (h *ValuationHandler) GetSettings(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	setting, err := h.valuationService.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// UpdateSettings handles PUT /valuation/settings
func (h *ValuationHandler) UpdateSettings(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	var req inventoryapp.UpdateValuationSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	setting, err := h.valuationService.UpdateSettings(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// RecordCost handles POST /valuation/costs
func (h *ValuationHandler) RecordCost(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}

	var req inventoryapp.RecordCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	entry, err := h.valuationService.RecordCost(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// CostHistory handles GET /valuation/products/:id/history
func (h *ValuationHandler) CostHistory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	entries, err := h.valuationService.CostHistory(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// productCostQuery carries the static product cost facts the caller knows.
// The catalog is owned by another service, so they travel on the request.
type productCostQuery struct {
	UnitType    string          `form:"unit_type"`
	UnitCost    decimal.Decimal `form:"unit_cost"`
	BoxCost     decimal.Decimal `form:"box_cost"`
	UnitsPerBox decimal.Decimal `form:"units_per_box"`
}

// ProductCost handles GET /valuation/products/:id/cost
func (h *ValuationHandler) ProductCost(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant could not be resolved")
		return
	}
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var query productCostQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}

	unitType := inventory.UnitTypePiece
	if query.UnitType != "" {
		unitType = inventory.UnitType(strings.ToUpper(query.UnitType))
	}
	facts := inventory.ProductCostFacts{
		UnitCost:    query.UnitCost,
		BoxCost:     query.BoxCost,
		UnitsPerBox: query.UnitsPerBox,
	}

	cost, err := h.valuationService.ProductUnitCost(c.Request.Context(), tenantID, productID, unitType, facts)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cost)
}
