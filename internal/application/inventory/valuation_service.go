package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vansales/backend/internal/domain/inventory"
	"github.com/vansales/backend/internal/domain/shared"
	"github.com/vansales/backend/internal/domain/shared/strategy"
	coststrategy "github.com/vansales/backend/internal/infrastructure/strategy/cost"
)

// ValuationService resolves product costs from the tenant's cost history
// using the tenant's configured costing method.
type ValuationService struct {
	settingRepo inventory.ValuationSettingRepository
	historyRepo inventory.CostHistoryRepository
}

// NewValuationService creates a new valuation service
func NewValuationService(
	settingRepo inventory.ValuationSettingRepository,
	historyRepo inventory.CostHistoryRepository,
) *ValuationService {
	return &ValuationService{
		settingRepo: settingRepo,
		historyRepo: historyRepo,
	}
}

// ValuationSettingResponse represents the tenant's costing policy
type ValuationSettingResponse struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	Method    string    `json:"method"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateValuationSettingRequest switches the tenant's costing method
type UpdateValuationSettingRequest struct {
	Method string `json:"method" binding:"required"`
}

// RecordCostRequest represents a new cost observation for a product
type RecordCostRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost" binding:"required"`
	RecordedAt *time.Time      `json:"recorded_at"`
	Source     string          `json:"source"`
}

// CostHistoryEntryResponse represents one recorded observation
type CostHistoryEntryResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	RecordedAt time.Time       `json:"recorded_at"`
	Sequence   int64           `json:"sequence"`
	Source     string          `json:"source,omitempty"`
}

// ProductCostResponse is the resolved cost for one product in one unit
type ProductCostResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	UnitType    string          `json:"unit_type"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Method      string          `json:"method"`
	FromHistory bool            `json:"from_history"`
}

// GetSettings returns the tenant's costing policy, creating the default
// lazily on first access.
func (s *ValuationService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*ValuationSettingResponse, error) {
	setting, err := s.loadOrCreateSetting(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toValuationSettingResponse(setting), nil
}

// UpdateSettings switches the tenant's costing method. The switch only
// affects future resolutions; recorded history is untouched.
func (s *ValuationService) UpdateSettings(ctx context.Context, tenantID uuid.UUID, req UpdateValuationSettingRequest) (*ValuationSettingResponse, error) {
	method, ok := strategy.ParseCostMethod(req.Method)
	if !ok {
		return nil, shared.NewDomainError("INVALID_COST_METHOD", "Costing method is not valid")
	}

	setting, err := s.loadOrCreateSetting(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := setting.SetMethod(method); err != nil {
		return nil, err
	}
	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	return toValuationSettingResponse(setting), nil
}

// RecordCost appends a cost observation to the product's history
func (s *ValuationService) RecordCost(ctx context.Context, tenantID uuid.UUID, req RecordCostRequest) (*CostHistoryEntryResponse, error) {
	recordedAt := time.Time{}
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	entry, err := inventory.NewCostHistoryEntry(tenantID, req.ProductID, req.UnitCost, recordedAt, req.Source)
	if err != nil {
		return nil, err
	}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	return &CostHistoryEntryResponse{
		ID:         entry.ID,
		ProductID:  entry.ProductID,
		UnitCost:   entry.UnitCost,
		RecordedAt: entry.RecordedAt,
		Sequence:   entry.Sequence,
		Source:     entry.Source,
	}, nil
}

// CostHistory returns a product's observations oldest-first
func (s *ValuationService) CostHistory(ctx context.Context, tenantID, productID uuid.UUID) ([]CostHistoryEntryResponse, error) {
	entries, err := s.historyRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]CostHistoryEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = CostHistoryEntryResponse{
			ID:         entry.ID,
			ProductID:  entry.ProductID,
			UnitCost:   entry.UnitCost,
			RecordedAt: entry.RecordedAt,
			Sequence:   entry.Sequence,
			Source:     entry.Source,
		}
	}
	return responses, nil
}

// ProductUnitCost resolves the cost of one product unit using the tenant's
// costing method, falling back to the product's static cost when the
// history cannot answer. Box costs derive from the piece cost when the
// units-per-box factor is known.
func (s *ValuationService) ProductUnitCost(ctx context.Context, tenantID, productID uuid.UUID, unitType inventory.UnitType, facts inventory.ProductCostFacts) (*ProductCostResponse, error) {
	if !unitType.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT_TYPE", "Unit type is not valid")
	}

	setting, err := s.loadOrCreateSetting(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	observations := make([]strategy.CostObservation, len(entries))
	for i, entry := range entries {
		observations[i] = strategy.CostObservation{
			ID:         entry.ID.String(),
			ProductID:  entry.ProductID.String(),
			UnitCost:   entry.UnitCost,
			RecordedAt: entry.RecordedAt,
			Sequence:   entry.Sequence,
			Source:     entry.Source,
		}
	}

	resolver := coststrategy.ForMethod(setting.Method)
	result, err := resolver.ResolveUnitCost(ctx, strategy.CostContext{
		TenantID:  tenantID.String(),
		ProductID: productID.String(),
		Date:      time.Now(),
	}, observations)
	if err != nil {
		return nil, err
	}

	pieceCost := result.UnitCost
	fromHistory := result.FromHistory
	if !fromHistory {
		pieceCost = facts.UnitCost
	}

	response := &ProductCostResponse{
		ProductID:   productID,
		UnitType:    string(unitType),
		UnitCost:    pieceCost,
		Method:      result.Method.String(),
		FromHistory: fromHistory,
	}

	if unitType == inventory.UnitTypeBox {
		switch {
		case fromHistory && facts.UnitsPerBox.IsPositive():
			response.UnitCost = pieceCost.Mul(facts.UnitsPerBox)
		case facts.BoxCost.IsPositive():
			response.UnitCost = facts.BoxCost
			response.FromHistory = false
		case facts.UnitsPerBox.IsPositive():
			response.UnitCost = pieceCost.Mul(facts.UnitsPerBox)
		default:
			response.UnitCost = pieceCost
		}
	}

	return response, nil
}

// loadOrCreateSetting returns the tenant's setting, creating and persisting
// the default on first access.
func (s *ValuationService) loadOrCreateSetting(ctx context.Context, tenantID uuid.UUID) (*inventory.ValuationSetting, error) {
	setting, err := s.settingRepo.FindByTenant(ctx, tenantID)
	if err == nil {
		return setting, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	setting = inventory.NewValuationSetting(tenantID)
	if err := s.settingRepo.Save(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func toValuationSettingResponse(setting *inventory.ValuationSetting) *ValuationSettingResponse {
	return &ValuationSettingResponse{
		TenantID:  setting.TenantID,
		Method:    setting.Method.String(),
		UpdatedAt: setting.UpdatedAt,
	}
}
