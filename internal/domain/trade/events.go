package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vansales/backend/internal/domain/shared"
)

// Event types published by the trade collaborators (sales, purchasing,
// supplier payments) after their own primary write has committed. The
// accounting projection subscribes to these; its failures never roll the
// primary write back.
const (
	EventTypeSaleCompleted    = "trade.sale.completed"
	EventTypePurchaseReceived = "trade.purchase.received"
	EventTypeSupplierPaid     = "trade.supplier.paid"
)

// SaleCompletedEvent carries the monetary facts of a completed sale.
// CostBasis is the cost-of-goods-sold amount the seller computed via the
// valuation engine at the moment of sale.
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID          uuid.UUID       `json:"sale_id"`
	SaleNumber      string          `json:"sale_number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AmountCollected decimal.Decimal `json:"amount_collected"`
	AmountOnCredit  decimal.Decimal `json:"amount_on_credit"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
}

// NewSaleCompletedEvent creates a sale completed event
func NewSaleCompletedEvent(tenantID, saleID, customerID uuid.UUID, saleNumber string, total, collected, onCredit, costBasis decimal.Decimal) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, "Sale", saleID, tenantID),
		SaleID:          saleID,
		SaleNumber:      saleNumber,
		CustomerID:      customerID,
		TotalAmount:     total,
		AmountCollected: collected,
		AmountOnCredit:  onCredit,
		CostBasis:       costBasis,
	}
}

// PurchaseReceivedEvent carries the facts of a received supplier invoice
type PurchaseReceivedEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewPurchaseReceivedEvent creates a purchase received event
func NewPurchaseReceivedEvent(tenantID, purchaseID, supplierID uuid.UUID, purchaseNumber string, total decimal.Decimal) *PurchaseReceivedEvent {
	return &PurchaseReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseReceived, "Purchase", purchaseID, tenantID),
		PurchaseID:      purchaseID,
		PurchaseNumber:  purchaseNumber,
		SupplierID:      supplierID,
		TotalAmount:     total,
	}
}

// SupplierPaidEvent carries the facts of a payment made to a supplier
type SupplierPaidEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID       `json:"payment_id"`
	PaymentNumber string          `json:"payment_number"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewSupplierPaidEvent creates a supplier paid event
func NewSupplierPaidEvent(tenantID, paymentID, supplierID uuid.UUID, paymentNumber string, amount decimal.Decimal) *SupplierPaidEvent {
	return &SupplierPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierPaid, "SupplierPayment", paymentID, tenantID),
		PaymentID:       paymentID,
		PaymentNumber:   paymentNumber,
		SupplierID:      supplierID,
		Amount:          amount,
	}
}
