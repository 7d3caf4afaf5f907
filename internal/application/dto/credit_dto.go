package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditSaleItemRequest un renglón solicitado en una venta fiada.
// El precio unitario no se acepta del cliente: se congela el del catálogo.
type CreditSaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateCreditSaleRequest body para POST /api/credit/sales.
type CreateCreditSaleRequest struct {
	CustomerID string                  `json:"customer_id"`
	Items      []CreditSaleItemRequest `json:"items"`
}

// CreditSaleLineItemResponse renglón de venta con su estado de pago.
type CreditSaleLineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Paid        bool            `json:"paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}

// CreditSaleResponse cabecera de venta fiada con sus renglones.
type CreditSaleResponse struct {
	ID                 string                       `json:"id"`
	CustomerID         string                       `json:"customer_id"`
	Date               time.Time                    `json:"date"`
	Total              decimal.Decimal              `json:"total"`
	OutstandingBalance decimal.Decimal              `json:"outstanding_balance"`
	Items              []CreditSaleLineItemResponse `json:"items,omitempty"`
}

// MarkPaidRequest body para POST /api/credit/sales/:id/payments.
// IDs ya liquidados o inexistentes se ignoran (la operación es idempotente).
type MarkPaidRequest struct {
	LineItemIDs []string `json:"line_item_ids"`
}

// MarkPaidResponse resultado de liquidar renglones.
type MarkPaidResponse struct {
	AmountSettled decimal.Decimal `json:"amount_settled"`
	PaymentID     string          `json:"payment_id,omitempty"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Phone string `json:"phone"`
}

// CustomerResponse cliente con su saldo pendiente agregado.
type CustomerResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	TaxID              string          `json:"tax_id"`
	Phone              string          `json:"phone"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// PaymentResponse un abono registrado.
type PaymentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	SaleID     string          `json:"sale_id"`
	Amount     decimal.Decimal `json:"amount"`
	CreatedAt  time.Time       `json:"created_at"`
}
