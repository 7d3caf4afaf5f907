package dto

import "github.com/shopspring/decimal"

// CustomerHistoryResponse historial completo de fiado de un cliente.
type CustomerHistoryResponse struct {
	Customer CustomerResponse     `json:"customer"`
	Sales    []CreditSaleResponse `json:"sales"`
	Payments []PaymentResponse    `json:"payments"`
}

// ReconciliationFinding una discrepancia entre un agregado y la suma de sus componentes.
type ReconciliationFinding struct {
	Kind       string          `json:"kind"` // sale_balance | customer_balance
	EntityID   string          `json:"entity_id"`
	Stored     decimal.Decimal `json:"stored"`
	Recomputed decimal.Decimal `json:"recomputed"`
}

// ReconciliationReport resultado del diagnóstico de invariantes.
type ReconciliationReport struct {
	Consistent bool                    `json:"consistent"`
	Findings   []ReconciliationFinding `json:"findings,omitempty"`
}
