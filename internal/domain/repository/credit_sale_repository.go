package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

// CreditSaleRepository define el puerto de persistencia para ventas fiadas y sus renglones.
type CreditSaleRepository interface {
	Create(sale *entity.CreditSale) error
	CreateLineItem(item *entity.CreditSaleLineItem) error
	GetByID(id string) (*entity.CreditSale, error)
	// GetForUpdate bloquea la cabecera de la venta mientras se liquidan renglones.
	GetForUpdate(id string) (*entity.CreditSale, error)
	ListByCustomer(customerID string) ([]*entity.CreditSale, error)
	ListOpenByCustomer(customerID string) ([]*entity.CreditSale, error)
	ListAll() ([]*entity.CreditSale, error)
	ListLineItems(saleID string) ([]*entity.CreditSaleLineItem, error)
	// MarkLineItemPaid marca un renglón como pagado; no-op si ya lo estaba.
	MarkLineItemPaid(lineItemID string, paidAt time.Time) error
	// AdjustOutstanding resta amount del saldo pendiente de la venta.
	AdjustOutstanding(saleID string, delta decimal.Decimal) error
	DeleteLineItemsByCustomer(customerID string) error
	DeleteByCustomer(customerID string) error
}
