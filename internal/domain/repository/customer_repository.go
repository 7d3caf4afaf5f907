package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (fiado).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente mientras se ajusta su saldo agregado.
	GetForUpdate(id string) (*entity.Customer, error)
	GetByTaxID(taxID string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	// AdjustBalance suma delta (puede ser negativo) al saldo pendiente del cliente.
	AdjustBalance(customerID string, delta decimal.Decimal) error
	Delete(id string) error
}
