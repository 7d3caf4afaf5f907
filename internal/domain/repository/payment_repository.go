package repository

import "github.com/tu-usuario/fiado-ledger/internal/domain/entity"

// PaymentRepository define el puerto para los abonos (append-only).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListBySale(saleID string) ([]*entity.Payment, error)
	ListByCustomer(customerID string) ([]*entity.Payment, error)
	DeleteByCustomer(customerID string) error
}
