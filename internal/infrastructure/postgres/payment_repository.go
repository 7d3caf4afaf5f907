package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
// Los abonos son append-only; solo se borran en el borrado en cascada del cliente.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un abono.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, customer_id, sale_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CustomerID, payment.SaleID, payment.Amount, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListBySale lista los abonos de una venta.
func (r *PaymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, customer_id, sale_id, amount, created_at
		FROM payments WHERE sale_id = $1 ORDER BY created_at`
	return r.list(query, saleID)
}

// ListByCustomer lista los abonos de un cliente.
func (r *PaymentRepo) ListByCustomer(customerID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, customer_id, sale_id, amount, created_at
		FROM payments WHERE customer_id = $1 ORDER BY created_at`
	return r.list(query, customerID)
}

func (r *PaymentRepo) list(query string, args ...any) ([]*entity.Payment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.SaleID, &p.Amount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DeleteByCustomer borra los abonos del cliente (borrado en cascada).
func (r *PaymentRepo) DeleteByCustomer(customerID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete payments by customer: %w", err)
	}
	return nil
}
