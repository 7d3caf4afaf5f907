package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

var _ repository.CreditSaleRepository = (*CreditSaleRepo)(nil)

// CreditSaleRepo implementación de CreditSaleRepository (usable con pool o tx).
type CreditSaleRepo struct {
	q Querier
}

// NewCreditSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditSaleRepository(q Querier) *CreditSaleRepo {
	return &CreditSaleRepo{q: q}
}

const saleColumns = `id, customer_id, date, total, outstanding_balance, created_at, updated_at`

func scanSale(row pgx.Row) (*entity.CreditSale, error) {
	var s entity.CreditSale
	err := row.Scan(&s.ID, &s.CustomerID, &s.Date, &s.Total, &s.OutstandingBalance, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persiste la cabecera de una venta fiada.
func (r *CreditSaleRepo) Create(sale *entity.CreditSale) error {
	query := `
		INSERT INTO credit_sales (id, customer_id, date, total, outstanding_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.CustomerID, sale.Date, sale.Total, sale.OutstandingBalance,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit sale: %w", err)
	}
	return nil
}

// CreateLineItem persiste un renglón de venta fiada.
func (r *CreditSaleRepo) CreateLineItem(item *entity.CreditSaleLineItem) error {
	query := `
		INSERT INTO credit_sale_line_items (id, sale_id, product_id, product_name, quantity, unit_price, subtotal, paid, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.ProductName,
		item.Quantity, item.UnitPrice, item.Subtotal, item.Paid, item.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *CreditSaleRepo) GetByID(id string) (*entity.CreditSale, error) {
	query := `SELECT ` + saleColumns + ` FROM credit_sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get credit sale: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene la venta y bloquea la cabecera (SELECT FOR UPDATE)
// mientras se liquidan renglones.
func (r *CreditSaleRepo) GetForUpdate(id string) (*entity.CreditSale, error) {
	query := `SELECT ` + saleColumns + ` FROM credit_sales WHERE id = $1 FOR UPDATE`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get credit sale for update: %w", err)
	}
	return s, nil
}

// ListByCustomer lista todas las ventas de un cliente, recientes primero.
func (r *CreditSaleRepo) ListByCustomer(customerID string) ([]*entity.CreditSale, error) {
	query := `SELECT ` + saleColumns + ` FROM credit_sales WHERE customer_id = $1 ORDER BY date DESC`
	return r.listSales(query, customerID)
}

// ListOpenByCustomer lista las ventas del cliente con saldo pendiente.
func (r *CreditSaleRepo) ListOpenByCustomer(customerID string) ([]*entity.CreditSale, error) {
	query := `SELECT ` + saleColumns + `
		FROM credit_sales WHERE customer_id = $1 AND outstanding_balance > 0
		ORDER BY date DESC`
	return r.listSales(query, customerID)
}

// ListAll lista todas las ventas (diagnóstico de conciliación).
func (r *CreditSaleRepo) ListAll() ([]*entity.CreditSale, error) {
	query := `SELECT ` + saleColumns + ` FROM credit_sales ORDER BY date DESC`
	return r.listSales(query)
}

func (r *CreditSaleRepo) listSales(query string, args ...any) ([]*entity.CreditSale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credit sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditSale
	for rows.Next() {
		var s entity.CreditSale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.Date, &s.Total, &s.OutstandingBalance, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan credit sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListLineItems lista los renglones de una venta.
func (r *CreditSaleRepo) ListLineItems(saleID string) ([]*entity.CreditSaleLineItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal, paid, paid_at
		FROM credit_sale_line_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditSaleLineItem
	for rows.Next() {
		var item entity.CreditSaleLineItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal, &item.Paid, &item.PaidAt); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

// MarkLineItemPaid marca el renglón como pagado. El WHERE excluye renglones ya
// pagados, de modo que repetir la liquidación es un no-op a nivel de fila.
func (r *CreditSaleRepo) MarkLineItemPaid(lineItemID string, paidAt time.Time) error {
	query := `
		UPDATE credit_sale_line_items SET paid = true, paid_at = $2
		WHERE id = $1 AND paid = false`
	_, err := r.q.Exec(context.Background(), query, lineItemID, paidAt)
	if err != nil {
		return fmt.Errorf("mark line item paid: %w", err)
	}
	return nil
}

// AdjustOutstanding suma delta (normalmente negativo) al saldo pendiente de la venta.
func (r *CreditSaleRepo) AdjustOutstanding(saleID string, delta decimal.Decimal) error {
	query := `
		UPDATE credit_sales SET outstanding_balance = outstanding_balance + $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, saleID, delta)
	if err != nil {
		return fmt.Errorf("adjust sale outstanding: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// DeleteLineItemsByCustomer borra los renglones de todas las ventas del cliente
// (primer paso del borrado en cascada).
func (r *CreditSaleRepo) DeleteLineItemsByCustomer(customerID string) error {
	query := `
		DELETE FROM credit_sale_line_items
		WHERE sale_id IN (SELECT id FROM credit_sales WHERE customer_id = $1)`
	_, err := r.q.Exec(context.Background(), query, customerID)
	if err != nil {
		return fmt.Errorf("delete line items by customer: %w", err)
	}
	return nil
}

// DeleteByCustomer borra las cabeceras de venta del cliente.
func (r *CreditSaleRepo) DeleteByCustomer(customerID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM credit_sales WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("delete sales by customer: %w", err)
	}
	return nil
}
