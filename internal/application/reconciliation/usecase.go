package reconciliation

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/application/ports"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// ReconciliationUseCase es el componente de solo lectura: consultas derivadas
// para la capa de presentación y el diagnóstico que recalcula cada agregado
// desde sus componentes. No tiene permisos de mutación.
type ReconciliationUseCase struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.CreditSaleRepository
	paymentRepo  repository.PaymentRepository
	cache        ports.ProductCache
}

// NewReconciliationUseCase construye el caso de uso.
func NewReconciliationUseCase(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.CreditSaleRepository,
	paymentRepo repository.PaymentRepository,
	cache ports.ProductCache,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		cache:        cache,
	}
}

// GetProduct devuelve la vista del producto que posee este núcleo (cantidad y
// precios), con caché read-through: miss -> BD -> Set.
func (uc *ReconciliationUseCase) GetProduct(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	product, err := uc.cache.Get(ctx, productID)
	if err != nil || product == nil {
		product, err = uc.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		_ = uc.cache.Set(ctx, product)
	}
	return productToResponse(product), nil
}

// GetOpenSalesForCustomer devuelve las ventas del cliente con saldo pendiente.
func (uc *ReconciliationUseCase) GetOpenSalesForCustomer(ctx context.Context, customerID string) ([]*dto.CreditSaleResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	sales, err := uc.saleRepo.ListOpenByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return uc.salesWithLines(sales)
}

// GetFullHistoryForCustomer devuelve el historial completo: cliente, todas sus
// ventas (abiertas y saldadas) con renglones, y todos sus abonos.
func (uc *ReconciliationUseCase) GetFullHistoryForCustomer(ctx context.Context, customerID string) (*dto.CustomerHistoryResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}
	sales, err := uc.saleRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	saleResponses, err := uc.salesWithLines(sales)
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	history := &dto.CustomerHistoryResponse{
		Customer: dto.CustomerResponse{
			ID:                 customer.ID,
			Name:               customer.Name,
			TaxID:              customer.TaxID,
			Phone:              customer.Phone,
			OutstandingBalance: customer.OutstandingBalance,
		},
	}
	for _, s := range saleResponses {
		history.Sales = append(history.Sales, *s)
	}
	for _, p := range payments {
		history.Payments = append(history.Payments, dto.PaymentResponse{
			ID:         p.ID,
			CustomerID: p.CustomerID,
			SaleID:     p.SaleID,
			Amount:     p.Amount,
			CreatedAt:  p.CreatedAt,
		})
	}
	return history, nil
}

// LowStockAlerts devuelve los productos en o por debajo de su stock mínimo.
// Lee directo de la BD: las alertas no pasan por la caché.
func (uc *ReconciliationUseCase) LowStockAlerts(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productToResponse(p))
	}
	return out, nil
}

// VerifyInvariants recalcula cada agregado desde sus componentes y reporta las
// discrepancias: saldo de venta == suma de renglones no pagados, saldo de
// cliente == suma de saldos de sus ventas. Pensado para diagnóstico y tests,
// no para rutas calientes; nunca consulta la caché.
func (uc *ReconciliationUseCase) VerifyInvariants(ctx context.Context) (*dto.ReconciliationReport, error) {
	report := &dto.ReconciliationReport{Consistent: true}

	sales, err := uc.saleRepo.ListAll()
	if err != nil {
		return nil, err
	}
	balancesByCustomer := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		lines, err := uc.saleRepo.ListLineItems(sale.ID)
		if err != nil {
			return nil, err
		}
		unpaid := decimal.Zero
		for _, line := range lines {
			if !line.Paid {
				unpaid = unpaid.Add(line.Subtotal)
			}
		}
		if !sale.OutstandingBalance.Equal(unpaid) {
			report.Consistent = false
			report.Findings = append(report.Findings, dto.ReconciliationFinding{
				Kind:       "sale_balance",
				EntityID:   sale.ID,
				Stored:     sale.OutstandingBalance,
				Recomputed: unpaid,
			})
		}
		prev, ok := balancesByCustomer[sale.CustomerID]
		if !ok {
			prev = decimal.Zero
		}
		balancesByCustomer[sale.CustomerID] = prev.Add(sale.OutstandingBalance)
	}

	const customerPage = 500
	for offset := 0; ; offset += customerPage {
		customers, err := uc.customerRepo.List(customerPage, offset)
		if err != nil {
			return nil, err
		}
		if len(customers) == 0 {
			break
		}
		for _, c := range customers {
			expected, ok := balancesByCustomer[c.ID]
			if !ok {
				expected = decimal.Zero
			}
			if !c.OutstandingBalance.Equal(expected) {
				report.Consistent = false
				report.Findings = append(report.Findings, dto.ReconciliationFinding{
					Kind:       "customer_balance",
					EntityID:   c.ID,
					Stored:     c.OutstandingBalance,
					Recomputed: expected,
				})
			}
		}
		if len(customers) < customerPage {
			break
		}
	}

	return report, nil
}

func (uc *ReconciliationUseCase) salesWithLines(sales []*entity.CreditSale) ([]*dto.CreditSaleResponse, error) {
	out := make([]*dto.CreditSaleResponse, 0, len(sales))
	for _, sale := range sales {
		lines, err := uc.saleRepo.ListLineItems(sale.ID)
		if err != nil {
			return nil, err
		}
		resp := &dto.CreditSaleResponse{
			ID:                 sale.ID,
			CustomerID:         sale.CustomerID,
			Date:               sale.Date,
			Total:              sale.Total,
			OutstandingBalance: sale.OutstandingBalance,
		}
		for _, line := range lines {
			resp.Items = append(resp.Items, dto.CreditSaleLineItemResponse{
				ID:          line.ID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Subtotal:    line.Subtotal,
				Paid:        line.Paid,
				PaidAt:      line.PaidAt,
			})
		}
		out = append(out, resp)
	}
	return out, nil
}

func productToResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Quantity: p.Quantity,
		MinStock: p.MinStock,
		Cost:     p.Cost,
		Price:    p.Price,
		LowStock: p.LowStock(),
	}
}
