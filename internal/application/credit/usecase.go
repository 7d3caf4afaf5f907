package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiado-ledger/internal/application/dto"
	"github.com/tu-usuario/fiado-ledger/internal/application/ports"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// CreditSaleUseCase crea ventas fiadas descontando inventario en una sola
// transacción, liquida renglones y ejecuta el borrado en cascada de clientes.
type CreditSaleUseCase struct {
	txRunner     CreditTxRunner
	stockLedger  StockLedger
	customerRepo repository.CustomerRepository
	saleRepo     repository.CreditSaleRepository
	connectivity ports.ConnectivityChecker
	cache        ports.ProductCache
}

// NewCreditSaleUseCase construye el caso de uso.
func NewCreditSaleUseCase(
	txRunner CreditTxRunner,
	stockLedger StockLedger,
	customerRepo repository.CustomerRepository,
	saleRepo repository.CreditSaleRepository,
	connectivity ports.ConnectivityChecker,
	cache ports.ProductCache,
) *CreditSaleUseCase {
	return &CreditSaleUseCase{
		txRunner:     txRunner,
		stockLedger:  stockLedger,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		connectivity: connectivity,
		cache:        cache,
	}
}

// CreateCreditSale crea la venta fiada: por cada renglón congela nombre y precio
// del producto, descuenta stock vía el libro de inventario (salida con motivo
// "FIADO A <cliente>") y suma el total al saldo del cliente. Todo en una
// transacción: si cualquier renglón falla no queda venta parcial ni descuento
// parcial.
func (uc *CreditSaleUseCase) CreateCreditSale(ctx context.Context, in dto.CreateCreditSaleRequest) (*dto.CreditSaleResponse, error) {
	if !uc.connectivity.Connected() {
		return nil, domain.ErrOffline
	}
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	// Validar cliente (solo lectura, fuera de la tx)
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	now := time.Now()
	saleID := uuid.New().String()
	reason := fmt.Sprintf("FIADO A %s", customer.Name)

	sale := &entity.CreditSale{
		ID:         saleID,
		CustomerID: customer.ID,
		Date:       now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var lines []*entity.CreditSaleLineItem

	err = uc.txRunner.RunCredit(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.CreditSaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		total := decimal.Zero
		for _, item := range in.Items {
			// Bloquea la fila del producto y congela nombre y precio del renglón
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}
			// Descuento vía el libro de inventario; ErrInsufficientStock aborta
			// la venta completa (rollback de los renglones ya aplicados)
			if _, err := uc.stockLedger.RegisterSalidaInTx(
				movRepo, productRepo, product.ID, item.Quantity, reason, now,
			); err != nil {
				return err
			}
			subtotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(subtotal)
			lines = append(lines, &entity.CreditSaleLineItem{
				ID:          uuid.New().String(),
				SaleID:      saleID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
				Subtotal:    subtotal,
				Paid:        false,
			})
		}

		// Cabecera: Total queda fijo; el saldo pendiente arranca igual al total
		sale.Total = total
		sale.OutstandingBalance = total
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, line := range lines {
			if err := saleRepo.CreateLineItem(line); err != nil {
				return err
			}
		}
		return customerRepo.AdjustBalance(customer.ID, total)
	})
	if err != nil {
		return nil, err
	}

	productIDs := make([]string, len(in.Items))
	for i, item := range in.Items {
		productIDs[i] = item.ProductID
	}
	_ = uc.cache.Invalidate(ctx, productIDs...)

	return saleToResponse(sale, lines), nil
}

// GetSale devuelve una venta con sus renglones.
func (uc *CreditSaleUseCase) GetSale(ctx context.Context, saleID string) (*dto.CreditSaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	lines, err := uc.saleRepo.ListLineItems(saleID)
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale, lines), nil
}

func saleToResponse(sale *entity.CreditSale, lines []*entity.CreditSaleLineItem) *dto.CreditSaleResponse {
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
	return resp
}
