package credit

import (
	"context"
	"time"

	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// CreditTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario y de fiado. Descuento de stock, cabecera, renglones y
// ajuste de saldo del cliente confirman como una sola unidad.
type CreditTxRunner interface {
	RunCredit(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.CreditSaleRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// StockLedger interfaz para integrar el fiado con el libro de inventario.
// RegisterSalidaInTx ejecuta la salida usando los repositorios del caller
// (misma transacción). Si retorna error (ej: ErrInsufficientStock), el caller
// debe hacer rollback.
type StockLedger interface {
	RegisterSalidaInTx(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		productID string,
		quantity int64,
		reason string,
		now time.Time,
	) (*entity.Movement, error)
}
