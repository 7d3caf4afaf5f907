package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/fiado-ledger/internal/application/ports"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// StockLedgerUseCase registra movimientos de stock de forma transaccional
// (entrada/salida) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Es la única autoridad que incrementa o decrementa Product.Quantity.
type StockLedgerUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	connectivity ports.ConnectivityChecker
	cache        ports.ProductCache
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	connectivity ports.ConnectivityChecker,
	cache ports.ProductCache,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		connectivity: connectivity,
		cache:        cache,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID string
	Type      string // entrada | salida
	Quantity  int64
	Reason    string
}

func validateMovementInput(in MovementInput) error {
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSalida {
		return domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if strings.TrimSpace(in.Reason) == "" {
		return domain.ErrEmptyReason
	}
	return nil
}

// RegisterMovement valida la entrada, abre una transacción, bloquea la fila del
// producto, aplica el movimiento y hace Commit o Rollback. Una salida que dejaría
// el stock negativo falla con ErrInsufficientStock sin tocar diario ni producto.
func (uc *StockLedgerUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.Movement, error) {
	if !uc.connectivity.Connected() {
		return nil, domain.ErrOffline
	}
	if err := validateMovementInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		mov, err = applyMovement(movRepo, productRepo, input, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	_ = uc.cache.Invalidate(ctx, input.ProductID)
	return mov, nil
}

// RegisterMovementBatch aplica varios movimientos en una sola transacción:
// o entran todos o no se aplica ninguno (ventas rápidas multi-ítem).
func (uc *StockLedgerUseCase) RegisterMovementBatch(ctx context.Context, inputs []MovementInput) ([]*entity.Movement, error) {
	if !uc.connectivity.Connected() {
		return nil, domain.ErrOffline
	}
	if len(inputs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, in := range inputs {
		if err := validateMovementInput(in); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	movements := make([]*entity.Movement, 0, len(inputs))
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		for _, in := range inputs {
			mov, err := applyMovement(movRepo, productRepo, in, now)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(inputs))
	for i, in := range inputs {
		ids[i] = in.ProductID
	}
	_ = uc.cache.Invalidate(ctx, ids...)
	return movements, nil
}

// applyMovement bloquea la fila del producto, verifica stock y escribe el
// movimiento con la cadena de auditoría PreviousQuantity -> NewQuantity.
func applyMovement(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	input MovementInput,
	now time.Time,
) (*entity.Movement, error) {
	product, err := productRepo.GetForUpdate(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	previous := product.Quantity
	var newQty int64
	switch input.Type {
	case entity.MovementTypeEntrada:
		newQty = previous + input.Quantity
	case entity.MovementTypeSalida:
		newQty = previous - input.Quantity
		if newQty < 0 {
			return nil, domain.ErrInsufficientStock
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
		return nil, err
	}
	mov := &entity.Movement{
		ID:               uuid.New().String(),
		ProductID:        product.ID,
		Type:             input.Type,
		Quantity:         input.Quantity,
		Reason:           strings.TrimSpace(input.Reason),
		PreviousQuantity: previous,
		NewQuantity:      newQty,
		CreatedAt:        now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterSalidaInTx ejecuta una salida usando los repositorios de la transacción
// del caller (la venta fiada descuenta stock en su propia tx, renglón por renglón).
func (uc *StockLedgerUseCase) RegisterSalidaInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string,
	quantity int64,
	reason string,
	now time.Time,
) (*entity.Movement, error) {
	return applyMovement(movRepo, productRepo, MovementInput{
		ProductID: productID,
		Type:      entity.MovementTypeSalida,
		Quantity:  quantity,
		Reason:    reason,
	}, now)
}

// ListMovements devuelve el diario, opcionalmente filtrado por producto.
func (uc *StockLedgerUseCase) ListMovements(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	if productID != "" {
		return uc.movementRepo.ListByProduct(productID, limit, offset)
	}
	return uc.movementRepo.List(limit, offset)
}

// PurgeJournal borra todo el diario de movimientos (única eliminación permitida,
// administrativa y masiva). No toca las cantidades de producto.
func (uc *StockLedgerUseCase) PurgeJournal(ctx context.Context) error {
	if !uc.connectivity.Connected() {
		return domain.ErrOffline
	}
	return uc.movementRepo.PurgeAll()
}
