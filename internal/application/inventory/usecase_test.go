package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/fiado-ledger/internal/application/inventory"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: un memStore compartido con semántica transaccional real
// (snapshot antes de fn, restore si fn falla) para poder verificar que un
// movimiento a medio aplicar nunca es observable.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
}

func newMemStore() *memStore {
	return &memStore{products: make(map[string]*entity.Product)}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.movements = from.movements
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) UpdateQuantity(id string, quantity int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListLowStock() ([]*entity.Product, error)          { return nil, nil }

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cm := *m
			return &cm, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			cm := *m
			out = append(out, &cm)
		}
	}
	return out, nil
}

func (r *memMovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		cm := *m
		out = append(out, &cm)
	}
	return out, nil
}

func (r *memMovementRepo) PurgeAll() error {
	r.s.movements = nil
	return nil
}

type memTxRunner struct {
	s *memStore
	// commitErr simula un fallo de Commit: fn corre bien pero nada queda aplicado
	commitErr error
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	snapshot := t.s.clone()
	if err := fn(&memMovementRepo{t.s}, &memProductRepo{t.s}); err != nil {
		t.s.restore(snapshot)
		return err
	}
	if t.commitErr != nil {
		t.s.restore(snapshot)
		return t.commitErr
	}
	return nil
}

type stubConnectivity struct{ connected bool }

func (s stubConnectivity) Connected() bool { return s.connected }

type spyCache struct{ invalidated []string }

func (c *spyCache) Get(ctx context.Context, id string) (*entity.Product, error) { return nil, nil }
func (c *spyCache) Set(ctx context.Context, p *entity.Product) error            { return nil }
func (c *spyCache) Invalidate(ctx context.Context, ids ...string) error {
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

func seedProduct(s *memStore, id string, quantity int64) {
	s.products[id] = &entity.Product{
		ID:       id,
		Name:     "Producto " + id,
		Quantity: quantity,
		MinStock: 2,
		Cost:     decimal.NewFromInt(50),
		Price:    decimal.NewFromInt(100),
	}
}

func newLedger(s *memStore) (*inventory.StockLedgerUseCase, *spyCache) {
	cache := &spyCache{}
	uc := inventory.NewStockLedgerUseCase(
		&memTxRunner{s: s},
		&memMovementRepo{s},
		stubConnectivity{connected: true},
		cache,
	)
	return uc, cache
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_EntradaYSalida(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	uc, cache := newLedger(store)

	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 5, Reason: "COMPRA",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), mov.PreviousQuantity)
	assert.Equal(t, int64(15), mov.NewQuantity)
	assert.Equal(t, int64(15), store.products["p1"].Quantity)
	assert.Equal(t, []string{"p1"}, cache.invalidated)

	mov, err = uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 4, Reason: "VENTA",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), mov.PreviousQuantity)
	assert.Equal(t, int64(11), mov.NewQuantity)
	assert.Equal(t, int64(11), store.products["p1"].Quantity)
}

// La propiedad de conservación: tras una secuencia aceptada, el stock final es
// el inicial + suma de entradas - suma de salidas, y la cadena previous/new
// encadena sin huecos.
func TestRegisterMovement_ConservacionDeStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 20)
	uc, _ := newLedger(store)

	sequence := []struct {
		typ string
		qty int64
	}{
		{entity.MovementTypeEntrada, 7},
		{entity.MovementTypeSalida, 3},
		{entity.MovementTypeSalida, 10},
		{entity.MovementTypeEntrada, 1},
		{entity.MovementTypeSalida, 15},
	}
	var entradas, salidas int64
	for _, step := range sequence {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			ProductID: "p1", Type: step.typ, Quantity: step.qty, Reason: "AJUSTE",
		})
		require.NoError(t, err)
		if step.typ == entity.MovementTypeEntrada {
			entradas += step.qty
		} else {
			salidas += step.qty
		}
	}
	assert.Equal(t, 20+entradas-salidas, store.products["p1"].Quantity)

	movs, err := uc.ListMovements(context.Background(), "p1", 100, 0)
	require.NoError(t, err)
	require.Len(t, movs, len(sequence))
	for i := 1; i < len(movs); i++ {
		assert.Equal(t, movs[i-1].NewQuantity, movs[i].PreviousQuantity,
			"cada movimiento debe partir del stock que dejó el anterior")
	}
}

func TestRegisterMovement_SalidaSinStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	uc, cache := newLedger(store)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 15, Reason: "VENTA",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni el stock ni el diario deben haberse tocado
	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Empty(t, store.movements)
	assert.Empty(t, cache.invalidated)
}

func TestRegisterMovement_Validaciones(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	uc, _ := newLedger(store)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 0, Reason: "COMPRA",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: -3, Reason: "COMPRA",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 1, Reason: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyReason)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInput{
		ProductID: "p1", Type: "traspaso", Quantity: 1, Reason: "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, inventory.MovementInput{
		ProductID: "nope", Type: entity.MovementTypeSalida, Quantity: 1, Reason: "VENTA",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	assert.Empty(t, store.movements)
}

func TestRegisterMovementBatch_TodoONada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	seedProduct(store, "p2", 2)
	uc, _ := newLedger(store)

	// El segundo ítem sobregira p2: el lote entero debe revertirse
	_, err := uc.RegisterMovementBatch(context.Background(), []inventory.MovementInput{
		{ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 5, Reason: "VENTA RAPIDA"},
		{ProductID: "p2", Type: entity.MovementTypeSalida, Quantity: 3, Reason: "VENTA RAPIDA"},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Equal(t, int64(2), store.products["p2"].Quantity)
	assert.Empty(t, store.movements)

	// Un lote válido aplica todos los ítems
	movs, err := uc.RegisterMovementBatch(context.Background(), []inventory.MovementInput{
		{ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 5, Reason: "VENTA RAPIDA"},
		{ProductID: "p2", Type: entity.MovementTypeSalida, Quantity: 2, Reason: "VENTA RAPIDA"},
	})
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	assert.Equal(t, int64(5), store.products["p1"].Quantity)
	assert.Equal(t, int64(0), store.products["p2"].Quantity)
}

func TestRegisterMovement_FalloDeCommitNoDejaNada(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	runner := &memTxRunner{s: store, commitErr: errors.New("commit transaction: timeout")}
	uc := inventory.NewStockLedgerUseCase(runner, &memMovementRepo{store}, stubConnectivity{connected: true}, &spyCache{})

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeSalida, Quantity: 3, Reason: "VENTA",
	})
	require.Error(t, err)
	assert.Equal(t, int64(10), store.products["p1"].Quantity)
	assert.Empty(t, store.movements)
}

func TestRegisterMovement_Offline(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	uc := inventory.NewStockLedgerUseCase(
		&memTxRunner{s: store}, &memMovementRepo{store},
		stubConnectivity{connected: false}, &spyCache{},
	)

	_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 1, Reason: "COMPRA",
	})
	assert.ErrorIs(t, err, domain.ErrOffline)

	_, err = uc.RegisterMovementBatch(context.Background(), []inventory.MovementInput{
		{ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 1, Reason: "COMPRA"},
	})
	assert.ErrorIs(t, err, domain.ErrOffline)

	assert.ErrorIs(t, uc.PurgeJournal(context.Background()), domain.ErrOffline)
}

func TestPurgeJournal_BorraTodoElDiario(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 10)
	uc, _ := newLedger(store)

	for i := 0; i < 3; i++ {
		_, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
			ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 1, Reason: "COMPRA",
		})
		require.NoError(t, err)
	}
	require.Len(t, store.movements, 3)

	require.NoError(t, uc.PurgeJournal(context.Background()))
	assert.Empty(t, store.movements)
	// La purga no toca cantidades
	assert.Equal(t, int64(13), store.products["p1"].Quantity)
}

func TestRegisterMovement_GuardaTimestamp(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", 1)
	uc, _ := newLedger(store)

	before := time.Now()
	mov, err := uc.RegisterMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeEntrada, Quantity: 1, Reason: "COMPRA",
	})
	require.NoError(t, err)
	assert.False(t, mov.CreatedAt.Before(before))
	assert.NotEmpty(t, mov.ID)
}
