package credit_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/fiado-ledger/internal/application/credit"
	"github.com/tu-usuario/fiado-ledger/internal/domain"
	"github.com/tu-usuario/fiado-ledger/internal/domain/entity"
	"github.com/tu-usuario/fiado-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria para el fiado: un memStore compartido por los cinco repos,
// con snapshot/restore para simular Commit/Rollback y failOn para inyectar un
// fallo en un método concreto (prueba las propiedades todo-o-nada).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
	customers map[string]*entity.Customer
	sales     map[string]*entity.CreditSale
	lineItems map[string]*entity.CreditSaleLineItem
	payments  []*entity.Payment

	// failOn: nombre del método de repo que debe fallar ("payments.DeleteByCustomer", etc.)
	failOn string
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.CreditSale),
		lineItems: make(map[string]*entity.CreditSaleLineItem),
	}
}

var errInjected = errors.New("fallo inyectado en repo")

func (s *memStore) fail(method string) bool { return s.failOn == method }

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.failOn = s.failOn
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for _, m := range s.movements {
		cm := *m
		c.movements = append(c.movements, &cm)
	}
	for id, cu := range s.customers {
		cc := *cu
		c.customers[id] = &cc
	}
	for id, sa := range s.sales {
		cs := *sa
		c.sales[id] = &cs
	}
	for id, li := range s.lineItems {
		cl := *li
		c.lineItems[id] = &cl
	}
	for _, p := range s.payments {
		cp := *p
		c.payments = append(c.payments, &cp)
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.movements = from.movements
	s.customers = from.customers
	s.sales = from.sales
	s.lineItems = from.lineItems
	s.payments = from.payments
}

// ── ProductRepository ─────────────────────────────────────────────────────────

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

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

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

// ── MovementRepository ────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cm := *m
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) { return nil, nil }

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

// ── CustomerRepository ────────────────────────────────────────────────────────

type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cc := *c
	r.s.customers[c.ID] = &cc
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *memCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) { return r.GetByID(id) }

func (r *memCustomerRepo) GetByTaxID(taxID string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.TaxID == taxID {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *memCustomerRepo) AdjustBalance(customerID string, delta decimal.Decimal) error {
	if r.s.fail("customers.AdjustBalance") {
		return errInjected
	}
	c, ok := r.s.customers[customerID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	c.OutstandingBalance = c.OutstandingBalance.Add(delta)
	return nil
}

func (r *memCustomerRepo) Delete(id string) error {
	if r.s.fail("customers.Delete") {
		return errInjected
	}
	delete(r.s.customers, id)
	return nil
}

// ── CreditSaleRepository ──────────────────────────────────────────────────────

type memSaleRepo struct{ s *memStore }

func (r *memSaleRepo) Create(sale *entity.CreditSale) error {
	if r.s.fail("sales.Create") {
		return errInjected
	}
	cs := *sale
	r.s.sales[sale.ID] = &cs
	return nil
}

func (r *memSaleRepo) CreateLineItem(item *entity.CreditSaleLineItem) error {
	if r.s.fail("sales.CreateLineItem") {
		return errInjected
	}
	ci := *item
	r.s.lineItems[item.ID] = &ci
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.CreditSale, error) {
	sa, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cs := *sa
	return &cs, nil
}

func (r *memSaleRepo) GetForUpdate(id string) (*entity.CreditSale, error) { return r.GetByID(id) }

func (r *memSaleRepo) ListByCustomer(customerID string) ([]*entity.CreditSale, error) {
	var out []*entity.CreditSale
	for _, sa := range r.s.sales {
		if sa.CustomerID == customerID {
			cs := *sa
			out = append(out, &cs)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListOpenByCustomer(customerID string) ([]*entity.CreditSale, error) {
	var out []*entity.CreditSale
	for _, sa := range r.s.sales {
		if sa.CustomerID == customerID && sa.Open() {
			cs := *sa
			out = append(out, &cs)
		}
	}
	return out, nil
}

func (r *memSaleRepo) ListAll() ([]*entity.CreditSale, error) {
	var out []*entity.CreditSale
	for _, sa := range r.s.sales {
		cs := *sa
		out = append(out, &cs)
	}
	return out, nil
}

func (r *memSaleRepo) ListLineItems(saleID string) ([]*entity.CreditSaleLineItem, error) {
	var out []*entity.CreditSaleLineItem
	for _, li := range r.s.lineItems {
		if li.SaleID == saleID {
			cl := *li
			out = append(out, &cl)
		}
	}
	return out, nil
}

func (r *memSaleRepo) MarkLineItemPaid(lineItemID string, paidAt time.Time) error {
	li, ok := r.s.lineItems[lineItemID]
	if !ok || li.Paid {
		return nil
	}
	li.Paid = true
	t := paidAt
	li.PaidAt = &t
	return nil
}

func (r *memSaleRepo) AdjustOutstanding(saleID string, delta decimal.Decimal) error {
	sa, ok := r.s.sales[saleID]
	if !ok {
		return domain.ErrSaleNotFound
	}
	sa.OutstandingBalance = sa.OutstandingBalance.Add(delta)
	return nil
}

func (r *memSaleRepo) DeleteLineItemsByCustomer(customerID string) error {
	if r.s.fail("sales.DeleteLineItemsByCustomer") {
		return errInjected
	}
	for id, li := range r.s.lineItems {
		if sa, ok := r.s.sales[li.SaleID]; ok && sa.CustomerID == customerID {
			delete(r.s.lineItems, id)
		}
	}
	return nil
}

func (r *memSaleRepo) DeleteByCustomer(customerID string) error {
	if r.s.fail("sales.DeleteByCustomer") {
		return errInjected
	}
	for id, sa := range r.s.sales {
		if sa.CustomerID == customerID {
			delete(r.s.sales, id)
		}
	}
	return nil
}

// ── PaymentRepository ─────────────────────────────────────────────────────────

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(p *entity.Payment) error {
	if r.s.fail("payments.Create") {
		return errInjected
	}
	cp := *p
	r.s.payments = append(r.s.payments, &cp)
	return nil
}

func (r *memPaymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.SaleID == saleID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) ListByCustomer(customerID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.CustomerID == customerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) DeleteByCustomer(customerID string) error {
	if r.s.fail("payments.DeleteByCustomer") {
		return errInjected
	}
	var kept []*entity.Payment
	for _, p := range r.s.payments {
		if p.CustomerID != customerID {
			kept = append(kept, p)
		}
	}
	r.s.payments = kept
	return nil
}

// ── Tx runner con rollback ────────────────────────────────────────────────────

type memCreditTxRunner struct{ s *memStore }

func (t *memCreditTxRunner) RunCredit(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.CreditSaleRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(
		&memMovementRepo{t.s},
		&memProductRepo{t.s},
		&memCustomerRepo{t.s},
		&memSaleRepo{t.s},
		&memPaymentRepo{t.s},
	)
	if err != nil {
		t.s.restore(snapshot)
		return err
	}
	return nil
}

var _ credit.CreditTxRunner = (*memCreditTxRunner)(nil)

// ── Auxiliares ────────────────────────────────────────────────────────────────

type stubConnectivity struct{ connected bool }

func (s stubConnectivity) Connected() bool { return s.connected }

type spyCache struct{ invalidated []string }

func (c *spyCache) Get(ctx context.Context, id string) (*entity.Product, error) { return nil, nil }
func (c *spyCache) Set(ctx context.Context, p *entity.Product) error            { return nil }
func (c *spyCache) Invalidate(ctx context.Context, ids ...string) error {
	c.invalidated = append(c.invalidated, ids...)
	return nil
}
