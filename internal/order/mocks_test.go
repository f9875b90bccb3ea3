package order

import (
	"context"
	"sync"

	"github.com/mu7ammad-3li/swiftcart/internal/catalog"
	"github.com/mu7ammad-3li/swiftcart/internal/customer"
	"github.com/mu7ammad-3li/swiftcart/internal/domain"
	"github.com/mu7ammad-3li/swiftcart/internal/events"
	"github.com/mu7ammad-3li/swiftcart/internal/inventory"
)

// --- catalog ---

type mockCatalog struct {
	products map[string]domain.Product
}

func (m *mockCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

// --- customer repository ---

type mockCustomerRepo struct {
	mu        sync.Mutex
	customers map[string]*domain.Customer
	createErr error
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{customers: make(map[string]*domain.Customer)}
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (m *mockCustomerRepo) CreateIfAbsent(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	if existing, ok := m.customers[c.ID]; ok {
		return existing, nil
	}
	m.customers[c.ID] = c
	return c, nil
}

func (m *mockCustomerRepo) UpdateContact(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[c.ID]; !ok {
		return customer.ErrCustomerNotFound
	}
	m.customers[c.ID] = c
	return nil
}

// --- inventory ledger ---

// memLedger applies the same read-check-decrement contract as the
// Mongo ledger, entirely in memory.
type memLedger struct {
	mu         sync.Mutex
	quantities map[string]int
	reserveErr map[string]error // injected failures per product
	releases   []string         // product ids in release order
}

func newMemLedger() *memLedger {
	return &memLedger{
		quantities: make(map[string]int),
		reserveErr: make(map[string]error),
	}
}

func (m *memLedger) Reserve(_ context.Context, productID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.reserveErr[productID]; err != nil {
		return err
	}
	current, ok := m.quantities[productID]
	if !ok {
		return inventory.ErrProductNotFound
	}
	if current < qty {
		return inventory.ErrInsufficientStock
	}
	m.quantities[productID] = current - qty
	return nil
}

func (m *memLedger) Release(_ context.Context, productID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantities[productID] += qty
	m.releases = append(m.releases, productID)
	return nil
}

func (m *memLedger) Get(_ context.Context, productID string) (*domain.InventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	qty, ok := m.quantities[productID]
	if !ok {
		return nil, inventory.ErrProductNotFound
	}
	return &domain.InventoryRecord{ProductID: productID, Quantity: qty}, nil
}

func (m *memLedger) SetQuantity(_ context.Context, productID string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quantities[productID] = qty
	return nil
}

func (m *memLedger) quantity(productID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quantities[productID]
}

// --- order repository ---

type memOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]*domain.Order
	createErr error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*domain.Order)}
}

func (m *memOrderRepo) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	copied := *o
	m.orders[o.ID] = &copied
	return nil
}

func (m *memOrderRepo) GetByID(_ context.Context, orderID string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *o
	copied.InternalNotes = append([]domain.AuditNote(nil), o.InternalNotes...)
	return &copied, nil
}

func (m *memOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Order
	for _, o := range m.orders {
		if o.CustomerID == customerID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (m *memOrderRepo) UpdateStatus(_ context.Context, orderID string, from []domain.OrderStatus, to domain.OrderStatus, note domain.AuditNote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	allowed := false
	for _, s := range from {
		if o.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = note.Timestamp
	o.InternalNotes = append(o.InternalNotes, note)
	return nil
}

func (m *memOrderRepo) AppendNote(_ context.Context, orderID string, note domain.AuditNote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.InternalNotes = append(o.InternalNotes, note)
	return nil
}

// --- event sinks ---

type captureSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *captureSink) Name() string { return "capture" }

func (c *captureSink) Publish(_ context.Context, e events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func (c *captureSink) byType(t events.EventType) []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []events.Event
	for _, e := range c.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

type failingSink struct{ err error }

func (f failingSink) Name() string { return "failing" }

func (f failingSink) Publish(context.Context, events.Event) error { return f.err }
