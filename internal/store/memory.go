package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/noah-isme/checkout-api/internal/order"
)

// ErrNotFound is returned when an order identifier is unknown to the store.
var ErrNotFound = errors.New("order not found")

// entry pairs an order with its own lock so mutations of one order never
// contend with another's.
type entry struct {
	mu    sync.RWMutex
	order *order.Order
}

// Memory keeps live orders in process memory, keyed by UUID. The outer
// lock only guards the map itself; each order carries a per-entry RWMutex
// that serializes mutations of that order while allowing its reads to run
// concurrently with each other.
type Memory struct {
	mu     sync.RWMutex
	orders map[string]*entry
}

// NewMemory returns an empty order store.
func NewMemory() *Memory {
	return &Memory{orders: make(map[string]*entry)}
}

// Create registers the order under a fresh identifier.
func (m *Memory) Create(o *order.Order) string {
	id := uuid.NewString()
	m.mu.Lock()
	m.orders[id] = &entry{order: o}
	m.mu.Unlock()
	return id
}

// View runs fn with read access to the order. It blocks while a mutation
// of the same order is in flight.
func (m *Memory) View(id string, fn func(*order.Order) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.order)
}

// Update runs fn with exclusive access to the order. Mutations of one
// order are serialized; other orders are unaffected.
func (m *Memory) Update(id string, fn func(*order.Order) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.order)
}

// Delete discards an order. Unknown identifiers are a no-op.
func (m *Memory) Delete(id string) {
	m.mu.Lock()
	delete(m.orders, id)
	m.mu.Unlock()
}

// Len reports the number of live orders.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

func (m *Memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.orders[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}
