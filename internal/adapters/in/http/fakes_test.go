package http

import (
	"context"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// memoryOrders is an order store that keeps snapshots in memory. Writes are
// applied immediately; Rollback is a no-op.
type memoryOrders struct {
	mu     sync.Mutex
	orders map[string]order.Snapshot
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: map[string]order.Snapshot{}}
}

func (m *memoryOrders) Create() commands.OrderUoW { return memoryUoW{store: m} }

type memoryUoW struct{ store *memoryOrders }

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) OrderRepository() ports.OrderRepository { return u.store }

func (m *memoryOrders) Add(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.orders {
		if s.Reference == o.Reference() {
			return errs.NewValueIsInvalidError("reference")
		}
	}
	m.orders[o.ID().String()] = o.Snapshot()
	return nil
}

func (m *memoryOrders) Update(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	m.orders[o.ID().String()] = o.Snapshot()
	return nil
}

func (m *memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(s)
}

func (m *memoryOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return m.Get(ctx, id)
}

func (m *memoryOrders) GetByReference(_ context.Context, reference string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.orders {
		if s.Reference == reference {
			return order.RestoreOrder(s)
		}
	}
	return nil, errs.NewObjectNotFoundError("reference", reference)
}

func (m *memoryOrders) Delete(_ context.Context, id kernel.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id.String()]; !ok {
		return errs.NewObjectNotFoundError("order", id)
	}
	delete(m.orders, id.String())
	return nil
}

func (m *memoryOrders) DeleteMany(_ context.Context, ids []kernel.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := m.orders[id.String()]; ok {
			delete(m.orders, id.String())
			n++
		}
	}
	return n, nil
}

func (m *memoryOrders) DeleteMatching(_ context.Context, c ports.DeleteCriteria) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for key, s := range m.orders {
		if s.Status == c.Status && c.Created.Contains(s.CreatedAt) {
			delete(m.orders, key)
			n++
		}
	}
	return n, nil
}

func (m *memoryOrders) ReleaseActor(context.Context, kernel.UUID) (int64, error) {
	return 0, nil
}
