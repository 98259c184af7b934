// internal/domain/order/memory.go
package order

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// MemoryRepository keeps orders in an in-memory slice, insertion order
// preserved.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

// NewMemoryRepository creates an empty in-memory order store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// List returns all orders in insertion order
func (r *MemoryRepository) List(ctx context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, len(r.orders))
	for i := range r.orders {
		out[i] = cloneOrder(r.orders[i])
	}
	return out, nil
}

// Get returns the order with the given id
func (r *MemoryRepository) Get(ctx context.Context, id uint) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			o := cloneOrder(r.orders[i])
			return &o, nil
		}
	}
	return nil, errs.NotFoundf("order %d not found", id)
}

// ListByStatus returns all orders in the given lifecycle state
func (r *MemoryRepository) ListByStatus(ctx context.Context, status OrderStatus) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Order
	for i := range r.orders {
		if r.orders[i].Status == status {
			out = append(out, cloneOrder(r.orders[i]))
		}
	}
	return out, nil
}

// ListByCustomerPhone returns all orders placed with the given phone number
func (r *MemoryRepository) ListByCustomerPhone(ctx context.Context, phone string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Order
	for i := range r.orders {
		if strings.TrimSpace(r.orders[i].Customer.Phone) == strings.TrimSpace(phone) {
			out = append(out, cloneOrder(r.orders[i]))
		}
	}
	return out, nil
}

// ListByCustomerEmail returns all orders placed with the given email,
// compared case-insensitively
func (r *MemoryRepository) ListByCustomerEmail(ctx context.Context, email string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Order
	for i := range r.orders {
		if strings.EqualFold(strings.TrimSpace(r.orders[i].Customer.Email), strings.TrimSpace(email)) {
			out = append(out, cloneOrder(r.orders[i]))
		}
	}
	return out, nil
}

// ListByDateRange returns orders created within [from, to]
func (r *MemoryRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Order
	for i := range r.orders {
		created := r.orders[i].CreatedAt
		if !created.Before(from) && !created.After(to) {
			out = append(out, cloneOrder(r.orders[i]))
		}
	}
	return out, nil
}

// Create appends an order, assigning max(existing)+1 as its id and the
// matching order number. Ids start at 1 on an empty store.
func (r *MemoryRepository) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var maxID uint
	for i := range r.orders {
		if r.orders[i].ID > maxID {
			maxID = r.orders[i].ID
		}
	}
	o.ID = maxID + 1
	o.OrderNumber = FormatOrderNumber(o.ID)
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	r.orders = append(r.orders, cloneOrder(*o))
	return nil
}

// Update replaces the stored order with the same id
func (r *MemoryRepository) Update(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			o.CreatedAt = r.orders[i].CreatedAt
			o.UpdatedAt = time.Now().UTC()
			r.orders[i] = cloneOrder(*o)
			return nil
		}
	}
	return errs.NotFoundf("order %d not found", o.ID)
}

// Delete removes the order with the given id
func (r *MemoryRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return errs.NotFoundf("order %d not found", id)
}

func cloneOrder(o Order) Order {
	clone := o
	clone.Items = append([]OrderItem(nil), o.Items...)
	return clone
}
