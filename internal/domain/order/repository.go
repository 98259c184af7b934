// internal/domain/order/repository.go
package order

import (
	"context"
	"time"
)

// Repository persists orders. Implementations assign ids as one greater
// than the current maximum, starting at 1, and keep listing order stable
// by id.
type Repository interface {
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id uint) (*Order, error)
	ListByStatus(ctx context.Context, status OrderStatus) ([]Order, error)
	ListByCustomerPhone(ctx context.Context, phone string) ([]Order, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]Order, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uint) error
}
