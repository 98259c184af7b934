// internal/infrastructure/database/postgres/order_repository.go
package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/alibix/storefront-api/internal/domain/order"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// OrderRepository is the GORM-backed order store
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a GORM-backed order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// List returns all orders with their items, ordered by id
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).Preload("Items").Order("id ASC").Find(&orders).Error; err != nil {
		return nil, errs.Storage(err, "failed to list orders")
	}
	return orders, nil
}

// Get returns the order with the given id
func (r *OrderRepository) Get(ctx context.Context, id uint) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFoundf("order %d not found", id)
	}
	if err != nil {
		return nil, errs.Storage(err, "failed to load order")
	}
	return &o, nil
}

// ListByStatus returns orders in the given lifecycle state
func (r *OrderRepository) ListByStatus(ctx context.Context, status order.OrderStatus) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("status = ?", status).Order("id ASC").Find(&orders).Error
	if err != nil {
		return nil, errs.Storage(err, "failed to list orders by status")
	}
	return orders, nil
}

// ListByCustomerPhone returns orders placed with the given phone number
func (r *OrderRepository) ListByCustomerPhone(ctx context.Context, phone string) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("customer_phone = ?", phone).Order("id ASC").Find(&orders).Error
	if err != nil {
		return nil, errs.Storage(err, "failed to list orders by customer")
	}
	return orders, nil
}

// ListByCustomerEmail returns orders placed with the given email
func (r *OrderRepository) ListByCustomerEmail(ctx context.Context, email string) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("LOWER(customer_email) = LOWER(?)", email).Order("id ASC").Find(&orders).Error
	if err != nil {
		return nil, errs.Storage(err, "failed to list orders by customer email")
	}
	return orders, nil
}

// ListByDateRange returns orders created within [from, to]
func (r *OrderRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("id ASC").Find(&orders).Error
	if err != nil {
		return nil, errs.Storage(err, "failed to list orders by date range")
	}
	return orders, nil
}

// Create inserts an order and its items, assigning max(existing)+1 as its
// id and the matching order number
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxID uint
		if err := tx.Model(&order.Order{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return errs.Storage(err, "failed to allocate order id")
		}
		o.ID = maxID + 1
		o.OrderNumber = order.FormatOrderNumber(o.ID)
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
		}
		if err := tx.Create(o).Error; err != nil {
			return errs.Storage(err, "failed to create order")
		}
		return nil
	})
}

// Update replaces the stored order's own columns. Items are immutable once
// placed and are not touched.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).Model(&order.Order{}).Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":     o.Status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return errs.Storage(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return errs.NotFoundf("order %d not found", o.ID)
	}
	return nil
}

// Delete removes the order and its items
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.OrderItem{}).Error; err != nil {
			return errs.Storage(err, "failed to delete order items")
		}
		result := tx.Delete(&order.Order{}, id)
		if result.Error != nil {
			return errs.Storage(result.Error, "failed to delete order")
		}
		if result.RowsAffected == 0 {
			return errs.NotFoundf("order %d not found", id)
		}
		return nil
	})
}
