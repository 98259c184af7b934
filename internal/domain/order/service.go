// internal/domain/order/service.go
package order

import (
	"context"
	"strings"
	"time"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/domain/cart"
	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// Service handles order business logic
type Service struct {
	repo    Repository
	cart    *cart.Service
	catalog *catalog.Service
	config  *config.Config
}

// NewService creates a new order service
func NewService(repo Repository, cartService *cart.Service, catalogService *catalog.Service, cfg *config.Config) *Service {
	return &Service{
		repo:    repo,
		cart:    cartService,
		catalog: catalogService,
		config:  cfg,
	}
}

// PlaceOrderRequest represents checkout submission
type PlaceOrderRequest struct {
	Name          string        `json:"name" binding:"required"`
	Phone         string        `json:"phone" binding:"required"`
	Email         string        `json:"email"`
	Address       string        `json:"address" binding:"required"`
	City          string        `json:"city" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// Stats summarizes order volume for the admin dashboard
type Stats struct {
	TotalOrders    int                 `json:"total_orders"`
	TotalRevenue   int64               `json:"total_revenue"`
	StatusCounts   map[OrderStatus]int `json:"status_counts"`
	PendingOrders  int                 `json:"pending_orders"`
	DeliveredToday int                 `json:"delivered_today"`
}

// PlaceOrder validates the session's cart and checkout details, creates the
// order, decrements stock, and clears the cart. Nothing is persisted and the
// cart is left untouched when any validation fails.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req *PlaceOrderRequest) (*Order, error) {
	c, err := s.cart.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if c.IsEmpty() {
		return nil, errs.Validation("cart is empty")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errs.Validation("customer name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, errs.Validation("customer phone is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, errs.Validation("delivery address is required")
	}
	if strings.TrimSpace(req.City) == "" {
		return nil, errs.Validation("delivery city is required")
	}
	if !req.PaymentMethod.IsValid() {
		return nil, errs.Validationf("unsupported payment method %q", req.PaymentMethod)
	}
	if req.PaymentMethod == PaymentCOD && c.HasRestrictedPaymentItem() {
		return nil, errs.Validation("cash on delivery is not available for imported items in the cart")
	}

	totals := c.CalculateTotals(s.config.Store.FreeShippingThreshold, s.config.Store.FlatShippingFee)

	o := &Order{
		Customer: CustomerInfo{
			Name:    strings.TrimSpace(req.Name),
			Phone:   strings.TrimSpace(req.Phone),
			Email:   strings.TrimSpace(req.Email),
			Address: strings.TrimSpace(req.Address),
			City:    strings.TrimSpace(req.City),
		},
		Items:         ItemsFromCart(c),
		Subtotal:      totals.Subtotal,
		ShippingFee:   totals.ShippingFee,
		Total:         totals.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        StatusPending,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	for _, item := range o.Items {
		if err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil && !catalog.IsNotFound(err) {
			return nil, err
		}
	}

	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		return nil, err
	}

	return o, nil
}

// GetOrders returns all orders
func (s *Service) GetOrders(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

// GetOrder returns the order with the given id
func (s *Service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	return s.repo.Get(ctx, id)
}

// GetOrderForCustomer returns the order with the given id when it was
// placed with the given email. Orders belonging to other customers look
// like missing ones, so ids cannot be probed for other people's records.
func (s *Service) GetOrderForCustomer(ctx context.Context, id uint, email string) (*Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(o.Customer.Email), strings.TrimSpace(email)) {
		return nil, errs.NotFoundf("order %d not found", id)
	}
	return o, nil
}

// GetOrdersByStatus returns orders in the given lifecycle state
func (s *Service) GetOrdersByStatus(ctx context.Context, status OrderStatus) ([]Order, error) {
	if !status.IsValid() {
		return nil, errs.Validationf("unknown order status %q", status)
	}
	return s.repo.ListByStatus(ctx, status)
}

// GetOrdersByCustomer returns orders placed with the given phone number
func (s *Service) GetOrdersByCustomer(ctx context.Context, phone string) ([]Order, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, errs.Validation("customer phone is required")
	}
	return s.repo.ListByCustomerPhone(ctx, phone)
}

// GetOrdersByEmail returns orders placed with the given email address,
// used to list a signed-in customer's own orders
func (s *Service) GetOrdersByEmail(ctx context.Context, email string) ([]Order, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errs.Validation("customer email is required")
	}
	return s.repo.ListByCustomerEmail(ctx, email)
}

// GetOrdersByDateRange returns orders created within [from, to]
func (s *Service) GetOrdersByDateRange(ctx context.Context, from, to time.Time) ([]Order, error) {
	if to.Before(from) {
		return nil, errs.Validation("date range end precedes start")
	}
	return s.repo.ListByDateRange(ctx, from, to)
}

// UpdateStatus moves an order forward through its lifecycle. Backward and
// same-state moves fail with an invalid transition error. Skipping states
// forward is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id uint, req *UpdateStatusRequest) (*Order, error) {
	if !req.Status.IsValid() {
		return nil, errs.Validationf("unknown order status %q", req.Status)
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(req.Status) {
		return nil, errs.InvalidTransitionf("cannot move order %s from %s to %s", o.OrderNumber, o.Status, req.Status)
	}

	o.Status = req.Status
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOrder removes an order entirely
func (s *Service) DeleteOrder(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// GetStats aggregates order counts and revenue for the admin dashboard
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{StatusCounts: make(map[OrderStatus]int, len(AllStatuses()))}
	for _, status := range AllStatuses() {
		stats.StatusCounts[status] = 0
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for i := range orders {
		o := &orders[i]
		stats.TotalOrders++
		stats.TotalRevenue += o.Total
		stats.StatusCounts[o.Status]++
		if o.Status == StatusPending {
			stats.PendingOrders++
		}
		if o.Status == StatusDelivered && !o.UpdatedAt.UTC().Before(today) {
			stats.DeliveredToday++
		}
	}
	return stats, nil
}
