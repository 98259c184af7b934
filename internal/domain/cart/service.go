// internal/domain/cart/service.go
package cart

import (
	"context"
	"time"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// Service handles cart business logic for session-owned carts
type Service struct {
	store   Store
	catalog *catalog.Service
	config  *config.Config
}

// NewService creates a new cart service
func NewService(store Store, catalogService *catalog.Service, cfg *config.Config) *Service {
	return &Service{
		store:   store,
		catalog: catalogService,
		config:  cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID       uint   `json:"product_id" binding:"required"`
	Quantity        int    `json:"quantity"`
	SelectedVariant string `json:"selected_variant"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity        int    `json:"quantity"`
	SelectedVariant string `json:"selected_variant"`
}

// CartResponse represents a cart with derived totals
type CartResponse struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	Totals    Totals     `json:"totals"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GetCart retrieves the session's cart with totals
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// AddToCart adds a product to the session's cart. Adding an existing
// (product, variant) pair increments its quantity instead of duplicating.
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.IsInStock() {
		return nil, errs.Validationf("product %q is out of stock", product.Title)
	}

	if req.SelectedVariant != "" && !containsVariant(product.Variants, req.SelectedVariant) {
		return nil, errs.Validationf("unknown variant %q for product %q", req.SelectedVariant, product.Title)
	}

	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Add(*product, req.Quantity, req.SelectedVariant)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// UpdateCartItem replaces the quantity of a line item. Zero or negative
// quantity removes it.
func (s *Service) UpdateCartItem(ctx context.Context, sessionID string, productID uint, req *UpdateCartItemRequest) (*CartResponse, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.SetQuantity(productID, req.SelectedVariant, req.Quantity)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// RemoveFromCart removes a line item. Removing an absent item is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID uint, variant string) (*CartResponse, error) {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Remove(productID, variant)

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.respond(c), nil
}

// ClearCart removes all items from the session's cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// LoadCart returns the raw cart aggregate, used by order placement
func (s *Service) LoadCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.store.Load(ctx, sessionID)
}

func (s *Service) respond(c *Cart) *CartResponse {
	return &CartResponse{
		SessionID: c.SessionID,
		Items:     c.Items,
		Totals:    c.CalculateTotals(s.config.Store.FreeShippingThreshold, s.config.Store.FlatShippingFee),
		UpdatedAt: c.UpdatedAt,
	}
}

func containsVariant(variants []string, v string) bool {
	for _, candidate := range variants {
		if candidate == v {
			return true
		}
	}
	return false
}
