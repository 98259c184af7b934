// internal/domain/wishlist/service.go
package wishlist

import (
	"context"

	"github.com/alibix/storefront-api/internal/domain/catalog"
)

// Service handles wishlist business logic
type Service struct {
	store   Store
	catalog *catalog.Service
}

// NewService creates a new wishlist service
func NewService(store Store, catalogService *catalog.Service) *Service {
	return &Service{
		store:   store,
		catalog: catalogService,
	}
}

// ToggleResponse reports the product's membership after a toggle
type ToggleResponse struct {
	ProductID  uint `json:"product_id"`
	Wishlisted bool `json:"wishlisted"`
}

// WishlistResponse carries the wishlisted products in insertion order
type WishlistResponse struct {
	SessionID string            `json:"session_id"`
	Items     []catalog.Product `json:"items"`
	ItemCount int               `json:"item_count"`
}

// Toggle adds the product to the session's wishlist if absent, removes it
// if present. Unknown products are rejected before touching the store.
func (s *Service) Toggle(ctx context.Context, sessionID string, productID uint) (*ToggleResponse, error) {
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	w, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	wishlisted := w.Toggle(productID)

	if err := s.store.Save(ctx, w); err != nil {
		return nil, err
	}

	return &ToggleResponse{ProductID: productID, Wishlisted: wishlisted}, nil
}

// Contains reports whether the product is on the session's wishlist
func (s *Service) Contains(ctx context.Context, sessionID string, productID uint) (bool, error) {
	w, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return w.Contains(productID), nil
}

// GetWishlist resolves the session's wishlist to full products, preserving
// insertion order. Products removed from the catalog since they were
// wishlisted are skipped.
func (s *Service) GetWishlist(ctx context.Context, sessionID string) (*WishlistResponse, error) {
	w, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]catalog.Product, 0, len(w.Items))
	for _, id := range w.Items {
		product, err := s.catalog.GetProduct(ctx, id)
		if err != nil {
			if catalog.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		items = append(items, *product)
	}

	return &WishlistResponse{
		SessionID: sessionID,
		Items:     items,
		ItemCount: len(items),
	}, nil
}

// Clear empties the session's wishlist
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}
