// internal/domain/wishlist/entity.go
package wishlist

import "time"

// Wishlist is a session-owned set of product ids preserving insertion order
type Wishlist struct {
	SessionID string    `json:"session_id"`
	Items     []uint    `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWishlist creates an empty wishlist for the session
func NewWishlist(sessionID string) *Wishlist {
	now := time.Now()
	return &Wishlist{
		SessionID: sessionID,
		Items:     []uint{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Contains reports whether the product is on the wishlist
func (w *Wishlist) Contains(productID uint) bool {
	for _, id := range w.Items {
		if id == productID {
			return true
		}
	}
	return false
}

// Toggle adds the product if absent and removes it if present.
// It returns true when the product ends up on the list.
func (w *Wishlist) Toggle(productID uint) bool {
	for i, id := range w.Items {
		if id == productID {
			w.Items = append(w.Items[:i], w.Items[i+1:]...)
			w.UpdatedAt = time.Now()
			return false
		}
	}
	w.Items = append(w.Items, productID)
	w.UpdatedAt = time.Now()
	return true
}
