// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/alibix/storefront-api/internal/domain/catalog"
)

// LineItem represents a cart entry, keyed by (product, variant). Price is the
// unit price captured at add time; later catalog price changes do not affect
// it. The product snapshot is kept for display and payment-rule checks.
type LineItem struct {
	ProductID       uint            `json:"product_id"`
	SelectedVariant string          `json:"selected_variant,omitempty"`
	Quantity        int             `json:"quantity"`
	Price           int64           `json:"price"`
	Product         catalog.Product `json:"product"`
	AddedAt         time.Time       `json:"added_at"`
}

// Cart represents a session-owned shopping cart
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Totals represents calculated cart totals. Amounts are whole rupees.
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct line items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	Subtotal      int64 `json:"subtotal"`
	ShippingFee   int64 `json:"shipping_fee"`
	Total         int64 `json:"total"`
}

// NewCart creates an empty cart for a session
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Items:     []LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// find returns the index of the line item matching (productID, variant),
// or -1 when absent
func (c *Cart) find(productID uint, variant string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].SelectedVariant == variant {
			return i
		}
	}
	return -1
}

// Add merges quantity into an existing (product, variant) line item, or
// appends a new one with the unit price snapshot taken now. The discounted
// price wins when present.
func (c *Cart) Add(product catalog.Product, quantity int, variant string) {
	if quantity <= 0 {
		quantity = 1
	}

	if i := c.find(product.ID, variant); i >= 0 {
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, LineItem{
			ProductID:       product.ID,
			SelectedVariant: variant,
			Quantity:        quantity,
			Price:           product.EffectivePrice(),
			Product:         product,
			AddedAt:         time.Now().UTC(),
		})
	}
	c.UpdatedAt = time.Now().UTC()
}

// Remove deletes the matching line item. Removing an absent item is a no-op.
func (c *Cart) Remove(productID uint, variant string) {
	if i := c.find(productID, variant); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		c.UpdatedAt = time.Now().UTC()
	}
}

// SetQuantity replaces the quantity of the matching line item. A quantity of
// zero or less removes the item. Setting an absent item is a no-op.
func (c *Cart) SetQuantity(productID uint, variant string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID, variant)
		return
	}
	if i := c.find(productID, variant); i >= 0 {
		c.Items[i].Quantity = quantity
		c.UpdatedAt = time.Now().UTC()
	}
}

// IsEmpty reports whether the cart holds no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal sums captured price times quantity over all line items
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, item := range c.Items {
		subtotal += item.Price * int64(item.Quantity)
	}
	return subtotal
}

// ShippingFee returns the flat fee, waived above the free-shipping threshold.
// An empty cart ships free. A subtotal of exactly the threshold still pays.
func (c *Cart) ShippingFee(threshold, flatFee int64) int64 {
	subtotal := c.Subtotal()
	if subtotal == 0 {
		return 0
	}
	if subtotal > threshold {
		return 0
	}
	return flatFee
}

// Total returns subtotal plus shipping
func (c *Cart) Total(threshold, flatFee int64) int64 {
	return c.Subtotal() + c.ShippingFee(threshold, flatFee)
}

// HasRestrictedPaymentItem reports whether any line item's product snapshot
// requires a non-cash payment method
func (c *Cart) HasRestrictedPaymentItem() bool {
	for _, item := range c.Items {
		if item.Product.IsChineseProduct {
			return true
		}
	}
	return false
}

// CalculateTotals derives the full totals summary
func (c *Cart) CalculateTotals(threshold, flatFee int64) Totals {
	var totals Totals
	totals.ItemCount = len(c.Items)
	for _, item := range c.Items {
		totals.TotalQuantity += item.Quantity
	}
	totals.Subtotal = c.Subtotal()
	totals.ShippingFee = c.ShippingFee(threshold, flatFee)
	totals.Total = totals.Subtotal + totals.ShippingFee
	return totals
}
