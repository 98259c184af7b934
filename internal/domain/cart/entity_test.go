// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibix/storefront-api/internal/domain/catalog"
)

const (
	freeShippingThreshold = 2000
	flatShippingFee       = 200
)

func wallet() catalog.Product {
	return catalog.Product{
		ID:       7,
		Title:    "Leather Wallet",
		Price:    1000,
		Stock:    40,
		Category: "accessories",
	}
}

func speaker() catalog.Product {
	return catalog.Product{
		ID:       4,
		Title:    "Bluetooth Speaker",
		Price:    12300,
		Stock:    15,
		Category: "electronics",
	}
}

func TestAddMergesSameProductAndVariant(t *testing.T) {
	c := NewCart("s1")

	c.Add(wallet(), 1, "Brown")
	c.Add(wallet(), 2, "Brown")

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

func TestAddKeepsDistinctVariantsApart(t *testing.T) {
	c := NewCart("s1")

	c.Add(wallet(), 1, "Brown")
	c.Add(wallet(), 1, "Black")

	assert.Len(t, c.Items, 2)
}

func TestAddDefaultsNonPositiveQuantityToOne(t *testing.T) {
	c := NewCart("s1")

	c.Add(wallet(), 0, "")
	c.Add(speaker(), -3, "")

	require.Len(t, c.Items, 2)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestAddSnapshotsDiscountedPrice(t *testing.T) {
	discounted := int64(7800)
	p := catalog.Product{ID: 1, Title: "Wireless Headphones", Price: 8500, DiscountedPrice: &discounted, Stock: 24}

	c := NewCart("s1")
	c.Add(p, 1, "")

	assert.Equal(t, int64(7800), c.Items[0].Price)
}

func TestLinePriceImmuneToLaterCatalogChanges(t *testing.T) {
	p := wallet()
	c := NewCart("s1")
	c.Add(p, 1, "")

	p.Price = 9999

	assert.Equal(t, int64(1000), c.Items[0].Price)
	assert.Equal(t, int64(1000), c.Subtotal())
}

func TestRemoveAbsentItemIsNoOp(t *testing.T) {
	c := NewCart("s1")
	c.Add(wallet(), 1, "")

	c.Remove(999, "")
	c.Remove(7, "Brown")

	assert.Len(t, c.Items, 1)
}

func TestSetQuantity(t *testing.T) {
	c := NewCart("s1")
	c.Add(wallet(), 1, "")

	c.SetQuantity(7, "", 5)
	assert.Equal(t, 5, c.Items[0].Quantity)

	c.SetQuantity(7, "", 0)
	assert.Empty(t, c.Items)
}

func TestShippingFee(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"empty cart ships free", 0, 0},
		{"below threshold pays flat fee", 1000, 200},
		{"exactly at threshold still pays", 2000, 200},
		{"just above threshold ships free", 2001, 0},
		{"well above threshold ships free", 12300, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCart("s1")
			if tt.subtotal > 0 {
				c.Add(catalog.Product{ID: 1, Title: "Item", Price: tt.subtotal, Stock: 5}, 1, "")
			}
			assert.Equal(t, tt.want, c.ShippingFee(freeShippingThreshold, flatShippingFee))
		})
	}
}

func TestTotalsAroundThreshold(t *testing.T) {
	c := NewCart("s1")
	c.Add(wallet(), 1, "")

	totals := c.CalculateTotals(freeShippingThreshold, flatShippingFee)
	assert.Equal(t, int64(1000), totals.Subtotal)
	assert.Equal(t, int64(200), totals.ShippingFee)
	assert.Equal(t, int64(1200), totals.Total)

	// A second unit lands exactly on the threshold, which still pays
	// shipping.
	c.Add(wallet(), 1, "")

	totals = c.CalculateTotals(freeShippingThreshold, flatShippingFee)
	assert.Equal(t, int64(2000), totals.Subtotal)
	assert.Equal(t, int64(200), totals.ShippingFee)
	assert.Equal(t, int64(2200), totals.Total)
}

func TestHasRestrictedPaymentItem(t *testing.T) {
	c := NewCart("s1")
	c.Add(wallet(), 1, "")
	assert.False(t, c.HasRestrictedPaymentItem())

	c.Add(catalog.Product{ID: 3, Title: "USB Cable", Price: 1500, Stock: 120, IsChineseProduct: true}, 1, "")
	assert.True(t, c.HasRestrictedPaymentItem())
}

func TestCalculateTotalsCounts(t *testing.T) {
	c := NewCart("s1")
	c.Add(wallet(), 2, "")
	c.Add(speaker(), 1, "")

	totals := c.CalculateTotals(freeShippingThreshold, flatShippingFee)
	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 3, totals.TotalQuantity)
	assert.Equal(t, int64(14300), totals.Subtotal)
	assert.Equal(t, int64(0), totals.ShippingFee)
	assert.Equal(t, int64(14300), totals.Total)
}
