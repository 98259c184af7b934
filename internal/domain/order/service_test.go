// internal/domain/order/service_test.go
package order

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/domain/cart"
	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

type testEnv struct {
	orders  *Service
	cart    *cart.Service
	catalog *catalog.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products, err := catalog.NewSeededProductRepository()
	require.NoError(t, err)
	categories, err := catalog.NewSeededCategoryRepository()
	require.NoError(t, err)

	cfg := &config.Config{
		Store: config.StoreConfig{
			FreeShippingThreshold: 2000,
			FlatShippingFee:       200,
			FeaturedLimit:         8,
			TrendingLimit:         6,
			RelatedLimit:          4,
		},
	}

	catalogService := catalog.NewService(products, categories, cfg, rand.New(rand.NewSource(1)))
	cartService := cart.NewService(cart.NewMemoryStore(), catalogService, cfg)
	orderService := NewService(NewMemoryRepository(), cartService, catalogService, cfg)

	return &testEnv{orders: orderService, cart: cartService, catalog: catalogService}
}

func validCheckout() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		Name:          "Ayesha Khan",
		Phone:         "03001234567",
		Address:       "House 12, Street 4, Gulberg",
		City:          "Lahore",
		PaymentMethod: PaymentEasypaisa,
	}
}

func TestPlaceOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)

	o, err := env.orders.PlaceOrder(ctx, "s1", validCheckout())
	require.NoError(t, err)

	assert.Equal(t, uint(1), o.ID)
	assert.Equal(t, "ORD-001", o.OrderNumber)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(1000), o.Subtotal)
	assert.Equal(t, int64(200), o.ShippingFee)
	assert.Equal(t, int64(1200), o.Total)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Leather Wallet", o.Items[0].Title)

	// Cart is cleared and stock decremented.
	resp, err := env.cart.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)

	product, err := env.catalog.GetProduct(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 39, product.Stock)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.PlaceOrder(context.Background(), "s1", validCheckout())
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestPlaceOrderContactValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlaceOrderRequest)
	}{
		{"blank name", func(r *PlaceOrderRequest) { r.Name = "   " }},
		{"blank phone", func(r *PlaceOrderRequest) { r.Phone = "" }},
		{"blank address", func(r *PlaceOrderRequest) { r.Address = " " }},
		{"blank city", func(r *PlaceOrderRequest) { r.City = "   " }},
		{"unsupported payment method", func(r *PlaceOrderRequest) { r.PaymentMethod = "bitcoin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()

			_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
			require.NoError(t, err)

			req := validCheckout()
			tt.mutate(req)

			_, err = env.orders.PlaceOrder(ctx, "s1", req)
			assert.True(t, errs.Is(err, errs.CodeValidation))

			// A failed placement leaves the cart untouched and records
			// nothing.
			resp, err := env.cart.GetCart(ctx, "s1")
			require.NoError(t, err)
			assert.Len(t, resp.Items, 1)

			orders, err := env.orders.GetOrders(ctx)
			require.NoError(t, err)
			assert.Empty(t, orders)
		})
	}
}

func TestPlaceOrderCODBlockedForRestrictedItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// The USB cable fixture is a restricted import.
	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 3, Quantity: 1})
	require.NoError(t, err)

	req := validCheckout()
	req.PaymentMethod = PaymentCOD

	_, err = env.orders.PlaceOrder(ctx, "s1", req)
	assert.True(t, errs.Is(err, errs.CodeValidation))

	// The same cart goes through with a digital payment method.
	req.PaymentMethod = PaymentJazzCash
	o, err := env.orders.PlaceOrder(ctx, "s1", req)
	require.NoError(t, err)
	assert.Equal(t, PaymentJazzCash, o.PaymentMethod)
}

func TestPlaceOrderCODAllowedForRegularItems(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)

	req := validCheckout()
	req.PaymentMethod = PaymentCOD

	o, err := env.orders.PlaceOrder(ctx, "s1", req)
	require.NoError(t, err)
	assert.Equal(t, PaymentCOD, o.PaymentMethod)
}

func TestPlaceOrderSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
		require.NoError(t, err)

		o, err := env.orders.PlaceOrder(ctx, "s1", validCheckout())
		require.NoError(t, err)
		assert.Equal(t, uint(i), o.ID)
	}
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)
	placed, err := env.orders.PlaceOrder(ctx, "s1", validCheckout())
	require.NoError(t, err)

	o, err := env.orders.UpdateStatus(ctx, placed.ID, &UpdateStatusRequest{Status: StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, o.Status)
	assert.True(t, o.UpdatedAt.After(o.CreatedAt) || o.UpdatedAt.Equal(o.CreatedAt))

	// Backward move is rejected and the stored status is untouched.
	_, err = env.orders.UpdateStatus(ctx, placed.ID, &UpdateStatusRequest{Status: StatusPacked})
	assert.True(t, errs.Is(err, errs.CodeInvalidTransition))

	stored, err := env.orders.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, stored.Status)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.UpdateStatus(context.Background(), 1, &UpdateStatusRequest{Status: "Lost"})
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestUpdateStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.orders.UpdateStatus(context.Background(), 404, &UpdateStatusRequest{Status: StatusPacked})
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestGetOrdersByStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
		require.NoError(t, err)
		_, err = env.orders.PlaceOrder(ctx, "s1", validCheckout())
		require.NoError(t, err)
	}

	_, err := env.orders.UpdateStatus(ctx, 1, &UpdateStatusRequest{Status: StatusDelivered})
	require.NoError(t, err)

	pending, err := env.orders.GetOrdersByStatus(ctx, StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	delivered, err := env.orders.GetOrdersByStatus(ctx, StatusDelivered)
	require.NoError(t, err)
	assert.Len(t, delivered, 1)

	_, err = env.orders.GetOrdersByStatus(ctx, "Lost")
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestGetOrdersByCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)
	_, err = env.orders.PlaceOrder(ctx, "s1", validCheckout())
	require.NoError(t, err)

	orders, err := env.orders.GetOrdersByCustomer(ctx, "03001234567")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = env.orders.GetOrdersByCustomer(ctx, "03009999999")
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = env.orders.GetOrdersByCustomer(ctx, "  ")
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestGetOrdersByEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)

	req := validCheckout()
	req.Email = "Ayesha@Example.com"
	_, err = env.orders.PlaceOrder(ctx, "s1", req)
	require.NoError(t, err)

	orders, err := env.orders.GetOrdersByEmail(ctx, "ayesha@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = env.orders.GetOrdersByEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = env.orders.GetOrdersByEmail(ctx, " ")
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestGetOrderForCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)

	req := validCheckout()
	req.Email = "ayesha@example.com"
	placed, err := env.orders.PlaceOrder(ctx, "s1", req)
	require.NoError(t, err)

	o, err := env.orders.GetOrderForCustomer(ctx, placed.ID, "Ayesha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, placed.ID, o.ID)

	// Another customer's lookup of the same id reads as not found, so
	// sequential ids reveal nothing about other people's orders.
	_, err = env.orders.GetOrderForCustomer(ctx, placed.ID, "other@example.com")
	assert.True(t, errs.Is(err, errs.CodeNotFound))

	_, err = env.orders.GetOrderForCustomer(ctx, 999, "ayesha@example.com")
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestGetOrdersByDateRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)
	_, err = env.orders.PlaceOrder(ctx, "s1", validCheckout())
	require.NoError(t, err)

	now := time.Now().UTC()

	orders, err := env.orders.GetOrdersByDateRange(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = env.orders.GetOrdersByDateRange(ctx, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = env.orders.GetOrdersByDateRange(ctx, now, now.Add(-time.Hour))
	assert.True(t, errs.Is(err, errs.CodeValidation))
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)
	placed, err := env.orders.PlaceOrder(ctx, "s1", validCheckout())
	require.NoError(t, err)

	require.NoError(t, env.orders.DeleteOrder(ctx, placed.ID))

	_, err = env.orders.GetOrder(ctx, placed.ID)
	assert.True(t, errs.Is(err, errs.CodeNotFound))

	err = env.orders.DeleteOrder(ctx, placed.ID)
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestGetStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := env.cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
		require.NoError(t, err)
		_, err = env.orders.PlaceOrder(ctx, "s1", validCheckout())
		require.NoError(t, err)
	}
	_, err := env.orders.UpdateStatus(ctx, 1, &UpdateStatusRequest{Status: StatusDelivered})
	require.NoError(t, err)

	stats, err := env.orders.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, int64(3600), stats.TotalRevenue)
	assert.Equal(t, 2, stats.PendingOrders)
	assert.Equal(t, 2, stats.StatusCounts[StatusPending])
	assert.Equal(t, 1, stats.StatusCounts[StatusDelivered])
	assert.Equal(t, 1, stats.DeliveredToday)

	// Every lifecycle state reports a count, zero included.
	for _, status := range AllStatuses() {
		_, ok := stats.StatusCounts[status]
		assert.True(t, ok, "missing count for %s", status)
	}
	assert.Equal(t, 0, stats.StatusCounts[StatusShipped])
}
