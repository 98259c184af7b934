// internal/interfaces/http/routes/routes_test.go
package routes

import (
	"bytes"
	"context"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/domain/cart"
	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/domain/order"
	"github.com/alibix/storefront-api/internal/domain/session"
	"github.com/alibix/storefront-api/internal/domain/wishlist"
	"github.com/alibix/storefront-api/internal/pkg/auth"
)

type routerEnv struct {
	engine *gin.Engine
	svc    *Services
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-long-enough!",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: bcrypt.MinCost,
		},
		Store: config.StoreConfig{
			AdminEmail:            "alibix07@gmail.com",
			FreeShippingThreshold: 2000,
			FlatShippingFee:       200,
			FeaturedLimit:         8,
			TrendingLimit:         6,
			RelatedLimit:          4,
			ImageSearchLimit:      5,
			SessionTTL:            time.Hour,
		},
	}

	products, err := catalog.NewSeededProductRepository()
	require.NoError(t, err)
	categories, err := catalog.NewSeededCategoryRepository()
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	catalogService := catalog.NewService(products, categories, cfg, rand.New(rand.NewSource(1)))
	cartService := cart.NewService(cart.NewMemoryStore(), catalogService, cfg)
	wishlistService := wishlist.NewService(wishlist.NewMemoryStore(), catalogService)
	orderService := order.NewService(order.NewMemoryRepository(), cartService, catalogService, cfg)
	gate := session.NewGate(session.NewMemoryStore(), auth.NewJWTManager(cfg), auth.NewCredentialManager(cfg), cfg, logger)

	svc := &Services{
		Catalog:  catalogService,
		Cart:     cartService,
		Wishlist: wishlistService,
		Order:    orderService,
		Gate:     gate,
	}

	engine := gin.New()
	SetupRoutes(engine.Group("/api/v1"), svc, cfg)

	return &routerEnv{engine: engine, svc: svc}
}

func (env *routerEnv) placeOrder(t *testing.T, email string) *order.Order {
	t.Helper()
	ctx := context.Background()

	_, err := env.svc.Cart.AddToCart(ctx, "s1", &cart.AddToCartRequest{ProductID: 7, Quantity: 1})
	require.NoError(t, err)

	o, err := env.svc.Order.PlaceOrder(ctx, "s1", &order.PlaceOrderRequest{
		Name:          "Ayesha Khan",
		Phone:         "03001234567",
		Email:         email,
		Address:       "House 12, Street 4, Gulberg",
		City:          "Lahore",
		PaymentMethod: order.PaymentEasypaisa,
	})
	require.NoError(t, err)
	return o
}

func (env *routerEnv) loginToken(t *testing.T, email string) string {
	t.Helper()

	resp, err := env.svc.Gate.Login(context.Background(), &session.ExternalIdentity{
		Email: email,
		Name:  "Test User",
		Token: "provider-token",
	})
	require.NoError(t, err)
	return resp.AccessToken
}

func (env *routerEnv) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)
	return rec
}

func TestOrderDetailRequiresAuthentication(t *testing.T) {
	env := newRouterEnv(t)
	env.placeOrder(t, "ayesha@example.com")

	rec := env.get("/api/v1/orders/1", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Ayesha Khan")
	assert.NotContains(t, rec.Body.String(), "03001234567")
}

func TestOrderDetailHiddenFromOtherCustomers(t *testing.T) {
	env := newRouterEnv(t)
	env.placeOrder(t, "ayesha@example.com")

	token := env.loginToken(t, "stranger@example.com")
	rec := env.get("/api/v1/orders/1", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Ayesha Khan")
}

func TestOrderDetailVisibleToOwner(t *testing.T) {
	env := newRouterEnv(t)
	env.placeOrder(t, "ayesha@example.com")

	token := env.loginToken(t, "ayesha@example.com")
	rec := env.get("/api/v1/orders/1", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORD-001")
}

func TestOrderDetailVisibleToAdmin(t *testing.T) {
	env := newRouterEnv(t)
	env.placeOrder(t, "ayesha@example.com")

	token := env.loginToken(t, "alibix07@gmail.com")
	rec := env.get("/api/v1/admin/orders/1", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ORD-001")
}

func TestImageSearchEndpoint(t *testing.T) {
	env := newRouterEnv(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-a-real-jpeg"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/search/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "photo.jpg")
}

func TestImageSearchRequiresFile(t *testing.T) {
	env := newRouterEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/search/image", nil)
	rec := httptest.NewRecorder()
	env.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
