// internal/domain/wishlist/service_test.go
package wishlist

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

func newTestWishlistService(t *testing.T) *Service {
	t.Helper()

	products, err := catalog.NewSeededProductRepository()
	require.NoError(t, err)
	categories, err := catalog.NewSeededCategoryRepository()
	require.NoError(t, err)

	cfg := &config.Config{
		Store: config.StoreConfig{
			FeaturedLimit: 8,
			TrendingLimit: 6,
			RelatedLimit:  4,
		},
	}

	catalogService := catalog.NewService(products, categories, cfg, rand.New(rand.NewSource(1)))
	return NewService(NewMemoryStore(), catalogService)
}

func TestToggleAddsThenRemoves(t *testing.T) {
	svc := newTestWishlistService(t)
	ctx := context.Background()

	resp, err := svc.Toggle(ctx, "s1", 7)
	require.NoError(t, err)
	assert.True(t, resp.Wishlisted)

	contained, err := svc.Contains(ctx, "s1", 7)
	require.NoError(t, err)
	assert.True(t, contained)

	resp, err = svc.Toggle(ctx, "s1", 7)
	require.NoError(t, err)
	assert.False(t, resp.Wishlisted)

	contained, err = svc.Contains(ctx, "s1", 7)
	require.NoError(t, err)
	assert.False(t, contained)
}

func TestToggleUnknownProduct(t *testing.T) {
	svc := newTestWishlistService(t)

	_, err := svc.Toggle(context.Background(), "s1", 999)
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestGetWishlistPreservesInsertionOrder(t *testing.T) {
	svc := newTestWishlistService(t)
	ctx := context.Background()

	for _, id := range []uint{4, 1, 9} {
		_, err := svc.Toggle(ctx, "s1", id)
		require.NoError(t, err)
	}

	resp, err := svc.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, uint(4), resp.Items[0].ID)
	assert.Equal(t, uint(1), resp.Items[1].ID)
	assert.Equal(t, uint(9), resp.Items[2].ID)
	assert.Equal(t, 3, resp.ItemCount)
}

func TestReAddGoesToEnd(t *testing.T) {
	svc := newTestWishlistService(t)
	ctx := context.Background()

	for _, id := range []uint{4, 1} {
		_, err := svc.Toggle(ctx, "s1", id)
		require.NoError(t, err)
	}
	// Toggling 4 off and back on moves it behind 1.
	_, err := svc.Toggle(ctx, "s1", 4)
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, "s1", 4)
	require.NoError(t, err)

	resp, err := svc.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, uint(1), resp.Items[0].ID)
	assert.Equal(t, uint(4), resp.Items[1].ID)
}

func TestWishlistsIsolatedBySession(t *testing.T) {
	svc := newTestWishlistService(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "s1", 7)
	require.NoError(t, err)

	contained, err := svc.Contains(ctx, "s2", 7)
	require.NoError(t, err)
	assert.False(t, contained)
}

func TestClearWishlist(t *testing.T) {
	svc := newTestWishlistService(t)
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "s1", 7)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "s1"))

	resp, err := svc.GetWishlist(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}
