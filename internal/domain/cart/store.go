// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alibix/storefront-api/internal/pkg/errs"
	"github.com/redis/go-redis/v9"
)

// Store is the session persistence boundary for carts. Load returns an empty
// cart, not an error, when the session has none yet.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore persists carts as JSON blobs with a TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// Load retrieves the cart for a session, or an empty cart when none exists
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, errs.Validation("session ID required for cart")
	}

	data, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return NewCart(sessionID), nil
	} else if err != nil {
		return nil, errs.Storage(err, "failed to load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, errs.Storage(err, "failed to decode cart")
	}
	return &cart, nil
}

// Save writes the cart back with a refreshed TTL
func (s *RedisStore) Save(ctx context.Context, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return errs.Storage(err, "failed to encode cart")
	}

	if err := s.client.Set(ctx, cartKey(cart.SessionID), data, s.ttl).Err(); err != nil {
		return errs.Storage(err, "failed to save cart")
	}
	return nil
}

// Delete removes the session's cart
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return errs.Storage(err, "failed to delete cart")
	}
	return nil
}

// MemoryStore is an in-memory cart store used in tests
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string]*Cart)}
}

// Load retrieves the cart for a session, or an empty cart when none exists
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, errs.Validation("session ID required for cart")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if cart, ok := s.carts[sessionID]; ok {
		clone := *cart
		clone.Items = make([]LineItem, len(cart.Items))
		copy(clone.Items, cart.Items)
		return &clone, nil
	}
	return NewCart(sessionID), nil
}

// Save writes the cart back
func (s *MemoryStore) Save(ctx context.Context, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *cart
	clone.Items = make([]LineItem, len(cart.Items))
	copy(clone.Items, cart.Items)
	s.carts[cart.SessionID] = &clone
	return nil
}

// Delete removes the session's cart
func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
