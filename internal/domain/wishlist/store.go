// internal/domain/wishlist/store.go
package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// Store persists wishlists keyed by session id
type Store interface {
	// Load returns the session's wishlist, or an empty one when none exists
	Load(ctx context.Context, sessionID string) (*Wishlist, error)
	Save(ctx context.Context, wishlist *Wishlist) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps wishlists as JSON blobs in Redis
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed wishlist store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func wishlistKey(sessionID string) string {
	return fmt.Sprintf("wishlist:session:%s", sessionID)
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Wishlist, error) {
	if sessionID == "" {
		return nil, errs.Validation("session id is required")
	}

	data, err := s.client.Get(ctx, wishlistKey(sessionID)).Result()
	if err == redis.Nil {
		return NewWishlist(sessionID), nil
	}
	if err != nil {
		return nil, errs.Storage(err, "failed to load wishlist")
	}

	var w Wishlist
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, errs.Storage(err, "failed to decode wishlist")
	}
	return &w, nil
}

func (s *RedisStore) Save(ctx context.Context, wishlist *Wishlist) error {
	if wishlist.SessionID == "" {
		return errs.Validation("session id is required")
	}

	data, err := json.Marshal(wishlist)
	if err != nil {
		return errs.Storage(err, "failed to encode wishlist")
	}
	if err := s.client.Set(ctx, wishlistKey(wishlist.SessionID), data, s.ttl).Err(); err != nil {
		return errs.Storage(err, "failed to save wishlist")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errs.Validation("session id is required")
	}
	if err := s.client.Del(ctx, wishlistKey(sessionID)).Err(); err != nil {
		return errs.Storage(err, "failed to delete wishlist")
	}
	return nil
}

// MemoryStore is an in-process wishlist store used by the memory backend and tests
type MemoryStore struct {
	mu    sync.RWMutex
	lists map[string]*Wishlist
}

// NewMemoryStore creates an empty in-memory wishlist store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{lists: make(map[string]*Wishlist)}
}

func (s *MemoryStore) Load(ctx context.Context, sessionID string) (*Wishlist, error) {
	if sessionID == "" {
		return nil, errs.Validation("session id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.lists[sessionID]
	if !ok {
		return NewWishlist(sessionID), nil
	}

	clone := *stored
	clone.Items = append([]uint(nil), stored.Items...)
	return &clone, nil
}

func (s *MemoryStore) Save(ctx context.Context, wishlist *Wishlist) error {
	if wishlist.SessionID == "" {
		return errs.Validation("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *wishlist
	clone.Items = append([]uint(nil), wishlist.Items...)
	s.lists[wishlist.SessionID] = &clone
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lists, sessionID)
	return nil
}
