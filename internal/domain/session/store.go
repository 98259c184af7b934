// internal/domain/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// Store persists signed-in sessions keyed by session id
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions as JSON blobs in Redis with the session TTL
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// redisSession carries the token digest, which Session keeps out of its
// public JSON form
type redisSession struct {
	Session
	TokenDigest string `json:"token_digest"`
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errs.Auth("session id is required")
	}

	data, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, errs.Auth("session not found")
	}
	if err != nil {
		return nil, errs.Storage(err, "failed to load session")
	}

	var stored redisSession
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, errs.Storage(err, "failed to decode session")
	}
	sess := stored.Session
	sess.TokenDigest = stored.TokenDigest
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	if session.ID == "" {
		return errs.Auth("session id is required")
	}

	data, err := json.Marshal(redisSession{Session: *session, TokenDigest: session.TokenDigest})
	if err != nil {
		return errs.Storage(err, "failed to encode session")
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return errs.Storage(err, "failed to save session")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return errs.Storage(err, "failed to delete session")
	}
	return nil
}

// MemoryStore is an in-process session store used by the memory backend
// and tests
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errs.Auth("session id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil, errs.Auth("session not found")
	}
	clone := *stored
	return &clone, nil
}

func (s *MemoryStore) Save(ctx context.Context, session *Session) error {
	if session.ID == "" {
		return errs.Auth("session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
