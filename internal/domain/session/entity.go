// internal/domain/session/entity.go
package session

import "time"

// Role distinguishes storefront customers from the store admin
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ExternalIdentity is what the OAuth provider hands back after sign-in
type ExternalIdentity struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Token     string `json:"token"`
}

// Session is a signed-in user record. TokenDigest holds a bcrypt digest
// of the provider token, never the token itself.
type Session struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	Role        Role      `json:"role"`
	TokenDigest string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
