// internal/pkg/auth/credential.go
package auth

import (
	"fmt"

	"github.com/alibix/storefront-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// CredentialManager digests identity-provider credentials before they are
// persisted in a session record. The raw provider token is never stored.
type CredentialManager struct {
	config *config.Config
}

// NewCredentialManager creates a new credential manager
func NewCredentialManager(cfg *config.Config) *CredentialManager {
	return &CredentialManager{
		config: cfg,
	}
}

// DigestToken hashes a provider token using bcrypt
func (m *CredentialManager) DigestToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token must not be empty")
	}

	// bcrypt input is capped at 72 bytes; provider tokens can be longer
	raw := []byte(token)
	if len(raw) > 72 {
		raw = raw[:72]
	}

	hashedBytes, err := bcrypt.GenerateFromPassword(raw, m.config.Security.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to digest token: %w", err)
	}

	return string(hashedBytes), nil
}

// VerifyToken verifies a provider token against its stored digest
func (m *CredentialManager) VerifyToken(token, digest string) error {
	raw := []byte(token)
	if len(raw) > 72 {
		raw = raw[:72]
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), raw)
}
