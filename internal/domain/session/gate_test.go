// internal/domain/session/gate_test.go
package session

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/pkg/auth"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

const adminEmail = "alibix07@gmail.com"

func newTestGate(t *testing.T) *Gate {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-long-enough!",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: bcrypt.MinCost,
		},
		Store: config.StoreConfig{
			AdminEmail: adminEmail,
			SessionTTL: time.Hour,
		},
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewGate(NewMemoryStore(), auth.NewJWTManager(cfg), auth.NewCredentialManager(cfg), cfg, logger)
}

func TestLogin(t *testing.T) {
	gate := newTestGate(t)

	resp, err := gate.Login(context.Background(), &ExternalIdentity{
		Email: "customer@example.com",
		Name:  "Sana",
		Token: "provider-token",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "customer@example.com", resp.Session.Email)
	assert.Equal(t, RoleUser, resp.Session.Role)
	assert.NotEqual(t, "provider-token", resp.Session.TokenDigest)
}

func TestLoginRejectsIncompleteIdentity(t *testing.T) {
	gate := newTestGate(t)

	tests := []struct {
		name     string
		identity ExternalIdentity
	}{
		{"missing email", ExternalIdentity{Name: "Sana", Token: "tok"}},
		{"blank email", ExternalIdentity{Email: "   ", Token: "tok"}},
		{"missing token", ExternalIdentity{Email: "sana@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Login(context.Background(), &tt.identity)
			assert.True(t, errs.Is(err, errs.CodeAuth))
		})
	}
}

func TestLoginGrantsAdminRoleToConfiguredEmail(t *testing.T) {
	gate := newTestGate(t)

	resp, err := gate.Login(context.Background(), &ExternalIdentity{
		Email: "AliBix07@Gmail.com",
		Token: "tok",
	})
	require.NoError(t, err)

	assert.Equal(t, RoleAdmin, resp.Session.Role)
	assert.True(t, gate.IsAdmin(resp.Session))
}

func TestIsAdminRequiresEmailAndRole(t *testing.T) {
	gate := newTestGate(t)

	tests := []struct {
		name string
		sess *Session
		want bool
	}{
		{"admin email and role", &Session{Email: adminEmail, Role: RoleAdmin}, true},
		{"fabricated role claim on other email", &Session{Email: "attacker@example.com", Role: RoleAdmin}, false},
		{"admin email without role", &Session{Email: adminEmail, Role: RoleUser}, false},
		{"nil session", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gate.IsAdmin(tt.sess))
		})
	}
}

func TestCurrent(t *testing.T) {
	gate := newTestGate(t)
	ctx := context.Background()

	resp, err := gate.Login(ctx, &ExternalIdentity{Email: "sana@example.com", Token: "tok"})
	require.NoError(t, err)

	sess, err := gate.Current(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.ID, sess.ID)
	assert.Equal(t, "sana@example.com", sess.Email)
}

func TestCurrentRejectsGarbageToken(t *testing.T) {
	gate := newTestGate(t)

	_, err := gate.Current(context.Background(), "not-a-jwt")
	assert.True(t, errs.Is(err, errs.CodeAuth))
}

func TestRefresh(t *testing.T) {
	gate := newTestGate(t)
	ctx := context.Background()

	resp, err := gate.Login(ctx, &ExternalIdentity{Email: "sana@example.com", Token: "tok"})
	require.NoError(t, err)
	expiry := resp.Session.ExpiresAt

	refreshed, err := gate.Refresh(ctx, resp.AccessToken, "tok")
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, resp.Session.ID, refreshed.Session.ID)
	assert.False(t, refreshed.Session.ExpiresAt.Before(expiry))

	sess, err := gate.Current(ctx, refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Session.ID, sess.ID)
}

func TestRefreshRejectsWrongProviderToken(t *testing.T) {
	gate := newTestGate(t)
	ctx := context.Background()

	resp, err := gate.Login(ctx, &ExternalIdentity{Email: "sana@example.com", Token: "tok"})
	require.NoError(t, err)

	_, err = gate.Refresh(ctx, resp.AccessToken, "someone-elses-token")
	assert.True(t, errs.Is(err, errs.CodeAuth))

	_, err = gate.Refresh(ctx, resp.AccessToken, "")
	assert.True(t, errs.Is(err, errs.CodeAuth))

	_, err = gate.Refresh(ctx, "not-a-jwt", "tok")
	assert.True(t, errs.Is(err, errs.CodeAuth))
}

func TestLogout(t *testing.T) {
	gate := newTestGate(t)
	ctx := context.Background()

	resp, err := gate.Login(ctx, &ExternalIdentity{Email: "sana@example.com", Token: "tok"})
	require.NoError(t, err)

	gate.Logout(ctx, resp.AccessToken)

	_, err = gate.Current(ctx, resp.AccessToken)
	assert.True(t, errs.Is(err, errs.CodeAuth))
}

func TestLogoutNeverFails(t *testing.T) {
	gate := newTestGate(t)
	ctx := context.Background()

	// Garbage tokens and repeated sign-outs are silently ignored.
	gate.Logout(ctx, "not-a-jwt")
	gate.Logout(ctx, "")

	resp, err := gate.Login(ctx, &ExternalIdentity{Email: "sana@example.com", Token: "tok"})
	require.NoError(t, err)

	gate.Logout(ctx, resp.AccessToken)
	gate.Logout(ctx, resp.AccessToken)
}
