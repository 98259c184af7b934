// internal/domain/session/gate.go
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/pkg/auth"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// Gate owns sign-in, sign-out, and admin checks
type Gate struct {
	store       Store
	jwtManager  *auth.JWTManager
	credentials *auth.CredentialManager
	config      *config.Config
	logger      *logrus.Logger
}

// NewGate creates a new session gate
func NewGate(store Store, jwtManager *auth.JWTManager, credentials *auth.CredentialManager, cfg *config.Config, logger *logrus.Logger) *Gate {
	return &Gate{
		store:       store,
		jwtManager:  jwtManager,
		credentials: credentials,
		config:      cfg,
		logger:      logger,
	}
}

// LoginResponse carries the issued access token and the signed-in session
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	Session     *Session `json:"session"`
}

// Login exchanges a provider identity for a session. Identities missing an
// email or a provider token are rejected. The admin role is granted only to
// the configured store admin email.
func (g *Gate) Login(ctx context.Context, identity *ExternalIdentity) (*LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(identity.Email))
	if email == "" {
		return nil, errs.Auth("sign-in identity has no email")
	}
	if identity.Token == "" {
		return nil, errs.Auth("sign-in identity has no provider token")
	}

	role := RoleUser
	if email == strings.ToLower(g.config.Store.AdminEmail) {
		role = RoleAdmin
	}

	digest, err := g.credentials.DigestToken(identity.Token)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeAuth, "failed to digest provider token")
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:          uuid.New().String(),
		Email:       email,
		Name:        identity.Name,
		AvatarURL:   identity.AvatarURL,
		Role:        role,
		TokenDigest: digest,
		CreatedAt:   now,
		ExpiresAt:   now.Add(g.config.Store.SessionTTL),
	}

	if err := g.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	token, err := g.jwtManager.GenerateAccessToken(sess.ID, sess.Email, sess.Name, role == RoleAdmin)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeAuth, "failed to issue access token")
	}

	g.logger.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"role":       role,
	}).Info("user signed in")

	return &LoginResponse{AccessToken: token, Session: sess}, nil
}

// Current resolves an access token to its live session
func (g *Gate) Current(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := g.jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeAuth, "invalid access token")
	}

	sess, err := g.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.IsExpired() {
		return nil, errs.Auth("session expired")
	}
	return sess, nil
}

// Refresh extends a live session and issues a fresh access token. The
// caller must present the original provider token again; it is checked
// against the digest stored at sign-in.
func (g *Gate) Refresh(ctx context.Context, tokenString, providerToken string) (*LoginResponse, error) {
	sess, err := g.Current(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if providerToken == "" {
		return nil, errs.Auth("provider token is required")
	}
	if err := g.credentials.VerifyToken(providerToken, sess.TokenDigest); err != nil {
		return nil, errs.Auth("provider token does not match session")
	}

	sess.ExpiresAt = time.Now().UTC().Add(g.config.Store.SessionTTL)
	if err := g.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	token, err := g.jwtManager.GenerateAccessToken(sess.ID, sess.Email, sess.Name, sess.Role == RoleAdmin)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeAuth, "failed to issue access token")
	}
	return &LoginResponse{AccessToken: token, Session: sess}, nil
}

// Logout drops the session. Sign-out is best effort and never fails:
// storage problems are logged and swallowed so the client can always
// discard its token.
func (g *Gate) Logout(ctx context.Context, tokenString string) {
	claims, err := g.jwtManager.ValidateAccessToken(tokenString)
	if err != nil {
		return
	}
	if err := g.store.Delete(ctx, claims.SessionID); err != nil {
		g.logger.WithError(err).Warn("failed to delete session on logout")
	}
}

// IsAdmin reports whether the session belongs to the store admin. Both the
// configured admin email and the admin role must match, so a fabricated
// role claim alone never grants access.
func (g *Gate) IsAdmin(sess *Session) bool {
	if sess == nil {
		return false
	}
	return strings.EqualFold(sess.Email, g.config.Store.AdminEmail) && sess.Role == RoleAdmin
}
