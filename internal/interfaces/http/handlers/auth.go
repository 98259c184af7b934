// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alibix/storefront-api/internal/domain/session"
	"github.com/alibix/storefront-api/internal/interfaces/http/middleware"
	"github.com/alibix/storefront-api/internal/pkg/auth"
)

// AuthHandler handles sign-in and session endpoints
type AuthHandler struct {
	gate *session.Gate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gate *session.Gate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// LoginRequest carries the identity handed back by the OAuth provider
type LoginRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Token     string `json:"token"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.gate.Login(c.Request.Context(), &session.ExternalIdentity{
		Email:     req.Email,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Token:     req.Token,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data":    response,
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"session":  sess,
			"is_admin": h.gate.IsAdmin(sess),
		},
	})
}

// RefreshRequest carries the provider token presented again on refresh
type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	response, err := h.gate.Refresh(c.Request.Context(), tokenString, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session refreshed",
		"data":    response,
	})
}

// Logout handles POST /auth/logout. Sign-out always succeeds from the
// client's point of view.
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	h.gate.Logout(c.Request.Context(), tokenString)

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
