// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alibix/storefront-api/internal/domain/wishlist"
	"github.com/alibix/storefront-api/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	sessionID := middleware.GetCartSessionID(c)

	response, err := h.wishlistService.GetWishlist(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": response})
}

// ToggleWishlist handles POST /wishlist/:id/toggle
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	sessionID := middleware.GetCartSessionID(c)

	productID, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.wishlistService.Toggle(c.Request.Context(), sessionID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Item removed from wishlist"
	if response.Wishlisted {
		message = "Item added to wishlist"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    response,
	})
}

// CheckWishlist handles GET /wishlist/:id
func (h *WishlistHandler) CheckWishlist(c *gin.Context) {
	sessionID := middleware.GetCartSessionID(c)

	productID, ok := parseID(c)
	if !ok {
		return
	}

	contained, err := h.wishlistService.Contains(c.Request.Context(), sessionID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"product_id": productID,
			"wishlisted": contained,
		},
	})
}

// ClearWishlist handles DELETE /wishlist
func (h *WishlistHandler) ClearWishlist(c *gin.Context) {
	sessionID := middleware.GetCartSessionID(c)

	if err := h.wishlistService.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
}
