// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alibix/storefront-api/internal/domain/order"
	"github.com/alibix/storefront-api/internal/interfaces/http/middleware"
	"github.com/alibix/storefront-api/internal/pkg/errs"
)

// OrderHandler handles checkout and admin order endpoints
type OrderHandler struct {
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder handles POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	sessionID := middleware.GetCartSessionID(c)

	var req order.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	placed, err := h.orderService.PlaceOrder(c.Request.Context(), sessionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// MyOrder handles GET /orders/:id, scoped to the signed-in session's email
func (h *OrderHandler) MyOrder(c *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orderService.GetOrderForCustomer(c.Request.Context(), id, sess.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": o})
}

// GetOrder handles GET /admin/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	o, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": o})
}

// MyOrders handles GET /orders, scoped to the signed-in session's email
func (h *OrderHandler) MyOrders(c *gin.Context) {
	sess, ok := middleware.GetSessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orders, err := h.orderService.GetOrdersByEmail(c.Request.Context(), sess.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
}

// TrackOrders handles GET /orders/track?phone=...
func (h *OrderHandler) TrackOrders(c *gin.Context) {
	phone := c.Query("phone")

	orders, err := h.orderService.GetOrdersByCustomer(c.Request.Context(), phone)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
}

// GetOrders handles GET /admin/orders with optional status, phone, and
// date range filters
func (h *OrderHandler) GetOrders(c *gin.Context) {
	ctx := c.Request.Context()

	if status := c.Query("status"); status != "" {
		orders, err := h.orderService.GetOrdersByStatus(ctx, order.OrderStatus(status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
		return
	}

	if from := c.Query("from"); from != "" {
		fromTime, err := time.Parse(time.RFC3339, from)
		if err != nil {
			respondError(c, errs.Validation("invalid from date, expected RFC 3339"))
			return
		}
		toTime := time.Now().UTC()
		if to := c.Query("to"); to != "" {
			toTime, err = time.Parse(time.RFC3339, to)
			if err != nil {
				respondError(c, errs.Validation("invalid to date, expected RFC 3339"))
				return
			}
		}
		orders, err := h.orderService.GetOrdersByDateRange(ctx, fromTime, toTime)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
		return
	}

	orders, err := h.orderService.GetOrders(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders, "count": len(orders)})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	o, err := h.orderService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated",
		"data":    o,
	})
}

// DeleteOrder handles DELETE /admin/orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// GetStats handles GET /admin/orders/stats
func (h *OrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
