// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/alibix/storefront-api/internal/config"
	"github.com/alibix/storefront-api/internal/domain/cart"
	"github.com/alibix/storefront-api/internal/domain/catalog"
	"github.com/alibix/storefront-api/internal/domain/order"
	"github.com/alibix/storefront-api/internal/domain/session"
	"github.com/alibix/storefront-api/internal/domain/wishlist"
	"github.com/alibix/storefront-api/internal/interfaces/http/handlers"
	"github.com/alibix/storefront-api/internal/interfaces/http/middleware"
)

// Services carries the wired domain services the routes dispatch to
type Services struct {
	Catalog  *catalog.Service
	Cart     *cart.Service
	Wishlist *wishlist.Service
	Order    *order.Service
	Gate     *session.Gate
}

// SetupRoutes wires all API routes onto the router group
func SetupRoutes(router *gin.RouterGroup, svc *Services, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(svc.Catalog)
	categoryHandler := handlers.NewCategoryHandler(svc.Catalog)
	cartHandler := handlers.NewCartHandler(svc.Cart)
	wishlistHandler := handlers.NewWishlistHandler(svc.Wishlist)
	orderHandler := handlers.NewOrderHandler(svc.Order)
	authHandler := handlers.NewAuthHandler(svc.Gate)

	setupProductRoutes(router, productHandler, svc.Gate)
	setupCategoryRoutes(router, categoryHandler)
	setupCartRoutes(router, cartHandler)
	setupWishlistRoutes(router, wishlistHandler)
	setupOrderRoutes(router, orderHandler, svc.Gate)
	setupAuthRoutes(router, authHandler, svc.Gate)
	setupAdminRoutes(router, productHandler, categoryHandler, orderHandler, svc.Gate)
}

func setupProductRoutes(router *gin.RouterGroup, h *handlers.ProductHandler, gate *session.Gate) {
	products := router.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(gate))
	{
		products.GET("", h.GetProducts)
		products.GET("/featured", h.GetFeatured)
		products.GET("/trending", h.GetTrending)
		products.GET("/search", h.SearchProducts)
		products.POST("/search/image", h.SearchByImage)
		products.GET("/category/:category", h.GetProductsByCategory)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/related", h.GetRelated)
	}
}

func setupCategoryRoutes(router *gin.RouterGroup, h *handlers.CategoryHandler) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.GetCategories)
		categories.GET("/:slug", h.GetCategory)
	}
}

func setupCartRoutes(router *gin.RouterGroup, h *handlers.CartHandler) {
	carts := router.Group("/cart")
	carts.Use(middleware.CartSession())
	{
		carts.GET("", h.GetCart)
		carts.DELETE("", h.ClearCart)
		carts.POST("/items", h.AddToCart)
		carts.PUT("/items/:id", h.UpdateCartItem)
		carts.DELETE("/items/:id", h.RemoveFromCart)
	}
}

func setupWishlistRoutes(router *gin.RouterGroup, h *handlers.WishlistHandler) {
	wishlists := router.Group("/wishlist")
	wishlists.Use(middleware.CartSession())
	{
		wishlists.GET("", h.GetWishlist)
		wishlists.DELETE("", h.ClearWishlist)
		wishlists.GET("/:id", h.CheckWishlist)
		wishlists.POST("/:id/toggle", h.ToggleWishlist)
	}
}

func setupOrderRoutes(router *gin.RouterGroup, h *handlers.OrderHandler, gate *session.Gate) {
	orders := router.Group("/orders")
	orders.Use(middleware.CartSession())
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", middleware.AuthMiddleware(gate), h.MyOrders)
		orders.GET("/track", h.TrackOrders)
		orders.GET("/:id", middleware.AuthMiddleware(gate), h.MyOrder)
	}
}

func setupAuthRoutes(router *gin.RouterGroup, h *handlers.AuthHandler, gate *session.Gate) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.AuthMiddleware(gate), h.Me)
	}
}

func setupAdminRoutes(router *gin.RouterGroup, products *handlers.ProductHandler, categories *handlers.CategoryHandler, orders *handlers.OrderHandler, gate *session.Gate) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(gate), middleware.AdminMiddleware(gate))
	{
		admin.GET("/dashboard", orders.GetStats)
		admin.GET("/products/sold-out", products.GetSoldOut)
		admin.POST("/products", products.CreateProduct)
		admin.PUT("/products/:id", products.UpdateProduct)
		admin.PUT("/products/:id/stock", products.UpdateStock)
		admin.DELETE("/products/:id", products.DeleteProduct)

		admin.POST("/categories", categories.CreateCategory)
		admin.PUT("/categories/:id", categories.UpdateCategory)
		admin.DELETE("/categories/:id", categories.DeleteCategory)

		admin.GET("/orders", orders.GetOrders)
		admin.GET("/orders/stats", orders.GetStats)
		admin.GET("/orders/:id", orders.GetOrder)
		admin.PUT("/orders/:id/status", orders.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orders.DeleteOrder)
	}
}
