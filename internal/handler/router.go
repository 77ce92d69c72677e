package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	AllowOrigins []string
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowOrigins)))

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.GET("/email/:email", h.GetUserByEmail)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		products := api.Group("/products")
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/price-range", h.ProductsByPriceRange)
		products.GET("/export", h.ExportProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)

		carts := api.Group("/cart")
		carts.GET("/user/:userId", h.ListCart)
		carts.GET("/user/:userId/total", h.CartTotal)
		carts.POST("/user/:userId/checkout", h.CheckoutCart)
		carts.DELETE("/user/:userId", h.ClearCart)
		carts.POST("", h.AddToCart)
		carts.PUT("/:itemId", h.UpdateCartItem)
		carts.DELETE("/:itemId", h.RemoveCartItem)

		orders := api.Group("/orders")
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.GET("/user/:userId", h.ListOrdersByUser)
		orders.POST("/create-from-cart/:userId", h.CreateOrderFromCart)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.DELETE("/:id", h.DeleteOrder)

		api.GET("/stats", h.Stats)
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-Device-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
