package main

import (
	"net/http"
	"time"

	"storefront-service/controllers"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type appControllers struct {
	storefront *controllers.StorefrontController
	cart       *controllers.CartController
	checkout   *controllers.CheckoutController
	dashboard  *controllers.DashboardController
	admin      *controllers.AdminController
}

// newRouter wires the HTTP surface. Reserved pages and the API register
// explicitly; everything else falls through to the route state machine,
// where a single unreserved segment is a store reference.
func newRouter(cfg *Config, ctrl appControllers, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		store := api.Group("/stores/:reference")
		store.GET("", ctrl.storefront.GetStore)

		cart := store.Group("/cart")
		cart.Use(middleware.Session())
		{
			cart.GET("", ctrl.cart.GetCart)
			cart.POST("/items", ctrl.cart.AddItem)
			cart.PATCH("/items/:product_id", ctrl.cart.SetQuantity)
			cart.DELETE("/items/:product_id", ctrl.cart.RemoveItem)
			cart.DELETE("", ctrl.cart.ClearCart)
		}

		checkout := store.Group("/checkout")
		checkout.Use(middleware.Session())
		checkout.Use(middleware.RateLimit(rate.Every(time.Minute/30), 10))
		checkout.POST("", ctrl.checkout.Submit)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.Auth(cfg.JWTSecret))
	{
		dashboard.GET("", ctrl.dashboard.GetOverview)
		dashboard.GET("/products", ctrl.dashboard.ListProducts)
		dashboard.POST("/products", ctrl.dashboard.CreateProduct)
		dashboard.PUT("/products/:product_id", ctrl.dashboard.UpdateProduct)
		dashboard.DELETE("/products/:product_id", ctrl.dashboard.DeleteProduct)
		dashboard.GET("/orders", ctrl.dashboard.ListOrders)
		dashboard.GET("/orders/stream", ctrl.dashboard.StreamOrders)
		dashboard.PATCH("/orders/:order_id/status", ctrl.dashboard.UpdateOrderStatus)
		dashboard.PUT("/settings", ctrl.dashboard.UpdateSettings)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/stores", ctrl.admin.ListStores)
		admin.PATCH("/stores/:store_id/activation", ctrl.admin.SetStoreActive)
	}

	r.NoRoute(func(c *gin.Context) {
		route := routes.Parse(c.Request.URL.Path)
		switch route.Kind {
		case routes.KindHome:
			ctrl.storefront.Home(c)
		case routes.KindStore:
			c.Params = append(c.Params, gin.Param{Key: "reference", Value: route.StoreRef})
			ctrl.storefront.GetStore(c)
		case routes.KindAuth:
			c.JSON(http.StatusNotImplemented, gin.H{"error": "authentication is handled by the identity provider"})
		default:
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		}
	})

	return r
}
