package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "notary-admin/internal/config"
	h "notary-admin/internal/http/handlers"
	"notary-admin/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)

		admin := api.Group("")
		admin.Use(middleware.RequireAdmin([]byte(env.JWTSecret)))

		orders := admin.Group("/orders")
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.PUT("/:id/notes", h.UpdateOrderNotes)
		orders.PUT("/:id/price", h.UpdateOrderPrice)
		orders.GET("/:id/quote", h.GetOrderQuotePDF)

		servicesGroup := admin.Group("/services")
		servicesGroup.GET("", h.GetServicePricing)
		servicesGroup.PUT("/:key", h.SaveServicePrice)

		settings := admin.Group("/settings")
		settings.PUT("/password", h.ChangePassword)

		stats := admin.Group("/statistics")
		stats.GET("", h.GetStatistics)
		stats.GET("/trend-chart", h.GetTrendChart)
	}

	return r
}
