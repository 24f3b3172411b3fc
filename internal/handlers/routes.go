package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pricewatch/internal/middleware"
)

// NewRouter builds the Gin engine with middleware and all read routes.
func NewRouter(price *PriceHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	products := v1.Group("/products")
	products.GET("", price.GetProducts)
	products.GET("/history", price.GetHistory)
	products.GET("/max", price.GetMaxPrice)

	return router
}
