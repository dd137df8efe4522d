package api

import (
	"strings"
	"time"

	"github.com/andresuchdata/restock-go/internal/api/handlers"
	"github.com/andresuchdata/restock-go/internal/api/middleware"
	"github.com/andresuchdata/restock-go/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(svc *service.ReplenishmentService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if svc != nil {
		policyHandler := handlers.NewPolicyHandler(svc)
		policyGroup := apiGroup.Group("/policies")
		{
			policyGroup.GET("", policyHandler.List)
			policyGroup.POST("", policyHandler.Create)
			policyGroup.PUT("/:id", policyHandler.Update)
			policyGroup.DELETE("/:id", policyHandler.Delete)
		}

		supplierHandler := handlers.NewSupplierHandler(svc)
		supplierGroup := apiGroup.Group("/suppliers")
		{
			supplierGroup.GET("", supplierHandler.List)
			supplierGroup.POST("", supplierHandler.Create)
			supplierGroup.PUT("/:id", supplierHandler.Update)
		}

		recHandler := handlers.NewRecommendationHandler(svc)
		recGroup := apiGroup.Group("/recommendations")
		{
			recGroup.GET("", recHandler.List)
			recGroup.GET("/summary", recHandler.Summary)
			recGroup.POST("/:id/approve", recHandler.Approve)
			recGroup.POST("/:id/reject", recHandler.Reject)
		}
		apiGroup.POST("/analysis/run", recHandler.RunAnalysis)

		orderHandler := handlers.NewPurchaseOrderHandler(svc)
		orderGroup := apiGroup.Group("/orders")
		{
			orderGroup.GET("", orderHandler.List)
			orderGroup.GET("/:id", orderHandler.Get)
			orderGroup.POST("/:id/send", orderHandler.Send)
			orderGroup.POST("/:id/status", orderHandler.UpdateStatus)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
