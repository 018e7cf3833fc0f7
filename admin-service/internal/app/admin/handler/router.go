package handler

import (
	"wayfarer/pkg/logger"
	"wayfarer/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter настраивает маршруты и middleware админки
func SetupRouter(adminHandler *AdminHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("admin-service"))

	// CORS: дашборд живет на отдельном origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	router.GET("/health", adminHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/dashboard/stats", adminHandler.GetDashboardStats)

	locations := router.Group("/locations")
	{
		locations.GET("", adminHandler.GetLocations)
		locations.POST("", adminHandler.CreateLocation)
		locations.PUT("/:id", adminHandler.UpdateLocation)
		locations.DELETE("/:id", adminHandler.DeleteLocation)
	}

	reviews := router.Group("/reviews")
	{
		reviews.GET("", adminHandler.GetReviews)
		reviews.PUT("/:id", adminHandler.UpdateReview)
		reviews.PUT("/:id/status", adminHandler.SetReviewStatus)
		reviews.DELETE("/:id", adminHandler.DeleteReview)
	}

	admin := router.Group("/admin")
	{
		admin.POST("/demo-data", adminHandler.SeedDemoData)
		admin.DELETE("/data", adminHandler.ClearAllData)
		admin.GET("/audit", adminHandler.GetAuditLog)
	}

	return router
}
