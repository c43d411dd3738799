package handler

import (
	"net/http"

	"customersatisfaction/pkg/logger"
	"customersatisfaction/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "satisfaction-service"

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	reviewHandler *ReviewHandler,
	reportHandler *ReportHandler,
	authHandler *AuthHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// отчёты читает браузерный дашборд с другого origin
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:   []string{logger.RequestIDHeader},
		MaxAge:          300,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to customer satisfaction API!")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичные эндпоинты
	router.POST("/review", reviewHandler.CreateReview)
	router.POST("/sign-up", authHandler.SignUp)
	router.POST("/login", authHandler.Login)

	// Отчёты только с токеном
	reports := router.Group("/report")
	reports.Use(authMiddleware.Authenticate())
	{
		reports.GET("", reportHandler.GetReport)
		reports.GET("/:storeId", reportHandler.GetReport)
	}

	return router
}
