package api

import (
	"net/http"

	appDelivery "github.com/MSHIVVANI/smart-job-tracker/internal/application/delivery"
	"github.com/MSHIVVANI/smart-job-tracker/internal/auth/delivery"
	authUsecase "github.com/MSHIVVANI/smart-job-tracker/internal/auth/usecase"
	scanDelivery "github.com/MSHIVVANI/smart-job-tracker/internal/scanner/delivery"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/sse"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authUc authUsecase.AuthUsecase,
	authHandler *delivery.AuthHandler,
	appHandler *appDelivery.ApplicationHandler,
	scanHandler *scanDelivery.ScanHandler,
	sseManager *sse.Manager,
) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// SSE endpoint
		api.GET("/events", delivery.AuthMiddleware(authUc), func(c *gin.Context) {
			userID := c.GetString("userID")
			sseManager.ServeHTTP(c, userID)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(authUc), authHandler.Me)

			// Gmail connection (OAuth consent flow)
			auth.GET("/google", delivery.AuthMiddleware(authUc), authHandler.GoogleConnect)
			auth.GET("/google/callback", authHandler.GoogleCallback)
			auth.GET("/google/status", delivery.AuthMiddleware(authUc), authHandler.GoogleStatus)
		}

		// Application routes (protected)
		applications := api.Group("/applications")
		applications.Use(delivery.AuthMiddleware(authUc))
		{
			applications.GET("", appHandler.List)
			applications.POST("", appHandler.Create)
			applications.PUT("/:id", appHandler.Update)
			applications.DELETE("/:id", appHandler.Delete)
		}

		// Email scan trigger (protected)
		email := api.Group("/email")
		email.Use(delivery.AuthMiddleware(authUc))
		{
			email.POST("/scan", scanHandler.TriggerScan)
		}
	}
}
