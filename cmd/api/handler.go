package api

import (
	appDelivery "github.com/MSHIVVANI/smart-job-tracker/internal/application/delivery"
	appUsecasePkg "github.com/MSHIVVANI/smart-job-tracker/internal/application/usecase"
	authDelivery "github.com/MSHIVVANI/smart-job-tracker/internal/auth/delivery"
	authUsecasePkg "github.com/MSHIVVANI/smart-job-tracker/internal/auth/usecase"
	scanDelivery "github.com/MSHIVVANI/smart-job-tracker/internal/scanner/delivery"
	scanUsecasePkg "github.com/MSHIVVANI/smart-job-tracker/internal/scanner/usecase"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/config"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/sse"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecasePkg.AuthUsecase
	authHandler *authDelivery.AuthHandler
	appHandler  *appDelivery.ApplicationHandler
	scanHandler *scanDelivery.ScanHandler
	sseManager  *sse.Manager
	config      *config.Config
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	appUc appUsecasePkg.ApplicationUsecase,
	scannerUc scanUsecasePkg.ScannerUsecase,
	sseManager *sse.Manager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase: authUc,
		authHandler: authDelivery.NewAuthHandler(authUc, cfg.FrontendURL),
		appHandler:  appDelivery.NewApplicationHandler(appUc),
		scanHandler: scanDelivery.NewScanHandler(scannerUc),
		sseManager:  sseManager,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.authHandler, h.appHandler, h.scanHandler, h.sseManager)

	return r.Run(addr)
}
