package main

import (
	"log"

	"github.com/MSHIVVANI/smart-job-tracker/cmd/api"
	appdomain "github.com/MSHIVVANI/smart-job-tracker/internal/application/domain"
	apprepo "github.com/MSHIVVANI/smart-job-tracker/internal/application/repository"
	appusecase "github.com/MSHIVVANI/smart-job-tracker/internal/application/usecase"
	authdomain "github.com/MSHIVVANI/smart-job-tracker/internal/auth/domain"
	authrepo "github.com/MSHIVVANI/smart-job-tracker/internal/auth/repository"
	authusecase "github.com/MSHIVVANI/smart-job-tracker/internal/auth/usecase"
	creddomain "github.com/MSHIVVANI/smart-job-tracker/internal/credential/domain"
	credrepo "github.com/MSHIVVANI/smart-job-tracker/internal/credential/repository"
	scanscheduler "github.com/MSHIVVANI/smart-job-tracker/internal/scanner/scheduler"
	scanusecase "github.com/MSHIVVANI/smart-job-tracker/internal/scanner/usecase"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/ai"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/config"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/database"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/gmail"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/groq"
	"github.com/MSHIVVANI/smart-job-tracker/pkg/sse"
)

func main() {
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&creddomain.Credential{},
		&appdomain.Application{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Repositories
	userRepo := authrepo.NewUserRepository(db)
	credRepo := credrepo.NewCredentialRepository(db)
	appRepo := apprepo.NewApplicationRepository(db)

	// SSE manager for pushing scan results to connected clients
	sseManager := sse.NewManager()
	go sseManager.Run()

	// Provider clients
	gmailService := gmail.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret)
	groqClient := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
	classifier := ai.NewGroqClassifier(groqClient)

	// Usecases
	authUc := authusecase.NewAuthUsecase(userRepo, credRepo, cfg)
	appUc := appusecase.NewApplicationUsecase(appRepo)
	scannerUc := scanusecase.NewScannerUsecase(
		credRepo,
		appRepo,
		scanusecase.NewGmailProvider(gmailService),
		classifier,
		sseManager,
		cfg.ScanWorkers,
	)

	// Periodic inbox scan
	scheduler := scanscheduler.NewScanScheduler(scannerUc, cfg.ScanInterval)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(authUc, appUc, scannerUc, sseManager, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
