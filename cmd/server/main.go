package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "karrirconnect-backend/internal/api/http"
	"karrirconnect-backend/internal/config"
	"karrirconnect-backend/internal/logger"
	"karrirconnect-backend/internal/repository/postgres"
	"karrirconnect-backend/internal/security"
	"karrirconnect-backend/internal/service"
	"karrirconnect-backend/internal/worker"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting KarrirConnect Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize notification dispatch pool
	pool := worker.NewPool(cfg.Worker.BufferSize, 30*time.Second)
	pool.Start(cfg.Worker.Count)

	// Initialize outbound channels
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	whatsappSvc := service.NewWhatsAppService(cfg.WhatsApp.GatewayURL, cfg.WhatsApp.Token)

	// Initialize Services
	ledgerSvc := service.NewLedgerService(store.CompanyRepository, store.JobRepository, store.LedgerRepository)
	jobSvc := service.NewJobService(store.CompanyRepository, store.JobRepository, store.LedgerRepository)
	invitationSvc := service.NewInvitationService(
		store.CompanyRepository,
		store.UserRepository,
		store.InvitationRepository,
		store.LedgerRepository,
		store.NotificationRepository,
		emailSvc,
		whatsappSvc,
		pool,
	)
	purchaseSvc := service.NewPurchaseService(
		store.CompanyRepository,
		store.PackageRepository,
		store.LedgerRepository,
		emailSvc,
		pool,
	)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Set up HTTP server
	apiServer := httpapi.NewServer(
		ledgerSvc,
		jobSvc,
		invitationSvc,
		purchaseSvc,
		noteSvc,
		tokenManager,
		cfg.Payment.WebhookSecretHash,
	)
	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      apiServer.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown: stop accepting requests, then drain the pool
	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	pool.Shutdown()
	logger.Info("Shutdown complete. Goodbye!")
}
