package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "campusbooks-backend/internal/api/http"
	"campusbooks-backend/internal/config"
	"campusbooks-backend/internal/logger"
	"campusbooks-backend/internal/payment"
	"campusbooks-backend/internal/repository/postgres"
	"campusbooks-backend/internal/security"
	"campusbooks-backend/internal/service"
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
	logger.Info("Starting CampusBooks Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
	)

	// Initialize Transfer Client
	var transfers payment.TransferClient
	if cfg.Payment.UseMock {
		logger.Info("Using mock transfer client (no real money moves)")
		transfers = payment.NewMockTransferClient()
	} else {
		transfers = payment.NewPaystackClient(
			cfg.Payment.BaseURL,
			cfg.Payment.SecretKey,
			time.Duration(cfg.Payment.TimeoutSeconds)*time.Second,
		)
	}

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	auditSvc := service.NewAuditService(store.AuditRepository)
	rates := service.NewFixedCommissionRate(cfg.Commission.Rate)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	bookSvc := service.NewBookService(store.BookRepository)
	txSvc := service.NewTransactionService(
		store.TransactionRepository,
		store.BookRepository,
		rates,
		auditSvc,
	)
	payoutSvc := service.NewPayoutService(
		store.PayoutRepository,
		store.TransactionRepository,
		store.UserRepository,
		auditSvc,
	)
	processor := service.NewPayoutProcessor(
		store.PayoutRepository,
		store.UserRepository,
		transfers,
		emailSvc,
		auditSvc,
		cfg.Payment.Currency,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(tokenManager, authSvc, bookSvc, txSvc, payoutSvc, processor)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
