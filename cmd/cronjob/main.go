package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"campusbooks-backend/internal/config"
	"campusbooks-backend/internal/jobs"
	"campusbooks-backend/internal/logger"
	"campusbooks-backend/internal/payment"
	"campusbooks-backend/internal/repository/postgres"
	"campusbooks-backend/internal/scheduler"
	"campusbooks-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'reconcile-pending-transfers')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CampusBooks Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	auditSvc := service.NewAuditService(store.AuditRepository)
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

	jobServices := &jobs.Services{
		Payout:    payoutSvc,
		Processor: processor,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "reconcile-pending-transfers":
		jobRunner.ReconcilePendingTransfers()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - reconcile-pending-transfers\n")
		os.Exit(1)
	}
}
