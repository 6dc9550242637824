package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agrifed-procurement-ledger/internal/api_gateway"
	"github.com/agrifed-procurement-ledger/internal/api_gateway/service"
	"github.com/agrifed-procurement-ledger/internal/config"
	"github.com/agrifed-procurement-ledger/internal/data/mongo"
	"github.com/agrifed-procurement-ledger/internal/data/postgres"
	"github.com/agrifed-procurement-ledger/internal/logger"
	"github.com/agrifed-procurement-ledger/internal/platform/messaging/producers"
	"github.com/agrifed-procurement-ledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_gateway")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for advisory broadcast requests
	kafkaProducer, err := producers.NewAdvisoryReqMessageProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize API Gateway Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	commodityRepo := postgres.NewCommodityRepository(log, postgresDB)
	counterpartyRepo := postgres.NewCounterpartyRepository(log, postgresDB)
	advisoryRepo := postgres.NewAdvisoryRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	ledgerRepo := mongo.NewLedgerRepository(log, mongoDB.Database())

	// Initialize services
	transactionService := service.NewTransactionService(log, ledgerRepo)
	wizardService := service.NewWizardService(log, commodityRepo, ledgerRepo, outboxRepo, cfg.Wizard.SessionTTL)
	pricingService := service.NewPricingService(log, commodityRepo)
	counterpartyService := service.NewCounterpartyService(counterpartyRepo)
	advisoryService := service.NewAdvisoryService(log, advisoryRepo, kafkaProducer)

	// Initialize REST server
	server := api_gateway.NewServer(log, cfg, transactionService, wizardService, pricingService, counterpartyService, advisoryService)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first so no new wizard sessions arrive
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Stop the wizard session janitor
	wizardService.Stop()

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
