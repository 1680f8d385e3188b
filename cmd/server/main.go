package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/connect-demo/internal/adapter/repository"
	"github.com/wekeepgrowing/connect-demo/internal/config"
	httpServer "github.com/wekeepgrowing/connect-demo/internal/infrastructure/http"
	stripeProvider "github.com/wekeepgrowing/connect-demo/internal/infrastructure/provider/stripe"
)

func main() {
	// Local development keeps the Stripe key in a .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Service.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Service.StripeSecretKey == "" {
		logger.Fatal("Stripe secret key is not configured")
	}

	// Initialize the account store and the Stripe client
	accounts := repository.NewAccountRepository(cfg.Store.Path)
	provider := stripeProvider.NewProvider(cfg.Service.StripeSecretKey, logger)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := httpServer.NewServer(cfg, logger, accounts, provider)

	go func() {
		if err := httpSrv.Start(); err != nil {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	logger.Info("Server shut down successfully")
}
