package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/usecase/receipt"
	userUseCase "github.com/amirhossein-jamali/receipt-points/internal/domain/usecase/user"

	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/fiscal"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/logger"
	timeProvider "github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger, err := logger.NewZapLogger(logger.Options{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		CallerInfo: cfg.Logger.CallerInfo,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database and bring the schema up to date
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(startupCtx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		cancelStartup()
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(startupCtx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		cancelStartup()
		os.Exit(1)
	}

	// Unit of work owns every repository
	uow := dbManager.CreateUnitOfWork()

	// Initialize use cases
	userUseCaseImpl := userUseCase.NewUserUseCase(uow.GetUserRepository(context.Background()), tp, appLogger)

	fetcher := fiscal.NewClient(fiscal.Options{
		BaseURL:   cfg.Fiscal.BaseURL,
		UserAgent: cfg.Fiscal.UserAgent,
		Timeout:   cfg.Fiscal.RequestTimeout,
	}, appLogger)

	receiptUseCaseImpl := receipt.NewReceiptService(uow, fetcher, tp, appLogger, receipt.Options{
		FuzzyThreshold:    cfg.Matching.FuzzyThreshold,
		AllowMockReceipts: cfg.Fiscal.AllowMockReceipts,
	})
	queryUseCaseImpl := receipt.NewQueryService(uow)

	// Create default users outside production
	if cfg.Environment != config.Production {
		if err := userUseCaseImpl.CreateDefaultUsers(startupCtx); err != nil {
			appLogger.Error("Failed to create default users", map[string]any{
				"error": err.Error(),
			})
		}
	}
	cancelStartup()

	// Initialize API handlers
	receiptHandler := handler.NewReceiptHandler(receiptUseCaseImpl, appLogger)
	userHandler := handler.NewUserHandler(userUseCaseImpl, appLogger)
	transactionHandler := handler.NewTransactionHandler(queryUseCaseImpl, userUseCaseImpl, appLogger)
	healthHandler := handler.NewHealthHandler(dbManager, tp, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger, tp, cfg.Server.AllowedOrigins)

	// Setup routes
	routes.SetupRoutes(router, receiptHandler, userHandler, transactionHandler, healthHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port":              cfg.Server.Port,
			"env":               cfg.Environment,
			"logLevel":          appLogger.GetLevel().String(),
			"allowMockReceipts": cfg.Fiscal.AllowMockReceipts,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	requiredDB := []struct {
		value  string
		key    string
		envVar string
	}{
		{cfg.Database.Host, "database.host", "RP_DB_HOST"},
		{cfg.Database.Port, "database.port", "RP_DB_PORT"},
		{cfg.Database.Username, "database.username", "RP_DB_USERNAME"},
		{cfg.Database.Password, "database.password", "RP_DB_PASSWORD"},
		{cfg.Database.Database, "database.database", "RP_DB_NAME"},
	}
	for _, field := range requiredDB {
		if field.value != "" {
			continue
		}
		if cfg.Environment == config.Production {
			missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or %s environment variable)", field.key, field.envVar))
		} else {
			missingConfigs = append(missingConfigs, field.key)
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Validate fiscal and matching configuration
	if cfg.Fiscal.BaseURL == "" {
		missingConfigs = append(missingConfigs, "fiscal.baseURL")
	}

	if cfg.Matching.FuzzyThreshold <= 0 || cfg.Matching.FuzzyThreshold >= 1 {
		return fmt.Errorf("matching.fuzzyThreshold must be between 0 and 1, got %v", cfg.Matching.FuzzyThreshold)
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		// Check database security settings
		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		if cfg.Fiscal.AllowMockReceipts {
			warnings = append(warnings, "fiscal.allowMockReceipts lets clients award points with TEST: payloads")
		}

		// Check timeout settings
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
