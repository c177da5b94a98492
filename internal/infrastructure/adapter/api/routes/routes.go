package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	receiptHandler *handler.ReceiptHandler,
	userHandler *handler.UserHandler,
	transactionHandler *handler.TransactionHandler,
	healthHandler *handler.HealthHandler,
) {
	router.GET("/health/live", healthHandler.Live)
	router.GET("/health/ready", healthHandler.Ready)

	// User routes
	userRoutes := router.Group("/user")
	{
		// GET /user/:userId/points
		userRoutes.GET("/:userId/points", userHandler.GetPoints)

		// GET /user/:userId/transactions
		userRoutes.GET("/:userId/transactions", transactionHandler.ListUserTransactions)

		// POST /user/:userId/receipts/scan
		userRoutes.POST("/:userId/receipts/scan", receiptHandler.ScanReceipt)
	}

	// GET /transactions/:transactionId
	router.GET("/transactions/:transactionId", transactionHandler.GetTransaction)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(
	router *gin.Engine,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	allowedOrigins []string,
) {
	// Apply middlewares in the correct order
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS(allowedOrigins))
}
