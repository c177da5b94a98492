package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler serves the transaction history endpoints
type TransactionHandler struct {
	queryUseCase usecase.TransactionQueryUseCase
	userUseCase  usecase.UserUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	queryUseCase usecase.TransactionQueryUseCase,
	userUseCase usecase.UserUseCase,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		queryUseCase: queryUseCase,
		userUseCase:  userUseCase,
		logger:       logger,
	}
}

// ListUserTransactions handles the GET /user/{userId}/transactions endpoint
func (h *TransactionHandler) ListUserTransactions(c *gin.Context) {
	// Extract user ID from path
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	// Parse paging parameters
	limit, errLimit := queryInt(c, "limit", 0)
	offset, errOffset := queryInt(c, "offset", 0)
	if errLimit != nil || errOffset != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrInvalidRequest, "limit and offset must be integers"))
		return
	}

	// Check if user exists
	exists, err := h.userUseCase.UserExists(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Error checking user existence", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(domainerr.ErrInternalServer, "Internal server error"))
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(domainerr.ErrUserNotFound, "User not found"))
		return
	}

	txs, err := h.queryUseCase.ListUserTransactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Error listing transactions", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err, errorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionListResponse(userID, max(offset, 0), txs))
}

// GetTransaction handles the GET /transactions/{transactionId} endpoint
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	transactionID := c.Param("transactionId")

	tx, err := h.queryUseCase.GetTransaction(c.Request.Context(), transactionID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		// Map domain errors to HTTP status codes
		if domainerr.IsNotFoundError(err) {
			statusCode = http.StatusNotFound
		} else {
			h.logger.Error("Error getting transaction", map[string]any{
				"transactionId": transactionID,
				"error":         err.Error(),
			})
		}

		c.JSON(statusCode, dto.NewErrorResponse(err, errorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx))
}

// queryInt reads an optional integer query parameter
func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
