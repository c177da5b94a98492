package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/dto"
)

// ReceiptHandler handles receipt scan HTTP requests
type ReceiptHandler struct {
	receiptUseCase usecase.ReceiptUseCase
	logger         coreport.Logger
}

// NewReceiptHandler creates a new receipt handler instance
func NewReceiptHandler(
	receiptUseCase usecase.ReceiptUseCase,
	logger coreport.Logger,
) *ReceiptHandler {
	return &ReceiptHandler{
		receiptUseCase: receiptUseCase,
		logger:         logger,
	}
}

// ScanReceipt handles the POST /user/{userId}/receipts/scan endpoint
func (h *ReceiptHandler) ScanReceipt(c *gin.Context) {
	// Extract user ID from path
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	// Parse request body
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid scan request format", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrInvalidRequest, "Invalid request format: qrData is required"))
		return
	}

	// Process the scan
	result, err := h.receiptUseCase.ScanReceipt(c.Request.Context(), req.QRData, userID)
	if err != nil {
		var scanErr *domainerr.ScanError
		if result == nil || !errors.As(err, &scanErr) {
			status := http.StatusInternalServerError
			if errors.Is(err, domainerr.ErrInvalidUserID) {
				status = http.StatusBadRequest
			}
			c.JSON(status, dto.NewErrorResponse(err, errorMessage(err)))
			return
		}

		// The result already carries the error message and retry hint
		c.JSON(scanStatus(scanErr), result)
		return
	}

	// Success response
	c.JSON(http.StatusOK, result)
}

// scanStatus maps a failed scan to its HTTP status
func scanStatus(err *domainerr.ScanError) int {
	switch err.Kind {
	case domainerr.KindInvalidQrPayload,
		domainerr.KindFetchFailed,
		domainerr.KindParseFailed,
		domainerr.KindEmptyReceipt:
		return http.StatusBadRequest
	case domainerr.KindDuplicateReceipt:
		return http.StatusConflict
	case domainerr.KindPersistenceFailed:
		switch {
		case domainerr.IsUserNotFoundError(err):
			return http.StatusNotFound
		case domainerr.IsConcurrentUpdateError(err):
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	default:
		return http.StatusInternalServerError
	}
}

// parseUserID reads the userId path parameter and writes a 400 response when it is malformed
func parseUserID(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(domainerr.ErrInvalidUserID, "Invalid user ID format"))
		return 0, false
	}
	return userID, true
}

// errorMessage returns the client-facing message for a non-scan error
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domainerr.ErrInvalidUserID):
		return "Invalid user ID format"
	case errors.Is(err, domainerr.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, domainerr.ErrTransactionNotFound):
		return "Transaction not found"
	default:
		return "Internal server error"
	}
}
