package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/dto"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userUseCase usecase.UserUseCase,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// GetPoints handles the GET /user/{userId}/points endpoint
func (h *UserHandler) GetPoints(c *gin.Context) {
	// Extract user ID from path
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	// Get points balance
	balance, err := h.userUseCase.GetPointsBalance(c.Request.Context(), userID)
	if err != nil {
		statusCode := http.StatusInternalServerError

		// Map domain errors to HTTP status codes
		if errors.Is(err, domainerr.ErrUserNotFound) {
			statusCode = http.StatusNotFound
		}

		h.logger.Error("Error getting points balance", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})

		c.JSON(statusCode, dto.NewErrorResponse(err, errorMessage(err)))
		return
	}

	// Return success response
	c.JSON(http.StatusOK, dto.NewPointsResponse(balance))
}
