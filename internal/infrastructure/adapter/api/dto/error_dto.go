package dto

import (
	domainerr "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// ErrorResponse is the body of every non-scan error. Failed scans return a ScanResult instead.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse pairs the numeric code of err with a client-facing message
func NewErrorResponse(err error, message string) ErrorResponse {
	return ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	}
}
