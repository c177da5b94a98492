package dto

// ScanRequest represents the API request for scanning a receipt
type ScanRequest struct {
	QRData string `json:"qrData" binding:"required"`
}
