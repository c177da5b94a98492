package dto

import "github.com/amirhossein-jamali/receipt-points/internal/domain/entity"

// PointsResponse represents the API response for a user's points balance
type PointsResponse struct {
	UserID           uint64 `json:"userId"`
	Points           int64  `json:"points"`
	TransactionCount uint64 `json:"transactionCount"`
}

// NewPointsResponse maps a points balance to its API response
func NewPointsResponse(balance *entity.PointsBalance) PointsResponse {
	return PointsResponse{
		UserID:           balance.UserID,
		Points:           balance.Points,
		TransactionCount: balance.TransactionCount,
	}
}
