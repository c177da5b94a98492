package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
)

// User represents a loyalty member and their points balance
type User struct {
	ID               uint64    // Unique identifier for the user
	points           int64     // Points balance (private, only changed through AwardPoints)
	CreatedAt        time.Time // When the user was created
	UpdatedAt        time.Time // When the user was last updated
	TransactionCount uint64    // Count of receipts turned into transactions
}

// NewUser creates a new user with the given ID and initial points balance
func NewUser(id uint64, initialPoints int64, timeProvider coreport.TimeProvider) (*User, error) {
	if id == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if initialPoints < 0 {
		return nil, errs.ErrNegativeAmount
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		points:    initialPoints,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Points returns the current points balance
func (u *User) Points() int64 {
	return u.points
}

// AwardPoints adds the points of one transaction to the balance.
// A zero delta still counts the transaction.
func (u *User) AwardPoints(delta int64, timeProvider coreport.TimeProvider) error {
	if delta < 0 {
		return errs.ErrNegativeAmount
	}

	u.points += delta
	u.TransactionCount++
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// PointsBalance is the read model returned by the points endpoint
type PointsBalance struct {
	UserID           uint64 `json:"userId"`
	Points           int64  `json:"points"`
	TransactionCount uint64 `json:"transactionCount"`
}

// ToPointsBalance converts a user to its balance view
func (u *User) ToPointsBalance() PointsBalance {
	return PointsBalance{
		UserID:           u.ID,
		Points:           u.points,
		TransactionCount: u.TransactionCount,
	}
}
