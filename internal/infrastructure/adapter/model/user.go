package model

import (
	"time"
)

// User represents the database model for loyalty members
type User struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement:false"`
	Points           int64     `gorm:"not null;default:0;check:chk_users_points_non_negative,points >= 0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
	TransactionCount uint64    `gorm:"not null;default:0"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
