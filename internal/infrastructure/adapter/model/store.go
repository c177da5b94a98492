package model

import (
	"time"
)

// Store represents the database model for stores. Names are unique.
type Store struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_stores_name"`
	Location  string    `gorm:"type:varchar(500);not null;default:''"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Store
func (Store) TableName() string {
	return "stores"
}
