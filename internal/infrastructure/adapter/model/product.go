package model

import (
	"time"
)

// Product represents the database model for catalog products
type Product struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	PointsPerUnit int64     `gorm:"not null;default:0;check:chk_products_points_non_negative,points_per_unit >= 0"`
	Status        string    `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
