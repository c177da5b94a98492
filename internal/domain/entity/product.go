package entity

import "time"

// ProductStatus represents whether a catalog product can be matched
type ProductStatus string

// Product statuses
const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// Product is a catalog entry that awards points per purchased unit
type Product struct {
	ID            string
	Name          string
	PointsPerUnit int64
	Status        ProductStatus
	CreatedAt     time.Time
}

// IsActive reports whether the product takes part in matching
func (p *Product) IsActive() bool {
	return p.Status == ProductActive
}
