package model

import (
	"time"
)

// Transaction represents the database model for scanned receipts
type Transaction struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	UserID      uint64    `gorm:"not null;index"`
	StoreID     string    `gorm:"type:uuid;not null;index"`
	TotalPoints int64     `gorm:"not null;default:0"`
	TotalAmount int64     `gorm:"not null;default:0"` // Minor units
	ReceiptKey  string    `gorm:"type:varchar(4096);not null;uniqueIndex:idx_transactions_receipt_key"`
	RawPayload  []byte    `gorm:"type:jsonb"`
	TestMode    bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`

	// Define relationships
	User  User              `gorm:"foreignKey:UserID;references:ID"`
	Store Store             `gorm:"foreignKey:StoreID;references:ID"`
	Items []TransactionItem `gorm:"foreignKey:TransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem represents the database model for one receipt line
type TransactionItem struct {
	ID            string  `gorm:"type:uuid;primaryKey"`
	TransactionID string  `gorm:"type:uuid;not null;index:idx_transaction_items_transaction_id"`
	LineNumber    int     `gorm:"not null;default:0"`
	ProductName   string  `gorm:"type:varchar(500);not null"`
	Quantity      int64   `gorm:"not null;check:chk_transaction_items_quantity_positive,quantity >= 1"`
	Price         int64   `gorm:"not null;default:0"` // Minor units
	UnitPrice     *int64  // Minor units
	ProductID     *string `gorm:"type:uuid;index"`
	Points        int64   `gorm:"not null;default:0"`
	Matched       bool    `gorm:"not null;default:false"`
}

// TableName specifies the table name for TransactionItem
func (TransactionItem) TableName() string {
	return "transaction_items"
}
