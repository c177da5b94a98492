package entity

import (
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// ItemResult is the API view of one transaction item
type ItemResult struct {
	ProductName string  `json:"productName"`
	Quantity    int64   `json:"quantity"`
	Price       string  `json:"price"`
	UnitPrice   string  `json:"unitPrice,omitempty"`
	Matched     bool    `json:"matched"`
	ProductID   *string `json:"productId,omitempty"`
	Points      int64   `json:"points"`
}

// ScanResult is the outcome of scanning one receipt
type ScanResult struct {
	Success        bool          `json:"success"`
	TransactionID  string        `json:"transactionId,omitempty"`
	Store          *StoreSummary `json:"store,omitempty"`
	TotalPoints    int64         `json:"totalPoints"`
	TotalAmount    string        `json:"totalAmount,omitempty"`
	Items          []ItemResult  `json:"items,omitempty"`
	UnmatchedItems []ItemResult  `json:"unmatchedItems,omitempty"`
	TestMode       bool          `json:"testMode,omitempty"`
	NewBalance     *int64        `json:"newBalance,omitempty"`
	Error          string        `json:"error,omitempty"`
	ErrorKind      string        `json:"errorKind,omitempty"`
	Retryable      bool          `json:"retryable,omitempty"`
}

// ToItemResult converts an item to its API view
func (i TransactionItem) ToItemResult() ItemResult {
	result := ItemResult{
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		Price:       FormatAmount(i.Price),
		Matched:     i.Matched,
		ProductID:   i.ProductID,
		Points:      i.Points,
	}
	if i.UnitPrice != nil {
		result.UnitPrice = FormatAmount(*i.UnitPrice)
	}
	return result
}

// NewSuccessResult builds the result of a persisted scan
func NewSuccessResult(tx *Transaction, store *Store, newBalance int64) *ScanResult {
	result := &ScanResult{
		Success:        true,
		TransactionID:  tx.ID,
		TotalPoints:    tx.TotalPoints,
		TotalAmount:    FormatAmount(tx.TotalAmount),
		Items:          make([]ItemResult, 0, len(tx.Items)),
		UnmatchedItems: make([]ItemResult, 0),
		TestMode:       tx.TestMode,
		NewBalance:     &newBalance,
	}
	if store != nil {
		result.Store = store.Summary()
	}

	for _, item := range tx.Items {
		view := item.ToItemResult()
		result.Items = append(result.Items, view)
		if !item.Matched {
			result.UnmatchedItems = append(result.UnmatchedItems, view)
		}
	}

	return result
}

// NewFailureResult builds the result of a failed scan
func NewFailureResult(err *errs.ScanError) *ScanResult {
	return &ScanResult{
		Success:   false,
		Error:     err.Message(),
		ErrorKind: err.Kind.String(),
		Retryable: err.Kind.Retryable(),
	}
}
