package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	tport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
)

// Transaction is a scanned receipt turned into awarded points
type Transaction struct {
	ID          string            // Unique identifier for the transaction
	UserID      uint64            // ID of the user the points were awarded to
	StoreID     string            // Store the receipt was issued by
	TotalPoints int64             // Sum of the points of all items
	TotalAmount int64             // Sum of all line totals in minor units
	ReceiptKey  string            // Receipt URL, or a generated key for mock receipts
	RawPayload  []byte            // Upstream response kept for audit
	TestMode    bool              // Whether the receipt came from a TEST: payload
	CreatedAt   time.Time         // When the transaction was created
	Items       []TransactionItem // Line items owned by the transaction
	Store       *Store            // Loaded store, nil unless joined
}

// TransactionItem is one line of a transaction with the points it awarded
type TransactionItem struct {
	ID            string
	TransactionID string
	LineNumber    int
	ProductName   string
	Quantity      int64
	Price         int64
	UnitPrice     *int64
	ProductID     *string
	Points        int64
	Matched       bool
}

// NewTransactionItem creates an item from a receipt line and its match.
// Points are pointsPerUnit times quantity; unmatched lines award nothing.
func NewTransactionItem(line RawLineItem, match MatchResult) (TransactionItem, error) {
	if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
		return TransactionItem{}, errs.ErrInvalidQuantity
	}

	item := TransactionItem{
		ID:          uuid.NewString(),
		ProductName: line.Name,
		Quantity:    line.Quantity,
		Price:       line.LineTotal,
		UnitPrice:   line.UnitPrice,
	}

	if match.Matched() {
		productID := match.Product.ID
		item.ProductID = &productID
		item.Matched = true

		points, ok := CheckedMul(match.PointsPerUnit, line.Quantity)
		if !ok {
			return TransactionItem{}, fmt.Errorf("%w: %d points per unit times %d overflows",
				errs.ErrInvalidQuantity, match.PointsPerUnit, line.Quantity)
		}
		item.Points = points
	}

	return item, nil
}

// NewTransaction creates a transaction owning the given items and computes its totals
func NewTransaction(
	userID uint64,
	storeID string,
	receiptKey string,
	rawPayload []byte,
	testMode bool,
	items []TransactionItem,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if storeID == "" {
		return nil, errs.ErrInvalidStore
	}
	if len(items) == 0 {
		return nil, errs.ErrEmptyReceipt
	}

	tx := &Transaction{
		ID:         uuid.NewString(),
		UserID:     userID,
		StoreID:    storeID,
		ReceiptKey: receiptKey,
		RawPayload: rawPayload,
		TestMode:   testMode,
		CreatedAt:  timeProvider.Now(),
		Items:      make([]TransactionItem, len(items)),
	}

	var ok bool
	for i, item := range items {
		if item.Quantity < 1 || item.Quantity > MaxLineQuantity {
			return nil, errs.ErrInvalidQuantity
		}
		item.TransactionID = tx.ID
		item.LineNumber = i + 1
		tx.Items[i] = item

		// Totals must not wrap around
		if tx.TotalPoints, ok = CheckedAdd(tx.TotalPoints, item.Points); !ok {
			return nil, fmt.Errorf("%w: total points overflow", errs.ErrInvalidQuantity)
		}
		if tx.TotalAmount, ok = CheckedAdd(tx.TotalAmount, item.Price); !ok {
			return nil, fmt.Errorf("%w: total amount overflow", errs.ErrInvalidAmount)
		}
	}

	return tx, nil
}

// MatchedItems returns the items resolved to a catalog product
func (t *Transaction) MatchedItems() []TransactionItem {
	var matched []TransactionItem
	for _, item := range t.Items {
		if item.Matched {
			matched = append(matched, item)
		}
	}
	return matched
}

// UnmatchedItems returns the items left for manual review
func (t *Transaction) UnmatchedItems() []TransactionItem {
	var unmatched []TransactionItem
	for _, item := range t.Items {
		if !item.Matched {
			unmatched = append(unmatched, item)
		}
	}
	return unmatched
}
