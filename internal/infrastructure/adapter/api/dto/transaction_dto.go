package dto

import (
	"time"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// TransactionResponse represents one persisted transaction with its items
type TransactionResponse struct {
	ID          string               `json:"id"`
	UserID      uint64               `json:"userId"`
	Store       *entity.StoreSummary `json:"store,omitempty"`
	TotalPoints int64                `json:"totalPoints"`
	TotalAmount string               `json:"totalAmount"`
	ReceiptURL  string               `json:"receiptUrl,omitempty"`
	TestMode    bool                 `json:"testMode"`
	CreatedAt   time.Time            `json:"createdAt"`
	Items       []entity.ItemResult  `json:"items"`
}

// TransactionListResponse represents a page of a user's transactions
type TransactionListResponse struct {
	UserID       uint64                `json:"userId"`
	Offset       int                   `json:"offset"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NewTransactionResponse maps a transaction to its API response.
// Mock receipts carry a generated key instead of a URL, which is not exposed.
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID,
		UserID:      tx.UserID,
		TotalPoints: tx.TotalPoints,
		TotalAmount: entity.FormatAmount(tx.TotalAmount),
		TestMode:    tx.TestMode,
		CreatedAt:   tx.CreatedAt,
		Items:       make([]entity.ItemResult, 0, len(tx.Items)),
	}
	if !tx.TestMode {
		resp.ReceiptURL = tx.ReceiptKey
	}
	if tx.Store != nil {
		resp.Store = tx.Store.Summary()
	}
	for _, item := range tx.Items {
		resp.Items = append(resp.Items, item.ToItemResult())
	}
	return resp
}

// NewTransactionListResponse maps a page of transactions to its API response
func NewTransactionListResponse(userID uint64, offset int, txs []*entity.Transaction) TransactionListResponse {
	resp := TransactionListResponse{
		UserID:       userID,
		Offset:       offset,
		Count:        len(txs),
		Transactions: make([]TransactionResponse, 0, len(txs)),
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, NewTransactionResponse(tx))
	}
	return resp
}
