package usecase

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// ReceiptUseCase defines the receipt ingestion operations
type ReceiptUseCase interface {
	// ScanReceipt turns a scanned QR payload into a persisted transaction and awards points.
	// On failure the returned result carries the diagnostic and the error is a *ScanError.
	ScanReceipt(ctx context.Context, rawQR string, userID uint64) (*entity.ScanResult, error)
}

// TransactionQueryUseCase defines read access to persisted transactions
type TransactionQueryUseCase interface {
	// GetTransaction returns one transaction with its items
	GetTransaction(ctx context.Context, id string) (*entity.Transaction, error)

	// ListUserTransactions returns the user's transactions, newest first
	ListUserTransactions(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error)
}
