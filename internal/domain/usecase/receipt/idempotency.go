package receipt

import (
	"context"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/persistence"
)

// IdempotencyHandler rejects receipts that were already turned into a transaction
type IdempotencyHandler struct {
	transactionRepo persistence.TransactionRepository
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(transactionRepo persistence.TransactionRepository) *IdempotencyHandler {
	return &IdempotencyHandler{
		transactionRepo: transactionRepo,
	}
}

// CheckReceipt returns a DuplicateReceipt scan error when receiptKey is already persisted.
// The unique index on the receipt key still guards the race between two concurrent scans.
func (h *IdempotencyHandler) CheckReceipt(ctx context.Context, receiptKey string) error {
	exists, err := h.transactionRepo.ExistsByReceiptKey(ctx, receiptKey)
	if err != nil {
		return errs.NewScanError(errs.KindPersistenceFailed, "could not check for an earlier scan of this receipt", err)
	}

	if exists {
		return errs.NewScanError(errs.KindDuplicateReceipt, "", nil)
	}

	return nil
}
