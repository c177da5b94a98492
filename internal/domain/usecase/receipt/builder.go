package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/persistence"
)

// BuildRequest carries everything needed to persist one scanned receipt
type BuildRequest struct {
	UserID     uint64
	Store      entity.StoreInfo
	ReceiptKey string
	RawPayload []byte
	TestMode   bool
	Lines      []entity.RawLineItem
	Matches    []entity.MatchResult
}

// TransactionBuilder persists a matched receipt and awards its points in one unit of work
type TransactionBuilder struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewTransactionBuilder creates a new TransactionBuilder
func NewTransactionBuilder(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *TransactionBuilder {
	return &TransactionBuilder{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Build stores the store, the transaction, its items and the point increment atomically
func (b *TransactionBuilder) Build(ctx context.Context, req BuildRequest) (*entity.ScanResult, error) {
	if len(req.Lines) != len(req.Matches) {
		return nil, errs.NewScanError(errs.KindPersistenceFailed, "",
			fmt.Errorf("%d line items but %d match results", len(req.Lines), len(req.Matches)))
	}

	// Price every line before touching the database
	items := make([]entity.TransactionItem, len(req.Lines))
	for i, line := range req.Lines {
		item, err := entity.NewTransactionItem(line, req.Matches[i])
		if err != nil {
			return nil, errs.NewScanError(errs.KindInvalidQrPayload,
				fmt.Sprintf("receipt line %d cannot be awarded points", i+1), err)
		}
		items[i] = item
	}

	var result *entity.ScanResult

	err := b.uow.Do(ctx, func(txCtx context.Context) error {
		store, err := b.uow.GetStoreRepository(txCtx).GetOrCreate(txCtx, req.Store.Name, req.Store.Location)
		if err != nil {
			return fmt.Errorf("get or create store: %w", err)
		}

		tx, err := entity.NewTransaction(req.UserID, store.ID, req.ReceiptKey, req.RawPayload, req.TestMode, items, b.timeProvider)
		if err != nil {
			return err
		}

		txRepo := b.uow.GetTransactionRepository(txCtx)
		if err := txRepo.Create(txCtx, tx); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}

		for i := range tx.Items {
			if err := txRepo.CreateItem(txCtx, &tx.Items[i]); err != nil {
				return fmt.Errorf("create transaction item: %w", err)
			}
		}

		newBalance, err := b.uow.GetUserRepository(txCtx).IncrementPoints(txCtx, req.UserID, tx.TotalPoints)
		if err != nil {
			return fmt.Errorf("increment user points: %w", err)
		}

		result = entity.NewSuccessResult(tx, store, newBalance)
		return nil
	})
	if err != nil {
		return nil, b.classify(err, req)
	}

	b.logger.Info("Receipt transaction stored", map[string]any{
		"userId":         req.UserID,
		"transactionId":  result.TransactionID,
		"storeName":      req.Store.Name,
		"totalPoints":    result.TotalPoints,
		"itemCount":      len(result.Items),
		"unmatchedCount": len(result.UnmatchedItems),
		"testMode":       req.TestMode,
	})

	return result, nil
}

// classify turns a unit of work failure into the scan error reported to the caller
func (b *TransactionBuilder) classify(err error, req BuildRequest) *errs.ScanError {
	var scanErr *errs.ScanError

	switch {
	case errors.Is(err, errs.ErrPersistenceInconsistency):
		scanErr = errs.NewScanError(errs.KindPersistenceInconsistency,
			"the outcome of the transaction is unknown, do not rescan before checking your points", err)
		fields := scanErr.LogFields()
		fields["alarm"] = "persistence_inconsistency"
		fields["userId"] = req.UserID
		fields["receiptKey"] = req.ReceiptKey
		b.logger.Error("Receipt transaction left in an unknown state", fields)
		return scanErr

	case errors.Is(err, errs.ErrDuplicateReceipt):
		scanErr = errs.NewScanError(errs.KindDuplicateReceipt, "", err)

	case errs.IsUserNotFoundError(err):
		scanErr = errs.NewScanError(errs.KindPersistenceFailed, errs.ErrUserNotFound.Error(), err)

	default:
		scanErr = errs.NewScanError(errs.KindPersistenceFailed, "", err)
	}

	fields := scanErr.LogFields()
	fields["userId"] = req.UserID
	fields["receiptKey"] = req.ReceiptKey
	b.logger.Warn("Receipt transaction rolled back", fields)

	return scanErr
}
