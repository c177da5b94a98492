package receipt

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/usecase"
)

// Page size limits for transaction history
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// QueryService reads persisted transactions
type QueryService struct {
	uow persistence.UnitOfWork
}

// NewQueryService creates a new transaction query service
func NewQueryService(uow persistence.UnitOfWork) usecase.TransactionQueryUseCase {
	return &QueryService{uow: uow}
}

// GetTransaction returns one transaction with its items
func (s *QueryService) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	if id == "" {
		return nil, errs.ErrTransactionNotFound
	}
	return s.uow.GetTransactionRepository(ctx).GetByID(ctx, id)
}

// ListUserTransactions returns the user's transactions, newest first
func (s *QueryService) ListUserTransactions(ctx context.Context, userID uint64, limit, offset int) ([]*entity.Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, limit, offset)
}
