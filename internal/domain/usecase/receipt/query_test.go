package receipt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

func TestQueryService(t *testing.T) {
	ctx := context.Background()

	t.Run("should load one transaction", func(t *testing.T) {
		repos := newRepositories(t)
		tx := &entity.Transaction{ID: "t-1", UserID: 1}
		repos.transactions.EXPECT().GetByID(mock.Anything, "t-1").Return(tx, nil).Once()

		got, err := NewQueryService(newUnitOfWork(t, repos)).GetTransaction(ctx, "t-1")

		require.NoError(t, err)
		assert.Same(t, tx, got)
	})

	t.Run("should report a missing transaction", func(t *testing.T) {
		_, err := NewQueryService(newUnitOfWork(t, newRepositories(t))).GetTransaction(ctx, "")

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("should clamp the page size", func(t *testing.T) {
		testCases := []struct {
			name          string
			limit, offset int
			wantLimit     int
			wantOffset    int
		}{
			{"default", 0, 0, DefaultPageSize, 0},
			{"too large", 1000, 5, MaxPageSize, 5},
			{"negative offset", 10, -3, 10, 0},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				repos := newRepositories(t)
				repos.transactions.EXPECT().ListByUser(mock.Anything, uint64(3), tc.wantLimit, tc.wantOffset).
					Return([]*entity.Transaction{}, nil).Once()

				list, err := NewQueryService(newUnitOfWork(t, repos)).ListUserTransactions(ctx, 3, tc.limit, tc.offset)

				require.NoError(t, err)
				assert.Empty(t, list)
			})
		}
	})

	t.Run("should reject a zero user", func(t *testing.T) {
		_, err := NewQueryService(newUnitOfWork(t, newRepositories(t))).ListUserTransactions(ctx, 0, 10, 0)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
	})
}
