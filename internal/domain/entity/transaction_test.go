package entity

import (
	"math"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/receipt-points/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, line RawLineItem, match MatchResult) TransactionItem {
	t.Helper()
	item, err := NewTransactionItem(line, match)
	require.NoError(t, err)
	return item
}

func TestNewTransactionItem(t *testing.T) {
	unitPrice := int64(7500)
	line := RawLineItem{Name: "Mleko 1L", Quantity: 2, LineTotal: 15000, UnitPrice: &unitPrice}

	t.Run("Matched line awards points per unit", func(t *testing.T) {
		product := &Product{ID: "p-1", Name: "Mleko 1L", PointsPerUnit: 5, Status: ProductActive}

		item, err := NewTransactionItem(line, MatchOf(product))

		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.True(t, item.Matched)
		require.NotNil(t, item.ProductID)
		assert.Equal(t, "p-1", *item.ProductID)
		assert.Equal(t, int64(10), item.Points)
		assert.Equal(t, int64(15000), item.Price)
		assert.Equal(t, &unitPrice, item.UnitPrice)
	})

	t.Run("Unmatched line awards nothing", func(t *testing.T) {
		item, err := NewTransactionItem(line, NoMatch())

		require.NoError(t, err)
		assert.False(t, item.Matched)
		assert.Nil(t, item.ProductID)
		assert.Equal(t, int64(0), item.Points)
	})

	t.Run("Out of range quantities and overflowing points are rejected", func(t *testing.T) {
		product := &Product{ID: "p-1", Name: "Mleko", PointsPerUnit: 100, Status: ProductActive}
		greedy := &Product{ID: "p-2", Name: "Zlato", PointsPerUnit: math.MaxInt64/2 + 1, Status: ProductActive}

		testCases := []struct {
			name  string
			line  RawLineItem
			match MatchResult
		}{
			{"zero quantity", RawLineItem{Name: "Mleko", Quantity: 0}, MatchOf(product)},
			{"huge quantity", RawLineItem{Name: "Mleko", Quantity: 922337203685477580}, MatchOf(product)},
			{"quantity above the line limit", RawLineItem{Name: "Mleko", Quantity: MaxLineQuantity + 1}, NoMatch()},
			{"points overflow", RawLineItem{Name: "Zlato", Quantity: 2}, MatchOf(greedy)},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewTransactionItem(tc.line, tc.match)

				assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
			})
		}
	})
}

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	product := &Product{ID: "p-1", Name: "Mleko", PointsPerUnit: 5, Status: ProductActive}
	items := []TransactionItem{
		mustItem(t, RawLineItem{Name: "Mleko", Quantity: 2, LineTotal: 30000}, MatchOf(product)),
		mustItem(t, RawLineItem{Name: "Hleb", Quantity: 3, LineTotal: 24000}, NoMatch()),
	}

	t.Run("Totals are the sum of the items", func(t *testing.T) {
		tx, err := NewTransaction(1, "s-1", "https://suf.purs.gov.rs/v/?vl=abc", []byte(`{}`), false, items, mockTime)

		require.NoError(t, err)
		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, int64(10), tx.TotalPoints)
		assert.Equal(t, int64(54000), tx.TotalAmount)
		assert.Equal(t, fixedTime, tx.CreatedAt)
		for i, item := range tx.Items {
			assert.Equal(t, tx.ID, item.TransactionID)
			assert.Equal(t, i+1, item.LineNumber)
		}
		assert.Len(t, tx.MatchedItems(), 1)
		assert.Len(t, tx.UnmatchedItems(), 1)
	})

	t.Run("Validation errors", func(t *testing.T) {
		big := []TransactionItem{
			{ProductName: "a", Quantity: 1, Points: math.MaxInt64},
			{ProductName: "b", Quantity: 1, Points: 1},
		}
		expensive := []TransactionItem{
			{ProductName: "a", Quantity: 1, Price: math.MaxInt64},
			{ProductName: "b", Quantity: 1, Price: 1},
		}

		testCases := []struct {
			name     string
			userID   uint64
			storeID  string
			items    []TransactionItem
			expected error
		}{
			{"zero user", 0, "s-1", items, errs.ErrInvalidUserID},
			{"missing store", 1, "", items, errs.ErrInvalidStore},
			{"no items", 1, "s-1", nil, errs.ErrEmptyReceipt},
			{"zero quantity", 1, "s-1", []TransactionItem{{ProductName: "x", Quantity: 0}}, errs.ErrInvalidQuantity},
			{"quantity above the line limit", 1, "s-1", []TransactionItem{{ProductName: "x", Quantity: MaxLineQuantity + 1}}, errs.ErrInvalidQuantity},
			{"total points overflow", 1, "s-1", big, errs.ErrInvalidQuantity},
			{"total amount overflow", 1, "s-1", expensive, errs.ErrInvalidAmount},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				tx, err := NewTransaction(tc.userID, tc.storeID, "key", nil, false, tc.items, mockTime)

				assert.ErrorIs(t, err, tc.expected)
				assert.Nil(t, tx)
			})
		}
	})
}

func TestNewSuccessResult(t *testing.T) {
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(time.Now())

	unitPrice := int64(15000)
	product := &Product{ID: "p-1", Name: "Mleko", PointsPerUnit: 5, Status: ProductActive}
	items := []TransactionItem{
		mustItem(t, RawLineItem{Name: "Mleko", Quantity: 2, LineTotal: 30000, UnitPrice: &unitPrice}, MatchOf(product)),
		mustItem(t, RawLineItem{Name: "Hleb", Quantity: 1, LineTotal: 8000}, NoMatch()),
	}
	tx, err := NewTransaction(1, "s-1", "TEST_1", nil, true, items, mockTime)
	require.NoError(t, err)
	store := &Store{ID: "s-1", Name: "Maxi", Location: "Test Location"}

	result := NewSuccessResult(tx, store, 110)

	assert.True(t, result.Success)
	assert.Equal(t, tx.ID, result.TransactionID)
	assert.Equal(t, &StoreSummary{ID: "s-1", Name: "Maxi", Location: "Test Location"}, result.Store)
	assert.Equal(t, int64(10), result.TotalPoints)
	assert.Equal(t, "380.00", result.TotalAmount)
	assert.True(t, result.TestMode)
	require.NotNil(t, result.NewBalance)
	assert.Equal(t, int64(110), *result.NewBalance)

	require.Len(t, result.Items, 2)
	assert.Equal(t, "300.00", result.Items[0].Price)
	assert.Equal(t, "150.00", result.Items[0].UnitPrice)
	assert.Equal(t, "", result.Items[1].UnitPrice)

	require.Len(t, result.UnmatchedItems, 1)
	assert.Equal(t, "Hleb", result.UnmatchedItems[0].ProductName)
}

func TestNewFailureResult(t *testing.T) {
	result := NewFailureResult(errs.NewScanError(errs.KindFetchFailed, "fiscal endpoint returned status 503", nil))

	assert.False(t, result.Success)
	assert.Equal(t, "fiscal endpoint returned status 503", result.Error)
	assert.Equal(t, "FetchFailed", result.ErrorKind)
	assert.True(t, result.Retryable)
	assert.Nil(t, result.NewBalance)
}
