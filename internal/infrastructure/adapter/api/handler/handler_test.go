package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/time"
	usecasemocks "github.com/amirhossein-jamali/receipt-points/mocks/port/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newScanRouter(t *testing.T) (*gin.Engine, *usecasemocks.MockReceiptUseCase) {
	t.Helper()
	receiptUseCase := usecasemocks.NewMockReceiptUseCase(t)
	h := NewReceiptHandler(receiptUseCase, logger.NewNoopLogger())

	router := gin.New()
	router.POST("/user/:userId/receipts/scan", h.ScanReceipt)
	return router, receiptUseCase
}

func postScan(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestReceiptHandler_ScanReceipt(t *testing.T) {
	t.Run("should return 200 with the scan result", func(t *testing.T) {
		// Arrange
		router, receiptUseCase := newScanRouter(t)
		balance := int64(45)
		receiptUseCase.EXPECT().ScanReceipt(mock.Anything, "TEST:demo", uint64(1)).Return(&entity.ScanResult{
			Success:       true,
			TransactionID: "tx-1",
			TotalPoints:   45,
			TotalAmount:   "550.00",
			TestMode:      true,
			NewBalance:    &balance,
		}, nil).Once()

		// Act
		rec := postScan(router, "/user/1/receipts/scan", `{"qrData":"TEST:demo"}`)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		var body entity.ScanResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "tx-1", body.TransactionID)
		assert.Equal(t, int64(45), body.TotalPoints)
		require.NotNil(t, body.NewBalance)
		assert.Equal(t, int64(45), *body.NewBalance)
	})

	testCases := []struct {
		name   string
		err    *domainerr.ScanError
		status int
	}{
		{"invalid payload", domainerr.NewScanError(domainerr.KindInvalidQrPayload, "", nil), http.StatusBadRequest},
		{"fetch failed", domainerr.NewScanError(domainerr.KindFetchFailed, "", errors.New("timeout")), http.StatusBadRequest},
		{"parse failed", domainerr.NewScanError(domainerr.KindParseFailed, "could not extract invoice parameters", nil), http.StatusBadRequest},
		{"empty receipt", domainerr.NewScanError(domainerr.KindEmptyReceipt, "", nil), http.StatusBadRequest},
		{"duplicate", domainerr.NewScanError(domainerr.KindDuplicateReceipt, "", nil), http.StatusConflict},
		{"unknown user", domainerr.NewScanError(domainerr.KindPersistenceFailed, "", domainerr.ErrUserNotFound), http.StatusNotFound},
		{"concurrency", domainerr.NewScanError(domainerr.KindPersistenceFailed, "", domainerr.ErrConcurrentUpdate), http.StatusServiceUnavailable},
		{"persistence", domainerr.NewScanError(domainerr.KindPersistenceFailed, "", errors.New("disk full")), http.StatusInternalServerError},
		{"inconsistency", domainerr.NewScanError(domainerr.KindPersistenceInconsistency, "", domainerr.ErrCommitFailed), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run("should map "+tc.name+" failure", func(t *testing.T) {
			// Arrange
			router, receiptUseCase := newScanRouter(t)
			receiptUseCase.EXPECT().ScanReceipt(mock.Anything, "https://suf.purs.gov.rs/v/?vl=x", uint64(2)).
				Return(entity.NewFailureResult(tc.err), tc.err).Once()

			// Act
			rec := postScan(router, "/user/2/receipts/scan", `{"qrData":"https://suf.purs.gov.rs/v/?vl=x"}`)

			// Assert
			assert.Equal(t, tc.status, rec.Code)
			var body entity.ScanResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.err.Kind.String(), body.ErrorKind)
			assert.Equal(t, tc.err.Message(), body.Error)
			assert.Equal(t, tc.err.Kind.Retryable(), body.Retryable)
		})
	}

	t.Run("should reject a malformed user id", func(t *testing.T) {
		// Arrange
		router, _ := newScanRouter(t)

		// Act
		rec := postScan(router, "/user/abc/receipts/scan", `{"qrData":"TEST:demo"}`)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domainerr.CodeInvalidUserID, body.Code)
	})

	t.Run("should reject a body without qrData", func(t *testing.T) {
		// Arrange
		router, _ := newScanRouter(t)

		// Act
		rec := postScan(router, "/user/1/receipts/scan", `{}`)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domainerr.CodeInvalidRequest, body.Code)
	})

	t.Run("should return 500 for an untagged error", func(t *testing.T) {
		// Arrange
		router, receiptUseCase := newScanRouter(t)
		receiptUseCase.EXPECT().ScanReceipt(mock.Anything, "TEST:demo", uint64(1)).
			Return(nil, errors.New("boom")).Once()

		// Act
		rec := postScan(router, "/user/1/receipts/scan", `{"qrData":"TEST:demo"}`)

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestUserHandler_GetPoints(t *testing.T) {
	newRouter := func(t *testing.T) (*gin.Engine, *usecasemocks.MockUserUseCase) {
		userUseCase := usecasemocks.NewMockUserUseCase(t)
		h := NewUserHandler(userUseCase, logger.NewNoopLogger())
		router := gin.New()
		router.GET("/user/:userId/points", h.GetPoints)
		return router, userUseCase
	}

	t.Run("should return the points balance", func(t *testing.T) {
		// Arrange
		router, userUseCase := newRouter(t)
		userUseCase.EXPECT().GetPointsBalance(mock.Anything, uint64(3)).
			Return(&entity.PointsBalance{UserID: 3, Points: 120, TransactionCount: 4}, nil).Once()

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/3/points", nil))

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.PointsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, dto.PointsResponse{UserID: 3, Points: 120, TransactionCount: 4}, body)
	})

	t.Run("should return 404 for an unknown user", func(t *testing.T) {
		// Arrange
		router, userUseCase := newRouter(t)
		userUseCase.EXPECT().GetPointsBalance(mock.Anything, uint64(99)).
			Return(nil, domainerr.ErrUserNotFound).Once()

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/99/points", nil))

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domainerr.CodeUserNotFound, body.Code)
		assert.Equal(t, "User not found", body.Message)
	})

	t.Run("should reject user id zero", func(t *testing.T) {
		// Arrange
		router, _ := newRouter(t)

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/0/points", nil))

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTransactionHandler(t *testing.T) {
	newRouter := func(t *testing.T) (*gin.Engine, *usecasemocks.MockTransactionQueryUseCase, *usecasemocks.MockUserUseCase) {
		queryUseCase := usecasemocks.NewMockTransactionQueryUseCase(t)
		userUseCase := usecasemocks.NewMockUserUseCase(t)
		h := NewTransactionHandler(queryUseCase, userUseCase, logger.NewNoopLogger())
		router := gin.New()
		router.GET("/user/:userId/transactions", h.ListUserTransactions)
		router.GET("/transactions/:transactionId", h.GetTransaction)
		return router, queryUseCase, userUseCase
	}

	productID := "p-1"
	tx := &entity.Transaction{
		ID:          "tx-1",
		UserID:      1,
		StoreID:     "s-1",
		TotalPoints: 20,
		TotalAmount: 30000,
		ReceiptKey:  "https://suf.purs.gov.rs/v/?vl=x",
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Store:       &entity.Store{ID: "s-1", Name: "Maxi", Location: "Novi Sad"},
		Items: []entity.TransactionItem{
			{ID: "i-1", LineNumber: 1, ProductName: "Test Product 1", Quantity: 2, Price: 30000, ProductID: &productID, Points: 20, Matched: true},
		},
	}

	t.Run("should list the user's transactions", func(t *testing.T) {
		// Arrange
		router, queryUseCase, userUseCase := newRouter(t)
		userUseCase.EXPECT().UserExists(mock.Anything, uint64(1)).Return(true, nil).Once()
		queryUseCase.EXPECT().ListUserTransactions(mock.Anything, uint64(1), 10, 5).
			Return([]*entity.Transaction{tx}, nil).Once()

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/1/transactions?limit=10&offset=5", nil))

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.TransactionListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Count)
		assert.Equal(t, 5, body.Offset)
		require.Len(t, body.Transactions, 1)
		assert.Equal(t, "300.00", body.Transactions[0].TotalAmount)
		assert.Equal(t, "Maxi", body.Transactions[0].Store.Name)
		require.Len(t, body.Transactions[0].Items, 1)
		assert.Equal(t, "Test Product 1", body.Transactions[0].Items[0].ProductName)
	})

	t.Run("should reject a non-numeric limit", func(t *testing.T) {
		// Arrange
		router, _, _ := newRouter(t)

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/1/transactions?limit=ten", nil))

		// Assert
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should return 404 when the user does not exist", func(t *testing.T) {
		// Arrange
		router, _, userUseCase := newRouter(t)
		userUseCase.EXPECT().UserExists(mock.Anything, uint64(7)).Return(false, nil).Once()

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/7/transactions", nil))

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should return one transaction", func(t *testing.T) {
		// Arrange
		router, queryUseCase, _ := newRouter(t)
		queryUseCase.EXPECT().GetTransaction(mock.Anything, "tx-1").Return(tx, nil).Once()

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/tx-1", nil))

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.TransactionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "tx-1", body.ID)
		assert.Equal(t, tx.ReceiptKey, body.ReceiptURL)
		assert.Equal(t, int64(20), body.TotalPoints)
	})

	t.Run("should return 404 for an unknown transaction", func(t *testing.T) {
		// Arrange
		router, queryUseCase, _ := newRouter(t)
		queryUseCase.EXPECT().GetTransaction(mock.Anything, "missing").
			Return(nil, domainerr.ErrTransactionNotFound).Once()

		// Act
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/missing", nil))

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domainerr.CodeTransactionNotFound, body.Code)
	})
}

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error {
	return p.err
}

type poolPingerStub struct {
	pingerStub
	metrics database.ConnectionPoolMetrics
}

func (p poolPingerStub) PoolMetrics() database.ConnectionPoolMetrics {
	return p.metrics
}

func TestHealthHandler(t *testing.T) {
	newRouter := func(pinger DBPinger) *gin.Engine {
		h := NewHealthHandler(pinger, timeadapter.NewRealTimeProvider(), logger.NewNoopLogger())
		router := gin.New()
		router.GET("/health/live", h.Live)
		router.GET("/health/ready", h.Ready)
		return router
	}

	t.Run("should always report live", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(pingerStub{err: errors.New("down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should report ready when the database answers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(pingerStub{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "up", body.Components["database"].Status)
		assert.Zero(t, body.Components["database"].OpenConnections)
	})

	t.Run("should include pool metrics when the database reports them", func(t *testing.T) {
		pinger := poolPingerStub{metrics: database.ConnectionPoolMetrics{OpenConnections: 4, InUse: 1}}
		rec := httptest.NewRecorder()
		newRouter(pinger).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 4, body.Components["database"].OpenConnections)
		assert.Equal(t, 1, body.Components["database"].InUse)
	})

	t.Run("should report 503 when the database is down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(pingerStub{err: errors.New("connection refused")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
