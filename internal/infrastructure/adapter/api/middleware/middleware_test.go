package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/logger"
	timeadapter "github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/time"
	coremocks "github.com/amirhossein-jamali/receipt-points/mocks/port/core"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS(t *testing.T) {
	newRouter := func(origins []string) *gin.Engine {
		router := gin.New()
		router.Use(CORS(origins))
		router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	t.Run("should answer preflight without reaching the handler", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()

		// Act
		newRouter([]string{"https://app.example.com"}).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, corsAllowedMethods, rec.Header().Get("Access-Control-Allow-Methods"))
	})

	t.Run("should not echo a disallowed origin", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		// Act
		newRouter([]string{"https://app.example.com"}).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("should allow any origin with a wildcard", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		// Act
		newRouter([]string{"*"}).ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	t.Run("should keep the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", rec.Body.String())
		assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
	})

	t.Run("should generate a request id", func(t *testing.T) {
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Len(t, rec.Body.String(), 36)
		assert.Equal(t, rec.Body.String(), rec.Header().Get(RequestIDHeader))
	})
}

func TestErrorHandler(t *testing.T) {
	t.Run("should recover a panic as 500", func(t *testing.T) {
		// Arrange
		mockLogger := coremocks.NewMockLogger(t)
		mockLogger.EXPECT().Error("Panic recovered in API request", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["error"] == "kaboom" && fields["path"] == "/panic"
		})).Once()

		router := gin.New()
		router.Use(ErrorHandler(mockLogger))
		router.GET("/panic", func(*gin.Context) { panic("kaboom") })
		rec := httptest.NewRecorder()

		// Act
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

		// Assert
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"code":5000,"message":"Internal server error"}`, rec.Body.String())
	})
}

func TestLogger(t *testing.T) {
	t.Run("should log client errors at warn level", func(t *testing.T) {
		// Arrange
		mockLogger := coremocks.NewMockLogger(t)
		mockLogger.EXPECT().Warn("Request processed", mock.MatchedBy(func(fields map[string]any) bool {
			return fields["status"] == http.StatusNotFound && fields["route"] == "/missing"
		})).Once()

		router := gin.New()
		router.Use(Logger(mockLogger, timeadapter.NewRealTimeProvider()))
		router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
		rec := httptest.NewRecorder()

		// Act
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		// Assert
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should log successful requests at info level", func(t *testing.T) {
		// Arrange
		router := gin.New()
		router.Use(Logger(logger.NewNoopLogger(), timeadapter.NewRealTimeProvider()))
		router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
		rec := httptest.NewRecorder()

		// Act
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Success", statusText(rec.Code))
	})
}
