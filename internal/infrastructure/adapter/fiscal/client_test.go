package fiscal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	"github.com/amirhossein-jamali/receipt-points/internal/infrastructure/adapter/logger"
)

const (
	testInvoice = "M4XG7WCS-M4XG7WCS-56123"
	testToken   = "8e9b6f78-3747-4929-ad10-0f3fe5391755"
	testPayload = `{"success":true,"items":[{"name":"Coca-Cola 0.5L","quantity":2,"total":240,"unitPrice":120}]}`
)

const receiptPage = `<html><body>
<span id="tinLabel"> 100002417 </span>
<span id="shopFullNameLabel">Maxi 123</span>
<span id="addressLabel">Bulevar Oslobodjenja 1</span>
<span id="cityLabel">Novi Sad</span>
<script type="text/javascript">
  viewModel.InvoiceNumber('` + testInvoice + `');
  viewModel.Token('` + testToken + `');
</script>
</body></html>`

// fakeSUF serves a receipt page at /v/ and the specifications endpoint
type fakeSUF struct {
	page        string
	pageStatus  int
	pageDelay   time.Duration
	specStatus  int
	specBody    string
	specHits    atomic.Int32
	lastForm    map[string]string
	lastHeaders http.Header
}

func (f *fakeSUF) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v/", func(w http.ResponseWriter, r *http.Request) {
		// Simulate a slow upstream, giving up once the client goes away
		if f.pageDelay > 0 {
			select {
			case <-time.After(f.pageDelay):
			case <-r.Context().Done():
				return
			}
		}
		if f.pageStatus != 0 {
			w.WriteHeader(f.pageStatus)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, f.page)
	})
	mux.HandleFunc("/specifications", func(w http.ResponseWriter, r *http.Request) {
		f.specHits.Add(1)
		_ = r.ParseForm()
		f.lastForm = map[string]string{
			"invoiceNumber": r.PostForm.Get("invoiceNumber"),
			"token":         r.PostForm.Get("token"),
		}
		f.lastHeaders = r.Header.Clone()
		if f.specStatus != 0 {
			w.WriteHeader(f.specStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, f.specBody)
	})
	return mux
}

func newTestClient(t *testing.T, suf *fakeSUF) (*Client, string) {
	t.Helper()
	return newTestClientWithOptions(t, suf, Options{Timeout: 2 * time.Second})
}

func newTestClientWithOptions(t *testing.T, suf *fakeSUF, opts Options) (*Client, string) {
	t.Helper()
	server := httptest.NewServer(suf.handler())
	t.Cleanup(server.Close)

	opts.BaseURL = server.URL
	client := NewClient(opts, logger.NewNoopLogger()).(*Client)
	return client, server.URL + "/v/?vl=abc"
}

func TestClient_Fetch(t *testing.T) {
	t.Run("should fetch specifications with extracted invoice parameters", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: receiptPage, specBody: testPayload}
		client, receiptURL := newTestClient(t, suf)

		// Act
		doc, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, receiptURL, doc.ReceiptURL)
		assert.Equal(t, testInvoice, doc.InvoiceNumber)
		assert.JSONEq(t, testPayload, string(doc.Payload))
		assert.Equal(t, "Maxi 123", doc.Store.Name)
		assert.Equal(t, "Bulevar Oslobodjenja 1, Novi Sad", doc.Store.Location)
		assert.Equal(t, "100002417", doc.Store.TaxID)

		assert.Equal(t, testInvoice, suf.lastForm["invoiceNumber"])
		assert.Equal(t, testToken, suf.lastForm["token"])
		assert.Equal(t, "XMLHttpRequest", suf.lastHeaders.Get("X-Requested-With"))
		assert.Equal(t, receiptURL, suf.lastHeaders.Get("Referer"))
		assert.Equal(t, DefaultUserAgent, suf.lastHeaders.Get("User-Agent"))
		assert.True(t, strings.HasPrefix(suf.lastHeaders.Get("Content-Type"), "application/x-www-form-urlencoded"))
	})

	t.Run("should fail with FetchFailed on non-OK receipt page", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{pageStatus: http.StatusServiceUnavailable}
		client, receiptURL := newTestClient(t, suf)

		// Act
		doc, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, errs.ErrFetchFailed)
		assert.Equal(t, errs.KindFetchFailed, errs.KindOf(err))
	})

	t.Run("should fail with FetchFailed on non-OK specifications response", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: receiptPage, specStatus: http.StatusInternalServerError}
		client, receiptURL := newTestClient(t, suf)

		// Act
		_, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		assert.Equal(t, errs.KindFetchFailed, errs.KindOf(err))
	})

	t.Run("should fail with ParseFailed when tokens are missing", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: `<html><body><p>maintenance</p></body></html>`}
		client, receiptURL := newTestClient(t, suf)

		// Act
		_, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		var scanErr *errs.ScanError
		require.ErrorAs(t, err, &scanErr)
		assert.Equal(t, errs.KindParseFailed, scanErr.Kind)
		assert.Equal(t, "could not extract invoice parameters", scanErr.Message())
		assert.Nil(t, suf.lastForm)
	})

	t.Run("should fail with ParseFailed on non-JSON specifications", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: receiptPage, specBody: "<html>error</html>"}
		client, receiptURL := newTestClient(t, suf)

		// Act
		_, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		assert.ErrorIs(t, err, errs.ErrParseFailed)
	})

	t.Run("should fail with FetchFailed when the receipt page times out", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: receiptPage, specBody: testPayload, pageDelay: 2 * time.Second}
		client, receiptURL := newTestClientWithOptions(t, suf, Options{Timeout: 50 * time.Millisecond})

		// Act
		doc, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		assert.Nil(t, doc)
		var scanErr *errs.ScanError
		require.ErrorAs(t, err, &scanErr)
		assert.Equal(t, errs.KindFetchFailed, scanErr.Kind)
		assert.Equal(t, "fiscal request timed out", scanErr.Message())
		assert.Zero(t, suf.specHits.Load())
	})

	t.Run("should fail with FetchFailed when the caller cancels", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: receiptPage, specBody: testPayload}
		client, receiptURL := newTestClient(t, suf)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		doc, err := client.Fetch(ctx, receiptURL)

		// Assert
		assert.Nil(t, doc)
		var scanErr *errs.ScanError
		require.ErrorAs(t, err, &scanErr)
		assert.Equal(t, errs.KindFetchFailed, scanErr.Kind)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, suf.specHits.Load())
	})

	t.Run("should reject an oversized response instead of truncating it", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: receiptPage, specBody: testPayload}
		client, receiptURL := newTestClientWithOptions(t, suf, Options{Timeout: 2 * time.Second, MaxBodySize: 64})

		// Act
		doc, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		assert.Nil(t, doc)
		var scanErr *errs.ScanError
		require.ErrorAs(t, err, &scanErr)
		assert.Equal(t, errs.KindFetchFailed, scanErr.Kind)
		assert.Equal(t, "fiscal response exceeds 64 bytes", scanErr.Message())
		assert.Zero(t, suf.specHits.Load())
	})

	t.Run("should accept a response of exactly the limit", func(t *testing.T) {
		// Arrange
		suf := &fakeSUF{page: receiptPage, specBody: testPayload}
		client, receiptURL := newTestClientWithOptions(t, suf, Options{
			Timeout:     2 * time.Second,
			MaxBodySize: int64(max(len(receiptPage), len(testPayload))),
		})

		// Act
		doc, err := client.Fetch(context.Background(), receiptURL)

		// Assert
		require.NoError(t, err)
		assert.JSONEq(t, testPayload, string(doc.Payload))
		assert.Equal(t, int32(1), suf.specHits.Load())
	})

	t.Run("should fail with FetchFailed when the host is unreachable", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.NotFoundHandler())
		unreachable := server.URL
		server.Close()
		client := NewClient(Options{BaseURL: unreachable, Timeout: time.Second}, logger.NewNoopLogger())

		// Act
		_, err := client.Fetch(context.Background(), unreachable+"/v/?vl=abc")

		// Assert
		assert.Equal(t, errs.KindFetchFailed, errs.KindOf(err))
	})
}

func TestExtractInvoiceParams(t *testing.T) {
	testCases := []struct {
		name    string
		page    string
		invoice string
		token   string
		sources [2]string
		ok      bool
	}{
		{
			name:    "view model calls",
			page:    receiptPage,
			invoice: testInvoice,
			token:   testToken,
			sources: [2]string{strategyViewModel, strategyViewModel},
			ok:      true,
		},
		{
			name:    "invoice label with script token",
			page:    `<span id="invoiceNumberLabel"> ABC-1 </span><script>var cfg = { token: "` + testToken + `" };</script>`,
			invoice: "ABC-1",
			token:   testToken,
			sources: [2]string{strategyInvoiceLabel, strategyScriptPattern},
			ok:      true,
		},
		{
			name:    "loose script assignments",
			page:    `<script>window.invoiceNumber = "XYZ-9"; window.Token = '` + testToken + `';</script>`,
			invoice: "XYZ-9",
			token:   testToken,
			sources: [2]string{strategyScriptPattern, strategyScriptPattern},
			ok:      true,
		},
		{
			name:    "token missing",
			page:    `<span id="invoiceNumberLabel">ABC-1</span>`,
			invoice: "ABC-1",
			sources: [2]string{strategyInvoiceLabel, ""},
			ok:      false,
		},
		{
			name:    "token with wrong shape is ignored",
			page:    `<script>invoiceNumber: "A"; token: "not-a-uuid"</script>`,
			invoice: "A",
			sources: [2]string{strategyScriptPattern, ""},
			ok:      false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(tc.page))
			require.NoError(t, err)

			params, ok := extractInvoiceParams(doc)

			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.invoice, params.InvoiceNumber)
			assert.Equal(t, tc.token, params.Token)
			assert.Equal(t, tc.sources, [2]string{params.invoiceSource, params.tokenSource})
		})
	}
}

func TestExtractStoreInfo(t *testing.T) {
	t.Run("should fall back to the default store name", func(t *testing.T) {
		// Arrange
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<span id="cityLabel">Beograd</span>`))
		require.NoError(t, err)

		// Act
		info := extractStoreInfo(doc)

		// Assert
		assert.Equal(t, "Unknown Store", info.Name)
		assert.Equal(t, "Beograd", info.Location)
		assert.Empty(t, info.TaxID)
	})
}
