package fiscal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	fiscalport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/fiscal"
)

// Defaults for the Serbian fiscal receipt service
const (
	DefaultBaseURL   = "https://suf.purs.gov.rs"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout   = 10 * time.Second
	DefaultMaxBody   = 4 << 20

	specificationsPath = "/specifications"
)

var (
	reViewModelInvoice = regexp.MustCompile(`viewModel\.InvoiceNumber\(["']([^"']+)["']\)`)
	reViewModelToken   = regexp.MustCompile(`viewModel\.Token\(["']([^"']+)["']\)`)
	reScriptInvoice    = regexp.MustCompile(`(?i)invoiceNumber["']?\s*[:=]\s*["']([^"']+)`)
	reScriptToken      = regexp.MustCompile(`(?i)token["']?\s*[:=]\s*["']([a-f0-9\-]{36})`)
)

// Options configures the fiscal client
type Options struct {
	BaseURL   string
	UserAgent string
	// Timeout bounds each of the two requests
	Timeout time.Duration
	// MaxBodySize is the largest response body accepted, in bytes
	MaxBodySize int64
}

// Client fetches receipt specifications from the fiscal authority.
// A fetch is two requests: the receipt page for its invoice parameters,
// then a form POST to the specifications endpoint.
type Client struct {
	baseURL     string
	userAgent   string
	maxBodySize int64
	client      *http.Client
	logger      coreport.Logger
}

// Token extraction strategies, in priority order
const (
	strategyViewModel     = "view-model"
	strategyInvoiceLabel  = "invoice-label"
	strategyScriptPattern = "script-pattern"
)

// invoiceParams are the values the specifications endpoint expects
type invoiceParams struct {
	InvoiceNumber string
	Token         string

	invoiceSource string
	tokenSource   string
}

// NewClient creates a new fiscal client
func NewClient(opts Options, logger coreport.Logger) fiscalport.DocumentFetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = DefaultMaxBody
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   opts.UserAgent,
		maxBodySize: opts.MaxBodySize,
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		logger: logger,
	}
}

// Fetch loads the receipt page and returns its item specification
func (c *Client) Fetch(ctx context.Context, receiptURL string) (*entity.FiscalDocument, error) {
	doc, err := c.fetchPage(ctx, receiptURL)
	if err != nil {
		return nil, err
	}

	params, ok := extractInvoiceParams(doc)
	if !ok {
		return nil, errs.NewScanError(errs.KindParseFailed, "could not extract invoice parameters", nil)
	}

	payload, err := c.fetchSpecifications(ctx, receiptURL, params)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Fiscal receipt fetched", map[string]any{
		"invoice_number": params.InvoiceNumber,
		"invoice_source": params.invoiceSource,
		"token_source":   params.tokenSource,
		"payload_size":   len(payload),
	})

	return &entity.FiscalDocument{
		ReceiptURL:    receiptURL,
		InvoiceNumber: params.InvoiceNumber,
		Payload:       payload,
		Store:         extractStoreInfo(doc),
	}, nil
}

func (c *Client) fetchPage(ctx context.Context, receiptURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, receiptURL, nil)
	if err != nil {
		return nil, errs.NewScanError(errs.KindFetchFailed, "invalid receipt URL", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	body, contentType, err := c.do(req)
	if err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, errs.NewScanError(errs.KindParseFailed, "unsupported receipt page encoding", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, errs.NewScanError(errs.KindParseFailed, "could not parse receipt page", err)
	}

	return doc, nil
}

func (c *Client) fetchSpecifications(ctx context.Context, receiptURL string, params invoiceParams) ([]byte, error) {
	form := url.Values{}
	form.Set("invoiceNumber", params.InvoiceNumber)
	form.Set("token", params.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+specificationsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errs.NewScanError(errs.KindFetchFailed, "invalid specifications URL", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", receiptURL)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	body, _, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if !json.Valid(body) {
		return nil, errs.NewScanError(errs.KindParseFailed, "fiscal response is not valid JSON", nil)
	}

	return body, nil
}

// do sends the request and returns the body of a 2xx response
func (c *Client) do(req *http.Request) ([]byte, string, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("Fiscal request failed", map[string]any{
			"method": req.Method,
			"url":    req.URL.String(),
			"error":  err.Error(),
		})
		return nil, "", errs.NewScanError(errs.KindFetchFailed, transportFailure(err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Fiscal endpoint returned non-OK status", map[string]any{
			"method": req.Method,
			"url":    req.URL.String(),
			"status": resp.StatusCode,
		})
		return nil, "", errs.NewScanError(errs.KindFetchFailed, fmt.Sprintf("fiscal endpoint returned status %d", resp.StatusCode), nil)
	}

	// Read one byte past the limit so an oversized body is rejected, not truncated
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, "", errs.NewScanError(errs.KindFetchFailed, "could not read fiscal response", err)
	}
	if int64(len(body)) > c.maxBodySize {
		c.logger.Warn("Fiscal response too large", map[string]any{
			"method":   req.Method,
			"url":      req.URL.String(),
			"max_size": c.maxBodySize,
		})
		return nil, "", errs.NewScanError(errs.KindFetchFailed,
			fmt.Sprintf("fiscal response exceeds %d bytes", c.maxBodySize), nil)
	}

	return body, resp.Header.Get("Content-Type"), nil
}

// transportFailure names the reason a request never got a response
func transportFailure(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "fiscal request was cancelled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "fiscal request timed out"
	default:
		return ""
	}
}

// extractInvoiceParams tries the viewModel calls first, then the invoice label,
// then loose assignments anywhere in the page scripts
func extractInvoiceParams(doc *goquery.Document) (invoiceParams, bool) {
	var params invoiceParams

	doc.Find(`script[type="text/javascript"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if m := reViewModelInvoice.FindStringSubmatch(text); m != nil {
			params.InvoiceNumber, params.invoiceSource = m[1], strategyViewModel
		}
		if m := reViewModelToken.FindStringSubmatch(text); m != nil {
			params.Token, params.tokenSource = m[1], strategyViewModel
		}
		return params.InvoiceNumber == "" || params.Token == ""
	})

	if params.InvoiceNumber == "" {
		if label := strings.TrimSpace(doc.Find("#invoiceNumberLabel").First().Text()); label != "" {
			params.InvoiceNumber, params.invoiceSource = label, strategyInvoiceLabel
		}
	}

	if params.InvoiceNumber == "" {
		if v := firstScriptMatch(doc, reScriptInvoice); v != "" {
			params.InvoiceNumber, params.invoiceSource = v, strategyScriptPattern
		}
	}
	if params.Token == "" {
		if v := firstScriptMatch(doc, reScriptToken); v != "" {
			params.Token, params.tokenSource = v, strategyScriptPattern
		}
	}

	return params, params.InvoiceNumber != "" && params.Token != ""
}

func firstScriptMatch(doc *goquery.Document, re *regexp.Regexp) string {
	var found string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := re.FindStringSubmatch(s.Text()); m != nil {
			found = m[1]
			return false
		}
		return true
	})
	return found
}

func extractStoreInfo(doc *goquery.Document) entity.StoreInfo {
	label := func(id string) string {
		return strings.TrimSpace(doc.Find(id).First().Text())
	}

	return entity.NewStoreInfo(
		label("#shopFullNameLabel"),
		label("#tinLabel"),
		label("#addressLabel"),
		label("#cityLabel"),
	)
}
