package receipt

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	coreport "github.com/amirhossein-jamali/receipt-points/internal/domain/port/core"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/fiscal"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/receipt-points/internal/domain/port/usecase"
)

// Options tunes the receipt service
type Options struct {
	// FuzzyThreshold is the similarity a fuzzy product match must exceed
	FuzzyThreshold float64
	// AllowMockReceipts enables TEST: payloads
	AllowMockReceipts bool
}

// Service ties together the scan pipeline:
// extractor, fetcher, parser, matcher and transaction builder
type Service struct {
	uow          persistence.UnitOfWork
	fetcher      fiscal.DocumentFetcher
	builder      *TransactionBuilder
	validator    *ScanValidator
	idempotency  *IdempotencyHandler
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	options      Options
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	uow persistence.UnitOfWork,
	fetcher fiscal.DocumentFetcher,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	options Options,
) usecase.ReceiptUseCase {
	txnRepo := uow.GetTransactionRepository(context.Background())

	logger.Info("Receipt service initialized", map[string]any{
		"fuzzyThreshold":    options.FuzzyThreshold,
		"allowMockReceipts": options.AllowMockReceipts,
	})

	return &Service{
		uow:          uow,
		fetcher:      fetcher,
		builder:      NewTransactionBuilder(uow, timeProvider, logger),
		validator:    NewScanValidator(),
		idempotency:  NewIdempotencyHandler(txnRepo),
		timeProvider: timeProvider,
		logger:       logger,
		options:      options,
	}
}

// ScanReceipt turns a scanned QR payload into a persisted transaction and awards its points
func (s *Service) ScanReceipt(ctx context.Context, rawQR string, userID uint64) (*entity.ScanResult, error) {
	start := s.timeProvider.Now()

	if err := s.validator.ValidateScan(userID, rawQR); err != nil {
		var scanErr *errs.ScanError
		if errors.As(err, &scanErr) {
			return s.fail(userID, scanErr)
		}
		return nil, err
	}

	var (
		result *entity.ScanResult
		err    error
	)
	if s.options.AllowMockReceipts && IsMockReceipt(rawQR) {
		result, err = s.scanMock(ctx, rawQR, userID)
	} else {
		result, err = s.scanFiscal(ctx, rawQR, userID)
	}
	if err != nil {
		return s.fail(userID, asScanError(err, errs.KindPersistenceFailed))
	}

	s.logger.Info("Receipt scanned", map[string]any{
		"userId":        userID,
		"transactionId": result.TransactionID,
		"totalPoints":   result.TotalPoints,
		"testMode":      result.TestMode,
		"duration":      s.timeProvider.Since(start).Std().String(),
	})

	return result, nil
}

func (s *Service) scanFiscal(ctx context.Context, rawQR string, userID uint64) (*entity.ScanResult, error) {
	receiptURL, err := ExtractReceiptURL(rawQR)
	if err != nil {
		return nil, err
	}

	if err := s.idempotency.CheckReceipt(ctx, receiptURL); err != nil {
		return nil, err
	}

	doc, err := s.fetcher.Fetch(ctx, receiptURL)
	if err != nil {
		return nil, asScanError(err, errs.KindFetchFailed)
	}

	lines, err := ParseReceiptItems(doc.Payload)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fiscal receipt parsed", map[string]any{
		"userId":        userID,
		"invoiceNumber": doc.InvoiceNumber,
		"storeName":     doc.Store.Name,
		"itemCount":     len(lines),
	})

	return s.matchAndBuild(ctx, BuildRequest{
		UserID:     userID,
		Store:      doc.Store,
		ReceiptKey: receiptURL,
		RawPayload: doc.Payload,
		Lines:      lines,
	})
}

func (s *Service) scanMock(ctx context.Context, rawQR string, userID uint64) (*entity.ScanResult, error) {
	fixture, err := ParseMockReceipt(rawQR)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Processing test receipt", map[string]any{
		"userId":     userID,
		"storeName":  fixture.Store.Name,
		"itemCount":  len(fixture.Items),
		"receiptKey": fixture.ReceiptKey,
	})

	return s.matchAndBuild(ctx, BuildRequest{
		UserID:     userID,
		Store:      fixture.Store,
		ReceiptKey: fixture.ReceiptKey,
		RawPayload: fixture.Payload,
		TestMode:   true,
		Lines:      fixture.Items,
	})
}

// matchAndBuild loads the catalog once, matches every line and hands over to the builder
func (s *Service) matchAndBuild(ctx context.Context, req BuildRequest) (*entity.ScanResult, error) {
	products, err := s.uow.GetProductRepository(ctx).FindActive(ctx)
	if err != nil {
		return nil, errs.NewScanError(errs.KindPersistenceFailed, "could not load the product catalog", err)
	}

	catalog := NewCatalog(products, s.options.FuzzyThreshold)
	req.Matches = make([]entity.MatchResult, len(req.Lines))

	for i, line := range req.Lines {
		match, tier := catalog.MatchWithTier(line.Name)
		req.Matches[i] = match

		fields := map[string]any{
			"itemName": line.Name,
			"tier":     string(tier),
		}
		if match.Matched() {
			fields["productId"] = match.Product.ID
		}
		s.logger.Debug("Receipt item matched", fields)
	}

	return s.builder.Build(ctx, req)
}

// fail logs the scan error and returns the failure result alongside it.
// Parse failures hint at upstream protocol drift and are logged at error level.
func (s *Service) fail(userID uint64, scanErr *errs.ScanError) (*entity.ScanResult, error) {
	fields := scanErr.LogFields()
	fields["userId"] = userID

	switch scanErr.Kind {
	case errs.KindParseFailed:
		fields["alarm"] = "fiscal_protocol_drift"
		s.logger.Error("Receipt scan failed", fields)
	case errs.KindPersistenceInconsistency:
		// already alarmed by the builder
	default:
		s.logger.Warn("Receipt scan failed", fields)
	}

	return entity.NewFailureResult(scanErr), scanErr
}

// asScanError keeps a scan error as is and tags anything else with the fallback kind
func asScanError(err error, fallback errs.ErrorKind) *errs.ScanError {
	var scanErr *errs.ScanError
	if errors.As(err, &scanErr) {
		return scanErr
	}
	return errs.NewScanError(fallback, "", err)
}
