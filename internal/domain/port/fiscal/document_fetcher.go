package fiscal

import (
	"context"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// DocumentFetcher retrieves a fiscal receipt from the tax authority
type DocumentFetcher interface {
	// Fetch loads the receipt page behind receiptURL and returns its item specification.
	//
	// Possible errors (as *ScanError):
	// - KindFetchFailed: transport error, timeout or non-OK status
	// - KindParseFailed: invoice parameters missing or response is not JSON
	Fetch(ctx context.Context, receiptURL string) (*entity.FiscalDocument, error)
}
