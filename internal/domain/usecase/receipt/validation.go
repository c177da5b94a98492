package receipt

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// MaxQRDataLength bounds the scanned text accepted from clients
const MaxQRDataLength = 4096

// ScanValidator provides validation for scan requests
type ScanValidator struct {
	maxLength int
}

// NewScanValidator creates a new ScanValidator
func NewScanValidator() *ScanValidator {
	return &ScanValidator{maxLength: MaxQRDataLength}
}

// ValidateScan validates the user and the scanned payload.
// An invalid user is reported as ErrInvalidUserID, an invalid payload as an InvalidQrPayload scan error.
func (v *ScanValidator) ValidateScan(userID uint64, rawQR string) error {
	if userID == 0 {
		return errs.ErrInvalidUserID
	}

	if strings.TrimSpace(rawQR) == "" {
		return errs.NewScanError(errs.KindInvalidQrPayload, "QR data is empty", nil)
	}

	if len(rawQR) > v.maxLength {
		return errs.NewScanError(errs.KindInvalidQrPayload,
			fmt.Sprintf("QR data exceeds %d bytes", v.maxLength), nil)
	}

	return nil
}
