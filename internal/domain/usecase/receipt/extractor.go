package receipt

import (
	"regexp"
	"strings"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// receiptURLPattern finds the first http(s) token, ending at whitespace
var receiptURLPattern = regexp.MustCompile(`(?i)https?://\S+`)

var urlSchemes = []string{"http://", "https://"}

// ExtractReceiptURL returns the receipt URL carried by scanned QR text.
// Text that already starts with a URL scheme is returned as is, inner whitespace included.
func ExtractReceiptURL(raw string) (string, error) {
	text := strings.TrimSpace(raw)

	// Whole payload is the URL
	lower := strings.ToLower(text)
	for _, scheme := range urlSchemes {
		if strings.HasPrefix(lower, scheme) && len(text) > len(scheme) {
			return text, nil
		}
	}

	// Otherwise look for a URL embedded in the text
	if url := receiptURLPattern.FindString(text); url != "" {
		return url, nil
	}

	return "", errs.NewScanError(errs.KindInvalidQrPayload, "no receipt URL found in QR data", nil)
}
