package entity

// DefaultProductName is used for receipt lines without a name
const DefaultProductName = "Unknown Product"

// MaxLineQuantity is the largest quantity accepted on one receipt line
const MaxLineQuantity int64 = 100_000

// RawLineItem is one line of a parsed fiscal receipt.
// Amounts are in minor units.
type RawLineItem struct {
	Name       string
	Quantity   int64
	LineTotal  int64
	UnitPrice  *int64
	ExternalID string
}

// MatchResult is the outcome of matching one line item against the catalog
type MatchResult struct {
	Product       *Product
	PointsPerUnit int64
}

// Matched reports whether a catalog product was resolved
func (m MatchResult) Matched() bool {
	return m.Product != nil
}

// NoMatch is the result for a line item with no catalog product
func NoMatch() MatchResult {
	return MatchResult{}
}

// MatchOf returns the result for a resolved product
func MatchOf(p *Product) MatchResult {
	return MatchResult{Product: p, PointsPerUnit: p.PointsPerUnit}
}

// FiscalDocument is the receipt as returned by the fiscal authority
type FiscalDocument struct {
	ReceiptURL    string
	InvoiceNumber string
	Payload       []byte
	Store         StoreInfo
}
