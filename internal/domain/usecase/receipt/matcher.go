package receipt

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

// DefaultFuzzyThreshold is the similarity a fuzzy match must exceed
const DefaultFuzzyThreshold = 0.8

// MatchTier names the rule that resolved a product
type MatchTier string

// Match tiers in the order they are tried
const (
	TierExact     MatchTier = "exact"
	TierSubstring MatchTier = "substring"
	TierFuzzy     MatchTier = "fuzzy"
	TierNone      MatchTier = "none"
)

type catalogEntry struct {
	product *entity.Product
	name    string
	length  int
}

// Catalog is the active product list prepared for matching one receipt.
// Products keep the order they were given in; the first qualifying product wins within a tier.
type Catalog struct {
	entries   []catalogEntry
	threshold float64
}

// NewCatalog builds a catalog from the given products, skipping inactive and unnamed ones.
// A threshold outside (0, 1) falls back to DefaultFuzzyThreshold.
func NewCatalog(products []*entity.Product, threshold float64) *Catalog {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultFuzzyThreshold
	}

	entries := make([]catalogEntry, 0, len(products))
	for _, p := range products {
		if p == nil || !p.IsActive() {
			continue
		}
		name := normalizeName(p.Name)
		if name == "" {
			continue
		}
		entries = append(entries, catalogEntry{
			product: p,
			name:    name,
			length:  utf8.RuneCountInString(name),
		})
	}

	return &Catalog{entries: entries, threshold: threshold}
}

// Size returns the number of matchable products
func (c *Catalog) Size() int {
	return len(c.entries)
}

// Match resolves a receipt line name to a product
func (c *Catalog) Match(name string) entity.MatchResult {
	result, _ := c.MatchWithTier(name)
	return result
}

// MatchWithTier resolves a receipt line name and reports which tier matched
func (c *Catalog) MatchWithTier(name string) (entity.MatchResult, MatchTier) {
	needle := normalizeName(name)
	if needle == "" {
		return entity.NoMatch(), TierNone
	}

	for _, e := range c.entries {
		if e.name == needle {
			return entity.MatchOf(e.product), TierExact
		}
	}

	for _, e := range c.entries {
		if strings.Contains(needle, e.name) || strings.Contains(e.name, needle) {
			return entity.MatchOf(e.product), TierSubstring
		}
	}

	needleLength := utf8.RuneCountInString(needle)
	for _, e := range c.entries {
		if c.fuzzyMatch(needle, needleLength, e) {
			return entity.MatchOf(e.product), TierFuzzy
		}
	}

	return entity.NoMatch(), TierNone
}

// fuzzyMatch compares without dividing so a ratio equal to the threshold is never accepted
func (c *Catalog) fuzzyMatch(needle string, needleLength int, e catalogEntry) bool {
	longest := max(needleLength, e.length)
	distance := levenshtein.ComputeDistance(needle, e.name)
	return float64(longest-distance) > c.threshold*float64(longest)
}

// Similarity returns 1 - editDistance/maxLength of the normalized names, in [0, 1]
func Similarity(a, b string) float64 {
	a, b = normalizeName(a), normalizeName(b)
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
