package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
)

func TestCatalogMatch(t *testing.T) {
	milk := activeProduct("p-milk", "Mleko 1L", 5)
	bread := activeProduct("p-bread", "Hleb", 3)
	yogurt := activeProduct("p-yogurt", "Jogurt", 4)
	catalog := NewCatalog([]*entity.Product{bread, milk, yogurt}, DefaultFuzzyThreshold)

	t.Run("should match exactly ignoring case and spaces", func(t *testing.T) {
		result, tier := catalog.MatchWithTier("  mleko 1l ")

		assert.Equal(t, TierExact, tier)
		assert.Same(t, milk, result.Product)
		assert.Equal(t, int64(5), result.PointsPerUnit)
	})

	t.Run("should match when the item contains the product name", func(t *testing.T) {
		result, tier := catalog.MatchWithTier("HLEB BELI 500G")

		assert.Equal(t, TierSubstring, tier)
		assert.Same(t, bread, result.Product)
	})

	t.Run("should match when the product name contains the item", func(t *testing.T) {
		result, tier := catalog.MatchWithTier("mleko")

		assert.Equal(t, TierSubstring, tier)
		assert.Same(t, milk, result.Product)
	})

	t.Run("should match typos fuzzily", func(t *testing.T) {
		result, tier := catalog.MatchWithTier("Mleko 1I")

		assert.Equal(t, TierFuzzy, tier)
		assert.Same(t, milk, result.Product)
	})

	t.Run("should not match unrelated names", func(t *testing.T) {
		result, tier := catalog.MatchWithTier("Deterdzent")

		assert.Equal(t, TierNone, tier)
		assert.False(t, result.Matched())
		assert.Equal(t, int64(0), result.PointsPerUnit)
	})

	t.Run("should never match empty names", func(t *testing.T) {
		for _, name := range []string{"", "   "} {
			result := catalog.Match(name)
			assert.False(t, result.Matched())
		}
	})

	t.Run("should be idempotent", func(t *testing.T) {
		first := catalog.Match("Jogurt 2%")
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, catalog.Match("Jogurt 2%"))
		}
	})
}

func TestCatalogFuzzyThreshold(t *testing.T) {
	// 10 runes with an edit distance of 2 is a similarity of exactly 0.8
	product := activeProduct("p-1", "abcdefghij", 1)
	catalog := NewCatalog([]*entity.Product{product}, DefaultFuzzyThreshold)

	t.Run("should reject a ratio equal to the threshold", func(t *testing.T) {
		assert.InDelta(t, 0.8, Similarity("abcdefghXY", "abcdefghij"), 1e-9)

		result, tier := catalog.MatchWithTier("abcdefghXY")

		assert.Equal(t, TierNone, tier)
		assert.False(t, result.Matched())
	})

	t.Run("should accept a ratio above the threshold", func(t *testing.T) {
		assert.InDelta(t, 0.9, Similarity("abcdefghiX", "abcdefghij"), 1e-9)

		result, tier := catalog.MatchWithTier("abcdefghiX")

		assert.Equal(t, TierFuzzy, tier)
		assert.Same(t, product, result.Product)
	})

	t.Run("should honour a custom threshold", func(t *testing.T) {
		lenient := NewCatalog([]*entity.Product{product}, 0.7)

		assert.True(t, lenient.Match("abcdefghXY").Matched())
	})
}

func TestCatalogOrdering(t *testing.T) {
	t.Run("should pick the first substring match in catalog order", func(t *testing.T) {
		cola := activeProduct("p-cola", "Cola", 2)
		colaZero := activeProduct("p-cola-zero", "Cola Zero", 6)
		catalog := NewCatalog([]*entity.Product{cola, colaZero}, DefaultFuzzyThreshold)

		result := catalog.Match("Coca Cola Zero 0.5L")

		assert.Same(t, cola, result.Product)
	})

	t.Run("should prefer an exact match over an earlier substring match", func(t *testing.T) {
		cola := activeProduct("p-cola", "Cola", 2)
		colaZero := activeProduct("p-cola-zero", "Cola Zero", 6)
		catalog := NewCatalog([]*entity.Product{cola, colaZero}, DefaultFuzzyThreshold)

		result := catalog.Match("cola zero")

		assert.Same(t, colaZero, result.Product)
	})
}

func TestNewCatalog(t *testing.T) {
	inactive := &entity.Product{ID: "p-old", Name: "Mleko", PointsPerUnit: 9, Status: entity.ProductInactive}
	unnamed := activeProduct("p-blank", "  ", 1)
	milk := activeProduct("p-milk", "Mleko", 5)

	catalog := NewCatalog([]*entity.Product{inactive, nil, unnamed, milk}, 0)

	require.Equal(t, 1, catalog.Size())
	assert.Same(t, milk, catalog.Match("Mleko").Product)
	assert.False(t, NewCatalog(nil, DefaultFuzzyThreshold).Match("Mleko").Matched())
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("Hleb", " hleb "))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.75, Similarity("čaša", "časa"), 1e-9)
}
