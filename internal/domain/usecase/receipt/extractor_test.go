package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

func TestExtractReceiptURL(t *testing.T) {
	t.Run("should return URL payloads as is", func(t *testing.T) {
		testCases := []string{
			"https://suf.purs.gov.rs/v/?vl=A1B2C3",
			"http://suf.purs.gov.rs/v/?vl=A1B2C3",
			"HTTPS://SUF.PURS.GOV.RS/v/?vl=A1B2C3",
		}

		for _, tc := range testCases {
			url, err := ExtractReceiptURL("  " + tc + "\n")

			require.NoError(t, err)
			assert.Equal(t, tc, url)
		}
	})

	t.Run("should keep inner whitespace of a URL payload", func(t *testing.T) {
		// Arrange
		raw := " https://suf.purs.gov.rs/v/?vl=ABC DEF\t"

		// Act
		url, err := ExtractReceiptURL(raw)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "https://suf.purs.gov.rs/v/?vl=ABC DEF", url)
	})

	t.Run("should find a URL embedded in noise", func(t *testing.T) {
		url, err := ExtractReceiptURL("Fiskalni racun: https://suf.purs.gov.rs/v/?vl=XYZ%3D hvala")

		require.NoError(t, err)
		assert.Equal(t, "https://suf.purs.gov.rs/v/?vl=XYZ%3D", url)
	})

	t.Run("should return the first of several URLs", func(t *testing.T) {
		url, err := ExtractReceiptURL("see http://a.example/1 or https://b.example/2")

		require.NoError(t, err)
		assert.Equal(t, "http://a.example/1", url)
	})

	t.Run("should fail without a URL", func(t *testing.T) {
		testCases := []string{"", "   ", "just some text", "ftp://files.example/receipt", "https://", "TEST:Maxi:Mleko:2:150.00"}

		for _, tc := range testCases {
			url, err := ExtractReceiptURL(tc)

			assert.Empty(t, url)
			assert.ErrorIs(t, err, errs.ErrInvalidQrPayload, tc)
			assert.Equal(t, errs.KindInvalidQrPayload, errs.KindOf(err))
		}
	})
}
