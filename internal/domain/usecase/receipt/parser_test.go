package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/receipt-points/internal/domain/entity"
	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

func TestParseReceiptItems(t *testing.T) {
	t.Run("should normalize well formed items", func(t *testing.T) {
		payload := []byte(`{"success":true,"items":[
			{"gtin":"8600043004217","name":"Mleko 1L","quantity":2,"total":300.00,"unitPrice":150.00},
			{"gtin":8600101,"name":" Hleb ","quantity":"1","total":"80,50"}
		]}`)

		items, err := ParseReceiptItems(payload)

		require.NoError(t, err)
		require.Len(t, items, 2)

		unitPrice := int64(15000)
		assert.Equal(t, entity.RawLineItem{
			Name: "Mleko 1L", Quantity: 2, LineTotal: 30000, UnitPrice: &unitPrice, ExternalID: "8600043004217",
		}, items[0])
		assert.Equal(t, entity.RawLineItem{
			Name: "Hleb", Quantity: 1, LineTotal: 8050, ExternalID: "8600101",
		}, items[1])
	})

	t.Run("should apply defaults to sparse items", func(t *testing.T) {
		items, err := ParseReceiptItems([]byte(`{"success":true,"items":[{}]}`))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, entity.DefaultProductName, items[0].Name)
		assert.Equal(t, int64(1), items[0].Quantity)
		assert.Equal(t, int64(0), items[0].LineTotal)
		assert.Nil(t, items[0].UnitPrice)
		assert.Empty(t, items[0].ExternalID)
	})

	t.Run("should coerce odd quantities and totals", func(t *testing.T) {
		testCases := []struct {
			name      string
			item      string
			quantity  int64
			lineTotal int64
		}{
			{"fractional quantity rounds", `{"quantity":2.6,"total":10}`, 3, 1000},
			{"weighed quantity below one", `{"quantity":0.35,"total":"129.99"}`, 1, 12999},
			{"negative quantity", `{"quantity":-4,"total":1}`, 1, 100},
			{"unparseable values", `{"quantity":"many","total":"n/a"}`, 1, 0},
			{"null values", `{"quantity":null,"total":null}`, 1, 0},
			{"negative total", `{"quantity":1,"total":-5}`, 1, 0},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				items, err := ParseReceiptItems([]byte(`{"success":true,"items":[` + tc.item + `]}`))

				require.NoError(t, err)
				assert.Equal(t, tc.quantity, items[0].Quantity)
				assert.Equal(t, tc.lineTotal, items[0].LineTotal)
			})
		}
	})

	t.Run("should report empty receipts", func(t *testing.T) {
		testCases := []string{
			`{"success":false,"items":[{"name":"Mleko"}]}`,
			`{"items":[{"name":"Mleko"}]}`,
			`{"success":true,"items":[]}`,
			`{"success":true}`,
		}

		for _, tc := range testCases {
			items, err := ParseReceiptItems([]byte(tc))

			assert.Nil(t, items)
			assert.ErrorIs(t, err, errs.ErrEmptyReceipt, tc)
		}
	})

	t.Run("should reject implausible quantities", func(t *testing.T) {
		testCases := []string{
			`{"name":"Mleko","quantity":100000.6,"total":1}`,
			`{"name":"Mleko","quantity":1e300,"total":1}`,
			`{"name":"Mleko","quantity":"922337203685477580","total":1}`,
		}

		for _, tc := range testCases {
			// Act
			items, err := ParseReceiptItems([]byte(`{"success":true,"items":[` + tc + `]}`))

			// Assert
			assert.Nil(t, items, tc)
			assert.Equal(t, errs.KindParseFailed, errs.KindOf(err), tc)
			assert.ErrorIs(t, err, errs.ErrInvalidQuantity, tc)
		}
	})

	t.Run("should accept the largest allowed quantity", func(t *testing.T) {
		items, err := ParseReceiptItems([]byte(`{"success":true,"items":[{"quantity":100000,"total":1}]}`))

		require.NoError(t, err)
		assert.Equal(t, entity.MaxLineQuantity, items[0].Quantity)
	})

	t.Run("should report malformed JSON as a parse failure", func(t *testing.T) {
		testCases := []string{
			`<html>maintenance</html>`,
			`{"success":true,"items":`,
			`{"success":true,"items":"none"}`,
			``,
		}

		for _, tc := range testCases {
			items, err := ParseReceiptItems([]byte(tc))

			assert.Nil(t, items)
			assert.ErrorIs(t, err, errs.ErrParseFailed, tc)
		}
	})
}
