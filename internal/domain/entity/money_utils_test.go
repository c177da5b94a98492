package entity

import (
	"math"
	"testing"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"150.00", 15000},
			{"0.01", 1},
			{"0.10", 10},
			{"80", 8000},
			{"1.5", 150},
			{"199,99", 19999},
			{"1234567.89", 123456789},
			{"0", 0},
			{" 42.00 ", 4200},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				minor, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, minor)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"-1.00", errs.ErrNegativeAmount, "Negative amount"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"RSD100", errs.ErrInvalidAmount, "Currency prefix"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestAmountFromFloat(t *testing.T) {
	assert.Equal(t, int64(38000), AmountFromFloat(380))
	assert.Equal(t, int64(31667), AmountFromFloat(316.67))
	assert.Equal(t, int64(13), AmountFromFloat(0.125))
	assert.Equal(t, int64(0), AmountFromFloat(-3))
	assert.Equal(t, int64(0), AmountFromFloat(math.NaN()))
	assert.Equal(t, int64(0), AmountFromFloat(math.Inf(1)))
	assert.Equal(t, int64(0), AmountFromFloat(1e300))
}

func TestCheckedArithmetic(t *testing.T) {
	t.Run("should add within range", func(t *testing.T) {
		sum, ok := CheckedAdd(40, 2)

		assert.True(t, ok)
		assert.Equal(t, int64(42), sum)
	})

	t.Run("should detect addition overflow", func(t *testing.T) {
		_, ok := CheckedAdd(math.MaxInt64, 1)
		assert.False(t, ok)

		_, ok = CheckedAdd(math.MinInt64, -1)
		assert.False(t, ok)
	})

	t.Run("should multiply within range", func(t *testing.T) {
		product, ok := CheckedMul(100, MaxLineQuantity)

		assert.True(t, ok)
		assert.Equal(t, int64(10_000_000), product)
	})

	t.Run("should detect multiplication overflow", func(t *testing.T) {
		_, ok := CheckedMul(100, 922337203685477580)
		assert.False(t, ok)

		_, ok = CheckedMul(-1, 2)
		assert.False(t, ok)
	})

	t.Run("should treat zero as safe", func(t *testing.T) {
		product, ok := CheckedMul(0, math.MaxInt64)

		assert.True(t, ok)
		assert.Zero(t, product)
	})
}

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		minor    int64
		expected string
	}{
		{15000, "150.00"},
		{1, "0.01"},
		{10, "0.10"},
		{100, "1.00"},
		{0, "0.00"},
		{-1, "-0.01"},
		{123456789, "1234567.89"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(tc.minor))
		})
	}
}

func TestAmountRoundTrip(t *testing.T) {
	for _, tc := range []string{"0.00", "0.01", "1.00", "10.50", "1234.56"} {
		t.Run(tc, func(t *testing.T) {
			minor, err := ParseAmount(tc)
			assert.NoError(t, err)
			assert.Equal(t, tc, FormatAmount(minor))
		})
	}
}
