package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errs "github.com/amirhossein-jamali/receipt-points/internal/domain/error"
)

// Money amounts are kept in minor units (1/100 of the currency unit) to avoid
// floating point drift when line totals are summed.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string such as "150.00" and returns it in minor units.
// A comma is accepted as the decimal separator since fiscal receipts print amounts that way.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") {
		return 0, errs.ErrNegativeAmount
	}

	if strings.Count(amount, ",") == 1 && !strings.Contains(amount, ".") {
		amount = strings.Replace(amount, ",", ".", 1)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var digits string
	if len(parts) == 1 {
		digits = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			digits = parts[0] + "00"
		case 1:
			digits = parts[0] + parts[1] + "0"
		case 2:
			digits = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q is not a number", errs.ErrInvalidAmount, amount)
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return value, nil
}

// AmountFromFloat converts an upstream decimal value to minor units, rounding half away from zero.
// NaN, infinities, negative values and values beyond int64 minor units become 0.
func AmountFromFloat(value float64) int64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}
	minor := math.Round(value * 100)
	if minor >= math.MaxInt64 {
		return 0
	}
	return int64(minor)
}

// CheckedAdd returns a+b, or false when the sum does not fit in int64
func CheckedAdd(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// CheckedMul returns a*b for non-negative operands, or false when the product does not fit in int64
func CheckedMul(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}

// FormatAmount converts minor units to a decimal string with exactly two places.
// For example 15000 becomes "150.00" and 5 becomes "0.05".
func FormatAmount(minor int64) string {
	isNegative := minor < 0
	if isNegative {
		minor = -minor
	}

	amountStr := strconv.FormatInt(minor, 10)
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	formatted := amountStr[:decimalPos] + "." + amountStr[decimalPos:]

	if isNegative {
		return "-" + formatted
	}
	return formatted
}
