package number

import (
	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// DivFloor a / b truncated at precision. Div rounds half-up at its own
// division precision, so a plain Div().Truncate() can come out one ulp
// high; QuoRem keeps the quotient exact.
func DivFloor(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, _ := a.QuoRem(b, precision)
	return q
}

// DivCeil a / b rounded up at precision, exact for the same reason
func DivCeil(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, r := a.QuoRem(b, precision)
	if !r.IsZero() {
		q = q.Add(decimal.New(1, -precision))
	}

	return q
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
