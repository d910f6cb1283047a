package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const CurrencySymbol = "₹"

// Money is an amount in paise. The shop trades in a single currency.
type Money int64

func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

// CheckedTimes is Times for non-negative m and qty, reporting false when the
// product does not fit in Money.
func (m Money) CheckedTimes(qty int) (Money, bool) {
	if m < 0 || qty < 0 {
		return 0, false
	}
	if m != 0 && int64(qty) > math.MaxInt64/int64(m) {
		return 0, false
	}
	return m * Money(qty), true
}

// String formats the amount with Indian digit grouping, e.g. ₹1,23,456.50.
// Paise are omitted when zero.
func (m Money) String() string {
	d := decimal.New(int64(m), -2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole := d.Truncate(0)
	frac := d.Sub(whole)

	out := sign + CurrencySymbol + groupIndian(whole.String())
	if !frac.IsZero() {
		out += strings.TrimPrefix(frac.StringFixed(2), "0")
	}
	return out
}

// groupIndian inserts separators after the last three digits and then
// every two digits.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}

	return strings.Join(append(parts, tail), ",")
}
