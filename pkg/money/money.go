// Package money converts between display prices ("$198", "89.50") and
// minor-unit cents. Cents are the only representation stored internally;
// display strings exist at the HTTP boundary.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseDisplay parses a display price into cents. A leading currency symbol
// is stripped. Malformed input yields 0 rather than an error, so a bad
// catalog row never breaks a total.
func ParseDisplay(s string) int64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.Mul(hundred).Round(0).IntPart()
}

// Format renders cents as a display price. Whole-dollar amounts drop the
// fraction ("$198"), everything else keeps two places ("$89.50").
func Format(cents int64) string {
	d := decimal.NewFromInt(cents).Div(hundred)
	if cents%100 == 0 {
		return "$" + d.StringFixed(0)
	}
	return "$" + d.StringFixed(2)
}
