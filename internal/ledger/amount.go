package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// spaceReplacer removes the characters accounting software uses as
// thousands separators and turns a decimal comma into a dot.
var spaceReplacer = strings.NewReplacer(
	" ", "",
	"\u00a0", "",
	"\u202f", "",
	",", ".",
)

// maxExponent bounds the scale of a parsed amount. Exponent notation beyond
// it would make every later addition rescale to an enormous integer.
const maxExponent = 18

// ParseAmount reads a debit or credit cell. Empty or unparsable cells are
// zero: messy exports must not stop the analysis.
func ParseAmount(s string) decimal.Decimal {
	s = spaceReplacer.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Exponent() > maxExponent || d.Exponent() < -maxExponent {
		return decimal.Zero
	}
	return d
}
