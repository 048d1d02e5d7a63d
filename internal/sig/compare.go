package sig

import "github.com/shopspring/decimal"

// minPrevious is the smallest prior-year magnitude a percentage is computed
// against.
var minPrevious = decimal.New(1, -6)

var hundred = decimal.NewFromInt(100)

// ComparisonRow compares one line across two fiscal years. Nil fields are
// undefined: a missing year, or a percentage against a zero prior year.
type ComparisonRow struct {
	Line     string           `json:"line"`
	Current  *decimal.Decimal `json:"current"`
	Previous *decimal.Decimal `json:"previous"`
	Variance *decimal.Decimal `json:"variance"`
	Percent  *decimal.Decimal `json:"percent"`
}

// Compare builds the year-over-year table. Either result may be nil.
func Compare(current, previous *Result) []ComparisonRow {
	rows := make([]ComparisonRow, len(Lines))
	for i, line := range Lines {
		row := ComparisonRow{Line: line}
		if current != nil {
			v := current.Get(line)
			row.Current = &v
		}
		if previous != nil {
			v := previous.Get(line)
			row.Previous = &v
		}
		if row.Current != nil && row.Previous != nil {
			variance := row.Current.Sub(*row.Previous)
			row.Variance = &variance
			row.Percent = Percent(variance, *row.Previous)
		}
		rows[i] = row
	}
	return rows
}

// Percent returns variance as a percentage of previous, rounded to two
// decimals, or nil when previous is too close to zero.
func Percent(variance, previous decimal.Decimal) *decimal.Decimal {
	if previous.Abs().LessThan(minPrevious) {
		return nil
	}
	p := variance.Mul(hundred).Div(previous).Round(2)
	return &p
}
