package report

import (
	"github.com/shopspring/decimal"

	"github.com/soldes-dev/soldes/internal/analysis"
	"github.com/soldes-dev/soldes/internal/sig"
)

// YearSummary is the outcome of one fiscal year as exposed to API clients.
type YearSummary struct {
	Label    string           `json:"label"`
	Source   string           `json:"source"`
	Rows     int              `json:"rows"`
	Accounts int              `json:"accounts"`
	Balanced *bool            `json:"balanced,omitempty"`
	Gap      *decimal.Decimal `json:"gap,omitempty"`
	Message  string           `json:"message"`
	Error    string           `json:"error,omitempty"`
	Lines    []sig.LineValue  `json:"sig,omitempty"`
}

// Analysis is the document returned for a whole session.
type Analysis struct {
	Session    string              `json:"session"`
	Current    string              `json:"current"`
	Previous   string              `json:"previous"`
	Years      []YearSummary       `json:"years"`
	Comparison []sig.ComparisonRow `json:"comparison"`
}

// Summarize describes one loaded year.
func Summarize(y *analysis.Year) YearSummary {
	s := YearSummary{
		Label:    y.Label,
		Source:   y.Source,
		Rows:     y.Table.Len(),
		Accounts: y.Ledger.Len(),
		Message:  ConsistencyMessage(y.Label, y),
	}
	if y.Err != nil {
		s.Error = y.Err.Error()
		return s
	}
	balanced := y.Consistency.Balanced()
	gap := y.Consistency.Gap()
	s.Balanced = &balanced
	s.Gap = &gap
	s.Lines = y.SIG.Lines()
	return s
}

// NewAnalysis builds the document for a session compared on two labels.
func NewAnalysis(s *analysis.Session, current, previous string) *Analysis {
	a := &Analysis{
		Session:    s.ID,
		Current:    current,
		Previous:   previous,
		Years:      []YearSummary{},
		Comparison: s.Compare(current, previous),
	}
	for _, y := range s.Years() {
		a.Years = append(a.Years, Summarize(y))
	}
	return a
}
