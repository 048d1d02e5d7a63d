package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/soldes-dev/soldes/internal/model"
	"github.com/soldes-dev/soldes/internal/pcg"
)

// Tolerance is the largest gap, in currency units, still reported as balanced.
var Tolerance = decimal.New(1, -2)

// Consistency holds the debit-minus-credit totals of a raw ledger file.
type Consistency struct {
	BalanceSheet    decimal.Decimal // classes 1-5
	IncomeStatement decimal.Decimal // classes 6-7
}

// Gap returns the sum of both totals; zero for a balanced ledger.
func (c Consistency) Gap() decimal.Decimal {
	return c.IncomeStatement.Add(c.BalanceSheet)
}

// Balanced reports whether the gap is below Tolerance.
func (c Consistency) Balanced() bool {
	return c.Gap().Abs().LessThan(Tolerance)
}

// Check resolves the columns of t and checks its consistency.
func Check(t *model.RawTable) (Consistency, error) {
	return CheckConsistency(t, ResolveColumns(t))
}

// CheckConsistency sums debit minus credit over the raw rows of t, split
// between balance-sheet and income-statement classes. Unlike Aggregate it
// works on every raw row; rows with a blank account number are skipped.
func CheckConsistency(t *model.RawTable, roles model.ColumnRoles) (Consistency, error) {
	var c Consistency
	if t == nil || !roles.HasAccountNumber() {
		return c, ErrUnrecognizedFormat
	}
	for i := range t.Rows {
		number := strings.TrimSpace(t.Cell(i, roles.AccountNumber))
		if number == "" {
			continue
		}
		m := ParseAmount(t.Cell(i, roles.Debit)).Sub(ParseAmount(t.Cell(i, roles.Credit)))
		switch {
		case pcg.IsBalanceSheet(number):
			c.BalanceSheet = c.BalanceSheet.Add(m)
		case pcg.IsIncomeStatement(number):
			c.IncomeStatement = c.IncomeStatement.Add(m)
		}
	}
	return c, nil
}
