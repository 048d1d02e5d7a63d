package ledger

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/soldes-dev/soldes/internal/model"
	"github.com/soldes-dev/soldes/internal/pcg"
)

// ErrUnrecognizedFormat is returned when no account number column exists.
var ErrUnrecognizedFormat = errors.New("format not recognized: no account number column")

// Prepare resolves the columns of t and aggregates it into a canonical ledger.
func Prepare(t *model.RawTable) (*model.Ledger, error) {
	return Aggregate(t, ResolveColumns(t))
}

// Aggregate groups the rows of t by (account number, label) and computes the
// signed amount of each account. Rows outside PCG classes 1-7 are dropped.
func Aggregate(t *model.RawTable, roles model.ColumnRoles) (*model.Ledger, error) {
	if t == nil || !roles.HasAccountNumber() {
		return nil, ErrUnrecognizedFormat
	}

	type key struct{ number, label string }
	byKey := make(map[key]*model.LedgerAccount)
	for i := range t.Rows {
		number := strings.TrimSpace(t.Cell(i, roles.AccountNumber))
		if !pcg.IsValid(number) {
			continue
		}
		k := key{number: number, label: t.Cell(i, roles.AccountLabel)}
		acct, ok := byKey[k]
		if !ok {
			acct = &model.LedgerAccount{Number: k.number, Label: k.label}
			byKey[k] = acct
		}
		acct.Debit = acct.Debit.Add(ParseAmount(t.Cell(i, roles.Debit)))
		acct.Credit = acct.Credit.Add(ParseAmount(t.Cell(i, roles.Credit)))
	}

	accounts := make([]model.LedgerAccount, 0, len(byKey))
	for _, acct := range byKey {
		acct.Amount = signedAmount(acct.Number, acct.Debit, acct.Credit)
		accounts = append(accounts, *acct)
	}
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Number != accounts[j].Number {
			return accounts[i].Number < accounts[j].Number
		}
		return accounts[i].Label < accounts[j].Label
	})
	return &model.Ledger{Accounts: accounts}, nil
}

// signedAmount makes revenue and expense balances both positive.
func signedAmount(number string, debit, credit decimal.Decimal) decimal.Decimal {
	if pcg.IsRevenue(number) {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}
