package model

import "github.com/shopspring/decimal"

// LedgerAccount is one row of the canonical per-account ledger.
type LedgerAccount struct {
	Number string
	Label  string
	Debit  decimal.Decimal
	Credit decimal.Decimal
	Amount decimal.Decimal // credit - debit for class 7, debit - credit otherwise
}

// Ledger is the canonical ledger of one fiscal year, sorted by account number
// then label. It is never modified once built.
type Ledger struct {
	Accounts []LedgerAccount
}

// Len returns the number of accounts.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Accounts)
}

// Sum returns the total amount of the accounts matching keep.
func (l *Ledger) Sum(keep func(number string) bool) decimal.Decimal {
	total := decimal.Zero
	if l == nil {
		return total
	}
	for _, a := range l.Accounts {
		if keep(a.Number) {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// Filter returns the accounts matching keep, in ledger order.
func (l *Ledger) Filter(keep func(number string) bool) []LedgerAccount {
	if l == nil {
		return nil
	}
	var out []LedgerAccount
	for _, a := range l.Accounts {
		if keep(a.Number) {
			out = append(out, a)
		}
	}
	return out
}
