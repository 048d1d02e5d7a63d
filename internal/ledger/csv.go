package ledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/soldes-dev/soldes/internal/model"
)

// Header is the header of an exported canonical ledger. It resolves back to
// the same column roles when the export is loaded again.
var Header = []string{"CompteNum", "CompteLibelle", "Debit", "Credit", "Montant"}

const (
	numFields = 5
	colNumber = 0
	colLabel  = 1
	colDebit  = 2
	colCredit = 3
	colAmount = 4
)

// WriteLedger writes a canonical ledger as semicolon-separated text.
func WriteLedger(w io.Writer, accounts []model.LedgerAccount) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts a LedgerAccount to a CSV row.
func MarshalAccount(acct model.LedgerAccount) []string {
	row := make([]string, numFields)
	row[colNumber] = acct.Number
	row[colLabel] = acct.Label
	row[colDebit] = acct.Debit.StringFixed(2)
	row[colCredit] = acct.Credit.StringFixed(2)
	row[colAmount] = acct.Amount.StringFixed(2)
	return row
}
