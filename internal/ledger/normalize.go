package ledger

import (
	"strings"

	"github.com/soldes-dev/soldes/internal/model"
)

var (
	accountNumberPrefixes = []string{"compte", "comptenum", "numcompte", "comptegeneral"}
	accountLabelKeywords  = []string{"libelle", "libellé", "intitule", "intitulé"}
	debitPrefixes         = []string{"debit", "débit"}
	creditPrefixes        = []string{"credit", "crédit"}
)

// NormalizeHeader lower-cases a column header and removes spaces and the
// ordinal sign, so that "N° Compte" and "ncompte" compare equal.
func NormalizeHeader(h string) string {
	n := strings.ToLower(strings.TrimSpace(h))
	n = strings.ReplaceAll(n, " ", "")
	return strings.ReplaceAll(n, "°", "")
}

// ResolveColumns identifies the account number, label, debit and credit
// columns of t. For each role the first matching header wins; roles with no
// match are model.Unresolved.
func ResolveColumns(t *model.RawTable) model.ColumnRoles {
	roles := model.ColumnRoles{
		AccountNumber: model.Unresolved,
		AccountLabel:  model.Unresolved,
		Debit:         model.Unresolved,
		Credit:        model.Unresolved,
	}
	if t == nil {
		return roles
	}
	for i, h := range t.Headers {
		n := NormalizeHeader(h)
		if roles.AccountNumber == model.Unresolved && hasAnyPrefix(n, accountNumberPrefixes) {
			roles.AccountNumber = i
		}
		if roles.AccountLabel == model.Unresolved && containsAny(n, accountLabelKeywords) {
			roles.AccountLabel = i
		}
		if roles.Debit == model.Unresolved && hasAnyPrefix(n, debitPrefixes) {
			roles.Debit = i
		}
		if roles.Credit == model.Unresolved && hasAnyPrefix(n, creditPrefixes) {
			roles.Credit = i
		}
	}
	return roles
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
