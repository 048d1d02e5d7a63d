package sig

import (
	"sort"
	"strings"

	"github.com/soldes-dev/soldes/internal/model"
)

// DetailRule returns the accounts shown when a line is expanded. The second
// result is false when the line has no curated rule and the class 6/7
// fallback applies.
func DetailRule(line string) (Rule, bool) {
	for _, d := range detailRules {
		if d.name == line || d.prefix && strings.HasPrefix(line, d.name) {
			return d.rule, true
		}
	}
	return fallbackDetail, false
}

// Detail lists the ledger accounts behind a line, amounts rounded to cents,
// sorted by account number.
func Detail(l *model.Ledger, line string) []model.LedgerAccount {
	rule, _ := DetailRule(line)
	accounts := l.Filter(rule.Match)
	for i := range accounts {
		accounts[i].Amount = accounts[i].Amount.Round(2)
	}
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Number < accounts[j].Number
	})
	return accounts
}
