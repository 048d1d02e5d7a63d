// Package report renders analysis results for people: French-formatted text
// tables, CSV exports and JSON documents.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.French)

// French output uses no-break spaces and sometimes a minus sign; terminals
// and CSV consumers get plain ASCII instead.
var plain = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2212", "-")

// Money formats v in whole euros: "1 234 €".
func Money(v decimal.Decimal) string {
	return plain.Replace(printer.Sprintf("%d", v.RoundBank(0).IntPart())) + " €"
}

// MoneyOrBlank formats v, or returns "" for an undefined value.
func MoneyOrBlank(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return Money(*v)
}

// Percent formats v with one decimal: "12,3 %". Undefined values are blank.
func Percent(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return plain.Replace(printer.Sprintf("%.1f", v.Round(1).InexactFloat64())) + " %"
}

func fixed(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}
