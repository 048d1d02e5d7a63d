package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/soldes-dev/soldes/internal/model"
	"github.com/soldes-dev/soldes/internal/sig"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// WriteTable writes the SIG comparison as an aligned text table whose year
// columns are headed by the current and previous labels.
func WriteTable(w io.Writer, rows []sig.ComparisonRow, current, previous string) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Poste\t%s\t%s\tÉcart\t%%\n", current, previous)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Line,
			MoneyOrBlank(r.Current),
			MoneyOrBlank(r.Previous),
			MoneyOrBlank(r.Variance),
			Percent(r.Percent),
		)
	}
	return tw.Flush()
}

// WriteCSV writes the SIG comparison with unformatted amounts. Undefined
// cells are empty.
func WriteCSV(w io.Writer, rows []sig.ComparisonRow, current, previous string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"poste", current, previous, "ecart", "pct"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		record := []string{r.Line, fixed(r.Current), fixed(r.Previous), fixed(r.Variance), fixed(r.Percent)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDetail writes the accounts behind a SIG line followed by their total.
func WriteDetail(w io.Writer, accounts []model.LedgerAccount) error {
	if len(accounts) == 0 {
		_, err := fmt.Fprintln(w, "Aucun compte pour ce poste.")
		return err
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "Compte\tLibellé\tMontant")
	total := decimal.Zero
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.Number, a.Label, Money(a.Amount))
		total = total.Add(a.Amount)
	}
	fmt.Fprintf(tw, "Total\t\t%s\n", Money(total))
	return tw.Flush()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
