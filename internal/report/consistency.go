package report

import (
	"errors"
	"fmt"

	"github.com/soldes-dev/soldes/internal/analysis"
	"github.com/soldes-dev/soldes/internal/ledger"
)

// ConsistencyMessage describes the balance check of one fiscal year. A nil
// year means no file was loaded for label.
func ConsistencyMessage(label string, y *analysis.Year) string {
	prefix := "Exercice " + label + " : "
	switch {
	case y == nil:
		return prefix + "aucun fichier chargé."
	case errors.Is(y.Err, ledger.ErrUnrecognizedFormat):
		return prefix + "format non reconnu pour le contrôle."
	case y.Err != nil:
		return prefix + fmt.Sprintf("fichier illisible (%v).", y.Err)
	case y.Consistency.Balanced():
		return prefix + "balance cohérente (écart ≈ 0 €)."
	default:
		return prefix + "écart 6-7 vs 1-5 = " + Money(y.Consistency.Gap()) + "."
	}
}
