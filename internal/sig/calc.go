package sig

import (
	"github.com/shopspring/decimal"

	"github.com/soldes-dev/soldes/internal/model"
)

// LineValue is one line of a SIG result.
type LineValue struct {
	Line   string          `json:"line"`
	Amount decimal.Decimal `json:"amount"`
}

// Result holds the amount of every SIG line for one fiscal year. Cost lines
// are stored negated so that the waterfall reads top to bottom as a sum.
type Result struct {
	amounts []decimal.Decimal
}

func newResult() *Result {
	r := &Result{amounts: make([]decimal.Decimal, len(Lines))}
	for i := range r.amounts {
		r.amounts[i] = decimal.Zero
	}
	return r
}

// Get returns the amount of a line, zero for names outside the vocabulary.
func (r *Result) Get(line string) decimal.Decimal {
	i, ok := lineIndex[line]
	if r == nil || !ok {
		return decimal.Zero
	}
	return r.amounts[i]
}

// Lines returns every line with its amount, in waterfall order.
func (r *Result) Lines() []LineValue {
	out := make([]LineValue, len(Lines))
	for i, name := range Lines {
		out[i] = LineValue{Line: name, Amount: r.Get(name)}
	}
	return out
}

func (r *Result) set(line string, v decimal.Decimal) {
	r.amounts[lineIndex[line]] = v
}

// Compute derives the SIG waterfall from a canonical ledger. An empty or nil
// ledger yields every line at zero.
func Compute(l *model.Ledger) *Result {
	var s [numPostes]decimal.Decimal
	for p, rule := range postes {
		s[p] = l.Sum(rule.Match)
	}

	productionExercice := s[productionVendue].Add(s[productionStockee]).Add(s[productionImmobilisee])
	chiffreAffaires := s[ventesMarchandises].Add(productionExercice)

	achatsConsommes := s[coutMarchandises].Add(s[achatsMatieres]).Add(s[chargesExternes])
	margeGlobale := chiffreAffaires.Sub(achatsConsommes)

	chargesFonctionnement := s[achatsMatieres].Add(s[chargesExternes])
	valeurAjoutee := margeGlobale.Sub(chargesFonctionnement)

	ebe := valeurAjoutee.
		Add(s[subventions]).
		Sub(s[impotsTaxes]).
		Sub(s[chargesPersonnel])

	resultatExploitation := ebe.
		Add(s[transfertsCharges]).
		Add(s[reprisesProvisions]).
		Add(s[autresProduits]).
		Sub(s[dotationsAmortissements]).
		Sub(s[dotationsProvisions]).
		Sub(s[autresCharges])

	resultatFinancier := s[produitsFinanciers].Sub(s[chargesFinancieres])
	resultatCourant := resultatExploitation.Add(resultatFinancier)
	resultatExceptionnel := s[produitsExceptionnels].Sub(s[chargesExceptionnelles])
	resultatExercice := resultatCourant.Add(resultatExceptionnel)

	caf := resultatExercice.
		Add(s[dotationsAmortissements]).
		Add(s[dotationsProvisions]).
		Sub(s[reprisesProvisions])

	r := newResult()
	r.set(ChiffreAffaires, chiffreAffaires)
	r.set(VentesProduction, chiffreAffaires)
	r.set(AchatsConsommes, achatsConsommes.Neg())
	r.set(MargeGlobale, margeGlobale)
	r.set(ChargesFonctionnement, chargesFonctionnement.Neg())
	r.set(ValeurAjoutee, valeurAjoutee)
	r.set(SubventionExploitation, s[subventions])
	r.set(ImpotsTaxes, s[impotsTaxes].Neg())
	r.set(ChargesPersonnel, s[chargesPersonnel].Neg())
	r.set(ExcedentBrutExploitation, ebe)
	r.set(TransfertCharges, s[transfertsCharges])
	r.set(ReprisesProvisions, s[reprisesProvisions])
	r.set(AutresProduitsExploitation, s[autresProduits])
	r.set(DotationsAmortissements, s[dotationsAmortissements].Neg())
	r.set(DotationsProvisions, s[dotationsProvisions].Neg())
	r.set(AutresChargesExploitation, s[autresCharges].Neg())
	r.set(ResultatExploitation, resultatExploitation)
	r.set(ResultatFinancier, resultatFinancier)
	r.set(ResultatCourant, resultatCourant)
	r.set(ResultatExceptionnel, resultatExceptionnel)
	r.set(ResultatExercice, resultatExercice)
	r.set(CapaciteAutofinancement, caf)
	return r
}
