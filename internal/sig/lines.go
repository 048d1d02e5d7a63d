package sig

// SIG line names, as displayed.
const (
	ChiffreAffaires            = "Chiffre d'affaires"
	VentesProduction           = "Ventes + Production réelle"
	AchatsConsommes            = "Achats consommés"
	MargeGlobale               = "Marge globale"
	ChargesFonctionnement      = "Charges de fonctionnement"
	ValeurAjoutee              = "Valeur ajoutée"
	SubventionExploitation     = "Subvention de l'exploitation"
	ImpotsTaxes                = "Impôts et taxes"
	ChargesPersonnel           = "Charges de personnel"
	ExcedentBrutExploitation   = "Excédent brut d'exploitation"
	TransfertCharges           = "Transfert de charges"
	ReprisesProvisions         = "Reprises sur provisions"
	AutresProduitsExploitation = "Autres produits d'exploitation"
	DotationsAmortissements    = "Dotations aux amortissements"
	DotationsProvisions        = "Dotations aux provisions"
	AutresChargesExploitation  = "Autres charges d'exploitation"
	ResultatExploitation       = "Résultat d'exploitation"
	ResultatFinancier          = "Résultat financier"
	ResultatCourant            = "Résultat courant"
	ResultatExceptionnel       = "Résultat exceptionnel"
	ResultatExercice           = "Résultat de l'exercice"
	CapaciteAutofinancement    = "Capacité d'autofinancement"
)

// Lines is the fixed SIG vocabulary in waterfall order.
var Lines = []string{
	ChiffreAffaires,
	VentesProduction,
	AchatsConsommes,
	MargeGlobale,
	ChargesFonctionnement,
	ValeurAjoutee,
	SubventionExploitation,
	ImpotsTaxes,
	ChargesPersonnel,
	ExcedentBrutExploitation,
	TransfertCharges,
	ReprisesProvisions,
	AutresProduitsExploitation,
	DotationsAmortissements,
	DotationsProvisions,
	AutresChargesExploitation,
	ResultatExploitation,
	ResultatFinancier,
	ResultatCourant,
	ResultatExceptionnel,
	ResultatExercice,
	CapaciteAutofinancement,
}

var lineIndex = func() map[string]int {
	m := make(map[string]int, len(Lines))
	for i, l := range Lines {
		m[l] = i
	}
	return m
}()

// IsLine reports whether name belongs to the SIG vocabulary.
func IsLine(name string) bool {
	_, ok := lineIndex[name]
	return ok
}

// poste is a sub-sum of account amounts feeding the waterfall.
type poste int

const (
	ventesMarchandises poste = iota
	productionVendue
	productionStockee
	productionImmobilisee
	coutMarchandises
	achatsMatieres
	chargesExternes
	subventions
	impotsTaxes
	chargesPersonnel
	transfertsCharges
	reprisesProvisions
	autresProduits
	dotationsAmortissements
	dotationsProvisions
	autresCharges
	produitsFinanciers
	chargesFinancieres
	produitsExceptionnels
	chargesExceptionnelles
	numPostes
)

// goodsPurchases are the purchase sub-classes counted as cost of goods sold.
var goodsPurchases = []string{"607", "6037", "6031"}

// postes maps every sub-sum to the accounts it adds up.
var postes = [numPostes]Rule{
	ventesMarchandises:      Prefixes("707"),
	productionVendue:        Prefixes("70").Except("707"),
	productionStockee:       Prefixes("713"),
	productionImmobilisee:   Prefixes("72"),
	coutMarchandises:        Prefixes(goodsPurchases...),
	achatsMatieres:          Prefixes("60").Except(goodsPurchases...),
	chargesExternes:         Prefixes("61", "62"),
	subventions:             Prefixes("74"),
	impotsTaxes:             Prefixes("63"),
	chargesPersonnel:        Prefixes("64"),
	transfertsCharges:       Prefixes("79", "791"),
	reprisesProvisions:      Prefixes("78", "781"),
	autresProduits:          Prefixes("75"),
	dotationsAmortissements: Prefixes("68").Except("681", "686", "687"),
	dotationsProvisions:     Prefixes("681"),
	autresCharges:           Prefixes("65"),
	produitsFinanciers:      Prefixes("76"),
	chargesFinancieres:      Prefixes("66"),
	produitsExceptionnels:   Prefixes("77"),
	chargesExceptionnelles:  Prefixes("67"),
}

// detailRule attaches the accounts shown for a line. With prefix set, the
// rule applies to every line whose name starts with name.
type detailRule struct {
	name   string
	prefix bool
	rule   Rule
}

var (
	turnoverDetail  = Prefixes("70", "71", "72", "75")
	purchasesDetail = Prefixes("60", "61", "62")
	fallbackDetail  = Prefixes("6", "7")
)

// detailRules are tried in order; the first match wins.
var detailRules = []detailRule{
	{name: ChiffreAffaires, rule: turnoverDetail},
	{name: VentesProduction, rule: turnoverDetail},
	{name: AchatsConsommes, rule: purchasesDetail},
	{name: ChargesFonctionnement, rule: purchasesDetail},
	{name: ImpotsTaxes, rule: Prefixes("63")},
	{name: ChargesPersonnel, rule: Prefixes("64")},
	{name: SubventionExploitation, rule: Prefixes("74")},
	{name: "Dotations", prefix: true, rule: Prefixes("68", "681")},
	{name: AutresProduitsExploitation, prefix: true, rule: Prefixes("75", "78")},
	{name: AutresChargesExploitation, prefix: true, rule: Prefixes("65")},
	{name: ResultatFinancier, rule: Prefixes("76", "66")},
	{name: ResultatExceptionnel, rule: Prefixes("77", "67")},
}
