package commands_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProject initializes a project and copies fixtures to its import files.
// An empty fixture leaves that fiscal year without a file.
func newProject(t *testing.T, current, previous string) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runSoldes(t, "init", dir, "--name", "Boulangerie Dupont", "--siren", "552100554")
	require.NoError(t, err)

	for name, fixture := range map[string]string{"N.csv": current, "N-1.csv": previous} {
		if fixture == "" {
			continue
		}
		data, err := os.ReadFile(filepath.Join("..", "..", "testdata", fixture))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "import", name), data, 0o644))
	}
	return filepath.Join(dir, "soldes.yaml")
}

func runStdout(t *testing.T, args ...string) string {
	t.Helper()
	out, err := exec.Command(binaryPath, args...).Output()
	require.NoError(t, err)
	return string(out)
}

func TestCheck(t *testing.T) {
	cfg := newProject(t, "balance_sample.csv", "fec_sample.txt")

	out, err := runSoldes(t, "check", "--config", cfg, "--strict")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Exercice N : balance cohérente (écart ≈ 0 €).")
	assert.Contains(t, out, "Exercice N-1 : balance cohérente (écart ≈ 0 €).")
}

func TestCheck_MissingAndUnrecognized(t *testing.T) {
	cfg := newProject(t, "bank_statement.csv", "")

	out, err := runSoldes(t, "check", "--config", cfg)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Exercice N : format non reconnu pour le contrôle.")
	assert.Contains(t, out, "Exercice N-1 : aucun fichier chargé.")

	out, err = runSoldes(t, "check", "--config", cfg, "--strict")
	require.Error(t, err)
	assert.Contains(t, out, "2 fiscal year(s) failed")
}

func TestSIG_Table(t *testing.T) {
	cfg := newProject(t, "balance_sample.csv", "fec_sample.txt")

	out := runStdout(t, "sig", "--config", cfg)
	assert.Contains(t, out, "Boulangerie Dupont (SIREN 552100554)")
	assert.Regexp(t, `Chiffre d'affaires\s+14 000 €\s+1 500 €\s+12 500 €\s+833,3 %`, out)
	assert.Regexp(t, `Résultat de l'exercice\s+1 800 €\s+530 €`, out)
}

func TestSIG_JSON(t *testing.T) {
	cfg := newProject(t, "balance_sample.csv", "fec_sample.txt")

	var doc struct {
		Session    string `json:"session"`
		Years      []json.RawMessage
		Comparison []struct {
			Line    string `json:"line"`
			Current string `json:"current"`
		} `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal([]byte(runStdout(t, "sig", "--config", cfg, "-f", "json")), &doc))
	assert.NotEmpty(t, doc.Session)
	assert.Len(t, doc.Years, 2)
	require.Len(t, doc.Comparison, 22)
	assert.Equal(t, "Capacité d'autofinancement", doc.Comparison[21].Line)
	assert.Equal(t, "2300.5", doc.Comparison[21].Current)
}

func TestSIG_YearFlagsWithoutProject(t *testing.T) {
	dir := t.TempDir()
	out := runStdout(t, "sig",
		"--config", filepath.Join(dir, "soldes.yaml"),
		"--year", "2024=../../testdata/balance_sample.csv",
		"--year", "2023=../../testdata/fec_sample.txt",
		"--format", "csv",
	)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"poste", "2024", "2023", "ecart", "pct"}, records[0])
	assert.Equal(t, []string{"Chiffre d'affaires", "14000.00", "1500.00", "12500.00", "833.33"}, records[1])

	_, err = os.Stat(filepath.Join(dir, "logs"))
	assert.ErrorIs(t, err, os.ErrNotExist, "runs without a project are not recorded")
}

func TestSIG_NothingToAnalyse(t *testing.T) {
	cfg := newProject(t, "bank_statement.csv", "")
	out, err := runSoldes(t, "sig", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, out, "no fiscal year could be analysed")
}

func TestSIG_NoProject(t *testing.T) {
	out, err := runSoldes(t, "sig", "--config", filepath.Join(t.TempDir(), "soldes.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "soldes init")
}

func TestDetail(t *testing.T) {
	cfg := newProject(t, "balance_sample.csv", "fec_sample.txt")

	out := runStdout(t, "detail", "charges de personnel", "--config", cfg, "--year", "N-1")
	assert.Contains(t, out, "Charges de personnel, exercice N-1 (comptes 64)")
	assert.Regexp(t, `641000\s+.*300 €`, out)
	assert.Regexp(t, `Total\s+300 €`, out)
}

func TestDetail_UnknownLine(t *testing.T) {
	cfg := newProject(t, "balance_sample.csv", "fec_sample.txt")

	out, err := runSoldes(t, "detail", "Charges du personel", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, out, `did you mean "Charges de personnel"`)
}

func TestLedger(t *testing.T) {
	cfg := newProject(t, "balance_sample.csv", "fec_sample.txt")
	path := filepath.Join(t.TempDir(), "ledger.csv")

	out, err := runSoldes(t, "ledger", "--config", cfg, "--year", "N-1", "-o", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Wrote 14 accounts")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = ';'
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 15)
	assert.Equal(t, []string{"CompteNum", "CompteLibelle", "Debit", "Credit", "Montant"}, records[0])
	assert.Equal(t, "281800", records[1][0])
}

func TestHistory(t *testing.T) {
	cfg := newProject(t, "balance_sample.csv", "bank_statement.csv")

	out := runStdout(t, "history", "--config", cfg)
	assert.Contains(t, out, "No analyses recorded yet.")

	_, err := runSoldes(t, "sig", "--config", cfg)
	require.NoError(t, err)

	out = runStdout(t, "history", "--config", cfg)
	assert.Regexp(t, `N\s+N\.csv\s+14 000 €\s+1 800 €\s+ok`, out)
	assert.Regexp(t, `N-1\s+N-1\.csv\s+0 €\s+0 €\s+error`, out)
}

func TestSIREN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/552100554") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"unite_legale": {"denomination": "BOULANGERIE DUPONT",
			"periodes_unite_legale": [{"numero_voie": "12", "libelle_voie": "RUE DES LILAS",
			"code_postal": "69003", "libelle_commune": "LYON"}]}}`))
	}))
	defer srv.Close()

	cfg := newProject(t, "", "")
	cmd := exec.Command(binaryPath, "siren", "--config", cfg)
	cmd.Env = append(os.Environ(), "SOLDES_REGISTRY_URL="+srv.URL+"/unites_legales/")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	assert.Contains(t, string(out), "Nom : BOULANGERIE DUPONT")
	assert.Contains(t, string(out), "Dirigeant : Dirigeant non disponible via l'API")
	assert.Contains(t, string(out), "Adresse : 12 RUE DES LILAS")
	assert.Contains(t, string(out), "Ville : 69003 LYON")

	cmd = exec.Command(binaryPath, "siren", "999999999", "--config", cfg)
	cmd.Env = append(os.Environ(), "SOLDES_REGISTRY_URL="+srv.URL+"/unites_legales/")
	out, err = cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "not found")
}
