package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Boulangerie Dupont")
	cfg.Company.SIREN = "552100554"
	cfg.SetYear("N-2", "/data/2022.xlsx")

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Company, got.Company)
	assert.Equal(t, cfg.FiscalYears, got.FiscalYears)
	assert.Equal(t, cfg.Comparison, got.Comparison)
	assert.Equal(t, cfg.Registry.BaseURL, got.Registry.BaseURL)
	assert.Equal(t, 10*time.Second, got.Registry.Timeout)
	require.NoError(t, got.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company")

	assert.Equal(t, "My Company", cfg.Company.Name)
	assert.Empty(t, cfg.Company.SIREN)
	require.Len(t, cfg.FiscalYears, 2)
	assert.Equal(t, "N", cfg.FiscalYears[0].Label)
	assert.Equal(t, filepath.Join("import", "N-1.csv"), cfg.FiscalYears[1].File)
	assert.Equal(t, "N", cfg.Comparison.Current)
	assert.Equal(t, "N-1", cfg.Comparison.Previous)
	assert.Equal(t, "https://entreprise.data.gouv.fr/api/sirene/v3/unites_legales/", cfg.Registry.BaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "label: N-1")
	assert.Contains(t, contents, "current: N")
	assert.Contains(t, contents, "timeout: 10s")
	assert.NotContains(t, contents, "siren:")
}

func TestLoad_DurationAndOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	yml := `company:
  name: ACME
fiscal_years:
  - label: "2024"
    file: fec2024.txt
  - label: "2023"
    file: balance2023.xlsx
comparison:
  current: "2024"
  previous: "2023"
registry:
  timeout: 2s
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "2024", cfg.FiscalYears[0].Label)
	assert.Equal(t, 2*time.Second, cfg.Registry.Timeout)

	fy, ok := cfg.Year("2023")
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/srv", "balance2023.xlsx"), fy.Path("/srv"))
	assert.Equal(t, "/abs/x.csv", FiscalYear{File: "/abs/x.csv"}.Path("/srv"))

	_, ok = cfg.Year("2022")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing name", func(c *Config) { c.Company.Name = "" }, "Company.Name"},
		{"bad siren", func(c *Config) { c.Company.SIREN = "12345" }, "Company.SIREN"},
		{"year without file", func(c *Config) { c.FiscalYears[0].File = "" }, "FiscalYears[0].File"},
		{"no current year", func(c *Config) { c.Comparison.Current = "" }, "Comparison.Current"},
		{"bad url", func(c *Config) { c.Registry.BaseURL = "not a url" }, "Registry.BaseURL"},
		{"duplicate label", func(c *Config) { c.FiscalYears[1].Label = "N" }, `duplicate fiscal year "N"`},
		{"unknown comparison", func(c *Config) { c.Comparison.Previous = "N-2" }, `unknown fiscal year "N-2"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("ACME")
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSetYear(t *testing.T) {
	cfg := Default("ACME")
	cfg.SetYear("N", "fec.txt")
	cfg.SetYear("N-2", "old.csv")

	require.Len(t, cfg.FiscalYears, 3)
	assert.Equal(t, "fec.txt", cfg.FiscalYears[0].File)
	assert.Equal(t, FiscalYear{Label: "N-2", File: "old.csv"}, cfg.FiscalYears[2])
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SOLDES_LOG_FORMAT", "json")
	t.Setenv("SOLDES_REGISTRY_URL", "http://localhost:9999/sirene/")
	t.Setenv("SOLDES_REGISTRY_TIMEOUT", "3s")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "json", env.LogFormat)
	assert.Equal(t, ":8080", env.HTTPAddr)
	assert.Equal(t, int64(32), env.MaxUploadMB)
	assert.Equal(t, 60, env.RateLimit)

	cfg := Default("ACME")
	env.Apply(cfg)
	assert.Equal(t, "http://localhost:9999/sirene/", cfg.Registry.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Registry.Timeout)
}

func TestLoadEnv_Invalid(t *testing.T) {
	t.Setenv("SOLDES_REGISTRY_TIMEOUT", "soon")
	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestEnvApply_KeepsFileValues(t *testing.T) {
	cfg := Default("ACME")
	cfg.Registry.BaseURL = "http://file/"
	(&Env{}).Apply(cfg)
	assert.Equal(t, "http://file/", cfg.Registry.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Registry.Timeout)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&Env{LogFormat: "json", LogLevel: "warn"}, &buf).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&Env{LogFormat: "json", LogLevel: "info"}, &buf).Info("analysed", "year", "N")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "analysed", rec["msg"])
	assert.Equal(t, "N", rec["year"])

	buf.Reset()
	NewLogger(nil, &buf).Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
