package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/soldes-dev/soldes/internal/registry"
)

// FileName is the project configuration file created by "soldes init".
const FileName = "soldes.yaml"

// Config represents the top-level soldes.yaml configuration.
type Config struct {
	Company     CompanyConfig    `yaml:"company"`
	FiscalYears []FiscalYear     `yaml:"fiscal_years" validate:"dive"`
	Comparison  ComparisonConfig `yaml:"comparison"`
	Registry    RegistryConfig   `yaml:"registry"`
}

// CompanyConfig identifies the company being analysed.
type CompanyConfig struct {
	Name  string `yaml:"name" validate:"required"`
	SIREN string `yaml:"siren,omitempty" validate:"omitempty,len=9,numeric"`
}

// FiscalYear binds a label such as "N" to an accounting export. Relative
// paths are resolved against the directory of the configuration file.
type FiscalYear struct {
	Label string `yaml:"label" validate:"required"`
	File  string `yaml:"file" validate:"required"`
}

// ComparisonConfig selects the two fiscal years shown side by side.
type ComparisonConfig struct {
	Current  string `yaml:"current" validate:"required"`
	Previous string `yaml:"previous,omitempty"`
}

// RegistryConfig points at the company register.
type RegistryConfig struct {
	BaseURL string        `yaml:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout"`
}

var validate = validator.New()

// Load reads a soldes.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName string) *Config {
	return &Config{
		Company: CompanyConfig{
			Name: companyName,
		},
		FiscalYears: []FiscalYear{
			{Label: "N", File: filepath.Join("import", "N.csv")},
			{Label: "N-1", File: filepath.Join("import", "N-1.csv")},
		},
		Comparison: ComparisonConfig{
			Current:  "N",
			Previous: "N-1",
		},
		Registry: RegistryConfig{
			BaseURL: registry.DefaultBaseURL,
			Timeout: registry.DefaultTimeout,
		},
	}
}

// Validate checks field constraints and that labels are unique and known to
// the comparison.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %w", errors.Join(msgs...))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	seen := make(map[string]bool, len(c.FiscalYears))
	for _, fy := range c.FiscalYears {
		if seen[fy.Label] {
			return fmt.Errorf("invalid config: duplicate fiscal year %q", fy.Label)
		}
		seen[fy.Label] = true
	}
	for _, label := range []string{c.Comparison.Current, c.Comparison.Previous} {
		if label != "" && !seen[label] {
			return fmt.Errorf("invalid config: comparison refers to unknown fiscal year %q", label)
		}
	}
	return nil
}

// Year returns the fiscal year with the given label.
func (c *Config) Year(label string) (FiscalYear, bool) {
	for _, fy := range c.FiscalYears {
		if fy.Label == label {
			return fy, true
		}
	}
	return FiscalYear{}, false
}

// SetYear adds a fiscal year or replaces the file of an existing label.
func (c *Config) SetYear(label, file string) {
	for i := range c.FiscalYears {
		if c.FiscalYears[i].Label == label {
			c.FiscalYears[i].File = file
			return
		}
	}
	c.FiscalYears = append(c.FiscalYears, FiscalYear{Label: label, File: file})
}

// Path resolves the file of fy against dir unless it is absolute.
func (fy FiscalYear) Path(dir string) string {
	if filepath.IsAbs(fy.File) {
		return fy.File
	}
	return filepath.Join(dir, fy.File)
}
