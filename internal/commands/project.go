package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/soldes-dev/soldes/internal/analysis"
	"github.com/soldes-dev/soldes/internal/config"
	"github.com/soldes-dev/soldes/internal/history"
)

// project is the configuration a command runs against: soldes.yaml when
// present, overridden by --year, --current and --previous.
type project struct {
	cfg      *config.Config
	dir      string
	fromFile bool
}

func loadProject(opts *globalOptions) (*project, error) {
	p := &project{dir: "."}

	cfg, err := config.Load(opts.configPath)
	switch {
	case err == nil:
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		p.fromFile = true
		p.dir = filepath.Dir(opts.configPath)
	case errors.Is(err, os.ErrNotExist) && len(opts.years) > 0:
		cfg = &config.Config{}
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("no %s found: run \"soldes init\" or pass --year LABEL=PATH", opts.configPath)
	default:
		return nil, err
	}

	for _, flag := range opts.years {
		label, path, err := parseYearFlag(flag)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		cfg.SetYear(label, abs)
	}

	if opts.current != "" {
		cfg.Comparison.Current = opts.current
	}
	if opts.previous != "" {
		cfg.Comparison.Previous = opts.previous
	}
	if cfg.Comparison.Current == "" && len(cfg.FiscalYears) > 0 {
		cfg.Comparison.Current = cfg.FiscalYears[0].Label
	}
	if cfg.Comparison.Previous == "" {
		for _, fy := range cfg.FiscalYears {
			if fy.Label != cfg.Comparison.Current {
				cfg.Comparison.Previous = fy.Label
				break
			}
		}
	}

	if opts.env != nil {
		opts.env.Apply(cfg)
	}
	p.cfg = cfg
	return p, nil
}

// parseYearFlag splits "LABEL=PATH".
func parseYearFlag(s string) (label, path string, err error) {
	label, path, ok := strings.Cut(s, "=")
	label = strings.TrimSpace(label)
	if !ok || label == "" || path == "" {
		return "", "", fmt.Errorf("invalid --year %q: expected LABEL=PATH", s)
	}
	return label, path, nil
}

// openSession analyses every configured fiscal year whose file exists.
func (p *project) openSession(logger *slog.Logger) *analysis.Session {
	sess := analysis.NewSession(analysis.WithLogger(logger))
	for _, fy := range p.cfg.FiscalYears {
		path := fy.Path(p.dir)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Warn("no file for fiscal year", "year", fy.Label, "file", path)
			continue
		}
		sess.LoadFile(fy.Label, path)
	}
	return sess
}

// record appends the session outcome to the project history. Sessions run
// without a project file are not recorded.
func (p *project) record(sess *analysis.Session, logger *slog.Logger) {
	if !p.fromFile || len(sess.Years()) == 0 {
		return
	}
	if err := history.Append(p.dir, history.FromSession(sess, time.Now().UTC())); err != nil {
		logger.Warn("history not updated", "error", err)
	}
}

// year returns the fiscal year label a command applies to.
func (p *project) year(flag string) string {
	if flag != "" {
		return flag
	}
	return p.cfg.Comparison.Current
}
