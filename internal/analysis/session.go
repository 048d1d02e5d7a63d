// Package analysis runs the ingestion pipeline for the fiscal years of one
// analysis and keeps their results side by side.
package analysis

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/soldes-dev/soldes/internal/ledger"
	"github.com/soldes-dev/soldes/internal/loader"
	"github.com/soldes-dev/soldes/internal/model"
	"github.com/soldes-dev/soldes/internal/sig"
)

// ErrNoYear is returned when a fiscal year label has not been loaded.
var ErrNoYear = errors.New("fiscal year not loaded")

// Year is the outcome of the pipeline for one fiscal year. When Err is set,
// the fields after the failing stage are empty.
type Year struct {
	Label       string
	Source      string
	Table       *model.RawTable
	Roles       model.ColumnRoles
	Consistency *ledger.Consistency
	Ledger      *model.Ledger
	SIG         *sig.Result
	Err         error
}

// OK reports whether the year went through the whole pipeline.
func (y *Year) OK() bool {
	return y != nil && y.Err == nil
}

// Session holds the fiscal years of one analysis, in load order.
// A Session is not safe for concurrent use.
type Session struct {
	ID string

	loaders *loader.Registry
	logger  *slog.Logger
	labels  []string
	years   map[string]*Year
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used to report per-year outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithLoaders replaces the default loader registry.
func WithLoaders(r *loader.Registry) Option {
	return func(s *Session) { s.loaders = r }
}

// NewSession creates an empty session with a fresh ID.
func NewSession(opts ...Option) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		loaders: loader.DefaultRegistry(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		years:   make(map[string]*Year),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.ID)
	return s
}

// LoadYear runs the pipeline on one file and records the outcome under label,
// replacing any year previously loaded with that label. Failures are kept on
// the returned Year and never affect the other years.
func (s *Session) LoadYear(label, name string, r io.Reader) *Year {
	y := &Year{Label: label, Source: name}
	y.Err = s.run(y, r)
	s.put(y)

	log := s.logger.With("year", label, "file", name)
	if y.Err != nil {
		log.Warn("fiscal year not analysed", "error", y.Err)
	} else {
		log.Info("fiscal year analysed",
			"accounts", y.Ledger.Len(),
			"balanced", y.Consistency.Balanced(),
		)
	}
	return y
}

// LoadFile opens path and loads it under label.
func (s *Session) LoadFile(label, path string) *Year {
	f, err := os.Open(path)
	if err != nil {
		y := &Year{Label: label, Source: path, Err: fmt.Errorf("opening %s: %w", path, err)}
		s.put(y)
		s.logger.Warn("fiscal year not analysed", "year", label, "file", path, "error", y.Err)
		return y
	}
	defer f.Close()
	return s.LoadYear(label, path, f)
}

func (s *Session) run(y *Year, r io.Reader) error {
	l := s.loaders.ForFile(y.Source)
	t, err := l.Load(r)
	if err != nil {
		return fmt.Errorf("loading %s as %s: %w", y.Source, l.Format(), err)
	}
	y.Table = t
	y.Roles = ledger.ResolveColumns(t)

	c, err := ledger.CheckConsistency(t, y.Roles)
	if err != nil {
		return err
	}
	y.Consistency = &c

	lg, err := ledger.Aggregate(t, y.Roles)
	if err != nil {
		return err
	}
	y.Ledger = lg
	y.SIG = sig.Compute(lg)
	return nil
}

func (s *Session) put(y *Year) {
	if _, ok := s.years[y.Label]; !ok {
		s.labels = append(s.labels, y.Label)
	}
	s.years[y.Label] = y
}

// Year returns the year loaded under label.
func (s *Session) Year(label string) (*Year, bool) {
	y, ok := s.years[label]
	return y, ok
}

// Labels returns the fiscal year labels in load order.
func (s *Session) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Years returns every loaded year in load order, failed ones included.
func (s *Session) Years() []*Year {
	out := make([]*Year, len(s.labels))
	for i, label := range s.labels {
		out[i] = s.years[label]
	}
	return out
}

// Result returns the SIG of a successfully analysed year, or nil.
func (s *Session) Result(label string) *sig.Result {
	if y, ok := s.years[label]; ok && y.OK() {
		return y.SIG
	}
	return nil
}

// Compare builds the comparison table between two fiscal years. A year that
// is missing or failed leaves its column undefined.
func (s *Session) Compare(current, previous string) []sig.ComparisonRow {
	return sig.Compare(s.Result(current), s.Result(previous))
}

// Detail lists the accounts behind a SIG line for one fiscal year.
func (s *Session) Detail(label, line string) ([]model.LedgerAccount, error) {
	y, ok := s.years[label]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoYear, label)
	}
	if y.Err != nil {
		return nil, fmt.Errorf("fiscal year %s: %w", label, y.Err)
	}
	return sig.Detail(y.Ledger, line), nil
}
