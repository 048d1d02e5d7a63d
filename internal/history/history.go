// Package history keeps a CSV log of the analyses run on a project, one row
// per fiscal year analysed.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soldes-dev/soldes/internal/analysis"
	"github.com/soldes-dev/soldes/internal/sig"
)

// Entry is one row in the history log.
type Entry struct {
	Timestamp time.Time
	Session   string
	Year      string
	Source    string
	Status    string // StatusOK or StatusError
	Turnover  decimal.Decimal
	NetIncome decimal.Decimal
	Details   string
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Header is the CSV header for history.csv.
const Header = "timestamp,session,year,source,status,turnover,net_income,details"

const (
	numFields    = 8
	logDir       = "logs"
	logFile      = "logs/history.csv"
	colTimestamp = 0
	colSession   = 1
	colYear      = 2
	colSource    = 3
	colStatus    = 4
	colTurnover  = 5
	colNetIncome = 6
	colDetails   = 7
)

// FromSession returns one entry per fiscal year of s, stamped with now.
func FromSession(s *analysis.Session, now time.Time) []Entry {
	var entries []Entry
	for _, y := range s.Years() {
		e := Entry{
			Timestamp: now,
			Session:   s.ID,
			Year:      y.Label,
			Source:    filepath.Base(y.Source),
			Status:    StatusOK,
		}
		if y.OK() {
			e.Turnover = y.SIG.Get(sig.ChiffreAffaires)
			e.NetIncome = y.SIG.Get(sig.ResultatExercice)
			if !y.Consistency.Balanced() {
				e.Details = "unbalanced: gap " + y.Consistency.Gap().StringFixed(2)
			}
		} else {
			e.Status = StatusError
			e.Details = y.Err.Error()
		}
		entries = append(entries, e)
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSession] = e.Session
	row[colYear] = e.Year
	row[colSource] = e.Source
	row[colStatus] = e.Status
	row[colTurnover] = e.Turnover.StringFixed(2)
	row[colNetIncome] = e.NetIncome.StringFixed(2)
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	turnover, err := decimal.NewFromString(record[colTurnover])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing turnover %q: %w", record[colTurnover], err)
	}
	netIncome, err := decimal.NewFromString(record[colNetIncome])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing net income %q: %w", record[colNetIncome], err)
	}

	return Entry{
		Timestamp: ts,
		Session:   record[colSession],
		Year:      record[colYear],
		Source:    record[colSource],
		Status:    record[colStatus],
		Turnover:  turnover,
		NetIncome: netIncome,
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <projectDir>/logs/history.csv, creating the file
// and header if needed.
func Append(projectDir string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Join(projectDir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(projectDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <projectDir>/logs/history.csv.
// Returns an empty slice if the file does not exist.
func Read(projectDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(projectDir, logFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
