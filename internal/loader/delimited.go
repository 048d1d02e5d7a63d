package loader

import (
	"bytes"
	"encoding/csv"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/soldes-dev/soldes/internal/model"
)

// sampleSize is how much of a text file is inspected to choose the delimiter.
const sampleSize = 4096

// delimiters are tried in priority order; comma is the fallback.
var delimiters = []rune{';', '|', '\t'}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DelimitedLoader parses .csv and .txt ledger exports. Cells are kept as raw
// text so that amounts are never parsed with the wrong locale here.
type DelimitedLoader struct{}

// Format returns the loader name.
func (p *DelimitedLoader) Format() string { return "delimited" }

// Load reads all of r, decodes it as UTF-8 or, when any byte sequence is not
// valid UTF-8, as Windows-1252, then parses it with the delimiter detected in
// the leading sample.
func (p *DelimitedLoader) Load(r io.Reader) (*model.RawTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, unreadable("reading file: %v", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, unreadable("empty file")
	}

	if !utf8.Valid(data) {
		data, _, err = transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, unreadable("decoding Windows-1252: %v", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = DetectDelimiter(data[:min(len(data), sampleSize)])
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, unreadable("parsing text: %v", err)
	}
	if len(records) == 0 {
		return nil, unreadable("no header row")
	}
	return newTable(records), nil
}

// DetectDelimiter returns the first of ';', '|' and tab found in sample, or
// ',' when none is present.
func DetectDelimiter(sample []byte) rune {
	for _, d := range delimiters {
		if bytes.ContainsRune(sample, d) {
			return d
		}
	}
	return ','
}
