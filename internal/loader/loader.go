package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soldes-dev/soldes/internal/model"
)

// ErrUnreadable is returned when an input file cannot be decoded or parsed.
var ErrUnreadable = errors.New("unreadable file")

// Loader turns one uploaded file into a RawTable.
type Loader interface {
	Load(r io.Reader) (*model.RawTable, error)
	Format() string
}

// Registry maps file extensions to loaders. Extensions without a loader fall
// back to delimited text.
type Registry struct {
	byExt    map[string]Loader
	fallback Loader
}

// NewRegistry creates a registry whose fallback is the delimited text loader.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]Loader), fallback: &DelimitedLoader{}}
}

// Register binds a loader to extensions such as ".xlsx". Panics on duplicates.
func (r *Registry) Register(l Loader, exts ...string) {
	for _, ext := range exts {
		key := strings.ToLower(ext)
		if _, ok := r.byExt[key]; ok {
			panic("duplicate loader extension: " + key)
		}
		r.byExt[key] = l
	}
}

// ForFile returns the loader used for a file name.
func (r *Registry) ForFile(name string) Loader {
	if l, ok := r.byExt[strings.ToLower(filepath.Ext(name))]; ok {
		return l
	}
	return r.fallback
}

// DefaultRegistry returns a registry with all built-in loaders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&DelimitedLoader{}, ".csv", ".txt")
	r.Register(&XLSXLoader{}, ".xlsx")
	r.Register(&XLSLoader{}, ".xls")
	return r
}

var defaultRegistry = DefaultRegistry()

// Load parses r with the loader matching name's extension.
func Load(name string, r io.Reader) (*model.RawTable, error) {
	l := defaultRegistry.ForFile(name)
	t, err := l.Load(r)
	if err != nil {
		return nil, fmt.Errorf("loading %s as %s: %w", filepath.Base(name), l.Format(), err)
	}
	return t, nil
}

// LoadFile opens and parses the file at path.
func LoadFile(path string) (*model.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(path, f)
}

// IsSupported reports whether name has one of the registered extensions.
func IsSupported(name string) bool {
	_, ok := defaultRegistry.byExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

func unreadable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnreadable, fmt.Sprintf(format, args...))
}
