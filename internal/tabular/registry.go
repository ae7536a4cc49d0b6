package tabular

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions with no reader.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Reader converts a spreadsheet into a Table.
type Reader interface {
	Read(name string, r io.ReadSeeker) (*Table, error)
	Format() string
}

// Registry holds readers keyed by file extension.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate table format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format, or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.ToLower(strings.TrimPrefix(format, "."))]
}

// Supports reports whether path has a registered extension.
func (r *Registry) Supports(path string) bool {
	return r.Get(filepath.Ext(path)) != nil
}

// DefaultRegistry returns a registry with csv, xlsx and xls readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CSVReader{})
	r.Register(&XLSXReader{})
	r.Register(&XLSReader{})
	return r
}

// ReadFile opens path and reads it with the reader for its extension.
func (r *Registry) ReadFile(path string) (*Table, error) {
	ext := filepath.Ext(path)
	rd := r.Get(ext)
	if rd == nil {
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := rd.Read(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}
