package tabular

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is wrapped by every MissingColumnError.
var ErrMissingColumn = errors.New("missing column")

// Table is a sheet of string cells with a header row already split off.
type Table struct {
	Name    string // source label used in errors, e.g. "coa.xlsx"
	Headers []string
	Rows    [][]string
	Lines   []int // 1-based source row of each entry in Rows
}

// RowNumber returns the source row of Rows[i] as the user sees it in the
// spreadsheet. Tables built without line numbers count from a header on
// row 1.
func (t *Table) RowNumber(i int) int {
	if i >= 0 && i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

// Field is a canonical column and the header spellings accepted for it.
type Field struct {
	Name     string
	Synonyms []string
	Required bool
}

// Columns maps canonical field names to column indexes. Absent optional
// fields map to -1.
type Columns map[string]int

// Cell returns the trimmed value of field in row, or "" when the field is
// absent or the row is short.
func (c Columns) Cell(row []string, field string) string {
	i, ok := c[field]
	if !ok || i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// MissingColumnError reports a required field that no header matched.
type MissingColumnError struct {
	Table   string
	Field   string
	Present []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: required column %q not found (columns present: %s)",
		e.Table, e.Field, strings.Join(e.Present, ", "))
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// NormalizeHeader folds a header cell to its comparison form:
// lower case, trimmed, with runs of spaces, dashes and dots collapsed to "_".
// "Kode Akun" -> "kode_akun", " Posisi-Normal Akun " -> "posisi_normal_akun"
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	var b strings.Builder
	sep := false
	for _, r := range h {
		switch r {
		case ' ', '-', '.', '_', '\t', '\u00a0':
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// Resolve locates each field's column. The first header matching any
// synonym wins; a field's own name is always accepted.
func Resolve(t *Table, fields []Field) (Columns, error) {
	index := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		n := NormalizeHeader(h)
		if _, dup := index[n]; !dup {
			index[n] = i
		}
	}

	cols := make(Columns, len(fields))
	for _, f := range fields {
		cols[f.Name] = -1
		candidates := append([]string{f.Name}, f.Synonyms...)
		for _, c := range candidates {
			if i, ok := index[NormalizeHeader(c)]; ok {
				cols[f.Name] = i
				break
			}
		}
		if cols[f.Name] < 0 && f.Required {
			return nil, &MissingColumnError{Table: t.Name, Field: f.Name, Present: t.Headers}
		}
	}
	return cols, nil
}

// fromRecords splits the first non-blank record off as the header and drops
// blank rows. lines holds the source row of each record; nil means
// records[i] came from row i+1.
func fromRecords(name string, records [][]string, lines []int) *Table {
	t := &Table{Name: name}
	for i, rec := range records {
		if isBlank(rec) {
			continue
		}
		if t.Headers == nil {
			t.Headers = rec
			continue
		}
		line := i + 1
		if i < len(lines) {
			line = lines[i]
		}
		t.Rows = append(t.Rows, rec)
		t.Lines = append(t.Lines, line)
	}
	return t
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
