package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReader reads comma- or semicolon-delimited text.
type CSVReader struct{}

// Format returns the file extension handled.
func (c *CSVReader) Format() string { return "csv" }

// Read parses every record. Field counts may vary between rows.
func (c *CSVReader) Read(name string, r io.ReadSeeker) (*Table, error) {
	delim, err := sniffDelimiter(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}
	return fromRecords(name, records, lines), nil
}

// sniffDelimiter picks ';' when the first line has more semicolons than
// commas, as spreadsheets in comma-decimal locales export them.
func sniffDelimiter(r io.ReadSeeker) (rune, error) {
	buf := make([]byte, 4096)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("reading CSV: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewinding CSV: %w", err)
	}

	commas, semis := 0, 0
	for _, b := range buf[:n] {
		if b == '\n' {
			break
		}
		switch b {
		case ',':
			commas++
		case ';':
			semis++
		}
	}
	if semis > commas {
		return ';', nil
	}
	return ',', nil
}
