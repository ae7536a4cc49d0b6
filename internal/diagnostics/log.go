package diagnostics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Header is the CSV header of the warnings log.
const Header = "timestamp,run_id,kind,table,row,account_code,detail,amount"

const (
	numFields    = 8
	colTimestamp = 0
	colRunID     = 1
	colKind      = 2
	colTable     = 3
	colRow       = 4
	colCode      = 5
	colDetail    = 6
	colAmount    = 7
)

// Entry is one row of the warnings log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Warning   Warning
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colKind] = string(e.Warning.Kind)
	row[colTable] = e.Warning.Table
	if e.Warning.Row > 0 {
		row[colRow] = strconv.Itoa(e.Warning.Row)
	}
	row[colCode] = e.Warning.Code
	row[colDetail] = e.Warning.Detail
	if !e.Warning.Amount.IsZero() {
		row[colAmount] = e.Warning.Amount.String()
	}
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

	var row int
	if record[colRow] != "" {
		row, err = strconv.Atoi(record[colRow])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing row %q: %w", record[colRow], err)
		}
	}

	var amount decimal.Decimal
	if record[colAmount] != "" {
		amount, err = decimal.NewFromString(record[colAmount])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
		}
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Warning: Warning{
			Kind:   Kind(record[colKind]),
			Table:  record[colTable],
			Row:    row,
			Code:   record[colCode],
			Detail: record[colDetail],
			Amount: amount,
		},
	}, nil
}

// Append writes warnings to the CSV log at path, creating the file and
// header if needed.
func Append(path, runID string, at time.Time, warnings []Warning) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log dir: %w", err)
		}
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening warnings log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, w := range warnings {
		if err := cw.Write(MarshalEntry(Entry{Timestamp: at, RunID: runID, Warning: w})); err != nil {
			return fmt.Errorf("writing warning %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries of the log at path. A missing file yields nil.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening warnings log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading warnings log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
