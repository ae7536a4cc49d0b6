package journal

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/model"
	"github.com/cleared-dev/laporan/internal/tabular"
)

// Canonical journal fields.
const (
	FieldCode   = "account_code"
	FieldDebit  = "debit_amount"
	FieldCredit = "credit_amount"
	FieldDate   = "posting_date"
)

// Fields returns the journal columns with the given header synonyms.
// Missing amount columns read as zero; a missing date column leaves every
// line undated.
func Fields(synonyms map[string][]string) []tabular.Field {
	return []tabular.Field{
		{Name: FieldCode, Synonyms: synonyms[FieldCode], Required: true},
		{Name: FieldDebit, Synonyms: synonyms[FieldDebit]},
		{Name: FieldCredit, Synonyms: synonyms[FieldCredit]},
		{Name: FieldDate, Synonyms: synonyms[FieldDate]},
	}
}

// ReadLines converts a journal table. Unparsable amounts become zero and
// are recorded as data_coercion warnings. Rows with no account code are
// skipped.
func ReadLines(t *tabular.Table, synonyms map[string][]string, warn *diagnostics.Collector) ([]model.JournalLine, error) {
	cols, err := tabular.Resolve(t, Fields(synonyms))
	if err != nil {
		return nil, err
	}

	lines := make([]model.JournalLine, 0, len(t.Rows))
	for i, row := range t.Rows {
		code := cols.Cell(row, FieldCode)
		if code == "" {
			continue
		}
		line := model.JournalLine{Row: t.RowNumber(i), AccountCode: code}
		line.Debit = coerce(t.Name, line.Row, code, "debit", cols.Cell(row, FieldDebit), warn)
		line.Credit = coerce(t.Name, line.Row, code, "credit", cols.Cell(row, FieldCredit), warn)
		if raw := cols.Cell(row, FieldDate); raw != "" {
			line.Date, line.HasDate = ParseDate(raw)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func coerce(table string, row int, code, column, raw string, warn *diagnostics.Collector) decimal.Decimal {
	d, ok := ParseAmount(raw)
	if !ok {
		warn.Addf(diagnostics.KindDataCoercion, table, row, code, "%s value %q is not a number; treated as 0", column, raw)
	}
	return d
}

// ParseAmount reads a money cell. Empty cells are zero. Accepted forms
// include "1500000", "1,500,000.50", "Rp 1.500.000", "-250" and "(250)".
// ok is false when a non-empty cell cannot be read; the amount is then zero.
func ParseAmount(raw string) (d decimal.Decimal, ok bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "\u00a0", " "))
	if s == "" || s == "-" {
		return decimal.Zero, true
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = strings.TrimSpace(s[1:])
	}
	if len(s) >= 2 && strings.EqualFold(s[:2], "rp") {
		s = strings.TrimSpace(strings.TrimPrefix(s[2:], "."))
	}
	s = strings.ReplaceAll(s, " ", "")

	s, ok = canonicalNumber(s)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if neg {
		d = d.Neg()
	}
	return d, true
}

var groupedDigits = regexp.MustCompile(`^\d{1,3}([.,]\d{3})+$`)

// canonicalNumber strips grouping separators. When both '.' and ',' appear,
// the last one is the decimal point. A single separator kind repeated in
// groups of three is grouping; otherwise '.' is the decimal point and ','
// is a decimal comma.
func canonicalNumber(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if dot > comma {
			return strings.ReplaceAll(s, ",", ""), true
		}
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1), true
	case groupedDigits.MatchString(s) && (strings.Count(s, ",") > 1 || strings.Count(s, ".") > 1 || comma >= 0):
		return strings.NewReplacer(",", "", ".", "").Replace(s), true
	case comma >= 0:
		return strings.Replace(s, ",", ".", 1), true
	}
	return s, true
}

// maxSerial is 9999-12-31, the last date a spreadsheet can hold.
const maxSerial = 2958465

var dayFirst = regexp.MustCompile(`^\d{1,2}[/.-]\d{1,2}[/.-]\d{4}$`)

// ParseDate reads a posting date. Numbers within the spreadsheet serial
// range are serial dates; d/m/yyyy is read day first; everything else,
// including compact yyyymmdd, goes to dateparse. The result is truncated
// to the calendar day.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial <= maxSerial {
		if serial < 1 {
			return time.Time{}, false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return day(t), true
	}

	if dayFirst.MatchString(s) {
		norm := strings.NewReplacer(".", "/", "-", "/").Replace(s)
		if t, err := time.Parse("2/1/2006", norm); err == nil {
			return day(t), true
		}
	}

	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return day(t), true
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
