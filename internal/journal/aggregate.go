package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/laporan/internal/acctcode"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/model"
)

// DateRange is an inclusive range of calendar days. A zero Start or End
// leaves that side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := day(t)
	if !r.Start.IsZero() && d.Before(day(r.Start)) {
		return false
	}
	if !r.End.IsZero() && d.After(day(r.End)) {
		return false
	}
	return true
}

func (r DateRange) String() string {
	f := func(t time.Time) string {
		if t.IsZero() {
			return "…"
		}
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("%s..%s", f(r.Start), f(r.End))
}

// ParseRange reads a pair of CLI date strings. Either may be empty.
func ParseRange(start, end string) (*DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}
	var r DateRange
	if start != "" {
		t, ok := ParseDate(start)
		if !ok {
			return nil, fmt.Errorf("parsing start date %q", start)
		}
		r.Start = t
	}
	if end != "" {
		t, ok := ParseDate(end)
		if !ok {
			return nil, fmt.Errorf("parsing end date %q", end)
		}
		r.End = t
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return nil, fmt.Errorf("end date %s is before start date %s", r.End.Format("2006-01-02"), r.Start.Format("2006-01-02"))
	}
	return &r, nil
}

// Aggregate sums debit and credit per account code as normalized by codes.
// A cell listing several codes credits each of them with the full line
// amounts.
// With a non-nil rng, undated lines are dropped with an undated_line
// warning and lines outside the range are ignored.
func Aggregate(lines []model.JournalLine, rng *DateRange, codes acctcode.Codec, warn *diagnostics.Collector) map[string]model.Movement {
	movements := make(map[string]model.Movement)
	for _, line := range lines {
		if rng != nil {
			if !line.HasDate {
				warn.Addf(diagnostics.KindUndatedLine, "journal", line.Row, codes.Normalize(line.AccountCode),
					"posting date missing or unreadable; line excluded from %s", rng)
				continue
			}
			if !rng.Contains(line.Date) {
				continue
			}
		}
		for _, code := range codes.Split(line.AccountCode) {
			movements[code] = movements[code].Add(line.Debit, line.Credit)
		}
	}
	return movements
}

// Totals returns the summed debits and credits across movements.
func Totals(movements map[string]model.Movement) (debit, credit decimal.Decimal) {
	for _, m := range movements {
		debit = debit.Add(m.Debit)
		credit = credit.Add(m.Credit)
	}
	return debit, credit
}
