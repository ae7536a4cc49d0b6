package diagnostics

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// Kind classifies a non-fatal problem found during a run.
type Kind string

const (
	KindDataCoercion           Kind = "data_coercion"
	KindUnclassifiedAccount    Kind = "unclassified_account"
	KindReconciliationMismatch Kind = "reconciliation_mismatch"
	KindUnknownNormalSide      Kind = "unknown_normal_side"
	KindUnknownAccount         Kind = "unknown_account"
	KindDuplicateAccount       Kind = "duplicate_account"
	KindDuplicateOpening       Kind = "duplicate_opening"
	KindUndatedLine            Kind = "undated_line"
	KindCodeSeparator          Kind = "code_separator"
)

// Warning is one degraded value. The run still completes.
type Warning struct {
	Kind   Kind
	Table  string // source table, empty for computed checks
	Row    int    // 1-based data row, 0 when not row-specific
	Code   string // account code, when known
	Detail string
	Amount decimal.Decimal // e.g. the reconciliation delta
}

func (w Warning) String() string {
	loc := w.Table
	if w.Row > 0 {
		loc = fmt.Sprintf("%s row %d", w.Table, w.Row)
	}
	if w.Code != "" {
		if loc != "" {
			loc += " "
		}
		loc += "account " + w.Code
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Kind, loc, w.Detail)
}

// Collector accumulates warnings. Safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

// Add records w.
func (c *Collector) Add(w Warning) {
	c.mu.Lock()
	c.warnings = append(c.warnings, w)
	c.mu.Unlock()
}

// Addf records a warning with a formatted detail.
func (c *Collector) Addf(kind Kind, table string, row int, code, format string, args ...any) {
	c.Add(Warning{Kind: kind, Table: table, Row: row, Code: code, Detail: fmt.Sprintf(format, args...)})
}

// Warnings returns a copy of the recorded warnings in insertion order.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Count returns how many warnings of kind were recorded.
func (c *Collector) Count(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the total number of warnings.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// KindCount pairs a kind with its number of warnings.
type KindCount struct {
	Kind  Kind
	Count int
}

// Summary counts warnings per kind, sorted by kind.
func Summary(warnings []Warning) []KindCount {
	counts := make(map[Kind]int)
	for _, w := range warnings {
		counts[w.Kind]++
	}
	out := make([]KindCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, KindCount{Kind: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}
