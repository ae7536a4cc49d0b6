package balance

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/laporan/internal/acctcode"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/journal"
	"github.com/cleared-dev/laporan/internal/tabular"
)

// Canonical opening-balance fields.
const (
	FieldCode    = "account_code"
	FieldOpening = "opening_balance"
)

// Fields returns the opening-balance columns with the given synonyms.
func Fields(synonyms map[string][]string) []tabular.Field {
	return []tabular.Field{
		{Name: FieldCode, Synonyms: synonyms[FieldCode], Required: true},
		{Name: FieldOpening, Synonyms: synonyms[FieldOpening], Required: true},
	}
}

// ReadOpening returns the opening balance per normalized account code.
// Unparsable amounts are zero with a data_coercion warning. Repeated codes
// are summed and reported as duplicate_opening. A code that still holds a
// list separator is kept whole with a code_separator warning.
func ReadOpening(t *tabular.Table, synonyms map[string][]string, codes acctcode.Codec, warn *diagnostics.Collector) (map[string]decimal.Decimal, error) {
	cols, err := tabular.Resolve(t, Fields(synonyms))
	if err != nil {
		return nil, err
	}

	opening := make(map[string]decimal.Decimal, len(t.Rows))
	for i, row := range t.Rows {
		code := codes.Normalize(cols.Cell(row, FieldCode))
		if code == "" {
			continue
		}
		line := t.RowNumber(i)
		if codes.HasSeparator(code) {
			warn.Addf(diagnostics.KindCodeSeparator, t.Name, line, code,
				"account code contains a list separator; journal cells naming it are split")
		}
		raw := cols.Cell(row, FieldOpening)
		amt, ok := journal.ParseAmount(raw)
		if !ok {
			warn.Addf(diagnostics.KindDataCoercion, t.Name, line, code, "opening balance %q is not a number; treated as 0", raw)
		}
		if prev, dup := opening[code]; dup {
			warn.Add(diagnostics.Warning{
				Kind: diagnostics.KindDuplicateOpening, Table: t.Name, Row: line, Code: code,
				Detail: "opening balance listed more than once; amounts summed",
				Amount: amt,
			})
			opening[code] = prev.Add(amt)
			continue
		}
		opening[code] = amt
	}
	return opening, nil
}
