package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/laporan/internal/report"
)

// csvHeader is the column layout of the CSV export.
var csvHeader = []string{"statement", "section", "account_code", "account_name", "ending_balance"}

// CSVRenderer writes one row per line, subtotal and total. Amounts are
// exact decimals so the file can be re-read without loss.
type CSVRenderer struct{}

// Render writes doc.
func (CSVRenderer) Render(w io.Writer, doc report.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, st := range doc.Statements {
		for _, sec := range st.Sections {
			for _, row := range sec.Rows {
				if err := cw.Write([]string{st.Title, sec.Name, row.Code, row.Label, row.Amount.String()}); err != nil {
					return fmt.Errorf("writing %s: %w", row.Code, err)
				}
			}
			if err := cw.Write([]string{st.Title, sec.Name, "", "Total " + sec.Name, sec.Subtotal.String()}); err != nil {
				return fmt.Errorf("writing subtotal: %w", err)
			}
		}
		for _, tot := range st.Totals {
			if err := cw.Write([]string{st.Title, "", "", tot.Label, tot.Amount.String()}); err != nil {
				return fmt.Errorf("writing total: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
