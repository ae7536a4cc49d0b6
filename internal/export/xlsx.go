package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/laporan/internal/report"
)

// SummarySheet is the first sheet of the workbook.
const SummarySheet = "Ringkasan"

// XLSXRenderer writes a workbook with a summary sheet and one sheet per
// section.
type XLSXRenderer struct{}

type xlsxStyles struct {
	header, amount, subtotal, grand int
}

// Render writes doc.
func (XLSXRenderer) Render(w io.Writer, doc report.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newXLSXStyles(f)
	if err != nil {
		return err
	}
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	if err := writeSummary(f, st, doc); err != nil {
		return err
	}

	used := map[string]bool{SummarySheet: true}
	for _, stmt := range doc.Statements {
		for _, sec := range stmt.Sections {
			name := sheetName(sec.Name, used)
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("adding sheet %s: %w", name, err)
			}
			if err := writeSection(f, st, name, sec); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	numFmt := "#,##0"
	var s xlsxStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	}); err != nil {
		return s, fmt.Errorf("creating header style: %w", err)
	}
	if s.amount, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, fmt.Errorf("creating amount style: %w", err)
	}
	if s.subtotal, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Font:         &excelize.Font{Bold: true},
		Border:       []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	}); err != nil {
		return s, fmt.Errorf("creating subtotal style: %w", err)
	}
	if s.grand, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Font:         &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 6},
		},
	}); err != nil {
		return s, fmt.Errorf("creating total style: %w", err)
	}
	return s, nil
}

func writeSection(f *excelize.File, st xlsxStyles, sheet string, sec report.DocSection) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{"Kode Akun", "Nama Akun", "Saldo Akhir"}); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", "C1", st.header); err != nil {
		return err
	}

	row := 2
	for _, r := range sec.Rows {
		if err := setRow(f, sheet, row, r.Code, r.Label, r.Amount, st.amount); err != nil {
			return err
		}
		row++
	}
	if err := setRow(f, sheet, row, "", "Total "+sec.Name, sec.Subtotal, st.subtotal); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell(2, row), cell(2, row), st.subtotal); err != nil {
		return err
	}
	return setWidths(f, sheet)
}

func writeSummary(f *excelize.File, st xlsxStyles, doc report.Document) error {
	sheet := SummarySheet
	row := 1
	for _, h := range []string{doc.Company, doc.Title, doc.Period} {
		if h == "" {
			continue
		}
		if err := f.SetCellValue(sheet, cell(1, row), h); err != nil {
			return err
		}
		row++
	}
	row++

	for _, stmt := range doc.Statements {
		if err := f.SetCellValue(sheet, cell(1, row), stmt.Title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), cell(3, row), st.header); err != nil {
			return err
		}
		row++
		for _, sec := range stmt.Sections {
			if err := setRow(f, sheet, row, "", sec.Name, sec.Subtotal, st.amount); err != nil {
				return err
			}
			row++
		}
		for _, tot := range stmt.Totals {
			style := st.subtotal
			if tot.Grand {
				style = st.grand
			}
			if err := setRow(f, sheet, row, "", tot.Label, tot.Amount, style); err != nil {
				return err
			}
			row++
		}
		row++
	}
	return setWidths(f, sheet)
}

func setRow(f *excelize.File, sheet string, row int, code, label string, amount decimal.Decimal, style int) error {
	values := []any{code, label, amount.InexactFloat64()}
	if err := f.SetSheetRow(sheet, cell(1, row), &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return f.SetCellStyle(sheet, cell(3, row), cell(3, row), style)
}

func setWidths(f *excelize.File, sheet string) error {
	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "C", "C", 20)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// sheetName makes a valid, unused sheet name from a section label.
func sheetName(label string, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(label))
	if name == "" {
		name = "Bagian"
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	base := name
	for i := 2; used[name]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		r := []rune(base)
		if len(r)+len(suffix) > 31 {
			r = r[:31-len(suffix)]
		}
		name = string(r) + suffix
	}
	used[name] = true
	return name
}
