package tabular

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// XLSReader reads the first sheet of a legacy BIFF (.xls) workbook.
type XLSReader struct{}

// Format returns the file extension handled.
func (x *XLSReader) Format() string { return "xls" }

// Read collects every populated row of sheet 0.
func (x *XLSReader) Read(name string, r io.ReadSeeker) (*Table, error) {
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	var (
		records [][]string
		lines   []int
	)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		rec := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			rec[j] = row.Col(j)
		}
		records = append(records, rec)
		lines = append(lines, i+1)
	}
	return fromRecords(name, records, lines), nil
}
