package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the first worksheet of an Office Open XML workbook.
type XLSXReader struct{}

// Format returns the file extension handled.
func (x *XLSXReader) Format() string { return "xlsx" }

// Read returns the formatted cell text of the first sheet.
func (x *XLSXReader) Read(name string, r io.ReadSeeker) (*Table, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer xl.Close()

	sheet := xl.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := xl.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return fromRecords(name, rows, nil), nil
}
