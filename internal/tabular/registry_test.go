package tabular

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSVReader_Comma(t *testing.T) {
	data := "kode_akun,debit,kredit\n1001,200000,\n4001,,\"1,000,000\"\n"
	tbl, err := (&CSVReader{}).Read("jurnal.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"kode_akun", "debit", "kredit"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "1,000,000", tbl.Rows[1][2])
}

func TestCSVReader_Semicolon(t *testing.T) {
	data := "kode_akun;saldo_awal\n1001;500000\n0102;25,5\n"
	tbl, err := (&CSVReader{}).Read("saldo.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "0102", tbl.Rows[1][0], "leading zero kept")
	assert.Equal(t, "25,5", tbl.Rows[1][1])
}

func TestCSVReader_SourceRowsSurviveBlankLines(t *testing.T) {
	data := "kode_akun,debit\n1001,100\n\n,\n1002,\"multi\nline\"\n1003,5\n"
	tbl, err := (&CSVReader{}).Read("jurnal.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []int{2, 5, 7}, tbl.Lines)
}

func TestCSVReader_RaggedRows(t *testing.T) {
	data := "a,b,c\n1,2\n1,2,3,4\n"
	tbl, err := (&CSVReader{}).Read("r.csv", strings.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 2)
}

func TestXLSXReader(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Kode Akun", "Nama Akun", "Saldo Awal"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"0101", "Kas", 500000}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{"2001", "Utang Usaha", 125000}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := (&XLSXReader{}).Read("saldo.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "saldo.xlsx", tbl.Name)
	assert.Equal(t, []string{"Kode Akun", "Nama Akun", "Saldo Awal"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "0101", tbl.Rows[0][0])
	assert.Equal(t, "500000", tbl.Rows[0][2])
	assert.Equal(t, []int{2, 4}, tbl.Lines, "row 3 left empty")
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVReader{})
	assert.NotNil(t, r.Get("csv"))
	assert.NotNil(t, r.Get(".CSV"))
	assert.Nil(t, r.Get("xlsx"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVReader{})
	assert.Panics(t, func() { r.Register(&CSVReader{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, f := range []string{"csv", "xlsx", "xls"} {
		assert.NotNil(t, r.Get(f), f)
	}
}

func TestReadFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coa.ods")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := DefaultRegistry().ReadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := DefaultRegistry().ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFile_Testdata(t *testing.T) {
	tbl, err := DefaultRegistry().ReadFile("../../testdata/coa.csv")
	require.NoError(t, err)
	assert.Equal(t, "coa.csv", tbl.Name)
	assert.NotEmpty(t, tbl.Rows)
}
