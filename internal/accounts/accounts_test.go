package accounts

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/laporan/internal/acctcode"
	"github.com/cleared-dev/laporan/internal/config"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/model"
	"github.com/cleared-dev/laporan/internal/tabular"
)

func synonyms() map[string][]string {
	return config.Default("").Columns.Chart
}

func readCSV(t *testing.T, data string) *tabular.Table {
	t.Helper()
	tbl, err := (&tabular.CSVReader{}).Read("coa.csv", strings.NewReader(data))
	require.NoError(t, err)
	return tbl
}

func TestReadAccounts(t *testing.T) {
	tbl := readCSV(t, `Kode Akun,Nama Akun,Posisi Normal Akun,Laporan,Sub Tipe Laporan,Tipe Akun
0101,Kas,Debit,Laporan Posisi Keuangan,Aset Lancar,detail
4001,Pendapatan,kredit,Laporan Laba Rugi,Pendapatan,
1000,ASET,Debit,Laporan Posisi Keuangan,Aset,header
`)
	var warn diagnostics.Collector
	accts, err := ReadAccounts(tbl, synonyms(), acctcode.Default, &warn)
	require.NoError(t, err)
	require.Len(t, accts, 3)

	assert.Equal(t, model.Account{
		Code: "0101", Name: "Kas", NormalSide: model.SideDebit,
		Report: model.ReportBalanceSheet, SubType: "Aset Lancar",
	}, accts[0])
	assert.Equal(t, model.SideCredit, accts[1].NormalSide)
	assert.Equal(t, model.ReportIncomeStatement, accts[1].Report)
	assert.True(t, accts[2].Header)
	assert.Zero(t, warn.Len())
}

func TestReadAccounts_DuplicateAndBlankCodes(t *testing.T) {
	tbl := readCSV(t, `kode_akun,nama_akun
1001,Kas
,Tanpa kode
 1001 ,Kas lagi
`)
	var warn diagnostics.Collector
	accts, err := ReadAccounts(tbl, synonyms(), acctcode.Default, &warn)
	require.NoError(t, err)
	require.Len(t, accts, 1)
	assert.Equal(t, "Kas", accts[0].Name)
	assert.Equal(t, 1, warn.Count(diagnostics.KindDuplicateAccount))
	assert.Equal(t, 4, warn.Warnings()[0].Row)
}

func TestReadAccounts_CodeWithSlash(t *testing.T) {
	tbl := readCSV(t, "kode_akun,nama_akun\n1-1/01,Kas Cabang\n1001;1002,Gabungan\n")

	var warn diagnostics.Collector
	accts, err := ReadAccounts(tbl, synonyms(), acctcode.Default, &warn)
	require.NoError(t, err)
	require.Len(t, accts, 2)
	assert.Equal(t, "1-1/01", accts[0].Code)
	assert.Equal(t, acctcode.Default.Split("1-1/01"), []string{accts[0].Code}, "journal cells name the same key")
	require.Equal(t, 1, warn.Count(diagnostics.KindCodeSeparator))
	assert.Equal(t, 3, warn.Warnings()[0].Row)
	assert.Equal(t, "1001;1002", warn.Warnings()[0].Code)
}

func TestReadAccounts_MissingCode(t *testing.T) {
	tbl := readCSV(t, "nama_akun,posisi_normal_akun\nKas,Debit\n")
	var warn diagnostics.Collector
	_, err := ReadAccounts(tbl, synonyms(), acctcode.Default, &warn)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrMissingColumn))
	assert.Contains(t, err.Error(), "nama_akun, posisi_normal_akun")
}

func TestReadTestdata(t *testing.T) {
	tbl, err := tabular.DefaultRegistry().ReadFile("../../testdata/coa.csv")
	require.NoError(t, err)

	var warn diagnostics.Collector
	accts, err := ReadAccounts(tbl, synonyms(), acctcode.Default, &warn)
	require.NoError(t, err)
	require.Len(t, accts, 15)

	svc := NewService(accts)
	assert.Len(t, svc.ByReport(model.ReportIncomeStatement), 7)
	assert.Len(t, svc.ByReport(model.ReportBalanceSheet), 8)
	assert.False(t, svc.Exists("3004"), "current earnings line is synthesized, not listed")
}

func TestWriteAccountsRoundTrip(t *testing.T) {
	chart := DefaultChart()

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, chart))

	tbl := readCSV(t, buf.String())
	var warn diagnostics.Collector
	got, err := ReadAccounts(tbl, synonyms(), acctcode.Default, &warn)
	require.NoError(t, err)
	require.Len(t, got, len(chart))
	for i := range chart {
		assert.Equal(t, chart[i], got[i], "account %s should survive round-trip", chart[i].Code)
	}
}

func TestService(t *testing.T) {
	svc := NewService([]model.Account{
		{Code: "2001", Name: "Utang Usaha"},
		{Code: "1001", Name: "Kas"},
		{Code: "999", Name: "Selisih"},
	})

	assert.Equal(t, 3, svc.Len())
	assert.Equal(t, "999", svc.All()[0].Code)
	assert.Equal(t, "2001", svc.All()[2].Code)

	acct, ok := svc.Get(" 1001 ")
	assert.True(t, ok)
	assert.Equal(t, "Kas", acct.Name)

	_, ok = svc.Get("9999")
	assert.False(t, ok)
	assert.True(t, svc.Exists("2001"))
}

func TestDefaultChart(t *testing.T) {
	chart := DefaultChart()
	require.NotEmpty(t, chart)

	codes := make(map[string]bool)
	for _, acct := range chart {
		assert.False(t, codes[acct.Code], "duplicate code %s", acct.Code)
		codes[acct.Code] = true
		assert.NotEmpty(t, acct.Name, "account %s missing name", acct.Code)
		assert.NotEqual(t, model.SideUnknown, acct.NormalSide, "account %s missing side", acct.Code)
		assert.NotEmpty(t, acct.SubType, "account %s missing sub type", acct.Code)
	}
	assert.True(t, codes["3004"], "expected current earnings line")
}
