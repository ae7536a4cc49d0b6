package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/laporan/internal/balance"
	"github.com/cleared-dev/laporan/internal/config"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/model"
)

const (
	is = model.ReportIncomeStatement
	bs = model.ReportBalanceSheet
	d  = model.SideDebit
	c  = model.SideCredit
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultOptions() Options {
	return OptionsFromConfig(config.Default(""))
}

type acct struct {
	code, name string
	side       model.NormalSide
	report     model.ReportKind
	subType    string
	opening    string
	debit      string
	credit     string
}

func resolve(accts ...acct) []balance.Resolved {
	r := balance.Resolver{Fallback: model.SideDebit}
	out := make([]balance.Resolved, 0, len(accts))
	for _, a := range accts {
		m := model.Movement{Debit: decimal.Zero, Credit: decimal.Zero}
		if a.debit != "" {
			m.Debit = dec(a.debit)
		}
		if a.credit != "" {
			m.Credit = dec(a.credit)
		}
		opening := decimal.Zero
		if a.opening != "" {
			opening = dec(a.opening)
		}
		out = append(out, r.Resolve(model.Account{
			Code: a.code, Name: a.name, NormalSide: a.side, Report: a.report, SubType: a.subType,
		}, opening, m))
	}
	return out
}

func line(t *testing.T, s *Section, code string) Line {
	t.Helper()
	require.NotNil(t, s)
	for _, l := range s.Lines {
		if l.Code == code {
			return l
		}
	}
	t.Fatalf("line %s not in section %s", code, s.Key)
	return Line{}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: got %s, want %s", msg, got, want)
}

func TestBuild_RevenueScenario(t *testing.T) {
	rows := resolve(acct{code: "4001", name: "Pendapatan Penjualan", side: c, report: is, subType: "Pendapatan", credit: "1000000"})
	rep := Build(rows, defaultOptions())

	l := line(t, rep.Section(Revenue), "4001")
	assertDec(t, "1000000", l.Ending, "ending")
	assertDec(t, "1000000", l.Amount, "presented")
	assertDec(t, "1000000", rep.Totals.Revenue, "revenue")
	assertDec(t, "1000000", rep.Totals.NetIncome, "net income")
}

func TestBuild_CashScenario(t *testing.T) {
	rows := resolve(acct{code: "1001", name: "Kas", side: d, report: bs, subType: "Aset Lancar", opening: "500000", debit: "200000", credit: "50000"})
	rep := Build(rows, defaultOptions())

	l := line(t, rep.Section(Assets), "1001")
	assertDec(t, "650000", l.Amount, "cash")
	assertDec(t, "650000", rep.Totals.Assets, "assets")
}

func TestBuild_SynthesizedEarnings(t *testing.T) {
	rows := resolve(
		acct{code: "4001", name: "Pendapatan", side: c, report: is, subType: "Pendapatan", credit: "1000000"},
		acct{code: "5001", name: "Beban Gaji", side: d, report: is, subType: "Beban Umum Administrasi", debit: "250000"},
		acct{code: "3001", name: "Modal Disetor", side: c, report: bs, subType: "Ekuitas", opening: "100"},
	)
	rep := Build(rows, defaultOptions())
	assertDec(t, "750000", rep.Totals.NetIncome, "net income")

	eq := rep.Section(Equity)
	l := line(t, eq, "3004")
	assert.Equal(t, "Laba (Rugi) Berjalan", l.Name)
	assert.True(t, l.Injected)
	assert.True(t, l.Synthesized)
	assertDec(t, "750000", l.Amount, "injected")
	assertDec(t, "750100", rep.Totals.Equity, "equity includes earnings once")

	injected := 0
	for _, l := range eq.Lines {
		if l.Injected {
			injected++
		}
	}
	assert.Equal(t, 1, injected)
	assert.Equal(t, "3001", eq.Lines[0].Code)
}

func TestBuild_Idempotent(t *testing.T) {
	rows := resolve(
		acct{code: "4001", name: "Pendapatan", side: c, report: is, subType: "Pendapatan", credit: "900"},
		acct{code: "3004", name: "Laba (Rugi) Berjalan", side: c, report: bs, subType: "Ekuitas", opening: "123"},
	)
	first := Build(rows, defaultOptions())
	second := Build(rows, defaultOptions())

	assert.True(t, first.Totals.NetIncome.Equal(second.Totals.NetIncome))
	assert.True(t, first.Totals.Equity.Equal(second.Totals.Equity))
	assert.True(t, first.Totals.Delta.Equal(second.Totals.Delta))
	assert.Len(t, second.Section(Equity).Lines, 1)
	assertDec(t, "123", rows[1].Ending, "input rows untouched")

	l, ok := second.InjectedLine()
	require.True(t, ok)
	assert.False(t, l.Synthesized)
	assertDec(t, "900", l.Amount, "existing 3004 carries net income")
}

func TestBuild_BalancedFixture(t *testing.T) {
	rows := resolve(
		acct{code: "1001", name: "Kas", side: d, report: bs, subType: "Aset Lancar", opening: "500", debit: "300", credit: "100"},
		acct{code: "1501", name: "Peralatan", side: d, report: bs, subType: "Aset Tetap", opening: "1000"},
		acct{code: "1502", name: "Akumulasi Penyusutan", side: c, report: bs, subType: "Aset Tetap", opening: "200", credit: "50"},
		acct{code: "2001", name: "Utang Usaha", side: c, report: bs, subType: "Kewajiban Lancar", opening: "300"},
		acct{code: "3001", name: "Modal", side: c, report: bs, subType: "Ekuitas", opening: "1000"},
		acct{code: "4001", name: "Pendapatan", side: c, report: is, subType: "Pendapatan", credit: "300"},
		acct{code: "5001", name: "Beban Sewa", side: d, report: is, subType: "Beban Umum Administrasi", debit: "100"},
		acct{code: "5003", name: "Beban Penyusutan", side: d, report: is, subType: "Beban Umum Administrasi", debit: "50"},
	)
	rep := Build(rows, defaultOptions())

	assertDec(t, "150", rep.Totals.NetIncome, "net income")
	assertDec(t, "1450", rep.Totals.Assets, "assets")
	assertDec(t, "300", rep.Totals.Liabilities, "liabilities")
	assertDec(t, "1150", rep.Totals.Equity, "equity")
	assert.True(t, rep.Totals.Balanced(), "delta %s", rep.Totals.Delta)
	assert.Empty(t, rep.Warnings)

	contra := line(t, rep.Section(Assets), "1502")
	assertDec(t, "-250", contra.Amount, "contra asset shown negative")
}

func TestBuild_LongestTermWins(t *testing.T) {
	rows := resolve(
		acct{code: "4001", name: "Penjualan", side: c, report: is, subType: "Pendapatan", credit: "1000"},
		acct{code: "6001", name: "Bunga", side: c, report: is, subType: "Pendapatan Luar Usaha", credit: "25"},
		acct{code: "7001", name: "Beban Bunga", side: d, report: is, subType: "Beban Luar Usaha", debit: "15"},
	)
	rep := Build(rows, defaultOptions())

	assert.Len(t, rep.Section(Revenue).Lines, 1)
	line(t, rep.Section(OtherIncome), "6001")
	line(t, rep.Section(OtherExpense), "7001")
	assert.Empty(t, rep.Section(OperatingExpense).Lines)
	assertDec(t, "1010", rep.Totals.NetIncome, "1000 + 25 - 15")
}

func TestBuild_ReportAssignmentRestrictsSections(t *testing.T) {
	rows := resolve(
		acct{code: "1999", name: "Pendapatan Diterima Dimuka", side: c, report: bs, subType: "Pendapatan Diterima Dimuka", credit: "10"},
		acct{code: "9001", name: "Tanpa Laporan", side: d, subType: "Aset Lancar", debit: "5"},
	)
	rep := Build(rows, defaultOptions())

	assert.Empty(t, rep.Section(Revenue).Lines)
	line(t, rep.Section(Assets), "9001")
	require.Len(t, rep.Warnings, 2)
	assert.Equal(t, diagnostics.KindUnclassifiedAccount, rep.Warnings[0].Kind)
	assert.Equal(t, "1999", rep.Warnings[0].Code)
	assert.Equal(t, diagnostics.KindReconciliationMismatch, rep.Warnings[1].Kind)
}

func TestBuild_HeadersSkipped(t *testing.T) {
	rows := resolve(acct{code: "1000", name: "ASET", side: d, report: bs, subType: "Aset"})
	rows[0].Account.Header = true
	rep := Build(rows, defaultOptions())

	assert.Empty(t, rep.Section(Assets).Lines)
	assert.Empty(t, rep.Warnings)
}

func TestBuild_KeywordPriority(t *testing.T) {
	rows := resolve(
		acct{code: "3002", name: "Laba Ditahan", side: c, report: bs, subType: "Ekuitas", opening: "500"},
		acct{code: "3010", name: "Laba Berjalan Tahun Ini", side: c, report: bs, subType: "Ekuitas"},
		acct{code: "4001", name: "Pendapatan", side: c, report: is, subType: "Pendapatan", credit: "80"},
	)
	rep := Build(rows, defaultOptions())

	eq := rep.Section(Equity)
	require.Len(t, eq.Lines, 2)
	retained := line(t, eq, "3002")
	assert.False(t, retained.Injected)
	assertDec(t, "500", retained.Amount, "retained earnings untouched")

	current := line(t, eq, "3010")
	assert.True(t, current.Injected)
	assertDec(t, "80", current.Amount, "current earnings")
	assertDec(t, "580", rep.Totals.Equity, "equity")
}

func TestBuild_RetainedEarningsNeverInjected(t *testing.T) {
	rows := resolve(
		acct{code: "1001", name: "Kas", side: d, report: bs, subType: "Aset Lancar", opening: "4000000", debit: "760000"},
		acct{code: "3001", name: "Modal Disetor", side: c, report: bs, subType: "Ekuitas", opening: "3500000"},
		acct{code: "3002", name: "Laba Ditahan", side: c, report: bs, subType: "Ekuitas", opening: "500000"},
		acct{code: "4001", name: "Pendapatan Jasa", side: c, report: is, subType: "Pendapatan", credit: "760000"},
	)
	rep := Build(rows, defaultOptions())

	eq := rep.Section(Equity)
	retained := line(t, eq, "3002")
	assert.False(t, retained.Injected)
	assertDec(t, "500000", retained.Amount, "retained earnings keep their balance")

	synth := line(t, eq, "3004")
	assert.True(t, synth.Synthesized)
	assertDec(t, "760000", synth.Amount, "net income")
	assertDec(t, "4760000", rep.Totals.Equity, "equity")
	assert.True(t, rep.Totals.Balanced(), "delta %s", rep.Totals.Delta)
}

func TestBuild_ExcludeOverridesKeyword(t *testing.T) {
	opts := defaultOptions()
	opts.EarningsKeywords = []string{"earnings", "laba"}
	rows := resolve(
		acct{code: "3002", name: "Retained Earnings", side: c, report: bs, subType: "Equity", opening: "40"},
		acct{code: "3003", name: "Laba Ditahan Cadangan", side: c, report: bs, subType: "Ekuitas", opening: "2"},
		acct{code: "3005", name: "Current Earnings", side: c, report: bs, subType: "Equity"},
	)
	rep := Build(rows, opts)

	eq := rep.Section(Equity)
	assert.False(t, line(t, eq, "3002").Injected)
	assert.False(t, line(t, eq, "3003").Injected)
	assert.True(t, line(t, eq, "3005").Injected)
	assert.Len(t, eq.Lines, 3)
}

func TestBuild_CodeBeatsKeyword(t *testing.T) {
	opts := defaultOptions()
	opts.EarningsCode = "3900"
	rows := resolve(
		acct{code: "3010", name: "Laba Berjalan", side: c, report: bs, subType: "Ekuitas", opening: "7"},
		acct{code: "3900", name: "Hasil Usaha", side: c, report: bs, subType: "Ekuitas"},
	)
	rep := Build(rows, opts)

	assert.True(t, line(t, rep.Section(Equity), "3900").Injected)
	assert.False(t, line(t, rep.Section(Equity), "3010").Injected)
}

func TestBuild_ReconciliationMismatch(t *testing.T) {
	rows := resolve(
		acct{code: "1001", name: "Kas", side: d, report: bs, subType: "Aset Lancar", opening: "1000"},
		acct{code: "2001", name: "Utang", side: c, report: bs, subType: "Kewajiban", opening: "400"},
	)
	rep := Build(rows, defaultOptions())

	assertDec(t, "600", rep.Totals.Delta, "delta")
	assertDec(t, "1000", rep.Totals.Assets, "figures are not adjusted")
	require.Len(t, rep.Warnings, 1)
	w := rep.Warnings[0]
	assert.Equal(t, diagnostics.KindReconciliationMismatch, w.Kind)
	assertDec(t, "600", w.Amount, "warning carries delta")
}

func TestBuild_NoEquitySectionConfigured(t *testing.T) {
	opts := defaultOptions()
	var kept []SectionDef
	for _, def := range opts.Sections {
		if def.Key != Equity {
			kept = append(kept, def)
		}
	}
	opts.Sections = kept

	rows := resolve(acct{code: "4001", name: "Pendapatan", side: c, report: is, subType: "Pendapatan", credit: "5"})
	rep := Build(rows, opts)

	l, ok := rep.InjectedLine()
	require.True(t, ok)
	assertDec(t, "5", l.Amount, "earnings")
	assert.Equal(t, Equity, rep.BalanceSheet[len(rep.BalanceSheet)-1].Key)
}

func TestClassifier(t *testing.T) {
	c := NewClassifier(defaultOptions().Sections)
	tests := []struct {
		subType string
		report  model.ReportKind
		want    SectionKey
		ok      bool
	}{
		{"Pendapatan", is, Revenue, true},
		{"PENDAPATAN LUAR USAHA", is, OtherIncome, true},
		{"Beban Umum Administrasi", is, OperatingExpense, true},
		{"Beban Luar Usaha", is, OtherExpense, true},
		{"Aset Tetap", bs, Assets, true},
		{"Kewajiban Jangka Panjang", bs, Liabilities, true},
		{"Ekuitas", model.ReportUnknown, Equity, true},
		{"Pendapatan", bs, "", false},
		{"", is, "", false},
		{"Lain-lain", is, "", false},
	}
	for _, tt := range tests {
		def, ok := c.Classify(model.Account{SubType: tt.subType, Report: tt.report})
		assert.Equal(t, tt.ok, ok, "Classify(%q)", tt.subType)
		assert.Equal(t, tt.want, def.Key, "Classify(%q)", tt.subType)
	}
}

func TestDocument(t *testing.T) {
	rows := resolve(
		acct{code: "1001", name: "Kas", side: d, report: bs, subType: "Aset Lancar", debit: "100"},
		acct{code: "4001", name: "Pendapatan", side: c, report: is, subType: "Pendapatan", credit: "100"},
	)
	doc := Build(rows, defaultOptions()).Document("Laporan Keuangan", "PT Contoh", "Januari 2025")

	assert.Equal(t, "PT Contoh", doc.Company)
	require.Len(t, doc.Statements, 2)

	pl := doc.Statements[0]
	assert.Equal(t, TitleIncomeStatement, pl.Title)
	require.Len(t, pl.Sections, 4)
	assert.Equal(t, "Pendapatan", pl.Sections[0].Name)
	assert.Equal(t, "Pendapatan", pl.Sections[0].Rows[0].Label)
	require.Len(t, pl.Totals, 1)
	assertDec(t, "100", pl.Totals[0].Amount, "net income")

	bal := doc.Statements[1]
	assert.Equal(t, TitleBalanceSheet, bal.Title)
	require.Len(t, bal.Sections, 3)
	eq := bal.Sections[2]
	require.Len(t, eq.Rows, 1)
	assert.True(t, eq.Rows[0].Injected)
	assert.Len(t, bal.Totals, 2, "no difference row when balanced")
}
