package report

import (
	"github.com/shopspring/decimal"
)

// Statement titles.
const (
	TitleIncomeStatement = "Laporan Laba Rugi"
	TitleBalanceSheet    = "Laporan Posisi Keuangan"
)

// Document is the renderer contract: everything a renderer needs, with no
// accounting logic left to do.
type Document struct {
	Title      string
	Company    string
	Period     string
	Statements []Statement
}

// Statement is one titled report.
type Statement struct {
	Title    string
	Sections []DocSection
	Totals   []TotalRow
}

// DocSection is a section of a statement.
type DocSection struct {
	Key      string
	Name     string
	Rows     []Row
	Subtotal decimal.Decimal
}

// Row is one itemized line.
type Row struct {
	Code     string
	Label    string
	Amount   decimal.Decimal
	Injected bool
}

// TotalRow is a summary figure. Grand totals get a double rule.
type TotalRow struct {
	Label  string
	Amount decimal.Decimal
	Grand  bool
}

// Document builds the renderer contract for r.
func (r *Report) Document(title, company, period string) Document {
	t := r.Totals

	is := Statement{Title: TitleIncomeStatement, Sections: docSections(r.IncomeStatement)}
	is.Totals = []TotalRow{{Label: "Laba (Rugi) Bersih", Amount: t.NetIncome, Grand: true}}

	bs := Statement{Title: TitleBalanceSheet, Sections: docSections(r.BalanceSheet)}
	bs.Totals = []TotalRow{
		{Label: "Total Aset", Amount: t.Assets, Grand: true},
		{Label: "Total Kewajiban dan Ekuitas", Amount: t.LiabilitiesAndEquity, Grand: true},
	}
	if !t.Balanced() {
		bs.Totals = append(bs.Totals, TotalRow{Label: "Selisih", Amount: t.Delta})
	}

	return Document{
		Title:      title,
		Company:    company,
		Period:     period,
		Statements: []Statement{is, bs},
	}
}

func docSections(sections []Section) []DocSection {
	out := make([]DocSection, 0, len(sections))
	for _, s := range sections {
		rows := make([]Row, 0, len(s.Lines))
		for _, l := range s.Lines {
			rows = append(rows, Row{Code: l.Code, Label: l.Name, Amount: l.Amount, Injected: l.Injected})
		}
		out = append(out, DocSection{Key: string(s.Key), Name: s.Label, Rows: rows, Subtotal: s.Subtotal})
	}
	return out
}
