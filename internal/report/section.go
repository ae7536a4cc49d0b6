package report

import (
	"strings"

	"github.com/cleared-dev/laporan/internal/config"
	"github.com/cleared-dev/laporan/internal/model"
)

// SectionKey names a report section. The net income formula and the
// equity injection refer to sections by key.
type SectionKey string

const (
	Revenue          SectionKey = "revenue"
	OperatingExpense SectionKey = "operating_expense"
	OtherIncome      SectionKey = "other_income"
	OtherExpense     SectionKey = "other_expense"
	Assets           SectionKey = "assets"
	Liabilities      SectionKey = "liabilities"
	Equity           SectionKey = "equity"
)

// ExpectedSide is the side on which the section's members normally carry
// their balance. Assets and expenses are debit; the rest are credit.
func (k SectionKey) ExpectedSide() model.NormalSide {
	switch k {
	case Assets, OperatingExpense, OtherExpense:
		return model.SideDebit
	}
	return model.SideCredit
}

// SectionDef is one entry of the ordered section vocabulary.
type SectionDef struct {
	Key    SectionKey
	Label  string
	Report model.ReportKind
	Side   model.NormalSide
	Order  int
	Terms  []string // lower-cased
}

// DefsFromConfig converts configured sections, keeping their order.
func DefsFromConfig(sections []config.SectionConfig) []SectionDef {
	defs := make([]SectionDef, 0, len(sections))
	for i, s := range sections {
		key := SectionKey(s.Key)
		terms := make([]string, 0, len(s.Terms))
		for _, t := range s.Terms {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				terms = append(terms, t)
			}
		}
		defs = append(defs, SectionDef{
			Key:    key,
			Label:  s.Label,
			Report: model.ReportKind(s.Report),
			Side:   key.ExpectedSide(),
			Order:  i,
			Terms:  terms,
		})
	}
	return defs
}

// Classifier assigns accounts to sections.
type Classifier struct {
	defs []SectionDef
}

// NewClassifier creates a Classifier over defs.
func NewClassifier(defs []SectionDef) *Classifier {
	return &Classifier{defs: defs}
}

// Classify finds the section whose term occurs in the account's
// sub-classification, case-insensitively. The longest matching term wins,
// so "Pendapatan Luar Usaha" prefers "pendapatan luar" over "pendapatan".
// Ties go to the earlier section. An account with a known report only
// matches sections of that report.
func (c *Classifier) Classify(acct model.Account) (SectionDef, bool) {
	label := strings.ToLower(strings.TrimSpace(acct.SubType))
	if label == "" {
		return SectionDef{}, false
	}

	best, bestLen := -1, 0
	for i, def := range c.defs {
		if acct.Report != model.ReportUnknown && def.Report != acct.Report {
			continue
		}
		for _, term := range def.Terms {
			if len(term) > bestLen && strings.Contains(label, term) {
				best, bestLen = i, len(term)
			}
		}
	}
	if best < 0 {
		return SectionDef{}, false
	}
	return c.defs[best], true
}
