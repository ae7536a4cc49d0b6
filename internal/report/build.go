// Package report classifies resolved balances into the Income Statement
// and Balance Sheet, folds net income into equity and checks that the
// balance sheet balances.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/laporan/internal/acctcode"
	"github.com/cleared-dev/laporan/internal/balance"
	"github.com/cleared-dev/laporan/internal/config"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/model"
)

// Options configures Build.
type Options struct {
	Sections         []SectionDef
	EarningsCode     string
	EarningsLabel    string
	EarningsKeywords []string // searched in order when no line has EarningsCode
	EarningsExclude  []string // names containing any of these never match a keyword
}

// OptionsFromConfig builds Options from a loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Sections:         DefsFromConfig(cfg.Sections),
		EarningsCode:     cfg.Earnings.Code,
		EarningsLabel:    cfg.Earnings.Label,
		EarningsKeywords: cfg.Earnings.Keywords,
		EarningsExclude:  cfg.Earnings.Exclude,
	}
}

// Line is one account as presented in a section.
type Line struct {
	Code   string
	Name   string
	Side   model.NormalSide
	Ending decimal.Decimal // before presentation sign
	Amount decimal.Decimal // presentation value

	// Injected marks the equity line carrying net income. Synthesized
	// means the line was not in the chart.
	Injected    bool
	Synthesized bool
}

// Section is a classified group of lines.
type Section struct {
	SectionDef
	Lines    []Line
	Subtotal decimal.Decimal
}

// Totals holds the report figures.
type Totals struct {
	Revenue              decimal.Decimal
	OperatingExpense     decimal.Decimal
	OtherIncome          decimal.Decimal
	OtherExpense         decimal.Decimal
	NetIncome            decimal.Decimal
	Assets               decimal.Decimal
	Liabilities          decimal.Decimal
	Equity               decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
	Delta                decimal.Decimal // Assets - (Liabilities + Equity)
}

// Balanced reports whether the reconciliation delta is zero.
func (t Totals) Balanced() bool {
	return t.Delta.IsZero()
}

// Report is the output of Build.
type Report struct {
	IncomeStatement []Section
	BalanceSheet    []Section
	Totals          Totals
	Warnings        []diagnostics.Warning
}

// Section returns the section with key, or nil.
func (r *Report) Section(key SectionKey) *Section {
	for _, group := range [][]Section{r.IncomeStatement, r.BalanceSheet} {
		for i := range group {
			if group[i].Key == key {
				return &group[i]
			}
		}
	}
	return nil
}

// InjectedLine returns the equity line carrying net income.
func (r *Report) InjectedLine() (Line, bool) {
	if eq := r.Section(Equity); eq != nil {
		for _, l := range eq.Lines {
			if l.Injected {
				return l, true
			}
		}
	}
	return Line{}, false
}

// defaultEquity is used when the configured vocabulary has no equity
// section, so net income always has a home.
var defaultEquity = SectionDef{Key: Equity, Label: "Ekuitas", Report: model.ReportBalanceSheet, Side: model.SideCredit}

// Build classifies rows and computes the totals. It does not modify rows
// and returns the same report for the same input.
func Build(rows []balance.Resolved, opts Options) *Report {
	var warn diagnostics.Collector
	classifier := NewClassifier(opts.Sections)

	sections := make([]Section, len(opts.Sections))
	index := make(map[SectionKey]int, len(opts.Sections))
	for i, def := range opts.Sections {
		sections[i] = Section{SectionDef: def}
		if _, dup := index[def.Key]; !dup {
			index[def.Key] = i
		}
	}
	if _, ok := index[Equity]; !ok {
		def := defaultEquity
		def.Order = len(sections)
		index[Equity] = len(sections)
		sections = append(sections, Section{SectionDef: def})
	}

	for _, r := range rows {
		if r.Account.Header {
			continue
		}
		def, ok := classifier.Classify(r.Account)
		if !ok {
			warn.Add(diagnostics.Warning{
				Kind:   diagnostics.KindUnclassifiedAccount,
				Code:   r.Account.Code,
				Detail: unclassifiedDetail(r.Account),
				Amount: r.Ending,
			})
			continue
		}
		s := &sections[index[def.Key]]
		s.Lines = append(s.Lines, Line{
			Code:   r.Account.Code,
			Name:   r.Account.Name,
			Side:   r.Side,
			Ending: r.Ending,
			Amount: balance.Present(r.Side, def.Side, r.Ending),
		})
	}

	for i := range sections {
		sortLines(sections[i].Lines)
		sections[i].Subtotal = subtotal(sections[i].Lines)
	}

	var t Totals
	sub := func(k SectionKey) decimal.Decimal {
		if i, ok := index[k]; ok {
			return sections[i].Subtotal
		}
		return decimal.Zero
	}
	t.Revenue = sub(Revenue)
	t.OperatingExpense = sub(OperatingExpense)
	t.OtherIncome = sub(OtherIncome)
	t.OtherExpense = sub(OtherExpense)
	t.NetIncome = t.Revenue.Sub(t.OperatingExpense).Add(t.OtherIncome).Sub(t.OtherExpense)

	eq := &sections[index[Equity]]
	injectEarnings(eq, t.NetIncome, opts)
	eq.Subtotal = subtotal(eq.Lines)

	t.Assets = sub(Assets)
	t.Liabilities = sub(Liabilities)
	t.Equity = eq.Subtotal
	t.LiabilitiesAndEquity = t.Liabilities.Add(t.Equity)
	t.Delta = t.Assets.Sub(t.LiabilitiesAndEquity)
	if !t.Delta.IsZero() {
		warn.Add(diagnostics.Warning{
			Kind:   diagnostics.KindReconciliationMismatch,
			Detail: "total assets differ from total liabilities and equity by " + t.Delta.String(),
			Amount: t.Delta,
		})
	}

	rep := &Report{Totals: t, Warnings: warn.Warnings()}
	for _, s := range sections {
		if s.Report == model.ReportIncomeStatement {
			rep.IncomeStatement = append(rep.IncomeStatement, s)
		} else {
			rep.BalanceSheet = append(rep.BalanceSheet, s)
		}
	}
	return rep
}

// injectEarnings sets the current-earnings line of eq to netIncome: the
// line with the configured code, else the first line whose name contains
// the highest-priority keyword and none of the exclusions, else a new line.
func injectEarnings(eq *Section, netIncome decimal.Decimal, opts Options) {
	target := -1
	code := acctcode.Normalize(opts.EarningsCode)
	if code != "" {
		for i, l := range eq.Lines {
			if l.Code == code {
				target = i
				break
			}
		}
	}
	for _, kw := range opts.EarningsKeywords {
		if target >= 0 {
			break
		}
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for i, l := range eq.Lines {
			name := strings.ToLower(l.Name)
			if strings.Contains(name, kw) && !containsAny(name, opts.EarningsExclude) {
				target = i
				break
			}
		}
	}

	if target >= 0 {
		eq.Lines[target].Amount = netIncome
		eq.Lines[target].Injected = true
		return
	}

	eq.Lines = append(eq.Lines, Line{
		Code:        code,
		Name:        opts.EarningsLabel,
		Side:        model.SideCredit,
		Ending:      netIncome,
		Amount:      netIncome,
		Injected:    true,
		Synthesized: true,
	})
	sortLines(eq.Lines)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func sortLines(lines []Line) {
	sort.SliceStable(lines, func(i, j int) bool { return acctcode.Less(lines[i].Code, lines[j].Code) })
}

func subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

func unclassifiedDetail(acct model.Account) string {
	if acct.SubType == "" {
		return "no sub-classification; excluded from reports"
	}
	return fmt.Sprintf("sub-classification %q matches no report section; excluded from reports", acct.SubType)
}
