// Package engine runs the whole computation: load the three tables, join
// them by account code, resolve balances and build the report.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/laporan/internal/accounts"
	"github.com/cleared-dev/laporan/internal/balance"
	"github.com/cleared-dev/laporan/internal/config"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/journal"
	"github.com/cleared-dev/laporan/internal/model"
	"github.com/cleared-dev/laporan/internal/report"
	"github.com/cleared-dev/laporan/internal/tabular"
)

// ErrNoInput is returned when an input file is neither given nor found.
var ErrNoInput = errors.New("input file not found")

// Inputs names the three tables. Empty paths are looked up in Dir.
type Inputs struct {
	Dir         string
	ChartPath   string
	OpeningPath string
	JournalPath string
	Range       *journal.DateRange
}

// Tables holds the loaded input tables.
type Tables struct {
	Chart   *tabular.Table
	Opening *tabular.Table
	Journal *tabular.Table
}

// Result is the outcome of one run.
type Result struct {
	RunID    string
	Accounts *accounts.Service
	Resolved []balance.Resolved
	Report   *report.Report
	Warnings []diagnostics.Warning
}

// Engine computes reports under one configuration.
type Engine struct {
	cfg      *config.Config
	registry *tabular.Registry
	logger   *slog.Logger
}

// New creates an Engine. A nil cfg uses the defaults.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	if cfg == nil {
		cfg = config.Default("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, registry: tabular.DefaultRegistry(), logger: logger}
}

// Run loads the inputs and computes the report.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Result, error) {
	tables, err := e.Load(ctx, in)
	if err != nil {
		return nil, err
	}
	return e.Compute(tables, in.Range)
}

// Resolve fills empty paths from Dir by file name.
func (e *Engine) Resolve(in Inputs) (Inputs, error) {
	if in.Dir != "" && (in.ChartPath == "" || in.OpeningPath == "" || in.JournalPath == "") {
		found, err := e.registry.Discover(in.Dir, tabular.DefaultHints())
		if err != nil {
			return in, err
		}
		if in.ChartPath == "" {
			in.ChartPath = found.Chart
		}
		if in.OpeningPath == "" {
			in.OpeningPath = found.Opening
		}
		if in.JournalPath == "" {
			in.JournalPath = found.Journal
		}
	}
	for _, p := range []struct{ name, path string }{
		{"chart of accounts", in.ChartPath},
		{"opening balances", in.OpeningPath},
		{"journal", in.JournalPath},
	} {
		if p.path == "" {
			return in, fmt.Errorf("%s: %w", p.name, ErrNoInput)
		}
	}
	return in, nil
}

// Load reads the three tables concurrently. The first error cancels the
// others.
func (e *Engine) Load(ctx context.Context, in Inputs) (*Tables, error) {
	in, err := e.Resolve(in)
	if err != nil {
		return nil, err
	}

	var t Tables
	g, ctx := errgroup.WithContext(ctx)
	read := func(path string, dst **tabular.Table) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tbl, err := e.registry.ReadFile(path)
			if err != nil {
				return err
			}
			e.logger.Debug("table loaded", "file", path, "rows", len(tbl.Rows), "columns", len(tbl.Headers))
			*dst = tbl
			return nil
		})
	}
	read(in.ChartPath, &t.Chart)
	read(in.OpeningPath, &t.Opening)
	read(in.JournalPath, &t.Journal)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Compute joins the tables and builds the report. Only a missing required
// column stops the run; every other data problem becomes a warning.
func (e *Engine) Compute(t *Tables, rng *journal.DateRange) (*Result, error) {
	runID := uuid.NewString()
	logger := e.logger.With("run_id", runID)
	var warn diagnostics.Collector
	codes := e.cfg.Codes()

	chart, err := accounts.ReadAccounts(t.Chart, e.cfg.Columns.Chart, codes, &warn)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	opening, err := balance.ReadOpening(t.Opening, e.cfg.Columns.Opening, codes, &warn)
	if err != nil {
		return nil, fmt.Errorf("reading opening balances: %w", err)
	}
	lines, err := journal.ReadLines(t.Journal, e.cfg.Columns.Journal, &warn)
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}

	svc := accounts.NewService(chart)
	logger.Debug("inputs parsed",
		"income_statement_accounts", len(svc.ByReport(model.ReportIncomeStatement)),
		"balance_sheet_accounts", len(svc.ByReport(model.ReportBalanceSheet)),
		"opening_balances", len(opening),
		"warnings", warn.Len(),
	)

	movements := journal.Aggregate(lines, rng, codes, &warn)
	if n := warn.Count(diagnostics.KindUndatedLine); n > 0 {
		logger.Warn("undated journal lines left out of the period", "count", n, "period", rng.String())
	}
	reportUnknown(svc, t.Opening.Name, opening, t.Journal.Name, movements, &warn)

	resolver := balance.Resolver{Fallback: model.NormalSide(e.cfg.Policy.UnknownNormalSide), Warn: &warn}
	resolved := resolver.ResolveAll(svc.All(), opening, movements)
	rep := report.Build(resolved, report.OptionsFromConfig(e.cfg))

	debit, credit := journal.Totals(movements)
	if !debit.Equal(credit) {
		logger.Debug("journal movements are not balanced", "debit", debit.String(), "credit", credit.String())
	}

	warnings := append(warn.Warnings(), rep.Warnings...)
	logger.Info("report computed",
		"accounts", svc.Len(),
		"journal_lines", len(lines),
		"journal_debit", debit.String(),
		"journal_credit", credit.String(),
		"net_income", rep.Totals.NetIncome.String(),
		"delta", rep.Totals.Delta.String(),
		"warnings", len(warnings),
	)
	for _, kc := range diagnostics.Summary(warnings) {
		logger.Warn("data warnings", "kind", kc.Kind, "count", kc.Count)
	}

	return &Result{
		RunID:    runID,
		Accounts: svc,
		Resolved: resolved,
		Report:   rep,
		Warnings: warnings,
	}, nil
}

// reportUnknown warns about opening balances and movements whose code is
// not in the chart. Their amounts take no part in the report.
func reportUnknown(svc *accounts.Service, openingTable string, opening map[string]decimal.Decimal,
	journalTable string, movements map[string]model.Movement, warn *diagnostics.Collector) {
	var codes []string
	for code := range opening {
		if !svc.Exists(code) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		warn.Add(diagnostics.Warning{
			Kind: diagnostics.KindUnknownAccount, Table: openingTable, Code: code,
			Detail: "opening balance for an account not in the chart; ignored",
			Amount: opening[code],
		})
	}

	codes = codes[:0]
	for code := range movements {
		if !svc.Exists(code) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		m := movements[code]
		warn.Add(diagnostics.Warning{
			Kind: diagnostics.KindUnknownAccount, Table: journalTable, Code: code,
			Detail: fmt.Sprintf("journal lines for an account not in the chart (debit %s, credit %s); ignored", m.Debit, m.Credit),
			Amount: m.Debit.Sub(m.Credit),
		})
	}
}
