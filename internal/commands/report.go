package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/laporan/internal/config"
	"github.com/cleared-dev/laporan/internal/diagnostics"
	"github.com/cleared-dev/laporan/internal/engine"
	"github.com/cleared-dev/laporan/internal/export"
	"github.com/cleared-dev/laporan/internal/journal"
	"github.com/cleared-dev/laporan/internal/logging"
	"github.com/cleared-dev/laporan/internal/report"
)

// ErrUnbalanced is returned under --strict when assets differ from
// liabilities plus equity.
var ErrUnbalanced = errors.New("balance sheet does not balance")

type reportOptions struct {
	dir, chart, opening, journal string
	start, end                   string
	company, period              string
	configPath                   string
	xlsx, csv, html, pdf         string
	gotenbergURL                 string
	warningsLog                  string
	strict                       bool
}

func newReportCommand() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the income statement and balance sheet",
		Example: `  laporan report --dir ./data --start 2025-01-01 --end 2025-01-31
  laporan report --coa COA.xlsx --opening "Saldo Awal.xlsx" --journal Jurnal.xlsx --xlsx laporan.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.dir, "dir", "", "directory holding the input files, matched by name")
	f.StringVar(&opts.chart, "coa", "", "chart of accounts file")
	f.StringVar(&opts.opening, "opening", "", "opening balances file")
	f.StringVar(&opts.journal, "journal", "", "journal file")
	f.StringVar(&opts.start, "start", "", "first posting date to include")
	f.StringVar(&opts.end, "end", "", "last posting date to include")
	f.StringVar(&opts.company, "company", "", "company name (default from config)")
	f.StringVar(&opts.period, "period", "", "period label (default from config or the date range)")
	f.StringVar(&opts.configPath, "config", "", "config file (default laporan.yaml in --dir or the working directory)")
	f.StringVar(&opts.xlsx, "xlsx", "", "also write an XLSX workbook")
	f.StringVar(&opts.csv, "csv", "", "also write a CSV file")
	f.StringVar(&opts.html, "html", "", "also write an HTML document")
	f.StringVar(&opts.pdf, "pdf", "", "also write a PDF through Gotenberg")
	f.StringVar(&opts.gotenbergURL, "gotenberg-url", "http://127.0.0.1:3000", "Gotenberg base URL for --pdf")
	f.StringVar(&opts.warningsLog, "warnings-log", "", "append warnings to this CSV log")
	f.BoolVar(&opts.strict, "strict", false, "exit non-zero when the balance sheet does not balance")

	return cmd
}

func runReport(ctx context.Context, opts reportOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logCfg, err := logging.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.New(stderr, logCfg)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	rng, err := journal.ParseRange(opts.start, opts.end)
	if err != nil {
		return err
	}
	fm, err := export.NewFormatter(cfg.Format.Locale, cfg.Format.Currency)
	if err != nil {
		return err
	}

	res, err := engine.New(cfg, logger).Run(ctx, engine.Inputs{
		Dir:         opts.dir,
		ChartPath:   opts.chart,
		OpeningPath: opts.opening,
		JournalPath: opts.journal,
		Range:       rng,
	})
	if err != nil {
		return err
	}

	company := firstNonEmpty(opts.company, cfg.Company.Name)
	period := firstNonEmpty(opts.period, cfg.Company.Period, periodLabel(rng))
	doc := res.Report.Document("Laporan Keuangan", company, period)

	width := 80
	if f, ok := stdout.(*os.File); ok {
		width = export.TerminalWidth(f, width)
	}
	if err := (&export.TextRenderer{Width: width, Format: fm}).Render(stdout, doc); err != nil {
		return fmt.Errorf("printing report: %w", err)
	}

	html := &export.HTMLRenderer{Format: fm}
	outputs := []struct {
		path string
		r    export.Renderer
	}{
		{opts.xlsx, export.XLSXRenderer{}},
		{opts.csv, export.CSVRenderer{}},
		{opts.html, html},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := export.WriteFile(o.path, o.r, doc); err != nil {
			return err
		}
		logger.Info("export written", "run_id", res.RunID, "file", o.path)
	}
	if opts.pdf != "" {
		if err := writePDF(ctx, opts.pdf, opts.gotenbergURL, html, doc); err != nil {
			return err
		}
		logger.Info("export written", "run_id", res.RunID, "file", opts.pdf)
	}

	printWarnings(stderr, res.Warnings)
	if opts.warningsLog != "" && len(res.Warnings) > 0 {
		if err := diagnostics.Append(opts.warningsLog, res.RunID, time.Now(), res.Warnings); err != nil {
			return err
		}
	}

	if opts.strict && !res.Report.Totals.Balanced() {
		return fmt.Errorf("%w: difference %s", ErrUnbalanced, fm.Money(res.Report.Totals.Delta))
	}
	return nil
}

func writePDF(ctx context.Context, path, url string, html *export.HTMLRenderer, doc report.Document) error {
	client := export.NewGotenbergClient(url)
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	r := &export.PDFRenderer{Client: client, HTML: html}
	if err := r.RenderContext(ctx, f, doc); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}

// loadConfig reads --config, else laporan.yaml from --dir or the working
// directory, else the defaults. --company overrides the configured name.
func loadConfig(opts reportOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		for _, dir := range []string{opts.dir, "."} {
			if dir == "" {
				continue
			}
			candidate := filepath.Join(dir, config.FileName)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("checking config: %w", err)
			}
		}
	}
	if path == "" {
		return config.Default(""), nil
	}
	return config.Load(path)
}

func periodLabel(rng *journal.DateRange) string {
	if rng == nil {
		return ""
	}
	const layout = "02/01/2006"
	switch {
	case rng.Start.IsZero():
		return "s.d. " + rng.End.Format(layout)
	case rng.End.IsZero():
		return "sejak " + rng.Start.Format(layout)
	}
	return rng.Start.Format(layout) + " s.d. " + rng.End.Format(layout)
}

func printWarnings(w io.Writer, warnings []diagnostics.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\nPeringatan (%d):\n", len(warnings))
	for _, warn := range warnings {
		fmt.Fprintf(w, "  - %s\n", warn)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
