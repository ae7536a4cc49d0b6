package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/laporan/internal/accounts"
	"github.com/cleared-dev/laporan/internal/config"
)

// Template file names written by init; report --dir finds them by name.
const (
	chartFile   = "coa.csv"
	openingFile = "saldo_awal.csv"
	journalFile = "jurnal.csv"
)

func newInitCommand() *cobra.Command {
	var company string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write laporan.yaml and blank input templates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, company); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized laporan workspace at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name shown on the reports")

	return cmd
}

func runInit(dir, company string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	if err := config.Save(cfgPath, config.Default(company)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	chart := accounts.DefaultChart()

	f, err := os.Create(filepath.Join(dir, chartFile))
	if err != nil {
		return fmt.Errorf("creating chart of accounts: %w", err)
	}
	if err := accounts.WriteAccounts(f, chart); err != nil {
		f.Close()
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	opening := [][]string{{"kode_akun", "nama_akun", "saldo_awal"}}
	for _, a := range chart {
		if !a.Header {
			opening = append(opening, []string{a.Code, a.Name, "0"})
		}
	}
	if err := writeCSV(filepath.Join(dir, openingFile), opening); err != nil {
		return fmt.Errorf("writing opening balances: %w", err)
	}

	journal := [][]string{{"tanggal", "kode_akun", "keterangan", "debit", "kredit"}}
	if err := writeCSV(filepath.Join(dir, journalFile), journal); err != nil {
		return fmt.Errorf("writing journal: %w", err)
	}
	return nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := csv.NewWriter(f).WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
