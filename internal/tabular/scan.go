package tabular

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes a spreadsheet found in an input directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Scan returns the readable spreadsheets directly inside dir, sorted by name.
// Office lock files ("~$coa.xlsx") are skipped.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !r.Supports(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Hints lists filename keywords identifying each input table.
type Hints struct {
	Chart   []string
	Opening []string
	Journal []string
}

// DefaultHints matches the file names used by the upload form:
// "COA.xlsx", "Saldo Awal.xlsx", "Jurnal.xlsx".
func DefaultHints() Hints {
	return Hints{
		Chart:   []string{"coa", "akun", "chart", "perkiraan"},
		Opening: []string{"saldo", "opening"},
		Journal: []string{"jurnal", "journal", "ledger", "buku_besar"},
	}
}

// Discovered holds the paths picked by Discover. Empty means not found.
type Discovered struct {
	Chart   string
	Opening string
	Journal string
}

// Discover picks the chart, opening-balance and journal files in dir by
// matching normalized file names against hints. The first match in name
// order wins and a file is used for at most one table.
func (r *Registry) Discover(dir string, hints Hints) (Discovered, error) {
	files, err := r.Scan(dir)
	if err != nil {
		return Discovered{}, err
	}

	var d Discovered
	used := make(map[string]bool)
	pick := func(keywords []string) string {
		for _, f := range files {
			if used[f.Path] {
				continue
			}
			base := NormalizeHeader(strings.TrimSuffix(f.Name, filepath.Ext(f.Name)))
			for _, k := range keywords {
				if strings.Contains(base, NormalizeHeader(k)) {
					used[f.Path] = true
					return f.Path
				}
			}
		}
		return ""
	}
	// Opening first: "saldo_awal_akun.xlsx" should not be taken as the chart.
	d.Opening = pick(hints.Opening)
	d.Journal = pick(hints.Journal)
	d.Chart = pick(hints.Chart)
	return d, nil
}
