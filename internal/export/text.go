package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/cleared-dev/laporan/internal/report"
)

const (
	defaultWidth = 80
	minWidth     = 48
	maxWidth     = 120
)

// TerminalWidth returns the width of f when it is a terminal, otherwise
// fallback. The result is clamped to a readable range.
func TerminalWidth(f *os.File, fallback int) int {
	w := fallback
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			w = tw
		}
	}
	return min(max(w, minWidth), maxWidth)
}

// TextRenderer writes a plain-text statement for the terminal.
type TextRenderer struct {
	Width  int
	Format *Formatter
}

// Render writes doc.
func (r *TextRenderer) Render(w io.Writer, doc report.Document) error {
	width := r.Width
	if width <= 0 {
		width = defaultWidth
	}
	fm := r.Format
	if fm == nil {
		fm = DefaultFormatter()
	}

	amountWidth := 18
	for _, st := range doc.Statements {
		for _, tot := range st.Totals {
			amountWidth = max(amountWidth, utf8.RuneCountInString(fm.Money(tot.Amount))+2)
		}
	}
	labelWidth := width - amountWidth

	bw := bufio.NewWriter(w)
	line := func(label, amount string) {
		fmt.Fprintf(bw, "%s%*s\n", pad(label, labelWidth), amountWidth, amount)
	}
	rule := func(ch string) {
		fmt.Fprintf(bw, "%s%*s\n", strings.Repeat(" ", labelWidth), amountWidth, strings.Repeat(ch, amountWidth-2))
	}

	for i, st := range doc.Statements {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		for _, h := range []string{doc.Company, st.Title, doc.Period} {
			if h != "" {
				fmt.Fprintln(bw, center(h, width))
			}
		}
		fmt.Fprintln(bw)

		for _, sec := range st.Sections {
			fmt.Fprintln(bw, sec.Name)
			for _, row := range sec.Rows {
				label := "  " + row.Code + "  " + row.Label
				if row.Injected {
					label += " *"
				}
				line(label, fm.Money(row.Amount))
			}
			rule("-")
			line("  Total "+sec.Name, fm.Money(sec.Subtotal))
			fmt.Fprintln(bw)
		}

		for _, tot := range st.Totals {
			line(strings.ToUpper(tot.Label), fm.Money(tot.Amount))
			if tot.Grand {
				rule("=")
			}
		}
	}

	if hasInjected(doc) {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "* laba (rugi) periode berjalan dari Laporan Laba Rugi")
	}
	return bw.Flush()
}

func hasInjected(doc report.Document) bool {
	for _, st := range doc.Statements {
		for _, sec := range st.Sections {
			for _, row := range sec.Rows {
				if row.Injected {
					return true
				}
			}
		}
	}
	return false
}

// pad truncates or right-pads s to n runes.
func pad(s string, n int) string {
	c := utf8.RuneCountInString(s)
	if c > n-1 {
		r := []rune(s)
		return string(r[:max(n-2, 0)]) + "… "
	}
	return s + strings.Repeat(" ", n-c)
}

func center(s string, width int) string {
	c := utf8.RuneCountInString(s)
	if c >= width {
		return s
	}
	return strings.Repeat(" ", (width-c)/2) + s
}
