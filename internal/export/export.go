// Package export renders a report.Document as text, XLSX, CSV, HTML or,
// through Gotenberg, PDF.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cleared-dev/laporan/internal/report"
)

// Renderer writes a document in one output format.
type Renderer interface {
	Render(w io.Writer, doc report.Document) error
}

// WriteFile renders doc to path.
func WriteFile(path string, r Renderer, doc report.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := r.Render(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Formatter renders amounts as whole currency units with locale grouping.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter creates a Formatter for a BCP 47 locale such as "id" or
// "en-US". currency is prefixed to Money values and may be empty.
func NewFormatter(locale, currency string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), currency: currency}, nil
}

// DefaultFormatter uses Indonesian grouping and the "Rp" prefix.
func DefaultFormatter() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.Indonesian), currency: "Rp"}
}

// Number rounds d half away from zero and groups thousands:
// 1234567.5 -> "1.234.568" in Indonesian.
func (f *Formatter) Number(d decimal.Decimal) string {
	return f.printer.Sprintf("%d", d.Round(0).IntPart())
}

// Money is Number with the currency prefix: "Rp 1.234.568".
func (f *Formatter) Money(d decimal.Decimal) string {
	if f.currency == "" {
		return f.Number(d)
	}
	return f.currency + " " + f.Number(d)
}
