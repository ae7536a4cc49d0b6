package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/laporan/internal/report"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>{{.Doc.Title}}{{if .Doc.Company}} - {{.Doc.Company}}{{end}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11pt; margin: 2em; }
header, h2 { text-align: center; }
header p { margin: 0.2em 0; }
section.statement { page-break-after: always; }
table { width: 100%; border-collapse: collapse; margin-bottom: 1em; }
td { padding: 0.15em 0.4em; }
td.code { width: 6em; color: #555; }
td.amount { text-align: right; white-space: nowrap; }
tr.subtotal td { font-weight: bold; border-top: 1px solid #000; }
tr.grand td { font-weight: bold; border-top: 1px solid #000; border-bottom: 3px double #000; }
th { text-align: left; padding-top: 0.6em; }
</style>
</head>
<body>
{{- range .Doc.Statements}}
<section class="statement">
<header>
{{- if $.Doc.Company}}<p><strong>{{$.Doc.Company}}</strong></p>{{end}}
<h2>{{.Title}}</h2>
{{- if $.Doc.Period}}<p>{{$.Doc.Period}}</p>{{end}}
</header>
<table>
{{- range .Sections}}
<tr><th colspan="3">{{.Name}}</th></tr>
{{- range .Rows}}
<tr><td class="code">{{.Code}}</td><td>{{.Label}}{{if .Injected}} *{{end}}</td><td class="amount">{{money .Amount}}</td></tr>
{{- end}}
<tr class="subtotal"><td></td><td>Total {{.Name}}</td><td class="amount">{{money .Subtotal}}</td></tr>
{{- end}}
{{- range .Totals}}
<tr class="{{if .Grand}}grand{{else}}subtotal{{end}}"><td></td><td>{{.Label}}</td><td class="amount">{{money .Amount}}</td></tr>
{{- end}}
</table>
</section>
{{- end}}
</body>
</html>
`

// HTMLRenderer writes a standalone HTML document, also used as the PDF
// source.
type HTMLRenderer struct {
	Format *Formatter
}

// Render writes doc.
func (r *HTMLRenderer) Render(w io.Writer, doc report.Document) error {
	fm := r.Format
	if fm == nil {
		fm = DefaultFormatter()
	}
	tmpl, err := template.New("document").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return fm.Money(d) },
	}).Parse(documentTemplate)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	if err := tmpl.Execute(w, struct{ Doc report.Document }{doc}); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}

// RenderHTML returns doc as an HTML string.
func (r *HTMLRenderer) RenderHTML(doc report.Document) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
