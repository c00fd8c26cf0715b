// Package render turns aggregates into HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"countrystats/internal/model"
)

// IdleHint is shown in the results region before any trigger has run.
const IdleHint = `Use the search form above to find countries or click "All Countries" to see global statistics.`

//go:embed templates/*.gohtml
var templateFS embed.FS

// PageData feeds the full page template.
type PageData struct {
	Query   string
	Results template.HTML
	Error   string
	Idle    bool
}

type countryRow struct {
	Name       string
	Population int64
}

type fragmentData struct {
	Summary   model.AggregateResult
	Countries []countryRow
}

// Renderer is safe for concurrent use.
type Renderer struct {
	printer *message.Printer
	tmpl    *template.Template
}

// New parses the embedded templates and binds number formatting to locale,
// a BCP 47 tag such as "en-US" or "de-DE".
func New(locale string) (*Renderer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}

	r := &Renderer{printer: message.NewPrinter(tag)}
	tmpl, err := template.New("render").
		Funcs(template.FuncMap{
			"num":      r.formatNumber,
			"idleHint": func() string { return IdleHint },
		}).
		ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Fragment renders the summary lines, the per-country table in input order
// and the per-region table in summary order.
func (r *Renderer) Fragment(summary model.AggregateResult, countries []model.Country) (template.HTML, error) {
	rows := make([]countryRow, 0, len(countries))
	for _, c := range countries {
		rows = append(rows, countryRow{Name: c.CommonName(), Population: int64(c.Population)})
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "fragment", fragmentData{Summary: summary, Countries: rows}); err != nil {
		return "", fmt.Errorf("render fragment: %w", err)
	}
	// The fragment template escapes every interpolated value.
	return template.HTML(buf.String()), nil
}

// Page renders the whole document around an already rendered fragment.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

// formatNumber groups thousands the way the locale does, e.g. 6,030,000.
func (r *Renderer) formatNumber(v any) string {
	return r.printer.Sprintf("%d", v)
}
