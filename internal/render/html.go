package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Page describes a static HTML rendering of a surface.
type Page struct {
	Title    string
	Query    string
	Category string // empty when no category restriction applies
	Total    int    // size of the master collection
	Surface  Surface
}

type pageData struct {
	Page
	Headers  [Columns]string
	Rows     []Row
	Icon     string
	Filtered bool
	Visible  int
}

// WriteHTML writes page as a complete HTML document. Every value goes
// through html/template, so markup in record attributes is escaped and
// unsafe link schemes are neutralised.
func WriteHTML(w io.Writer, page Page) error {
	if page.Title == "" {
		page.Title = "Product Catalogue"
	}
	data := pageData{
		Page:     page,
		Headers:  Headers,
		Rows:     page.Surface.Rows,
		Icon:     DownloadIcon,
		Filtered: page.Query != "" || page.Category != "",
		Visible:  visibleRecords(page.Surface),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func visibleRecords(s Surface) int {
	n := 0
	for _, row := range s.Rows {
		if row.Kind == RowRecord {
			n++
		}
	}
	return n
}
