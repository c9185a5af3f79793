// Package render turns records into display rows.
//
// The Renderer is pure: it produces a Surface that replaces whatever was
// shown before. Each record row carries both the wide (one cell per column)
// and the compact (card) representation; the display medium picks one.
package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/catalog/internal/catalog"
)

// Kind distinguishes record rows from notice rows.
type Kind int

const (
	RowRecord Kind = iota
	RowEmpty
	RowError
)

// Columns is the number of wide-layout columns; notice rows span all of them.
const Columns = 4

// Headers are the wide-layout column titles.
var Headers = [Columns]string{"Code", "Name", "Colour", "Document"}

const (
	EmptyNotice   = "No records found"
	ErrorNotice   = "Failed to load products. Please refresh."
	NoDocument    = "N/A"
	DownloadLabel = "Download"
	DownloadIcon  = "⬇"
)

// Cell is one wide-layout cell. Link is set for the download action.
type Cell struct {
	Text string
	Link string
}

// Card is the compact-layout representation of a record.
type Card struct {
	Code   string
	Name   string
	Colour string
	Link   string // empty when the record has no document
}

// Row is one display row.
type Row struct {
	Kind   Kind
	Wide   []Cell // Columns cells for RowRecord, nil for notices
	Card   Card
	Notice string // text for RowEmpty and RowError
	Span   int    // columns covered by a notice
}

// Surface is the full display content.
type Surface struct {
	Rows []Row
}

// Notice reports whether the surface is a single placeholder or error row.
func (s Surface) Notice() bool {
	return len(s.Rows) == 1 && s.Rows[0].Kind != RowRecord
}

// LinkResolver turns a record's document reference into a usable link.
// *source.Client implements it.
type LinkResolver interface {
	ResolveLink(link string) string
}

// Renderer builds surfaces.
type Renderer struct {
	links LinkResolver
}

// New returns a Renderer. A nil resolver leaves links as they are.
func New(links LinkResolver) Renderer {
	return Renderer{links: links}
}

// Render returns one row per record in input order, or a single "no
// records" row when records is empty.
func (r Renderer) Render(records []catalog.Record) Surface {
	if len(records) == 0 {
		return Surface{Rows: []Row{noticeRow(RowEmpty, EmptyNotice)}}
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, r.recordRow(rec))
	}
	return Surface{Rows: rows}
}

// Failure returns the single error row shown when the catalogue failed to
// load.
func (r Renderer) Failure() Surface {
	return Surface{Rows: []Row{noticeRow(RowError, ErrorNotice)}}
}

func (r Renderer) recordRow(rec catalog.Record) Row {
	code := Sanitize(rec.Code)
	name := Sanitize(rec.Name)
	colour := Sanitize(rec.Colour)
	link := r.link(rec.PDF)

	doc := Cell{Text: NoDocument}
	if link != "" {
		doc = Cell{Text: DownloadLabel, Link: link}
	}
	return Row{
		Kind: RowRecord,
		Wide: []Cell{{Text: code}, {Text: name}, {Text: colour}, doc},
		Card: Card{Code: code, Name: name, Colour: colour, Link: link},
	}
}

func (r Renderer) link(pdf string) string {
	clean := strings.TrimSpace(Sanitize(pdf))
	if clean == "" {
		return ""
	}
	if r.links != nil {
		clean = Sanitize(r.links.ResolveLink(clean))
	}
	return clean
}

func noticeRow(kind Kind, text string) Row {
	return Row{Kind: kind, Notice: text, Span: Columns}
}

// Sanitize strips terminal escape sequences and control characters from an
// attribute value. Tabs and line breaks become single spaces so a value
// always stays inside its cell.
func Sanitize(value string) string {
	if value == "" {
		return ""
	}
	stripped := ansi.Strip(value)
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r), isBidiControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isBidiControl matches the explicit directional formatting characters,
// which can reorder the rest of a terminal line.
func isBidiControl(r rune) bool {
	return (r >= '\u202a' && r <= '\u202e') || (r >= '\u2066' && r <= '\u2069')
}
