package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/catalog/internal/catalog"
	"github.com/five82/catalog/internal/render"
)

// renderMain renders header, command bar, body and footer.
func (m Model) renderMain() string {
	body := m.renderBody(max(m.height-chromeLines, 1))
	return strings.Join([]string{
		m.renderHeader(),
		m.renderCommandBar(),
		body,
		m.renderFooter(),
	}, "\n")
}

// renderHeader renders the title, load state, counts and active filters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	snap := m.store.Snapshot()

	parts := []string{bg.Render("catalog", styles.Logo)}

	switch {
	case m.loading && snap.Pending():
		parts = append(parts, bg.Render("Loading catalog...", styles.WarningText.Bold(true)))
	case m.loading:
		parts = append(parts, bg.Render("Reloading...", styles.WarningText))
	case snap.Failed():
		parts = append(parts, bg.Render("● Load failed", styles.DangerText))
	default:
		parts = append(parts, bg.Render("● Loaded", styles.SuccessText))
	}

	if !snap.Pending() {
		parts = append(parts,
			bg.Render("Records:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d/%d", m.recordCount(), len(snap.Records)), styles.Text))
	}

	parts = append(parts,
		bg.Render("Category:", styles.MutedText)+bg.Space()+
			bg.Render(categoryLabel(m.category), styles.AccentText))

	if q := strings.TrimSpace(m.query.Value()); q != "" && m.width >= LayoutNarrowWidth {
		parts = append(parts, bg.Render("/"+truncate(q, 24), styles.InfoText))
	}

	return m.bar(styles, bg.Join(parts, bg.Spaces(2)))
}

// renderCommandBar renders the key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	colon := bg.Sep(":")

	type hint struct{ key, desc string }
	hints := []hint{{"esc", "Done"}, {"ctrl+u", "Clear"}}
	if !m.searching {
		hints = []hint{
			{"/", "Search"},
			{"c", "Category"},
			{"j/k", "Navigate"},
			{"o", "Link"},
			{"r", "Reload"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(hints)+1)
	for _, h := range hints {
		segments = append(segments,
			bg.Render(h.key, styles.AccentText)+colon+bg.Render(h.desc, styles.MutedText))
	}
	if m.width >= LayoutCompactWidth {
		segments = append(segments,
			bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText),
			bg.Render("L", styles.AccentText)+colon+bg.Render(m.layoutLabel(), styles.FaintText))
	}

	return m.bar(styles, bg.Join(segments, bg.Spaces(2)))
}

// bar renders a one-line padded bar, cutting content that does not fit
// instead of wrapping it.
func (m Model) bar(styles Styles, content string) string {
	inner := max(m.width-2, 1)
	return styles.Header.Width(m.width).Render(ansi.Truncate(content, inner, ""))
}

// renderFooter shows the query input while searching, the selected
// document link after "o", or the load status.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.searching {
		return bg.FillLine(m.query.View(), m.width)
	}

	if m.showLink {
		row, ok := m.selectedRecordRow()
		if !ok || row.Card.Link == "" {
			return bg.FillLine(bg.Render(render.NoDocument, styles.MutedText), m.width)
		}
		label := truncateMiddle(row.Card.Link, max(m.width-4, 8))
		link := ansi.SetHyperlink(row.Card.Link) + styles.Link.Render(label) + ansi.ResetHyperlink()
		return bg.FillLine(bg.Render(render.DownloadIcon, styles.AccentText)+bg.Space()+link, m.width)
	}

	snap := m.store.Snapshot()
	var status string
	switch {
	case snap.Failed():
		status = bg.Render(truncateMiddle(snap.LastError.Error(), max(m.width-2, 8)), styles.DangerText)
	case snap.Loaded:
		status = bg.Render("Loaded "+snap.LoadedAt.Format("15:04:05")+" from "+
			truncateMiddle(m.location(), max(m.width-24, 8)), styles.FaintText)
	default:
		status = bg.Render(truncateMiddle(m.location(), max(m.width-2, 8)), styles.FaintText)
	}
	return bg.FillLine(status, m.width)
}

// renderBody renders the surface in the wide or compact layout.
func (m Model) renderBody(height int) string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)

	var lines []string
	switch {
	case len(m.surface.Rows) == 0:
		lines = []string{bg.Render(center("Loading catalog...", m.width), styles.WarningText)}
	case m.surface.Notice():
		lines = m.renderNotice(m.surface.Rows[0], bg, styles)
	case m.compact():
		lines = m.renderCards(bg, styles)
	default:
		lines = m.renderTable(bg, styles)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = bg.FillLine(line, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderNotice(row render.Row, bg BgStyle, styles Styles) []string {
	style := styles.MutedText
	if row.Kind == render.RowError {
		style = styles.DangerText
	}
	var lines []string
	if !m.compact() {
		lines = append(lines, m.headingLine(m.columnWidths(), styles))
	}
	return append(lines, bg.Render(center(row.Notice, m.width), style))
}

// columnWidths sizes the four wide columns for the current page of rows.
func (m Model) columnWidths() [render.Columns]int {
	widths := [render.Columns]int{}
	for i, h := range render.Headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, row := range m.pageRows() {
		if row.Kind != render.RowRecord {
			continue
		}
		widths[0] = max(widths[0], ansi.StringWidth(row.Wide[0].Text))
		widths[2] = max(widths[2], ansi.StringWidth(row.Wide[2].Text))
	}
	widths[0] = min(widths[0], codeColumnMax)
	widths[2] = min(widths[2], colourColumnMax)
	widths[3] = docColumnWidth

	// The table has one leading space and a gap between columns.
	used := 1 + widths[0] + widths[2] + widths[3] + columnGap*(render.Columns-1)
	widths[1] = max(m.width-used, 8)
	return widths
}

func (m Model) headingLine(widths [render.Columns]int, styles Styles) string {
	cells := make([]string, render.Columns)
	for i, h := range render.Headers {
		cells[i] = fit(h, widths[i])
	}
	gap := strings.Repeat(" ", columnGap)
	return styles.Heading.Render(" " + strings.Join(cells, gap))
}

// renderTable renders one line per record with a heading line.
func (m Model) renderTable(bg BgStyle, styles Styles) []string {
	widths := m.columnWidths()
	lines := []string{m.headingLine(widths, styles)}
	gap := strings.Repeat(" ", columnGap)

	for i, row := range m.pageRows() {
		selected := m.offset+i == m.selectedRow
		cells := make([]string, render.Columns)
		for c, cell := range row.Wide {
			text := cell.Text
			if cell.Link != "" {
				text = render.DownloadIcon + " " + cell.Text
			}
			cells[c] = fit(text, widths[c])
		}
		if selected {
			lines = append(lines, styles.Selected.Width(m.width).Render(" "+strings.Join(cells, gap)))
			continue
		}
		docStyle := styles.FaintText
		if row.Wide[3].Link != "" {
			docStyle = styles.AccentText
		}
		lines = append(lines, bg.Space()+
			bg.Render(cells[0], styles.AccentText)+bg.Spaces(columnGap)+
			bg.Render(cells[1], styles.Text)+bg.Spaces(columnGap)+
			bg.Render(cells[2], styles.MutedText)+bg.Spaces(columnGap)+
			bg.Render(cells[3], docStyle))
	}
	return lines
}

// renderCards renders each record as a labelled card.
func (m Model) renderCards(bg BgStyle, styles Styles) []string {
	labelWidth := 0
	for _, h := range render.Headers[:3] {
		labelWidth = max(labelWidth, ansi.StringWidth(h))
	}
	valueWidth := max(m.width-labelWidth-4, 4)

	var lines []string
	for i, row := range m.pageRows() {
		selected := m.offset+i == m.selectedRow
		marker := bg.Space()
		if selected {
			marker = bg.Render("▌", styles.AccentText)
		}
		field := func(label, value string, style lipgloss.Style) string {
			return marker + bg.Render(fit(label, labelWidth), styles.MutedText) + bg.Spaces(2) +
				bg.Render(truncate(value, valueWidth), style)
		}
		card := row.Card
		lines = append(lines,
			field(render.Headers[0], card.Code, styles.AccentText.Bold(selected)),
			field(render.Headers[1], card.Name, styles.Text.Bold(selected)),
			field(render.Headers[2], card.Colour, styles.MutedText),
		)
		if card.Link != "" {
			lines = append(lines, marker+bg.Render(render.DownloadIcon+" "+render.DownloadLabel, styles.AccentText))
		} else {
			lines = append(lines, marker)
		}
		lines = append(lines, "")
	}
	return lines
}

// pageRows returns the record rows currently scrolled into view.
func (m Model) pageRows() []render.Row {
	count := m.recordCount()
	if count == 0 {
		return nil
	}
	start := clamp(m.offset, 0, count-1)
	end := min(start+m.rowsPerPage(), count)
	return m.surface.Rows[start:end]
}

func (m Model) layoutLabel() string {
	if m.layout == "" {
		return "auto"
	}
	return m.layout
}

// categoryLabel renders the sentinel as "All" so it reads differently from
// a real category value.
func categoryLabel(category string) string {
	if catalog.IsAll(category) {
		return "All"
	}
	return category
}
