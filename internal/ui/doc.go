// Package ui provides the Bubble Tea view controller for the catalog viewer.
//
// The Model owns the filter inputs (a free-text query and a category
// selector) and the state.Store holding the master collection. Init issues
// the single asynchronous load; until it completes the body shows a loading
// state. Whenever the query or the category changes, the Model filters the
// full master collection again with catalog.Filter and replaces the
// rendered surface with the Renderer's output, so the visible rows never
// depend on a previous filter result.
//
// A failed load empties the store and shows the single error row. Later
// filter changes then show the "No records found" placeholder, and "r"
// issues a fresh load.
//
// Records render as a four-column table when the terminal is at least
// LayoutCompactWidth columns wide and as stacked cards otherwise; the "L"
// key pins either layout. The "o" key prints the selected record's document
// as an OSC 8 hyperlink in the footer.
//
// Files:
//
//   - app.go: Model, Update, key handling, load commands and Run
//   - view.go: header, command bar, table, cards and footer
//   - help.go: help overlay built from the key map
//   - keys.go: bindings
//   - theme.go: palettes and lipgloss styles
//   - style_helpers.go: BgStyle for gap-free coloured bars
//   - strings.go: display-width aware truncation and padding
//   - layout.go: width thresholds and line budgets
package ui
