package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which records render as cards.
	LayoutCompactWidth = 100

	// LayoutNarrowWidth is the width below which header details collapse.
	LayoutNarrowWidth = 60
)

// Fixed line budgets.
const (
	// chromeLines are the header, command bar and footer.
	chromeLines = 3

	// cardLines is the height of one compact card including its spacer.
	cardLines = 5

	// Wide-table column limits, in display cells.
	codeColumnMax   = 16
	colourColumnMax = 18
	docColumnWidth  = 12
	columnGap       = 2
)
