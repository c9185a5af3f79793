package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// truncate shortens value to at most limit display cells, ending in an
// ellipsis when anything was cut.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return ansi.Truncate(value, 1, "")
	}
	return ansi.Truncate(value, limit, ellipsis)
}

// truncateMiddle keeps both ends of value, which suits URLs and paths where
// the host and the file name matter most.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	width := ansi.StringWidth(value)
	if width <= limit {
		return value
	}
	if limit <= 3 {
		return truncate(value, limit)
	}
	keep := limit - ansi.StringWidth(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return ansi.Cut(value, 0, prefix) + ellipsis + ansi.Cut(value, width-suffix, width)
}

// fit truncates value to width cells and pads it with spaces to exactly
// width cells.
func fit(value string, width int) string {
	if width <= 0 {
		return ""
	}
	out := truncate(value, width)
	if pad := width - ansi.StringWidth(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}

// center pads value on both sides to width cells.
func center(value string, width int) string {
	value = truncate(value, width)
	gap := width - ansi.StringWidth(value)
	if gap <= 0 {
		return value
	}
	left := gap / 2
	return strings.Repeat(" ", left) + value + strings.Repeat(" ", gap-left)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
