package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteText writes the wide layout as a tab-aligned plain-text table.
// Notice rows are written as a single line under the header.
func WriteText(w io.Writer, s Surface) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(Headers[:], "\t")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range s.Rows {
		var line string
		if row.Kind == RowRecord {
			cells := make([]string, 0, len(row.Wide))
			for _, cell := range row.Wide {
				text := cell.Text
				if cell.Link != "" {
					text = cell.Link
				}
				cells = append(cells, text)
			}
			line = strings.Join(cells, "\t")
		} else {
			line = row.Notice
		}
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush table: %w", err)
	}
	return nil
}
