package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tableMaxWidth caps the total rendered table width; 0 means unbounded.
// Set from the table_width config key at startup.
var tableMaxWidth int

// SetTableWidth caps the total width of rendered tables
func SetTableWidth(w int) {
	tableMaxWidth = w
}

// TableColumn represents a column in the table
type TableColumn struct {
	Header string
	Width  int
	Align  string // "left", "right", "center"
}

// Table represents a data table
type Table struct {
	Columns []TableColumn
	Rows    [][]string
}

// NewTable creates a new table with specified columns
func NewTable(columns []TableColumn) *Table {
	return &Table{
		Columns: columns,
		Rows:    [][]string{},
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells []string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table as a string
func (t *Table) Render() string {
	if len(t.Columns) == 0 {
		return ""
	}

	var builder strings.Builder

	// Calculate actual column widths based on content
	colWidths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		colWidths[i] = len(col.Header)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) && len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	// Apply minimum widths from column specs
	for i, col := range t.Columns {
		if col.Width > colWidths[i] {
			colWidths[i] = col.Width
		}
	}

	// Shrink the widest column until the table fits the configured width.
	// Columns never go below their header width.
	if tableMaxWidth > 0 {
		for totalWidth(colWidths) > tableMaxWidth {
			widest := 0
			for i, w := range colWidths {
				if w > colWidths[widest] {
					widest = i
				}
			}
			if colWidths[widest] <= len(t.Columns[widest].Header) {
				break
			}
			colWidths[widest]--
		}
	}

	// Render header
	headerParts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headerParts[i] = padString(col.Header, colWidths[i], "left")
	}
	builder.WriteString(StyleTableHeader.Render(strings.Join(headerParts, "  ")))
	builder.WriteString("\n")

	// Render separator
	separatorParts := make([]string, len(t.Columns))
	for i := range t.Columns {
		separatorParts[i] = strings.Repeat("─", colWidths[i])
	}
	builder.WriteString(StyleTableBorder.Render(strings.Join(separatorParts, "  ")))
	builder.WriteString("\n")

	// Render rows with alternating styles
	for idx, row := range t.Rows {
		rowParts := make([]string, len(t.Columns))
		for i, cell := range row {
			if i < len(t.Columns) {
				align := t.Columns[i].Align
				if align == "" {
					align = "left"
				}
				rowParts[i] = padString(truncate(cell, colWidths[i]), colWidths[i], align)
			}
		}

		var rowStyle lipgloss.Style
		if idx%2 == 0 {
			rowStyle = StyleTableRow
		} else {
			rowStyle = StyleTableRowAlt
		}

		builder.WriteString(rowStyle.Render(strings.Join(rowParts, "  ")))
		builder.WriteString("\n")
	}

	return builder.String()
}

// totalWidth is the rendered width of the table: column widths plus the
// two-space gaps between them
func totalWidth(colWidths []int) int {
	total := 2 * (len(colWidths) - 1)
	for _, w := range colWidths {
		total += w
	}
	return total
}

// padString pads a string to the specified width with alignment
func padString(s string, width int, align string) string {
	if len(s) >= width {
		return s
	}

	padding := width - len(s)

	switch align {
	case "right":
		return strings.Repeat(" ", padding) + s
	case "center":
		leftPad := padding / 2
		rightPad := padding - leftPad
		return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
	default: // "left"
		return s + strings.Repeat(" ", padding)
	}
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
