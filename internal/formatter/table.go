// File: internal/formatter/table.go
package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder(), true, false).
			Padding(0, 2)
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

type Table struct {
	Headers      []string
	Rows         [][]string
	columnWidths []int
}

// Creates a new table with the given headers
func NewTable(headers []string) *Table {
	t := &Table{
		Headers: headers,
		Rows:    [][]string{},
	}
	t.calculateColumnWidths()
	return t
}

func (t *Table) AddRow(row []string) {
	t.Rows = append(t.Rows, row)
	t.calculateColumnWidths()
}

// Widths are measured in terminal cells so non-ASCII object names stay aligned
func (t *Table) calculateColumnWidths() {
	t.columnWidths = make([]int, len(t.Headers))
	for i, h := range t.Headers {
		t.columnWidths[i] = lipgloss.Width(h)
	}

	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(t.columnWidths) {
				t.columnWidths[i] = max(t.columnWidths[i], lipgloss.Width(cell))
			}
		}
	}
}

func (t *Table) String() string {
	if len(t.Headers) == 0 {
		return ""
	}

	var sb strings.Builder
	t.writeBorder(&sb)
	sb.WriteString("\n")
	t.writeRow(&sb, t.Headers)
	t.writeBorder(&sb)
	sb.WriteString("\n")
	for _, row := range t.Rows {
		t.writeRow(&sb, row)
	}
	t.writeBorder(&sb)

	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, row []string) {
	sb.WriteString("| ")
	for i, width := range t.columnWidths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", width-lipgloss.Width(cell)))
		sb.WriteString(" | ")
	}
	sb.WriteString("\n")
}

func (t *Table) writeBorder(sb *strings.Builder) {
	sb.WriteString("+")
	for _, width := range t.columnWidths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
}

func FormatHeaderSection(title string) string {
	return headerStyle.Render(title)
}

func FormatSectionTitle(title string) string {
	return sectionStyle.Render("-- " + title + " --")
}
