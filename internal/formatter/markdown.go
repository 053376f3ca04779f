// Package formatter tidies converted Markdown bodies.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatTables pads every GFM pipe table in content so its columns line up
// by display width. Lines outside tables are returned unchanged.
func FormatTables(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	var table []string

	flush := func() {
		if len(table) > 0 {
			out = append(out, alignTable(table)...)
			table = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1 {
			table = append(table, line)

			continue
		}

		flush()

		out = append(out, line)
	}

	flush()

	return strings.Join(out, "\n")
}

type alignment int

const (
	alignNone alignment = iota
	alignLeft
	alignCenter
	alignRight
)

func alignTable(rows []string) []string {
	// a header without a separator is not a table
	if len(rows) < 2 {
		return rows
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = splitRow(row)
	}

	aligns, ok := parseSeparator(cells[1])
	if !ok {
		return rows
	}

	colCount := 0
	for _, row := range cells {
		colCount = max(colCount, len(row))
	}

	widths := make([]int, colCount)
	for i := range widths {
		widths[i] = 3
	}

	for r, row := range cells {
		if r == 1 {
			continue
		}

		for c, cell := range row {
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}

	result := make([]string, len(cells))

	for r, row := range cells {
		var sb strings.Builder

		sb.WriteString("|")

		for c := 0; c < colCount; c++ {
			sb.WriteString(" ")

			if r == 1 {
				a := alignNone
				if c < len(aligns) {
					a = aligns[c]
				}

				sb.WriteString(separatorCell(a, widths[c]))
			} else {
				cell := ""
				if c < len(row) {
					cell = row[c]
				}

				sb.WriteString(runewidth.FillRight(cell, widths[c]))
			}

			sb.WriteString(" |")
		}

		result[r] = sb.String()
	}

	return result
}

// splitRow splits a pipe table row into trimmed cells, honouring escaped pipes.
func splitRow(row string) []string {
	row = strings.TrimSpace(row)
	row = strings.TrimPrefix(row, "|")

	if strings.HasSuffix(row, "|") && !strings.HasSuffix(row, `\|`) {
		row = row[:len(row)-1]
	}

	var cells []string

	var cur strings.Builder

	for i := 0; i < len(row); i++ {
		if row[i] == '\\' && i+1 < len(row) && row[i+1] == '|' {
			cur.WriteString(`\|`)
			i++

			continue
		}

		if row[i] == '|' {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()

			continue
		}

		cur.WriteByte(row[i])
	}

	return append(cells, strings.TrimSpace(cur.String()))
}

func parseSeparator(cells []string) ([]alignment, bool) {
	aligns := make([]alignment, len(cells))

	for i, cell := range cells {
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")

		dashes := strings.Trim(cell, ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}

		switch {
		case left && right:
			aligns[i] = alignCenter
		case left:
			aligns[i] = alignLeft
		case right:
			aligns[i] = alignRight
		}
	}

	return aligns, true
}

func separatorCell(a alignment, width int) string {
	switch a {
	case alignLeft:
		return ":" + strings.Repeat("-", width-1)
	case alignRight:
		return strings.Repeat("-", width-1) + ":"
	case alignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}
