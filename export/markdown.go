// Package export renders the canvas Markdown and the chat transcript into
// portable files: PNG, PDF, DOCX, XLSX, and JSON.
package export

import "strings"

// Table is a Markdown pipe table in row form.
type Table struct {
	Header []string
	Rows   [][]string
}

// FirstTable returns the first pipe table in the Markdown, if any. A table
// is a header row followed by a separator row of dashes, then zero or more
// data rows.
func FirstTable(markdown string) (*Table, bool) {
	lines := strings.Split(markdown, "\n")
	for i := 0; i+1 < len(lines); i++ {
		if !isTableRow(lines[i]) || !isSeparatorRow(lines[i+1]) {
			continue
		}

		t := &Table{Header: splitRow(lines[i])}
		for j := i + 2; j < len(lines) && isTableRow(lines[j]); j++ {
			row := splitRow(lines[j])
			// Ragged rows are padded so every row matches the header width.
			for len(row) < len(t.Header) {
				row = append(row, "")
			}
			t.Rows = append(t.Rows, row[:len(t.Header)])
		}
		return t, true
	}
	return nil, false
}

// tableExtent returns the number of lines the table starting at lines[start]
// occupies.
func tableExtent(lines []string, start int) int {
	if start+1 >= len(lines) || !isTableRow(lines[start]) || !isSeparatorRow(lines[start+1]) {
		return 0
	}
	n := 2
	for start+n < len(lines) && isTableRow(lines[start+n]) {
		n++
	}
	return n
}

func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "|") && strings.Count(trimmed, "|") >= 2
}

func isSeparatorRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !isTableRow(trimmed) {
		return false
	}
	for _, cell := range splitRow(trimmed) {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return false
		}
		for _, r := range cell {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}

// splitRow breaks "| a | b |" into its trimmed cells.
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	cells := strings.Split(trimmed, "|")
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// stripInline removes bold, italic, and inline-code markers from a line.
func stripInline(s string) string {
	replacer := strings.NewReplacer("**", "", "__", "", "`", "")
	s = replacer.Replace(s)
	// Lone asterisk emphasis is left alone: stripping single * risks
	// mangling multiplication and bullet glyphs.
	return s
}

// headingLevel returns the heading depth of a line, or 0 for body text.
func headingLevel(line string) int {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(trimmed) || trimmed[level] != ' ' {
		return 0
	}
	return level
}

// headingText strips the marker from a heading line.
func headingText(line string) string {
	trimmed := strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
}
