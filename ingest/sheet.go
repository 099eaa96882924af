package ingest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX flattens every sheet of a workbook into text: a "Sheet: name"
// header followed by the sheet's rows as CSV.
func extractXLSX(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("sheet %s: %w", sheet, err)
		}

		sb.WriteString("Sheet: ")
		sb.WriteString(sheet)
		sb.WriteByte('\n')
		for _, row := range rows {
			sb.WriteString(strings.Join(escapeCSVRow(row), ","))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}

	content := strings.TrimRight(sb.String(), "\n")
	if content == "" {
		return "", fmt.Errorf("workbook has no sheets")
	}
	return content, nil
}

// escapeCSVRow quotes cells containing commas, quotes or newlines.
func escapeCSVRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		if strings.ContainsAny(cell, ",\"\n") {
			cell = "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
		}
		out[i] = cell
	}
	return out
}
