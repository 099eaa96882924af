package export

import (
	"archive/zip"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const sampleCanvas = `# Quarterly Summary

Revenue grew across all regions.

| Region | Revenue | Change |
|--------|---------|--------|
| North  | 1200    | +5%    |
| South  | 900     | -2%    |

Totals exclude returns.`

func TestFirstTable(t *testing.T) {
	table, ok := FirstTable(sampleCanvas)
	if !ok {
		t.Fatal("FirstTable() found no table")
	}
	wantHeader := []string{"Region", "Revenue", "Change"}
	for i, h := range wantHeader {
		if table.Header[i] != h {
			t.Errorf("Header[%d] = %q, want %q", i, table.Header[i], h)
		}
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0][0] != "North" || table.Rows[1][2] != "-2%" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestFirstTable_None(t *testing.T) {
	md := "# Title\n\nJust prose here.\n\n- a bullet | with a pipe"
	if _, ok := FirstTable(md); ok {
		t.Error("FirstTable() should not find a table in prose")
	}
}

func TestFirstTable_RaggedRows(t *testing.T) {
	md := "| a | b | c |\n|---|---|---|\n| 1 | 2 |\n"
	table, ok := FirstTable(md)
	if !ok {
		t.Fatal("FirstTable() found no table")
	}
	if len(table.Rows[0]) != 3 {
		t.Errorf("ragged row should be padded to header width, got %v", table.Rows[0])
	}
}

func TestCanvasToPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), FileNamePNG)
	if err := CanvasToPNG(sampleCanvas, out); err != nil {
		t.Fatalf("CanvasToPNG() error: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != DefaultImageWidth {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), DefaultImageWidth)
	}
}

func TestCanvasToPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), FileNamePDF)
	if err := CanvasToPDF(sampleCanvas, out); err != nil {
		t.Fatalf("CanvasToPDF() error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Error("output does not start with a PDF header")
	}
}

func TestCanvasToXLSX(t *testing.T) {
	out := filepath.Join(t.TempDir(), FileNameXLSX)
	if err := CanvasToXLSX(sampleCanvas, out); err != nil {
		t.Fatalf("CanvasToXLSX() error: %v", err)
	}

	wb, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(wb.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2 data rows", len(rows))
	}
	if rows[0][0] != "Region" || rows[1][1] != "1200" {
		t.Errorf("cells = %v", rows)
	}
}

func TestCanvasToXLSX_NoTable(t *testing.T) {
	out := filepath.Join(t.TempDir(), FileNameXLSX)
	err := CanvasToXLSX("# Title\n\nNo table here.", out)
	if err != ErrNoTable {
		t.Fatalf("error = %v, want ErrNoTable", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no file should be produced when the export fails")
	}
}

func TestCanvasToDOCX(t *testing.T) {
	out := filepath.Join(t.TempDir(), FileNameDOCX)
	if err := CanvasToDOCX(sampleCanvas, out); err != nil {
		t.Fatalf("CanvasToDOCX() error: %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("output is not a valid archive: %v", err)
	}
	defer zr.Close()

	var doc string
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			r, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			buf := make([]byte, f.UncompressedSize64)
			n, _ := r.Read(buf)
			r.Close()
			doc = string(buf[:n])
		}
	}
	if doc == "" {
		t.Fatal("archive has no word/document.xml")
	}

	for _, want := range []string{
		"Quarterly Summary",
		"<w:tbl>",
		"Revenue grew across all regions.",
		"North",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
	if strings.Contains(doc, "# Quarterly") {
		t.Error("heading marker should be stripped")
	}
}

func TestCanvasToDOCX_EscapesXML(t *testing.T) {
	out := filepath.Join(t.TempDir(), FileNameDOCX)
	if err := CanvasToDOCX("Profit & Loss < 2024", out); err != nil {
		t.Fatalf("CanvasToDOCX() error: %v", err)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		r, _ := f.Open()
		buf := make([]byte, f.UncompressedSize64)
		n, _ := r.Read(buf)
		r.Close()
		doc := string(buf[:n])
		if !strings.Contains(doc, "Profit &amp; Loss &lt; 2024") {
			t.Errorf("special characters not escaped: %s", doc)
		}
	}
}

func TestHistoryJSON_RoundTrip(t *testing.T) {
	type message struct {
		Sender    string `json:"sender"`
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
	}
	history := []message{
		{Sender: "user", Text: "Summarize the file", Timestamp: "2026-08-30T10:00:00Z"},
		{Sender: "ai", Text: "Here is a summary.", Timestamp: "2026-08-30T10:00:05Z"},
	}

	data, err := HistoryJSON(history)
	if err != nil {
		t.Fatalf("HistoryJSON() error: %v", err)
	}

	var back []message
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(back) != 2 || back[0] != history[0] || back[1] != history[1] {
		t.Errorf("round trip = %+v, want %+v", back, history)
	}
}

func TestWriteHistory(t *testing.T) {
	out := filepath.Join(t.TempDir(), FileNameHistory)
	if err := WriteHistory([]string{"a", "b"}, out); err != nil {
		t.Fatalf("WriteHistory() error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		t.Error("history file should be a JSON array")
	}
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		name string
		in   string
		cols int
		want []string
	}{
		{"short", "hello", 10, []string{"hello"}},
		{"word boundary", "hello wide world", 11, []string{"hello wide", "world"}},
		{"unbreakable", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapLine(tt.in, tt.cols)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapLine() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
