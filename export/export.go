package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/xuri/excelize/v2"
)

// Default output filenames
const (
	FileNamePDF     = "report.pdf"
	FileNameDOCX    = "report.docx"
	FileNameXLSX    = "report.xlsx"
	FileNamePNG     = "report.png"
	FileNameHistory = "chat-history.json"
)

// ErrNoTable is returned when a spreadsheet export finds no table to write.
var ErrNoTable = errors.New("no table found in the canvas content")

// DefaultImageWidth is the pixel width of rendered canvas images.
const DefaultImageWidth = 1240

// CanvasToPNG renders the canvas Markdown to a PNG file.
func CanvasToPNG(markdown, outPath string) error {
	img := renderImage(markdown, DefaultImageWidth)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	return nil
}

// CanvasToPDF renders the canvas to an image and wraps it in a single-page
// PDF, scaled to fit an A4 page.
func CanvasToPDF(markdown, outPath string) error {
	tmp, err := os.MkdirTemp("", "canvas-pdf-")
	if err != nil {
		return fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	imgPath := filepath.Join(tmp, "canvas.png")
	if err := CanvasToPNG(markdown, imgPath); err != nil {
		return err
	}

	imp, err := api.Import("f:A4, pos:c, scalefactor:1.0 rel", types.POINTS)
	if err != nil {
		return fmt.Errorf("page layout: %w", err)
	}
	if err := api.ImportImagesFile([]string{imgPath}, outPath, imp, nil); err != nil {
		return fmt.Errorf("build PDF: %w", err)
	}
	return nil
}

// CanvasToXLSX writes the first Markdown table in the canvas to a worksheet.
// Without a table there is nothing to export: the call fails with ErrNoTable
// and no file is produced.
func CanvasToXLSX(markdown, outPath string) error {
	table, ok := FirstTable(markdown)
	if !ok {
		return ErrNoTable
	}

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	writeRow := func(rowIdx int, cells []string) error {
		for col, cell := range cells {
			ref, err := excelize.CoordinatesToCellName(col+1, rowIdx)
			if err != nil {
				return err
			}
			if err := wb.SetCellValue(sheet, ref, cell); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, table.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := wb.SaveAs(outPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// HistoryJSON serializes the chat transcript as an indented JSON array.
// Unmarshaling the result yields the same message sequence.
func HistoryJSON(history any) ([]byte, error) {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	return data, nil
}

// WriteHistory writes the chat transcript JSON to a file.
func WriteHistory(history any, outPath string) error {
	data, err := HistoryJSON(history)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}
