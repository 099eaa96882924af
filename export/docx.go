package export

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// CanvasToDOCX writes the canvas Markdown as a Word document. Pipe tables
// become real Word tables; headings become sized bold paragraphs; every
// other non-blank line becomes a plain paragraph.
func CanvasToDOCX(markdown, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	entries := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", buildDocumentXML(markdown)},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("archive entry %s: %w", e.name, err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			return fmt.Errorf("archive entry %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// heading sizes in half-points per level, level 1 first
var headingSizes = [...]int{32, 28, 26, 24, 24, 24}

// buildDocumentXML converts the Markdown into a WordprocessingML body.
func buildDocumentXML(markdown string) string {
	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	lines := strings.Split(markdown, "\n")
	for i := 0; i < len(lines); i++ {
		if n := tableExtent(lines, i); n > 0 {
			writeTableXML(&body, lines[i:i+n])
			i += n - 1
			continue
		}

		line := strings.TrimSpace(lines[i])
		if line == "" || line == "---" {
			continue
		}

		if level := headingLevel(line); level > 0 {
			writeHeadingXML(&body, headingText(line), level)
			continue
		}
		writeParagraphXML(&body, stripInline(line))
	}

	body.WriteString(`</w:body></w:document>`)
	return body.String()
}

func writeParagraphXML(sb *strings.Builder, text string) {
	fmt.Fprintf(sb, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, escapeXML(text))
}

func writeHeadingXML(sb *strings.Builder, text string, level int) {
	size := headingSizes[level-1]
	fmt.Fprintf(sb,
		`<w:p><w:r><w:rPr><w:b/><w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		size, escapeXML(stripInline(text)))
}

// writeTableXML emits a bordered Word table for the pipe-table lines.
func writeTableXML(sb *strings.Builder, lines []string) {
	sb.WriteString(`<w:tbl><w:tblPr><w:tblBorders>`)
	for _, edge := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		fmt.Fprintf(sb, `<w:%s w:val="single" w:sz="4"/>`, edge)
	}
	sb.WriteString(`</w:tblBorders></w:tblPr>`)

	writeRow := func(cells []string, bold bool) {
		sb.WriteString(`<w:tr>`)
		for _, cell := range cells {
			sb.WriteString(`<w:tc><w:p><w:r>`)
			if bold {
				sb.WriteString(`<w:rPr><w:b/></w:rPr>`)
			}
			fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t></w:r></w:p></w:tc>`, escapeXML(stripInline(cell)))
		}
		sb.WriteString(`</w:tr>`)
	}

	writeRow(splitRow(lines[0]), true)
	for _, line := range lines[2:] {
		writeRow(splitRow(line), false)
	}
	sb.WriteString(`</w:tbl>`)
}

func escapeXML(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
