package export

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	pageMargin = 24
	lineHeight = 16
	glyphWidth = 7 // basicfont.Face7x13 advance
)

// renderImage rasterizes the canvas Markdown as monospaced text on a white
// background. Headings are underlined with a rule; everything else is drawn
// as-is after inline markers are stripped.
func renderImage(markdown string, width int) *image.RGBA {
	if width < 2*pageMargin+glyphWidth {
		width = 640
	}
	cols := (width - 2*pageMargin) / glyphWidth

	var lines []string
	for _, raw := range strings.Split(markdown, "\n") {
		text := stripInline(raw)
		isHeading := headingLevel(raw) > 0
		if isHeading {
			text = headingText(raw)
		}
		wrapped := wrapLine(text, cols)
		lines = append(lines, wrapped...)
		if isHeading {
			lines = append(lines, strings.Repeat("-", min(len(headingText(raw)), cols)))
		}
	}

	height := 2*pageMargin + lineHeight*max(len(lines), 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(pageMargin, pageMargin+lineHeight*(i+1)-4)
		drawer.DrawString(line)
	}
	return img
}

// wrapLine breaks a line into at-most-cols chunks, preferring word
// boundaries.
func wrapLine(s string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	if len(s) <= cols {
		return []string{s}
	}

	var out []string
	for len(s) > cols {
		cut := strings.LastIndexByte(s[:cols+1], ' ')
		if cut <= 0 {
			cut = cols
		}
		out = append(out, strings.TrimRight(s[:cut], " "))
		s = strings.TrimLeft(s[cut:], " ")
	}
	out = append(out, s)
	return out
}
