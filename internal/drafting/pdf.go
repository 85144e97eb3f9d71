package drafting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// A4 portrait geometry in points.
const (
	pageWidth    = 595.0
	pageHeight   = 842.0
	marginLeft   = 70.0
	marginRight  = 45.0
	marginTop    = 70.0
	marginBottom = 70.0

	bodySize     = 11
	smallSize    = 9
	titleSize    = 14
	lineHeight   = 14.0
	sectionGap   = 10.0
	paragraphGap = 6.0

	// Average Times glyph width as a fraction of point size.
	glyphRatio = 0.46
)

const (
	fontRegular = "Times-Roman"
	fontBold    = "Times-Bold"
	fontItalic  = "Times-Italic"
)

// Font is a core PDF font reference.
type Font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// TextBox is one positioned line of text.
type TextBox struct {
	Value string     `json:"value"`
	Pos   [2]float64 `json:"pos"`
	Font  Font       `json:"font"`
}

// PageContent holds the text boxes of a page.
type PageContent struct {
	Text []TextBox `json:"text"`
}

// Page is a single page of a layout.
type Page struct {
	Content PageContent `json:"content"`
}

// Layout is the pdfcpu JSON description of a rendered draft.
type Layout struct {
	Paper string          `json:"paper"`
	Pages map[string]Page `json:"pages"`
}

// PageCount reports the number of pages in the layout.
func (l Layout) PageCount() int {
	return len(l.Pages)
}

type cursor struct {
	layout Layout
	page   int
	y      float64
}

func newCursor() *cursor {
	c := &cursor{layout: Layout{Paper: "A4", Pages: map[string]Page{}}}
	c.newPage()
	return c
}

func (c *cursor) newPage() {
	c.page++
	c.y = pageHeight - marginTop
	c.layout.Pages[strconv.Itoa(c.page)] = Page{Content: PageContent{Text: []TextBox{}}}
}

func (c *cursor) line(text string, font Font, x float64) {
	if c.y < marginBottom {
		c.newPage()
	}
	key := strconv.Itoa(c.page)
	p := c.layout.Pages[key]
	p.Content.Text = append(p.Content.Text, TextBox{
		Value: text,
		Pos:   [2]float64{x, c.y},
		Font:  font,
	})
	c.layout.Pages[key] = p
	c.y -= lineHeight * float64(font.Size) / bodySize
}

func (c *cursor) gap(h float64) {
	c.y -= h
}

// BuildLayout positions every line of a draft on A4 pages, wrapping
// paragraphs to the text width and breaking pages at the bottom margin.
func BuildLayout(d *Draft) Layout {
	c := newCursor()

	title := Font{Name: fontBold, Size: titleSize}
	for _, l := range wrap(d.Title, charsPerLine(titleSize)) {
		c.line(l, title, centered(l, titleSize))
	}
	c.gap(sectionGap * 2)

	for _, s := range d.Sections {
		if s.Heading != "" {
			for _, l := range wrap(s.Heading, charsPerLine(bodySize)) {
				c.line(l, Font{Name: fontBold, Size: bodySize}, marginLeft)
			}
			c.gap(paragraphGap)
		}

		font := Font{Name: fontRegular, Size: bodySize}
		if s.Small {
			font = Font{Name: fontItalic, Size: smallSize}
		}

		for i, para := range s.Paragraphs {
			for _, l := range wrap(para, charsPerLine(font.Size)) {
				c.line(l, font, s.x(l, font.Size))
			}
			if !s.Compact && i < len(s.Paragraphs)-1 {
				c.gap(paragraphGap)
			}
		}
		c.gap(sectionGap)
	}

	return c.layout
}

func (s Section) x(line string, size int) float64 {
	switch s.Align {
	case AlignCenter:
		return centered(line, size)
	case AlignRight:
		return max(marginLeft, pageWidth-marginRight-textWidth(line, size))
	}
	return marginLeft
}

// PDF renders a draft to PDF bytes through the pdfcpu JSON content API.
func PDF(d *Draft) ([]byte, error) {
	layout, err := json.Marshal(BuildLayout(d))
	if err != nil {
		return nil, fmt.Errorf("marshal layout: %w", err)
	}

	var buf bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(layout), &buf, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func textWidth(s string, size int) float64 {
	return float64(len([]rune(s))) * float64(size) * glyphRatio
}

func centered(s string, size int) float64 {
	return max(marginLeft, (pageWidth-textWidth(s, size))/2)
}

func charsPerLine(size int) int {
	return int((pageWidth - marginLeft - marginRight) / (float64(size) * glyphRatio))
}

// wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width occupy a line of their own.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if len([]rune(current))+1+len([]rune(w)) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current += " " + w
	}
	return append(lines, current)
}
