package render

import (
	"fmt"
	"math"
)

// PageSize is a page's media box in points.
type PageSize struct {
	Width  float64
	Height float64
}

type Document struct {
	pages []PageSize
}

// NewDocument builds a document from known page sizes.
func NewDocument(pages []PageSize) *Document {
	return &Document{pages: append([]PageSize(nil), pages...)}
}

func (d *Document) PageCount() int {
	return len(d.pages)
}

// Frame is what the viewer paints for one page at one zoom level.
type Frame struct {
	Page   int
	Total  int
	Scale  float64
	Width  float64
	Height float64
}

// Describe returns the frame of page (1-based) at scale. Out of range pages are clamped.
func (d *Document) Describe(page int, scale float64) Frame {
	total := len(d.pages)
	if total == 0 {
		return Frame{Page: 1, Scale: scale}
	}

	page = min(max(page, 1), total)
	size := d.pages[page-1]

	return Frame{
		Page:   page,
		Total:  total,
		Scale:  scale,
		Width:  size.Width * scale,
		Height: size.Height * scale,
	}
}

func (f Frame) String() string {
	return fmt.Sprintf("Page %d of %d, %.0f x %.0f pt (%d%%)",
		f.Page, f.Total, f.Width, f.Height, int(math.Round(f.Scale*100)))
}

// Cells fits the frame into a cols x rows box. Terminal cells are about twice as
// tall as wide, so heights are halved. The box never exceeds the limits.
func (f Frame) Cells(maxCols, maxRows int) (cols, rows int) {
	if f.Width <= 0 || f.Height <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}

	// 1.0 scale maps a US letter page onto roughly 60 columns
	const pointsPerCol = 10.0
	w := f.Width / pointsPerCol
	h := f.Height / pointsPerCol / 2

	fit := math.Min(1, math.Min(float64(maxCols)/w, float64(maxRows)/h))
	cols = max(1, int(math.Round(w*fit)))
	rows = max(1, int(math.Round(h*fit)))
	return min(cols, maxCols), min(rows, maxRows)
}
