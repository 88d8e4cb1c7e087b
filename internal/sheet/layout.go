// Package sheet lays out and renders printable workout sheets: one
// printed exercise line per slot with a ruled box below it for
// handwritten sets. The scan pipeline uses the same layout to find each
// box again on the filled-in page.
package sheet

// Layout constants in PDF points, top-down coordinates.
const (
	PageWidth  = 595.28
	PageHeight = 841.89

	Margin    = 72.0
	TopMargin = 36.0

	TitleSize = 18.0
	LineSize  = 12.0

	titleToFirstLine = 28.0
	textToBoxGap     = 8.0
	BoxHeight        = 37.0
	boxToNextGap     = 18.0
)

// Box is one exercise slot: the printed line's baseline and the ruled
// handwriting box below it.
type Box struct {
	Name   string
	LineY  float64
	Top    float64
	Bottom float64
}

// Left returns the box's left edge.
func (b Box) Left() float64 { return Margin }

// Right returns the box's right edge.
func (b Box) Right() float64 { return PageWidth - Margin }

// Page holds the boxes laid out on one sheet page.
type Page struct {
	Boxes []Box
}

// Paginate lays out one box per exercise line, breaking to a new page
// when a box would cross the bottom margin. Every page, title or not,
// starts its first line at the same offset so scan-side geometry stays
// uniform.
func Paginate(names []string) []Page {
	firstLineY := TopMargin + titleToFirstLine

	var pages []Page
	var current Page
	y := firstLineY
	for _, name := range names {
		top := y + textToBoxGap
		bottom := top + BoxHeight
		if bottom > PageHeight-Margin && len(current.Boxes) > 0 {
			pages = append(pages, current)
			current = Page{}
			y = firstLineY
			top = y + textToBoxGap
			bottom = top + BoxHeight
		}
		current.Boxes = append(current.Boxes, Box{Name: name, LineY: y, Top: top, Bottom: bottom})
		y = bottom + boxToNextGap
	}
	if len(current.Boxes) > 0 || len(pages) == 0 {
		pages = append(pages, current)
	}
	return pages
}
