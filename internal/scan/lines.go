// Package scan reads filled-in workout sheets back into box
// annotations: printed exercise lines come from the PDF text layer,
// the handwriting comes from OCR over per-box crops of the rasterized
// pages.
package scan

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// lineYTolerance groups text runs whose baselines sit within 2pt; the
// sheet generator never places distinct lines closer than a box height.
const lineYTolerance = 2.0

// PrintedLines returns each page's text lines, top to bottom, assembled
// from the PDF's positioned text runs. Handwriting strokes are not text
// runs, so only the generated lines (title and exercise lines) appear.
func PrintedLines(path string) ([][]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var pages [][]string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, assembleLines(page.Content().Text))
	}
	return pages, nil
}

// assembleLines sorts text runs top-to-bottom (PDF Y grows upward),
// groups runs sharing a baseline, and joins each group in X order.
func assembleLines(texts []pdf.Text) []string {
	if len(texts) == 0 {
		return nil
	}

	runs := make([]pdf.Text, len(texts))
	copy(runs, texts)
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Y != runs[j].Y {
			return runs[i].Y > runs[j].Y
		}
		return runs[i].X < runs[j].X
	})

	var lines []string
	var current []pdf.Text
	flush := func() {
		if len(current) == 0 {
			return
		}
		sort.SliceStable(current, func(i, j int) bool { return current[i].X < current[j].X })
		var b strings.Builder
		for _, t := range current {
			b.WriteString(t.S)
		}
		if line := strings.TrimSpace(b.String()); line != "" {
			lines = append(lines, line)
		}
		current = nil
	}

	baseY := runs[0].Y
	for _, t := range runs {
		if math.Abs(t.Y-baseY) > lineYTolerance {
			flush()
			baseY = t.Y
		}
		current = append(current, t)
	}
	flush()
	return lines
}
