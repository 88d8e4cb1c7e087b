package scan

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/claude/repsheet/internal/sheet"
)

// borderInset trims the box crop by this many points per edge so the
// ruled border does not reach the OCR input.
const borderInset = 2.0

// CropBox cuts one handwriting box out of a rasterized page and returns
// it PNG-encoded. Box coordinates are sheet-layout points; scale
// converts points to pixels (dpi/72).
func CropBox(img image.Image, box sheet.Box, scale float64) ([]byte, error) {
	rect := image.Rect(
		int((box.Left()+borderInset)*scale),
		int((box.Top+borderInset)*scale),
		int((box.Right()-borderInset)*scale),
		int((box.Bottom-borderInset)*scale),
	).Intersect(img.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("box %q lies outside the page image", box.Name)
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding box crop: %w", err)
	}
	return buf.Bytes(), nil
}
