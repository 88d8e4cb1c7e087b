package scan

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// RasterizePDF renders every page of a PDF to an image using the
// poppler pdftoppm tool at the given DPI.
func RasterizePDF(path string, dpi int) ([]image.Image, error) {
	dir, err := os.MkdirTemp("", "repsheet-scan-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	cmd := exec.Command("pdftoppm", "-png", "-r", strconv.Itoa(dpi), path, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm %s: %w (stderr: %s)", path, err, stderr.String())
	}

	// pdftoppm numbers pages with uniform zero padding per run, so a
	// lexical sort keeps page order.
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	images := make([]image.Image, 0, len(matches))
	for _, m := range matches {
		img, err := LoadImage(m)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", path)
	}
	return images, nil
}

// LoadImage reads a PNG or JPEG image file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", path, err)
	}
	return img, nil
}

// NormalizeWidth scales an image to the given pixel width, preserving
// aspect ratio. Page photos rarely arrive at the sheet's nominal
// resolution, and box cropping needs a known points-to-pixels scale.
func NormalizeWidth(img image.Image, width int) image.Image {
	b := img.Bounds()
	if b.Dx() == width || b.Dx() == 0 {
		return img
	}
	height := int(math.Round(float64(width) * float64(b.Dy()) / float64(b.Dx())))
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
