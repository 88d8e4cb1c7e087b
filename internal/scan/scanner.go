package scan

import (
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"github.com/claude/repsheet/internal/ingest/boxes"
	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/sheet"
)

// Whitelist is the character set box annotations can contain. Callers
// should hand it to the OCR client before scanning.
const Whitelist = "0123456789LRlr#xX-,"

const defaultDPI = 300

// Recognizer turns a cropped box image into text. The OCR client
// satisfies it when built with the ocr tag.
type Recognizer interface {
	RecognizeImage(imageData []byte) (string, error)
}

// SheetResult is one scanned sheet's extracted content.
type SheetResult struct {
	File  string
	Title string
	Boxes []models.SheetBox
}

// Stats tracks batch scan progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int
	BoxesExtracted int
}

// Scanner extracts box annotations from filled-in sheets.
type Scanner struct {
	ocr Recognizer
	log *slog.Logger
	dpi int
}

// New creates a Scanner rasterizing at the given DPI (0 means 300).
func New(ocr Recognizer, log *slog.Logger, dpi int) *Scanner {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &Scanner{ocr: ocr, log: log, dpi: dpi}
}

// ScanPDF extracts every box annotation from an annotated sheet PDF.
// Exercise names come from the printed text layer; the handwriting
// comes from OCR over per-box crops.
func (s *Scanner) ScanPDF(path string) (*SheetResult, error) {
	pages, err := PrintedLines(path)
	if err != nil {
		return nil, err
	}
	images, err := RasterizePDF(path, s.dpi)
	if err != nil {
		return nil, err
	}

	result := &SheetResult{File: path}
	scale := float64(s.dpi) / 72

	for pi, lines := range pages {
		if pi == 0 && len(lines) > 0 {
			result.Title = lines[0]
			lines = lines[1:]
		}
		if pi >= len(images) {
			s.log.Warn("page has no raster image", "file", path, "page", pi+1)
			break
		}

		names := boxes.ExerciseNames(lines)
		extracted, err := s.scanPage(images[pi], names, scale)
		if err != nil {
			return nil, fmt.Errorf("page %d of %s: %w", pi+1, path, err)
		}
		result.Boxes = append(result.Boxes, extracted...)
	}
	return result, nil
}

// ScanImage reads one page photographed or exported as an image. Image
// files carry no text layer, so exercise names must be supplied in box
// order.
func (s *Scanner) ScanImage(path string, names []string) (*SheetResult, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	img = NormalizeWidth(img, int(math.Round(sheet.PageWidth/72*float64(s.dpi))))

	extracted, err := s.scanPage(img, names, float64(s.dpi)/72)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &SheetResult{File: path, Boxes: extracted}, nil
}

// scanPage crops and OCRs each box slot of one page image. The slots
// come from the shared sheet layout, so generation and scanning agree
// on geometry.
func (s *Scanner) scanPage(img image.Image, names []string, scale float64) ([]models.SheetBox, error) {
	var out []models.SheetBox
	for _, slot := range sheet.Paginate(names)[0].Boxes {
		crop, err := CropBox(img, slot, scale)
		if err != nil {
			s.log.Warn("cropping box failed", "box", slot.Name, "error", err)
			continue
		}
		text, err := s.ocr.RecognizeImage(crop)
		if err != nil {
			return nil, fmt.Errorf("OCR on box %q: %w", slot.Name, err)
		}
		text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
		out = append(out, models.SheetBox{ExerciseName: slot.Name, Text: text})
	}
	return out, nil
}

// RunDir scans every .pdf under dir, skipping files already recorded in
// the state DB. Each scanned sheet is handed to handle; a file is
// marked done only after handle accepts it, so a failed ingest is
// retried on the next run. Scan and handler failures are counted and
// logged; the walk continues.
func (s *Scanner) RunDir(dir string, state *StateDB, handle func(*SheetResult) error) (*Stats, error) {
	stats := &Stats{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hash, err := HashFile(path)
		if err != nil {
			s.log.Warn("hashing failed", "file", path, "error", err)
			stats.FilesErrored++
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}

		done, err := state.IsProcessed(rel, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state for %s: %w", rel, err)
		}
		if done {
			stats.FilesSkipped++
			return nil
		}

		result, err := s.ScanPDF(path)
		if err != nil {
			s.log.Warn("scan failed", "file", path, "error", err)
			stats.FilesErrored++
			return nil
		}
		stats.BoxesExtracted += len(result.Boxes)

		if err := handle(result); err != nil {
			s.log.Warn("processing failed", "file", path, "error", err)
			stats.FilesErrored++
			return nil
		}
		stats.FilesProcessed++

		if err := state.MarkProcessed(rel, info.Size(), hash); err != nil {
			s.log.Warn("failed to mark processed", "file", rel, "error", err)
		}
		return nil
	})
	return stats, err
}
