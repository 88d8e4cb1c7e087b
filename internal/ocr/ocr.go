//go:build ocr

// Package ocr wraps the Tesseract engine for reading handwritten
// annotations out of cropped exercise boxes.
//
// This build requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// PageSegMode controls how Tesseract analyzes page layout.
type PageSegMode = gosseract.PageSegMode

// Page segmentation modes.
const (
	PSM_OSD_ONLY               PageSegMode = gosseract.PSM_OSD_ONLY
	PSM_AUTO_OSD               PageSegMode = gosseract.PSM_AUTO_OSD
	PSM_AUTO_ONLY              PageSegMode = gosseract.PSM_AUTO_ONLY
	PSM_AUTO                   PageSegMode = gosseract.PSM_AUTO
	PSM_SINGLE_COLUMN          PageSegMode = gosseract.PSM_SINGLE_COLUMN
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = gosseract.PSM_SINGLE_BLOCK_VERT_TEXT
	PSM_SINGLE_BLOCK           PageSegMode = gosseract.PSM_SINGLE_BLOCK
	PSM_SINGLE_LINE            PageSegMode = gosseract.PSM_SINGLE_LINE
	PSM_SINGLE_WORD            PageSegMode = gosseract.PSM_SINGLE_WORD
	PSM_CIRCLE_WORD            PageSegMode = gosseract.PSM_CIRCLE_WORD
	PSM_SINGLE_CHAR            PageSegMode = gosseract.PSM_SINGLE_CHAR
	PSM_SPARSE_TEXT            PageSegMode = gosseract.PSM_SPARSE_TEXT
	PSM_SPARSE_TEXT_OSD        PageSegMode = gosseract.PSM_SPARSE_TEXT_OSD
	PSM_RAW_LINE               PageSegMode = gosseract.PSM_RAW_LINE
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. Close it when no longer needed to
// release Tesseract resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with surrounding whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages
// join with "+" (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetWhitelist restricts recognition to the given characters. Box
// annotations only ever contain digits, side markers, and the
// weight/separator glyphs, so a tight whitelist cuts most OCR noise.
func (c *Client) SetWhitelist(chars string) error {
	return c.client.SetWhitelist(chars)
}

// SetPageSegMode sets the page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
