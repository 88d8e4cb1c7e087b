//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

// TestNewReturnsError verifies the default build surfaces the sentinel
// error instead of a half-working client.
func TestNewReturnsError(t *testing.T) {
	client, err := New()
	if err == nil {
		t.Error("expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("expected nil client when OCR is disabled")
	}
}

// TestCloseOnNilClient guards the cleanup path callers hit after a
// failed New.
func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}
