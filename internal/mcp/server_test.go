package mcp

import (
	"testing"
	"time"

	"github.com/claude/repsheet/internal/models"
)

// TestParseFlexDate verifies date parsing accepts both plain dates and
// ISO 8601 timestamps, canonicalizing to YYYY-MM-DD.
func TestParseFlexDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"2025-06-01", "2025-06-01", false},
		{"2025-06-01T14:30:00Z", "2025-06-01", false},
		{"06/01/2025", "", true},
		{"not-a-date", "", true},
	}

	for _, tt := range tests {
		got, err := parseFlexDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseFlexDate(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFlexDate(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFlexDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestDefaultDateRange verifies the 30-day default window and that
// explicit dates pass through unchanged.
func TestDefaultDateRange(t *testing.T) {
	// Both empty → last 30 days ending today
	start, end, err := defaultDateRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	today := time.Now().Format(models.DateFormat)
	if end != today {
		t.Errorf("end = %q, want %q", end, today)
	}
	endDay, _ := time.Parse(models.DateFormat, end)
	wantStart := endDay.AddDate(0, 0, -30).Format(models.DateFormat)
	if start != wantStart {
		t.Errorf("start = %q, want %q", start, wantStart)
	}

	// Explicit dates
	start, end, err = defaultDateRange("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "2025-01-01" || end != "2025-01-31" {
		t.Errorf("range = %q..%q, want 2025-01-01..2025-01-31", start, end)
	}

	// End only → start is 30 days before it
	start, end, err = defaultDateRange("", "2025-03-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != "2025-03-01" {
		t.Errorf("start = %q, want 2025-03-01", start)
	}
	if end != "2025-03-31" {
		t.Errorf("end = %q, want 2025-03-31", end)
	}

	// Invalid
	if _, _, err := defaultDateRange("not-a-date", ""); err == nil {
		t.Error("expected error for invalid date")
	}
}
