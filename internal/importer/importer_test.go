package importer

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/claude/repsheet/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TestParseDate accepts the four spreadsheet date layouts and normalizes
// them all to YYYY-MM-DD.
func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "iso", in: "2025-03-14", want: "2025-03-14"},
		{name: "us slashes", in: "03/14/2025", want: "2025-03-14"},
		{name: "day first", in: "14/03/2025", want: "2025-03-14"},
		{name: "iso slashes", in: "2025/03/14", want: "2025-03-14"},
		{name: "ambiguous prefers month first", in: "01/02/2025", want: "2025-01-02"},
		{name: "garbage", in: "March 14", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestNormalizeSeq converts semicolon separators and maps empty cells to NULL.
func TestNormalizeSeq(t *testing.T) {
	if got := normalizeSeq("90;90;85"); got == nil || *got != "90,90,85" {
		t.Errorf("normalizeSeq(90;90;85) = %v", got)
	}
	if got := normalizeSeq("10,8"); got == nil || *got != "10,8" {
		t.Errorf("normalizeSeq(10,8) = %v", got)
	}
	if got := normalizeSeq("   "); got != nil {
		t.Errorf("normalizeSeq(blank) = %q, want nil", *got)
	}
}

// TestHeaderIndex maps columns case-insensitively, tolerates a BOM, and
// rejects headers missing required columns.
func TestHeaderIndex(t *testing.T) {
	idx, err := headerIndex([]string{"\ufeffDate_Completed", "body_part", "exercise_name", "laterality", "sets", "weight_left"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx["date_completed"] != 0 {
		t.Errorf("date_completed index = %d, want 0", idx["date_completed"])
	}
	if idx["weight_left"] != 5 {
		t.Errorf("weight_left index = %d, want 5", idx["weight_left"])
	}

	if _, err := headerIndex([]string{"date_completed", "exercise_name"}); err == nil {
		t.Error("expected error for missing required columns")
	}
}

func testImporter() *Importer {
	return New(nil, slog.Default(), true, false)
}

func testIndex(t *testing.T) map[string]int {
	t.Helper()
	idx, err := headerIndex([]string{
		"date_completed", "body_part", "exercise_name", "laterality", "sets",
		"weight_left", "weight_right", "reps_left", "reps_right",
	})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

// TestConvertRowBilateral builds a full row from a bilateral record,
// converting semicolons in sequence cells.
func TestConvertRowBilateral(t *testing.T) {
	imp := testImporter()
	rec := []string{"2025-03-14", "Chest", "Bench Press", "bilateral", "2", "90;90", "90;90", "10;8", "10;9"}

	row, ok := imp.convertRow(rec, testIndex(t), 2, cases.Title(language.English))
	if !ok {
		t.Fatal("convertRow rejected a valid record")
	}
	if row.DateCompleted != "2025-03-14" {
		t.Errorf("date = %q", row.DateCompleted)
	}
	if row.Laterality != "bilateral" {
		t.Errorf("laterality = %q", row.Laterality)
	}
	if row.WeightLeft == nil || *row.WeightLeft != "90,90" {
		t.Errorf("weight_left = %v", row.WeightLeft)
	}
	if row.RepsRight == nil || *row.RepsRight != "10,9" {
		t.Errorf("reps_right = %v", row.RepsRight)
	}
}

// TestConvertRowUnilateralDropsRight forces right-side columns to NULL
// for unilateral rows even when the sheet has values there.
func TestConvertRowUnilateralDropsRight(t *testing.T) {
	imp := testImporter()
	rec := []string{"2025-03-14", "Biceps", "Hammer Curl", "Unilateral", "2", "15;15", "15;15", "12;10", "12;10"}

	row, ok := imp.convertRow(rec, testIndex(t), 2, cases.Title(language.English))
	if !ok {
		t.Fatal("convertRow rejected a valid record")
	}
	if row.Laterality != "unilateral" {
		t.Errorf("laterality = %q, want lowercased", row.Laterality)
	}
	if row.WeightRight != nil || row.RepsRight != nil {
		t.Errorf("right side = %v/%v, want nil for unilateral", row.WeightRight, row.RepsRight)
	}
	if row.WeightLeft == nil || *row.WeightLeft != "15,15" {
		t.Errorf("weight_left = %v", row.WeightLeft)
	}
}

// TestConvertRowRejects skips rows with invalid laterality or sets and
// unparseable dates.
func TestConvertRowRejects(t *testing.T) {
	tests := []struct {
		name string
		rec  []string
	}{
		{name: "bad laterality", rec: []string{"2025-03-14", "Chest", "Bench Press", "both", "2", "", "", "", ""}},
		{name: "zero sets", rec: []string{"2025-03-14", "Chest", "Bench Press", "bilateral", "0", "", "", "", ""}},
		{name: "sets not a number", rec: []string{"2025-03-14", "Chest", "Bench Press", "bilateral", "two", "", "", "", ""}},
		{name: "bad date", rec: []string{"yesterday", "Chest", "Bench Press", "bilateral", "2", "", "", "", ""}},
		{name: "empty name", rec: []string{"2025-03-14", "Chest", "", "bilateral", "2", "", "", "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := testImporter()
			if _, ok := imp.convertRow(tt.rec, testIndex(t), 2, cases.Title(language.English)); ok {
				t.Error("expected record to be rejected")
			}
		})
	}
}

// TestNormalizeBodyPart title-cases catalog misspellings and tracks
// genuinely unknown values without rejecting them.
func TestNormalizeBodyPart(t *testing.T) {
	imp := testImporter()
	caser := cases.Title(language.English)

	if got := imp.normalizeBodyPart("Chest", 2, caser); got != "Chest" {
		t.Errorf("known part = %q", got)
	}
	if got := imp.normalizeBodyPart("rotator cuff", 3, caser); got != "Rotator Cuff" {
		t.Errorf("lowercased part = %q, want title-cased", got)
	}
	if got := imp.normalizeBodyPart("wings", 4, caser); got != "Wings" {
		t.Errorf("unknown part = %q", got)
	}
	if got := imp.normalizeBodyPart("", 5, caser); got != models.UnknownBodyPart {
		t.Errorf("empty part = %q, want %q", got, models.UnknownBodyPart)
	}
	if !imp.unknownBodyParts["Wings"] {
		t.Error("unknown part Wings was not tracked")
	}
	if imp.unknownBodyParts["Rotator Cuff"] {
		t.Error("title-case fixup should not be tracked as unknown")
	}
}

// TestAddBodyPartColumn injects body_part after date_completed using the
// lookup, with Unknown for unmatched names.
func TestAddBodyPartColumn(t *testing.T) {
	in := strings.Join([]string{
		"date_completed,exercise_name,laterality,sets,weight_left,weight_right,reps_left,reps_right",
		"2025-03-14,Bench Press,bilateral,2,90;90,90;90,10;8,10;9",
		"2025-03-14,Mystery Move,unilateral,1,,,5,",
	}, "\n") + "\n"

	lookup := map[string]string{"Bench Press": "Chest"}

	var out bytes.Buffer
	stats, err := AddBodyPartColumn(strings.NewReader(in), &out, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.RowsProcessed != 2 {
		t.Errorf("rows processed = %d, want 2", stats.RowsProcessed)
	}
	if stats.RowsResolved != 1 {
		t.Errorf("rows resolved = %d, want 1", stats.RowsResolved)
	}
	if len(stats.UnknownNames) != 1 || stats.UnknownNames[0] != "Mystery Move" {
		t.Errorf("unknown names = %v", stats.UnknownNames)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("output lines = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "date_completed,body_part,exercise_name") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "2025-03-14,Chest,Bench Press") {
		t.Errorf("resolved row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "2025-03-14,Unknown,Mystery Move") {
		t.Errorf("unresolved row = %q", lines[2])
	}
}

// TestExportCSV writes the canonical layout with semicolon sequence cells
// and blanks for NULL columns.
func TestExportCSV(t *testing.T) {
	weights := "90,90"
	reps := "10,8"
	rows := []models.ExerciseRow{
		{
			DateCompleted: "2025-03-14",
			BodyPart:      "Chest",
			ExerciseName:  "Bench Press",
			Laterality:    "unilateral",
			Sets:          2,
			WeightLeft:    &weights,
			RepsLeft:      &reps,
		},
	}

	var out bytes.Buffer
	if err := ExportCSV(&out, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "date_completed,body_part,exercise_name,laterality,sets,weight_left,weight_right,reps_left,reps_right\n" +
		"2025-03-14,Chest,Bench Press,unilateral,2,90;90,,10;8,\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

// TestInsertAt clamps the insertion point for short rows.
func TestInsertAt(t *testing.T) {
	got := insertAt([]string{"a", "b"}, 1, "x")
	if strings.Join(got, ",") != "a,x,b" {
		t.Errorf("insertAt middle = %v", got)
	}
	got = insertAt([]string{"a"}, 5, "x")
	if strings.Join(got, ",") != "a,x" {
		t.Errorf("insertAt clamped = %v", got)
	}
}
