package boxes

import (
	"testing"

	"github.com/claude/repsheet/internal/models"
)

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestParsePairWithSharedWeight verifies the everyday case: one explicit
// weight/rep pair followed by a bare rep count at the same weight.
func TestParsePairWithSharedWeight(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Bench Press", Text: "90# x 10, 8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if ex.Laterality != models.Unilateral {
		t.Errorf("laterality = %q, want unilateral", ex.Laterality)
	}
	if !intsEqual(ex.WeightLeft, []int{90, 90}) {
		t.Errorf("weights = %v, want [90 90]", ex.WeightLeft)
	}
	if !intsEqual(ex.RepsLeft, []int{10, 8}) {
		t.Errorf("reps = %v, want [10 8]", ex.RepsLeft)
	}
	if ex.Sets != 2 {
		t.Errorf("sets = %d, want 2", ex.Sets)
	}
	if ex.ExtraText != "" {
		t.Errorf("extra = %q, want empty", ex.ExtraText)
	}
}

// TestParseBilateral verifies L -/R - section splitting with the ×
// separator glyph, both sides parsed independently.
func TestParseBilateral(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{
		ExerciseName: "Single Leg Calf Raise",
		Text:         "L - 0# × 25, 20 - R - 0# × 25, 20",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if ex.Laterality != models.Bilateral {
		t.Errorf("laterality = %q, want bilateral", ex.Laterality)
	}
	if !intsEqual(ex.WeightLeft, []int{0, 0}) || !intsEqual(ex.WeightRight, []int{0, 0}) {
		t.Errorf("weights = %v / %v, want [0 0] both sides", ex.WeightLeft, ex.WeightRight)
	}
	if !intsEqual(ex.RepsLeft, []int{25, 20}) || !intsEqual(ex.RepsRight, []int{25, 20}) {
		t.Errorf("reps = %v / %v, want [25 20] both sides", ex.RepsLeft, ex.RepsRight)
	}
	if ex.Sets != 2 {
		t.Errorf("sets = %d, want 2", ex.Sets)
	}
}

// TestParseBareNumbers verifies that numbers with no explicit weight
// default to weight 0 (bodyweight work).
func TestParseBareNumbers(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Push Ups", Text: "19, 12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if !intsEqual(ex.WeightLeft, []int{0, 0}) {
		t.Errorf("weights = %v, want [0 0]", ex.WeightLeft)
	}
	if !intsEqual(ex.RepsLeft, []int{19, 12}) {
		t.Errorf("reps = %v, want [19 12]", ex.RepsLeft)
	}
}

// TestParseSettingReference verifies that a #-prefixed number is an
// equipment setting, not a rep count, and that the note text survives
// as extra text.
func TestParseSettingReference(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Seated Row", Text: "#4 Hole × 18, 8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if !intsEqual(ex.RepsLeft, []int{18, 8}) {
		t.Errorf("reps = %v, want [18 8]", ex.RepsLeft)
	}
	if !intsEqual(ex.WeightLeft, []int{0, 0}) {
		t.Errorf("weights = %v, want [0 0]", ex.WeightLeft)
	}
	if ex.ExtraText != "Hole" {
		t.Errorf("extra = %q, want %q", ex.ExtraText, "Hole")
	}
}

// TestParseFusedDigits verifies that a 4+ digit token is rejected whole
// with exactly one warning and never split into plausible parts.
func TestParseFusedDigits(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Deadlift", Text: "1234"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if warnings[0].Reason != models.WarnDigitsTooLong || warnings[0].Token != "1234" {
		t.Errorf("warning = %+v, want digits_too_long on %q", warnings[0], "1234")
	}
	if len(ex.RepsLeft) != 0 || len(ex.WeightLeft) != 0 || ex.Sets != 0 {
		t.Errorf("record = %+v, want empty sequences and zero sets", ex)
	}
}

// TestParseFusedDigitsAmongValid verifies that a rejected token does
// not disturb the tokens around it.
func TestParseFusedDigitsAmongValid(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Squat", Text: "90# x 10, 1234, 8"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Token != "1234" {
		t.Fatalf("warnings = %v, want one for 1234", warnings)
	}
	if !intsEqual(ex.WeightLeft, []int{90, 90}) {
		t.Errorf("weights = %v, want [90 90]", ex.WeightLeft)
	}
	if !intsEqual(ex.RepsLeft, []int{10, 8}) {
		t.Errorf("reps = %v, want [10 8]", ex.RepsLeft)
	}
}

// TestParseFusedPairWeight verifies that a pair whose weight token is
// too long is dropped whole: one warning, and the pair's rep digits are
// not recounted as standalone numbers.
func TestParseFusedPairWeight(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Leg Press", Text: "1234# x 10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Token != "1234" {
		t.Fatalf("warnings = %v, want one for 1234", warnings)
	}
	if len(ex.RepsLeft) != 0 || len(ex.WeightLeft) != 0 {
		t.Errorf("sequences = %v / %v, want empty", ex.WeightLeft, ex.RepsLeft)
	}
}

// TestParseSideCountMismatch verifies the bilateral mismatch rule:
// sets = max of the two sides, one warning, neither side padded.
func TestParseSideCountMismatch(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{
		ExerciseName: "Split Squat",
		Text:         "L - 10# x 10, 8 - R - 10# x 10",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Reason != models.WarnSideCountMismatch {
		t.Fatalf("warnings = %v, want one side_count_mismatch", warnings)
	}
	if ex.Sets != 2 {
		t.Errorf("sets = %d, want 2", ex.Sets)
	}
	if !intsEqual(ex.RepsLeft, []int{10, 8}) {
		t.Errorf("left reps = %v, want [10 8]", ex.RepsLeft)
	}
	if !intsEqual(ex.RepsRight, []int{10}) {
		t.Errorf("right reps = %v, want [10] unpadded", ex.RepsRight)
	}
}

// TestParseWeightCarryUsesLastPair verifies that bare numbers carry the
// most recent explicit pair weight, with pairs extracted before bare
// numbers regardless of text order.
func TestParseWeightCarryUsesLastPair(t *testing.T) {
	ex, _, err := Parse(models.SheetBox{ExerciseName: "Curl", Text: "90# x 10, 8, 100# x 5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !intsEqual(ex.WeightLeft, []int{90, 100, 100}) {
		t.Errorf("weights = %v, want [90 100 100]", ex.WeightLeft)
	}
	if !intsEqual(ex.RepsLeft, []int{10, 5, 8}) {
		t.Errorf("reps = %v, want [10 5 8]", ex.RepsLeft)
	}
	if ex.Sets != 3 {
		t.Errorf("sets = %d, want 3", ex.Sets)
	}
}

// TestParseSeparatorVariants verifies the separator forms: no spaces,
// capital X, and the × glyph.
func TestParseSeparatorVariants(t *testing.T) {
	for _, text := range []string{"90#x10", "90# X 10", "90# × 10"} {
		ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Press", Text: text})
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}
		if len(warnings) != 0 {
			t.Errorf("%q: warnings = %v, want none", text, warnings)
		}
		if !intsEqual(ex.WeightLeft, []int{90}) || !intsEqual(ex.RepsLeft, []int{10}) {
			t.Errorf("%q: parsed %v x %v, want [90] x [10]", text, ex.WeightLeft, ex.RepsLeft)
		}
	}
}

// TestParseReversedMarkers verifies that "R -" before "L -" does not
// count as bilateral; the box parses as one side.
func TestParseReversedMarkers(t *testing.T) {
	ex, _, err := Parse(models.SheetBox{ExerciseName: "Lunge", Text: "R - 5 L - 3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Laterality != models.Unilateral {
		t.Errorf("laterality = %q, want unilateral", ex.Laterality)
	}
	if !intsEqual(ex.RepsLeft, []int{5, 3}) {
		t.Errorf("reps = %v, want [5 3]", ex.RepsLeft)
	}
}

// TestParseEmptyBox verifies that a named box with no annotations
// yields an empty record without warnings or errors.
func TestParseEmptyBox(t *testing.T) {
	ex, warnings, err := Parse(models.SheetBox{ExerciseName: "Plank", Text: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if ex.Sets != 0 || len(ex.RepsLeft) != 0 {
		t.Errorf("record = %+v, want zero sets and empty reps", ex)
	}
}

// TestParseMissingName verifies the one hard failure: a box without an
// exercise name.
func TestParseMissingName(t *testing.T) {
	_, _, err := Parse(models.SheetBox{ExerciseName: "  ", Text: "90# x 10"})
	if err == nil {
		t.Fatal("expected error for missing exercise name")
	}
}

// TestParseBilateralExtraText verifies that leftover text from both
// sides is joined left-to-right with a space.
func TestParseBilateralExtraText(t *testing.T) {
	ex, _, err := Parse(models.SheetBox{
		ExerciseName: "Row",
		Text:         "L - band 12 - R - slow 12",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.ExtraText != "band slow" {
		t.Errorf("extra = %q, want %q", ex.ExtraText, "band slow")
	}
}

// TestValidNumber exercises the digit-length gate directly.
func TestValidNumber(t *testing.T) {
	cases := []struct {
		token string
		want  bool
	}{
		{"0", true},
		{"99", true},
		{"999", true},
		{"1234", false},
		{"", false},
	}
	for _, c := range cases {
		if got := validNumber(c.token); got != c.want {
			t.Errorf("validNumber(%q) = %v, want %v", c.token, got, c.want)
		}
	}
}

// TestIsSettingRef exercises the '#'-prefix boundary rule directly:
// only a digit run immediately behind the marker is a setting.
func TestIsSettingRef(t *testing.T) {
	cases := []struct {
		text  string
		start int
		want  bool
	}{
		{"#4", 1, true},
		{"# 4", 2, false},
		{"4", 0, false},
		{"a4", 1, false},
	}
	for _, c := range cases {
		if got := isSettingRef(c.text, c.start); got != c.want {
			t.Errorf("isSettingRef(%q, %d) = %v, want %v", c.text, c.start, got, c.want)
		}
	}
}

// TestCleanResidue verifies that syntax-only fragments disappear and
// real words survive with stray commas trimmed.
func TestCleanResidue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"# Hole x ,", "Hole"},
		{", ,", ""},
		{"  ", ""},
		{"band, x - slow", "band slow"},
		{"", ""},
	}
	for _, c := range cases {
		if got := cleanResidue(c.in); got != c.want {
			t.Errorf("cleanResidue(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
