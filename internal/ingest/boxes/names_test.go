package boxes

import "testing"

// TestExerciseName verifies name extraction from printed sheet lines,
// including lines carrying a previous-performance suffix.
func TestExerciseName(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"Bench Press", "Bench Press"},
		{"Bench Press - 90# x 10, 8", "Bench Press"},
		{"Pull Ups - L - 0# x 25, 20 - R - 0# x 25, 20", "Pull Ups"},
		{"Lateral Raises - 12", "Lateral Raises"},
		{"Squats 5x5", "Squats"},
		{"  Face Pulls  ", "Face Pulls"},
		{"L - 10", ""},
	}
	for _, c := range cases {
		if got := ExerciseName(c.line); got != c.want {
			t.Errorf("ExerciseName(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}

// TestExerciseNameMarkerInsideWord verifies that an L or R inside a
// word is not mistaken for a side marker.
func TestExerciseNameMarkerInsideWord(t *testing.T) {
	if got := ExerciseName("Lateral Raises - 12# x 10"); got != "Lateral Raises" {
		t.Errorf("got %q, want %q", got, "Lateral Raises")
	}
	if got := ExerciseName("Rear Delt Fly"); got != "Rear Delt Fly" {
		t.Errorf("got %q, want %q", got, "Rear Delt Fly")
	}
}

// TestExerciseNames verifies order preservation over multiple lines.
func TestExerciseNames(t *testing.T) {
	lines := []string{"Bench Press - 90# x 10", "Push Ups", "Pull Ups - L - 0# x 25"}
	want := []string{"Bench Press", "Push Ups", "Pull Ups"}
	got := ExerciseNames(lines)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
