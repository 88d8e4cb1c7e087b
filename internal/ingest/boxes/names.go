package boxes

import (
	"regexp"
	"strings"
)

// nameNoiseRe finds the first place a printed sheet line stops being an
// exercise name: a side marker like "L - " or any digit. Sheet
// generation appends the previous performance after the name, so a
// printed line can read "Lateral Raises - 12# x 10, 10".
var nameNoiseRe = regexp.MustCompile(`[LR]\s*-\s*|\d`)

// ExerciseName extracts the exercise name from one printed sheet line.
// It cuts at the nearest " - " separator before the first noise match,
// or at the match itself when no separator precedes it. A line without
// noise is already a bare name.
func ExerciseName(line string) string {
	loc := nameNoiseRe.FindStringIndex(line)
	if loc == nil {
		return strings.TrimSpace(line)
	}
	if idx := strings.LastIndex(line[:loc[0]], " - "); idx >= 0 {
		return strings.TrimSpace(line[:idx])
	}
	return strings.TrimSpace(line[:loc[0]])
}

// ExerciseNames maps printed sheet lines to exercise names, preserving
// box order. Callers are expected to have dropped the title line.
func ExerciseNames(lines []string) []string {
	names := make([]string, len(lines))
	for i, line := range lines {
		names[i] = ExerciseName(line)
	}
	return names
}
