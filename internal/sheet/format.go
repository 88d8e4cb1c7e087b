package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/repsheet/internal/models"
)

// FormatExerciseLine renders a stored row as a printed sheet line with
// the previous performance in the handwriting shorthand, e.g.
// "Bench Press - 90# x 10, 8" or "Pull Ups - L - 0# x 25, 20 - R - ...".
// The scan-side name resolver strips exactly this suffix.
func FormatExerciseLine(row models.ExerciseRow) string {
	if row.Laterality == string(models.Bilateral) {
		left := formatSide(row.WeightLeft, row.RepsLeft)
		right := formatSide(row.WeightRight, row.RepsRight)
		return fmt.Sprintf("%s - L - %s - R - %s", row.ExerciseName, left, right)
	}
	side := formatSide(row.WeightLeft, row.RepsLeft)
	if side == "" {
		return row.ExerciseName
	}
	return fmt.Sprintf("%s - %s", row.ExerciseName, side)
}

// formatSide renders one side's sets, grouping consecutive sets that
// share a weight: weights [90,90,100] reps [10,8,5] prints as
// "90# x 10, 8, 100# x 5". Rows without recorded weights print reps only.
func formatSide(weightSeq, repSeq *string) string {
	weights := models.SplitNumbers(weightSeq)
	reps := models.SplitNumbers(repSeq)
	if len(reps) == 0 {
		return ""
	}

	parts := make([]string, 0, len(reps))
	if len(weights) == 0 {
		for _, rep := range reps {
			parts = append(parts, strconv.Itoa(rep))
		}
		return strings.Join(parts, ", ")
	}

	lastWeight := -1
	for i, rep := range reps {
		weight := 0
		if i < len(weights) {
			weight = weights[i]
		}
		if weight != lastWeight {
			parts = append(parts, fmt.Sprintf("%d# x %d", weight, rep))
			lastWeight = weight
		} else {
			parts = append(parts, strconv.Itoa(rep))
		}
	}
	return strings.Join(parts, ", ")
}
