package models

import (
	"strconv"
	"strings"
)

// Laterality says whether an exercise is performed one side at a time.
type Laterality string

const (
	Unilateral Laterality = "unilateral"
	Bilateral  Laterality = "bilateral"
)

// WarningReason classifies a ParseWarning.
type WarningReason string

const (
	// WarnDigitsTooLong flags a numeric token of four or more digits,
	// almost always two handwritten numbers fused by the OCR pass.
	WarnDigitsTooLong WarningReason = "digits_too_long"
	// WarnSideCountMismatch flags a bilateral box whose left and right
	// sides recorded a different number of sets.
	WarnSideCountMismatch WarningReason = "side_count_mismatch"
)

// ParseWarning records a recoverable problem found while parsing one
// annotation box. Token is empty for box-level warnings.
type ParseWarning struct {
	BoxText string        `json:"box_text"`
	Token   string        `json:"token,omitempty"`
	Reason  WarningReason `json:"reason"`
}

// SheetBox is one exercise box lifted off a scanned sheet: the printed
// exercise name and the OCR text of the handwritten annotations below it.
type SheetBox struct {
	ExerciseName string
	Text         string
}

// SheetExercise is the structured result of parsing one SheetBox.
// Weight and rep sequences are parallel per side; for unilateral
// exercises only the left-side sequences are populated.
type SheetExercise struct {
	ExerciseName string
	Laterality   Laterality
	WeightLeft   []int
	WeightRight  []int
	RepsLeft     []int
	RepsRight    []int
	Sets         int
	ExtraText    string
}

// SerializedExercise is the stable JSON form of a SheetExercise.
// Sequence fields are comma-joined decimal strings; an empty or
// not-applicable sequence is null, never "".
type SerializedExercise struct {
	ExerciseName string  `json:"exercise_name"`
	Laterality   string  `json:"laterality"`
	RepsLeft     *string `json:"reps_left"`
	RepsRight    *string `json:"reps_right"`
	Sets         int     `json:"sets"`
	WeightLeft   *string `json:"weight_left"`
	WeightRight  *string `json:"weight_right"`
	ExtraText    string  `json:"extra_text,omitempty"`
}

// Serialized converts the exercise to its JSON form.
func (e SheetExercise) Serialized() SerializedExercise {
	return SerializedExercise{
		ExerciseName: e.ExerciseName,
		Laterality:   string(e.Laterality),
		RepsLeft:     JoinNumbers(e.RepsLeft),
		RepsRight:    JoinNumbers(e.RepsRight),
		Sets:         e.Sets,
		WeightLeft:   JoinNumbers(e.WeightLeft),
		WeightRight:  JoinNumbers(e.WeightRight),
		ExtraText:    e.ExtraText,
	}
}

// JoinNumbers renders a sequence as a comma-joined string ("90,90"),
// or nil for an empty sequence.
func JoinNumbers(nums []int) *string {
	if len(nums) == 0 {
		return nil
	}
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	s := strings.Join(parts, ",")
	return &s
}

// SplitNumbers is the inverse of JoinNumbers. Non-numeric parts are
// dropped; a nil or empty input yields an empty sequence.
func SplitNumbers(seq *string) []int {
	if seq == nil || *seq == "" {
		return nil
	}
	var nums []int
	for _, part := range strings.Split(*seq, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}
