package models

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical date encoding for date_completed columns.
const DateFormat = "2006-01-02"

// ExerciseRow is a row of the exercises table. Sequence columns hold the
// comma-joined encoding ("90,90"); nil means no data for that side.
type ExerciseRow struct {
	ID            int64   `json:"id"`
	DateCompleted string  `json:"date_completed"`
	BodyPart      string  `json:"body_part"`
	ExerciseName  string  `json:"exercise_name"`
	Laterality    string  `json:"laterality"`
	Sets          int     `json:"sets"`
	WeightLeft    *string `json:"weight_left"`
	WeightRight   *string `json:"weight_right"`
	RepsLeft      *string `json:"reps_left"`
	RepsRight     *string `json:"reps_right"`
}

// Row converts a parsed sheet exercise into a storable row.
func (e SheetExercise) Row(date, bodyPart string) ExerciseRow {
	return ExerciseRow{
		DateCompleted: date,
		BodyPart:      bodyPart,
		ExerciseName:  e.ExerciseName,
		Laterality:    string(e.Laterality),
		Sets:          e.Sets,
		WeightLeft:    JoinNumbers(e.WeightLeft),
		WeightRight:   JoinNumbers(e.WeightRight),
		RepsLeft:      JoinNumbers(e.RepsLeft),
		RepsRight:     JoinNumbers(e.RepsRight),
	}
}

// Validate applies the strict entry rules used on manual adds: known
// body part, valid laterality, positive sets, and per-side weight/rep
// counts equal to sets.
func (r ExerciseRow) Validate() error {
	if !IsKnownBodyPart(r.BodyPart) {
		return fmt.Errorf("invalid body part: %s", r.BodyPart)
	}
	return r.ValidateShape()
}

// ValidateShape applies every entry rule except the body part catalog
// check. Ingest paths keep uncataloged body parts (including the
// "Unknown" fallback for never-logged exercises) rather than reject
// the row.
func (r ExerciseRow) ValidateShape() error {
	if strings.TrimSpace(r.ExerciseName) == "" {
		return fmt.Errorf("exercise name is required")
	}
	if _, err := time.Parse(DateFormat, r.DateCompleted); err != nil {
		return fmt.Errorf("date_completed %q is not YYYY-MM-DD", r.DateCompleted)
	}
	if !ValidLaterality(r.Laterality) {
		return fmt.Errorf("invalid laterality: %s", r.Laterality)
	}
	if r.Sets <= 0 {
		return fmt.Errorf("sets must be a positive integer")
	}

	if err := checkSeq("weight_left", r.WeightLeft, r.Sets); err != nil {
		return err
	}
	if err := checkSeq("reps_left", r.RepsLeft, r.Sets); err != nil {
		return err
	}
	if r.Laterality == string(Bilateral) {
		if err := checkSeq("weight_right", r.WeightRight, r.Sets); err != nil {
			return err
		}
		if err := checkSeq("reps_right", r.RepsRight, r.Sets); err != nil {
			return err
		}
	} else if r.WeightRight != nil || r.RepsRight != nil {
		return fmt.Errorf("unilateral exercises cannot have right-side values")
	}
	return nil
}

// checkSeq verifies a comma-joined sequence holds exactly want numbers.
func checkSeq(field string, seq *string, want int) error {
	if seq == nil || *seq == "" {
		return fmt.Errorf("%s is required", field)
	}
	parts := strings.Split(*seq, ",")
	if len(parts) != want {
		return fmt.Errorf("%s has %d values, want %d (one per set)", field, len(parts), want)
	}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return fmt.Errorf("%s has an empty value", field)
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return fmt.Errorf("%s value %q is not a number", field, p)
			}
		}
	}
	return nil
}
