// Package boxes parses the handwritten annotation boxes of a scanned
// workout sheet into structured exercise records.
//
// The grammar is deliberately forgiving so that hastily written notes
// still come through:
//
//   - a number followed by # is a weight, "x" or "×" separates it from
//     a rep count ("90# x 10")
//   - further comma-separated numbers are extra sets at the last weight
//   - "L -" / "R -" sections denote a bilateral exercise
//   - anything else is preserved as extra text
//
// Parsing never fails on malformed annotation text; suspicious input
// degrades to warnings and, at worst, an all-zero record.
package boxes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/repsheet/internal/models"
)

const (
	leftMarker  = "L -"
	rightMarker = "R -"

	weightMark = '#'

	// maxDigits bounds a plausible weight or rep count. OCR fuses
	// adjacent handwritten numbers often enough that longer runs are
	// rejected rather than guessed at.
	maxDigits = 3
)

var (
	// pairRe matches a weight/rep pair: "90# x 10", "0#x25". Digit runs
	// are maximal so a fused token like "1234" is seen whole and can be
	// rejected whole.
	pairRe = regexp.MustCompile(`(\d+)#\s*[xX]\s*(\d+)`)

	// numRe matches a standalone digit run, like the "8" in "10, 8".
	numRe = regexp.MustCompile(`\d+`)
)

// sideResult holds the numbers and leftover text parsed from one side.
type sideResult struct {
	weights []int
	reps    []int
	residue string
}

// Parse turns one annotation box into a structured exercise record.
// The returned warnings flag suspicious input that was skipped or
// papered over; the error is non-nil only when the box has no exercise
// name.
func Parse(box models.SheetBox) (models.SheetExercise, []models.ParseWarning, error) {
	name := strings.TrimSpace(box.ExerciseName)
	if name == "" {
		return models.SheetExercise{}, nil, fmt.Errorf("box %q has no exercise name", box.Text)
	}

	if left, right, ok := splitSides(box.Text); ok {
		leftRes, warnings := parseSide(left, box.Text)
		rightRes, rightWarn := parseSide(right, box.Text)
		warnings = append(warnings, rightWarn...)

		if len(leftRes.reps) != len(rightRes.reps) {
			warnings = append(warnings, models.ParseWarning{
				BoxText: box.Text,
				Reason:  models.WarnSideCountMismatch,
			})
		}

		return models.SheetExercise{
			ExerciseName: name,
			Laterality:   models.Bilateral,
			WeightLeft:   leftRes.weights,
			WeightRight:  rightRes.weights,
			RepsLeft:     leftRes.reps,
			RepsRight:    rightRes.reps,
			Sets:         max(len(leftRes.reps), len(rightRes.reps)),
			ExtraText:    joinExtra(leftRes.residue, rightRes.residue),
		}, warnings, nil
	}

	res, warnings := parseSide(box.Text, box.Text)
	return models.SheetExercise{
		ExerciseName: name,
		Laterality:   models.Unilateral,
		WeightLeft:   res.weights,
		RepsLeft:     res.reps,
		Sets:         len(res.reps),
		ExtraText:    res.residue,
	}, warnings, nil
}

// splitSides splits bilateral box text at the first "L -" and the first
// "R -" after it. Both markers must be present, in that order.
func splitSides(text string) (left, right string, ok bool) {
	li := strings.Index(text, leftMarker)
	if li < 0 {
		return "", "", false
	}
	rest := text[li+len(leftMarker):]
	ri := strings.Index(rest, rightMarker)
	if ri < 0 {
		return "", "", false
	}
	return rest[:ri], rest[ri+len(rightMarker):], true
}

// parseSide parses the annotation text for one side of an exercise.
// boxText is the full box content, carried into warnings for context.
func parseSide(data, boxText string) (sideResult, []models.ParseWarning) {
	var res sideResult
	var warnings []models.ParseWarning

	work := strings.ReplaceAll(data, "×", "x")

	// Weight/rep pairs first. Matched spans are consumed even when a
	// token fails validation, so their digits are not recounted as
	// standalone numbers below.
	for _, m := range pairRe.FindAllStringSubmatchIndex(work, -1) {
		wTok := work[m[2]:m[3]]
		rTok := work[m[4]:m[5]]
		ok := true
		for _, tok := range []string{wTok, rTok} {
			if !validNumber(tok) {
				ok = false
				warnings = append(warnings, models.ParseWarning{
					BoxText: boxText,
					Token:   tok,
					Reason:  models.WarnDigitsTooLong,
				})
			}
		}
		if !ok {
			continue
		}
		w, _ := strconv.Atoi(wTok)
		r, _ := strconv.Atoi(rTok)
		res.weights = append(res.weights, w)
		res.reps = append(res.reps, r)
	}
	work = pairRe.ReplaceAllString(work, "")

	// Remaining digit runs are rep counts sharing the last explicit
	// pair's weight, or 0 when the side never named one.
	lastWeight := 0
	if len(res.weights) > 0 {
		lastWeight = res.weights[len(res.weights)-1]
	}
	for _, m := range numRe.FindAllStringIndex(work, -1) {
		if isSettingRef(work, m[0]) {
			continue
		}
		tok := work[m[0]:m[1]]
		if !validNumber(tok) {
			warnings = append(warnings, models.ParseWarning{
				BoxText: boxText,
				Token:   tok,
				Reason:  models.WarnDigitsTooLong,
			})
			continue
		}
		r, _ := strconv.Atoi(tok)
		res.reps = append(res.reps, r)
		res.weights = append(res.weights, lastWeight)
	}
	work = numRe.ReplaceAllString(work, "")

	res.residue = cleanResidue(work)
	return res, warnings
}

// validNumber is the digit-length gate: a weight or rep token is
// plausible only at one to three digits.
func validNumber(token string) bool {
	return len(token) >= 1 && len(token) <= maxDigits
}

// isSettingRef reports whether the digit run starting at start sits
// directly behind a '#', as in "#4": an equipment-setting note rather
// than a rep count.
func isSettingRef(text string, start int) bool {
	return start > 0 && text[start-1] == weightMark
}

// cleanResidue keeps whatever real content remains after number
// extraction, dropping fragments that are nothing but parser syntax
// ("#", "x", stray commas and dashes).
func cleanResidue(s string) string {
	var kept []string
	for _, f := range strings.Fields(s) {
		if strings.Trim(f, "#xX×,-") == "" {
			continue
		}
		kept = append(kept, strings.Trim(f, ","))
	}
	return strings.Join(kept, " ")
}

// joinExtra joins the non-empty residues with a space.
func joinExtra(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
