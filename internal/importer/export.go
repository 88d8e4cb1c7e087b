package importer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/claude/repsheet/internal/models"
)

// exportHeader is the canonical column layout produced by ExportCSV and
// accepted back by Import.
var exportHeader = []string{
	"date_completed", "body_part", "exercise_name", "laterality", "sets",
	"weight_left", "weight_right", "reps_left", "reps_right",
}

// ExportCSV writes rows in the canonical nine-column layout. Sequence
// cells use semicolon separators so they survive comma-splitting
// spreadsheet tools; Import converts them back.
func ExportCSV(w io.Writer, rows []models.ExerciseRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.DateCompleted,
			row.BodyPart,
			row.ExerciseName,
			row.Laterality,
			strconv.Itoa(row.Sets),
			seqCell(row.WeightLeft),
			seqCell(row.WeightRight),
			seqCell(row.RepsLeft),
			seqCell(row.RepsRight),
		}
		if err := writer.Write(rec); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// seqCell renders a stored sequence for a spreadsheet cell.
func seqCell(seq *string) string {
	if seq == nil {
		return ""
	}
	return strings.ReplaceAll(*seq, ",", ";")
}
