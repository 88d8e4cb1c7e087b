package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stats tracks import progress.
type Stats struct {
	RowsRead     int   `json:"rows_read"`
	RowsImported int64 `json:"rows_imported"`
	RowsSkipped  int64 `json:"rows_skipped"`
	RowsErrored  int   `json:"rows_errored"`

	UnknownBodyParts []string `json:"unknown_body_parts,omitempty"`
}

// Importer reads exercise CSV data and inserts rows into the DB.
type Importer struct {
	db              *storage.DB
	log             *slog.Logger
	dryRun          bool
	allowDuplicates bool
	stats           Stats

	unknownBodyParts map[string]bool
}

// New creates a new Importer.
func New(db *storage.DB, log *slog.Logger, dryRun, allowDuplicates bool) *Importer {
	return &Importer{
		db:               db,
		log:              log,
		dryRun:           dryRun,
		allowDuplicates:  allowDuplicates,
		unknownBodyParts: map[string]bool{},
	}
}

// requiredColumns must all appear in the CSV header. Sequence columns
// (weight_left, weight_right, reps_left, reps_right) are optional.
var requiredColumns = []string{"date_completed", "body_part", "exercise_name", "laterality", "sets"}

// Import reads header-mapped CSV rows from r and inserts them.
// Malformed rows are logged and counted without aborting the batch;
// only database failures are fatal. A completed non-dry run records an
// import_logs row under a fresh batch id.
func (imp *Importer) Import(ctx context.Context, r io.Reader, source string) (*Stats, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return &imp.stats, fmt.Errorf("reading CSV header: %w", err)
	}
	idx, err := headerIndex(header)
	if err != nil {
		return &imp.stats, err
	}

	caser := cases.Title(language.English)

	// Header is row 1
	for rowNum := 2; ; rowNum++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			imp.log.Warn("unreadable row", "row", rowNum, "error", err)
			imp.stats.RowsRead++
			imp.stats.RowsErrored++
			continue
		}
		imp.stats.RowsRead++

		row, ok := imp.convertRow(rec, idx, rowNum, caser)
		if !ok {
			imp.stats.RowsErrored++
			continue
		}

		if !imp.allowDuplicates {
			dup, err := imp.db.HasDuplicate(ctx, row)
			if err != nil {
				return &imp.stats, fmt.Errorf("checking duplicate at row %d: %w", rowNum, err)
			}
			if dup {
				imp.log.Info("skipping duplicate row", "row", rowNum,
					"exercise", row.ExerciseName, "date", row.DateCompleted)
				imp.stats.RowsSkipped++
				continue
			}
		}

		if imp.dryRun {
			imp.stats.RowsImported++
			continue
		}
		if _, err := imp.db.InsertExercise(ctx, row); err != nil {
			return &imp.stats, fmt.Errorf("inserting row %d (%s): %w", rowNum, row.ExerciseName, err)
		}
		imp.stats.RowsImported++
	}

	for name := range imp.unknownBodyParts {
		imp.stats.UnknownBodyParts = append(imp.stats.UnknownBodyParts, name)
	}
	sort.Strings(imp.stats.UnknownBodyParts)

	if !imp.dryRun {
		imp.recordBatch(ctx, source, start)
	}

	return &imp.stats, nil
}

// convertRow validates one CSV record and builds the storable row.
// Returns false when the record must be skipped.
func (imp *Importer) convertRow(rec []string, idx map[string]int, rowNum int, caser cases.Caser) (models.ExerciseRow, bool) {
	date, err := parseDate(strings.TrimSpace(cell(rec, idx, "date_completed")))
	if err != nil {
		imp.log.Warn("skipping row", "row", rowNum, "error", err)
		return models.ExerciseRow{}, false
	}

	name := strings.TrimSpace(cell(rec, idx, "exercise_name"))
	if name == "" {
		imp.log.Warn("skipping row", "row", rowNum, "error", "empty exercise name")
		return models.ExerciseRow{}, false
	}

	laterality := strings.ToLower(strings.TrimSpace(cell(rec, idx, "laterality")))
	if !models.ValidLaterality(laterality) {
		imp.log.Warn("skipping row", "row", rowNum, "error", fmt.Sprintf("invalid laterality %q", laterality))
		return models.ExerciseRow{}, false
	}

	sets, err := strconv.Atoi(strings.TrimSpace(cell(rec, idx, "sets")))
	if err != nil || sets <= 0 {
		imp.log.Warn("skipping row", "row", rowNum, "error", fmt.Sprintf("invalid sets value %q", cell(rec, idx, "sets")))
		return models.ExerciseRow{}, false
	}

	row := models.ExerciseRow{
		DateCompleted: date,
		BodyPart:      imp.normalizeBodyPart(strings.TrimSpace(cell(rec, idx, "body_part")), rowNum, caser),
		ExerciseName:  name,
		Laterality:    laterality,
		Sets:          sets,
		WeightLeft:    normalizeSeq(cell(rec, idx, "weight_left")),
		RepsLeft:      normalizeSeq(cell(rec, idx, "reps_left")),
	}
	// Unilateral rows never store right-side values, whatever the sheet says
	if laterality == string(models.Bilateral) {
		row.WeightRight = normalizeSeq(cell(rec, idx, "weight_right"))
		row.RepsRight = normalizeSeq(cell(rec, idx, "reps_right"))
	}
	return row, true
}

// normalizeBodyPart maps a raw body part cell to its catalog form.
// Unknown values are title-cased, warned about, and kept; the import
// does not reject rows over an unrecognized body part.
func (imp *Importer) normalizeBodyPart(bp string, rowNum int, caser cases.Caser) string {
	if bp == "" {
		imp.log.Warn("empty body part, storing as Unknown", "row", rowNum)
		imp.unknownBodyParts[models.UnknownBodyPart] = true
		return models.UnknownBodyPart
	}
	if models.IsKnownBodyPart(bp) {
		return bp
	}
	normalized := caser.String(strings.ToLower(bp))
	if !models.IsKnownBodyPart(normalized) {
		imp.log.Warn("unknown body part, proceeding anyway", "row", rowNum, "body_part", normalized)
		imp.unknownBodyParts[normalized] = true
	}
	return normalized
}

// recordBatch writes the import_logs row for a completed run.
func (imp *Importer) recordBatch(ctx context.Context, source string, start time.Time) {
	durationMs := int(time.Since(start).Milliseconds())
	status := "completed"
	if imp.stats.RowsErrored > 0 {
		status = "completed_with_errors"
	}
	row := storage.ImportLog{
		BatchID:      uuid.NewString(),
		Source:       source,
		Status:       status,
		RowsReceived: imp.stats.RowsRead,
		RowsInserted: imp.stats.RowsImported,
		RowsSkipped:  imp.stats.RowsSkipped,
		RowsErrored:  imp.stats.RowsErrored,
		WarningCount: len(imp.stats.UnknownBodyParts),
		DurationMs:   &durationMs,
	}
	if _, err := imp.db.InsertImportLog(ctx, row); err != nil {
		imp.log.Warn("recording import log failed", "error", err)
	}
}

// dateFormats are the accepted date_completed input layouts, tried in order.
var dateFormats = []string{"2006-01-02", "01/02/2006", "02/01/2006", "2006/01/02"}

// parseDate normalizes a date cell to YYYY-MM-DD.
func parseDate(s string) (string, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(models.DateFormat), nil
		}
	}
	return "", fmt.Errorf("unable to parse date: %q", s)
}

// normalizeSeq converts a spreadsheet sequence cell to the stored form.
// Semicolon separators become commas; empty cells become NULL.
func normalizeSeq(cellValue string) *string {
	cellValue = strings.TrimSpace(cellValue)
	if cellValue == "" {
		return nil
	}
	cellValue = strings.ReplaceAll(cellValue, ";", ",")
	return &cellValue
}

// headerIndex maps lowercased column names to positions and checks that
// every required column is present. A UTF-8 BOM on the first cell is
// tolerated.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return idx, nil
}

// cell returns the named column's value, or "" for short rows.
func cell(rec []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}
