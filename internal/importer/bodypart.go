package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/claude/repsheet/internal/models"
)

// BodyPartStats summarizes a body part backfill run.
type BodyPartStats struct {
	RowsProcessed int
	RowsResolved  int
	UnknownNames  []string
}

// AddBodyPartColumn rewrites an exercise CSV that predates the body_part
// column, inserting one after date_completed. Body parts come from the
// lookup map (exercise name to body part); unmatched names get "Unknown".
func AddBodyPartColumn(r io.Reader, w io.Writer, lookup map[string]string) (*BodyPartStats, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(w)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	dateIdx, exerciseIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "date_completed":
			dateIdx = i
		case "exercise_name":
			exerciseIdx = i
		}
	}
	if dateIdx < 0 || exerciseIdx < 0 {
		return nil, fmt.Errorf("input CSV must have date_completed and exercise_name columns")
	}

	if err := writer.Write(insertAt(header, dateIdx+1, "body_part")); err != nil {
		return nil, err
	}

	stats := &BodyPartStats{}
	unknown := map[string]bool{}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		if len(rec) <= exerciseIdx {
			continue
		}

		name := rec[exerciseIdx]
		bodyPart, ok := lookup[name]
		if !ok {
			bodyPart = models.UnknownBodyPart
			unknown[name] = true
		} else {
			stats.RowsResolved++
		}

		if err := writer.Write(insertAt(rec, dateIdx+1, bodyPart)); err != nil {
			return nil, err
		}
		stats.RowsProcessed++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	for name := range unknown {
		stats.UnknownNames = append(stats.UnknownNames, name)
	}
	sort.Strings(stats.UnknownNames)
	return stats, nil
}

// insertAt returns row with v inserted at position i (clamped to the
// row's length for short rows).
func insertAt(row []string, i int, v string) []string {
	if i > len(row) {
		i = len(row)
	}
	out := make([]string, 0, len(row)+1)
	out = append(out, row[:i]...)
	out = append(out, v)
	out = append(out, row[i:]...)
	return out
}
