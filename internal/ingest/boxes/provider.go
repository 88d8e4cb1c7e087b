package boxes

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/claude/repsheet/internal/ingest"
	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/storage"
)

// Provider stores parsed exercise boxes as completed exercises.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new exercise box ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses each box and inserts the resulting rows under the given
// completion date. Body parts are resolved from previous entries for the
// same exercise name; names never logged before fall back to "Unknown".
// Blank boxes and duplicates of already-stored rows are skipped, and rows
// that fail validation are counted but do not abort the batch.
func (p *Provider) Ingest(ctx context.Context, box []models.SheetBox, date string) (*ingest.Result, []models.ParseWarning, error) {
	lookup, err := p.db.BodyPartsByExercise(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading body part lookup: %w", err)
	}

	result := &ingest.Result{BoxesReceived: len(box)}
	var warnings []models.ParseWarning
	unknown := make(map[string]bool)

	for _, b := range box {
		ex, warns, err := Parse(b)
		if err != nil {
			p.log.Warn("skipping unparseable box", "text", b.Text, "error", err)
			result.RowsErrored++
			continue
		}
		warnings = append(warnings, warns...)

		if ex.Sets == 0 {
			p.log.Debug("skipping blank box", "exercise", ex.ExerciseName)
			result.RowsSkipped++
			continue
		}

		bodyPart, ok := lookup[ex.ExerciseName]
		if !ok {
			bodyPart = models.UnknownBodyPart
			unknown[ex.ExerciseName] = true
		}

		row := ex.Row(date, bodyPart)
		if err := row.ValidateShape(); err != nil {
			p.log.Warn("skipping invalid row", "exercise", ex.ExerciseName, "error", err)
			result.RowsErrored++
			continue
		}

		dup, err := p.db.HasDuplicate(ctx, row)
		if err != nil {
			return nil, nil, fmt.Errorf("checking duplicate for %q: %w", ex.ExerciseName, err)
		}
		if dup {
			p.log.Debug("skipping duplicate row", "exercise", ex.ExerciseName, "date", date)
			result.RowsSkipped++
			continue
		}

		if _, err := p.db.InsertExercise(ctx, row); err != nil {
			return nil, nil, fmt.Errorf("inserting %q: %w", ex.ExerciseName, err)
		}
		result.RowsInserted++
	}

	result.WarningCount = len(warnings)
	for name := range unknown {
		result.UnknownBodyParts = append(result.UnknownBodyParts, name)
	}
	sort.Strings(result.UnknownBodyParts)

	return result, warnings, nil
}
