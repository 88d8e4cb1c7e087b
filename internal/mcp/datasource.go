package mcp

import (
	"context"

	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	ListExercises(ctx context.Context, start, end, name string) ([]models.ExerciseRow, error)
	MostRecentExercises(ctx context.Context) ([]models.ExerciseRow, error)
	LogExercise(ctx context.Context, row models.ExerciseRow) (models.ExerciseRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
