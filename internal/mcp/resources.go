package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/repsheet/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentExercises(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	rows, err := h.ds.MostRecentExercises(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.ExerciseRow)
	for _, row := range rows {
		grouped[row.BodyPart] = append(grouped[row.BodyPart], row)
	}

	data, err := json.Marshal(grouped)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
