package mcp

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/storage"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultDateRange returns canonical start/end dates defaulting to the
// last 30 days ending today.
func defaultDateRange(startStr, endStr string) (string, string, error) {
	end, err := parseFlexDate(endStr)
	if err != nil {
		return "", "", err
	}
	if end == "" {
		end = time.Now().Format(models.DateFormat)
	}

	start, err := parseFlexDate(startStr)
	if err != nil {
		return "", "", err
	}
	if start == "" {
		endDay, err := time.Parse(models.DateFormat, end)
		if err != nil {
			return "", "", err
		}
		start = endDay.AddDate(0, 0, -30).Format(models.DateFormat)
	}

	return start, end, nil
}

// parseFlexDate accepts YYYY-MM-DD or ISO 8601 and returns the
// canonical date form. Empty input passes through.
func parseFlexDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if t, err := time.Parse(models.DateFormat, s); err == nil {
		return t.Format(models.DateFormat), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", err
	}
	return t.Format(models.DateFormat), nil
}

// --- Tool definitions ---

var toolGetExerciseLog = mcp.NewTool("get_exercise_log",
	mcp.WithDescription("Retrieve logged exercises in a date range. Each row is one exercise on one date with comma-joined per-set weights and reps; bilateral rows carry both sides."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 30 days before end.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetExerciseHistory = mcp.NewTool("get_exercise_history",
	mcp.WithDescription("Retrieve every logged row for exercises whose name contains the given text, oldest first. Useful for progression questions."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name or fragment (case-insensitive, e.g. 'bench')")),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to all history.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to all history.")),
)

var toolGetRecentExercises = mcp.NewTool("get_recent_exercises",
	mcp.WithDescription("The most recent logged row per distinct exercise name: what was done last time, for planning the next sheet."),
	mcp.WithString("body_part", mcp.Description("Filter to one body part (e.g. 'Chest', 'Quads')")),
)

var toolLogExercise = mcp.NewTool("log_exercise",
	mcp.WithDescription("Append one exercise row to the log. Weight and rep fields are comma-separated with one value per set (sets=3 needs e.g. reps_left='10,8,6'). Bilateral exercises need both sides; unilateral must leave the right side empty."),
	mcp.WithString("date", mcp.Description("Completion date (YYYY-MM-DD). Defaults to today.")),
	mcp.WithString("body_part", mcp.Required(), mcp.Description("Body part from the catalog (e.g. 'Chest', 'Upper Back')")),
	mcp.WithString("exercise_name", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithString("laterality", mcp.Required(), mcp.Description("Whether the sides were worked separately"), mcp.Enum("bilateral", "unilateral")),
	mcp.WithNumber("sets", mcp.Required(), mcp.Description("Number of sets performed")),
	mcp.WithString("weight_left", mcp.Required(), mcp.Description("Comma-separated weights, one per set")),
	mcp.WithString("reps_left", mcp.Required(), mcp.Description("Comma-separated reps, one per set")),
	mcp.WithString("weight_right", mcp.Description("Comma-separated right-side weights (bilateral only)")),
	mcp.WithString("reps_right", mcp.Description("Comma-separated right-side reps (bilateral only)")),
)

// --- Tool handlers ---

func (h *handlers) getExerciseLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.ds.ListExercises(ctx, start, end, "")
	if err != nil {
		h.log.Error("mcp get_exercise_log", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	start, err := parseFlexDate(req.GetString("start", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	end, err := parseFlexDate(req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.ds.ListExercises(ctx, start, end, name)
	if err != nil {
		h.log.Error("mcp get_exercise_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.MostRecentExercises(ctx)
	if err != nil {
		h.log.Error("mcp get_recent_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if part := req.GetString("body_part", ""); part != "" {
		var filtered []models.ExerciseRow
		for _, row := range rows {
			if strings.EqualFold(row.BodyPart, part) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bodyPart, err := req.RequireString("body_part")
	if err != nil {
		return mcp.NewToolResultError("body_part parameter is required"), nil
	}
	name, err := req.RequireString("exercise_name")
	if err != nil {
		return mcp.NewToolResultError("exercise_name parameter is required"), nil
	}
	laterality, err := req.RequireString("laterality")
	if err != nil {
		return mcp.NewToolResultError("laterality parameter is required"), nil
	}
	sets, err := req.RequireInt("sets")
	if err != nil {
		return mcp.NewToolResultError("sets parameter is required"), nil
	}

	date, err := parseFlexDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	if date == "" {
		date = time.Now().Format(models.DateFormat)
	}

	row := models.ExerciseRow{
		DateCompleted: date,
		BodyPart:      bodyPart,
		ExerciseName:  name,
		Laterality:    strings.ToLower(laterality),
		Sets:          sets,
		WeightLeft:    seqArg(req, "weight_left"),
		WeightRight:   seqArg(req, "weight_right"),
		RepsLeft:      seqArg(req, "reps_left"),
		RepsRight:     seqArg(req, "reps_right"),
	}

	logged, err := h.ds.LogExercise(ctx, row)
	if errors.Is(err, storage.ErrDuplicate) {
		return mcp.NewToolResultError("an identical row already exists for that date"), nil
	}
	if err != nil {
		h.log.Error("mcp log_exercise", "error", err)
		return mcp.NewToolResultError("log failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(logged)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// seqArg reads a comma-separated sequence argument, nil when absent.
func seqArg(req mcp.CallToolRequest, key string) *string {
	v := strings.TrimSpace(req.GetString(key, ""))
	if v == "" {
		return nil
	}
	return &v
}
