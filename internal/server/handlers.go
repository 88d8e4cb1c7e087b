package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/claude/repsheet/internal/importer"
	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/sheet"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	start, err := dateParam(r, "start")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	end, err := dateParam(r, "end")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.ListExercises(r.Context(), start, end, r.URL.Query().Get("name"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// bodyPartGroup is one section of the picker view: a body part and the
// latest row per exercise under it.
type bodyPartGroup struct {
	BodyPart  string           `json:"body_part"`
	Exercises []recentExercise `json:"exercises"`
}

// recentExercise decorates a row with its printed sheet line so the
// picker can show what was done last time.
type recentExercise struct {
	models.ExerciseRow
	Line string `json:"line"`
}

func (s *Server) handleRecentExercises(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.MostRecentExercises(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, groupByBodyPart(rows))
}

// groupByBodyPart splits rows into catalog order, uncataloged parts
// appended alphabetically. Rows arrive sorted by body part and name.
func groupByBodyPart(rows []models.ExerciseRow) []bodyPartGroup {
	byPart := make(map[string][]recentExercise)
	for _, row := range rows {
		byPart[row.BodyPart] = append(byPart[row.BodyPart], recentExercise{
			ExerciseRow: row,
			Line:        sheet.FormatExerciseLine(row),
		})
	}

	groups := make([]bodyPartGroup, 0, len(byPart))
	for _, part := range models.BodyParts {
		if exercises, ok := byPart[part]; ok {
			groups = append(groups, bodyPartGroup{BodyPart: part, Exercises: exercises})
			delete(byPart, part)
		}
	}

	rest := make([]string, 0, len(byPart))
	for part := range byPart {
		rest = append(rest, part)
	}
	sort.Strings(rest)
	for _, part := range rest {
		groups = append(groups, bodyPartGroup{BodyPart: part, Exercises: byPart[part]})
	}
	return groups
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var row models.ExerciseRow
	if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := row.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	dup, err := s.db.HasDuplicate(r.Context(), row)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if dup {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "duplicate row"})
		return
	}

	id, err := s.db.InsertExercise(r.Context(), row)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	row.ID = id
	writeJSON(w, http.StatusCreated, row)
}

type selectionRequest struct {
	IDs []int64 `json:"ids"`
}

type selectionResponse struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// handleSelection turns checked picker rows into the space-separated id
// string the sheet generator takes on its command line.
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ids required"})
		return
	}

	ids := make([]string, len(req.IDs))
	for i, id := range req.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	writeJSON(w, http.StatusOK, selectionResponse{
		Text:  strings.Join(ids, " "),
		Count: len(ids),
	})
}

func (s *Server) handleBodyParts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.BodyParts)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	dryRun := boolParam(r, "dry_run")
	allowDuplicates := boolParam(r, "all")
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api"
	}

	imp := importer.New(s.db, s.log, dryRun, allowDuplicates)
	stats, err := imp.Import(r.Context(), r.Body, source)
	if err != nil {
		s.log.Error("csv import error", "source", source, "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// dateParam reads an optional YYYY-MM-DD query parameter.
func dateParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", nil
	}
	if _, err := time.Parse(models.DateFormat, v); err != nil {
		return "", err
	}
	return v, nil
}

func boolParam(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}
