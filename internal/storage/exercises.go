package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/repsheet/internal/models"
)

// ErrDuplicate marks an insert refused because an identical row exists.
var ErrDuplicate = errors.New("duplicate exercise row")

const exerciseColumns = `id, date_completed, body_part, exercise_name, laterality, sets,
	 weight_left, weight_right, reps_left, reps_right`

// InsertExercise inserts one exercise row and returns its id.
func (db *DB) InsertExercise(ctx context.Context, row models.ExerciseRow) (int64, error) {
	var id int64
	err := db.SQL.QueryRowContext(ctx,
		`INSERT INTO exercises (date_completed, body_part, exercise_name, laterality, sets,
		 weight_left, weight_right, reps_left, reps_right)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id`,
		row.DateCompleted, row.BodyPart, row.ExerciseName, row.Laterality, row.Sets,
		row.WeightLeft, row.WeightRight, row.RepsLeft, row.RepsRight,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting exercise: %w", err)
	}
	return id, nil
}

// HasDuplicate reports whether a row with the same date, name and
// weight/rep sequences already exists. NULL sequence columns compare
// equal to NULL (COALESCE keeps the probe portable across drivers).
func (db *DB) HasDuplicate(ctx context.Context, row models.ExerciseRow) (bool, error) {
	var count int
	err := db.SQL.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercises
		 WHERE date_completed = $1 AND exercise_name = $2
		   AND COALESCE(weight_left, '') = COALESCE($3, '')
		   AND COALESCE(weight_right, '') = COALESCE($4, '')
		   AND COALESCE(reps_left, '') = COALESCE($5, '')
		   AND COALESCE(reps_right, '') = COALESCE($6, '')`,
		row.DateCompleted, row.ExerciseName,
		row.WeightLeft, row.WeightRight, row.RepsLeft, row.RepsRight,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for duplicate: %w", err)
	}
	return count > 0, nil
}

// LogExercise validates and inserts one row, refusing duplicates with
// ErrDuplicate. The returned row carries the assigned id.
func (db *DB) LogExercise(ctx context.Context, row models.ExerciseRow) (models.ExerciseRow, error) {
	if err := row.Validate(); err != nil {
		return models.ExerciseRow{}, err
	}
	dup, err := db.HasDuplicate(ctx, row)
	if err != nil {
		return models.ExerciseRow{}, err
	}
	if dup {
		return models.ExerciseRow{}, ErrDuplicate
	}
	id, err := db.InsertExercise(ctx, row)
	if err != nil {
		return models.ExerciseRow{}, err
	}
	row.ID = id
	return row, nil
}

// ListExercises returns rows ordered by date then id. start and end
// bound date_completed inclusively when non-empty; name filters by
// case-insensitive substring when non-empty.
func (db *DB) ListExercises(ctx context.Context, start, end, name string) ([]models.ExerciseRow, error) {
	var conds []string
	var args []any
	if start != "" {
		args = append(args, start)
		conds = append(conds, fmt.Sprintf("date_completed >= $%d", len(args)))
	}
	if end != "" {
		args = append(args, end)
		conds = append(conds, fmt.Sprintf("date_completed <= $%d", len(args)))
	}
	if name != "" {
		args = append(args, "%"+strings.ToLower(name)+"%")
		conds = append(conds, fmt.Sprintf("LOWER(exercise_name) LIKE $%d", len(args)))
	}

	query := `SELECT ` + exerciseColumns + ` FROM exercises`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date_completed, id"

	rows, err := db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()
	return scanExercises(rows)
}

// ExercisesByIDs returns the named rows in the order the ids were given.
// Missing ids are skipped silently.
func (db *DB) ExercisesByIDs(ctx context.Context, ids []int64) ([]models.ExerciseRow, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id IN (`+strings.Join(placeholders, ",")+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying exercises by id: %w", err)
	}
	defer rows.Close()

	found, err := scanExercises(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.ExerciseRow, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	var ordered []models.ExerciseRow
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

// MostRecentExercises returns the latest row per exercise name, ordered
// by body part then name. This is the sheet-building view: the last
// known performance for everything ever logged.
func (db *DB) MostRecentExercises(ctx context.Context) ([]models.ExerciseRow, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT e.id, e.date_completed, e.body_part, e.exercise_name, e.laterality, e.sets,
		 e.weight_left, e.weight_right, e.reps_left, e.reps_right
		 FROM exercises e
		 INNER JOIN (
		     SELECT exercise_name, MAX(date_completed) AS max_date
		     FROM exercises
		     GROUP BY exercise_name
		 ) recent ON e.exercise_name = recent.exercise_name AND e.date_completed = recent.max_date
		 ORDER BY e.body_part, e.exercise_name`)
	if err != nil {
		return nil, fmt.Errorf("querying recent exercises: %w", err)
	}
	defer rows.Close()
	return scanExercises(rows)
}

// BodyPartsByExercise returns the name → body part mapping derived from
// history. When an exercise was logged under several body parts the
// latest row wins.
func (db *DB) BodyPartsByExercise(ctx context.Context) (map[string]string, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT exercise_name, body_part FROM exercises ORDER BY date_completed, id`)
	if err != nil {
		return nil, fmt.Errorf("querying body parts: %w", err)
	}
	defer rows.Close()

	lookup := make(map[string]string)
	for rows.Next() {
		var name, part string
		if err := rows.Scan(&name, &part); err != nil {
			return nil, fmt.Errorf("scanning body part: %w", err)
		}
		lookup[name] = part
	}
	return lookup, rows.Err()
}

func scanExercises(rows *sql.Rows) ([]models.ExerciseRow, error) {
	var result []models.ExerciseRow
	for rows.Next() {
		var r models.ExerciseRow
		if err := rows.Scan(&r.ID, &r.DateCompleted, &r.BodyPart, &r.ExerciseName,
			&r.Laterality, &r.Sets, &r.WeightLeft, &r.WeightRight, &r.RepsLeft, &r.RepsRight); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
