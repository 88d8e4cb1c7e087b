package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/claude/repsheet/internal/config"
	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/sheet"
	"github.com/claude/repsheet/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	ids := flag.String("ids", "", "exercise row ids to print, space or comma separated (from the picker)")
	exercisesPath := flag.String("exercises", "", "file with one exercise line per sheet box")
	date := flag.String("date", "", "date for the sheet title (YYYY-MM-DD, defaults to today)")
	name := flag.String("name", "Workout", "name of the workout for the sheet title")
	output := flag.String("o", "", "output PDF path (defaults to '<date> Workout.pdf')")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dateStr := *date
	if dateStr == "" {
		dateStr = time.Now().Format(models.DateFormat)
	} else if _, err := time.Parse(models.DateFormat, dateStr); err != nil {
		log.Error("invalid date, want YYYY-MM-DD", "date", dateStr)
		os.Exit(1)
	}

	var lines []string
	var err error
	switch {
	case *ids != "" && *exercisesPath != "":
		fmt.Fprintf(os.Stderr, "Error: -ids and -exercises are mutually exclusive\n")
		os.Exit(1)
	case *ids != "":
		lines, err = linesFromIDs(*configPath, *ids, log)
	case *exercisesPath != "":
		lines, err = linesFromFile(*exercisesPath)
	default:
		fmt.Fprintf(os.Stderr, "Usage: repsheet-sheet -ids \"12 7 31\" [-date YYYY-MM-DD] [-name Push] [-o out.pdf]\n")
		fmt.Fprintf(os.Stderr, "       repsheet-sheet -exercises exercises.txt [-date YYYY-MM-DD] [-o out.pdf]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if err != nil {
		log.Error("collecting exercises failed", "error", err)
		os.Exit(1)
	}
	if len(lines) == 0 {
		log.Error("no exercises to print")
		os.Exit(1)
	}

	outPath := *output
	if outPath == "" {
		outPath = dateStr + " Workout.pdf"
	}
	title := fmt.Sprintf("%s - %s", dateStr, *name)

	f, err := os.Create(outPath)
	if err != nil {
		log.Error("cannot create output", "file", outPath, "error", err)
		os.Exit(1)
	}
	if err := sheet.Generate(f, title, lines); err != nil {
		f.Close()
		log.Error("sheet generation failed", "error", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		log.Error("writing output failed", "file", outPath, "error", err)
		os.Exit(1)
	}

	log.Info("sheet created", "output", outPath, "exercises", len(lines))
}

// linesFromIDs resolves picker ids to rows and renders one printed line
// per row, carrying the last recorded weights and reps.
func linesFromIDs(configPath, idsArg string, log *slog.Logger) ([]string, error) {
	ids, err := parseIDs(idsArg)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.ExercisesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) < len(ids) {
		log.Warn("some ids were not found", "requested", len(ids), "found", len(rows))
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, sheet.FormatExerciseLine(row))
	}
	return lines, nil
}

func linesFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func parseIDs(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return nil, fmt.Errorf("no ids in %q", s)
	}

	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q", f)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
