package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/repsheet/internal/config"
	"github.com/claude/repsheet/internal/ingest/boxes"
	"github.com/claude/repsheet/internal/models"
	"github.com/claude/repsheet/internal/ocr"
	"github.com/claude/repsheet/internal/scan"
	"github.com/claude/repsheet/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (only used with -store)")
	dir := flag.String("dir", "", "scan every new PDF under this directory")
	date := flag.String("date", "", "workout date (YYYY-MM-DD); defaults to the date in the sheet title")
	store := flag.Bool("store", false, "insert parsed exercises into the database")
	dryRun := flag.Bool("dry-run", false, "parse and print records to stdout without writing anything")
	dpi := flag.Int("dpi", 300, "rasterization resolution for PDF pages")
	lang := flag.String("lang", "eng", "OCR language")
	stateDir := flag.String("state", "", "state directory for -dir runs (default ~/.repsheet-scan)")
	namesPath := flag.String("names", "", "file with one exercise name per line (required for image input)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *dir == "" && flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: repsheet-scan [flags] sheet.pdf\n")
		fmt.Fprintf(os.Stderr, "       repsheet-scan [flags] -names names.txt sheet.png\n")
		fmt.Fprintf(os.Stderr, "       repsheet-scan [flags] -dir scans/\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *date != "" {
		if _, err := time.Parse(models.DateFormat, *date); err != nil {
			log.Error("invalid date, want YYYY-MM-DD", "date", *date)
			os.Exit(1)
		}
	}

	// OCR client; default builds carry a stub that refuses here.
	client, err := ocr.New()
	if err != nil {
		log.Error("OCR unavailable", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.SetLanguage(*lang); err != nil {
		log.Error("setting OCR language failed", "error", err)
		os.Exit(1)
	}
	if err := client.SetWhitelist(scan.Whitelist); err != nil {
		log.Error("setting OCR whitelist failed", "error", err)
		os.Exit(1)
	}
	if err := client.SetPageSegMode(ocr.PSM_SINGLE_BLOCK); err != nil {
		log.Error("setting OCR segmentation mode failed", "error", err)
		os.Exit(1)
	}

	scanner := scan.New(client, log, *dpi)

	// Database only comes into play with -store.
	ctx := context.Background()
	var provider *boxes.Provider
	if *store && !*dryRun {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		if err := storage.RunMigrations(cfg.Database.Driver, cfg.Database.MigrateURL()); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			log.Error("failed to connect database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		provider = boxes.NewProvider(db, log)
	}

	if *dir != "" {
		sd := *stateDir
		if sd == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				log.Error("failed to get home directory", "error", err)
				os.Exit(1)
			}
			sd = filepath.Join(home, ".repsheet-scan")
		}

		state, err := scan.OpenStateDB(sd)
		if err != nil {
			log.Error("failed to open state database", "error", err)
			os.Exit(1)
		}
		defer state.Close()

		stats, err := scanner.RunDir(*dir, state, func(res *scan.SheetResult) error {
			return processResult(ctx, *res, *date, *dryRun, provider, log)
		})
		if err != nil {
			log.Error("directory scan failed", "error", err)
			os.Exit(1)
		}
		log.Info("scan stats",
			"files_processed", stats.FilesProcessed,
			"files_skipped", stats.FilesSkipped,
			"files_errored", stats.FilesErrored,
			"boxes_extracted", stats.BoxesExtracted,
		)
		if stats.FilesErrored > 0 {
			os.Exit(1)
		}
		return
	}

	path := flag.Arg(0)
	var res *scan.SheetResult
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		res, err = scanner.ScanPDF(path)
	} else {
		if *namesPath == "" {
			log.Error("image input needs -names with the sheet's exercise names")
			os.Exit(1)
		}
		var names []string
		names, err = readNames(*namesPath)
		if err == nil {
			res, err = scanner.ScanImage(path, names)
		}
	}
	if err != nil {
		log.Error("scan failed", "file", path, "error", err)
		os.Exit(1)
	}
	if err := processResult(ctx, *res, *date, *dryRun, provider, log); err != nil {
		log.Error("processing failed", "file", path, "error", err)
		os.Exit(1)
	}
}

func readNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names, nil
}

// processResult parses one scanned sheet and either stores the rows,
// writes a JSON file next to the input, or prints to stdout (dry run).
func processResult(ctx context.Context, res scan.SheetResult, date string, dryRun bool, provider *boxes.Provider, log *slog.Logger) error {
	if provider != nil {
		if date == "" {
			date = dateFromTitle(res.Title)
		}
		if date == "" {
			return fmt.Errorf("no workout date: pass -date or print sheets with a dated title")
		}

		result, warnings, err := provider.Ingest(ctx, res.Boxes, date)
		if err != nil {
			return err
		}
		logWarnings(warnings, log)
		log.Info("stored scan",
			"file", res.File,
			"date", date,
			"rows_inserted", result.RowsInserted,
			"rows_skipped", result.RowsSkipped,
			"rows_errored", result.RowsErrored,
		)
		if len(result.UnknownBodyParts) > 0 {
			log.Info("unknown body parts (logged as Unknown)", "names", result.UnknownBodyParts)
		}
		return nil
	}

	records, warnings := parseBoxes(res.Boxes, log)
	logWarnings(warnings, log)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println(string(data))
		return nil
	}

	outPath := strings.TrimSuffix(res.File, filepath.Ext(res.File)) + ".json"
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	log.Info("wrote scan results", "file", res.File, "output", outPath, "records", len(records))
	return nil
}

// parseBoxes runs the annotation parser over every box that carries
// handwriting. Untouched boxes are exercises that were skipped.
func parseBoxes(sheetBoxes []models.SheetBox, log *slog.Logger) ([]models.SerializedExercise, []models.ParseWarning) {
	var records []models.SerializedExercise
	var all []models.ParseWarning

	for _, box := range sheetBoxes {
		if strings.TrimSpace(box.Text) == "" {
			continue
		}
		ex, warnings, err := boxes.Parse(box)
		if err != nil {
			log.Warn("unparseable box", "exercise", box.ExerciseName, "error", err)
			continue
		}
		all = append(all, warnings...)
		records = append(records, ex.Serialized())
	}
	return records, all
}

func logWarnings(warnings []models.ParseWarning, log *slog.Logger) {
	for _, w := range warnings {
		log.Warn("parse warning", "reason", w.Reason, "token", w.Token, "box_text", w.BoxText)
	}
}

// dateFromTitle pulls the leading date off a sheet title in the
// generator's "2026-03-14 - Push" form.
func dateFromTitle(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return ""
	}
	if _, err := time.Parse(models.DateFormat, fields[0]); err != nil {
		return ""
	}
	return fields[0]
}
