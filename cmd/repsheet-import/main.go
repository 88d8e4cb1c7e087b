package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/claude/repsheet/internal/config"
	"github.com/claude/repsheet/internal/importer"
	"github.com/claude/repsheet/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	allowDuplicates := flag.Bool("all", false, "import rows that duplicate existing ones instead of skipping them")
	fromClipboard := flag.Bool("from-clipboard", false, "import CSV text from the clipboard instead of files")
	preview := flag.Bool("preview", false, "print the first clipboard rows before importing")
	addBodyPart := flag.Bool("add-body-part", false, "rewrite in.csv to out.csv with a body_part column and exit")
	exportPath := flag.String("export", "", "write the full log as CSV to this path and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Run migrations
	if err := storage.RunMigrations(cfg.Database.Driver, cfg.Database.MigrateURL()); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect database
	db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	switch {
	case *exportPath != "":
		runExport(ctx, db, *exportPath, log)
	case *addBodyPart:
		if flag.NArg() != 2 {
			usage("-add-body-part needs input and output paths")
		}
		runAddBodyPart(ctx, db, flag.Arg(0), flag.Arg(1), log)
	case *fromClipboard:
		runClipboard(ctx, db, *dryRun, *allowDuplicates, *preview, log)
	default:
		if flag.NArg() == 0 {
			usage("no input files")
		}
		runFiles(ctx, db, flag.Args(), *dryRun, *allowDuplicates, log)
	}
}

func usage(reason string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n\n", reason)
	fmt.Fprintf(os.Stderr, "Usage: repsheet-import [flags] file.csv [file2.csv ...]\n")
	fmt.Fprintf(os.Stderr, "       repsheet-import -from-clipboard [-preview]\n")
	fmt.Fprintf(os.Stderr, "       repsheet-import -add-body-part in.csv out.csv\n")
	fmt.Fprintf(os.Stderr, "       repsheet-import -export out.csv\n\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func runFiles(ctx context.Context, db *storage.DB, paths []string, dryRun, allowDuplicates bool, log *slog.Logger) {
	var total importer.Stats
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			log.Error("cannot open input", "file", path, "error", err)
			os.Exit(1)
		}

		// One importer per file so each batch log covers one file.
		imp := importer.New(db, log, dryRun, allowDuplicates)
		stats, err := imp.Import(ctx, f, path)
		f.Close()
		if err != nil {
			log.Error("import failed", "file", path, "error", err)
			printStats(log, stats)
			os.Exit(1)
		}
		addStats(&total, stats)
	}

	printStats(log, &total)
	log.Info("import complete", "files", len(paths))
}

func runClipboard(ctx context.Context, db *storage.DB, dryRun, allowDuplicates, preview bool, log *slog.Logger) {
	text, err := clipboard.ReadAll()
	if err != nil {
		log.Error("cannot read clipboard", "error", err)
		os.Exit(1)
	}
	if strings.TrimSpace(text) == "" {
		log.Error("clipboard is empty")
		os.Exit(1)
	}

	if preview {
		printPreview(text)
	}

	imp := importer.New(db, log, dryRun, allowDuplicates)
	stats, err := imp.Import(ctx, strings.NewReader(text), "clipboard")
	if err != nil {
		log.Error("import failed", "error", err)
		printStats(log, stats)
		os.Exit(1)
	}

	printStats(log, stats)
	log.Info("import complete")
}

func runAddBodyPart(ctx context.Context, db *storage.DB, inPath, outPath string, log *slog.Logger) {
	lookup, err := db.BodyPartsByExercise(ctx)
	if err != nil {
		log.Error("body part lookup failed", "error", err)
		os.Exit(1)
	}

	in, err := os.Open(inPath)
	if err != nil {
		log.Error("cannot open input", "file", inPath, "error", err)
		os.Exit(1)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		log.Error("cannot create output", "file", outPath, "error", err)
		os.Exit(1)
	}
	defer out.Close()

	stats, err := importer.AddBodyPartColumn(in, out, lookup)
	if err != nil {
		log.Error("add-body-part failed", "error", err)
		os.Exit(1)
	}

	log.Info("body part column added",
		"rows_processed", stats.RowsProcessed,
		"rows_resolved", stats.RowsResolved,
		"output", outPath,
	)
	if len(stats.UnknownNames) > 0 {
		log.Info("exercises without a known body part", "names", stats.UnknownNames)
	}
}

func runExport(ctx context.Context, db *storage.DB, path string, log *slog.Logger) {
	rows, err := db.ListExercises(ctx, "", "", "")
	if err != nil {
		log.Error("export query failed", "error", err)
		os.Exit(1)
	}

	f, err := os.Create(path)
	if err != nil {
		log.Error("cannot create output", "file", path, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := importer.ExportCSV(f, rows); err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}
	log.Info("export complete", "rows", len(rows), "output", path)
}

// printPreview shows the first clipboard rows so a bad copy is caught
// before it reaches the importer.
func printPreview(text string) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	show := len(lines)
	if show > 6 {
		show = 6
	}

	fmt.Println("Preview of clipboard content:")
	for _, line := range lines[:show] {
		fmt.Println("  " + line)
	}
	if len(lines) > show {
		fmt.Printf("  ... and %d more rows\n", len(lines)-show)
	}
	fmt.Println()
}

func addStats(total, stats *importer.Stats) {
	total.RowsRead += stats.RowsRead
	total.RowsImported += stats.RowsImported
	total.RowsSkipped += stats.RowsSkipped
	total.RowsErrored += stats.RowsErrored
	total.UnknownBodyParts = append(total.UnknownBodyParts, stats.UnknownBodyParts...)
}

func printStats(log *slog.Logger, stats *importer.Stats) {
	log.Info("import stats",
		"rows_read", stats.RowsRead,
		"rows_imported", stats.RowsImported,
		"rows_skipped", stats.RowsSkipped,
		"rows_errored", stats.RowsErrored,
	)
	if len(stats.UnknownBodyParts) > 0 {
		log.Info("unknown body parts (rows kept)", "names", stats.UnknownBodyParts)
	}
}
