package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ssbg/internal/config"
	"ssbg/internal/dataset"
	"ssbg/internal/dataset/sqlite"
	applog "ssbg/internal/log"
)

// ssbg-import loads a cleaned CSV snapshot into the SQLite database the
// server reads when DATA_SOURCE=sqlite. The import replaces any previous
// snapshot in one transaction.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentImport)
	applog.SetDefault(logger)

	cfg := config.Load()

	csvPath := flag.String("csv", cfg.CSVPath, "path to the cleaned CSV snapshot")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "path to the SQLite database")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	records, err := dataset.NewCSVSource(*csvPath).Load(ctx)
	if err != nil {
		logger.Error("Failed to read CSV snapshot", applog.FieldError, err, "csv", *csvPath)
		os.Exit(1)
	}

	store, err := sqlite.Open(*dbPath)
	if err != nil {
		logger.Error("Failed to open SQLite database", applog.FieldError, err, "db", *dbPath)
		os.Exit(1)
	}
	defer store.Close()

	count, err := store.Import(ctx, records)
	if err != nil {
		logger.Error("Import failed", applog.FieldError, err, "db", *dbPath)
		os.Exit(1)
	}

	logger.Info("Import completed", applog.FieldRecords, count, "csv", *csvPath, "db", *dbPath)
}
