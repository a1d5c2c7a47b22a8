// Command export-csv writes every card in the sqlite store to a CSV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/PTCGCards/PTCG-CHS-Datasets/internal/app"
	"github.com/PTCGCards/PTCG-CHS-Datasets/internal/cards"
	"github.com/PTCGCards/PTCG-CHS-Datasets/internal/config"
	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/database"
)

func main() {
	var (
		outFlag    = flag.String("out", "data/cards.csv", "output CSV path for cards")
		dbFlag     = flag.String("db", "", "sqlite store path (overrides database.path)")
		configFlag = flag.String("config", "", "path to YAML config file")
	)
	flag.Parse()

	path := *configFlag
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.Database.Path = *dbFlag
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := export(ctx, cfg.Database.Path, *outFlag)
	if err != nil {
		logger.Error("export failed", slog.String("store", cfg.Database.Path), slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}

	logger.Info("cards exported",
		slog.Int("cards", n),
		slog.String("store", cfg.Database.Path),
		slog.String("out", *outFlag),
	)
}

func export(ctx context.Context, dbPath, outPath string) (int, error) {
	db, err := database.OpenExisting(database.Config{Path: dbPath})
	if err != nil {
		return 0, fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", outPath, err)
	}

	n, err := cards.ExportCSV(ctx, db, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", outPath, cerr)
	}
	return n, err
}
