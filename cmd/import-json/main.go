// Command import-json rebuilds the sqlite card store from a catalog export.
//
// Any existing store at the target path is deleted first. Card entries that
// cannot be written are logged and skipped; everything else is fatal.
//
// Flags:
//
//	-in      input JSON path (overrides import.input_path)
//	-db      output store path (overrides database.path)
//	-config  YAML config path (overrides CONFIG_PATH)
//	-strict  exit 1 when any card entry was skipped
//
// Exit codes: 0 = store committed, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/PTCGCards/PTCG-CHS-Datasets/internal/app"
	"github.com/PTCGCards/PTCG-CHS-Datasets/internal/catalog"
	"github.com/PTCGCards/PTCG-CHS-Datasets/internal/config"
)

func main() {
	var (
		inFlag     = flag.String("in", "", "input JSON path")
		dbFlag     = flag.String("db", "", "output sqlite path")
		configFlag = flag.String("config", "", "path to YAML config file")
		strictFlag = flag.Bool("strict", false, "fail when any card entry is skipped")
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

	// CLI flags override config.
	if *inFlag != "" {
		cfg.Import.InputPath = *inFlag
	}
	if *dbFlag != "" {
		cfg.Database.Path = *dbFlag
	}
	if *strictFlag {
		cfg.Import.Strict = true
	}

	logger := app.NewLogger(cfg.Log)

	// no timeout: a rebuild runs to completion or is killed
	res, err := catalog.Run(context.Background(), logger, catalog.Options{
		InputPath: cfg.Import.InputPath,
		DBPath:    cfg.Database.Path,
	})
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if res.HasFailures() {
		logger.Warn("import completed with skipped card entries",
			slog.Int("skipped", len(res.Import.Failures)),
		)
		if cfg.Import.Strict {
			os.Exit(1)
		}
	}

	logger.Info("store saved",
		slog.String("path", cfg.Database.Path),
		slog.String("run_id", res.RunID.String()),
		slog.Duration("duration", res.Duration),
	)
}
