// Package catalog loads the card catalog export into a fresh sqlite store.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/database"
)

// Options names the input export and the store to rebuild.
type Options struct {
	InputPath string
	DBPath    string
}

// Result is what a completed run reports back.
type Result struct {
	RunID     uuid.UUID
	DictItems int
	Import    *Report
	Counts    []database.TableCount // nil if the summary queries failed
	Duration  time.Duration
}

// HasFailures reports whether any card entry was skipped.
func (r *Result) HasFailures() bool {
	return r.Import != nil && len(r.Import.Failures) > 0
}

// Run rebuilds the store at opts.DBPath from the export at opts.InputPath:
// load, recreate schema, import dictionary, import collections, count rows.
// The source is parsed before the old store is touched, so a bad input
// leaves any previous store in place.
func Run(ctx context.Context, log *slog.Logger, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.New()}
	log = log.With(slog.String("run_id", res.RunID.String()))

	doc, err := Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	log.Info("source loaded",
		slog.String("path", opts.InputPath),
		slog.Int("dict_categories", len(doc.Dict)),
		slog.Int("collections", len(doc.Collections)),
	)

	cfg := database.Config{Path: opts.DBPath}
	db, err := database.Recreate(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("close store", slog.String("error", err.Error()))
		}
	}()

	if err := database.Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	log.Info("schema created", slog.String("path", opts.DBPath))

	res.DictItems, err = ImportDict(ctx, db, doc.Dict)
	if err != nil {
		return nil, err
	}
	log.Info("dictionary imported", slog.Int("items", res.DictItems))

	res.Import, err = ImportCollections(ctx, db, doc.Collections)
	if err != nil {
		return nil, err
	}
	for _, f := range res.Import.Failures {
		log.Warn("card entry skipped",
			slog.Int64("collection_id", f.CollectionID),
			slog.Int("position", f.Position),
			slog.String("card_id", f.CardID),
			slog.String("error", f.Err.Error()),
			slog.String("raw", string(f.Raw)),
		)
	}
	log.Info("collections imported",
		slog.Int("collections", res.Import.Collections),
		slog.Int("card_entries", res.Import.CardEntries),
		slog.Int("cards_inserted", res.Import.CardsInserted),
		slog.Int("cards_repeated", res.Import.CardsRepeated),
		slog.Int("links", res.Import.Links),
		slog.Int("skipped", len(res.Import.Failures)),
	)

	// data is committed at this point; summary problems are reported only
	counts, err := database.CountRows(ctx, db)
	if err != nil {
		log.Warn("summary failed", slog.String("error", err.Error()))
	} else {
		res.Counts = counts
		for _, c := range counts {
			log.Info("table rows", slog.String("table", c.Table), slog.Int64("rows", c.Rows))
		}
	}

	res.Duration = time.Since(start)
	return res, nil
}
