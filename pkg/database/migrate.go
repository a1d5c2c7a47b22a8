package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Tables lists every table the schema creates, parents before children.
var Tables = []string{
	"dict_items",
	"collections",
	"cards",
	"card_collection_map",
	"card_abilities",
	"card_features",
	"card_commodities",
	"card_illustrators",
}

// Migrate applies the schema to an empty store. It is not an upgrade path:
// running it twice against the same store fails on the existing tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
