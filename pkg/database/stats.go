package database

import (
	"context"
	"database/sql"
	"fmt"
)

type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// CountRows issues one COUNT(*) per table in Tables order.
func CountRows(ctx context.Context, db *sql.DB) ([]TableCount, error) {
	out := make([]TableCount, 0, len(Tables))
	for _, table := range Tables {
		var n int64
		// table names come from the fixed Tables list, never from input
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out = append(out, TableCount{Table: table, Rows: n})
	}
	return out, nil
}
