package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/models"
)

const insertDictSQL = `
	INSERT INTO dict_items (id, type_code, dict_code, dict_value, dict_sort, status)
	VALUES (?, ?, ?, ?, ?, ?)
`

// ImportDict writes every dictionary item in one transaction. A duplicate
// (type_code, dict_code) pair fails the whole import.
func ImportDict(ctx context.Context, db *sql.DB, groups models.DictGroups) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin tx: %w", ErrDictionary, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertDictSQL)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare stmt: %w", ErrDictionary, err)
	}
	defer stmt.Close()

	n := 0
	for _, g := range groups {
		for i, item := range g.Items {
			if _, err := stmt.ExecContext(
				ctx,
				item.ID,
				item.TypeCode,
				item.DictCode,
				item.DictValue,
				item.DictSort,
				item.Status,
			); err != nil {
				return 0, fmt.Errorf("%w: %s[%d] (%s/%s): %w",
					ErrDictionary, g.Category, i, item.TypeCode.Text(), item.DictCode.Text(), err)
			}
			n++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit tx: %w", ErrDictionary, err)
	}
	return n, nil
}
