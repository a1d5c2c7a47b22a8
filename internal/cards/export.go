package cards

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/models"
)

var exportHeader = []string{
	"id", "yoren_code", "name", "card_type", "rarity", "hp", "collection_number", "illustrators", "collection_ids",
}

// ExportCSV writes one row per card, ordered by id, and returns the row count.
// Illustrators are joined with "/" in sort order; collection ids with ";".
func ExportCSV(ctx context.Context, db *sql.DB, out io.Writer) (int, error) {
	w := csv.NewWriter(out)
	if err := w.Write(exportHeader); err != nil {
		return 0, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.id, c.yoren_code, c.name, c.card_type, c.rarity, c.hp, c.collection_number,
			(SELECT GROUP_CONCAT(illustrator_name, '/')
			   FROM (SELECT illustrator_name FROM card_illustrators
			         WHERE card_id = c.id ORDER BY sort_order, id)),
			(SELECT GROUP_CONCAT(collection_id, ';')
			   FROM (SELECT collection_id FROM card_collection_map
			         WHERE card_id = c.id ORDER BY id))
		FROM cards c
		ORDER BY c.id
	`)
	if err != nil {
		return 0, fmt.Errorf("export query: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var (
			id                                  int64
			name                                string
			yoren, cardType, rarity, hp, number models.Scalar
			illustrators, collections           models.Scalar
		)
		if err := rows.Scan(&id, &yoren, &name, &cardType, &rarity, &hp, &number, &illustrators, &collections); err != nil {
			return 0, fmt.Errorf("export scan: %w", err)
		}

		if err := w.Write([]string{
			models.Int(id).Text(),
			yoren.Text(),
			name,
			cardType.Text(),
			rarity.Text(),
			hp.Text(),
			number.Text(),
			illustrators.Text(),
			collections.Text(),
		}); err != nil {
			return 0, err
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	w.Flush()
	return n, w.Error()
}
