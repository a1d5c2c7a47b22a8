package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/models"
)

const (
	insertCollectionSQL = `
		INSERT INTO collections (id, name, commodity_code, sales_date, series, series_text, goods_type, link_type, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	insertCardSQL = `
		INSERT INTO cards (
			id, yoren_code, card_type, card_type_text, pokemon_type, special_card,
			name_same_pokemon_id, name, image, hash,
			evolve_text, regulation_mark_text, collection_number, rarity, rarity_text,
			hp, attribute, feature_flag, pokemon_category,
			weakness_type, weakness_formula, resistance_type, resistance_formula,
			retreat_cost, pokedex_code, pokedex_text, height, weight,
			rule_text, collection_flag, special_shiny_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	insertAbilitySQL = `
		INSERT INTO card_abilities (card_id, ability_name, ability_text, ability_cost, ability_damage, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	insertFeatureSQL = `
		INSERT INTO card_features (card_id, feature_name, feature_desc, sort_order)
		VALUES (?, ?, ?, ?)
	`
	insertCommoditySQL = `
		INSERT INTO card_commodities (card_id, commodity_name, commodity_code)
		VALUES (?, ?, ?)
	`
	insertIllustratorSQL = `
		INSERT INTO card_illustrators (card_id, illustrator_name, sort_order)
		VALUES (?, ?, ?)
	`
	insertLinkSQL = `
		INSERT OR IGNORE INTO card_collection_map (card_id, collection_id)
		VALUES (?, ?)
	`
)

// ImportCollections writes every collection, its cards and their membership
// links in a single transaction.
//
// A card is written once per run, at its first sighting; later sightings only
// add a membership link. Each card entry runs under its own savepoint, so a
// malformed entry is rolled back, recorded in the report and skipped without
// touching the enclosing transaction. A collection that cannot be inserted
// aborts the whole import.
func ImportCollections(ctx context.Context, db *sql.DB, collections []models.Collection) (*Report, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin tx: %w", ErrCollection, err)
	}
	defer tx.Rollback()

	colStmt, err := tx.PrepareContext(ctx, insertCollectionSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: prepare stmt: %w", ErrCollection, err)
	}
	defer colStmt.Close()

	w, err := newCardWriter(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollection, err)
	}
	defer w.close()

	rep := &Report{}
	for ci, col := range collections {
		if col.ID == nil {
			return nil, fmt.Errorf("%w: collections[%d] has no id", ErrCollection, ci)
		}
		collectionID := int64(*col.ID)

		if _, err := colStmt.ExecContext(
			ctx,
			collectionID,
			col.Name,
			col.CommodityCode,
			col.SalesDate,
			col.Series,
			col.SeriesText,
			col.GoodsType,
			col.LinkType,
			col.Image,
		); err != nil {
			return nil, fmt.Errorf("%w: collection %d: %w", ErrCollection, collectionID, err)
		}
		rep.Collections++

		for pos, raw := range col.Cards {
			res, err := w.importEntry(ctx, collectionID, raw)
			if err != nil {
				return nil, fmt.Errorf("%w: collection %d card entry %d: %w", ErrCollection, collectionID, pos, err)
			}
			rep.CardEntries++

			if res.err != nil {
				rep.Failures = append(rep.Failures, CardFailure{
					CollectionID: collectionID,
					Position:     pos,
					CardID:       models.PeekCardID(raw),
					Raw:          raw,
					Err:          res.err,
				})
				continue
			}
			if res.inserted {
				rep.CardsInserted++
			} else {
				rep.CardsRepeated++
			}
			if res.linked {
				rep.Links++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit tx: %w", ErrCollection, err)
	}
	return rep, nil
}

// cardWriter holds the prepared statements for one import transaction and
// the set of card ids already written in it.
type cardWriter struct {
	tx          *sql.Tx
	card        *sql.Stmt
	ability     *sql.Stmt
	feature     *sql.Stmt
	commodity   *sql.Stmt
	illustrator *sql.Stmt
	link        *sql.Stmt

	seen map[int64]struct{}
}

func newCardWriter(ctx context.Context, tx *sql.Tx) (*cardWriter, error) {
	w := &cardWriter{tx: tx, seen: make(map[int64]struct{})}

	targets := []struct {
		dst   **sql.Stmt
		query string
	}{
		{&w.card, insertCardSQL},
		{&w.ability, insertAbilitySQL},
		{&w.feature, insertFeatureSQL},
		{&w.commodity, insertCommoditySQL},
		{&w.illustrator, insertIllustratorSQL},
		{&w.link, insertLinkSQL},
	}
	for _, t := range targets {
		stmt, err := tx.PrepareContext(ctx, t.query)
		if err != nil {
			w.close()
			return nil, fmt.Errorf("prepare stmt: %w", err)
		}
		*t.dst = stmt
	}
	return w, nil
}

func (w *cardWriter) close() {
	for _, s := range []*sql.Stmt{w.card, w.ability, w.feature, w.commodity, w.illustrator, w.link} {
		if s != nil {
			_ = s.Close()
		}
	}
}

type entryResult struct {
	inserted bool  // card row written by this entry
	linked   bool  // membership row written by this entry
	err      error // entry skipped
}

// importEntry processes one card entry of a collection under a savepoint.
// The returned error is reserved for savepoint bookkeeping failures, which
// leave the transaction in an unknown state.
func (w *cardWriter) importEntry(ctx context.Context, collectionID int64, raw json.RawMessage) (entryResult, error) {
	if _, err := w.tx.ExecContext(ctx, `SAVEPOINT card_entry`); err != nil {
		return entryResult{}, fmt.Errorf("savepoint: %w", err)
	}

	cardID, res := w.writeEntry(ctx, collectionID, raw)
	if res.err != nil {
		if _, err := w.tx.ExecContext(ctx, `ROLLBACK TO card_entry`); err != nil {
			return entryResult{}, fmt.Errorf("rollback to savepoint: %w", err)
		}
	}
	if _, err := w.tx.ExecContext(ctx, `RELEASE card_entry`); err != nil {
		return entryResult{}, fmt.Errorf("release savepoint: %w", err)
	}

	if res.inserted {
		w.seen[cardID] = struct{}{}
	}
	return res, nil
}

func (w *cardWriter) writeEntry(ctx context.Context, collectionID int64, raw json.RawMessage) (int64, entryResult) {
	card, err := models.DecodeCard(raw)
	if err != nil {
		return 0, entryResult{err: fmt.Errorf("decode card: %w", err)}
	}
	id := int64(*card.ID)

	var res entryResult
	if _, ok := w.seen[id]; !ok {
		if err := w.insertCard(ctx, card); err != nil {
			return id, entryResult{err: err}
		}
		res.inserted = true
	}

	r, err := w.link.ExecContext(ctx, id, collectionID)
	if err != nil {
		return id, entryResult{err: fmt.Errorf("link card %d to collection %d: %w", id, collectionID, err)}
	}
	if n, _ := r.RowsAffected(); n > 0 {
		res.linked = true
	}
	return id, res
}

// insertCard writes the card row and its owned child rows.
func (w *cardWriter) insertCard(ctx context.Context, c *models.Card) error {
	id := int64(*c.ID)
	d := c.Details
	if d == nil {
		d = &models.CardDetails{}
	}

	if _, err := w.card.ExecContext(
		ctx,
		id,
		c.YorenCode,
		c.CardType,
		d.CardTypeText,
		c.PokemonType,
		c.SpecialCard,
		c.NameSamePokemonID,
		c.Name,
		c.Image,
		c.Hash,
		d.EvolveText,
		d.RegulationMarkText,
		d.CollectionNumber,
		d.Rarity,
		d.RarityText,
		d.HP,
		d.Attribute,
		d.FeatureFlag,
		d.PokemonCategory,
		d.WeaknessType,
		d.WeaknessFormula,
		d.ResistanceType,
		d.ResistanceFormula,
		d.RetreatCost,
		d.PokedexCode,
		d.PokedexText,
		d.Height,
		d.Weight,
		d.RuleText,
		d.CollectionFlag,
		d.ShinyType(),
	); err != nil {
		return fmt.Errorf("insert card %d: %w", id, err)
	}

	for i, a := range d.Abilities {
		if _, err := w.ability.ExecContext(ctx, id, a.Name, a.Text, a.Cost, a.Damage, i); err != nil {
			return fmt.Errorf("insert ability %d of card %d: %w", i, id, err)
		}
	}
	for i, f := range d.Features {
		if _, err := w.feature.ExecContext(ctx, id, f.Name, f.Desc, i); err != nil {
			return fmt.Errorf("insert feature %d of card %d: %w", i, id, err)
		}
	}
	for i, cm := range d.Commodities {
		if _, err := w.commodity.ExecContext(ctx, id, cm.Name, cm.Code); err != nil {
			return fmt.Errorf("insert commodity %d of card %d: %w", i, id, err)
		}
	}
	for i, name := range d.Illustrators {
		if _, err := w.illustrator.ExecContext(ctx, id, name, i); err != nil {
			return fmt.Errorf("insert illustrator %d of card %d: %w", i, id, err)
		}
	}
	return nil
}
