package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q            string // keyword search in name / yoren code
	CardType     string
	Rarity       string
	CollectionID int64 // 0 means any collection
	Limit        int
	Offset       int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const summaryColumns = `c.id, c.name, c.yoren_code, c.card_type, c.card_type_text, c.rarity, c.rarity_text,
	c.hp, c.collection_number, c.image`

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	var total int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.CardSummary, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	out := make([]models.CardSummary, 0)
	for rows.Next() {
		var c models.CardSummary
		if err := rows.Scan(
			&c.ID, &c.Name, &c.YorenCode, &c.CardType, &c.CardTypeText, &c.Rarity, &c.RarityText,
			&c.HP, &c.CollectionNumber, &c.Image,
		); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// GetByID returns the card with its child rows and memberships, or nil if
// no card has that id.
func (r *Repo) GetByID(ctx context.Context, id int64) (*models.CardView, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+summaryColumns+`,
			c.pokemon_type, c.special_card, c.name_same_pokemon_id, c.hash, c.evolve_text,
			c.regulation_mark_text, c.attribute, c.pokemon_category, c.weakness_type, c.weakness_formula,
			c.resistance_type, c.resistance_formula, c.retreat_cost, c.pokedex_text, c.rule_text
		FROM cards c
		WHERE c.id = ?
	`, id)

	var v models.CardView
	if err := row.Scan(
		&v.ID, &v.Name, &v.YorenCode, &v.CardType, &v.CardTypeText, &v.Rarity, &v.RarityText,
		&v.HP, &v.CollectionNumber, &v.Image,
		&v.PokemonType, &v.SpecialCard, &v.NameSamePokemonID, &v.Hash, &v.EvolveText,
		&v.RegulationMarkText, &v.Attribute, &v.PokemonCategory, &v.WeaknessType, &v.WeaknessFormula,
		&v.ResistanceType, &v.ResistanceFormula, &v.RetreatCost, &v.PokedexText, &v.RuleText,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}

	var err error
	if v.Abilities, err = r.abilities(ctx, id); err != nil {
		return nil, err
	}
	if v.Features, err = r.features(ctx, id); err != nil {
		return nil, err
	}
	if v.Commodities, err = r.commodities(ctx, id); err != nil {
		return nil, err
	}
	if v.Illustrators, err = r.illustrators(ctx, id); err != nil {
		return nil, err
	}
	if v.CollectionIDs, err = r.collectionIDs(ctx, id); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) abilities(ctx context.Context, cardID int64) ([]models.AbilityView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT ability_name, ability_text, ability_cost, ability_damage
		FROM card_abilities
		WHERE card_id = ?
		ORDER BY sort_order, id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("abilities query: %w", err)
	}
	defer rows.Close()

	out := make([]models.AbilityView, 0)
	for rows.Next() {
		var a models.AbilityView
		if err := rows.Scan(&a.Name, &a.Text, &a.Cost, &a.Damage); err != nil {
			return nil, fmt.Errorf("abilities scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) features(ctx context.Context, cardID int64) ([]models.FeatureView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT feature_name, feature_desc
		FROM card_features
		WHERE card_id = ?
		ORDER BY sort_order, id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("features query: %w", err)
	}
	defer rows.Close()

	out := make([]models.FeatureView, 0)
	for rows.Next() {
		var f models.FeatureView
		if err := rows.Scan(&f.Name, &f.Desc); err != nil {
			return nil, fmt.Errorf("features scan: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) commodities(ctx context.Context, cardID int64) ([]models.CommodityView, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT commodity_name, commodity_code
		FROM card_commodities
		WHERE card_id = ?
		ORDER BY id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("commodities query: %w", err)
	}
	defer rows.Close()

	out := make([]models.CommodityView, 0)
	for rows.Next() {
		var c models.CommodityView
		if err := rows.Scan(&c.Name, &c.Code); err != nil {
			return nil, fmt.Errorf("commodities scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) illustrators(ctx context.Context, cardID int64) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT illustrator_name
		FROM card_illustrators
		WHERE card_id = ? AND illustrator_name IS NOT NULL
		ORDER BY sort_order, id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("illustrators query: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("illustrators scan: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (r *Repo) collectionIDs(ctx context.Context, cardID int64) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT collection_id
		FROM card_collection_map
		WHERE card_id = ?
		ORDER BY id
	`, cardID)
	if err != nil {
		return nil, fmt.Errorf("collections query: %w", err)
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("collections scan: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *Repo) CountCollections(ctx context.Context) (int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count collections: %w", err)
	}
	return total, nil
}

// ListCollections returns collections in source (id) order with their card counts.
func (r *Repo) ListCollections(ctx context.Context, limit, offset int) ([]models.CollectionView, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := r.DB.QueryContext(ctx, collectionSelect+`
		GROUP BY co.id
		ORDER BY co.id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer rows.Close()

	out := make([]models.CollectionView, 0, limit)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) GetCollection(ctx context.Context, id int64) (*models.CollectionView, error) {
	row := r.DB.QueryRowContext(ctx, collectionSelect+`
		WHERE co.id = ?
		GROUP BY co.id
	`, id)
	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

const collectionSelect = `
	SELECT co.id, co.name, co.commodity_code, co.sales_date, co.series, co.series_text,
		co.goods_type, co.link_type, co.image, COUNT(m.card_id)
	FROM collections co
	LEFT JOIN card_collection_map m ON m.collection_id = co.id
`

type scanner interface {
	Scan(dest ...any) error
}

func scanCollection(s scanner) (*models.CollectionView, error) {
	var c models.CollectionView
	if err := s.Scan(
		&c.ID, &c.Name, &c.CommodityCode, &c.SalesDate, &c.Series, &c.SeriesText,
		&c.GoodsType, &c.LinkType, &c.Image, &c.CardCount,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan collection: %w", err)
	}
	return &c, nil
}

// DictItems returns the items of one dictionary category in display order.
func (r *Repo) DictItems(ctx context.Context, typeCode string) ([]models.DictEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, type_code, dict_code, dict_value, dict_sort, status
		FROM dict_items
		WHERE type_code = ?
		ORDER BY dict_sort, id
	`, typeCode)
	if err != nil {
		return nil, fmt.Errorf("dict query: %w", err)
	}
	defer rows.Close()

	out := make([]models.DictEntry, 0)
	for rows.Next() {
		var d models.DictEntry
		if err := rows.Scan(&d.ID, &d.TypeCode, &d.DictCode, &d.DictValue, &d.DictSort, &d.Status); err != nil {
			return nil, fmt.Errorf("dict scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// buildListSQL builds either COUNT(*) or the paged SELECT for cards.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + summaryColumns + ` FROM cards c`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM cards c`
	}

	var where []string
	var args []any

	if kw := strings.TrimSpace(q.Q); kw != "" {
		where = append(where, "(c.name LIKE ? OR LOWER(c.yoren_code) LIKE ?)")
		args = append(args, "%"+kw+"%", "%"+strings.ToLower(kw)+"%")
	}
	if ct := strings.TrimSpace(q.CardType); ct != "" {
		where = append(where, "c.card_type = ?")
		args = append(args, ct)
	}
	if rarity := strings.TrimSpace(q.Rarity); rarity != "" {
		where = append(where, "c.rarity = ?")
		args = append(args, rarity)
	}
	if q.CollectionID != 0 {
		where = append(where, "c.id IN (SELECT card_id FROM card_collection_map WHERE collection_id = ?)")
		args = append(args, q.CollectionID)
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		limit, offset := clampPage(q.Limit, q.Offset)
		sqlStr += " ORDER BY c.id ASC LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	return sqlStr, args
}
