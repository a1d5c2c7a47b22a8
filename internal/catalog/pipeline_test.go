package catalog

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/database"
)

const sampleSource = `{
	"dict": {
		"rarity": [
			{"id": 1, "typeCode": "rarity", "dictCode": "C", "dictValue": "Common", "dictSort": 1, "status": 1},
			{"id": 2, "typeCode": "rarity", "dictCode": "U", "dictValue": "Uncommon", "dictSort": 2, "status": 1}
		],
		"cardType": [
			{"id": 3, "typeCode": "cardType", "dictCode": "1", "dictValue": "Pokemon", "dictSort": 1, "status": 1}
		]
	},
	"collections": [
		{"id": 10, "name": "Starter", "commodityCode": "S1", "salesDate": "2024-01-01", "linkType": 1, "cards": [
			{"id": 1, "name": "A", "details": {"abilityItemList": [{"abilityName": "x", "abilityText": "none"}], "illustratorName": ["I1"]}},
			{"id": 2, "name": "B", "details": {"commodityList": [{"commodityName": "Starter", "commodityCode": "S1"}]}},
			{"id": 3, "name": "C", "details": {"abilityItemList": 42}}
		]},
		{"id": 11, "name": "Booster", "commodityCode": "B1", "cards": [
			{"id": 1, "name": "A"},
			{"id": 4, "name": "D", "details": {"cardFeatureItemList": [{"featureName": "f", "featureDesc": "d"}]}}
		]},
		{"id": 12, "name": "Empty Promo", "commodityCode": "P1"}
	]
}`

func countsByTable(counts []database.TableCount) map[string]int64 {
	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.Table] = c.Rows
	}
	return out
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		InputPath: writeSource(t, dir, sampleSource),
		DBPath:    filepath.Join(dir, "out", "cards.db"),
	}

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	res, err := Run(context.Background(), log, opts)
	require.NoError(t, err)

	assert.Equal(t, 3, res.DictItems)
	assert.True(t, res.HasFailures())
	require.Len(t, res.Import.Failures, 1)
	assert.Equal(t, "3", res.Import.Failures[0].CardID)

	assert.Equal(t, map[string]int64{
		"dict_items":          3,
		"collections":         3,
		"cards":               3,
		"card_collection_map": 4,
		"card_abilities":      1,
		"card_features":       1,
		"card_commodities":    1,
		"card_illustrators":   1,
	}, countsByTable(res.Counts))

	out := buf.String()
	assert.Contains(t, out, "run_id="+res.RunID.String())
	assert.Contains(t, out, "card entry skipped")
	assert.Contains(t, out, "table rows")
}

func TestRun_RebuildIsIdempotent(t *testing.T) {
	for _, name := range []string{"cards.db", "cards#v2.db"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			opts := Options{
				InputPath: writeSource(t, dir, sampleSource),
				DBPath:    filepath.Join(dir, name),
			}

			first, err := Run(context.Background(), discardLogger(), opts)
			require.NoError(t, err)

			second, err := Run(context.Background(), discardLogger(), opts)
			require.NoError(t, err)

			assert.Equal(t, first.Counts, second.Counts)
			assert.NotEqual(t, first.RunID, second.RunID)

			_, err = os.Stat(opts.DBPath)
			assert.NoError(t, err)
		})
	}
}

func TestRun_ParseErrorKeepsPreviousStore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cards.db")
	good := Options{InputPath: writeSource(t, dir, sampleSource), DBPath: dbPath}

	_, err := Run(context.Background(), discardLogger(), good)
	require.NoError(t, err)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`not json`), 0o644))

	_, err = Run(context.Background(), discardLogger(), Options{InputPath: badPath, DBPath: dbPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	db, err := database.OpenExisting(database.Config{Path: dbPath})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 3, countWhere(t, db, `SELECT COUNT(*) FROM cards`))
}

func TestRun_DictionaryConflictLeavesEmptySchema(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "cards.db")
	src := writeSource(t, dir, `{
		"dict": {"rarity": [
			{"id": 1, "typeCode": "rarity", "dictCode": "C", "dictValue": "Common"},
			{"id": 2, "typeCode": "rarity", "dictCode": "C", "dictValue": "Dup"}
		]},
		"collections": [{"id": 1, "name": "A"}]
	}`)

	_, err := Run(context.Background(), discardLogger(), Options{InputPath: src, DBPath: dbPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDictionary)

	db, err := database.OpenExisting(database.Config{Path: dbPath})
	require.NoError(t, err)
	defer db.Close()
	counts, err := database.CountRows(context.Background(), db)
	require.NoError(t, err)
	for _, c := range counts {
		assert.Zero(t, c.Rows, c.Table)
	}
}

func TestRun_UnwritableStore(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, sampleSource)

	// a directory where the store file should be
	dbPath := filepath.Join(dir, "store")
	require.NoError(t, os.MkdirAll(filepath.Join(dbPath, "child"), 0o755))

	_, err := Run(context.Background(), discardLogger(), Options{InputPath: src, DBPath: dbPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}
