package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/database"
	"github.com/PTCGCards/PTCG-CHS-Datasets/pkg/models"
)

func newStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "cards.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "source.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeCollections(t *testing.T, in string) []models.Collection {
	t.Helper()
	var cols []models.Collection
	require.NoError(t, json.Unmarshal([]byte(in), &cols))
	return cols
}

func countWhere(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query, args...).Scan(&n))
	return n
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
