package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	Path string
}

// sidecar suffixes sqlite may leave next to the main file
var sidecars = []string{"-journal", "-wal", "-shm"}

func EnsureDataDir(cfg Config) error {
	dir := filepath.Dir(cfg.Path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Open opens (creating if needed) the store at cfg.Path with foreign keys
// enforced on every pooled connection.
func Open(cfg Config) (*sql.DB, error) {
	if err := EnsureDataDir(cfg); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

// OpenExisting is Open for readers: it fails instead of creating an empty store.
func OpenExisting(cfg Config) (*sql.DB, error) {
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("stat store: %w", err)
	}
	return Open(cfg)
}

// Recreate deletes any store at cfg.Path (and its journal files) and opens a
// fresh, empty one. Nothing from a previous run is kept.
func Recreate(cfg Config) (*sql.DB, error) {
	if err := Remove(cfg); err != nil {
		return nil, err
	}
	return Open(cfg)
}

// Remove deletes the store file and its sidecars. Missing files are not an error.
func Remove(cfg Config) error {
	paths := []string{cfg.Path}
	for _, s := range sidecars {
		paths = append(paths, cfg.Path+s)
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

// dsn builds the sqlite URI for path. The path is percent-escaped so '#'
// and '?' stay part of the file name instead of starting a fragment or query.
func dsn(path string) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?_foreign_keys=on"
}
