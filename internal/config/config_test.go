package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "ptcg_chs_infos.json", cfg.Import.InputPath)
	assert.False(t, cfg.Import.Strict)
	assert.Equal(t, "cards_cn.db", cfg.Database.Path)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `
import:
  input_path: "data/source.json"
  strict: true
database:
  path: "out/cards.db"
server:
  addr: "127.0.0.1:9090"
  shutdown_timeout: "3s"
log:
  level: "debug"
  format: "json"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "data/source.json", cfg.Import.InputPath)
	assert.True(t, cfg.Import.Strict)
	assert.Equal(t, "out/cards.db", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `
database:
  path: "from-yaml.db"
`)
	t.Setenv("CARDHUB_DB_PATH", "from-env.db")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Database.Path)
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `
import:
  input_path: "via-env.json"
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "via-env.json", cfg.Import.InputPath)
}

func TestLoadFile_MissingExplicitFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Import:   ImportConfig{InputPath: "in.json"},
			Database: DatabaseConfig{Path: "out.db"},
			Server:   ServerConfig{Addr: ":8080", ShutdownTimeout: time.Second},
			Log:      LogConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "uppercase level", mutate: func(c *Config) { c.Log.Level = "WARN" }},
		{name: "empty input", mutate: func(c *Config) { c.Import.InputPath = " " }, wantErr: true},
		{name: "empty db path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
		{name: "bad format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
