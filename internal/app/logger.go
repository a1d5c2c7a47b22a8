package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/PTCGCards/PTCG-CHS-Datasets/internal/config"
)

// NewLogger builds the stderr logger shared by the import, export and API
// binaries and installs it as slog's default.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// newLogger writes JSON lines for log.format=json. Any other format gets
// text lines tagged with the calling file, which is what an operator reads
// in a terminal during an import.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level, AddSource: true}))
	}
}

// parseLevel maps log.level to a slog level; unknown names mean info.
func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
