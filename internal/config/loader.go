package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultFile is picked up from the working directory when no file is named.
const defaultFile = "config.yaml"

// Load resolves the catalog tools' settings, taking the file from CONFIG_PATH.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_PATH"))
}

// LoadFile resolves settings from the YAML file at path, then CARDHUB_* and
// LOG_* variables on top, then the env-default tags for anything still unset.
// A named file must exist. With an empty path, config.yaml is optional.
func LoadFile(path string) (*Config, error) {
	named := path != ""
	if !named {
		path = defaultFile
	}

	var cfg Config
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case named || !errors.Is(statErr, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
