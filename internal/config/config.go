package config

import "time"

// Config is the root configuration shared by the cardhub tools.
type Config struct {
	Import   ImportConfig   `yaml:"import"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// ImportConfig holds settings for the JSON loader.
type ImportConfig struct {
	InputPath string `yaml:"input_path" env:"CARDHUB_INPUT_PATH"    env-default:"ptcg_chs_infos.json"`
	Strict    bool   `yaml:"strict"     env:"CARDHUB_IMPORT_STRICT"`
}

// DatabaseConfig points at the sqlite store file.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"CARDHUB_DB_PATH" env-default:"cards_cn.db"`
}

// ServerConfig holds read API settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"CARDHUB_SERVER_ADDR"             env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CARDHUB_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
