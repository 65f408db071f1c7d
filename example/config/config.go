package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Archive engine names accepted in CAMPUSHUB_ARCHIVE.
const (
	ArchiveMemory = "memory"
	ArchivePGX    = "pgx"
	ArchiveSQL    = "sql"
	ArchiveSQLX   = "sqlx"
)

var (
	// ErrUnsupportedArchive is returned for an unknown CAMPUSHUB_ARCHIVE value.
	ErrUnsupportedArchive = errors.New("unsupported archive engine")

	// ErrMissingPostgresDSN is returned when a postgres archive is selected without a DSN.
	ErrMissingPostgresDSN = errors.New("postgres archive selected but CAMPUSHUB_POSTGRES_DSN is empty")

	// ErrUnsupportedLogLevel is returned for an unknown CAMPUSHUB_LOG_LEVEL value.
	ErrUnsupportedLogLevel = errors.New("unsupported log level")

	// ErrMissingOTLPEndpoint is returned when observability is enabled without an OTLP endpoint.
	ErrMissingOTLPEndpoint = errors.New("observability enabled but CAMPUSHUB_OTLP_ENDPOINT is empty")
)

// Config controls which archive the demo exports action logs to, how verbose it logs
// and whether it exports traces and metrics.
type Config struct {
	Archive            string `env:"CAMPUSHUB_ARCHIVE"              envDefault:"memory"`
	PostgresDSN        string `env:"CAMPUSHUB_POSTGRES_DSN"`
	PostgresReplicaDSN string `env:"CAMPUSHUB_POSTGRES_REPLICA_DSN"`
	ArchiveTable       string `env:"CAMPUSHUB_ARCHIVE_TABLE"        envDefault:"action_log"`
	LogLevel           string `env:"CAMPUSHUB_LOG_LEVEL"            envDefault:"info"`
	Observability      bool   `env:"CAMPUSHUB_OBSERVABILITY"        envDefault:"false"`
	OTLPEndpoint       string `env:"CAMPUSHUB_OTLP_ENDPOINT"        envDefault:"http://localhost:4318"`
}

// LoadFromEnv parses the environment into a validated Config.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Archive = strings.ToLower(strings.TrimSpace(cfg.Archive))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the archive selection, the log level and the OTLP endpoint.
func (c Config) Validate() error {
	switch c.Archive {
	case ArchiveMemory:
	case ArchivePGX, ArchiveSQL, ArchiveSQLX:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return ErrMissingPostgresDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedArchive, c.Archive)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	if c.Observability && strings.TrimSpace(c.OTLPEndpoint) == "" {
		return ErrMissingOTLPEndpoint
	}

	return nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errors.Join(ErrUnsupportedLogLevel, err)
	}

	return level, nil
}
