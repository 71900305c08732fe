// Package config resolves the service configuration from flags, environment
// variables, an optional config file and built-in defaults, in that order.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. TASKS_DB_DSN.
const EnvPrefix = "TASKS"

// Keys understood by Load.
const (
	KeyAddr            = "addr"
	KeyDBDriver        = "db.driver"
	KeyDBDSN           = "db.dsn"
	KeyDBMaxOpenConns  = "db.max_open_conns"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyShutdownTimeout = "shutdown_timeout"
)

// Config is the resolved service configuration.
type Config struct {
	Addr            string
	DB              Database
	Log             Log
	ShutdownTimeout time.Duration
}

// Database selects and tunes the task store.
type Database struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// Log controls the process logger.
type Log struct {
	Level  string
	Format string
}

// New returns a viper instance wired to the environment with defaults applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAddr, ":4000")
	v.SetDefault(KeyDBDriver, "sqlite3")
	v.SetDefault(KeyDBDSN, "data/tasks.db")
	v.SetDefault(KeyDBMaxOpenConns, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyShutdownTimeout, 5*time.Second)
	return v
}

// Load reads the optional config file into v and builds a validated Config.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := Config{
		Addr: v.GetString(KeyAddr),
		DB: Database{
			Driver:       strings.ToLower(v.GetString(KeyDBDriver)),
			DSN:          v.GetString(KeyDBDSN),
			MaxOpenConns: v.GetInt(KeyDBMaxOpenConns),
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%s must not be empty", KeyAddr)
	}
	switch c.DB.Driver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("%s must be sqlite3 or pgx, got %q", KeyDBDriver, c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("%s must not be empty", KeyDBDSN)
	}
	if c.DB.MaxOpenConns < 0 {
		return fmt.Errorf("%s must not be negative", KeyDBMaxOpenConns)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%s must be text or json, got %q", KeyLogFormat, c.Log.Format)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%s must be positive", KeyShutdownTimeout)
	}
	return nil
}

// SlogLevel parses the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return level, nil
}
