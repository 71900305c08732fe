package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Options describes how to reach the database.
type Options struct {
	// Driver is "sqlite3" or "pgx".
	Driver string
	// DSN is a file path (or file: URI) for sqlite3 and a connection URL for pgx.
	DSN          string
	MaxOpenConns int
	// Now overrides the clock used for created/updated timestamps.
	Now func() time.Time
}

// Store wraps access to the task table and exposes high level helpers.
type Store struct {
	db      *sql.DB
	dialect dialect
	logger  *slog.Logger
	now     func() time.Time
}

// Open connects to the configured database and runs the required migrations.
func Open(ctx context.Context, opts Options, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.DSN == "" {
		return nil, fmt.Errorf("empty database dsn")
	}

	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	source := opts.DSN
	if d.name == driverSQLite {
		if err := ensureDir(opts.DSN); err != nil {
			return nil, err
		}
		source = sqliteSource(opts.DSN)
	}

	conn, err := sql.Open(d.name, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}

	switch {
	case d.name == driverSQLite:
		// A single connection serialises writers and keeps :memory: databases alive.
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
	case opts.MaxOpenConns > 0:
		conn.SetMaxOpenConns(opts.MaxOpenConns)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{db: conn, dialect: d, logger: logger, now: now}
	if err := s.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("task store ready", slog.String("driver", d.name))
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks that the database is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func ensureDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func sqliteSource(dsn string) string {
	if strings.HasPrefix(dsn, "file:") {
		return dsn
	}
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=ON", dsn)
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// timestamp returns the store clock in UTC at the precision every dialect keeps.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
