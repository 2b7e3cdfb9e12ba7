package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sqlite "modernc.org/sqlite"
)

// Database backs the structured log sink. Price data is deliberately not
// persisted; freshness comes from the in-process cache, never from disk.
type Database struct {
	logger *slog.Logger
	read   *sql.DB
	write  *sql.DB
	path   string
}

const initSQL = `
	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	PRAGMA temp_store = MEMORY;
	PRAGMA busy_timeout = 5000;
	PRAGMA trusted_schema = OFF;
`

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		level INTEGER NOT NULL,
		message TEXT NOT NULL,
		attrs TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_log_level ON log(level);
`

// New opens the database with a read pool and a single-connection writer,
// the split that keeps SQLite happy under concurrent HTTP requests.
func New(ctx context.Context, path string) (*Database, error) {
	sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, _ string) error {
		_, err := conn.ExecContext(ctx, initSQL, nil)
		return err
	})

	read, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error when opening database (read): %w", err)
	}
	read.SetMaxOpenConns(10) // readers can be concurrent
	read.SetConnMaxIdleTime(time.Minute)

	write, err := sql.Open("sqlite", path)
	if err != nil {
		read.Close()
		return nil, fmt.Errorf("error when opening database (write): %w", err)
	}
	write.SetMaxOpenConns(1) // only a single writer ever, no concurrency
	write.SetConnMaxIdleTime(time.Minute)

	d := &Database{
		logger: slog.Default().With(slog.String("module", "database")),
		read:   read,
		write:  write,
		path:   path,
	}

	if _, err := d.write.ExecContext(ctx, schemaSQL); err != nil {
		read.Close()
		write.Close()
		return nil, fmt.Errorf("database schema setup failed: %w", err)
	}

	return d, nil
}

func (d *Database) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

func (d *Database) Close() {
	d.read.Close()
	d.write.Close()
}
