// Package lite opens the embedded sqlite database used as a local run archive
package lite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	_ "modernc.org/sqlite"
)

// Memory is the path for a private in-memory database
const Memory = ":memory:"

// Config configures the sqlite connection
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// Lite holds the single sqlite connection
type Lite struct {
	DB   *sql.DB
	Path string
}

// Open creates the parent directory, opens the database and applies pragmas
// one connection is kept open so in-memory databases survive between calls
func Open(ctx context.Context, cfg Config) (*Lite, error) {
	path := cfg.Path
	if path == "" {
		path = Memory
	}
	if path != Memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busy.Milliseconds()),
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	return &Lite{DB: db, Path: path}, nil
}

// Close closes the connection
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}

var dollarParam = regexp.MustCompile(`\$(\d+)`)

// Rebind turns postgres style $N placeholders into sqlite ?N
// so repositories can share statements across both backends
func Rebind(query string) string {
	return dollarParam.ReplaceAllString(query, "?$1")
}
