package lite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestRebind(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"SELECT 1":                                "SELECT 1",
		"SELECT * FROM t WHERE a = $1 AND b = $2": "SELECT * FROM t WHERE a = ?1 AND b = ?2",
		"INSERT INTO t VALUES ($1, $10, $2)":      "INSERT INTO t VALUES (?1, ?10, ?2)",
		"UPDATE t SET price = '$' WHERE id = $3":  "UPDATE t SET price = '$' WHERE id = ?3",
	}
	for in, want := range cases {
		if got := Rebind(in); got != want {
			t.Fatalf("Rebind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpen_FileCreatesDirectoryAndAppliesPragmas(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	l, err := Open(context.Background(), Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	var mode string
	if err := l.DB.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}

	var fk int
	if err := l.DB.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Fatalf("foreign_keys = %d", fk)
	}
}

func TestOpen_MemoryKeepsStateAcrossCalls(t *testing.T) {
	t.Parallel()

	l, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })

	if l.Path != Memory {
		t.Fatalf("Path = %q", l.Path)
	}
	if _, err := l.DB.Exec("CREATE TABLE t (v INTEGER)"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := l.DB.Exec(Rebind("INSERT INTO t (v) VALUES ($1)"), 7); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var v int
	if err := l.DB.QueryRow("SELECT v FROM t").Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != 7 {
		t.Fatalf("v = %d", v)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var l *Lite
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
