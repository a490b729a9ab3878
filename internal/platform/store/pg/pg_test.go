package pg

import (
	"context"
	"errors"
	"testing"

	"supercut/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	_, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/db?sslmode=disable"}, nil, nil)
	if err == nil {
		t.Fatalf("expected newPool error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return &pgxpool.Pool{}, nil
	})

	cfg := Config{URL: "postgres://u:p@h:5432/db?sslmode=disable", MaxConns: 7, SlowMs: 250, AppName: "supercut-api"}
	mutCalled := false
	p, err := Open(context.Background(), cfg, nil, func(*pgxpool.Config) { mutCalled = true })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !mutCalled {
		t.Fatalf("pool mutator not invoked")
	}
	if seen.MaxConns != 7 {
		t.Fatalf("MaxConns = %d", seen.MaxConns)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "supercut-api" {
		t.Fatalf("application_name = %q", got)
	}
	if p.SlowMs != 250 || p.Pool == nil {
		t.Fatalf("unexpected client %+v", p)
	}
}

func TestOpen_KeepsURLApplicationName(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return &pgxpool.Pool{}, nil
	})

	url := "postgres://u:p@h:5432/db?sslmode=disable&application_name=psql"
	if _, err := Open(context.Background(), Config{URL: url, AppName: "supercut-api"}, nil, nil); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "psql" {
		t.Fatalf("application_name = %q, want the URL value", got)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
