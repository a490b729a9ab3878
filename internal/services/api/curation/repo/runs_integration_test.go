//go:build integration_pg

package repo

import (
	"context"
	"io"
	"testing"
	"time"

	"supercut/internal/modkit/repokit"
	perr "supercut/internal/platform/errors"
	"supercut/internal/platform/store"
	"supercut/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestSQL_Postgres(t *testing.T) {
	dsn := testkit.Postgres(t)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "supercut-curation-test",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	// twice to prove the DDL is idempotent
	for range 2 {
		if err := Migrate(ctx, st.PG); err != nil {
			t.Fatalf("Migrate: %v", err)
		}
	}

	id := "9b2f6a2e-2f0c-4d55-9d0e-6a0c2d9f1b77"
	want := sampleRun(id, 2000)
	if err := repokit.WithTx(ctx, st.PG, NewSQL(), func(r Repo) error { return r.Insert(ctx, want) }); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err = repokit.WithTx(ctx, st.PG, NewSQL(), func(r Repo) error { return r.Insert(ctx, want) })
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("duplicate insert err = %v", err)
	}

	r := repokit.Read(st.PG, NewSQL())
	got, err := r.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Params != want.Params || len(got.Segments) != 2 || got.Segments[0].SceneID != "b" {
		t.Fatalf("got %+v", got)
	}

	list, err := r.List(ctx, 10)
	if err != nil || len(list) != 1 || list[0].SegmentCount != 2 {
		t.Fatalf("List = %+v err %v", list, err)
	}
	if n, err := r.Count(ctx); err != nil || n != 1 {
		t.Fatalf("Count = %d, %v", n, err)
	}

	if _, err := r.Get(ctx, "00000000-0000-0000-0000-000000000000"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing run err = %v", err)
	}
}
