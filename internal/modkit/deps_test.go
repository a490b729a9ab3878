package modkit

import (
	"context"
	"testing"

	"supercut/internal/platform/store"
)

type fakeRunner struct{ store.TxRunner }

func TestDeps_FromStore(t *testing.T) {
	t.Parallel()

	var d Deps
	if got := d.FromStore(nil); got.PG != nil || got.Status != nil {
		t.Fatal("nil store should leave deps untouched")
	}

	lite := fakeRunner{}
	d = d.FromStore(&store.Store{Lite: lite})
	if d.PG != nil || d.Lite == nil {
		t.Fatalf("unexpected seams %+v", d)
	}
	if d.Status == nil {
		t.Fatal("Status should be wired from the store")
	}
	if st := d.Status(context.Background()); st["lite"] != nil {
		t.Fatalf("status=%v", st)
	}
}

func TestDeps_SQLPrefersPostgres(t *testing.T) {
	t.Parallel()

	pg, lite := &fakeRunner{}, &fakeRunner{}
	cases := []struct {
		name string
		deps Deps
		want store.TxRunner
	}{
		{"none", Deps{}, nil},
		{"lite only", Deps{Lite: lite}, lite},
		{"both", Deps{PG: pg, Lite: lite}, pg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.deps.SQL(); got != tc.want {
				t.Fatalf("SQL()=%v want %v", got, tc.want)
			}
		})
	}
}
