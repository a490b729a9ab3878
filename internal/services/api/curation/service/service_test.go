package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"supercut/internal/core/curate"
	"supercut/internal/modkit/repokit"
	perr "supercut/internal/platform/errors"
	"supercut/internal/platform/store"
	"supercut/internal/platform/testkit"
	"supercut/internal/services/api/curation/domain"
	"supercut/internal/services/api/curation/repo"

	"github.com/jackc/pgx/v5/pgconn"
)

const fixedID = "9b2f6a2e-2f0c-4d55-9d0e-6a0c2d9f1b77"

type fakeStats struct {
	runID string
	at    int64
	rows  []domain.LabelRow
	top   []domain.LabelStat
	limit int
}

func (f *fakeStats) EnsureSchema(context.Context) error { return nil }

func (f *fakeStats) Record(_ context.Context, runID string, at int64, rows []domain.LabelRow) error {
	f.runID, f.at, f.rows = runID, at, rows
	return nil
}

func (f *fakeStats) Top(_ context.Context, limit int) ([]domain.LabelStat, error) {
	f.limit = limit
	return f.top, nil
}

func testParams() curate.Params {
	p := curate.DefaultParams()
	p.TargetDuration = 100
	return p
}

func newSvc(t *testing.T, withDB bool, mod func(*Options)) *Svc {
	t.Helper()
	opt := Options{
		Defaults:  testParams(),
		Canonical: true,
		Now:       func() time.Time { return time.UnixMilli(1760745600000) },
		NewID:     func() string { return fixedID },
	}
	if mod != nil {
		mod(&opt)
	}
	if !withDB {
		return New(nil, repo.NewSQL(), opt)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true}})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	svc := New(st.Lite, repo.NewSQL(), opt)
	if err := svc.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return svc
}

func twoSources() []domain.Source {
	return []domain.Source{
		{SourceRef: "a.mp4", Scenes: []curate.Scene{
			{ID: "a1", Start: 0, End: 10, Label: "chase", Confidence: 0.9, IsAction: true},
			{ID: "a2", Start: 20, End: 28, Label: "Chase", Confidence: 0.8, IsAction: true},
		}},
		{SourceRef: "b.mp4", Scenes: []curate.Scene{
			{ID: "b1", Start: 0, End: 5, Label: "chase ", Confidence: 0.7, IsAction: true},
			{ID: "b2", Start: 10, End: 16, Label: "jump", Confidence: 0.6, IsAction: true},
			{ID: "b3", Start: 20, End: 30, Label: "talk", Confidence: 0.9},
		}},
	}
}

func segIDs(segs []curate.Segment) string {
	ids := make([]string, len(segs))
	for i, s := range segs {
		ids[i] = s.SceneID
	}
	return strings.Join(ids, ",")
}

func TestCurate_CanonicalLabelsShareACategory(t *testing.T) {
	t.Parallel()

	out, err := newSvc(t, false, nil).Curate(context.Background(), domain.CurateInput{Sources: twoSources()})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	testkit.MustEqual(t, segIDs(out.Segments), "a1,b2,a2,b1")
	testkit.MustEqual(t, out.Total, 29.0)
	testkit.MustEqual(t, out.RunID, "")
	if !out.Underfilled {
		t.Fatal("29s of 100s should be underfilled")
	}
	if out.Report.Filtered[curate.ReasonNotAction] != 1 || out.Report.Input != 5 {
		t.Fatalf("report %+v", out.Report)
	}
	for _, s := range out.Segments {
		if s.SceneID[0] == 'b' && s.SourceRef != "b.mp4" {
			t.Fatalf("scene %s should inherit the source ref, got %q", s.SceneID, s.SourceRef)
		}
	}
	testkit.MustContain(t, out.Title, "supercut ")
}

func TestCurate_RawLabelsWithoutCanonicalization(t *testing.T) {
	t.Parallel()

	svc := newSvc(t, false, func(o *Options) { o.Canonical = false })
	out, err := svc.Curate(context.Background(), domain.CurateInput{Sources: twoSources()})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	testkit.MustEqual(t, segIDs(out.Segments), "a1,a2,b1,b2")
}

func TestCurate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := domain.CurateInput{Sources: twoSources()}
	if _, err := newSvc(t, false, nil).Curate(context.Background(), in); err != nil {
		t.Fatalf("Curate: %v", err)
	}
	if in.Sources[0].Scenes[1].Label != "Chase" || in.Sources[1].Scenes[0].SourceRef != "" {
		t.Fatalf("input was mutated %+v", in.Sources)
	}
}

func TestCurate_InvalidParamsRejectedUpfront(t *testing.T) {
	t.Parallel()

	bad := 0.5
	in := domain.CurateInput{Sources: twoSources(), Params: &domain.ParamsInput{OverflowFactor: &bad}}
	_, err := newSvc(t, false, nil).Curate(context.Background(), in)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestCurate_PersistWithoutStoreIsUnavailable(t *testing.T) {
	t.Parallel()

	yes := true
	in := domain.CurateInput{Sources: twoSources(), Persist: &yes}
	_, err := newSvc(t, false, nil).Curate(context.Background(), in)
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestCurate_PersistsRunAndStats(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{}
	svc := newSvc(t, true, func(o *Options) { o.Persist = true; o.Stats = stats })
	ctx := context.Background()

	out, err := svc.Curate(ctx, domain.CurateInput{Title: "trip", Sources: twoSources()})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	testkit.MustEqual(t, out.RunID, fixedID)

	run, err := svc.Run(ctx, fixedID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	testkit.MustEqual(t, run.Title, "trip")
	testkit.MustEqual(t, segIDs(run.Segments), "a1,b2,a2,b1")
	testkit.MustEqual(t, run.CreatedAt, int64(1760745600000))

	testkit.MustEqual(t, stats.runID, fixedID)
	if len(stats.rows) != 2 {
		t.Fatalf("rows %+v", stats.rows)
	}
	chase := stats.rows[0]
	if chase.Label != "chase" || chase.Candidates != 3 || chase.Selected != 3 || chase.SelectedSeconds != 23 {
		t.Fatalf("chase row %+v", chase)
	}

	runs, err := svc.Runs(ctx, 0)
	if err != nil || len(runs) != 1 || runs[0].SegmentCount != 4 {
		t.Fatalf("Runs: %v %+v", err, runs)
	}
}

func TestCurate_RequestCanOptOutOfPersist(t *testing.T) {
	t.Parallel()

	no := false
	svc := newSvc(t, true, func(o *Options) { o.Persist = true })
	out, err := svc.Curate(context.Background(), domain.CurateInput{Sources: twoSources(), Persist: &no})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	testkit.MustEqual(t, out.RunID, "")
	if _, err := svc.Run(context.Background(), fixedID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("nothing should be stored, got %v", err)
	}
}

func TestPrepareAll_KeepsRequestOrder(t *testing.T) {
	t.Parallel()

	svc := newSvc(t, false, func(o *Options) { o.Workers = 3; o.Defaults.EnsureDiversity = false })
	sources := make([]domain.Source, 12)
	for i := range sources {
		sources[i] = domain.Source{
			SourceRef: fmt.Sprintf("v%02d.mp4", i),
			Scenes: []curate.Scene{
				{ID: fmt.Sprintf("s%02d", i), Start: 0, End: 4, Label: "x", Confidence: 0.5, IsAction: true},
			},
		}
	}
	parts, err := svc.prepareAll(context.Background(), sources, svc.opt.Defaults)
	if err != nil {
		t.Fatalf("prepareAll: %v", err)
	}
	for i, p := range parts {
		if len(p.Scenes) != 1 || p.Scenes[0].SourceRef != sources[i].SourceRef {
			t.Fatalf("part %d out of order: %+v", i, p.Scenes)
		}
	}
}

func TestPrepareAll_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := newSvc(t, false, nil)
	if _, err := svc.prepareAll(ctx, twoSources(), svc.opt.Defaults); !perr.IsCode(err, perr.ErrorCodeTimeout) {
		t.Fatalf("want timeout code, got %v", err)
	}
}

func TestWindows(t *testing.T) {
	t.Parallel()

	in := domain.WindowsInput{Scenes: []domain.WindowScene{
		{ID: "long", Start: 0, End: 23},
		{ID: "short", Start: 0, End: 8},
		{ID: "broken", Start: 5, End: 2},
	}}
	out, err := newSvc(t, false, nil).Windows(context.Background(), in)
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	if len(out.Scenes) != 2 || len(out.Drops) != 1 || out.Drops[0].Reason != curate.ReasonInvalidTimeRange {
		t.Fatalf("out %+v", out)
	}
	long := out.Scenes[0]
	if !long.Split || len(long.Windows) != 5 || long.Windows[4] != (curate.Window{Start: 20, End: 23}) {
		t.Fatalf("long %+v", long)
	}
	if short := out.Scenes[1]; short.Split || len(short.Windows) != 0 {
		t.Fatalf("short %+v", short)
	}
}

func TestWindows_RejectsBadOverride(t *testing.T) {
	t.Parallel()

	zero := 0.0
	in := domain.WindowsInput{Scenes: []domain.WindowScene{{ID: "a", End: 1}}, WindowLength: &zero}
	if _, err := newSvc(t, false, nil).Windows(context.Background(), in); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := newSvc(t, false, nil).Run(ctx, fixedID); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("no store: %v", err)
	}
	svc := newSvc(t, true, nil)
	for _, id := range []string{"nope", fixedID} {
		if _, err := svc.Run(ctx, id); !perr.IsCode(err, perr.ErrorCodeNotFound) {
			t.Fatalf("id %q: %v", id, err)
		}
	}
}

func TestEDL_RendersStoredRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newSvc(t, true, func(o *Options) { o.Persist = true })
	if _, err := svc.Curate(ctx, domain.CurateInput{Title: "trip", Sources: twoSources()}); err != nil {
		t.Fatalf("Curate: %v", err)
	}
	got, err := svc.EDL(ctx, fixedID, 25)
	if err != nil {
		t.Fatalf("EDL: %v", err)
	}
	testkit.MustEqual(t, got.Filename, "supercut-9b2f6a2e.edl")
	testkit.MustContain(t, got.Body, "TITLE: trip")
	testkit.MustContain(t, got.Body, "* SOURCE FILE:  b.mp4")
}

func TestLabelStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, err := newSvc(t, false, nil).LabelStats(ctx, 5); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("no stats store: %v", err)
	}

	stats := &fakeStats{top: []domain.LabelStat{
		{Label: "chase", Candidates: 8, Selected: 2},
		{Label: "idle"},
	}}
	svc := newSvc(t, false, func(o *Options) { o.Stats = stats })
	got, err := svc.LabelStats(ctx, 10000)
	if err != nil || len(got) != 2 {
		t.Fatalf("LabelStats: %v %+v", err, got)
	}
	testkit.MustEqual(t, stats.limit, maxLimit)
	testkit.MustEqual(t, got[0].SelectionRate, 0.25)
	testkit.MustEqual(t, got[1].SelectionRate, 0.0)
}

func TestLabelRows(t *testing.T) {
	t.Parallel()

	cands := []curate.Scene{
		{ID: "1", Label: "jump"}, {ID: "2", Label: "chase"}, {ID: "3", Label: "jump"},
	}
	sel := []curate.Segment{{SceneID: "3", Label: "jump", Start: 1, End: 4}}
	rows := LabelRows(cands, sel)
	if len(rows) != 2 || rows[0].Label != "jump" || rows[0].Candidates != 2 || rows[0].Selected != 1 || rows[0].SelectedSeconds != 3 {
		t.Fatalf("rows %+v", rows)
	}
	if rows[1].Label != "chase" || rows[1].Selected != 0 {
		t.Fatalf("rows %+v", rows)
	}
}

func TestNew_PanicsOnInvalidDefaults(t *testing.T) {
	t.Parallel()

	p := curate.DefaultParams()
	p.TargetDuration = 0
	testkit.MustPanic(t, func() { New(nil, repo.NewSQL(), Options{Defaults: p}) })
}

// flakyRepo fails the first inserts with err before delegating to the sql repo
type flakyRepo struct {
	repo.Repo
	fails *int
	calls *int
	err   error
}

func (f flakyRepo) Insert(ctx context.Context, run domain.Run) error {
	*f.calls++
	if *f.fails > 0 {
		*f.fails--
		return perr.FromDB(f.err, "insert run")
	}
	return f.Repo.Insert(ctx, run)
}

func newFlakySvc(t *testing.T, fails int, err error) (*Svc, *int) {
	t.Helper()
	ctx := context.Background()
	st, openErr := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true}})
	if openErr != nil {
		t.Fatalf("store.Open: %v", openErr)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	calls := 0
	binder := repokit.BindFunc[repo.Repo](func(q repokit.Queryer) repo.Repo {
		return flakyRepo{Repo: repo.NewSQL().Bind(q), fails: &fails, calls: &calls, err: err}
	})
	svc := New(st.Lite, binder, Options{
		Defaults:     testParams(),
		Persist:      true,
		RetryBackoff: time.Millisecond,
		NewID:        func() string { return fixedID },
	})
	if schemaErr := svc.EnsureSchema(ctx); schemaErr != nil {
		t.Fatalf("EnsureSchema: %v", schemaErr)
	}
	return svc, &calls
}

func TestCurate_RetriesContendedInsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, calls := newFlakySvc(t, 2, &pgconn.PgError{Code: "40001"})
	out, err := svc.Curate(ctx, domain.CurateInput{Sources: twoSources()})
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	testkit.MustEqual(t, *calls, 3)
	testkit.MustEqual(t, out.RunID, fixedID)
	if _, err := svc.Run(ctx, fixedID); err != nil {
		t.Fatalf("Run: %v", err)
	}
	n, err := svc.RunCount(ctx)
	if err != nil || n != 1 {
		t.Fatalf("RunCount = %d, %v", n, err)
	}
}

func TestCurate_InsertRetriesAreBounded(t *testing.T) {
	t.Parallel()

	svc, calls := newFlakySvc(t, 10, &pgconn.PgError{Code: "40P01"})
	_, err := svc.Curate(context.Background(), domain.CurateInput{Sources: twoSources()})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("want db error, got %v", err)
	}
	testkit.MustEqual(t, *calls, insertAttempts)
}

func TestCurate_PermanentInsertErrorNotRetried(t *testing.T) {
	t.Parallel()

	svc, calls := newFlakySvc(t, 1, &pgconn.PgError{Code: "23505"})
	_, err := svc.Curate(context.Background(), domain.CurateInput{Sources: twoSources()})
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("want duplicate key, got %v", err)
	}
	testkit.MustEqual(t, *calls, 1)
}

func TestIngest_NamesScenesWithoutIDs(t *testing.T) {
	t.Parallel()

	src := domain.Source{SourceRef: "day1.mp4", Scenes: []curate.Scene{
		{Start: 0, End: 5, Label: "Chase"},
		{ID: "kept", Start: 5, End: 9, Label: "jump"},
		{ID: "  ", Start: 9, End: 14, Label: "chase"},
	}}
	got := newSvc(t, false, nil).ingest(context.Background(), src)
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	testkit.MustEqual(t, strings.Join(ids, ","), "day1.mp4#1,kept,day1.mp4#3")
	testkit.MustEqual(t, got[0].Label, "chase")
	if src.Scenes[0].ID != "" {
		t.Fatal("input was mutated")
	}
}

func TestCurate_ScenesWithoutIDsAreSelected(t *testing.T) {
	t.Parallel()

	in := domain.CurateInput{Title: "  ", Sources: []domain.Source{{SourceRef: "v.mp4", Scenes: []curate.Scene{
		{ID: "v.mp4#2", Start: 0, End: 6, Label: "chase", Confidence: 0.9, IsAction: true},
		{Start: 10, End: 16, Label: "chase", Confidence: 0.8, IsAction: true},
		{Start: 20, End: 25, Label: "jump", Confidence: 0.7, IsAction: true},
	}}}}
	out, err := newSvc(t, false, nil).Curate(context.Background(), in)
	if err != nil {
		t.Fatalf("Curate: %v", err)
	}
	// the second scene is named v.mp4#2 and collides with the explicit id before it
	testkit.MustEqual(t, out.Report.Invalid, 1)
	testkit.MustEqual(t, segIDs(out.Segments), "v.mp4#2,v.mp4#3")
	testkit.MustEqual(t, out.Title, "supercut 2025-10-18 00:00")
}
