// Package service contains curation workflows
package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"supercut/internal/core/curate"
	"supercut/internal/core/edl"
	"supercut/internal/core/labels"
	"supercut/internal/modkit/repokit"
	perr "supercut/internal/platform/errors"
	"supercut/internal/platform/logger"
	pstrings "supercut/internal/platform/strings"
	"supercut/internal/services/api/curation/domain"
	"supercut/internal/services/api/curation/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

const (
	defaultWorkers = 4
	defaultLimit   = 20
	maxLimit       = 500

	insertAttempts      = 3
	defaultRetryBackoff = 50 * time.Millisecond
)

// Options control service behavior
type Options struct {
	// Defaults are the params a request starts from
	Defaults curate.Params

	// Workers bounds how many sources are prepared at once, 0 means 4
	Workers int

	// Canonical folds labels so cosmetic variants share a category
	Canonical bool

	// Persist stores every plan unless the request says otherwise
	Persist bool

	// Stats is optional; runs are recorded there after they are stored
	Stats domain.StatsPort

	// RetryBackoff is the base wait between contended insert attempts, 0 means 50ms
	RetryBackoff time.Duration

	Now   func() time.Time
	NewID func() string
}

// Svc implements the service port
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	stats  domain.StatsPort
	opt    Options
}

// New constructs the service; db may be nil when no sql store is configured
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if binder == nil {
		panic("curation.Service requires a non nil Repo binder")
	}
	if err := opt.Defaults.Validate(); err != nil {
		panic("curation.Service default params are invalid: " + err.Error())
	}
	if opt.Workers <= 0 {
		opt.Workers = defaultWorkers
	}
	if opt.RetryBackoff <= 0 {
		opt.RetryBackoff = defaultRetryBackoff
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.NewID == nil {
		opt.NewID = uuid.NewString
	}
	return &Svc{db: db, binder: binder, stats: opt.Stats, opt: opt}
}

// EnsureSchema creates the run tables and the stats table for whichever stores are wired
func (s *Svc) EnsureSchema(ctx context.Context) error {
	if s.db != nil {
		if err := repo.Migrate(ctx, s.db); err != nil {
			return err
		}
	}
	if s.stats != nil {
		if err := s.stats.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Defaults returns the params requests start from
func (s *Svc) Defaults() curate.Params { return s.opt.Defaults }

// Curate prepares every source on the worker pool, merges them in request order and selects
func (s *Svc) Curate(ctx context.Context, in domain.CurateInput) (domain.CurateOutput, error) {
	p := in.Params.Apply(s.opt.Defaults)
	if err := p.Validate(); err != nil {
		return domain.CurateOutput{}, err
	}

	persist := s.opt.Persist
	if in.Persist != nil {
		persist = *in.Persist
	}
	if persist && s.db == nil {
		return domain.CurateOutput{}, perr.Unavailablef("run storage is not configured")
	}

	now := s.opt.Now()
	var runID string
	if persist {
		runID = s.opt.NewID()
		ctx = logger.WithRun(ctx, runID)
	}
	log := logger.C(ctx)

	parts, err := s.prepareAll(ctx, in.Sources, p)
	if err != nil {
		return domain.CurateOutput{}, err
	}
	merged := curate.Merge(parts...)
	plan, err := curate.Select(merged, p)
	if err != nil {
		return domain.CurateOutput{}, err
	}
	logPlan(log, len(in.Sources), plan)

	title := pstrings.FirstNonEmpty(in.Title, "supercut "+now.UTC().Format("2006-01-02 15:04"))
	out := domain.CurateOutput{Title: title, Plan: plan}
	if !persist {
		return out, nil
	}

	run := domain.Run{
		ID:          runID,
		CreatedAt:   now.UnixMilli(),
		Title:       title,
		Params:      plan.Params,
		Report:      plan.Report,
		Target:      plan.Target,
		Total:       plan.Total,
		Underfilled: plan.Underfilled,
		Segments:    plan.Segments,
	}
	if err := s.storeRun(ctx, run); err != nil {
		return domain.CurateOutput{}, err
	}
	out.RunID = runID
	log.Info().Int("segments", len(run.Segments)).Msg("run stored")

	if s.stats != nil {
		rows := LabelRows(merged.Scenes, plan.Segments)
		if err := s.stats.Record(ctx, runID, run.CreatedAt, rows); err != nil {
			log.Warn().Err(err).Msg("label stats not recorded")
		}
	}
	return out, nil
}

// storeRun inserts run in one transaction, retrying lock contention a few times
func (s *Svc) storeRun(ctx context.Context, run domain.Run) error {
	for attempt := 1; ; attempt++ {
		err := repokit.WithTx(ctx, s.db, s.binder, func(r repo.Repo) error {
			return r.Insert(ctx, run)
		})
		if err == nil || attempt >= insertAttempts || !perr.IsRetryable(err) {
			return err
		}
		logger.C(ctx).Warn().Err(err).Int("attempt", attempt).Msg("run insert contended, retrying")

		t := time.NewTimer(time.Duration(attempt) * s.opt.RetryBackoff)
		select {
		case <-ctx.Done():
			t.Stop()
			return perr.Wrap(ctx.Err(), perr.ErrorCodeTimeout, "run insert cancelled")
		case <-t.C:
		}
	}
}

// prepareAll runs Prepare per source with at most Workers in flight
// results keep the request order regardless of completion order
func (s *Svc) prepareAll(ctx context.Context, sources []domain.Source, p curate.Params) ([]curate.Prepared, error) {
	out := make([]curate.Prepared, len(sources))
	errs := make([]error, len(sources))

	sem := make(chan struct{}, s.opt.Workers)
	wg := sync.WaitGroup{}

	for i := range sources {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, perr.Wrap(err, perr.ErrorCodeTimeout, "curation cancelled")
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			scenes := s.ingest(ctx, sources[i])
			out[i], errs[i] = curate.Prepare(scenes, p)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ingest copies a source's scenes, filling the source ref, ids and normalized labels
// a scene without an id is named after its source and 1-based position, as classifiers
// that number scenes per video emit them
func (s *Svc) ingest(ctx context.Context, src domain.Source) []curate.Scene {
	var set *labels.Set
	if s.opt.Canonical {
		set = labels.NewSet()
	}
	fix := func(label string) string {
		if set != nil {
			return set.Add(label)
		}
		if strings.TrimSpace(label) == "" {
			return curate.UnknownLabel
		}
		return label
	}

	out := make([]curate.Scene, len(src.Scenes))
	for i, sc := range src.Scenes {
		if sc.SourceRef == "" {
			sc.SourceRef = src.SourceRef
		}
		if strings.TrimSpace(sc.ID) == "" {
			sc.ID = SceneID(sc.SourceRef, i+1)
		}
		sc.Label = fix(sc.Label)
		if len(sc.SubSegments) > 0 {
			subs := make([]curate.SubSegment, len(sc.SubSegments))
			for j, sub := range sc.SubSegments {
				sub.Label = fix(sub.Label)
				subs[j] = sub
			}
			sc.SubSegments = subs
		}
		out[i] = sc
	}

	if set != nil {
		counts := zerolog.Dict()
		for _, l := range set.Labels() {
			counts.Int(l, set.Count(l))
		}
		logger.C(ctx).Debug().
			Str("source_ref", src.SourceRef).
			Int("scenes", len(out)).
			Dict("labels", counts).
			Msg("source ingested")
	}
	return out
}

// SceneID is the id given to a scene that arrived without one
func SceneID(sourceRef string, ordinal int) string {
	return sourceRef + "#" + strconv.Itoa(ordinal)
}

func logPlan(log *logger.Logger, sources int, plan curate.Plan) {
	rep := plan.Report
	for _, d := range rep.Drops {
		log.Debug().
			Str("scene_id", d.SceneID).
			Str("stage", d.Stage).
			Str("reason", d.Reason).
			Msg("scene dropped")
	}
	evt := log.Info()
	if plan.Underfilled {
		evt = log.Warn()
	}
	evt.Int("sources", sources).
		Int("input", rep.Input).
		Int("invalid", rep.Invalid).
		Int("resolved", rep.Resolved).
		Int("invalid_sub_segments", rep.InvalidSubSegments).
		Int("filtered", rep.FilteredTotal()).
		Int("candidates", rep.Candidates).
		Int("balanced", rep.Balanced).
		Int("selected", rep.Selected).
		Int("skipped", rep.Skipped).
		Float64("total", plan.Total).
		Float64("target", plan.Target).
		Bool("underfilled", plan.Underfilled).
		Msg("curation plan built")
}

// LabelRows counts candidates and selections per label in first seen candidate order
func LabelRows(candidates []curate.Scene, selected []curate.Segment) []domain.LabelRow {
	idx := map[string]int{}
	var rows []domain.LabelRow
	row := func(label string) *domain.LabelRow {
		i, ok := idx[label]
		if !ok {
			i = len(rows)
			idx[label] = i
			rows = append(rows, domain.LabelRow{Label: label})
		}
		return &rows[i]
	}
	for _, c := range candidates {
		row(c.Label).Candidates++
	}
	for _, seg := range selected {
		r := row(seg.Label)
		r.Selected++
		r.SelectedSeconds += seg.Duration()
	}
	return rows
}

// Windows plans the analysis windows of each scene for the external classifier
func (s *Svc) Windows(_ context.Context, in domain.WindowsInput) (domain.WindowsOutput, error) {
	p := (&domain.ParamsInput{
		SplitThreshold: in.SplitThreshold,
		WindowLength:   in.WindowLength,
		MinWindow:      in.MinWindow,
	}).Apply(s.opt.Defaults)
	if err := p.Validate(); err != nil {
		return domain.WindowsOutput{}, err
	}

	scenes := make([]curate.Scene, len(in.Scenes))
	for i, w := range in.Scenes {
		scenes[i] = curate.Scene{ID: w.ID, Start: w.Start, End: w.End}
	}
	valid, drops := curate.ValidateScenes(scenes)

	out := domain.WindowsOutput{Scenes: make([]domain.SceneWindows, 0, len(valid)), Drops: drops}
	for _, sc := range valid {
		ws := curate.PlanWindows(sc, p)
		if ws == nil {
			ws = []curate.Window{}
		}
		out.Scenes = append(out.Scenes, domain.SceneWindows{
			SceneID: sc.ID,
			Start:   sc.Start,
			End:     sc.End,
			Split:   len(ws) > 0,
			Windows: ws,
		})
	}
	return out, nil
}

func (s *Svc) requireDB() error {
	if s.db == nil {
		return perr.Unavailablef("run storage is not configured")
	}
	return nil
}

// Run loads a stored run, unknown or malformed ids are not found
func (s *Svc) Run(ctx context.Context, id string) (domain.Run, error) {
	if err := s.requireDB(); err != nil {
		return domain.Run{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.Run{}, perr.NotFoundf("run %q not found", id)
	}
	run, err := repokit.Read(s.db, s.binder).Get(ctx, id)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.Run{}, perr.NotFoundf("run %q not found", id)
	}
	return run, err
}

// RunCount reports how many runs are stored
func (s *Svc) RunCount(ctx context.Context) (int64, error) {
	if err := s.requireDB(); err != nil {
		return 0, err
	}
	return repokit.Read(s.db, s.binder).Count(ctx)
}

// Runs lists stored runs newest first
func (s *Svc) Runs(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if err := s.requireDB(); err != nil {
		return nil, err
	}
	return repokit.Read(s.db, s.binder).List(ctx, clampLimit(limit))
}

// EDL renders a stored run as an edit decision list at fps, 0 means the edl default
func (s *Svc) EDL(ctx context.Context, id string, fps float64) (domain.EDL, error) {
	run, err := s.Run(ctx, id)
	if err != nil {
		return domain.EDL{}, err
	}
	short := run.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return domain.EDL{
		Filename: "supercut-" + short + ".edl",
		Body:     edl.Generate(run.Title, run.Segments, fps),
	}, nil
}

// LabelStats aggregates label stats across stored runs
func (s *Svc) LabelStats(ctx context.Context, limit int) ([]domain.LabelStat, error) {
	if s.stats == nil {
		return nil, perr.Unavailablef("label stats store is not configured")
	}
	out, err := s.stats.Top(ctx, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].SelectionRate = domain.SelectionRate(out[i].Selected, out[i].Candidates)
	}
	return out, nil
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return defaultLimit
	case n > maxLimit:
		return maxLimit
	}
	return n
}
