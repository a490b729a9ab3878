// Package repo provides curation run persistence on postgres or sqlite
// and per label stats on clickhouse
package repo

import (
	"context"
	"encoding/json"

	"supercut/internal/core/curate"
	"supercut/internal/modkit/repokit"
	perr "supercut/internal/platform/errors"
	"supercut/internal/services/api/curation/domain"
)

// Repo is the run persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, run domain.Run) error
	Get(ctx context.Context, id string) (domain.Run, error)
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)
	Count(ctx context.Context) (int64, error)
}

type (
	// SQL binds the repo to either sql backend, statements use $N placeholders
	SQL     struct{}
	queries struct{ q repokit.Queryer }
)

// NewSQL returns a binder for the sql implementation
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind attaches a Queryer to the sql implementation
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Insert writes the run header then its segments in plan order
// call it inside a transaction so a run is never half written
func (r *queries) Insert(ctx context.Context, run domain.Run) error {
	params, err := json.Marshal(run.Params)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode params")
	}
	report, err := json.Marshal(run.Report)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode report")
	}

	const insertRun = `
		INSERT INTO curation_runs (id, created_at, title, params, report, target, total, underfilled, segment_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	err = repokit.ExecOne(ctx, r.q, insertRun,
		run.ID, run.CreatedAt, run.Title, string(params), string(report),
		run.Target, run.Total, run.Underfilled, len(run.Segments),
	)
	if err != nil {
		return perr.FromDBf(err, "insert run %s", run.ID)
	}

	const insertSeg = `
		INSERT INTO curation_segments (run_id, position, scene_id, source_ref, start_s, end_s, label, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for i, s := range run.Segments {
		if _, err := r.q.Exec(ctx, insertSeg,
			run.ID, i, s.SceneID, s.SourceRef, s.Start, s.End, s.Label, s.Confidence,
		); err != nil {
			return perr.FromDBf(err, "insert segment %d of run %s", i, run.ID)
		}
	}
	return nil
}

// Get loads a run and its segments, perr.ErrNotFound when the id is unknown
func (r *queries) Get(ctx context.Context, id string) (domain.Run, error) {
	const head = `
		SELECT id, created_at, title, params, report, target, total, underfilled
		FROM curation_runs
		WHERE id = $1
	`
	run, err := repokit.One(ctx, r.q, scanRun, head, id)
	if err != nil {
		return domain.Run{}, perr.FromDBf(err, "load run %s", id)
	}

	const segs = `
		SELECT scene_id, source_ref, start_s, end_s, label, confidence
		FROM curation_segments
		WHERE run_id = $1
		ORDER BY position
	`
	run.Segments, err = repokit.Many(ctx, r.q, scanSegment, segs, id)
	if err != nil {
		return domain.Run{}, perr.FromDBf(err, "load segments of run %s", id)
	}
	return run, nil
}

// List returns the newest runs first
func (r *queries) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	const sql = `
		SELECT id, created_at, title, target, total, underfilled, segment_count
		FROM curation_runs
		ORDER BY created_at DESC, id
		LIMIT $1
	`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (domain.RunSummary, error) {
		var s domain.RunSummary
		err := row.Scan(&s.ID, &s.CreatedAt, &s.Title, &s.Target, &s.Total, &s.Underfilled, &s.SegmentCount)
		return s, err
	}, sql, limit)
	return out, perr.FromDB(err, "list runs")
}

// Count returns how many runs are stored
func (r *queries) Count(ctx context.Context) (int64, error) {
	n, err := repokit.Scalar[int64](ctx, r.q, `SELECT COUNT(*) FROM curation_runs`)
	return n, perr.FromDB(err, "count runs")
}

func scanRun(row repokit.Row) (domain.Run, error) {
	var (
		run            domain.Run
		params, report string
	)
	if err := row.Scan(&run.ID, &run.CreatedAt, &run.Title, &params, &report,
		&run.Target, &run.Total, &run.Underfilled); err != nil {
		return run, err
	}
	if err := json.Unmarshal([]byte(params), &run.Params); err != nil {
		return run, perr.Wrap(err, perr.ErrorCodeJSON, "decode stored params")
	}
	if err := json.Unmarshal([]byte(report), &run.Report); err != nil {
		return run, perr.Wrap(err, perr.ErrorCodeJSON, "decode stored report")
	}
	return run, nil
}

func scanSegment(row repokit.Row) (curate.Segment, error) {
	var s curate.Segment
	err := row.Scan(&s.SceneID, &s.SourceRef, &s.Start, &s.End, &s.Label, &s.Confidence)
	return s, err
}
