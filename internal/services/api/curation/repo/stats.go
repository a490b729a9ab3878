package repo

import (
	"context"
	"time"

	perr "supercut/internal/platform/errors"
	"supercut/internal/platform/store"
	"supercut/internal/services/api/curation/domain"
)

const statsTable = "curation_label_stats"

const statsDDL = `
CREATE TABLE IF NOT EXISTS curation_label_stats (
	run_id           String,
	created_at       DateTime64(3),
	label            LowCardinality(String),
	candidates       UInt32,
	selected         UInt32,
	selected_seconds Float64
)
ENGINE = MergeTree
ORDER BY (label, created_at)
`

// Stats writes and aggregates label stats in clickhouse
type Stats struct {
	ch store.Clickhouse
}

// NewStats returns a stats port over ch
func NewStats(ch store.Clickhouse) *Stats {
	if ch == nil {
		panic("curation.Stats requires a non nil clickhouse seam")
	}
	return &Stats{ch: ch}
}

var _ domain.StatsPort = (*Stats)(nil)

// EnsureSchema creates the stats table when missing
func (s *Stats) EnsureSchema(ctx context.Context) error {
	if err := s.ch.Exec(ctx, statsDDL); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "create label stats table")
	}
	return nil
}

// Record appends one row per label for a run in a single batch
func (s *Stats) Record(ctx context.Context, runID string, createdAtMs int64, rows []domain.LabelRow) error {
	if len(rows) == 0 {
		return nil
	}
	at := time.UnixMilli(createdAtMs).UTC()
	batch := make([][]any, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, []any{runID, at, r.Label, r.Candidates, r.Selected, r.SelectedSeconds})
	}
	if err := s.ch.Insert(ctx, statsTable, batch); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "record label stats for run %s", runID)
	}
	return nil
}

// Top aggregates labels across runs, most selected seconds first
func (s *Stats) Top(ctx context.Context, limit int) ([]domain.LabelStat, error) {
	const sql = `
		SELECT label,
		       uniqExact(run_id)     AS runs,
		       sum(candidates)       AS candidates,
		       sum(selected)         AS selected,
		       sum(selected_seconds) AS selected_seconds
		FROM curation_label_stats
		GROUP BY label
		ORDER BY selected_seconds DESC, label
		LIMIT ?
	`
	rows, err := s.ch.Query(ctx, sql, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "query label stats")
	}
	defer rows.Close()

	out := []domain.LabelStat{}
	for rows.Next() {
		var st domain.LabelStat
		if err := rows.Scan(&st.Label, &st.Runs, &st.Candidates, &st.Selected, &st.SelectedSeconds); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "scan label stats")
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "iterate label stats")
	}
	return out, nil
}
