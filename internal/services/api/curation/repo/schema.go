package repo

import (
	"context"

	"supercut/internal/modkit/repokit"
	perr "supercut/internal/platform/errors"
)

// schema is valid on both postgres and sqlite, ids are uuid strings minted by the service
var schema = []string{
	`CREATE TABLE IF NOT EXISTS curation_runs (
		id            TEXT PRIMARY KEY,
		created_at    BIGINT NOT NULL,
		title         TEXT NOT NULL,
		params        TEXT NOT NULL,
		report        TEXT NOT NULL,
		target        DOUBLE PRECISION NOT NULL,
		total         DOUBLE PRECISION NOT NULL,
		underfilled   BOOLEAN NOT NULL,
		segment_count INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS curation_runs_created_idx ON curation_runs (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS curation_segments (
		run_id     TEXT NOT NULL REFERENCES curation_runs (id) ON DELETE CASCADE,
		position   INTEGER NOT NULL,
		scene_id   TEXT NOT NULL,
		source_ref TEXT NOT NULL,
		start_s    DOUBLE PRECISION NOT NULL,
		end_s      DOUBLE PRECISION NOT NULL,
		label      TEXT NOT NULL,
		confidence DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (run_id, position)
	)`,
}

// Migrate creates the run tables when missing
func Migrate(ctx context.Context, tx repokit.TxRunner) error {
	err := tx.Tx(ctx, func(q repokit.Queryer) error {
		return repokit.ExecAll(ctx, q, schema...)
	})
	return perr.FromDB(err, "migrate curation schema")
}
