package domain

import (
	"context"

	"supercut/internal/core/curate"
)

// ServicePort is the interface implemented by the curation service
type ServicePort interface {
	Curate(ctx context.Context, in CurateInput) (CurateOutput, error)
	Windows(ctx context.Context, in WindowsInput) (WindowsOutput, error)
	Run(ctx context.Context, id string) (Run, error)
	Runs(ctx context.Context, limit int) ([]RunSummary, error)
	EDL(ctx context.Context, id string, fps float64) (EDL, error)
	LabelStats(ctx context.Context, limit int) ([]LabelStat, error)
	Defaults() curate.Params
}

// StatsPort records and aggregates per label selection stats
type StatsPort interface {
	EnsureSchema(ctx context.Context) error
	Record(ctx context.Context, runID string, createdAtMs int64, rows []LabelRow) error
	Top(ctx context.Context, limit int) ([]LabelStat, error)
}
