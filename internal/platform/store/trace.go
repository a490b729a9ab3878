package store

import (
	"context"
	"time"

	"supercut/internal/platform/store/pg"
)

// traced emits one query event per statement to an optional tracer
// shared by the postgres and sqlite adapters
type traced struct {
	tracer pg.QueryTracer
	slowUS int64
}

func (t traced) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      t.slowUS >= 0 && elapsedUS >= t.slowUS,
	})
}

// row defers the trace until Scan so the scan error is captured
type row struct {
	r     Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}
