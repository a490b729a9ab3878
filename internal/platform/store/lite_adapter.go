package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"supercut/internal/platform/store/lite"
)

// sqlConn is the part of *sql.DB and *sql.Tx the adapter needs
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// liteAdapter wraps lite.Lite and implements TxRunner over database/sql
// statements are rebound from $N to ?N before they reach sqlite
type liteAdapter struct {
	l *lite.Lite
	liteQuerier
}

func newLiteAdapter(l *lite.Lite) *liteAdapter {
	return &liteAdapter{l: l, liteQuerier: liteQuerier{c: l.DB}}
}

func (a *liteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.l == nil || a.l.DB == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.l.DB.PingContext(ctx)
}

func (a *liteAdapter) Close() error { return a.l.Close() }

func (a *liteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(liteQuerier{c: tx, traced: a.traced}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type liteQuerier struct {
	c sqlConn
	traced
}

func (q liteQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := q.c.ExecContext(ctx, lite.Rebind(query), args...)
	q.emit(ctx, query, args, start, err)
	return result{res}, err
}

func (q liteQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.c.QueryContext(ctx, lite.Rebind(query), args...)
	q.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func (q liteQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	start := time.Now()
	r := q.c.QueryRowContext(ctx, lite.Rebind(query), args...)
	return row{r: r, after: func(scanErr error) { q.emit(ctx, query, args, start, scanErr) }}
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

// result adapts sql.Result to CommandTag
type result struct{ r sql.Result }

func (x result) RowsAffected() int64 {
	if x.r == nil {
		return 0
	}
	n, err := x.r.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}

func (x result) String() string { return "ROWS " + strconv.FormatInt(x.RowsAffected(), 10) }
