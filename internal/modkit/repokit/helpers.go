package repokit

import (
	"context"

	"supercut/internal/platform/store"
)

// One maps a single row with scan, a missing row is perr.ErrNotFound
func One[T any](ctx context.Context, q Queryer, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	return store.One(ctx, q, scan, sql, args...)
}

// Many maps every row with scan, never returning a nil slice on success
func Many[T any](ctx context.Context, q Queryer, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return store.Many(ctx, q, scan, sql, args...)
}

// ExecOne runs a write that must touch exactly one row
func ExecOne(ctx context.Context, q Queryer, sql string, args ...any) error {
	return store.ExecOne(ctx, q, sql, args...)
}

// Scalar reads the first column of the first row, a missing row is perr.ErrNotFound
func Scalar[T any](ctx context.Context, q Queryer, sql string, args ...any) (T, error) {
	return store.Scalar[T](ctx, q, sql, args...)
}

// ExecAll runs statements in order, used for idempotent schema setup
func ExecAll(ctx context.Context, q Queryer, stmts ...string) error {
	return store.ExecAll(ctx, q, stmts...)
}
