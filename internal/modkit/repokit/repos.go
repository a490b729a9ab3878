// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"

	"supercut/internal/platform/store"
)

type (
	// Queryer is the read and write surface sql repos bind to
	Queryer = store.RowQuerier

	// TxRunner executes a function inside a transaction
	TxRunner = store.TxRunner

	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction on tx, binding the repo for that tx only
func WithTx[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(T) error) error {
	if tx == nil {
		panic("repokit: nil TxRunner")
	}
	return tx.Tx(ctx, func(q Queryer) error {
		return fn(b.Bind(q))
	})
}

// Read binds b to tx outside of a transaction, for single statement reads
func Read[T any](tx TxRunner, b Binder[T]) T {
	return MustBind(b, tx)
}
