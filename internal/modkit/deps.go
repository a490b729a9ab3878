// Package modkit provides module wiring and core deps
package modkit

import (
	"context"

	"supercut/internal/modkit/repokit"
	"supercut/internal/platform/config"
	"supercut/internal/platform/logger"
	"supercut/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// every store is optional, nil means not configured
type Deps struct {
	Log  logger.Logger
	Cfg  config.Conf
	PG   repokit.TxRunner
	CH   store.Clickhouse
	Lite repokit.TxRunner

	// Status reports per backend health, nil when no store is wired
	Status func(context.Context) map[string]error
}

// FromStore fills the store seams of d from s
func (d Deps) FromStore(s *store.Store) Deps {
	if s == nil {
		return d
	}
	d.PG, d.CH, d.Lite = s.PG, s.CH, s.Lite
	d.Status = s.Status
	return d
}

// SQL returns the preferred sql store, postgres first then sqlite
func (d Deps) SQL() repokit.TxRunner {
	if d.PG != nil {
		return d.PG
	}
	return d.Lite
}
