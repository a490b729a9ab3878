// Package module wires curation into the API using modkit
package module

import (
	"context"
	"time"

	modkit "supercut/internal/modkit"
	"supercut/internal/modkit/httpkit"

	chttp "supercut/internal/services/api/curation/http"
	crepo "supercut/internal/services/api/curation/repo"
	csvc "supercut/internal/services/api/curation/service"
)

// Module implements the curation API module
type Module struct {
	b     modkit.Built
	svc   *csvc.Svc
	ports Ports
}

// New constructs the curation module and prepares its tables
// invalid CORE_CURATE_* defaults or an unreachable schema panic at startup
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("curation"),
		modkit.WithPrefix("/curation"),
		modkit.WithMiddlewares(httpkit.JSONBodies()),
	}, opts...)...)

	db := deps.SQL()
	cfg := FromConfig(deps.Cfg, db != nil)

	svcOpts := csvc.Options{
		Defaults:  cfg.Defaults,
		Workers:   cfg.Workers,
		Canonical: cfg.Canonical,
		Persist:   cfg.Persist,
	}
	if deps.CH != nil {
		svcOpts.Stats = crepo.NewStats(deps.CH)
	}
	svc := csvc.New(db, crepo.NewSQL(), svcOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := svc.EnsureSchema(ctx); err != nil {
		panic("curation schema: " + err.Error())
	}

	deps.Log.Info().
		Bool("runs", db != nil).
		Bool("label_stats", deps.CH != nil).
		Int("workers", cfg.Workers).
		Bool("persist", cfg.Persist).
		Msg("curation module ready")

	return &Module{b: b, svc: svc, ports: Ports{Curation: svc}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { chttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
