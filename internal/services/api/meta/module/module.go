// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"supercut/internal/core/curate"
	"supercut/internal/core/version"
	modkit "supercut/internal/modkit"
	"supercut/internal/modkit/httpkit"
	"supercut/internal/modkit/swaggerkit"

	metahttp "supercut/internal/services/api/meta/http"
)

// Ports lets the meta module read engine defaults owned by another module
type Ports struct {
	Defaults func() curate.Params
}

// Module implements the modkit.Module interface
type Module struct {
	b         modkit.Built
	deps      modkit.Deps
	service   string
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	service := deps.Cfg.Prefix("CORE_API_").MayString("SERVICE_NAME", "supercut-api")
	swaggerkit.Register(func(spec map[string]any) {
		if info, ok := spec["info"].(map[string]any); ok {
			info["version"] = version.InfoFor(service).Version
		}
	})

	return &Module{
		b:         b,
		deps:      deps,
		service:   service,
		startedAt: time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	var defaults func() curate.Params
	if p, ok := m.b.Ports.(Ports); ok {
		defaults = p.Defaults
	}
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: m.service,
			StartedAt:   m.startedAt,
			Status:      m.deps.Status,
			Defaults:    defaults,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.b.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
