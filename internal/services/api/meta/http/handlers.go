// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"slices"
	"time"

	"supercut/internal/core/curate"
	"supercut/internal/core/version"
	"supercut/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// Status pings configured stores by name, nil when none are wired
	Status func(stdctx.Context) map[string]error

	// Defaults returns the curation defaults, nil hides the params on /engine
	Defaults func() curate.Params
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/engine", h.engine)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"supercut-api"`
	Started string `json:"started"  example:"2026-10-18T09:00:00Z"`
	Uptime  int64  `json:"uptime"   example:"300"`
	Now     string `json:"now"      example:"2026-10-18T09:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-18T09:05:00Z"`
}

// EngineResponse reports the curation stage order and effective defaults
type EngineResponse struct {
	Stages   []string          `json:"stages" example:"validate,resolve,filter,rank,balance,pack,project"`
	Defaults *curate.Params    `json:"defaults,omitempty"`
	Build    version.BuildInfo `json:"build"`
}

var stages = []string{"validate", "resolve", "filter", "rank", "balance", "pack", "project"}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := time.Now()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with store checks
// @Description Answers 503 with the same body when any configured store fails its ping.
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} ReadyResponse "a store is down"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	var status map[string]error
	if h.deps.Status != nil {
		status = h.deps.Status(ctx)
	}

	names := make([]string, 0, len(status))
	for name := range status {
		names = append(names, name)
	}
	slices.Sort(names)

	out := ReadyResponse{Status: "ok", Checks: []ReadyCheck{}, Now: time.Now().UTC().Format(time.RFC3339)}
	for _, name := range names {
		c := ReadyCheck{Name: name, Status: "ok"}
		if err := status[name]; err != nil {
			c.Status, c.Error = "fail", err.Error()
			out.Status = "fail"
		}
		out.Checks = append(out.Checks, c)
	}
	if out.Status != "ok" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.InfoFor(h.deps.ServiceName), nil
}

// swagger:route GET /meta/engine Meta metaEngine
// @Summary Curation stage order and effective defaults
// @Tags Meta
// @Produce json
// @Success 200 {object} EngineResponse "ok"
// @Router /meta/engine [get]
func (h *handlers) engine(_ *http.Request) (any, error) {
	out := EngineResponse{Stages: stages, Build: version.InfoFor(h.deps.ServiceName)}
	if h.deps.Defaults != nil {
		d := h.deps.Defaults()
		out.Defaults = &d
	}
	return out, nil
}
