// Package http provides http transport for curation
package http

import (
	stdhttp "net/http"
	"strconv"

	"supercut/internal/modkit/httpkit"
	perr "supercut/internal/platform/errors"
	"supercut/internal/services/api/curation/domain"
)

// Register mounts the curation routes
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/plans", h.curate)
	httpkit.Get(r, "/plans", h.list)
	httpkit.Get(r, "/plans/{id}", h.plan)
	r.Get("/plans/{id}/edl", httpkit.Handle(h.edl))
	httpkit.PostJSON(r, "/windows", h.windows)
	httpkit.Get(r, "/defaults", h.defaults)
	httpkit.Get(r, "/stats/labels", h.labelStats)
}

type handlers struct{ svc domain.ServicePort }

// queryInt reads an optional integer query parameter
func queryInt(r *stdhttp.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer", key), key)
	}
	return n, nil
}

// swagger:route POST /curation/plans Curation curate
// @Summary Build a highlight plan from scored scenes
// @Description Sources are prepared concurrently and merged in request order before ranking, balancing and packing.
// @Tags curation
// @Accept json
// @Produce json
// @Param payload body domain.CurateInput true "Sources and optional param overrides"
// @Success 200 {object} domain.CurateOutput "ok"
// @Failure 422 {object} httpkit.Envelope "invalid params"
// @Failure 503 {object} httpkit.Envelope "persist requested without a store"
// @Router /curation/plans [post]
func (h *handlers) curate(r *stdhttp.Request, in domain.CurateInput) (any, error) {
	return h.svc.Curate(r.Context(), in)
}

// swagger:route GET /curation/plans Curation listPlans
// @Summary List stored plans, newest first
// @Tags curation
// @Produce json
// @Param limit query int false "max rows, default 20, capped at 500"
// @Success 200 {array} domain.RunSummary "ok"
// @Failure 503 {object} httpkit.Envelope "no run store"
// @Router /curation/plans [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	return h.svc.Runs(r.Context(), limit)
}

// swagger:route GET /curation/plans/{id} Curation getPlan
// @Summary Stored plan with params, report and segments
// @Tags curation
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} domain.Run "ok"
// @Failure 404 {object} httpkit.Envelope "unknown run"
// @Failure 503 {object} httpkit.Envelope "no run store"
// @Router /curation/plans/{id} [get]
func (h *handlers) plan(r *stdhttp.Request) (any, error) {
	return h.svc.Run(r.Context(), httpkit.Param(r, "id"))
}

// swagger:route GET /curation/plans/{id}/edl Curation planEDL
// @Summary Stored plan as a CMX3600 edit decision list
// @Tags curation
// @Produce plain
// @Param id path string true "run id"
// @Param fps query number false "frame rate, default 30"
// @Success 200 {string} string "EDL text"
// @Failure 404 {object} httpkit.Envelope "unknown run"
// @Router /curation/plans/{id}/edl [get]
func (h *handlers) edl(r *stdhttp.Request) httpkit.Response {
	var fps float64
	if v := r.URL.Query().Get("fps"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return httpkit.Error(perr.WithField(perr.InvalidArgf("fps must be a positive number"), "fps"))
		}
		fps = f
	}
	out, err := h.svc.EDL(r.Context(), httpkit.Param(r, "id"), fps)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Text("text/plain; charset=utf-8", out.Body, out.Filename)
}

// swagger:route POST /curation/windows Curation windows
// @Summary Analysis windows the classifier should score per scene
// @Tags curation
// @Accept json
// @Produce json
// @Param payload body domain.WindowsInput true "Scenes and optional window settings"
// @Success 200 {object} domain.WindowsOutput "ok"
// @Failure 422 {object} httpkit.Envelope "invalid window settings"
// @Router /curation/windows [post]
func (h *handlers) windows(r *stdhttp.Request, in domain.WindowsInput) (any, error) {
	return h.svc.Windows(r.Context(), in)
}

// swagger:route GET /curation/defaults Curation defaults
// @Summary Effective default params
// @Tags curation
// @Produce json
// @Success 200 {object} curate.Params "ok"
// @Router /curation/defaults [get]
func (h *handlers) defaults(_ *stdhttp.Request) (any, error) {
	return h.svc.Defaults(), nil
}

// swagger:route GET /curation/stats/labels Curation labelStats
// @Summary Per label candidates and selections across stored runs
// @Tags curation
// @Produce json
// @Param limit query int false "max labels, default 20, capped at 500"
// @Success 200 {array} domain.LabelStat "ok"
// @Failure 503 {object} httpkit.Envelope "no stats store"
// @Router /curation/stats/labels [get]
func (h *handlers) labelStats(r *stdhttp.Request) (any, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	return h.svc.LabelStats(r.Context(), limit)
}
