package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "supercut/internal/platform/errors"
	pnet "supercut/internal/platform/net"
	phttp "supercut/internal/platform/net/http"
)

type echoIn struct {
	Name string `json:"name" validate:"required"`
}

func newRouter() phttp.Router { return phttp.NewServer("").Router() }

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestRoutesAndEnvelope(t *testing.T) {
	r := newRouter()
	r.Route("/v1", func(v1 phttp.Router) {
		v1.Get("/items/{id}", phttp.NoBodyHandler(func(req *http.Request) (any, error) {
			id := phttp.URLParam(req, "id")
			if id == "missing" {
				return nil, perr.NotFoundf("item %s not found", id)
			}
			return map[string]string{"id": id}, nil
		}))
		v1.Post("/echo", phttp.JSONHandler(func(_ *http.Request, in echoIn) (any, error) {
			return in, nil
		}))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/items/42", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-1"))
	r.Mux().ServeHTTP(rec, req)
	env := decode(t, rec)
	if rec.Code != http.StatusOK || env.RequestID != "rid-1" || env.Data.(map[string]any)["id"] != "42" {
		t.Fatalf("get = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/items/missing", nil))
	env = decode(t, rec)
	if rec.Code != http.StatusNotFound || env.Code != perr.ErrorCodeNotFound || env.Error == "" {
		t.Fatalf("not found = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(`{}`)))
	env = decode(t, rec)
	if rec.Code != http.StatusBadRequest || env.Code != perr.ErrorCodeValidation || env.Field != "name" {
		t.Fatalf("validation = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/echo", strings.NewReader(`{"name":"x"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("echo = %d", rec.Code)
	}
}

func TestTextAndNoContent(t *testing.T) {
	r := newRouter()
	r.Get("/edl", phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Text("text/plain; charset=utf-8", "TITLE: x\n", "plan.edl")
	}))
	r.Delete("/x", phttp.Handle(func(*http.Request) phttp.Response { return phttp.NoContent() }))

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/edl", nil))
	if rec.Body.String() != "TITLE: x\n" || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("text = %q %q", rec.Body.String(), rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "plan.edl") {
		t.Fatalf("missing disposition")
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/x", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	phttp.RespondError(rec, req, perr.WithField(perr.InvalidArgf("bad fps"), "fps"))
	env := decode(t, rec)
	if rec.Code != http.StatusUnprocessableEntity || env.Field != "fps" {
		t.Fatalf("respond error = %d %+v", rec.Code, env)
	}
}

func TestMountProfiler(t *testing.T) {
	r := newRouter()
	phttp.MountProfiler(r, "/debug", true)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("pprof = %d", rec.Code)
	}

	off := newRouter()
	phttp.MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler = %d", rec.Code)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	srv := phttp.NewServer("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr = %q", srv.Addr())
	}
}
