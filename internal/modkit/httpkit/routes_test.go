package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountUnder_PrefixAndMiddleware(t *testing.T) {
	mux, r := newRouter()
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Module", "curation")
			next.ServeHTTP(w, req)
		})
	}
	MountUnder(r, "/curation", []func(http.Handler) http.Handler{tag}, func(sub Router) {
		Get(sub, "/defaults", func(*http.Request) (any, error) { return "ok", nil })
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/curation/defaults", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Module") != "curation" {
		t.Fatalf("status=%d headers=%v", rec.Code, rec.Header())
	}
}

func TestMountAPIV1_Prefix(t *testing.T) {
	mux, r := newRouter()
	MountAPIV1(r, nil, func(api Router) {
		Get(api, "/meta/version", func(*http.Request) (any, error) { return "v", nil })
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meta/version", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/version", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unprefixed route should 404, got %d", rec.Code)
	}
}

func TestMountUnder_NormalizesPrefix(t *testing.T) {
	for _, prefix := range []string{"curation", "/curation/", "curation//"} {
		mux, r := newRouter()
		MountUnder(r, prefix, nil, func(sub Router) {
			Get(sub, "/defaults", func(*http.Request) (any, error) { return "ok", nil })
		})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/curation/defaults", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("prefix %q: status=%d", prefix, rec.Code)
		}
	}
}

func TestMountUnder_EmptyPrefixGroups(t *testing.T) {
	mux, r := newRouter()
	MountUnder(r, "", nil, func(sub Router) {
		Get(sub, "/ping-ish", func(*http.Request) (any, error) { return "ok", nil })
	})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping-ish", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
}
