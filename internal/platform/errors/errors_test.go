package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeTimeout, http.StatusGatewayTimeout},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorRendering(t *testing.T) {
	t.Parallel()

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q", nilErr.Error())
	}

	if got := Newf(ErrorCodeJSON, "bad json at %d", 12).Error(); got != "bad json at 12" {
		t.Fatalf("Newf = %q", got)
	}

	src := stderrs.New("disk full")
	wrapped := Wrapf(src, ErrorCodeDB, "save run %s", "r-1")
	if wrapped.Error() != "save run r-1: disk full" {
		t.Fatalf("Wrapf = %q", wrapped.Error())
	}
	if stderrs.Unwrap(wrapped) != src {
		t.Fatalf("Wrapf lost the cause")
	}
	if Root(fmt.Errorf("outer: %w", wrapped)) != src {
		t.Fatalf("Root should reach the cause")
	}
}

func TestCopyOnWriteMutators(t *testing.T) {
	t.Parallel()

	base := InvalidArgf("overflow_factor must be >= 1")
	withField := WithField(base, "overflow_factor")
	withOp := WithOp(withField, "curate.params")

	if e, _ := As(withOp); e.Field() != "overflow_factor" || e.Op() != "curate.params" {
		t.Fatalf("mutators lost data: %+v", e)
	}
	if e, _ := As(base); e.Field() != "" || e.Op() != "" {
		t.Fatalf("original mutated: %+v", e)
	}

	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign || WithOp(foreign, "x") != foreign {
		t.Fatalf("foreign errors should pass through unchanged")
	}
}

func TestWireAndHTTP(t *testing.T) {
	t.Parallel()

	if st, w := HTTP(nil); st != http.StatusOK || w != (Wire{}) {
		t.Fatalf("HTTP(nil) = %d %+v", st, w)
	}

	ours := WithField(Wrap(stderrs.New("secret dsn"), ErrorCodeInvalidArgument, "bad params"), "min_duration")
	st, w := HTTP(ours)
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", st)
	}
	if w.Message != "bad params" || w.Field != "min_duration" || w.Code != ErrorCodeInvalidArgument {
		t.Fatalf("wire = %+v", w)
	}

	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}

	deadline := fmt.Errorf("prepare source 2: %w", context.DeadlineExceeded)
	if st := HTTPStatus(deadline); st != http.StatusGatewayTimeout {
		t.Fatalf("deadline status = %d", st)
	}
	if w := WireFrom(deadline); w.Code != ErrorCodeTimeout {
		t.Fatalf("deadline wire = %+v", w)
	}
}

func TestSugar(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("run %s", "x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Internalf("x"), ErrorCodeUnknown},
		{ErrNotFound, ErrorCodeNotFound},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.code) {
			t.Fatalf("%v: code = %v, want %v", c.err, CodeOf(c.err), c.code)
		}
	}

	if WrapIf(nil, ErrorCodeDB, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should be nil")
	}
	if !IsCode(WrapIf(stderrs.New("x"), ErrorCodeDB, "db"), ErrorCodeDB) {
		t.Fatalf("WrapIf should wrap")
	}
}
