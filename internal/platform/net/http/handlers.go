package http

import (
	stdhttp "net/http"

	"supercut/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T from the body, then wraps fn's result in an envelope
func JSONHandler[T any](fn func(*stdhttp.Request, T) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return result(out)
	})
}

// NoBodyHandler wraps fn's result in an envelope without reading the body
func NoBodyHandler(fn func(*stdhttp.Request) (any, error)) Handler {
	return Handle(func(r *stdhttp.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return result(out)
	})
}

// result passes a Response through untouched, anything else becomes a 200 envelope
func result(out any) Response {
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
