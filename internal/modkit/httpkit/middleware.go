package httpkit

import (
	"net/http"
	"time"

	"supercut/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// SlowRequest promotes access log lines to warn, 0 disables it
	SlowRequest time.Duration
	CORS        middleware.CORSOptions
}

// CommonStack returns the baseline middleware slice, outermost first
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	mw := middleware.Defaults()
	return append(mw,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.CORS(o.CORS),
	)
}

// JSONBodies rejects request bodies that are not application/json with 415
// bodyless requests pass through
func JSONBodies() func(http.Handler) http.Handler {
	return middleware.AllowContentType("application/json")
}

// RootStack runs on the root router ahead of every scope
// the heartbeat answers /ping before any routing or logging
func RootStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{middleware.Heartbeat("/ping")}
}
