// Package version reports the build version baked in at link time
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	return InfoFor("supercut-api")
}

// InfoFor is Info with an explicit service name, used by the CLI
func InfoFor(service string) BuildInfo {
	// Set via -ldflags "-X 'supercut/internal/core/version.version=v0.0.1'
	// -X 'supercut/internal/core/version.commit=abcd' -X 'supercut/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
