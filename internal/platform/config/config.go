// Package config reads application settings from prefixed environment variables
//
// Must* getters panic through the logger when a value is missing or malformed and are
// meant for boot time. May* getters fall back to a default and warn on malformed input.
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"supercut/internal/platform/logger"
)

// Conf is a namespaced view over the environment, e.g. New().Prefix("CORE_CURATE_")
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a child view whose keys are prefixed with p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// Has reports whether key is set to a non blank value
func (c Conf) Has(key string) bool { return c.lookup(key) != "" }

func (c Conf) must(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

func mustParse[T any](c Conf, key, want string, parse func(string) (T, error)) T {
	s := c.must(key)
	v, err := parse(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.Key(key)).Str("value", s).Msg("invalid value; expected " + want)
	}
	return v
}

func mayParse[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.Key(key)).Str("value", s).Interface("default", def).Msg("invalid value; using default")
		return def
	}
	return v
}

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// MustString returns the value of key or panics when it is blank
func (c Conf) MustString(key string) string { return c.must(key) }

// MustInt panics when key is blank or not an integer
func (c Conf) MustInt(key string) int { return mustParse(c, key, "int", strconv.Atoi) }

// MustBool panics when key is blank or not a bool
func (c Conf) MustBool(key string) bool { return mustParse(c, key, "bool", strconv.ParseBool) }

// MustFloat64 panics when key is blank or not a number
func (c Conf) MustFloat64(key string) float64 { return mustParse(c, key, "float", parseFloat) }

// MustDuration panics when key is blank or not a Go duration (250ms, 2s, 1h)
func (c Conf) MustDuration(key string) time.Duration {
	return mustParse(c, key, "duration", time.ParseDuration)
}

// MustURL panics unless key holds an absolute URL
func (c Conf) MustURL(key string) *url.URL {
	return mustParse(c, key, "absolute URL", func(s string) (*url.URL, error) {
		u, err := url.Parse(s)
		if err == nil && !u.IsAbs() {
			err = strconv.ErrSyntax
		}
		return u, err
	})
}

// MustPort returns a listen address like ":4000" for a port in 1..65535
func (c Conf) MustPort(key string) string {
	return mustParse(c, key, "TCP port 1..65535", func(s string) (string, error) {
		p, err := strconv.Atoi(s)
		if err == nil && (p < 1 || p > 65535) {
			err = strconv.ErrRange
		}
		return ":" + s, err
	})
}

// Require panics on the first blank key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		_ = c.must(k)
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def; malformed input warns and yields def
func (c Conf) MayInt(key string, def int) int { return mayParse(c, key, def, strconv.Atoi) }

// MayFloat64 returns the value or def; malformed input warns and yields def
func (c Conf) MayFloat64(key string, def float64) float64 {
	return mayParse(c, key, def, parseFloat)
}

// MayBool returns the value or def; malformed input warns and yields def
func (c Conf) MayBool(key string, def bool) bool { return mayParse(c, key, def, strconv.ParseBool) }

// MayDuration returns the value or def; malformed input warns and yields def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return mayParse(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value when it is one of allowed (case insensitive), def when blank,
// and panics otherwise since a typo here silently changes behavior
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(v)
		}
	}
	logger.Get().Panic().Str("key", c.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
