package module

import (
	"supercut/internal/core/curate"
	"supercut/internal/platform/config"
)

// Options controls curation defaults and the service worker pool
type Options struct {
	Defaults  curate.Params
	Workers   int
	Canonical bool
	Persist   bool
}

// FromConfig reads CORE_CURATE_* values, persist defaults to on when a sql store exists
func FromConfig(cfg config.Conf, haveSQL bool) Options {
	c := cfg.Prefix("CORE_CURATE_")
	d := curate.DefaultParams()
	return Options{
		Defaults: curate.Params{
			MinConfidence:   c.MayFloat64("MIN_CONFIDENCE", d.MinConfidence),
			MinDuration:     c.MayFloat64("MIN_DURATION", d.MinDuration),
			MaxDuration:     c.MayFloat64("MAX_DURATION", d.MaxDuration),
			TargetDuration:  c.MayFloat64("TARGET_DURATION", d.TargetDuration),
			OverflowFactor:  c.MayFloat64("OVERFLOW_FACTOR", d.OverflowFactor),
			EnsureDiversity: c.MayBool("ENSURE_DIVERSITY", d.EnsureDiversity),
			MaxPerCategory:  c.MayInt("MAX_PER_CATEGORY", d.MaxPerCategory),
			MinPerCategory:  c.MayInt("MIN_PER_CATEGORY", d.MinPerCategory),
			SplitThreshold:  c.MayFloat64("SPLIT_THRESHOLD", d.SplitThreshold),
			WindowLength:    c.MayFloat64("WINDOW_LENGTH", d.WindowLength),
			MinWindow:       c.MayFloat64("MIN_WINDOW", d.MinWindow),
			TrimToWindow:    c.MayBool("TRIM_TO_WINDOW", d.TrimToWindow),
		},
		Workers:   c.MayInt("WORKERS", 4),
		Canonical: c.MayBool("CANONICAL_LABELS", true),
		Persist:   c.MayBool("PERSIST", haveSQL),
	}
}
