package curate

import (
	"math"

	perr "supercut/internal/platform/errors"
)

// Params is the immutable per run configuration
// build it from DefaultParams and override fields; zero MaxPerCategory means derive
type Params struct {
	MinConfidence   float64 `json:"min_confidence"`
	MinDuration     float64 `json:"min_duration"`
	MaxDuration     float64 `json:"max_duration"`
	TargetDuration  float64 `json:"target_duration"`
	OverflowFactor  float64 `json:"overflow_factor"`
	EnsureDiversity bool    `json:"ensure_diversity"`
	MaxPerCategory  int     `json:"max_per_category"`
	MinPerCategory  int     `json:"min_per_category"`

	// segment resolution
	SplitThreshold float64 `json:"split_threshold"`
	WindowLength   float64 `json:"window_length"`
	MinWindow      float64 `json:"min_window"`
	TrimToWindow   bool    `json:"trim_to_window"`
}

// Defaults mirror the values the classifier side was tuned against
const (
	DefaultMinConfidence  = 0.3
	DefaultMinDuration    = 3.0
	DefaultMaxDuration    = 60.0
	DefaultTargetDuration = 300.0
	DefaultOverflowFactor = 1.2
	DefaultMinPerCategory = 1
	DefaultSplitThreshold = 10.0
	DefaultWindowLength   = 5.0
	DefaultMinWindow      = 1.0
)

// DefaultParams returns the baseline configuration
func DefaultParams() Params {
	return Params{
		MinConfidence:   DefaultMinConfidence,
		MinDuration:     DefaultMinDuration,
		MaxDuration:     DefaultMaxDuration,
		TargetDuration:  DefaultTargetDuration,
		OverflowFactor:  DefaultOverflowFactor,
		EnsureDiversity: true,
		MinPerCategory:  DefaultMinPerCategory,
		SplitThreshold:  DefaultSplitThreshold,
		WindowLength:    DefaultWindowLength,
		MinWindow:       DefaultMinWindow,
	}
}

// Budget is the hard ceiling the packer never exceeds
func (p Params) Budget() float64 { return p.TargetDuration * p.OverflowFactor }

// Validate rejects configurations no scene could ever satisfy
// it runs once before any stage; the first violation wins
func (p Params) Validate() error {
	floats := []struct {
		name string
		v    float64
	}{
		{"min_confidence", p.MinConfidence},
		{"min_duration", p.MinDuration},
		{"max_duration", p.MaxDuration},
		{"target_duration", p.TargetDuration},
		{"overflow_factor", p.OverflowFactor},
		{"split_threshold", p.SplitThreshold},
		{"window_length", p.WindowLength},
		{"min_window", p.MinWindow},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.name, "%s must be a finite number", f.name)
		}
	}

	switch {
	case p.MinConfidence < 0 || p.MinConfidence > 1:
		return invalid("min_confidence", "min_confidence must be within [0,1], got %g", p.MinConfidence)
	case p.MinDuration < 0:
		return invalid("min_duration", "min_duration must be >= 0, got %g", p.MinDuration)
	case p.MinDuration > p.MaxDuration:
		return invalid("max_duration", "min_duration %g exceeds max_duration %g", p.MinDuration, p.MaxDuration)
	case p.TargetDuration <= 0:
		return invalid("target_duration", "target_duration must be > 0, got %g", p.TargetDuration)
	case p.OverflowFactor < 1:
		return invalid("overflow_factor", "overflow_factor must be >= 1, got %g", p.OverflowFactor)
	case p.MinPerCategory < 0:
		return invalid("min_per_category", "min_per_category must be >= 0, got %d", p.MinPerCategory)
	case p.MaxPerCategory < 0:
		return invalid("max_per_category", "max_per_category must be >= 0, got %d", p.MaxPerCategory)
	case p.MaxPerCategory != 0 && p.MaxPerCategory < p.MinPerCategory:
		return invalid("max_per_category", "max_per_category %d is below min_per_category %d", p.MaxPerCategory, p.MinPerCategory)
	case p.SplitThreshold <= 0:
		return invalid("split_threshold", "split_threshold must be > 0, got %g", p.SplitThreshold)
	case p.WindowLength <= 0:
		return invalid("window_length", "window_length must be > 0, got %g", p.WindowLength)
	case p.MinWindow <= 0:
		return invalid("min_window", "min_window must be > 0, got %g", p.MinWindow)
	}
	return nil
}

func invalid(field, format string, a ...any) error {
	return perr.WithOp(perr.WithField(perr.InvalidArgf(format, a...), field), "curate.params")
}
