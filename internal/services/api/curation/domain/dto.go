package domain

import "supercut/internal/core/curate"

// Source is one video's scored scenes
// scenes are not validated here, malformed ones are dropped per record by the engine
type Source struct {
	SourceRef string         `json:"source_ref" validate:"required,max=1024" example:"s3://raw/day1.mp4"`
	Scenes    []curate.Scene `json:"scenes" validate:"max=100000"`
}

// ParamsInput overrides engine defaults; nil fields keep the default
type ParamsInput struct {
	MinConfidence   *float64 `json:"min_confidence,omitempty" example:"0.3"`
	MinDuration     *float64 `json:"min_duration,omitempty" example:"3"`
	MaxDuration     *float64 `json:"max_duration,omitempty" example:"60"`
	TargetDuration  *float64 `json:"target_duration,omitempty" example:"300"`
	OverflowFactor  *float64 `json:"overflow_factor,omitempty" example:"1.2"`
	EnsureDiversity *bool    `json:"ensure_diversity,omitempty" example:"true"`
	MaxPerCategory  *int     `json:"max_per_category,omitempty" example:"0"`
	MinPerCategory  *int     `json:"min_per_category,omitempty" example:"1"`
	SplitThreshold  *float64 `json:"split_threshold,omitempty" example:"10"`
	WindowLength    *float64 `json:"window_length,omitempty" example:"5"`
	MinWindow       *float64 `json:"min_window,omitempty" example:"1"`
	TrimToWindow    *bool    `json:"trim_to_window,omitempty" example:"false"`
}

// Apply returns base with every set field of in overridden
func (in *ParamsInput) Apply(base curate.Params) curate.Params {
	if in == nil {
		return base
	}
	setF := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setF(&base.MinConfidence, in.MinConfidence)
	setF(&base.MinDuration, in.MinDuration)
	setF(&base.MaxDuration, in.MaxDuration)
	setF(&base.TargetDuration, in.TargetDuration)
	setF(&base.OverflowFactor, in.OverflowFactor)
	setF(&base.SplitThreshold, in.SplitThreshold)
	setF(&base.WindowLength, in.WindowLength)
	setF(&base.MinWindow, in.MinWindow)
	if in.EnsureDiversity != nil {
		base.EnsureDiversity = *in.EnsureDiversity
	}
	if in.TrimToWindow != nil {
		base.TrimToWindow = *in.TrimToWindow
	}
	if in.MaxPerCategory != nil {
		base.MaxPerCategory = *in.MaxPerCategory
	}
	if in.MinPerCategory != nil {
		base.MinPerCategory = *in.MinPerCategory
	}
	return base
}

// CurateInput asks for one plan over one or more sources
type CurateInput struct {
	Title   string       `json:"title,omitempty" validate:"max=200" example:"summer trip"`
	Sources []Source     `json:"sources" validate:"required,min=1,max=256,dive"`
	Params  *ParamsInput `json:"params,omitempty"`

	// Persist overrides the service default when set
	Persist *bool `json:"persist,omitempty" example:"true"`
}

// CurateOutput is the plan plus the stored run id when it was persisted
type CurateOutput struct {
	RunID string `json:"run_id,omitempty" example:"9b2f6a2e-2f0c-4d55-9d0e-6a0c2d9f1b77"`
	Title string `json:"title"`
	curate.Plan
}

// WindowScene is the minimal scene shape needed to plan analysis windows
type WindowScene struct {
	ID    string  `json:"id" example:"s1"`
	Start float64 `json:"start" example:"0"`
	End   float64 `json:"end" example:"23.5"`
}

// WindowsInput asks which sub ranges of each scene the classifier should score
type WindowsInput struct {
	Scenes         []WindowScene `json:"scenes" validate:"required,min=1,max=100000"`
	SplitThreshold *float64      `json:"split_threshold,omitempty" example:"10"`
	WindowLength   *float64      `json:"window_length,omitempty" example:"5"`
	MinWindow      *float64      `json:"min_window,omitempty" example:"1"`
}

// SceneWindows lists the windows of one scene, empty when it is scored whole
type SceneWindows struct {
	SceneID string          `json:"scene_id"`
	Start   float64         `json:"start"`
	End     float64         `json:"end"`
	Split   bool            `json:"split"`
	Windows []curate.Window `json:"windows"`
}

// WindowsOutput holds the per scene plan and any scene that could not be planned
type WindowsOutput struct {
	Scenes []SceneWindows `json:"scenes"`
	Drops  []curate.Drop  `json:"drops,omitempty"`
}

// EDL is a rendered edit decision list
type EDL struct {
	Filename string
	Body     string
}
