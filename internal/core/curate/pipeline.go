package curate

// Report counts what each stage did to the batch
type Report struct {
	Input      int            `json:"input"`
	Invalid    int            `json:"invalid"`
	Resolved   int            `json:"resolved"`
	Filtered   map[string]int `json:"filtered"`
	Candidates int            `json:"candidates"`
	Balanced   int            `json:"balanced"`
	Selected   int            `json:"selected"`
	Skipped    int            `json:"skipped"`
	Drops      []Drop         `json:"drops,omitempty"`

	// InvalidSubSegments counts malformed windows ignored while resolving long scenes
	InvalidSubSegments int `json:"invalid_sub_segments"`
}

// FilteredTotal sums the filter drops across reasons
func (r Report) FilteredTotal() int {
	n := 0
	for _, c := range r.Filtered {
		n += c
	}
	return n
}

// Prepared holds the filtered candidates of one or more sources, ready for Select
type Prepared struct {
	Scenes []Scene
	Report Report
}

// Plan is the final ordered selection handed to the compiler
type Plan struct {
	Segments    []Segment `json:"segments"`
	Total       float64   `json:"total"`
	Target      float64   `json:"target"`
	Underfilled bool      `json:"underfilled"`
	Params      Params    `json:"params"`
	Report      Report    `json:"report"`
}

// Prepare validates, resolves and filters the scenes of a single source
// It is pure and safe to run for several sources at once on distinct slices
func Prepare(scenes []Scene, p Params) (Prepared, error) {
	if err := p.Validate(); err != nil {
		return Prepared{}, err
	}
	return prepare(scenes, p), nil
}

func prepare(scenes []Scene, p Params) Prepared {
	valid, drops := ValidateScenes(scenes)
	resolved, n, subDrops := Resolve(valid, p)
	kept, counts := Filter(resolved, p.MinConfidence, p.MinDuration, p.MaxDuration)
	return Prepared{
		Scenes: kept,
		Report: Report{
			Input:              len(scenes),
			Invalid:            len(drops),
			Resolved:           n,
			InvalidSubSegments: len(subDrops),
			Filtered:           counts,
			Candidates:         len(kept),
			Drops:              append(drops, subDrops...),
		},
	}
}

// Merge concatenates prepared sources in the given order and sums their reports
func Merge(parts ...Prepared) Prepared {
	out := Prepared{Scenes: []Scene{}, Report: Report{Filtered: map[string]int{}}}
	for _, p := range parts {
		out.Scenes = append(out.Scenes, p.Scenes...)
		r := p.Report
		out.Report.Input += r.Input
		out.Report.Invalid += r.Invalid
		out.Report.Resolved += r.Resolved
		out.Report.InvalidSubSegments += r.InvalidSubSegments
		out.Report.Candidates += r.Candidates
		for k, v := range r.Filtered {
			out.Report.Filtered[k] += v
		}
		out.Report.Drops = append(out.Report.Drops, r.Drops...)
	}
	return out
}

// Select ranks, balances and packs merged candidates into a plan
func Select(in Prepared, p Params) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return selectPlan(in, p), nil
}

func selectPlan(in Prepared, p Params) Plan {
	ranked := Rank(in.Scenes)
	balanced := ranked
	if p.EnsureDiversity {
		balanced = Balance(ranked, p.MinPerCategory, p.MaxPerCategory)
	}
	packed := Pack(balanced, p.TargetDuration, p.OverflowFactor)

	rep := in.Report
	if rep.Filtered == nil {
		rep.Filtered = map[string]int{}
	}
	rep.Candidates = len(in.Scenes)
	rep.Balanced = len(balanced)
	rep.Selected = len(packed.Scenes)
	rep.Skipped = packed.Skipped

	return Plan{
		Segments:    Project(packed.Scenes),
		Total:       packed.Total,
		Target:      p.TargetDuration,
		Underfilled: packed.Total < p.TargetDuration,
		Params:      p,
		Report:      rep,
	}
}

// Run is Prepare followed by Select for a single batch
func Run(scenes []Scene, p Params) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return selectPlan(prepare(scenes, p), p), nil
}
