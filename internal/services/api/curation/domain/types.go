// Package domain holds curation types independent of transport or storage
package domain

import "supercut/internal/core/curate"

// Run is a persisted curation plan
type Run struct {
	ID        string           `json:"id" example:"9b2f6a2e-2f0c-4d55-9d0e-6a0c2d9f1b77"`
	CreatedAt int64            `json:"created_at_unix_ms" example:"1760745600000"`
	Title     string           `json:"title" example:"summer trip"`
	Params    curate.Params    `json:"params"`
	Report    curate.Report    `json:"report"`
	Target    float64          `json:"target" example:"300"`
	Total     float64          `json:"total" example:"287.5"`
	Segments  []curate.Segment `json:"segments"`

	Underfilled bool `json:"underfilled" example:"true"`
}

// RunSummary is a listing row without params, report or segments
type RunSummary struct {
	ID           string  `json:"id"`
	CreatedAt    int64   `json:"created_at_unix_ms"`
	Title        string  `json:"title"`
	Target       float64 `json:"target"`
	Total        float64 `json:"total"`
	Underfilled  bool    `json:"underfilled"`
	SegmentCount int     `json:"segment_count"`
}

// LabelRow is one run's contribution for a single label
type LabelRow struct {
	Label           string
	Candidates      uint32
	Selected        uint32
	SelectedSeconds float64
}

// LabelStat aggregates a label across stored runs
type LabelStat struct {
	Label           string  `json:"label" example:"chase"`
	Runs            uint64  `json:"runs" example:"12"`
	Candidates      uint64  `json:"candidates" example:"310"`
	Selected        uint64  `json:"selected" example:"41"`
	SelectedSeconds float64 `json:"selected_seconds" example:"402.5"`
	SelectionRate   float64 `json:"selection_rate" example:"0.13"`
}

// SelectionRate is selected over candidates, 0 when nothing was a candidate
func SelectionRate(selected, candidates uint64) float64 {
	if candidates == 0 {
		return 0
	}
	return float64(selected) / float64(candidates)
}
