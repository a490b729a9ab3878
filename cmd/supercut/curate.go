package main

import (
	"fmt"

	"supercut/internal/core/curate"
	"supercut/internal/core/edl"
	"supercut/internal/platform/logger"
	"supercut/internal/services/api/curation/domain"

	"github.com/spf13/cobra"
)

// paramFlags mirror domain.ParamsInput; only flags the user set override the defaults
type paramFlags struct {
	minConfidence, minDuration, maxDuration float64
	target, overflow                        float64
	diversity                               bool
	maxPerLabel, minPerLabel                int
	splitThreshold, window, minWindow       float64
	trim                                    bool
}

// register shows the built in defaults; CORE_CURATE_* values apply to flags left unset
func (p *paramFlags) register(cmd *cobra.Command) {
	d := curate.DefaultParams()
	f := cmd.Flags()
	f.Float64Var(&p.minConfidence, "min-confidence", d.MinConfidence, "drop scenes scored below this")
	f.Float64Var(&p.minDuration, "min-duration", d.MinDuration, "drop scenes shorter than this many seconds")
	f.Float64Var(&p.maxDuration, "max-duration", d.MaxDuration, "drop scenes longer than this many seconds")
	f.Float64Var(&p.target, "target", d.TargetDuration, "target reel length in seconds")
	f.Float64Var(&p.overflow, "overflow", d.OverflowFactor, "allowed overshoot factor of the target, at least 1")
	f.BoolVar(&p.diversity, "diversity", d.EnsureDiversity, "balance selection across labels")
	f.IntVar(&p.maxPerLabel, "max-per-label", d.MaxPerCategory, "cap scenes per label, 0 derives the cap from the mean label size")
	f.IntVar(&p.minPerLabel, "min-per-label", d.MinPerCategory, "scenes reserved for each label first")
	f.Float64Var(&p.splitThreshold, "split-threshold", d.SplitThreshold, "scenes longer than this are windowed")
	f.Float64Var(&p.window, "window", d.WindowLength, "analysis window length in seconds")
	f.Float64Var(&p.minWindow, "min-window", d.MinWindow, "shorter trailing windows merge into the previous one, must be > 0")
	f.BoolVar(&p.trim, "trim-to-window", d.TrimToWindow, "cut resolved scenes to their best window")
}

func (p *paramFlags) input(changed func(string) bool) *domain.ParamsInput {
	in := &domain.ParamsInput{}
	setF := func(name string, dst **float64, v *float64) {
		if changed(name) {
			*dst = v
		}
	}
	setF("min-confidence", &in.MinConfidence, &p.minConfidence)
	setF("min-duration", &in.MinDuration, &p.minDuration)
	setF("max-duration", &in.MaxDuration, &p.maxDuration)
	setF("target", &in.TargetDuration, &p.target)
	setF("overflow", &in.OverflowFactor, &p.overflow)
	setF("split-threshold", &in.SplitThreshold, &p.splitThreshold)
	setF("window", &in.WindowLength, &p.window)
	setF("min-window", &in.MinWindow, &p.minWindow)
	if changed("diversity") {
		in.EnsureDiversity = &p.diversity
	}
	if changed("trim-to-window") {
		in.TrimToWindow = &p.trim
	}
	if changed("max-per-label") {
		in.MaxPerCategory = &p.maxPerLabel
	}
	if changed("min-per-label") {
		in.MinPerCategory = &p.minPerLabel
	}
	return in
}

func newCurateCmd(a *app) *cobra.Command {
	var (
		inputs  []string
		output  string
		title   string
		edlPath string
		fps     float64
		params  paramFlags
	)
	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Select and order scenes from one or more scene files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(inputs) == 0 {
				return fmt.Errorf("at least one -i scene file is required")
			}
			in := domain.CurateInput{Title: title, Params: params.input(cmd.Flags().Changed)}
			for _, path := range inputs {
				src, err := loadSource(path, cmd.InOrStdin())
				if err != nil {
					return err
				}
				in.Sources = append(in.Sources, src)
			}

			out, err := a.svc.Curate(cmd.Context(), in)
			if err != nil {
				return err
			}
			log := logger.Get()
			if out.RunID != "" {
				log.Info().Str("run_id", out.RunID).Str("archive", a.archive).Msg("run archived")
			}

			if err := writeOutput(output, out, cmd.OutOrStdout()); err != nil {
				return err
			}
			if edlPath != "" {
				body := edl.Generate(out.Title, out.Segments, fps)
				if err := writeFile(edlPath, []byte(body)); err != nil {
					return err
				}
				log.Info().Str("path", edlPath).Int("events", len(out.Segments)).Msg("edl written")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVarP(&inputs, "input", "i", nil, "scene file, repeat for several sources; - reads stdin")
	f.StringVarP(&output, "output", "o", "", "plan file, .zst compresses; stdout when empty")
	f.StringVar(&title, "title", "", "plan title")
	f.StringVar(&edlPath, "edl", "", "also write a CMX3600 edit decision list here")
	f.Float64Var(&fps, "fps", edl.DefaultFrameRate, "frame rate for --edl timecodes")
	params.register(cmd)
	return cmd
}
