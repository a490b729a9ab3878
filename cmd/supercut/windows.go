package main

import (
	"fmt"
	"strings"

	"supercut/internal/core/curate"
	"supercut/internal/services/api/curation/domain"
	csvc "supercut/internal/services/api/curation/service"

	"github.com/spf13/cobra"
)

func newWindowsCmd(a *app) *cobra.Command {
	var (
		input                        string
		output                       string
		splitThreshold, window, minW float64
	)
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Plan the analysis windows the classifier should score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return fmt.Errorf("-i scene file is required")
			}
			src, err := loadSource(input, cmd.InOrStdin())
			if err != nil {
				return err
			}

			in := domain.WindowsInput{Scenes: make([]domain.WindowScene, 0, len(src.Scenes))}
			for i, s := range src.Scenes {
				id := s.ID
				if strings.TrimSpace(id) == "" {
					id = csvc.SceneID(src.SourceRef, i+1)
				}
				in.Scenes = append(in.Scenes, domain.WindowScene{ID: id, Start: s.Start, End: s.End})
			}
			f := cmd.Flags()
			if f.Changed("split-threshold") {
				in.SplitThreshold = &splitThreshold
			}
			if f.Changed("window") {
				in.WindowLength = &window
			}
			if f.Changed("min-window") {
				in.MinWindow = &minW
			}

			out, err := a.svc.Windows(cmd.Context(), in)
			if err != nil {
				return err
			}
			return writeOutput(output, out, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "scene file; - reads stdin")
	f.StringVarP(&output, "output", "o", "", "output file, .zst compresses; stdout when empty")
	d := curate.DefaultParams()
	f.Float64Var(&splitThreshold, "split-threshold", d.SplitThreshold, "scenes longer than this are windowed")
	f.Float64Var(&window, "window", d.WindowLength, "window length in seconds")
	f.Float64Var(&minW, "min-window", d.MinWindow, "shorter trailing windows merge into the previous one, must be > 0")
	return cmd
}
