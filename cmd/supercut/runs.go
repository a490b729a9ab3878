package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	perr "supercut/internal/platform/errors"

	"github.com/spf13/cobra"
)

func (a *app) requireArchive() error {
	if a.archive == "" {
		return perr.Unavailablef("--archive is required to read runs")
	}
	return nil
}

func newRunsCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireArchive(); err != nil {
				return err
			}
			runs, err := a.svc.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tTITLE\tSEGMENTS\tTOTAL\tTARGET")
			for _, r := range runs {
				flag := ""
				if r.Underfilled {
					flag = " (underfilled)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f%s\n",
					r.ID, time.UnixMilli(r.CreatedAt).UTC().Format(time.RFC3339), r.Title,
					r.SegmentCount, r.Total, r.Target, flag)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			total, err := a.svc.RunCount(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d runs\n", len(runs), total)
			return err
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	cmd.AddCommand(newRunsShowCmd(a))
	return cmd
}

func newRunsShowCmd(a *app) *cobra.Command {
	var (
		output  string
		edlPath string
		fps     float64
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireArchive(); err != nil {
				return err
			}
			run, err := a.svc.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if edlPath != "" {
				e, err := a.svc.EDL(cmd.Context(), run.ID, fps)
				if err != nil {
					return err
				}
				if err := writeFile(edlPath, []byte(e.Body)); err != nil {
					return err
				}
			}
			return writeOutput(output, run, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .zst compresses; stdout when empty")
	cmd.Flags().StringVar(&edlPath, "edl", "", "also write the run as an edit decision list")
	cmd.Flags().Float64Var(&fps, "fps", 30, "frame rate for --edl timecodes")
	return cmd
}
