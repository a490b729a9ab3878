package main

import (
	"context"
	"io"
	"os"

	"supercut/internal/core/version"
	"supercut/internal/modkit/repokit"
	"supercut/internal/platform/config"
	"supercut/internal/platform/logger"
	"supercut/internal/platform/store"

	curmod "supercut/internal/services/api/curation/module"
	crepo "supercut/internal/services/api/curation/repo"
	csvc "supercut/internal/services/api/curation/service"

	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand
type app struct {
	archive  string
	logLevel string

	st  *store.Store
	svc *csvc.Svc
}

// run builds the command tree, executes args and releases the archive
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "supercut",
		Short: "Curate highlight reels from labelled scenes",
		Long: `supercut turns classifier output (labelled, scored scenes) into an ordered
plan of clips that fits a target duration.

Examples:
  supercut curate -i day1.json -i day2.json --target 120 -o plan.json.zst
  supercut curate -i day1.json --edl reel.edl --fps 25 --archive runs.db
  supercut windows -i day1.json --window 4
  supercut runs --archive runs.db
  supercut runs show 9b2f6a2e-2f0c-4d55-9d0e-6a0c2d9f1b77 --archive runs.db`,
		Version:           version.InfoFor("supercut").Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}
	root.PersistentFlags().StringVar(&a.archive, "archive", "", "sqlite file that stores runs (created when missing)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level written to stderr, LOG_LEVEL wins when this flag is unset")

	root.AddCommand(newCurateCmd(a), newWindowsCmd(a), newRunsCmd(a))
	return root
}

// open sets up logging, the optional archive and the curation service
func (a *app) open(cmd *cobra.Command, _ []string) error {
	opt := logger.FromEnv()
	opt.Writer = cmd.ErrOrStderr()
	if cmd.Flags().Changed("log-level") || os.Getenv("LOG_LEVEL") == "" {
		opt.Level = a.logLevel
	}
	if opt.Service == "" {
		opt.Service = "supercut"
	}
	logger.Init(opt)

	ctx := cmd.Context()
	var db repokit.TxRunner
	if a.archive != "" {
		st, err := store.Open(ctx, store.Config{
			AppName: "supercut",
			Lite:    store.LiteConfig{Enabled: true, Path: a.archive},
		}, store.WithLogger(*logger.Get()))
		if err != nil {
			return err
		}
		a.st, db = st, st.Lite
	}

	cfg := curmod.FromConfig(config.New(), db != nil)
	a.svc = csvc.New(db, crepo.NewSQL(), csvc.Options{
		Defaults:  cfg.Defaults,
		Workers:   cfg.Workers,
		Canonical: cfg.Canonical,
		Persist:   db != nil,
	})
	return a.svc.EnsureSchema(ctx)
}

func (a *app) close() {
	if a.st == nil {
		return
	}
	if err := a.st.Close(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("failed to close archive")
	}
	a.st = nil
}
