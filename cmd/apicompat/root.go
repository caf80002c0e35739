package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"apicompat/internal/baseline"
	"apicompat/internal/config"
	"apicompat/internal/engine"
	"apicompat/internal/filter"
	"apicompat/internal/logging"
	"apicompat/internal/report"
	"apicompat/internal/symbol"
)

// app holds what every command needs once flags and config are resolved.
type app struct {
	configPath string
	verbose    int
	quiet      bool
	colorMode  string
	format     string

	settings *config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "apicompat",
		Short:         "Compare API surfaces and report breaking changes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (yaml|toml|json); defaults to ./.apicompat.*")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "disable logging")
	flags.StringVar(&a.colorMode, "color", "", "colorize output (auto|always|never)")
	flags.StringVar(&a.format, "format", "", "report format (text|json)")

	root.AddCommand(
		newDiffCmd(a),
		newBatchCmd(a),
		newRulesCmd(a),
		newSnapshotCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	s, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.format != "" {
		s.Report.Format = a.format
	}

	if a.colorMode != "" {
		s.Report.Color = a.colorMode
	}

	if err := s.Validate(); err != nil {
		return err
	}

	level := s.LogLevel()
	if cmd.Flags().Changed("verbose") || a.quiet {
		level = logging.LevelFromVerbosity(a.verbose, a.quiet)
	}

	a.settings = s
	a.logger = logging.New(cmd.ErrOrStderr(), level)

	return nil
}

func (a *app) newEngine() (*engine.Engine, error) {
	cfg, err := a.settings.FilterConfig()
	if err != nil {
		return nil, err
	}

	f, err := filter.New(cfg)
	if err != nil {
		return nil, err
	}

	return engine.New(f, a.settings.RuleSet(), engine.Options{
		Predicate:         a.settings.RulePredicate(),
		AlwaysDiffMembers: cfg.AlwaysDiffMembers,
		SideNames:         a.settings.SideNames,
		Logger:            a.logger,
	})
}

// loadBaseline merges the configured baseline files with extra ones.
// It returns nil when there are none.
func (a *app) loadBaseline(extra []string) (*baseline.File, error) {
	paths := append(append([]string(nil), a.settings.Baselines...), extra...)
	if len(paths) == 0 {
		return nil, nil
	}

	files := make([]*baseline.File, 0, len(paths))

	for _, path := range paths {
		f, err := baseline.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		files = append(files, f)
	}

	return baseline.Merge(files...), nil
}

// present applies the baseline to res and writes the report. It returns
// errIncompatible when an incompatibility is left.
func (a *app) present(w io.Writer, name string, res *engine.Result, bl *baseline.File) error {
	rep := report.FromResult(res)
	if name != "" {
		rep.Name = name
	}

	if bl != nil {
		out := bl.Apply(res.Differences)
		rep.Differences = out.Kept
		rep.Suppressed = len(out.Suppressed)

		if a.settings.ValidateBaseline {
			rep.Diagnostics.Merge(out.StaleDiagnostics())
		}
	}

	format, err := report.ParseFormat(a.settings.Report.Format)
	if err != nil {
		return err
	}

	if err := report.Write(w, rep, report.Options{Format: format, Color: a.colorEnabled()}); err != nil {
		return err
	}

	kept := engine.Result{Differences: rep.Differences}
	if kept.HasIncompatibilities() {
		return errIncompatible
	}

	return nil
}

func (a *app) colorEnabled() bool {
	switch a.settings.Report.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}

func loadSides(paths []string) ([]*symbol.Library, error) {
	libs := make([]*symbol.Library, len(paths))

	for i, path := range paths {
		lib, err := symbol.LoadFile(path)
		if err != nil {
			return nil, err
		}

		libs[i] = lib
	}

	return libs, nil
}
