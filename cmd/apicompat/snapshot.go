package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apicompat/internal/engine"
	"apicompat/internal/report"
	"apicompat/internal/snapshot"
)

func newSnapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Store run results and check later runs against them",
	}

	run := func(cmd *cobra.Command, paths []string) (*engine.Result, error) {
		libs, err := loadSides(paths)
		if err != nil {
			return nil, err
		}

		e, err := a.newEngine()
		if err != nil {
			return nil, err
		}

		return e.Run(cmd.Context(), libs...)
	}

	write := &cobra.Command{
		Use:   "write <snapshot> <contract> <implementation>...",
		Short: "Run a comparison and store its result",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, args[1:])
			if err != nil {
				return err
			}

			if err := snapshot.Save(args[0], res); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d differences to %s\n", len(res.Differences), args[0])

			return nil
		},
	}

	verify := &cobra.Command{
		Use:   "verify <snapshot> <contract> <implementation>...",
		Short: "Run a comparison and fail if its result differs from the snapshot",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := run(cmd, args[1:])
			if err != nil {
				return err
			}

			if err := snapshot.Verify(args[0], res); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Result matches snapshot")

			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <snapshot>",
		Short: "Print a stored result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := snapshot.Load(args[0])
			if err != nil {
				return err
			}

			res := &engine.Result{Sides: s.Sides, Differences: s.Differences}

			format, err := report.ParseFormat(a.settings.Report.Format)
			if err != nil {
				return err
			}

			return report.Write(cmd.OutOrStdout(), report.FromResult(res), report.Options{
				Format: format,
				Color:  a.colorEnabled(),
			})
		},
	}

	cmd.AddCommand(write, verify, show)

	return cmd
}
