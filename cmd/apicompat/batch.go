package main

import (
	"errors"

	"github.com/spf13/cobra"

	"apicompat/internal/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		jobs      int
		baselines []string
	)

	cmd := &cobra.Command{
		Use:   "batch [flags] <manifest>",
		Short: "Run the comparisons listed in a manifest in parallel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := batch.LoadManifest(args[0])
			if err != nil {
				return err
			}

			e, err := a.newEngine()
			if err != nil {
				return err
			}

			bl, err := a.loadBaseline(baselines)
			if err != nil {
				return err
			}

			limit := a.settings.Jobs
			if cmd.Flags().Changed("jobs") {
				limit = jobs
			}

			outcomes, err := batch.Run(cmd.Context(), m.Jobs, limit, batch.Diff(e))
			if err != nil {
				return err
			}

			var failed error

			for _, o := range outcomes {
				a.logger.Info("job finished", "job", o.Job.Name, "differences", len(o.Result.Differences))

				err := a.present(cmd.OutOrStdout(), o.Job.Name, o.Result, bl)
				if err != nil && !errors.Is(err, errIncompatible) {
					return err
				}

				if err != nil {
					failed = err
				}
			}

			return failed
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "max parallel jobs (0=GOMAXPROCS)")
	cmd.Flags().StringSliceVarP(&baselines, "baseline", "b", nil, "baseline file of accepted differences (repeatable)")

	return cmd
}
