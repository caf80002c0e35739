package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"apicompat/internal/baseline"
)

func newDiffCmd(a *app) *cobra.Command {
	var (
		baselines     []string
		writeBaseline string
	)

	cmd := &cobra.Command{
		Use:   "diff [flags] <contract> <implementation>...",
		Short: "Compare a contract with one or more implementations",
		Long: `Compare the API surface described by the first file (the contract) with
every following file. Exits with status 1 when incompatible differences remain
after baseline suppression.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			libs, err := loadSides(args)
			if err != nil {
				return err
			}

			e, err := a.newEngine()
			if err != nil {
				return err
			}

			res, err := e.Run(cmd.Context(), libs...)
			if err != nil {
				return err
			}

			if writeBaseline != "" {
				f := baseline.FromDifferences(res.Differences)
				if err := f.WriteFile(writeBaseline); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d suppressions to %s\n", len(f.Suppressions), writeBaseline)

				return nil
			}

			bl, err := a.loadBaseline(baselines)
			if err != nil {
				return err
			}

			return a.present(cmd.OutOrStdout(), "", res, bl)
		},
	}

	cmd.Flags().StringSliceVarP(&baselines, "baseline", "b", nil, "baseline file of accepted differences (repeatable)")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "write all differences to a baseline file instead of reporting")

	return cmd
}
