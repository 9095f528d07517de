package cmd

import (
	"fmt"

	"github.com/ethpandaops/devmetrics/internal/actions"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <name=value>...",
	Short: "Record one development iteration and show the resulting insights",
	Long: `Records every name=value pair as a sample and prints the insights for the
updated history.

Example:
  devmetrics evaluate test_duration=41.2 coverage_percent=83 lint_errors=0`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := actions.ParseValues(args)
		if err != nil {
			return fmt.Errorf("invalid iteration: %w", err)
		}

		tk, err := newToolkit(cmd)
		if err != nil {
			return err
		}

		tk.Evaluate(values)
		finish(tk)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}
