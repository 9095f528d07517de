package cmd

import (
	"fmt"

	"github.com/ethpandaops/devmetrics/internal/actions"
	"github.com/spf13/cobra"
)

var recordMeta []string

var recordCmd = &cobra.Command{
	Use:   "record <name> <value>",
	Short: "Record a metric sample",
	Long: `Appends one sample to the metrics history.

Example:
  devmetrics record test_duration 42.5 --meta branch=main --meta shards=4`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := actions.ParseValue(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}

		fields, err := actions.ParseFields(recordMeta)
		if err != nil {
			return fmt.Errorf("invalid metadata: %w", err)
		}

		tk, err := newToolkit(cmd)
		if err != nil {
			return err
		}

		tk.Record(args[0], value, fields...)
		finish(tk)

		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [name]",
	Short: "Show recorded samples",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit(cmd)
		if err != nil {
			return err
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		}

		tk.History(name)
		finish(tk)

		return nil
	},
}

func init() {
	recordCmd.Flags().StringArrayVarP(&recordMeta, "meta", "m", nil, "Metadata as key=value (repeatable)")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(historyCmd)
}
