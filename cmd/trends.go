package cmd

import (
	"github.com/spf13/cobra"
)

var trendsCmd = &cobra.Command{
	Use:   "trends [name...]",
	Short: "Show trend statistics",
	Long:  `Computes mean, median, min, max and trend direction over the configured window for the given metrics, or all recorded metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, err := newToolkit(cmd)
		if err != nil {
			return err
		}

		if _, err := tk.Trends(cmd.Context(), args); err != nil {
			return err
		}

		finish(tk)

		return nil
	},
}

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show insights derived from recorded metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit(cmd)
		if err != nil {
			return err
		}

		tk.Insights()
		finish(tk)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(insightsCmd)
}
