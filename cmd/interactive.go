// Package cmd contains CLI command definitions
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ethpandaops/devmetrics/internal/actions"
	"github.com/ethpandaops/devmetrics/internal/feedback"
	"github.com/ethpandaops/devmetrics/internal/metrics"
	"github.com/ethpandaops/devmetrics/pkg/interactive"
	"github.com/spf13/cobra"
)

var errEmptyName = errors.New("metric name must not be empty")

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive mode",
	Long:  `Launches the interactive menu for devmetrics.`,
	Run: func(cmd *cobra.Command, _ []string) {
		RunInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// RunInteractive shows the main menu until the user exits
func RunInteractive(ctx context.Context) {
	fmt.Println("Devmetrics - Interactive Mode")
	fmt.Println("=============================")
	fmt.Println()

	tk, err := newToolkit(rootCmd)
	if err != nil {
		log.Fatal(err)
	}

	for {
		options := []interactive.MenuOption{
			{
				Name:        "Show Config",
				Description: "Display current configuration",
				Action: func() error {
					if err := actions.ShowConfig(configPath); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Record",
				Description: "Record a metric sample",
				Action: func() error {
					if err := promptRecord(tk); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Trends",
				Description: "Show trend statistics for all metrics",
				Action: func() error {
					if _, err := tk.Trends(ctx, nil); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Insights",
				Description: "Show insights derived from recorded metrics",
				Action: func() error {
					tk.Insights()
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Suggest",
				Description: "Suggest optimizations for the next task",
				Action: func() error {
					values := map[string]string{}
					if err := promptTaskContext(values); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
						interactive.PauseForEnter()
						return nil
					}

					tk.Suggest(feedback.ParseTaskContext(values))
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "Diagnostics",
				Description: "Show operation timings and cache statistics",
				Action: func() error {
					tk.PrintDiagnostics()
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Goodbye!")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

func promptRecord(tk *actions.Toolkit) error {
	name, err := interactive.Input("Metric name:", func(s string) error {
		if s == "" {
			return errEmptyName
		}
		return nil
	})
	if err != nil {
		return err
	}

	raw, err := interactive.Input("Value:", func(s string) error {
		_, parseErr := actions.ParseValue(s)
		return parseErr
	})
	if err != nil {
		return err
	}

	value, err := actions.ParseValue(raw)
	if err != nil {
		return err
	}

	if !metrics.IsWellKnown(name) &&
		!interactive.Confirm(fmt.Sprintf("%q is not read by any insight rule. Record it anyway?", name), true) {
		fmt.Println("Record canceled.")
		return nil
	}

	tk.Record(name, value)

	return nil
}
