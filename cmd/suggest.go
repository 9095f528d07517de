package cmd

import (
	"fmt"

	"github.com/ethpandaops/devmetrics/internal/feedback"
	"github.com/ethpandaops/devmetrics/pkg/interactive"
	"github.com/spf13/cobra"
)

var (
	suggestTaskType    string
	suggestComplexity  string
	suggestInteractive bool

	taskTypes    = []string{"feature", "refactoring", "debugging", "other"}
	complexities = []string{"low", "medium", "high"}
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest optimizations for the next task",
	Long: `Combines insights from recorded metrics with the task context to suggest
optimizations. Suggestions below the configured min priority are dropped.

Example:
  devmetrics suggest --task-type refactoring --complexity high`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		task, err := resolveTaskContext()
		if err != nil {
			return err
		}

		tk, err := newToolkit(cmd)
		if err != nil {
			return err
		}

		tk.Suggest(task)
		finish(tk)

		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestTaskType, "task-type", "", "Task type (feature, refactoring, debugging)")
	suggestCmd.Flags().StringVar(&suggestComplexity, "complexity", "", "Task complexity (low, medium, high)")
	suggestCmd.Flags().BoolVarP(&suggestInteractive, "interactive", "i", false, "Prompt for the task context")

	rootCmd.AddCommand(suggestCmd)
}

func resolveTaskContext() (feedback.TaskContext, error) {
	values := map[string]string{
		"task_type":  suggestTaskType,
		"complexity": suggestComplexity,
	}

	if suggestInteractive {
		if err := promptTaskContext(values); err != nil {
			return feedback.TaskContext{}, err
		}
	}

	return feedback.ParseTaskContext(values), nil
}

func promptTaskContext(values map[string]string) error {
	taskType, err := interactive.Select("What kind of task is next?", taskTypes, values["task_type"])
	if err != nil {
		return fmt.Errorf("failed to read task type: %w", err)
	}

	complexity, err := interactive.Select("How complex is it?", complexities, values["complexity"])
	if err != nil {
		return fmt.Errorf("failed to read complexity: %w", err)
	}

	values["task_type"] = taskType
	values["complexity"] = complexity

	return nil
}
