package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dcaulton/smartcal1/internal/models"
)

// CheckCmd returns the check command, the default mode.
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run one scheduled weather check",
		Long: `Run a single check cycle: fetch the current temperature, log it,
evaluate the sustained-warmth window, and when warmth is sustained, consult
the model about creating a maintenance task.

The repeating cadence comes from an external scheduler (cron) invoking this
command anew each time; see "smartcal serve" for an in-process loop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := rt.check.RunCheck(cmd.Context())
			if err != nil {
				return err
			}

			printOpenTasks(result.OpenTasks)
			return nil
		},
	}
}

// printOpenTasks renders the open-task report that closes every check run.
func printOpenTasks(tasks []*models.Task) {
	if len(tasks) == 0 {
		return
	}

	fmt.Println("\n📋 The List:")
	for _, task := range tasks {
		fmt.Printf("  #%d [%s] %s\n", task.ID, statusColor(task.Status), task.Description)
	}
}

func statusColor(status string) string {
	switch status {
	case models.TaskStatusPending:
		return color.New(color.FgYellow).Sprint(status)
	case models.TaskStatusSnoozed:
		return color.New(color.FgCyan).Sprint(status)
	case models.TaskStatusResolved:
		return color.New(color.FgHiGreen).Sprint(status)
	default:
		return status
	}
}
