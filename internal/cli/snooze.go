package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// SnoozeCmd returns the snooze command.
func SnoozeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snooze [task-id] [duration]",
		Short: "Defer a task until a future instant",
		Long: `Defer a task by a duration like "1d" (days) or "3h" (hours).
Malformed durations fall back to one day. Re-snoozing overwrites the prior
deadline.

Examples:
  smartcal snooze 3 1d
  smartcal snooze 3 12h`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := rt.tasks.SnoozeTask(cmd.Context(), taskID, args[1])
			if err != nil {
				return fmt.Errorf("failed to snooze task: %w", err)
			}

			fmt.Printf("⏳ Snoozed task #%d until %s\n", result.TaskID, result.Until.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}
