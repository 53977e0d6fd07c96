package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dcaulton/smartcal1/internal/models"
)

// TaskCmd returns the task command group.
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect and resolve maintenance tasks",
	}

	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskResolveCmd())

	return cmd
}

func taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			limit, _ := cmd.Flags().GetInt("limit")

			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			var tasks []*models.Task
			if all {
				tasks, err = rt.tasks.ListAllTasks(cmd.Context(), limit)
			} else {
				tasks, err = rt.tasks.ListOpenTasks(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			for _, task := range tasks {
				line := fmt.Sprintf("  #%d [%s] %s", task.ID, statusColor(task.Status), task.Description)
				if task.SnoozeUntil != nil {
					line += fmt.Sprintf(" (until %s)", task.SnoozeUntil.Format("2006-01-02 15:04"))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().Bool("all", false, "Include resolved tasks")
	cmd.Flags().Int("limit", 20, "Maximum number of tasks to show")

	return cmd
}

func taskResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [task-id]",
		Short: "Mark a task resolved",
		Args:  cobra.ExactArgs(1),
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

			if err := rt.tasks.ResolveTask(cmd.Context(), taskID); err != nil {
				return fmt.Errorf("failed to resolve task: %w", err)
			}

			fmt.Printf("✓ Resolved task #%d\n", taskID)
			return nil
		},
	}
}
