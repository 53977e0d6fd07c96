package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dcaulton/smartcal1/internal/scheduler"
)

// ServeCmd returns the serve command: an in-process check loop for
// environments without an external cron.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run checks on an in-process schedule",
		Long: `Run the check cycle every CHECK_INTERVAL until interrupted. A failed
cycle is logged and retried at the next tick, the same recovery model as
external scheduling.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.Close()

			sched := scheduler.New(rt.cfg.CheckInterval, func(ctx context.Context) error {
				result, err := rt.check.RunCheck(ctx)
				if err != nil {
					return err
				}
				printOpenTasks(result.OpenTasks)
				return nil
			})

			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			fmt.Printf("Checking every %s (ctrl-c to stop)\n", rt.cfg.CheckInterval)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			fmt.Println("Shutting down.")
			return nil
		},
	}
}
