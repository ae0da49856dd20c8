package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MihkelHunter/taskflow/internal/focus"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

var focusCmd = &cobra.Command{
	Use:   "focus <task-id>",
	Short: "Run a focus session for a task",
	Long: `Run a focus countdown for a task. When it finishes the task gains 25%
progress, and reaching 100% marks it completed. Ctrl-C abandons the session
without changing the task.`,
	Args: cobra.ExactArgs(1),
	RunE: runFocus,
}

var (
	focusMinutes int
	focusTick    time.Duration
)

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().IntVarP(&focusMinutes, "minutes", "m", 0, "session length in minutes (5-60, step 5)")
	focusCmd.Flags().DurationVar(&focusTick, "tick", time.Second, "wall-clock time per countdown second")
	_ = focusCmd.Flags().MarkHidden("tick")
}

func runFocus(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := resolveTaskID(a.svc, args[0])
	if err != nil {
		return err
	}

	minutes := a.cfg.Focus.Minutes
	if cmd.Flags().Changed("minutes") {
		minutes = focusMinutes
	}

	out := cmd.OutOrStdout()
	live := out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
	finished := make(chan focus.Event, 1)
	ctrl, err := focus.NewController(focus.RealClock(), minutes,
		focus.WithInterval(focusTick),
		focus.WithLogger(a.logger),
		focus.OnTick(func(ev focus.Event) {
			switch {
			case live:
				fmt.Fprintf(out, "\r%s remaining ", ev.Clock())
			case ev.Remaining > 0 && ev.Remaining%60 == 0:
				fmt.Fprintf(out, "%s remaining\n", ev.Clock())
			}
		}),
		focus.OnComplete(func(ev focus.Event) { finished <- ev }),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl.Activate(task.ID)
	fmt.Fprintf(out, "Focusing on %q for %d minutes\n", task.Title, minutes)
	if err := ctrl.Start(ctx); err != nil {
		return err
	}
	ctrl.Wait()
	if live {
		fmt.Fprintln(out)
	}

	select {
	case ev := <-finished:
		// Other commands may have written while the session ran.
		a.svc.Reload()
		updated, ok := a.svc.CompleteFocusSession(ev.TaskID)
		if !ok {
			return fmt.Errorf("task not found: %s", ev.TaskID)
		}
		fmt.Fprintf(out, "Session complete. %s is at %d%%", updated.Title, updated.Progress)
		if updated.Status == todo.StatusCompleted {
			fmt.Fprint(out, " and completed")
		}
		fmt.Fprintln(out)
	default:
		fmt.Fprintf(out, "Session stopped with %s left\n", ctrl.Snapshot().Clock())
	}
	return nil
}
