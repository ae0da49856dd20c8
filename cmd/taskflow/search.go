package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MihkelHunter/taskflow/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find tasks and to-dos by title or description",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.Join(args, " ")
	tasks := search.Filter(a.svc.Tasks(), query)
	todos := search.Filter(a.svc.Todos(), query)

	out := cmd.OutOrStdout()
	now := time.Now()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))))
	printTasks(out, tasks, now)
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("To-Dos (%d)", len(todos))))
	printTodos(out, todos, now)
	return nil
}
