package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MihkelHunter/taskflow/internal/search"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List tasks",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskStatusCmd = &cobra.Command{
	Use:   "status <id> <pending|in-progress|completed>",
	Short: "Set the status of a task",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskStatus,
}

var taskRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Short:   "Delete a task",
	Aliases: []string{"delete"},
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRm,
}

var (
	taskDescription string
	taskPriority    string
	taskStatus      string
	taskProgress    int
	taskTitle       string
	taskQuiet       bool
	taskJSON        bool
	taskQuery       string
	taskListStatus  string
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskEditCmd, taskStatusCmd, taskRmCmd)

	for _, cmd := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		cmd.Flags().StringVarP(&taskDescription, "description", "d", "", "task description")
		cmd.Flags().StringVarP(&taskPriority, "priority", "p", "low", "priority: low, medium, high")
		cmd.Flags().StringVarP(&taskStatus, "status", "s", "pending", "status: pending, in-progress, completed")
		cmd.Flags().IntVar(&taskProgress, "progress", 0, "progress percentage (0-100)")
	}
	taskAddCmd.Flags().BoolVarP(&taskQuiet, "quiet", "q", false, "print only the new task id")
	taskEditCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "new title")

	taskListCmd.Flags().StringVarP(&taskListStatus, "status", "s", "", "only show tasks with this status")
	taskListCmd.Flags().StringVar(&taskQuery, "search", "", "only show tasks matching this text")
	taskListCmd.Flags().BoolVar(&taskJSON, "json", false, "output as JSON")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	priority, err := todo.ParsePriority(taskPriority)
	if err != nil {
		return err
	}
	status, err := todo.ParseStatus(taskStatus)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.svc.AddTask(todo.TaskDraft{
		Title:       args[0],
		Description: taskDescription,
		Status:      status,
		Priority:    priority,
		Progress:    taskProgress,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if taskQuiet {
		fmt.Fprintln(out, t.ID)
		return nil
	}
	fmt.Fprintf(out, "Created task %s: %s\n", shortID(t.ID), t.Title)
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tasks := search.Filter(a.svc.Tasks(), taskQuery)
	if taskListStatus != "" {
		status, err := todo.ParseStatus(taskListStatus)
		if err != nil {
			return err
		}
		tasks = todo.TasksWithStatus(tasks, status)
	}

	if taskJSON {
		if tasks == nil {
			tasks = []todo.Task{}
		}
		return writeJSON(cmd.OutOrStdout(), tasks)
	}
	printTasks(cmd.OutOrStdout(), tasks, time.Now())
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveTaskID(a.svc, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		t.Title = taskTitle
	}
	if flags.Changed("description") {
		t.Description = taskDescription
	}
	if flags.Changed("priority") {
		if t.Priority, err = todo.ParsePriority(taskPriority); err != nil {
			return err
		}
	}
	if flags.Changed("status") {
		if t.Status, err = todo.ParseStatus(taskStatus); err != nil {
			return err
		}
	}
	if flags.Changed("progress") {
		t.Progress = taskProgress
	}

	if err := a.svc.UpdateTask(t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", shortID(t.ID), t.Title)
	return nil
}

func runTaskStatus(cmd *cobra.Command, args []string) error {
	status, err := todo.ParseStatus(args[1])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveTaskID(a.svc, args[0])
	if err != nil {
		return err
	}
	if err := a.svc.SetTaskStatus(t.ID, status); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", shortID(t.ID), status.Label())
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveTaskID(a.svc, args[0])
	if err != nil {
		return err
	}
	a.svc.DeleteTask(t.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", shortID(t.ID), t.Title)
	return nil
}
