package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MihkelHunter/taskflow/internal/search"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage to-dos",
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a to-do",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoAdd,
}

var todoListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List to-dos",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runTodoList,
}

var todoEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a to-do",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoEdit,
}

var todoToggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Short:   "Flip the completed flag of a to-do",
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE:    runTodoToggle,
}

var todoRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Short:   "Delete a to-do",
	Aliases: []string{"delete"},
	Args:    cobra.ExactArgs(1),
	RunE:    runTodoRm,
}

var (
	todoDescription string
	todoPriority    string
	todoRecurrence  string
	todoTitle       string
	todoCompleted   bool
	todoQuiet       bool

	todoListDone       bool
	todoListPending    bool
	todoListRecurrence string
	todoListQuery      string
	todoListJSON       bool
)

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoListCmd, todoEditCmd, todoToggleCmd, todoRmCmd)

	for _, cmd := range []*cobra.Command{todoAddCmd, todoEditCmd} {
		cmd.Flags().StringVarP(&todoDescription, "description", "d", "", "to-do description")
		cmd.Flags().StringVarP(&todoPriority, "priority", "p", "low", "priority: low, medium, high")
		cmd.Flags().StringVarP(&todoRecurrence, "recurrence", "r", "none", "recurrence: none, daily, weekly, monthly")
		cmd.Flags().BoolVar(&todoCompleted, "completed", false, "mark as completed")
	}
	todoAddCmd.Flags().BoolVarP(&todoQuiet, "quiet", "q", false, "print only the new to-do id")
	todoEditCmd.Flags().StringVarP(&todoTitle, "title", "t", "", "new title")

	todoListCmd.Flags().BoolVar(&todoListDone, "done", false, "only show completed to-dos")
	todoListCmd.Flags().BoolVar(&todoListPending, "pending", false, "only show open to-dos")
	todoListCmd.Flags().StringVarP(&todoListRecurrence, "recurrence", "r", "", "only show to-dos with this recurrence")
	todoListCmd.Flags().StringVar(&todoListQuery, "search", "", "only show to-dos matching this text")
	todoListCmd.Flags().BoolVar(&todoListJSON, "json", false, "output as JSON")
	todoListCmd.MarkFlagsMutuallyExclusive("done", "pending")
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	priority, err := todo.ParsePriority(todoPriority)
	if err != nil {
		return err
	}
	recurrence, err := todo.ParseRecurrence(todoRecurrence)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := a.svc.AddTodo(todo.TodoDraft{
		Title:       args[0],
		Description: todoDescription,
		Completed:   todoCompleted,
		Priority:    priority,
		Recurrence:  recurrence,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if todoQuiet {
		fmt.Fprintln(out, t.ID)
		return nil
	}
	fmt.Fprintf(out, "Created to-do %s: %s\n", shortID(t.ID), t.Title)
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	todos := search.Filter(a.svc.Todos(), todoListQuery)
	switch {
	case todoListDone:
		todos = todo.TodosWithCompletion(todos, true)
	case todoListPending:
		todos = todo.TodosWithCompletion(todos, false)
	}
	if cmd.Flags().Changed("recurrence") {
		rec, err := todo.ParseRecurrence(todoListRecurrence)
		if err != nil {
			return err
		}
		todos = todo.TodosWithRecurrence(todos, rec)
	}

	if todoListJSON {
		if todos == nil {
			todos = []todo.Todo{}
		}
		return writeJSON(cmd.OutOrStdout(), todos)
	}
	printTodos(cmd.OutOrStdout(), todos, time.Now())
	return nil
}

func runTodoEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveTodoID(a.svc, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		t.Title = todoTitle
	}
	if flags.Changed("description") {
		t.Description = todoDescription
	}
	if flags.Changed("priority") {
		if t.Priority, err = todo.ParsePriority(todoPriority); err != nil {
			return err
		}
	}
	if flags.Changed("recurrence") {
		if t.Recurrence, err = todo.ParseRecurrence(todoRecurrence); err != nil {
			return err
		}
	}
	if flags.Changed("completed") {
		t.Completed = todoCompleted
	}

	if err := a.svc.UpdateTodo(t); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated to-do %s: %s\n", shortID(t.ID), t.Title)
	return nil
}

func runTodoToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveTodoID(a.svc, args[0])
	if err != nil {
		return err
	}
	updated, ok := a.svc.ToggleTodo(t.ID)
	if !ok {
		return errors.New("to-do disappeared while toggling")
	}
	state := "open"
	if updated.Completed {
		state = "done"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "To-do %s is now %s\n", shortID(t.ID), state)
	return nil
}

func runTodoRm(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	t, err := resolveTodoID(a.svc, args[0])
	if err != nil {
		return err
	}
	a.svc.DeleteTodo(t.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted to-do %s: %s\n", shortID(t.ID), t.Title)
	return nil
}
