package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/MihkelHunter/taskflow/internal/analytics"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245"))

	priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
	}
	statusStyles = map[todo.Status]lipgloss.Style{
		todo.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		todo.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		todo.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
	}
)

const (
	shortIDLen = 8
	descWidth  = 72
	descIndent = "          "
)

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func age(created, now time.Time) string {
	if created.IsZero() {
		return "-"
	}
	return humanize.RelTime(created, now, "ago", "from now")
}

func formatTask(t todo.Task, now time.Time) string {
	title := t.Title
	if t.Status == todo.StatusCompleted {
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s  %s  %s  %3d%%  %s  %s",
		idStyle.Render(shortID(t.ID)),
		statusStyles[t.Status].Render(fmt.Sprintf("%-11s", t.Status.Label())),
		priorityStyles[t.Priority].Render(fmt.Sprintf("%-6s", t.Priority)),
		t.Progress,
		title,
		dimStyle.Render(age(t.CreatedAt, now)),
	)
	return line + formatDescription(t.Description)
}

func formatTodo(t todo.Todo, now time.Time) string {
	box := "[ ]"
	title := t.Title
	if t.Completed {
		box = "[x]"
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s  %s  %s  %s  %s  %s",
		idStyle.Render(shortID(t.ID)),
		box,
		priorityStyles[t.Priority].Render(fmt.Sprintf("%-6s", t.Priority)),
		fmt.Sprintf("%-8s", t.Recurrence.Label()),
		title,
		dimStyle.Render(age(t.CreatedAt, now)),
	)
	return line + formatDescription(t.Description)
}

// formatDescription wraps desc under the row it belongs to.
func formatDescription(desc string) string {
	if strings.TrimSpace(desc) == "" {
		return ""
	}
	var b strings.Builder
	for _, l := range strings.Split(wordwrap.String(desc, descWidth), "\n") {
		b.WriteString("\n" + descIndent + dimStyle.Render(l))
	}
	return b.String()
}

func printTasks(w io.Writer, tasks []todo.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTask(t, now))
	}
}

func printTodos(w io.Writer, todos []todo.Todo, now time.Time) {
	if len(todos) == 0 {
		fmt.Fprintln(w, "No to-dos found.")
		return
	}
	for _, t := range todos {
		fmt.Fprintln(w, formatTodo(t, now))
	}
}

func printSummary(w io.Writer, s analytics.Summary) {
	pct := analytics.FormatPercent

	fmt.Fprintln(w, headerStyle.Render("Tasks"))
	fmt.Fprintf(w, "  Total: %d\n", s.Tasks.Total)
	for _, st := range todo.Statuses() {
		n := s.Tasks.StatusCount(st)
		fmt.Fprintf(w, "  %s: %d (%s)\n", st.Label(), n, pct(s.Tasks.Share(n)))
	}
	fmt.Fprintf(w, "  Completion rate: %s\n", pct(s.Tasks.CompletionRate))
	fmt.Fprintf(w, "  Average progress: %s\n", pct(s.Tasks.AverageProgress))
	fmt.Fprintf(w, "  Priority: %s\n", formatPriorityCounts(s.Tasks.ByPriority))

	fmt.Fprintln(w, headerStyle.Render("To-Dos"))
	fmt.Fprintf(w, "  Total: %d\n", s.Todos.Total)
	fmt.Fprintf(w, "  Completed: %d (%s)\n", s.Todos.Completed, pct(s.Todos.Share(s.Todos.Completed)))
	fmt.Fprintf(w, "  Pending: %d (%s)\n", s.Todos.Pending, pct(s.Todos.Share(s.Todos.Pending)))
	fmt.Fprintf(w, "  Completion rate: %s\n", pct(s.Todos.CompletionRate))
	var rec []string
	for _, r := range todo.Recurrences() {
		rec = append(rec, fmt.Sprintf("%s %d", r.Label(), s.Todos.ByRecurrence.Count(r)))
	}
	fmt.Fprintf(w, "  Recurrence: %s\n", strings.Join(rec, ", "))
	fmt.Fprintf(w, "  Priority: %s\n", formatPriorityCounts(s.Todos.ByPriority))

	fmt.Fprintln(w, headerStyle.Render("Overall"))
	fmt.Fprintf(w, "  Items: %d\n", s.Overall.TotalItems)
	fmt.Fprintf(w, "  Completed: %d\n", s.Overall.CompletedItems)
	fmt.Fprintf(w, "  Completion rate: %s\n", pct(s.Overall.CompletionRate))
}

func formatPriorityCounts(p analytics.PriorityCounts) string {
	parts := make([]string, 0, 3)
	for _, pr := range todo.Priorities() {
		parts = append(parts, fmt.Sprintf("%s %d", pr, p.Count(pr)))
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
