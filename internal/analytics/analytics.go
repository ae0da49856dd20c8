// Package analytics computes productivity statistics from the task and todo
// collections. Everything here is a pure function of its arguments.
package analytics

import (
	"fmt"

	"github.com/MihkelHunter/taskflow/internal/todo"
)

// PriorityCounts buckets items by priority.
type PriorityCounts struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

func (p *PriorityCounts) add(pr todo.Priority) {
	switch pr {
	case todo.PriorityHigh:
		p.High++
	case todo.PriorityMedium:
		p.Medium++
	case todo.PriorityLow:
		p.Low++
	}
}

// Count returns the bucket for pr.
func (p PriorityCounts) Count(pr todo.Priority) int {
	switch pr {
	case todo.PriorityHigh:
		return p.High
	case todo.PriorityMedium:
		return p.Medium
	case todo.PriorityLow:
		return p.Low
	default:
		return 0
	}
}

// RecurrenceCounts buckets todos by recurrence.
type RecurrenceCounts struct {
	Daily   int `json:"daily" yaml:"daily"`
	Weekly  int `json:"weekly" yaml:"weekly"`
	Monthly int `json:"monthly" yaml:"monthly"`
	OneTime int `json:"oneTime" yaml:"one_time"`
}

func (r RecurrenceCounts) Count(rec todo.Recurrence) int {
	switch rec {
	case todo.RecurrenceDaily:
		return r.Daily
	case todo.RecurrenceWeekly:
		return r.Weekly
	case todo.RecurrenceMonthly:
		return r.Monthly
	default:
		return r.OneTime
	}
}

type TaskStats struct {
	Total           int            `json:"total" yaml:"total"`
	Pending         int            `json:"pending" yaml:"pending"`
	InProgress      int            `json:"inProgress" yaml:"in_progress"`
	Completed       int            `json:"completed" yaml:"completed"`
	CompletionRate  float64        `json:"completionRate" yaml:"completion_rate"`
	AverageProgress float64        `json:"averageProgress" yaml:"average_progress"`
	ByPriority      PriorityCounts `json:"byPriority" yaml:"by_priority"`
}

// StatusCount returns how many tasks are in status s.
func (s TaskStats) StatusCount(st todo.Status) int {
	switch st {
	case todo.StatusPending:
		return s.Pending
	case todo.StatusInProgress:
		return s.InProgress
	case todo.StatusCompleted:
		return s.Completed
	default:
		return 0
	}
}

// Share is n as a percentage of all tasks.
func (s TaskStats) Share(n int) float64 {
	return Rate(n, s.Total)
}

type TodoStats struct {
	Total          int              `json:"total" yaml:"total"`
	Completed      int              `json:"completed" yaml:"completed"`
	Pending        int              `json:"pending" yaml:"pending"`
	CompletionRate float64          `json:"completionRate" yaml:"completion_rate"`
	ByRecurrence   RecurrenceCounts `json:"byRecurrence" yaml:"by_recurrence"`
	ByPriority     PriorityCounts   `json:"byPriority" yaml:"by_priority"`
}

func (s TodoStats) Share(n int) float64 {
	return Rate(n, s.Total)
}

type OverallStats struct {
	TotalItems     int     `json:"totalItems" yaml:"total_items"`
	CompletedItems int     `json:"completedItems" yaml:"completed_items"`
	CompletionRate float64 `json:"completionRate" yaml:"completion_rate"`
}

// Summary bundles every statistic shown on the analytics view.
type Summary struct {
	Tasks   TaskStats    `json:"tasks" yaml:"tasks"`
	Todos   TodoStats    `json:"todos" yaml:"todos"`
	Overall OverallStats `json:"overall" yaml:"overall"`
}

// Rate returns part/total*100, or 0 when total is 0.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func Tasks(tasks []todo.Task) TaskStats {
	s := TaskStats{Total: len(tasks)}
	progress := 0
	for _, t := range tasks {
		switch t.Status {
		case todo.StatusPending:
			s.Pending++
		case todo.StatusInProgress:
			s.InProgress++
		case todo.StatusCompleted:
			s.Completed++
		}
		s.ByPriority.add(t.Priority)
		progress += t.Progress
	}
	s.CompletionRate = Rate(s.Completed, s.Total)
	if s.Total > 0 {
		s.AverageProgress = float64(progress) / float64(s.Total)
	}
	return s
}

func Todos(todos []todo.Todo) TodoStats {
	s := TodoStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		switch t.Recurrence {
		case todo.RecurrenceDaily:
			s.ByRecurrence.Daily++
		case todo.RecurrenceWeekly:
			s.ByRecurrence.Weekly++
		case todo.RecurrenceMonthly:
			s.ByRecurrence.Monthly++
		default:
			s.ByRecurrence.OneTime++
		}
		s.ByPriority.add(t.Priority)
	}
	s.CompletionRate = Rate(s.Completed, s.Total)
	return s
}

func Overall(tasks TaskStats, todos TodoStats) OverallStats {
	o := OverallStats{
		TotalItems:     tasks.Total + todos.Total,
		CompletedItems: tasks.Completed + todos.Completed,
	}
	o.CompletionRate = Rate(o.CompletedItems, o.TotalItems)
	return o
}

func Summarize(tasks []todo.Task, todos []todo.Todo) Summary {
	ts := Tasks(tasks)
	ds := Todos(todos)
	return Summary{Tasks: ts, Todos: ds, Overall: Overall(ts, ds)}
}
