package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MihkelHunter/taskflow/internal/todo"
)

func TestEmptyCollections(t *testing.T) {
	s := Summarize(nil, nil)

	assert.Equal(t, 0.0, s.Tasks.CompletionRate)
	assert.Equal(t, 0.0, s.Tasks.AverageProgress)
	assert.Equal(t, 0.0, s.Todos.CompletionRate)
	assert.Equal(t, 0.0, s.Overall.CompletionRate)
	assert.False(t, math.IsNaN(s.Overall.CompletionRate))
	assert.Equal(t, 0.0, s.Tasks.Share(0))
	assert.Equal(t, "0.0%", FormatPercent(s.Overall.CompletionRate))
}

func TestTaskStats(t *testing.T) {
	tasks := []todo.Task{
		{Status: todo.StatusCompleted, Priority: todo.PriorityHigh, Progress: 100},
		{Status: todo.StatusInProgress, Priority: todo.PriorityHigh, Progress: 50},
		{Status: todo.StatusPending, Priority: todo.PriorityLow, Progress: 0},
		{Status: todo.StatusCompleted, Priority: todo.PriorityMedium, Progress: 25},
	}
	s := Tasks(tasks)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.InProgress)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 50.0, s.CompletionRate)
	assert.InDelta(t, 43.75, s.AverageProgress, 1e-9)
	assert.Equal(t, PriorityCounts{High: 2, Medium: 1, Low: 1}, s.ByPriority)
	assert.Equal(t, 2, s.StatusCount(todo.StatusCompleted))
	assert.Equal(t, 25.0, s.Share(s.InProgress))
	assert.Equal(t, "43.8%", FormatPercent(s.AverageProgress))
}

func TestTodoStatsRecurrenceBucketsSumToTotal(t *testing.T) {
	todos := []todo.Todo{
		{Recurrence: todo.RecurrenceDaily, Priority: todo.PriorityLow, Completed: true},
		{Recurrence: todo.RecurrenceDaily, Priority: todo.PriorityLow},
		{Recurrence: todo.RecurrenceWeekly, Priority: todo.PriorityMedium},
		{Recurrence: todo.RecurrenceWeekly, Priority: todo.PriorityHigh, Completed: true},
		{Recurrence: todo.RecurrenceWeekly, Priority: todo.PriorityHigh},
		{Recurrence: todo.RecurrenceNone, Priority: todo.PriorityLow},
	}
	s := Todos(todos)

	assert.Equal(t, RecurrenceCounts{Daily: 2, Weekly: 3, Monthly: 0, OneTime: 1}, s.ByRecurrence)
	r := s.ByRecurrence
	assert.Equal(t, 6, r.Daily+r.Weekly+r.Monthly+r.OneTime)
	assert.Equal(t, s.Total, r.Daily+r.Weekly+r.Monthly+r.OneTime)

	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 4, s.Pending)
	assert.InDelta(t, 33.333, s.CompletionRate, 0.001)
	assert.Equal(t, "33.3%", FormatPercent(s.CompletionRate))
	assert.Equal(t, PriorityCounts{High: 2, Medium: 1, Low: 3}, s.ByPriority)
	assert.Equal(t, 3, r.Count(todo.RecurrenceWeekly))
	assert.Equal(t, 1, r.Count(todo.RecurrenceNone))
}

func TestOverall(t *testing.T) {
	s := Summarize(
		[]todo.Task{{Status: todo.StatusCompleted}, {Status: todo.StatusPending}},
		[]todo.Todo{{Completed: true}, {Completed: true}, {}},
	)

	assert.Equal(t, 5, s.Overall.TotalItems)
	assert.Equal(t, 3, s.Overall.CompletedItems)
	assert.Equal(t, 60.0, s.Overall.CompletionRate)
}

func TestRateBounds(t *testing.T) {
	for total := 0; total <= 20; total++ {
		for part := 0; part <= total; part++ {
			r := Rate(part, total)
			assert.GreaterOrEqual(t, r, 0.0)
			assert.LessOrEqual(t, r, 100.0)
			assert.False(t, math.IsNaN(r))
		}
	}
}
