package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MihkelHunter/taskflow/internal/todo"
)

func TestFormatDescription(t *testing.T) {
	assert.Empty(t, formatDescription("   "))

	long := strings.Repeat("word ", 40)
	lines := strings.Split(strings.TrimPrefix(formatDescription(long), "\n"), "\n")
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, descIndent))
		assert.LessOrEqual(t, len(strings.TrimSpace(l)), descWidth)
	}
}

func TestFormatTask(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	task := todo.Task{
		ID:        "0f8fad5b-d9cb-469f-a165-70867728950e",
		Title:     "Write report",
		Status:    todo.StatusInProgress,
		Priority:  todo.PriorityHigh,
		Progress:  40,
		CreatedAt: now.Add(-2 * time.Hour),
	}

	line := formatTask(task, now)
	assert.Contains(t, line, "0f8fad5b")
	assert.Contains(t, line, "In Progress")
	assert.Contains(t, line, "High")
	assert.Contains(t, line, " 40%")
	assert.Contains(t, line, "2 hours ago")
	assert.NotContains(t, line, "\n")
}

func TestFormatTodo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	item := todo.Todo{
		ID:          "abc",
		Title:       "Water plants",
		Description: "balcony",
		Completed:   true,
		Priority:    todo.PriorityLow,
		Recurrence:  todo.RecurrenceWeekly,
		CreatedAt:   now,
	}

	out := formatTodo(item, now)
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Weekly")
	assert.Contains(t, out, "\n"+descIndent)
	assert.Contains(t, out, "balcony")

	assert.Equal(t, "-", age(time.Time{}, now))
}
