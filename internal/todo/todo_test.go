package todo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriority(t *testing.T) {
	assert.Equal(t, "High", PriorityHigh.String())
	assert.Equal(t, "Medium", PriorityMedium.String())
	assert.Equal(t, "Low", PriorityLow.String())
	assert.Equal(t, "None", Priority(0).String())
	assert.True(t, PriorityHigh > PriorityMedium && PriorityMedium > PriorityLow)
	assert.Equal(t, []Priority{PriorityHigh, PriorityMedium, PriorityLow}, Priorities())

	for in, want := range map[string]Priority{"low": PriorityLow, "2": PriorityMedium, " HIGH ": PriorityHigh, "h": PriorityHigh} {
		got, err := ParsePriority(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestPriorityJSON(t *testing.T) {
	data, err := json.Marshal(PriorityMedium)
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))

	var p Priority
	require.NoError(t, json.Unmarshal([]byte("3"), &p))
	assert.Equal(t, PriorityHigh, p)

	assert.ErrorIs(t, json.Unmarshal([]byte("0"), &p), ErrInvalidPriority)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"high"`), &p), ErrInvalidPriority)

	_, err = json.Marshal(Priority(4))
	assert.Error(t, err)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	for in, want := range map[string]Status{"done": StatusCompleted, "in_progress": StatusInProgress, "Pending": StatusPending} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseStatus("blocked")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"in-progress"`), &s))
	assert.Equal(t, StatusInProgress, s)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"in_progress"`), &s), ErrInvalidStatus)
}

func TestRecurrenceJSON(t *testing.T) {
	data, err := json.Marshal(Todo{ID: "a", Title: "x", Priority: PriorityLow})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"recurrence":null`)

	var item Todo
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","priority":1,"recurrence":"monthly"}`), &item))
	assert.Equal(t, RecurrenceMonthly, item.Recurrence)

	item = Todo{Recurrence: RecurrenceDaily}
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","priority":1,"recurrence":null}`), &item))
	assert.Equal(t, RecurrenceNone, item.Recurrence)

	assert.ErrorIs(t, json.Unmarshal([]byte(`{"priority":1,"recurrence":"yearly"}`), &item), ErrInvalidRecurrence)

	assert.Equal(t, "One-time", RecurrenceNone.Label())
	got, err := ParseRecurrence("one-time")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceNone, got)
}

func TestApplyFocusSession(t *testing.T) {
	got := ApplyFocusSession(Task{Progress: 80, Status: StatusInProgress})
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, StatusCompleted, got.Status)

	got = ApplyFocusSession(Task{Progress: 50, Status: StatusInProgress})
	assert.Equal(t, 75, got.Progress)
	assert.Equal(t, StatusInProgress, got.Status)

	got = ApplyFocusSession(Task{Progress: 100, Status: StatusPending})
	assert.Equal(t, 100, got.Progress)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestDraftValidate(t *testing.T) {
	assert.NoError(t, TaskDraft{Title: "ok"}.Validate())
	assert.ErrorIs(t, TaskDraft{}.Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, TaskDraft{Title: "x", Progress: -1}.Validate(), ErrInvalidProgress)
	assert.NoError(t, TodoDraft{Title: "ok", Recurrence: RecurrenceWeekly}.Validate())
	assert.ErrorIs(t, TodoDraft{Title: "\t"}.Validate(), ErrEmptyTitle)
}

func TestGrouping(t *testing.T) {
	tasks := []Task{
		{ID: "1", Status: StatusPending},
		{ID: "2", Status: StatusCompleted},
		{ID: "3", Status: StatusPending},
	}
	pending := TasksWithStatus(tasks, StatusPending)
	require.Len(t, pending, 2)
	assert.Equal(t, "1", pending[0].ID)
	assert.Equal(t, "3", pending[1].ID)
	assert.Empty(t, TasksWithStatus(tasks, StatusInProgress))

	todos := []Todo{
		{ID: "a", Recurrence: RecurrenceDaily},
		{ID: "b", Completed: true},
		{ID: "c", Recurrence: RecurrenceDaily, Completed: true},
	}
	assert.Len(t, TodosWithRecurrence(todos, RecurrenceDaily), 2)
	assert.Len(t, TodosWithRecurrence(todos, RecurrenceNone), 1)
	assert.Len(t, TodosWithCompletion(todos, true), 2)
	assert.Len(t, TodosWithCompletion(todos, false), 1)
}

func TestCreatedAtKeepsThreeFractionalDigits(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), "2026-03-01T09:30:00.000Z"},
		{time.Date(2026, 3, 1, 9, 30, 0, 100_000_000, time.UTC), "2026-03-01T09:30:00.100Z"},
		{time.Date(2026, 3, 1, 11, 30, 0, 123_000_000, time.FixedZone("CEST", 2*3600)), "2026-03-01T09:30:00.123Z"},
	}
	for _, tt := range tests {
		task, err := json.Marshal(Task{ID: "a", Title: "t", Status: StatusPending, Priority: PriorityLow, CreatedAt: tt.at})
		require.NoError(t, err)
		assert.Contains(t, string(task), `"createdAt":"`+tt.want+`"`)
		assert.Equal(t, 1, strings.Count(string(task), "createdAt"))

		item, err := json.Marshal(Todo{ID: "b", Title: "t", Priority: PriorityLow, CreatedAt: tt.at})
		require.NoError(t, err)
		assert.Contains(t, string(item), `"createdAt":"`+tt.want+`"`)

		var back Todo
		require.NoError(t, json.Unmarshal(item, &back))
		assert.True(t, tt.at.Equal(back.CreatedAt))
	}
}
