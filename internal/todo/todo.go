// Package todo defines the TaskFlow domain model and the collection service.
// The Storage interface is a plain key/value contract so the same Service runs
// on SQLite for the binaries and on an in-memory map in tests.
package todo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Priority levels shared by tasks and todos.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// Priorities returns every priority, most severe first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "None"
	}
}

// Valid reports whether p is one of the three known levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

// ParsePriority accepts a level name (low, medium, high) or its number (1, 2, 3).
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l", "1":
		return PriorityLow, nil
	case "medium", "med", "m", "2":
		return PriorityMedium, nil
	case "high", "h", "3":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// MarshalJSON writes the bare integer used by the persisted format.
func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return []byte(strconv.Itoa(int(p))), nil
}

// UnmarshalJSON rejects anything outside 1..3.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPriority, data)
	}
	if !Priority(n).Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, n)
	}
	*p = Priority(n)
	return nil
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses returns every status in board order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Label is the human-readable name of the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ParseStatus accepts the wire values plus a few spellings people type.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo":
		return StatusPending, nil
	case "in-progress", "in_progress", "inprogress", "progress", "doing":
		return StatusInProgress, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, data)
	}
	if !Status(raw).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	*s = Status(raw)
	return nil
}

// Recurrence classifies a todo. The zero value means one-time.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Recurrences returns every recurrence bucket, one-time last.
func Recurrences() []Recurrence {
	return []Recurrence{RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceNone}
}

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	default:
		return false
	}
}

func (r Recurrence) Label() string {
	switch r {
	case RecurrenceDaily:
		return "Daily"
	case RecurrenceWeekly:
		return "Weekly"
	case RecurrenceMonthly:
		return "Monthly"
	default:
		return "One-time"
	}
}

// ParseRecurrence maps "", "none" and "one-time" to RecurrenceNone.
func ParseRecurrence(s string) (Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "once", "one-time", "onetime":
		return RecurrenceNone, nil
	case "daily":
		return RecurrenceDaily, nil
	case "weekly":
		return RecurrenceWeekly, nil
	case "monthly":
		return RecurrenceMonthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRecurrence, s)
}

// MarshalJSON writes null for one-time todos.
func (r Recurrence) MarshalJSON() ([]byte, error) {
	if r == RecurrenceNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

// MarshalYAML writes null for one-time todos, matching the JSON form.
func (r Recurrence) MarshalYAML() (any, error) {
	if r == RecurrenceNone {
		return nil, nil
	}
	return string(r), nil
}

func (r *Recurrence) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = RecurrenceNone
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecurrence, data)
	}
	if raw == "" || !Recurrence(raw).Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, raw)
	}
	*r = Recurrence(raw)
	return nil
}

// Task is a trackable unit of work. Field names and JSON tags are the
// persisted wire format.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Status      Status    `json:"status" yaml:"status"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Progress    int       `json:"progress" yaml:"progress"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// TimestampLayout is how createdAt is persisted: UTC with exactly three
// fractional digits, the shape a browser's toISOString produces.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON writes createdAt in TimestampLayout.
func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
	}{plain(t), FormatTimestamp(t.CreatedAt)})
}

// Validate checks the editable fields of a full task record.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(t.Priority))
	}
	return validateProgress(t.Progress)
}

// SearchFields exposes the text matched by search filters.
func (t Task) SearchFields() (string, string) {
	return t.Title, t.Description
}

// TaskDraft is a task before the service assigns its id and creation time.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Progress    int      `json:"progress"`
}

func (d TaskDraft) withDefaults() TaskDraft {
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == 0 {
		d.Priority = PriorityLow
	}
	return d
}

// Validate applies the same defaults the service does and checks the result.
func (d TaskDraft) Validate() error {
	d = d.withDefaults()
	return Task{Title: d.Title, Status: d.Status, Priority: d.Priority, Progress: d.Progress}.Validate()
}

// Todo is a checklist item with an optional recurrence.
type Todo struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Completed   bool       `json:"completed" yaml:"completed"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Recurrence  Recurrence `json:"recurrence" yaml:"recurrence"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
}

// MarshalJSON writes createdAt in TimestampLayout.
func (t Todo) MarshalJSON() ([]byte, error) {
	type plain Todo
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
	}{plain(t), FormatTimestamp(t.CreatedAt)})
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(t.Priority))
	}
	if !t.Recurrence.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRecurrence, t.Recurrence)
	}
	return nil
}

func (t Todo) SearchFields() (string, string) {
	return t.Title, t.Description
}

// TodoDraft is a todo before the service assigns its id and creation time.
type TodoDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority,omitempty"`
	Recurrence  Recurrence `json:"recurrence"`
}

func (d TodoDraft) withDefaults() TodoDraft {
	if d.Priority == 0 {
		d.Priority = PriorityLow
	}
	return d
}

func (d TodoDraft) Validate() error {
	d = d.withDefaults()
	return Todo{Title: d.Title, Priority: d.Priority, Recurrence: d.Recurrence}.Validate()
}

func validateProgress(p int) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, p)
	}
	return nil
}

// FocusProgressStep is how far one finished focus session moves a task.
const FocusProgressStep = 25

// ApplyFocusSession credits one finished focus session to t. Progress is
// capped at 100 and reaching 100 marks the task completed. Manual status and
// progress edits never go through here and are not reconciled.
func ApplyFocusSession(t Task) Task {
	t.Progress = min(t.Progress+FocusProgressStep, 100)
	if t.Progress == 100 {
		t.Status = StatusCompleted
	}
	return t
}

// TasksWithStatus returns the tasks in status s, keeping their order.
func TasksWithStatus(tasks []Task, s Status) []Task {
	var out []Task
	for _, t := range tasks {
		if t.Status == s {
			out = append(out, t)
		}
	}
	return out
}

// TodosWithCompletion returns the todos whose completed flag equals done.
func TodosWithCompletion(todos []Todo, done bool) []Todo {
	var out []Todo
	for _, t := range todos {
		if t.Completed == done {
			out = append(out, t)
		}
	}
	return out
}

// TodosWithRecurrence returns the todos in recurrence bucket r.
func TodosWithRecurrence(todos []Todo, r Recurrence) []Todo {
	var out []Todo
	for _, t := range todos {
		if t.Recurrence == r {
			out = append(out, t)
		}
	}
	return out
}
