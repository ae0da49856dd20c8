package todo

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Storage keys for the two collections. Each holds a JSON array.
const (
	TasksKey = "tasks"
	TodosKey = "todos"
)

// Storage is the persistence contract. Get reports ok=false when the key has
// never been written. Any backend (SQLite, memory) must satisfy it.
type Storage interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Close() error
}

// Service owns the task and todo collections. Every mutation rewrites the
// affected collection in full; the two collections persist independently.
type Service struct {
	storage Storage
	logger  *log.Logger
	now     func() time.Time
	newID   func() string

	mu    sync.RWMutex
	tasks []Task
	todos []Todo
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock replaces the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces UUID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService loads both collections from storage. Missing or malformed data
// yields empty collections; it never fails.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		logger:  log.Default(),
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reload()
	return s
}

// Reload replaces the in-memory collections with what storage holds now.
// Long-lived callers sharing a database with other processes reload before
// mutating so a full rewrite does not drop records written elsewhere. The
// lock is held across the reads so no local mutation lands in between.
func (s *Service) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = loadCollection(s.storage, TasksKey, s.logger, validStoredTask)
	s.todos = loadCollection(s.storage, TodosKey, s.logger, validStoredTodo)
}

// Close closes the underlying storage.
func (s *Service) Close() error {
	return s.storage.Close()
}

// ── Tasks ────────────────────────────────────────────────────────────────────

// Tasks returns a copy of the task collection in insertion order.
func (s *Service) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Task looks up a task by id.
func (s *Service) Task(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// AddTask assigns an id and creation time to d, appends it and persists.
func (s *Service) AddTask(d TaskDraft) (Task, error) {
	d = d.withDefaults()
	if err := d.Validate(); err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		Progress:    d.Progress,
		CreatedAt:   s.now(),
	}
	s.tasks = append(s.tasks, t)
	s.persistTasks()
	return t, nil
}

// UpdateTask replaces the task with the same id. An unknown id is a no-op.
// The stored creation time is kept.
func (s *Service) UpdateTask(t Task) error {
	_, _, err := s.ReplaceTask(t)
	return err
}

// ReplaceTask is UpdateTask that also returns the stored result. ok is false
// when no task has t.ID.
func (s *Service) ReplaceTask(t Task) (Task, bool, error) {
	if err := t.Validate(); err != nil {
		return Task{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(t.ID)
	if i < 0 {
		return Task{}, false, nil
	}
	t.CreatedAt = s.tasks[i].CreatedAt
	s.tasks[i] = t
	s.persistTasks()
	return t, true, nil
}

// SetTaskStatus changes only the status of a task. Progress is left alone.
func (s *Service) SetTaskStatus(id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Status = status
	s.persistTasks()
	return nil
}

// CompleteFocusSession credits a finished focus session to the task with id.
func (s *Service) CompleteFocusSession(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return Task{}, false
	}
	s.tasks[i] = ApplyFocusSession(s.tasks[i])
	s.persistTasks()
	return s.tasks[i], true
}

// DeleteTask removes the task with id if present.
func (s *Service) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.persistTasks()
}

func (s *Service) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Service) persistTasks() {
	saveCollection(s.storage, TasksKey, s.tasks, s.logger)
}

// ── Todos ────────────────────────────────────────────────────────────────────

// Todos returns a copy of the todo collection in insertion order.
func (s *Service) Todos() []Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.todos)
}

func (s *Service) Todo(id string) (Todo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.todoIndex(id); i >= 0 {
		return s.todos[i], true
	}
	return Todo{}, false
}

func (s *Service) AddTodo(d TodoDraft) (Todo, error) {
	d = d.withDefaults()
	if err := d.Validate(); err != nil {
		return Todo{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Todo{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    d.Priority,
		Recurrence:  d.Recurrence,
		CreatedAt:   s.now(),
	}
	s.todos = append(s.todos, t)
	s.persistTodos()
	return t, nil
}

// UpdateTodo replaces the todo with the same id. An unknown id is a no-op.
func (s *Service) UpdateTodo(t Todo) error {
	_, _, err := s.ReplaceTodo(t)
	return err
}

func (s *Service) ReplaceTodo(t Todo) (Todo, bool, error) {
	if err := t.Validate(); err != nil {
		return Todo{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(t.ID)
	if i < 0 {
		return Todo{}, false, nil
	}
	t.CreatedAt = s.todos[i].CreatedAt
	s.todos[i] = t
	s.persistTodos()
	return t, true, nil
}

// ToggleTodo flips the completed flag of the todo with id.
func (s *Service) ToggleTodo(id string) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(id)
	if i < 0 {
		return Todo{}, false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.persistTodos()
	return s.todos[i], true
}

func (s *Service) DeleteTodo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.todoIndex(id)
	if i < 0 {
		return
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	s.persistTodos()
}

func (s *Service) todoIndex(id string) int {
	return slices.IndexFunc(s.todos, func(t Todo) bool { return t.ID == id })
}

func (s *Service) persistTodos() {
	saveCollection(s.storage, TodosKey, s.todos, s.logger)
}

// ── Persistence ──────────────────────────────────────────────────────────────

func validStoredTask(t Task) error {
	if t.ID == "" {
		return fmt.Errorf("missing id")
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(t.Priority))
	}
	return validateProgress(t.Progress)
}

func validStoredTodo(t Todo) error {
	if t.ID == "" {
		return fmt.Errorf("missing id")
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(t.Priority))
	}
	return nil
}

// loadCollection decodes the JSON array under key. A payload that is not an
// array gives an empty collection; records that do not decode or validate are
// skipped one by one.
func loadCollection[T any](storage Storage, key string, logger *log.Logger, valid func(T) error) []T {
	items := []T{}

	raw, ok, err := storage.Get(key)
	if err != nil {
		logger.Warn("read collection failed, starting empty", "key", key, "err", err)
		return items
	}
	if !ok {
		return items
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Warn("malformed collection, starting empty", "key", key, "err", err)
		return items
	}

	for i, rec := range records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			logger.Warn("skipping malformed record", "key", key, "index", i, "err", err)
			continue
		}
		if err := valid(item); err != nil {
			logger.Warn("skipping invalid record", "key", key, "index", i, "err", err)
			continue
		}
		items = append(items, item)
	}
	return items
}

// saveCollection writes the whole collection. Failures are logged and the
// in-memory state stays authoritative for the session.
func saveCollection[T any](storage Storage, key string, items []T, logger *log.Logger) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		logger.Error("encode collection", "key", key, "err", err)
		return
	}
	if err := storage.Set(key, data); err != nil {
		logger.Error("persist collection", "key", key, "err", err)
	}
}
