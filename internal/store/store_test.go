package store_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MihkelHunter/taskflow/internal/store"
	"github.com/MihkelHunter/taskflow/internal/todo"
)

var (
	_ todo.Storage = (*store.SQLiteStore)(nil)
	_ todo.Storage = (*store.Memory)(nil)
)

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "nested", "taskflow.db"))
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get(todo.TasksKey)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSQLiteStore_SetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")
	s, err := store.New(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("tasks", []byte(`[]`)))
	require.NoError(t, s.Set("tasks", []byte(`[{"id":"a"}]`)))
	require.NoError(t, s.Set("todos", []byte(`[]`)))
	require.NoError(t, s.Close())

	reopened, err := store.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("tasks")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"a"}]`, string(v))
	assert.Equal(t, path, reopened.Path())
}

func TestSQLiteStore_ServiceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")
	s, err := store.New(path)
	require.NoError(t, err)

	svc := todo.NewService(s)
	task, err := svc.AddTask(todo.TaskDraft{Title: "Write report", Priority: todo.PriorityHigh, Progress: 40})
	require.NoError(t, err)
	item, err := svc.AddTodo(todo.TodoDraft{Title: "Standup", Recurrence: todo.RecurrenceDaily})
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	s2, err := store.New(path)
	require.NoError(t, err)
	svc2 := todo.NewService(s2)
	defer svc2.Close()

	assert.Equal(t, []todo.Task{task}, svc2.Tasks())
	assert.Equal(t, []todo.Todo{item}, svc2.Todos())
}

func TestMemory_ClonesValues(t *testing.T) {
	m := store.NewMemory()
	buf := []byte(`[1]`)
	require.NoError(t, m.Set("k", buf))
	buf[1] = '2'

	v, ok, err := m.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1]`, string(v))
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taskflow.db")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	w, err := store.NewWatcher(path, 20*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	w.Start(ctx, func() { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(path+"-wal", []byte("z"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
