package focus

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { f.stopped.Store(true) }

// tick blocks until the countdown goroutine receives the tick.
func (f *fakeTicker) tick(t *testing.T) {
	t.Helper()
	select {
	case f.ch <- time.Time{}:
	case <-time.After(2 * time.Second):
		t.Fatal("tick not received")
	}
}

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *fakeClock) NewTicker(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	tk := &fakeTicker{ch: make(chan time.Time)}
	f.tickers = append(f.tickers, tk)
	return tk
}

func (f *fakeClock) last(t *testing.T) *fakeTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.tickers)
	return f.tickers[len(f.tickers)-1]
}

func (f *fakeClock) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func newTestController(t *testing.T, clock Clock, minutes int, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(&bytes.Buffer{}))}, opts...)
	c, err := NewController(clock, minutes, opts...)
	require.NoError(t, err)
	return c
}

func TestController_CompletionFiresOncePerRun(t *testing.T) {
	clock := &fakeClock{}
	var ticks atomic.Int32
	completions := make(chan Event, 4)
	c := newTestController(t, clock, 25,
		OnTick(func(Event) { ticks.Add(1) }),
		OnComplete(func(ev Event) { completions <- ev }),
	)

	c.Activate("task-1")
	require.NoError(t, c.Start(context.Background()))
	tk := clock.last(t)
	for range 1500 {
		tk.tick(t)
	}
	c.Wait()

	require.Len(t, completions, 1)
	ev := <-completions
	assert.Equal(t, "task-1", ev.TaskID)
	assert.Equal(t, 0, ev.Remaining)
	assert.False(t, ev.Running)
	assert.Equal(t, int32(1500), ticks.Load())
	assert.True(t, tk.stopped.Load(), "ticker released after completion")

	snap := c.Snapshot()
	assert.Empty(t, snap.TaskID, "completion clears the active task")
	assert.False(t, snap.Running)

	select {
	case tk.ch <- time.Time{}:
		t.Fatal("tick delivered after completion")
	case <-time.After(20 * time.Millisecond):
	}

	assert.ErrorIs(t, c.Start(context.Background()), ErrNoActiveTask)

	// A new run completes independently.
	c.Activate("task-1")
	require.NoError(t, c.SetDuration(5))
	require.NoError(t, c.Start(context.Background()))
	tk2 := clock.last(t)
	for range 300 {
		tk2.tick(t)
	}
	c.Wait()
	assert.Len(t, completions, 1)
}

func TestController_ActivateSupersedesPreviousTask(t *testing.T) {
	clock := &fakeClock{}
	c := newTestController(t, clock, 5)

	c.Activate("a")
	require.NoError(t, c.Start(context.Background()))
	tkA := clock.last(t)
	tkA.tick(t)
	tkA.tick(t)

	c.Activate("b")
	assert.Eventually(t, tkA.stopped.Load, time.Second, time.Millisecond)

	snap := c.Snapshot()
	assert.Equal(t, "b", snap.TaskID)
	assert.Equal(t, 300, snap.Remaining)
	assert.False(t, snap.Running)
	assert.Equal(t, "b", c.Active())
}

func TestController_PauseKeepsRemainingAndReleasesTicker(t *testing.T) {
	clock := &fakeClock{}
	c := newTestController(t, clock, 5)
	c.Activate("a")
	require.NoError(t, c.Start(context.Background()))

	tk := clock.last(t)
	for range 10 {
		tk.tick(t)
	}
	require.Eventually(t, func() bool { return c.Snapshot().Remaining == 290 }, time.Second, time.Millisecond)

	c.Pause()
	assert.Eventually(t, tk.stopped.Load, time.Second, time.Millisecond)
	assert.Equal(t, 290, c.Snapshot().Remaining)
	assert.False(t, c.Snapshot().Running)

	require.NoError(t, c.Toggle(context.Background()))
	assert.Equal(t, 2, clock.count())
	assert.True(t, c.Snapshot().Running)

	require.NoError(t, c.Toggle(context.Background()))
	assert.Eventually(t, clock.last(t).stopped.Load, time.Second, time.Millisecond)
}

func TestController_ResetRewinds(t *testing.T) {
	clock := &fakeClock{}
	c := newTestController(t, clock, 5)
	c.Activate("a")
	require.NoError(t, c.Start(context.Background()))
	tk := clock.last(t)
	tk.tick(t)

	c.Reset()
	assert.Eventually(t, tk.stopped.Load, time.Second, time.Millisecond)
	snap := c.Snapshot()
	assert.Equal(t, 300, snap.Remaining)
	assert.Equal(t, 100.0, snap.Progress)
	assert.Equal(t, "a", snap.TaskID)
}

func TestController_ContextCancelReleasesTicker(t *testing.T) {
	clock := &fakeClock{}
	c := newTestController(t, clock, 5)
	c.Activate("a")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, c.Start(ctx))
	tk := clock.last(t)

	cancel()
	c.Wait()
	assert.True(t, tk.stopped.Load())
	assert.False(t, c.Snapshot().Running)

	// Stopped by cancellation, so the duration can change again.
	require.NoError(t, c.SetDuration(10))
}

func TestController_SetDurationWhileRunning(t *testing.T) {
	clock := &fakeClock{}
	c := newTestController(t, clock, 5)
	c.Activate("a")
	require.NoError(t, c.Start(context.Background()))

	assert.ErrorIs(t, c.SetDuration(30), ErrRunning)
	c.Deactivate()
	c.Wait()

	require.NoError(t, c.SetDuration(30))
	assert.Equal(t, 1800, c.Snapshot().Remaining)
	assert.Empty(t, c.Active())
}

func TestController_StartIsIdempotent(t *testing.T) {
	clock := &fakeClock{}
	c := newTestController(t, clock, 5)
	c.Activate("a")
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, 1, clock.count())
	c.Deactivate()
	c.Wait()
}

func TestController_RealClock(t *testing.T) {
	done := make(chan Event, 1)
	c := newTestController(t, RealClock(), 5,
		WithInterval(time.Microsecond),
		OnComplete(func(ev Event) { done <- ev }),
	)
	c.Activate("a")
	require.NoError(t, c.Start(context.Background()))

	select {
	case ev := <-done:
		assert.Equal(t, "a", ev.TaskID)
	case <-time.After(10 * time.Second):
		t.Fatal("countdown did not finish")
	}
}
