package focus

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Event is a snapshot of the countdown, delivered on every tick and on
// completion.
type Event struct {
	TaskID    string  `json:"taskId"`
	Minutes   int     `json:"minutes"`
	Remaining int     `json:"remaining"`
	Total     int     `json:"total"`
	Progress  float64 `json:"progress"`
	Running   bool    `json:"running"`
}

// Clock renders the remaining time as mm:ss.
func (e Event) Clock() string {
	return FormatClock(e.Remaining)
}

// Controller owns one Timer and the single active task it is timing. While a
// countdown runs, one goroutine receives ticks; pausing, resetting, switching
// tasks, completion and context cancellation all end that goroutine and stop
// its ticker.
type Controller struct {
	clock      Clock
	interval   time.Duration
	logger     *log.Logger
	onTick     func(Event)
	onComplete func(Event)

	mu     sync.Mutex
	timer  *Timer
	taskID string
	stop   chan struct{}
	done   chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithInterval changes the tick period. Each tick still counts as one second
// of the countdown.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// OnTick registers a callback run on the countdown goroutine after each tick.
func OnTick(fn func(Event)) Option {
	return func(c *Controller) { c.onTick = fn }
}

// OnComplete registers a callback run once per finished countdown. The event
// carries the task that was active when it finished.
func OnComplete(fn func(Event)) Option {
	return func(c *Controller) { c.onComplete = fn }
}

func NewController(clock Clock, minutes int, opts ...Option) (*Controller, error) {
	timer, err := NewTimer(minutes)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		clock:    clock,
		interval: time.Second,
		logger:   log.Default(),
		timer:    timer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Activate makes taskID the timed task, stopping and rewinding any countdown
// that belonged to the previous one.
func (c *Controller) Activate(taskID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.taskID != "" && c.taskID != taskID {
		c.logger.Debug("focus superseded", "previous", c.taskID, "task", taskID)
	}
	c.stopLocked()
	c.taskID = taskID
	c.timer.Reset()
}

// Deactivate clears the active task and rewinds the timer.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopLocked()
	c.taskID = ""
	c.timer.Reset()
}

// Active returns the timed task id, or "" when none is active.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taskID
}

// Start begins counting down for the active task. It is a no-op when already
// running or when no time is left.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(ctx)
}

func (c *Controller) startLocked(ctx context.Context) error {
	if c.taskID == "" {
		return ErrNoActiveTask
	}
	if c.stop != nil || !c.timer.Start() {
		return nil
	}

	ticker := c.clock.NewTicker(c.interval)
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop = stop
	c.done = done
	go c.run(ctx, ticker, stop, done)
	return nil
}

// Pause stops the countdown, keeping the remaining time.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.Pause()
	c.stopLocked()
}

// Toggle pauses a running countdown or starts a stopped one.
func (c *Controller) Toggle(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer.Running() {
		c.timer.Pause()
		c.stopLocked()
		return nil
	}
	return c.startLocked(ctx)
}

// Reset stops the countdown and rewinds it to the full duration.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.timer.Reset()
}

// SetDuration changes the countdown length. It fails while running.
func (c *Controller) SetDuration(minutes int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return ErrRunning
	}
	return c.timer.SetDuration(minutes)
}

// Snapshot returns the current countdown state.
func (c *Controller) Snapshot() Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until the most recent countdown goroutine has exited. It must
// not be called from OnTick or OnComplete.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (c *Controller) snapshotLocked() Event {
	return Event{
		TaskID:    c.taskID,
		Minutes:   c.timer.Minutes(),
		Remaining: c.timer.Remaining(),
		Total:     c.timer.Total(),
		Progress:  c.timer.Progress(),
		Running:   c.timer.Running(),
	}
}

func (c *Controller) stopLocked() {
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
	}
}

func (c *Controller) run(ctx context.Context, ticker Ticker, stop, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return

		case <-ctx.Done():
			c.mu.Lock()
			if c.stop == stop {
				c.timer.Pause()
				c.stop = nil
			}
			c.mu.Unlock()
			return

		case <-ticker.C():
			ev, completed, current := c.advance(stop)
			if !current {
				return
			}
			if c.onTick != nil {
				c.onTick(ev)
			}
			if completed {
				c.logger.Info("focus session complete", "task", ev.TaskID, "minutes", ev.Minutes)
				if c.onComplete != nil {
					c.onComplete(ev)
				}
				return
			}
		}
	}
}

// advance ticks the timer if stop still belongs to the live run. Completion
// clears the active task.
func (c *Controller) advance(stop chan struct{}) (Event, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != stop {
		return Event{}, false, false
	}
	completed := c.timer.Tick()
	ev := c.snapshotLocked()
	if completed {
		c.stop = nil
		c.taskID = ""
	}
	return ev, completed, true
}
