package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_FullRunCompletesOnce(t *testing.T) {
	timer, err := NewTimer(25)
	require.NoError(t, err)
	require.True(t, timer.Start())

	completions, zeroes := 0, 0
	for range 1500 {
		if timer.Tick() {
			completions++
		}
		if timer.Remaining() == 0 {
			zeroes++
		}
	}

	assert.Equal(t, 1, completions)
	assert.Equal(t, 1, zeroes)
	assert.False(t, timer.Running())
	assert.Equal(t, 0.0, timer.Progress())

	// Extra ticks after completion change nothing.
	for range 10 {
		assert.False(t, timer.Tick())
	}
	assert.Equal(t, 0, timer.Remaining())
}

func TestTimer_StartRequiresTimeLeft(t *testing.T) {
	timer, err := NewTimer(5)
	require.NoError(t, err)
	require.True(t, timer.Start())
	for range 300 {
		timer.Tick()
	}

	assert.False(t, timer.Start())
	assert.False(t, timer.Toggle())
	assert.False(t, timer.Running())

	timer.Reset()
	assert.Equal(t, 300, timer.Remaining())
	assert.True(t, timer.Start())
}

func TestTimer_PauseAndToggle(t *testing.T) {
	timer, _ := NewTimer(5)
	timer.Start()
	timer.Tick()
	timer.Tick()

	assert.False(t, timer.Toggle())
	assert.False(t, timer.Tick(), "paused timer ignores ticks")
	assert.Equal(t, 298, timer.Remaining())

	assert.True(t, timer.Toggle())
	timer.Tick()
	assert.Equal(t, 297, timer.Remaining())
	assert.Equal(t, "04:57", timer.Clock())
}

func TestTimer_SetDuration(t *testing.T) {
	timer, _ := NewTimer(25)

	require.NoError(t, timer.SetDuration(45))
	assert.Equal(t, 45*60, timer.Remaining())
	assert.Equal(t, 100.0, timer.Progress())

	for _, bad := range []int{0, 4, 7, 65} {
		assert.ErrorIs(t, timer.SetDuration(bad), ErrInvalidDuration, bad)
	}

	timer.Start()
	assert.ErrorIs(t, timer.SetDuration(30), ErrRunning)
	assert.Equal(t, 45, timer.Minutes())
}

func TestNewTimer_RejectsInvalid(t *testing.T) {
	_, err := NewTimer(3)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "00:09", FormatClock(9))
	assert.Equal(t, "60:00", FormatClock(3600))
	assert.Equal(t, "00:00", FormatClock(-3))
}

func TestTimer_ProgressMidway(t *testing.T) {
	timer, _ := NewTimer(10)
	timer.Start()
	for range 150 {
		timer.Tick()
	}
	assert.InDelta(t, 75.0, timer.Progress(), 1e-9)
}
