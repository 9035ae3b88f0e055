package clipboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct {
	text string
}

func (c *memClipboard) ReadAll() (string, error) { return c.text, nil }
func (c *memClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}
func (c *memClipboard) Clear() error {
	c.text = ""
	return nil
}

// manualClock keeps the last scheduled callback for the test to run
type manualClock struct {
	f func()
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.f = f
	return manualTimer{}
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return false }

// Flush samples the generation, releases the lock, then fires. The timer
// may run the clear in between; the late fire must then report no work.
func TestFireAfterTimerWonReportsNothingDone(t *testing.T) {
	t.Parallel()

	clip := &memClipboard{}
	clock := &manualClock{}
	var cleared int
	m := New(Options{
		Clipboard: clip,
		Clock:     clock,
		Notifier: NotifierFunc(func(e Event) {
			if e.Kind == EventCleared {
				cleared++
			}
		}),
	})

	require.NoError(t, m.Copy("P@ss1", true, time.Second))

	m.mu.Lock()
	gen := m.gen
	m.mu.Unlock()

	clock.f()
	assert.Equal(t, 1, cleared)
	assert.Empty(t, clip.text)

	assert.False(t, m.fire(gen))
	assert.False(t, m.Flush())
	assert.Equal(t, 1, cleared)
}

func TestFlushReportsClear(t *testing.T) {
	t.Parallel()

	clip := &memClipboard{}
	m := New(Options{Clipboard: clip, Clock: &manualClock{}})

	require.NoError(t, m.Copy("P@ss1", true, time.Second))
	assert.True(t, m.Flush())
	assert.Empty(t, clip.text)
	assert.Equal(t, StateIdle, m.State())
}
