package commands

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCommand_SetCopyQuit(t *testing.T) {
	env := newTestEnv(t)

	script := "set\nP@ss1\ncopy keep\nstatus\nquit\n"
	out, err := execute(NewSessionCommand(env.cfg, env.open), script)
	require.NoError(t, err)

	assert.Equal(t, "P@ss1", env.clip.Text())
	assert.Contains(t, out, "password: set")
	assert.Contains(t, out, "remembered: false")
}

func TestSessionCommand_QuitFlushesPendingCopy(t *testing.T) {
	env := newTestEnv(t)

	script := "set remember\nP@ss1\ncopy 60\nquit\n"
	_, err := execute(NewSessionCommand(env.cfg, env.open), script)
	require.NoError(t, err)

	assert.Empty(t, env.clip.Text())
	assert.Equal(t, []string{"P@ss1", ""}, env.clip.Writes)
	assert.True(t, env.status(t).Remembered)
}

func TestSessionCommand_EOFFlushesPendingCopy(t *testing.T) {
	env := newTestEnv(t)

	_, err := execute(NewSessionCommand(env.cfg, env.open), "set\nP@ss1\ncopy 3\n")
	require.NoError(t, err)
	assert.Empty(t, env.clip.Text())
}

func TestSessionCommand_ClearFiresWhileWaitingForInput(t *testing.T) {
	env := newTestEnv(t)
	in, feed := io.Pipe()

	cmd := NewSessionCommand(env.cfg, env.open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(in)
	cmd.SetArgs(nil)

	done := make(chan error, 1)
	go func() { done <- cmd.Execute() }()

	_, err := io.WriteString(feed, "set\nP@ss1\ncopy 3\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return env.clock.Pending() == 1 }, 5*time.Second, 10*time.Millisecond)

	env.clock.Advance(3 * time.Second)
	assert.Empty(t, env.clip.Text())

	require.NoError(t, feed.Close())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end at EOF")
	}
}

func TestSessionCommand_ErrorsDoNotEndSession(t *testing.T) {
	env := newTestEnv(t)

	script := "copy\nbogus\ncopy 1000\nset\n\nset\nP@ss1\ncopy keep\nquit\n"
	_, err := execute(NewSessionCommand(env.cfg, env.open), script)
	require.NoError(t, err)

	logs := env.logs.GetOutput()
	assert.Contains(t, logs, "No password is set")
	assert.Contains(t, logs, "Unknown command")
	assert.Contains(t, logs, "Invalid delay")
	assert.Contains(t, logs, "cannot be empty")
	assert.Equal(t, "P@ss1", env.clip.Text())
}

func TestSessionCommand_ClearMemoryKeepsRecord(t *testing.T) {
	env := newTestEnv(t)

	script := "set remember\nP@ss1\nclear-memory\ncopy keep\nquit\n"
	_, err := execute(NewSessionCommand(env.cfg, env.open), script)
	require.NoError(t, err)

	// The remembered record is reloaded on demand.
	assert.Equal(t, "P@ss1", env.clip.Text())
}
