package main

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/sentry/levels"
)

func TestFailedResetKeepsSceneAndRetries(t *testing.T) {
	g, err := NewGame(levels.DefaultLevel, false, log.New(io.Discard))
	require.NoError(t, err)
	before := g.scene

	// A level that no longer loads, as after a broken edit.
	g.levelName = "missing"
	g.ResetCurrentLevel()
	g.reload()

	require.Error(t, g.resetErr)
	assert.Same(t, before, g.scene)
	assert.Zero(t, g.resets)
	assert.Contains(t, g.hud(60), "RESET FAILED")
	assert.Contains(t, g.hud(60), "R to retry")

	// Fixed: the next reset goes through and the notice clears.
	g.levelName = levels.DefaultLevel
	g.reload()
	require.NoError(t, g.resetErr)
	assert.NotSame(t, before, g.scene)
	assert.Equal(t, 1, g.resets)
	assert.NotContains(t, g.hud(60), "RESET FAILED")
}

func TestHotEditRetriesFailedReset(t *testing.T) {
	g, err := NewGame(levels.DefaultLevel, false, log.New(io.Discard))
	require.NoError(t, err)

	g.levelName = "missing"
	g.reload()
	require.Error(t, g.resetErr)

	g.noteChanges(nil)
	assert.False(t, g.resetPending)

	g.levelName = levels.DefaultLevel
	g.noteChanges([]string{"levels/courtyard.yaml"})
	require.True(t, g.resetPending)
	g.reload()
	assert.NoError(t, g.resetErr)
	assert.Equal(t, 1, g.resets)
}
