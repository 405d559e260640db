package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ecofun-kids/ecofun/internal/games/fallblock"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	require.True(t, ok, "Update returned %T", next)
	return sm, cmd
}

func TestSessionFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	store := newTestStore(t)
	_, err := store.AddPoints("mia", 40, "fallblock", "s1")
	require.NoError(t, err)

	m := NewSessionModel(store, testConfig(), HostOptions{Player: "mia"})
	assert.Contains(t, m.View(), "mia has 40 EcoFun points")

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenPreset, m.screen)
	assert.Contains(t, m.View(), "How fast should the blocks fall?")

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, m.screen)
	assert.NotNil(t, cmd, "game starts ticking")

	// Back only works once the game is paused.
	m, _ = sessionUpdate(t, m, runeKey('p'))
	m, _ = sessionUpdate(t, m, TickMsg{})
	assert.True(t, m.gameModel.State().Paused)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = sessionUpdate(t, m, TickMsg{})
	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, m.quitting)
}

func TestSessionPresetBack(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), HostOptions{})

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenPreset, m.screen)

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(newTestStore(t), testConfig(), HostOptions{Player: "mia"})

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, screenScoreboard, m.screen)
	assert.NotEmpty(t, m.View())

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, m.screen)
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), HostOptions{})

	m, cmd := sessionUpdate(t, m, runeKey('q'))
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestSessionTracksWindowSize(t *testing.T) {
	m := NewSessionModel(nil, testConfig(), HostOptions{})

	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.config.ScreenW)
	assert.Equal(t, 40, m.config.ScreenH)
}
