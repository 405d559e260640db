package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecofun-kids/ecofun/internal/storage"
)

func TestScoreboardTabs(t *testing.T) {
	store := newTestStore(t)
	_, err := store.SaveRound(storage.ScoreEntry{GameID: "fallblock", Player: "mia", Score: 700, Lines: 9, Outcome: "lost"})
	require.NoError(t, err)
	_, err = store.AddPoints("leo", 310, "fallblock", "")
	require.NoError(t, err)

	m := NewScoreboardModel(store, 100, 30, "mia")
	require.GreaterOrEqual(t, len(m.tabs), 2)
	assert.False(t, m.tabs[0].leaders())
	assert.True(t, m.tabs[len(m.tabs)-1].leaders(), "points board comes last")

	view := m.View()
	assert.Contains(t, view, "mia")
	assert.Contains(t, view, "700")

	for range len(m.tabs) - 1 {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(ScoreboardModel)
	}
	assert.True(t, m.tabs[m.current].leaders())
	assert.Contains(t, m.View(), "leo")
	assert.Contains(t, m.View(), "310")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Equal(t, 0, m.current, "tabs wrap around")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	assert.True(t, m.tabs[m.current].leaders())
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24, "")
	assert.Contains(t, m.View(), "No rounds recorded yet.")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24, "")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	assert.True(t, m.IsGoingBack())
	assert.False(t, m.IsQuitting())

	m = NewScoreboardModel(nil, 80, 24, "")
	next, _ = m.Update(runeKey('q'))
	m = next.(ScoreboardModel)
	assert.True(t, m.IsQuitting())
}
