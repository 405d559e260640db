package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecofun-kids/ecofun/internal/core"
	"github.com/ecofun-kids/ecofun/internal/registry"
	"github.com/ecofun-kids/ecofun/internal/storage"
)

// scriptedGame finishes or asks to leave when the test says so.
type scriptedGame struct {
	state  core.GameState
	hooks  registry.Hooks
	total  int
	resets int
	resize int
}

func (g *scriptedGame) ID() string                { return "scripted" }
func (g *scriptedGame) Title() string             { return "Scripted" }
func (g *scriptedGame) State() core.GameState     { return g.state }
func (g *scriptedGame) SetHooks(h registry.Hooks) { g.hooks = h }
func (g *scriptedGame) Resize(w, h int)           { g.resize++ }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Level: 1}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawTextColored(0, 0, "scripted", core.ColorGreen)
}

func (g *scriptedGame) finish(score, lines int) {
	g.state = core.GameState{Score: score, Level: 2, Lines: lines, GameOver: true}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	if g.state.Finished() {
		switch {
		case in.Has(core.ActionConfirm) && g.hooks.OnComplete != nil:
			g.hooks.OnComplete(g.total)
		case in.Has(core.ActionBack) && g.hooks.OnBack != nil:
			g.hooks.OnBack()
		case in.Has(core.ActionRestart):
			g.Reset(core.RuntimeConfig{})
		}
	}
	return core.StepResult{State: g.state}
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "ecofun.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok, "Update returned %T", next)
	return gm, cmd
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func TestGameModelSavesFinishedRoundOnce(t *testing.T) {
	store := newTestStore(t)
	game := &scriptedGame{}
	m := NewGameModel(game, store, testConfig(), HostOptions{Player: "mia"})
	m.Init()

	m, _ = update(t, m, TickMsg{})
	game.finish(300, 7)
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})

	scores, err := store.AllScores("scripted")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "mia", scores[0].Player)
	assert.Equal(t, 300, scores[0].Score)
	assert.Equal(t, 7, scores[0].Lines)
	assert.Equal(t, "lost", scores[0].Outcome)
	assert.Equal(t, m.SessionID(), scores[0].SessionID)
}

func TestGameModelAwardsPointsOnConfirm(t *testing.T) {
	store := newTestStore(t)
	game := &scriptedGame{total: 420}
	m := NewGameModel(game, store, testConfig(), HostOptions{Player: "mia"})
	m.Init()

	game.finish(300, 7)
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})

	total, err := store.TotalPoints("mia")
	require.NoError(t, err)
	assert.Equal(t, 420, total)

	history, err := store.PointsHistory("mia", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "scripted", history[0].Source)
	assert.Equal(t, m.SessionID(), history[0].SessionID)
}

func TestGameModelWithoutPlayerSkipsLedger(t *testing.T) {
	store := newTestStore(t)
	game := &scriptedGame{total: 100}
	m := NewGameModel(game, store, testConfig(), HostOptions{})
	m.Init()

	game.finish(50, 1)
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	update(t, m, TickMsg{})

	leaders, err := store.PointsLeaders(10)
	require.NoError(t, err)
	assert.Empty(t, leaders)
}

func TestGameModelRestartStartsNewSession(t *testing.T) {
	store := newTestStore(t)
	game := &scriptedGame{}
	m := NewGameModel(game, store, testConfig(), HostOptions{Player: "mia"})
	m.Init()

	game.finish(10, 0)
	m, _ = update(t, m, TickMsg{})
	first := m.SessionID()

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	assert.NotEqual(t, first, m.SessionID())

	game.finish(20, 1)
	update(t, m, TickMsg{})

	scores, err := store.AllScores("scripted")
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestGameModelBack(t *testing.T) {
	game := &scriptedGame{}
	m := NewGameModel(game, nil, testConfig(), HostOptions{})
	m.Init()

	game.finish(10, 0)
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, cmd := update(t, m, TickMsg{})

	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
	assert.Nil(t, cmd, "ticks stop once the game is left")
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&scriptedGame{}, nil, testConfig(), HostOptions{})
	m.Init()

	m, cmd := update(t, m, runeKey('q'))
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestGameModelResize(t *testing.T) {
	game := &scriptedGame{}
	m := NewGameModel(game, nil, testConfig(), HostOptions{})
	m.Init()
	resets := game.resets

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 1, game.resize)
	assert.Equal(t, resets, game.resets, "resizable games keep their round")
	assert.Contains(t, m.View(), "scripted")
}
