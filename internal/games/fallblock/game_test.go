package fallblock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecofun-kids/ecofun/internal/config"
	"github.com/ecofun-kids/ecofun/internal/core"
	"github.com/ecofun-kids/ecofun/internal/registry"
)

// newTestGame isolates the config search path from the developer's home.
func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset(config.DifficultyNormal)

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))

	g, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Eco Blocks", g.Title())
	_, ok := g.(registry.Hookable)
	assert.True(t, ok)
	_, ok = g.(registry.Resizable)
	assert.True(t, ok)
	_, ok = g.(registry.Tunable)
	assert.True(t, ok)
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	for i := 0; i < 600; i++ {
		var in core.InputFrame
		switch i % 37 {
		case 5:
			in = frame(core.ActionLeft)
		case 11:
			in = frame(core.ActionRotate)
		case 20:
			in = frame(core.ActionRight, core.ActionRight)
		case 30:
			in = frame(core.ActionDrop)
		default:
			in = frame()
		}
		g1.Step(in)
		g2.Step(in)
	}

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestGravityAtSixtyFPS(t *testing.T) {
	g := newTestGame(t, 1)
	y := g.Sim().Active().Origin.Y

	for i := 0; i < 59; i++ {
		g.Step(frame())
	}
	assert.Equal(t, y, g.Sim().Active().Origin.Y)

	// Sixty truncated 16.67ms frames land just short of one second.
	g.Step(frame())
	g.Step(frame())
	assert.Equal(t, y+1, g.Sim().Active().Origin.Y)
}

func TestStepMapsActions(t *testing.T) {
	g := newTestGame(t, 3)
	g.Sim().active = pieceAt(t, "Log", 3, 2)

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, 2, g.Sim().Active().Origin.X)

	g.Step(frame(core.ActionRight))
	assert.Equal(t, 3, g.Sim().Active().Origin.X)

	g.Step(frame(core.ActionDown))
	assert.Equal(t, 3, g.Sim().Active().Origin.Y)

	g.Step(frame(core.ActionRotate))
	assert.Equal(t, 1, g.Sim().Active().Width())

	g.Step(frame(core.ActionDrop))
	assert.Equal(t, 4, g.Sim().Field().Filled())
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, 4)
	g.Step(frame(core.ActionPause))
	require.True(t, g.State().Paused)

	snap := g.Snapshot()
	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionLeft, core.ActionDrop))
	}
	after := g.Snapshot()
	assert.Equal(t, snap.ActiveX, after.ActiveX)
	assert.Equal(t, snap.ActiveY, after.ActiveY)
	assert.Equal(t, snap.Field, after.Field)

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestConfirmCompletesOnce(t *testing.T) {
	g := newTestGame(t, 5)
	var totals []int
	g.SetHooks(registry.Hooks{OnComplete: func(total int) { totals = append(totals, total) }})

	g.Step(frame(core.ActionConfirm))
	assert.Empty(t, totals, "confirm while playing")

	g.Sim().score = 700
	g.Sim().status = StatusGameOver
	require.True(t, g.State().GameOver)

	g.Step(frame(core.ActionConfirm))
	g.Step(frame(core.ActionConfirm))
	assert.Equal(t, []int{700 + 50}, totals)
}

func TestHooksSurviveReset(t *testing.T) {
	g := newTestGame(t, 6)
	calls := 0
	g.SetHooks(registry.Hooks{OnBack: func() { calls++ }})

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 9})
	g.Sim().status = StatusWon
	g.Step(frame(core.ActionBack))

	assert.Equal(t, 1, calls)
}

func TestBackOnlyWhenStopped(t *testing.T) {
	g := newTestGame(t, 7)
	calls := 0
	g.SetHooks(registry.Hooks{OnBack: func() { calls++ }})

	g.Step(frame(core.ActionBack))
	assert.Equal(t, 0, calls)

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionBack))
	assert.Equal(t, 1, calls)
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(t, 8)
	g.Step(frame(core.ActionRestart))
	assert.Equal(t, uint64(1), g.Snapshot().Tick, "restart ignored while playing")

	g.Sim().status = StatusGameOver
	g.Sim().score = 100
	g.Step(frame(core.ActionRestart))

	snap := g.Snapshot()
	assert.Equal(t, StatusPlaying, snap.Status)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, uint64(0), snap.Tick)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 9)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Eco Blocks")
	assert.Contains(t, out, "Score  0")
	assert.Contains(t, out, "Level  1")
	assert.Contains(t, out, "Lines  0/20")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, "░", "ghost piece")
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPaused, "Paused"},
		{StatusGameOver, "Game Over"},
		{StatusWon, "Forest Restored!"},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			g := newTestGame(t, 10)
			g.Sim().status = tt.status
			screen := core.NewScreen(80, 24)

			g.Render(screen)

			assert.Contains(t, screen.String(), tt.want)
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 11)
	g.Resize(30, 10)
	screen := core.NewScreen(30, 10)

	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")

	y := g.Sim().Active().Origin.Y
	for i := 0; i < 120; i++ {
		g.Step(frame())
	}
	assert.Equal(t, y, g.Sim().Active().Origin.Y, "frozen while too small")

	g.Resize(80, 24)
	screen.Resize(80, 24)
	g.Render(screen)
	assert.False(t, strings.Contains(screen.String(), "Window too small"))
}

func TestDifficultyPresetChangesGravity(t *testing.T) {
	g := newTestGame(t, 12)
	SetDifficultyPreset(config.DifficultyHard)
	defer SetDifficultyPreset(config.DifficultyNormal)

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	assert.Equal(t, int64(600), g.Sim().Period().Milliseconds())
}

func TestInstancePresetOverridesPackagePreset(t *testing.T) {
	g := newTestGame(t, 14)
	SetDifficultyPreset(config.DifficultyHard)
	defer SetDifficultyPreset(config.DifficultyNormal)

	var tunable registry.Tunable = g
	tunable.SetPreset(config.DifficultyEasy)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	assert.Equal(t, int64(1500), g.Sim().Period().Milliseconds())
}

func TestBadConfigPathFallsBack(t *testing.T) {
	g := newTestGame(t, 13)
	SetConfigPath("/nonexistent/fallblock.yaml")
	defer SetConfigPath("")

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	assert.Error(t, g.LoadErr())
	assert.Equal(t, config.DefaultFallBlockConfig(), g.Sim().Config())
}
