package fallblock

import (
	"math/rand"
	"time"

	"github.com/ecofun-kids/ecofun/internal/config"
	"github.com/ecofun-kids/ecofun/internal/core"
	"github.com/ecofun-kids/ecofun/internal/registry"
)

// ID is the registry identifier of Eco Blocks.
const ID = "fallblock"

// Game adapts Sim to registry.Game: it turns host frames into simulation
// operations and draws the field.
type Game struct {
	sim   *Sim
	rng   *rand.Rand
	cfg   config.FallBlockConfig
	hooks registry.Hooks

	// preset overrides the package-level preset when set.
	preset config.DifficultyPreset

	tick     uint64
	frame    time.Duration
	screenW  int
	screenH  int
	tooSmall bool
	loadErr  error
}

// Package-level settings applied on the next Reset, set by the CLI before
// a game starts.
var (
	configPath       string
	difficultyPreset = config.DifficultyNormal
)

// SetConfigPath sets a custom YAML config path. Empty uses the search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the gravity preset for new rounds.
func SetDifficultyPreset(p config.DifficultyPreset) {
	difficultyPreset = p
}

// DifficultyPreset returns the preset used for new rounds.
func DifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// New creates an Eco Blocks game. Call Reset before use.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Eco Blocks" }

// SetHooks installs the host callbacks. They survive Reset.
func (g *Game) SetHooks(h registry.Hooks) {
	g.hooks = h
	if g.sim != nil {
		g.sim.SetCallbacks(h.OnComplete, h.OnBack)
	}
}

// SetPreset sets the difficulty for this instance, overriding
// SetDifficultyPreset. Takes effect on the next Reset.
func (g *Game) SetPreset(p config.DifficultyPreset) {
	g.preset = p
}

// LoadErr returns the error from loading the custom config, if any.
// The game falls back to the defaults when loading fails.
func (g *Game) LoadErr() error { return g.loadErr }

// Reset loads the configuration and starts a new round.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	loaded, err := config.LoadFallBlock(configPath)
	if err != nil {
		loaded = config.DefaultFallBlockConfig()
	}
	g.loadErr = err
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	config.ApplyFallBlockPreset(&loaded, preset)
	g.cfg = loaded

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.frame = time.Second / time.Duration(tickRate)

	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.sim = NewSim(g.cfg, g.rng)
	g.sim.SetCallbacks(g.hooks.OnComplete, g.hooks.OnBack)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size. The round keeps running
// state but freezes while the window is too small.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minSize()
	g.tooSmall = w < minW || h < minH
}

// Step applies one host frame of input and advances gravity.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	status := g.sim.Status()

	if status.Terminal() {
		switch {
		case in.Has(core.ActionRestart):
			g.restart()
		case in.Has(core.ActionConfirm):
			g.sim.Complete()
		case in.Has(core.ActionBack):
			g.sim.Back()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.sim.TogglePause()
	}
	if g.sim.Status() == StatusPaused && in.Has(core.ActionBack) {
		g.sim.Back()
	}

	if g.tooSmall || g.sim.Status() != StatusPlaying {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLeft) {
		g.sim.Move(-1)
	}
	if in.Has(core.ActionRight) {
		g.sim.Move(1)
	}
	if in.Has(core.ActionRotate) {
		g.sim.Rotate()
	}
	switch {
	case in.Has(core.ActionDrop):
		g.sim.HardDrop()
	case in.Has(core.ActionDown):
		g.sim.SoftDrop()
	default:
		g.sim.Advance(g.frame)
	}

	return core.StepResult{State: g.State()}
}

// restart begins a new round with a seed drawn from the current RNG so a
// seeded session stays reproducible.
func (g *Game) restart() {
	g.Reset(core.RuntimeConfig{
		Seed:     g.rng.Int63(),
		ScreenW:  g.screenW,
		ScreenH:  g.screenH,
		TickRate: int(time.Second / g.frame),
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	status := g.sim.Status()
	return core.GameState{
		Score:    g.sim.Score(),
		Level:    g.sim.Level(),
		Lines:    g.sim.Lines(),
		GameOver: status == StatusGameOver,
		Won:      status == StatusWon,
		Paused:   status == StatusPaused,
	}
}

// Sim exposes the underlying simulation.
func (g *Game) Sim() *Sim { return g.sim }
