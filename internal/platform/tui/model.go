package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/ecofun-kids/ecofun/internal/core"
	"github.com/ecofun-kids/ecofun/internal/registry"
	"github.com/ecofun-kids/ecofun/internal/storage"
)

// HostOptions configure how a game is hosted.
type HostOptions struct {
	// Player is the points ledger account. Empty disables awards.
	Player string

	// Logger receives storage warnings. Nil discards them.
	Logger *log.Logger

	// QuitOnBack ends the program when the game asks to go back, for
	// standalone play where there is no menu to return to.
	QuitOnBack bool
}

func (o HostOptions) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// recorder persists one round: its score once it ends and the points the
// player claims. It is shared by pointer with the game's hooks, which fire
// during Step.
type recorder struct {
	store     *storage.Store
	logger    *log.Logger
	gameID    string
	player    string
	sessionID string
	saved     bool
	awarded   bool
	back      bool
}

func (r *recorder) newRound() {
	r.sessionID = storage.NewSessionID()
	r.saved = false
	r.awarded = false
}

// saveRound stores the finished round once.
func (r *recorder) saveRound(st core.GameState) {
	if r.saved {
		return
	}
	r.saved = true
	if r.store == nil {
		return
	}
	_, err := r.store.SaveRound(storage.ScoreEntry{
		GameID:    r.gameID,
		Player:    r.player,
		Score:     st.Score,
		Level:     st.Level,
		Lines:     st.Lines,
		Outcome:   st.Outcome(),
		SessionID: r.sessionID,
	})
	if err != nil {
		r.logger.Warn("could not save round", "game", r.gameID, "error", err)
	}
}

// award credits the claimed points to the player's ledger.
func (r *recorder) award(total int) {
	r.awarded = true
	if r.store == nil || r.player == "" {
		r.logger.Debug("points not recorded", "points", total, "player", r.player)
		return
	}
	if _, err := r.store.AddPoints(r.player, total, r.gameID, r.sessionID); err != nil {
		r.logger.Warn("could not add points", "player", r.player, "error", err)
		return
	}
	r.logger.Info("points awarded", "player", r.player, "points", total, "session", r.sessionID)
}

// GameModel is the Bubble Tea model that runs one game: it feeds key
// presses and ticks into the game, records finished rounds and reports a
// request to return to the menu.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	rec        *recorder
	quitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the game and wires its hooks to the store.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts HostOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	rec := &recorder{
		store:  store,
		logger: opts.logger(),
		gameID: game.ID(),
		player: opts.Player,
	}
	rec.newRound()

	if h, ok := game.(registry.Hookable); ok {
		h.SetHooks(registry.Hooks{
			OnComplete: rec.award,
			OnBack:     func() { rec.back = true },
		})
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		rec:        rec,
		quitOnBack: opts.QuitOnBack,
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the key's action for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize keeps the round running when the game supports it and
// restarts it otherwise.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.Finished() {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick steps the game with the frame's input.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if prev.Finished() && !m.gameState.Finished() {
		m.rec.newRound()
	}
	if m.gameState.Finished() {
		m.rec.saveRound(m.gameState)
	}

	if m.rec.back {
		m.rec.back = false
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as text under ~/.ecofun/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".ecofun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.rec.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.rec.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// SessionID identifies the current round in the store.
func (m GameModel) SessionID() string {
	return m.rec.sessionID
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the game asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the player quits or leaves it.
// Returns true if the player asked to go back rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts HostOptions) (bool, error) {
	opts.QuitOnBack = true
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: game %s: %w", game.ID(), err)
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
