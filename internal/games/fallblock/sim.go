package fallblock

import (
	"math/rand"
	"time"

	"github.com/ecofun-kids/ecofun/internal/config"
	"github.com/ecofun-kids/ecofun/internal/core"
)

// Status is the lifecycle state of a Sim.
type Status int

const (
	StatusPlaying Status = iota
	StatusPaused
	StatusGameOver
	StatusWon
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	case StatusWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the round has ended.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusWon
}

// Sim is the falling-block simulation. It is not safe for concurrent use;
// its owner drives it from a single loop.
type Sim struct {
	cfg config.FallBlockConfig
	rng *rand.Rand

	field  *Field
	active *Piece
	next   *Piece

	score  int
	level  int
	lines  int
	status Status

	elapsed   time.Duration
	completed bool

	onComplete func(totalPoints int)
	onBack     func()
}

// NewSim creates a simulation and starts a fresh round.
// A nil rng is replaced by one seeded with 1.
func NewSim(cfg config.FallBlockConfig, rng *rand.Rand) *Sim {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	s := &Sim{cfg: cfg, rng: rng}
	s.Reset()
	return s
}

// SetCallbacks installs the host callbacks. Either may be nil.
func (s *Sim) SetCallbacks(onComplete func(totalPoints int), onBack func()) {
	s.onComplete = onComplete
	s.onBack = onBack
}

// Reset clears the field and counters, spawns a piece and resumes play.
func (s *Sim) Reset() {
	if s.field == nil || s.field.Width() != s.cfg.Field.Width || s.field.Height() != s.cfg.Field.Height {
		s.field = NewField(s.cfg.Field.Width, s.cfg.Field.Height)
	} else {
		s.field.Clear()
	}
	s.active = nil
	s.next = nil
	s.score = 0
	s.lines = 0
	s.level = 1
	s.elapsed = 0
	s.completed = false
	s.status = StatusPlaying
	s.SpawnPiece()
}

func (s *Sim) randomPiece() *Piece {
	return NewPiece(Templates[s.rng.Intn(len(Templates))])
}

// SpawnPiece promotes the next piece to active at the top centre of the
// field and draws a new next piece. If the spawn position is blocked the
// round is lost.
func (s *Sim) SpawnPiece() {
	if s.next == nil {
		s.next = s.randomPiece()
	}
	p := s.next
	s.next = s.randomPiece()

	p.Origin = core.Point{X: (s.field.Width() - p.Width()) / 2, Y: 0}
	s.active = p

	if !s.fits(p) {
		s.status = StatusGameOver
	}
}

func (s *Sim) fits(p *Piece) bool {
	for _, c := range p.Cells() {
		if s.field.Blocked(c) {
			return false
		}
	}
	return true
}

// Tick moves the active piece down one row. When it cannot move, the piece
// is merged, full rows are cleared and the next piece spawns.
// Only runs while playing.
func (s *Sim) Tick() {
	if s.status != StatusPlaying || s.active == nil {
		return
	}
	if down := s.active.Shifted(0, 1); s.fits(down) {
		s.active = down
		return
	}
	s.lock()
}

func (s *Sim) lock() {
	s.field.Merge(s.active)
	s.active = nil
	s.ClearLines()
	if s.status == StatusWon {
		return
	}
	s.SpawnPiece()
}

// Advance feeds elapsed wall time into the gravity clock and ticks once the
// current period has passed. At most one tick runs per call; leftover time
// is capped so a stalled host does not trigger a burst of drops.
// Returns whether a tick ran.
func (s *Sim) Advance(dt time.Duration) bool {
	if s.status != StatusPlaying || dt <= 0 {
		return false
	}
	period := s.Period()
	s.elapsed += dt
	if s.elapsed < period {
		return false
	}
	s.elapsed = min(s.elapsed-period, period-1)
	s.Tick()
	return true
}

// Period returns the current gravity period.
func (s *Sim) Period() time.Duration {
	return s.cfg.Gravity.Period(s.level)
}

// Move shifts the active piece one column left (dx = -1) or right (dx = 1).
// Other values, blocked moves and moves outside play are ignored.
func (s *Sim) Move(dx int) bool {
	if dx != -1 && dx != 1 {
		return false
	}
	if s.status != StatusPlaying || s.active == nil {
		return false
	}
	moved := s.active.Shifted(dx, 0)
	if !s.fits(moved) {
		return false
	}
	s.active = moved
	return true
}

// Rotate turns the active piece 90° clockwise if the result fits.
func (s *Sim) Rotate() bool {
	if s.status != StatusPlaying || s.active == nil || !s.active.Rotates {
		return false
	}
	turned := s.active.Rotated()
	if !s.fits(turned) {
		return false
	}
	s.active = turned
	return true
}

// SoftDrop runs one gravity tick immediately and restarts the gravity clock.
func (s *Sim) SoftDrop() {
	if s.status != StatusPlaying {
		return
	}
	s.elapsed = 0
	s.Tick()
}

// HardDrop drops the active piece to its landing row and merges it.
// Returns the number of rows fallen.
func (s *Sim) HardDrop() int {
	if s.status != StatusPlaying || s.active == nil {
		return 0
	}
	rows := s.GhostRow() - s.active.Origin.Y
	s.active = s.active.Shifted(0, rows)
	s.elapsed = 0
	s.Tick()
	return rows
}

// GhostRow returns the origin row the active piece would land at, or -1 when
// there is no active piece.
func (s *Sim) GhostRow() int {
	if s.active == nil {
		return -1
	}
	p := s.active
	for {
		down := p.Shifted(0, 1)
		if !s.fits(down) {
			return p.Origin.Y
		}
		p = down
	}
}

// ClearLines removes full rows and scores them at the current level. Lines
// and level are updated afterwards, and reaching the win target ends the
// round. Returns the number of rows removed.
func (s *Sim) ClearLines() int {
	cleared := s.field.ClearFullRows()
	if cleared == 0 {
		return 0
	}
	s.score += cleared * s.cfg.Scoring.PointsPerLine * s.level
	s.lines += cleared
	s.level = 1 + s.lines/s.cfg.Progression.LinesPerLevel
	if s.lines >= s.cfg.Progression.WinLines && !s.status.Terminal() {
		s.status = StatusWon
	}
	return cleared
}

// Pause stops gravity and input while playing.
func (s *Sim) Pause() {
	if s.status == StatusPlaying {
		s.status = StatusPaused
	}
}

// Resume continues a paused round.
func (s *Sim) Resume() {
	if s.status == StatusPaused {
		s.status = StatusPlaying
	}
}

// TogglePause switches between playing and paused.
func (s *Sim) TogglePause() {
	switch s.status {
	case StatusPlaying:
		s.Pause()
	case StatusPaused:
		s.Resume()
	}
}

// TotalPoints is the round's reward: score plus a bonus per level reached
// and per line cleared.
func (s *Sim) TotalPoints() int {
	return s.score + s.level*s.cfg.Scoring.LevelBonus + s.lines*s.cfg.Scoring.LineBonus
}

// Complete reports the finished round to the host. It fires onComplete
// once per round and only after the round has ended.
func (s *Sim) Complete() bool {
	if !s.status.Terminal() || s.completed {
		return false
	}
	s.completed = true
	if s.onComplete != nil {
		s.onComplete(s.TotalPoints())
	}
	return true
}

// Back asks the host to leave the game.
func (s *Sim) Back() {
	if s.onBack != nil {
		s.onBack()
	}
}

// Field returns the settled grid. Callers must not modify it.
func (s *Sim) Field() *Field { return s.field }

// Active returns the falling piece, or nil between merge and spawn.
func (s *Sim) Active() *Piece { return s.active }

// Next returns the lookahead piece.
func (s *Sim) Next() *Piece { return s.next }

// Score, Level, Lines and Status expose the round counters.
func (s *Sim) Score() int                     { return s.score }
func (s *Sim) Level() int                     { return s.level }
func (s *Sim) Lines() int                     { return s.lines }
func (s *Sim) Status() Status                 { return s.status }
func (s *Sim) Completed() bool                { return s.completed }
func (s *Sim) Config() config.FallBlockConfig { return s.cfg }
