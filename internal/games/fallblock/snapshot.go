package fallblock

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick        uint64
	Status      Status
	Score       int
	Level       int
	Lines       int
	ActiveX     int
	ActiveY     int
	Active      Material
	Next        Material
	FilledCells int
	Field       string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        g.tick,
		Status:      g.sim.Status(),
		Score:       g.sim.Score(),
		Level:       g.sim.Level(),
		Lines:       g.sim.Lines(),
		FilledCells: g.sim.Field().Filled(),
		Field:       g.sim.Field().String(),
	}
	if p := g.sim.Active(); p != nil {
		snap.ActiveX = p.Origin.X
		snap.ActiveY = p.Origin.Y
		snap.Active = p.Material
	}
	if p := g.sim.Next(); p != nil {
		snap.Next = p.Material
	}
	return snap
}
