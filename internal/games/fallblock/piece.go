package fallblock

import (
	"math"

	"github.com/ecofun-kids/ecofun/internal/core"
)

// Piece is a falling shape: block offsets relative to Origin plus the
// material it settles as.
type Piece struct {
	Blocks   []core.Point
	Material Material
	Origin   core.Point
	Rotates  bool

	// pivot is the rotation centre relative to Origin, in half-cell units.
	// Both coordinates share parity so quarter turns land on whole cells.
	pivot core.Point
}

// NewPiece instantiates a template at the origin (0, 0).
func NewPiece(t Template) *Piece {
	blocks := make([]core.Point, len(t.Blocks))
	copy(blocks, t.Blocks)
	return &Piece{
		Blocks:   blocks,
		Material: t.Material,
		Rotates:  t.Rotates,
		pivot:    centroidPivot(blocks),
	}
}

// centroidPivot picks the lattice point nearest the blocks' centroid
// among whole cells and cell corners. Ties go to the corner.
func centroidPivot(blocks []core.Point) core.Point {
	if len(blocks) == 0 {
		return core.Point{}
	}
	var sx, sy float64
	for _, b := range blocks {
		sx += float64(b.X)
		sy += float64(b.Y)
	}
	mx := sx / float64(len(blocks))
	my := sy / float64(len(blocks))

	cx, cy := math.Round(mx), math.Round(my)
	hx, hy := math.Floor(mx)+0.5, math.Floor(my)+0.5

	dCell := (mx-cx)*(mx-cx) + (my-cy)*(my-cy)
	dCorner := (mx-hx)*(mx-hx) + (my-hy)*(my-hy)
	if dCell < dCorner {
		return core.Point{X: int(cx * 2), Y: int(cy * 2)}
	}
	return core.Point{X: int(hx * 2), Y: int(hy * 2)}
}

// Cells returns the absolute field coordinates of the piece's blocks.
func (p *Piece) Cells() []core.Point {
	cells := make([]core.Point, len(p.Blocks))
	for i, b := range p.Blocks {
		cells[i] = p.Origin.Add(b)
	}
	return cells
}

// Width returns the horizontal extent of the blocks.
func (p *Piece) Width() int {
	minX, maxX := math.MaxInt, math.MinInt
	for _, b := range p.Blocks {
		minX = min(minX, b.X)
		maxX = max(maxX, b.X)
	}
	if minX > maxX {
		return 0
	}
	return maxX - minX + 1
}

// Clone returns an independent copy of the piece.
func (p *Piece) Clone() *Piece {
	c := *p
	c.Blocks = make([]core.Point, len(p.Blocks))
	copy(c.Blocks, p.Blocks)
	return &c
}

// Shifted returns a copy moved by (dx, dy).
func (p *Piece) Shifted(dx, dy int) *Piece {
	c := p.Clone()
	c.Origin = core.Point{X: p.Origin.X + dx, Y: p.Origin.Y + dy}
	return c
}

// Rotated returns a copy turned 90° clockwise about the pivot.
// Pieces that do not rotate are returned unchanged.
func (p *Piece) Rotated() *Piece {
	c := p.Clone()
	if !p.Rotates {
		return c
	}
	for i, b := range p.Blocks {
		// Work in half-cell units: d = 2b - pivot, clockwise with y down
		// maps (dx, dy) to (-dy, dx).
		dx := 2*b.X - p.pivot.X
		dy := 2*b.Y - p.pivot.Y
		c.Blocks[i] = core.Point{
			X: (p.pivot.X - dy) / 2,
			Y: (p.pivot.Y + dx) / 2,
		}
	}
	return c
}
