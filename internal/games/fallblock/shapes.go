// Package fallblock implements Eco Blocks, a falling-block puzzle where
// logs, boulders, leaves and seeds settle into a field and full rows clear.
//
// Sim holds the simulation: the field, the active and next pieces, gravity,
// collision, line clears and score. Game adapts Sim to the game registry
// and renders it.
package fallblock

import (
	"github.com/ecofun-kids/ecofun/internal/core"
)

// Material tags a settled cell with the shape type that left it there.
// The zero value is an empty cell.
type Material uint8

const (
	Empty Material = iota
	Wood
	Stone
	Leaf
	Water
	Moss
	Sprout
	Seed
)

// String returns the material name.
func (m Material) String() string {
	switch m {
	case Empty:
		return "empty"
	case Wood:
		return "wood"
	case Stone:
		return "stone"
	case Leaf:
		return "leaf"
	case Water:
		return "water"
	case Moss:
		return "moss"
	case Sprout:
		return "sprout"
	case Seed:
		return "seed"
	default:
		return "unknown"
	}
}

// Color returns the screen colour used to draw the material.
func (m Material) Color() core.Color {
	switch m {
	case Wood:
		return core.ColorBrown
	case Stone:
		return core.ColorGray
	case Leaf:
		return core.ColorBrightGreen
	case Water:
		return core.ColorBrightBlue
	case Moss:
		return core.ColorGreen
	case Sprout:
		return core.ColorBrightYellow
	case Seed:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Template is one of the predefined shapes a piece can take.
// Blocks are given in spawn orientation with the top-left at (0, 0).
type Template struct {
	Name     string
	Material Material
	Blocks   []core.Point
	Rotates  bool
}

// Templates is the shape table pieces are drawn from, uniformly.
var Templates = []Template{
	{
		Name:     "Log",
		Material: Wood,
		Blocks:   []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
		Rotates:  true,
	},
	{
		// The square looks the same every way up, so rotating it is a no-op.
		Name:     "Boulder",
		Material: Stone,
		Blocks:   []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		Rotates:  false,
	},
	{
		Name:     "Sapling",
		Material: Leaf,
		Blocks:   []core.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		Rotates:  true,
	},
	{
		Name:     "Stream",
		Material: Water,
		Blocks:   []core.Point{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		Rotates:  true,
	},
	{
		Name:     "Vine",
		Material: Moss,
		Blocks:   []core.Point{{X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
		Rotates:  true,
	},
	{
		Name:     "Sprout",
		Material: Sprout,
		Blocks:   []core.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		Rotates:  true,
	},
	{
		Name:     "Seed",
		Material: Seed,
		Blocks:   []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Rotates:  true,
	},
}

// TemplateFor returns the template that produces the given material.
func TemplateFor(m Material) (Template, bool) {
	for _, t := range Templates {
		if t.Material == m {
			return t, true
		}
	}
	return Template{}, false
}
