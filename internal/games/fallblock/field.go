package fallblock

import (
	"strings"

	"github.com/ecofun-kids/ecofun/internal/core"
)

// Field is the grid of settled cells. Row 0 is the top, row Height()-1 the
// floor. Its dimensions never change after creation.
type Field struct {
	width  int
	height int
	rows   [][]Material
}

// NewField creates an empty field.
func NewField(width, height int) *Field {
	f := &Field{width: width, height: height}
	f.rows = make([][]Material, height)
	for y := range f.rows {
		f.rows[y] = make([]Material, width)
	}
	return f
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// Height returns the number of rows.
func (f *Field) Height() int { return f.height }

// InBounds reports whether (x, y) is a cell of the field.
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// At returns the material at (x, y), or Empty outside the field.
func (f *Field) At(x, y int) Material {
	if !f.InBounds(x, y) {
		return Empty
	}
	return f.rows[y][x]
}

// Set stores a material at (x, y). Out-of-bounds writes are ignored.
func (f *Field) Set(x, y int, m Material) {
	if !f.InBounds(x, y) {
		return
	}
	f.rows[y][x] = m
}

// Blocked reports whether a block at p would collide: outside the side
// walls, at or below the floor, or on a settled cell. Cells above the top
// row are free.
func (f *Field) Blocked(p core.Point) bool {
	if p.X < 0 || p.X >= f.width || p.Y >= f.height {
		return true
	}
	if p.Y < 0 {
		return false
	}
	return f.rows[p.Y][p.X] != Empty
}

// Merge settles every block of the piece into the field.
// Blocks above the top row are dropped.
func (f *Field) Merge(p *Piece) {
	for _, c := range p.Cells() {
		f.Set(c.X, c.Y, p.Material)
	}
}

// RowFull reports whether row y has no empty cells.
func (f *Field) RowFull(y int) bool {
	if y < 0 || y >= f.height {
		return false
	}
	for _, m := range f.rows[y] {
		if m == Empty {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the rows above down and
// inserts the same number of empty rows at the top. Returns the number of
// rows removed.
func (f *Field) ClearFullRows() int {
	kept := make([][]Material, 0, f.height)
	for y := range f.rows {
		if !f.RowFull(y) {
			kept = append(kept, f.rows[y])
		}
	}

	cleared := f.height - len(kept)
	if cleared == 0 {
		return 0
	}

	rows := make([][]Material, 0, f.height)
	for range cleared {
		rows = append(rows, make([]Material, f.width))
	}
	f.rows = append(rows, kept...)
	return cleared
}

// Filled returns the number of settled cells.
func (f *Field) Filled() int {
	n := 0
	for _, row := range f.rows {
		for _, m := range row {
			if m != Empty {
				n++
			}
		}
	}
	return n
}

// Clear empties every cell.
func (f *Field) Clear() {
	for _, row := range f.rows {
		clear(row)
	}
}

// Clone returns an independent copy of the field.
func (f *Field) Clone() *Field {
	c := NewField(f.width, f.height)
	for y := range f.rows {
		copy(c.rows[y], f.rows[y])
	}
	return c
}

// String renders the field as text, '.' for empty and the material's
// initial otherwise. Used by tests and debugging.
func (f *Field) String() string {
	var b strings.Builder
	for y, row := range f.rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, m := range row {
			if m == Empty {
				b.WriteByte('.')
			} else {
				b.WriteByte(m.String()[0])
			}
		}
	}
	return b.String()
}
