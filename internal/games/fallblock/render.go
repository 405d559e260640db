package fallblock

import (
	"fmt"

	"github.com/ecofun-kids/ecofun/internal/core"
)

const (
	cellWidth    = 2  // Screen columns per field cell
	sidebarWidth = 18 // Next preview and HUD
	sidebarGap   = 2
	titleHeight  = 1
)

// minSize returns the smallest screen the layout fits in.
func (g *Game) minSize() (int, int) {
	boxW, boxH := g.boxSize()
	return boxW + sidebarGap + sidebarWidth, boxH + titleHeight
}

func (g *Game) boxSize() (int, int) {
	return g.cfg.Field.Width*cellWidth + 2, g.cfg.Field.Height + 2
}

// Render draws the field, pieces, sidebar and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		minW, minH := g.minSize()
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	layoutW, _ := g.minSize()
	boxW, boxH := g.boxSize()
	box := core.NewRect((g.screenW-layoutW)/2, titleHeight, boxW, boxH)

	dst.DrawTextColored(box.X, 0, "Eco Blocks", core.ColorBrightGreen)
	dst.DrawBox(box, core.ColorGreen)

	g.renderField(dst, box)
	g.renderGhost(dst, box)
	g.renderActive(dst, box)
	g.renderSidebar(dst, box.Right()+sidebarGap, box.Y)

	switch g.sim.Status() {
	case StatusPaused:
		g.renderOverlay(dst, box, "Paused", "P resume  B menu")
	case StatusGameOver:
		g.renderOverlay(dst, box, "Game Over", g.finishHint())
	case StatusWon:
		g.renderOverlay(dst, box, "Forest Restored!", g.finishHint())
	}
}

func (g *Game) finishHint() string {
	if g.sim.Completed() {
		return fmt.Sprintf("+%d pts  R again", g.sim.TotalPoints())
	}
	return "Enter claim  R again"
}

// cellPos maps a field cell to the screen column of its left half.
func cellPos(box core.Rect, x, y int) (int, int) {
	return box.X + 1 + x*cellWidth, box.Y + 1 + y
}

func (g *Game) renderField(dst *core.Screen, box core.Rect) {
	f := g.sim.Field()
	for y := range f.Height() {
		for x := range f.Width() {
			sx, sy := cellPos(box, x, y)
			if m := f.At(x, y); m != Empty {
				drawBlock(dst, sx, sy, '█', m.Color())
				continue
			}
			dst.SetColored(sx+1, sy, '·', core.ColorGray)
		}
	}
}

func (g *Game) renderGhost(dst *core.Screen, box core.Rect) {
	p := g.sim.Active()
	if p == nil || g.sim.Status() != StatusPlaying {
		return
	}
	rows := g.sim.GhostRow() - p.Origin.Y
	if rows <= 0 {
		return
	}
	for _, c := range p.Shifted(0, rows).Cells() {
		if c.Y < 0 {
			continue
		}
		sx, sy := cellPos(box, c.X, c.Y)
		drawBlock(dst, sx, sy, '░', core.ColorGray)
	}
}

func (g *Game) renderActive(dst *core.Screen, box core.Rect) {
	p := g.sim.Active()
	if p == nil {
		return
	}
	for _, c := range p.Cells() {
		if c.Y < 0 {
			continue
		}
		sx, sy := cellPos(box, c.X, c.Y)
		drawBlock(dst, sx, sy, '█', p.Material.Color())
	}
}

func drawBlock(dst *core.Screen, x, y int, r rune, c core.Color) {
	dst.SetColored(x, y, r, c)
	dst.SetColored(x+1, y, r, c)
}

func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, "Next")
	preview := core.NewRect(x, y+1, 4*cellWidth+2, 4)
	dst.DrawBox(preview, core.ColorGray)
	if next := g.sim.Next(); next != nil {
		t, _ := TemplateFor(next.Material)
		dst.DrawTextColored(x+preview.W+1, y+2, t.Name, next.Material.Color())
		for _, b := range next.Blocks {
			drawBlock(dst, preview.X+1+b.X*cellWidth, preview.Y+1+b.Y, '█', next.Material.Color())
		}
	}

	row := preview.Bottom() + 1
	stats := []string{
		fmt.Sprintf("Score  %d", g.sim.Score()),
		fmt.Sprintf("Level  %d", g.sim.Level()),
		fmt.Sprintf("Lines  %d/%d", g.sim.Lines(), g.cfg.Progression.WinLines),
		fmt.Sprintf("Speed  %dms", g.sim.Period().Milliseconds()),
	}
	for _, s := range stats {
		dst.DrawText(x, row, s)
		row++
	}

	row++
	help := []string{
		"←→  move",
		"↑   rotate",
		"↓   soft drop",
		"spc hard drop",
		"P   pause",
		"Q   quit",
	}
	for _, h := range help {
		dst.DrawTextColored(x, row, h, core.ColorGray)
		row++
	}
}

// renderOverlay draws a two-line message box centred over the field.
func (g *Game) renderOverlay(dst *core.Screen, box core.Rect, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	w = min(w, box.W)
	r := core.NewRect(box.X+(box.W-w)/2, box.Y+box.H/2-2, w, 5)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightYellow)
	dst.DrawTextColored(r.X+(r.W-len([]rune(line1)))/2, r.Y+1, line1, core.ColorBrightYellow)
	dst.DrawText(r.X+(r.W-len([]rune(line2)))/2, r.Y+3, line2)
}
