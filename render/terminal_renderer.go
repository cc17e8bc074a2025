package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crash-cars/engine"
)

// hudRows is the number of status lines above the arena
const hudRows = 2

// Heading arrows, clockwise from +Z (screen up) in 45 degree steps
var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// TerminalRenderer draws a top-down view of the arena into a tcell screen
// Arena X maps to columns, arena Z maps to rows with +Z at the top
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int

	background tcell.Style
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:     screen,
		background: tcell.StyleDefault.Background(RgbBackground),
	}
	r.width, r.height = screen.Size()
	return r
}

// Resize re-reads the screen size and forces a full redraw
func (r *TerminalRenderer) Resize() {
	r.width, r.height = r.screen.Size()
	r.screen.Sync()
}

// Render draws one frame
func (r *TerminalRenderer) Render(f *engine.Frame) error {
	if f == nil {
		return fmt.Errorf("render: nil frame")
	}
	r.screen.Clear()
	r.fill(0, 0, r.width, r.height, ' ', r.background)

	vp, ok := r.viewport(f.ArenaHalf)
	if ok {
		r.drawArena(vp)
		for _, o := range f.Obstacles {
			r.drawObstacle(vp, o)
		}
		for _, p := range f.PowerUps {
			glyph, color := PowerUpStyle(p.Type)
			if x, y, in := vp.project(p.Position[0], p.Position[2]); in {
				r.screen.SetContent(x, y, glyph, nil, r.background.Foreground(color).Bold(true))
			}
		}
		for _, v := range f.Vehicles {
			if v.Eliminated {
				continue
			}
			x, y, in := vp.project(v.Position[0], v.Position[2])
			if !in {
				continue
			}
			style := r.background.Foreground(VehicleColor(v.Handle))
			if v.Controller == engine.ControllerHuman {
				style = style.Reverse(true)
			}
			if v.Position[1] > 0.5 {
				style = style.Bold(true)
			}
			r.screen.SetContent(x, y, HeadingGlyph(v.Heading), nil, style)
		}
	}

	r.drawHUD(f)
	r.screen.Show()
	return nil
}

// HeadingGlyph picks the arrow closest to a yaw angle
func HeadingGlyph(heading float64) rune {
	octant := int(math.Round(heading/(math.Pi/4))) % 8
	if octant < 0 {
		octant += 8
	}
	return headingGlyphs[octant]
}

// viewport maps the square arena onto the screen area below the HUD
type viewport struct {
	x0, y0, w, h int
	half         float64
}

func (r *TerminalRenderer) viewport(half float64) (viewport, bool) {
	w, h := r.width, r.height-hudRows
	if w < 3 || h < 3 || half <= 0 {
		return viewport{}, false
	}
	return viewport{x0: 0, y0: hudRows, w: w, h: h, half: half}, true
}

// project returns the cell inside the wall for an arena point
func (vp viewport) project(x, z float64) (int, int, bool) {
	u := (x + vp.half) / (2 * vp.half)
	v := (vp.half - z) / (2 * vp.half)
	if u < 0 || u > 1 || v < 0 || v > 1 {
		return 0, 0, false
	}
	col := vp.x0 + 1 + int(math.Round(u*float64(vp.w-3)))
	row := vp.y0 + 1 + int(math.Round(v*float64(vp.h-3)))
	return col, row, true
}

func (r *TerminalRenderer) drawArena(vp viewport) {
	floor := tcell.StyleDefault.Background(RgbArenaFloor)
	wall := r.background.Foreground(RgbArenaWall)
	r.fill(vp.x0+1, vp.y0+1, vp.w-2, vp.h-2, ' ', floor)

	right, bottom := vp.x0+vp.w-1, vp.y0+vp.h-1
	for x := vp.x0 + 1; x < right; x++ {
		r.screen.SetContent(x, vp.y0, '─', nil, wall)
		r.screen.SetContent(x, bottom, '─', nil, wall)
	}
	for y := vp.y0 + 1; y < bottom; y++ {
		r.screen.SetContent(vp.x0, y, '│', nil, wall)
		r.screen.SetContent(right, y, '│', nil, wall)
	}
	r.screen.SetContent(vp.x0, vp.y0, '┌', nil, wall)
	r.screen.SetContent(right, vp.y0, '┐', nil, wall)
	r.screen.SetContent(vp.x0, bottom, '└', nil, wall)
	r.screen.SetContent(right, bottom, '┘', nil, wall)
}

// drawObstacle shades the cells covered by a box, clipped to the arena
func (r *TerminalRenderer) drawObstacle(vp viewport, o engine.ObstacleView) {
	clamp := func(v float64) float64 { return max(-vp.half, min(vp.half, v)) }
	x0, y0, _ := vp.project(clamp(o.Position[0]-o.HalfX), clamp(o.Position[2]+o.HalfZ))
	x1, y1, _ := vp.project(clamp(o.Position[0]+o.HalfX), clamp(o.Position[2]-o.HalfZ))
	r.fill(x0, y0, x1-x0+1, y1-y0+1, '█', r.background.Foreground(RgbObstacle))
}

func (r *TerminalRenderer) fill(x0, y0, w, h int, ch rune, style tcell.Style) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

// drawText writes s at (x, y), clipped to the screen width, and returns the next column
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
