package render

import (
	"fmt"

	"github.com/lixenwraith/crash-cars/engine"
)

// drawHUD renders the status line and the vehicle roster line
func (r *TerminalRenderer) drawHUD(f *engine.Frame) {
	text := r.background.Foreground(RgbHUD)
	dim := r.background.Foreground(RgbHUDDim)

	vol := fmt.Sprintf("vol %3.0f%%", f.Volume*100)
	if f.Muted {
		vol = "muted"
	}
	status := fmt.Sprintf("tick %d  sim %.2fms  draw %.2fms  hits %d  pickups %d  %s",
		f.Tick,
		float64(f.SimCost.Microseconds())/1000,
		float64(f.RenderCost.Microseconds())/1000,
		f.Hits, f.Pickups, vol)
	x := r.drawText(0, 0, status, text)
	if f.Paused {
		r.drawText(x+2, 0, "PAUSED", r.background.Foreground(RgbPaused).Bold(true))
	}

	x = 0
	for _, v := range f.Vehicles {
		style := r.background.Foreground(VehicleColor(v.Handle))
		label := fmt.Sprintf("%s x%.1f", v.Name, v.CollisionCoefficient)
		if v.Eliminated {
			label = v.Name + " out"
			style = dim
		}
		x = r.drawText(x, 1, label, style)
		x = r.drawText(x, 1, "  ", dim)
	}
}
