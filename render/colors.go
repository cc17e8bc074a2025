package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/crash-cars/engine"
)

// Arena palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbArenaFloor = tcell.NewRGBColor(36, 40, 59)    // Slightly lifted floor
	RgbArenaWall  = tcell.NewRGBColor(120, 120, 140) // Boundary
	RgbObstacle   = tcell.NewRGBColor(90, 90, 110)   // Static boxes
	RgbHUD        = tcell.NewRGBColor(255, 255, 255) // Status text
	RgbHUDDim     = tcell.NewRGBColor(150, 150, 160) // Secondary text
	RgbPaused     = tcell.NewRGBColor(255, 165, 0)   // Orange pause banner
)

// Vehicle colors, assigned by handle index
var vehiclePalette = []tcell.Color{
	tcell.NewRGBColor(255, 80, 80),   // Red
	tcell.NewRGBColor(100, 150, 255), // Blue
	tcell.NewRGBColor(50, 255, 50),   // Green
	tcell.NewRGBColor(255, 255, 0),   // Yellow
	tcell.NewRGBColor(200, 120, 255), // Purple
	tcell.NewRGBColor(0, 200, 200),   // Cyan
}

// VehicleColor returns the stable color for a vehicle handle
func VehicleColor(h engine.Handle) tcell.Color {
	return vehiclePalette[int(h.Index)%len(vehiclePalette)]
}

// PowerUpStyle returns glyph and color for a power-up type
func PowerUpStyle(t engine.PowerUpType) (rune, tcell.Color) {
	switch t {
	case engine.PowerUpBoost:
		return 'B', tcell.NewRGBColor(255, 165, 0)
	case engine.PowerUpJump:
		return 'J', tcell.NewRGBColor(140, 190, 255)
	case engine.PowerUpDamage:
		return 'D', tcell.NewRGBColor(255, 60, 60)
	case engine.PowerUpHealth:
		return 'H', tcell.NewRGBColor(60, 220, 120)
	default:
		return '?', RgbHUDDim
	}
}
