package tui

import (
	"github.com/vovakirdan/asteroid-dodger/internal/core"
)

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2.0

// Viewport maps the play field onto a rectangle of terminal cells and back.
type Viewport struct {
	X, Y, W, H int // Cell rectangle inside the border
	FieldW     float64
	FieldH     float64
}

// FitViewport places the field inside a screen of screenW×screenH cells,
// leaving top rows for the HUD and one cell for the border on every side.
// The field keeps its proportions and is centred horizontally.
func FitViewport(screenW, screenH, top int, fieldW, fieldH float64) Viewport {
	availW := max(screenW-2, 1)
	availH := max(screenH-top-2, 1)

	h := availH
	w := int(float64(h) * fieldW / fieldH * cellAspect)
	if w > availW {
		w = availW
		h = max(int(float64(w)*fieldH/fieldW/cellAspect), 1)
	}
	w = max(w, 1)

	return Viewport{
		X:      (screenW-w-2)/2 + 1,
		Y:      top + 1,
		W:      w,
		H:      h,
		FieldW: fieldW,
		FieldH: fieldH,
	}
}

// ToCell converts a field position to a screen cell. The second result is
// false when the position lies outside the field.
func (v Viewport) ToCell(p core.Vec) (x, y int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X >= v.FieldW || p.Y >= v.FieldH {
		return 0, 0, false
	}
	x = v.X + int(p.X/v.FieldW*float64(v.W))
	y = v.Y + int(p.Y/v.FieldH*float64(v.H))
	return x, y, true
}

// ToField converts a screen cell to the field position at its centre. Cells
// outside the viewport are clamped to its edge.
func (v Viewport) ToField(x, y int) core.Vec {
	cx := core.Clamp(x-v.X, 0, v.W-1)
	cy := core.Clamp(y-v.Y, 0, v.H-1)
	return core.Vec{
		X: (float64(cx) + 0.5) / float64(v.W) * v.FieldW,
		Y: (float64(cy) + 0.5) / float64(v.H) * v.FieldH,
	}
}
