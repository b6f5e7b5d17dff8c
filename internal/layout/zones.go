package layout

import (
	"mug-studio/pkg/geometry"
)

// Zones holds the derived constraint rectangles for one canvas size.
// Bleed always strictly contains safe; both are centered on the canvas.
type Zones struct {
	CanvasWidth  float64       `json:"canvas_width"`
	CanvasHeight float64       `json:"canvas_height"`
	Safe         geometry.Rect `json:"safe"`
	Bleed        geometry.Rect `json:"bleed"`
}

// ComputeZones derives the safe and bleed rectangles for the given canvas
// dimensions. Margins are defined against the spec's reference canvas and
// scale linearly with the actual canvas width, so the zones stay
// proportionally placed when the surface is resized.
func ComputeZones(spec Spec, canvasW, canvasH float64) Zones {
	refW, _ := spec.CanvasSize()
	scale := 1.0
	if refW > 0 {
		scale = canvasW / refW
	}

	canvas := geometry.NewRect(0, 0, canvasW, canvasH)
	return Zones{
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		Safe:         canvas.Inset(spec.SafeMargin() * scale),
		Bleed:        canvas.Inset(spec.BleedMargin() * scale),
	}
}

// CenterX returns the canvas's vertical centerline position.
func (z Zones) CenterX() float64 {
	return z.CanvasWidth / 2
}

// CenterY returns the canvas's horizontal centerline position.
func (z Zones) CenterY() float64 {
	return z.CanvasHeight / 2
}
