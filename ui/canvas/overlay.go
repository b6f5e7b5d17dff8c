package canvas

import (
	"image"
	"image/color"

	"mug-studio/internal/layout"
	"mug-studio/internal/scene"
	"mug-studio/pkg/geometry"
)

var (
	safeZoneColor  = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	bleedZoneColor = color.RGBA{R: 201, G: 60, B: 60, A: 255}
	guideColor     = color.RGBA{R: 66, G: 133, B: 244, A: 255}
	selectionColor = color.RGBA{R: 255, G: 170, B: 0, A: 255}
)

// drawZones outlines the safe and bleed zones at the current zoom.
func (dc *DesignCanvas) drawZones(output *image.RGBA, zones layout.Zones) {
	dc.drawRectOutline(output, zones.Safe, safeZoneColor, 1)
	dc.drawRectOutline(output, zones.Bleed, bleedZoneColor, 1)
}

// drawGuides draws the centerline guides whose helper objects are
// currently visible (a snap is engaged).
func (dc *DesignCanvas) drawGuides(output *image.RGBA, zones layout.Zones) {
	_, _, guideVID, guideHID := dc.state.HelperIDs()

	if o := dc.state.Scene.Get(guideVID); o != nil && o.Visible {
		x := int(zones.CenterX() * dc.zoom)
		dc.drawVLine(output, x, guideColor)
	}
	if o := dc.state.Scene.Get(guideHID); o != nil && o.Visible {
		y := int(zones.CenterY() * dc.zoom)
		dc.drawHLine(output, y, guideColor)
	}
}

// drawSelection outlines the selected object's bounding box.
func (dc *DesignCanvas) drawSelection(output *image.RGBA, o *scene.Object) {
	dc.drawRectOutline(output, o.Bounds(), selectionColor, 2)
}

func (dc *DesignCanvas) drawRectOutline(output *image.RGBA, r geometry.Rect, c color.RGBA, thickness int) {
	x1 := int(r.X * dc.zoom)
	y1 := int(r.Y * dc.zoom)
	x2 := int(r.MaxX() * dc.zoom)
	y2 := int(r.MaxY() * dc.zoom)

	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			setPixel(output, x, y1+t, c)
			setPixel(output, x, y2-t, c)
		}
		for y := y1; y <= y2; y++ {
			setPixel(output, x1+t, y, c)
			setPixel(output, x2-t, y, c)
		}
	}
}

func (dc *DesignCanvas) drawVLine(output *image.RGBA, x int, c color.RGBA) {
	b := output.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		setPixel(output, x, y, c)
	}
}

func (dc *DesignCanvas) drawHLine(output *image.RGBA, y int, c color.RGBA) {
	b := output.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		setPixel(output, x, y, c)
	}
}

func setPixel(output *image.RGBA, x, y int, c color.RGBA) {
	b := output.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	output.SetRGBA(x, y, c)
}
