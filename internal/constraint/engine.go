// Package constraint enforces the print-layout bounds rules: bleed-zone
// warnings, safe-zone clamping for text, and centerline snapping.
package constraint

import (
	"fmt"
	"sync"

	"mug-studio/internal/layout"
	"mug-studio/internal/scene"
	"mug-studio/pkg/geometry"
)

// DefaultSnapThreshold is the snap distance to a centerline in canvas
// pixels.
const DefaultSnapThreshold = 10.0

// Warning is a non-fatal, user-visible constraint notice. The UI shows
// it transiently and dismisses it after a few seconds; geometry is never
// altered on a warning.
type Warning struct {
	ObjectID string
	Message  string
}

// SnapResult reports which axes snapped to a canvas centerline. The
// designer surface shows the matching guide line for each snapped axis
// and hides it otherwise.
type SnapResult struct {
	SnappedX bool
	SnappedY bool
}

// Engine validates and corrects object geometry against the active
// zones. Violations never produce errors: they either warn or silently
// clamp, so a constraint check cannot fail a user gesture.
type Engine struct {
	mu     sync.RWMutex
	zones  layout.Zones
	warnFn func(Warning)
}

// NewEngine creates an engine for the given zones. warnFn receives
// soft-violation notices; nil disables reporting.
func NewEngine(zones layout.Zones, warnFn func(Warning)) *Engine {
	return &Engine{zones: zones, warnFn: warnFn}
}

// SetZones replaces the active zones. Called whenever the canvas is
// resized.
func (e *Engine) SetZones(zones layout.Zones) {
	e.mu.Lock()
	e.zones = zones
	e.mu.Unlock()
}

// Zones returns the active zones.
func (e *Engine) Zones() layout.Zones {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.zones
}

func (e *Engine) warn(w Warning) {
	e.mu.RLock()
	fn := e.warnFn
	e.mu.RUnlock()
	if fn != nil {
		fn(w)
	}
}

// CheckBounds validates the object's bounding box against the zones.
//
// Any object whose box exceeds the bleed zone gets a transient warning;
// its geometry is left untouched. Text objects are additionally
// hard-constrained to the safe zone: the scale is reduced
// proportionally until the box fits, then the center is clamped so the
// box stays inside. Scale-fit always resolves before position-clamp.
// Images and pattern fills are warned, never clamped.
//
// Returns true if the object's geometry was changed.
func (e *Engine) CheckBounds(o *scene.Object) bool {
	zones := e.Zones()
	box := o.Bounds()

	if !zones.Bleed.ContainsRect(box) {
		e.warn(Warning{
			ObjectID: o.ID,
			Message:  fmt.Sprintf("%s extends past the trim line and may be cut off", o.DisplayName()),
		})
	}

	if o.Kind != scene.KindText {
		return false
	}
	return e.fitToSafeZone(o)
}

// fitToSafeZone rescales and re-centers a text object into the safe
// zone. Scale first: a box wider or taller than the zone can never be
// clamped into it by moving alone.
func (e *Engine) fitToSafeZone(o *scene.Object) bool {
	zones := e.Zones()
	safe := zones.Safe
	changed := false

	box := o.Bounds()
	if box.Width > safe.Width || box.Height > safe.Height {
		factor := 1.0
		if box.Width > safe.Width {
			factor = safe.Width / box.Width
		}
		if f := safe.Height / box.Height; box.Height > safe.Height && f < factor {
			factor = f
		}
		o.ScaleX *= factor
		o.ScaleY *= factor
		changed = true
		box = o.Bounds()
	}

	halfW := box.Width / 2
	halfH := box.Height / 2
	clampedX := geometry.Clamp(o.X, safe.X+halfW, safe.MaxX()-halfW)
	clampedY := geometry.Clamp(o.Y, safe.Y+halfH, safe.MaxY()-halfH)
	if clampedX != o.X || clampedY != o.Y {
		o.X = clampedX
		o.Y = clampedY
		changed = true
	}
	return changed
}

// SnapToCenter snaps the object's center to the canvas centerlines when
// within threshold pixels, independently per axis. Pass threshold <= 0
// for DefaultSnapThreshold. Called on every move; the scale-only path
// goes through CheckAfterScale instead and never snaps.
func (e *Engine) SnapToCenter(o *scene.Object, threshold float64) SnapResult {
	if threshold <= 0 {
		threshold = DefaultSnapThreshold
	}
	zones := e.Zones()

	var result SnapResult
	if dx := o.X - zones.CenterX(); dx >= -threshold && dx <= threshold {
		o.X = zones.CenterX()
		result.SnappedX = true
	}
	if dy := o.Y - zones.CenterY(); dy >= -threshold && dy <= threshold {
		o.Y = zones.CenterY()
		result.SnappedY = true
	}
	return result
}

// CheckAfterScale runs the bounds check only. Scaling an object does
// not snap it; a resize gesture that also recentered the object would
// fight the user's handle drag.
func (e *Engine) CheckAfterScale(o *scene.Object) bool {
	return e.CheckBounds(o)
}
