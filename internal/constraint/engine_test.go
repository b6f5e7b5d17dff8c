package constraint

import (
	"strings"
	"testing"

	"mug-studio/internal/layout"
	"mug-studio/internal/scene"
)

func testZones() layout.Zones {
	return layout.ComputeZones(layout.Mug11ozSpec(), 1000, 450)
}

func textObject(w, h, x, y float64) *scene.Object {
	o := scene.NewObject(scene.KindText, scene.RoleOrdinary)
	o.Text = &scene.TextPayload{Content: "hello", Font: "regular", FontSize: 48}
	o.Width, o.Height = w, h
	o.X, o.Y = x, y
	return o
}

func TestSnapToCenter(t *testing.T) {
	zones := testZones()
	cx, cy := zones.CenterX(), zones.CenterY()

	tests := []struct {
		name     string
		x, y     float64
		wantX    float64
		wantY    float64
		snappedX bool
		snappedY bool
	}{
		{"exactly at threshold", cx + 10, cy + 100, cx, cy + 100, true, false},
		{"one past threshold", cx + 11, cy + 100, cx + 11, cy + 100, false, false},
		{"both axes", cx - 4, cy + 7, cx, cy, true, true},
		{"y only", cx + 200, cy - 10, cx + 200, cy, false, true},
		{"far away", cx + 300, cy + 100, cx + 300, cy + 100, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(zones, nil)
			o := textObject(60, 30, tt.x, tt.y)
			got := e.SnapToCenter(o, 0)

			if o.X != tt.wantX || o.Y != tt.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", o.X, o.Y, tt.wantX, tt.wantY)
			}
			if got.SnappedX != tt.snappedX || got.SnappedY != tt.snappedY {
				t.Errorf("snap = %+v, want x=%v y=%v", got, tt.snappedX, tt.snappedY)
			}
		})
	}
}

func TestCheckBoundsClampsTextIntoSafeZone(t *testing.T) {
	zones := testZones()
	e := NewEngine(zones, nil)

	// 100x50 box dragged well past the left edge
	o := textObject(100, 50, 10, zones.CenterY())
	changed := e.CheckBounds(o)

	if !changed {
		t.Fatal("expected geometry change")
	}
	wantX := zones.Safe.X + 50
	if o.X != wantX {
		t.Errorf("X = %v, want %v", o.X, wantX)
	}
	if !zones.Safe.ContainsRect(o.Bounds()) {
		t.Errorf("bounds %+v not inside safe zone %+v", o.Bounds(), zones.Safe)
	}
}

func TestCheckBoundsScalesOversizedText(t *testing.T) {
	zones := testZones()
	e := NewEngine(zones, nil)

	o := textObject(2000, 100, zones.CenterX(), zones.CenterY())
	changed := e.CheckBounds(o)

	if !changed {
		t.Fatal("expected geometry change")
	}
	if o.ScaleX >= 1 || o.ScaleY >= 1 {
		t.Errorf("scale = (%v, %v), want reduced below 1", o.ScaleX, o.ScaleY)
	}
	if o.ScaleX != o.ScaleY {
		t.Errorf("scale-fit must be proportional, got (%v, %v)", o.ScaleX, o.ScaleY)
	}
	if !zones.Safe.ContainsRect(o.Bounds()) {
		t.Errorf("bounds %+v not inside safe zone %+v", o.Bounds(), zones.Safe)
	}
}

func TestCheckBoundsWarnsImageWithoutClamping(t *testing.T) {
	zones := testZones()
	var warnings []Warning
	e := NewEngine(zones, func(w Warning) { warnings = append(warnings, w) })

	o := scene.NewObject(scene.KindImage, scene.RoleOrdinary)
	o.Image = &scene.ImagePayload{Ref: "photo.png"}
	o.Width, o.Height = 100, 100
	o.X, o.Y = 5, zones.CenterY()

	changed := e.CheckBounds(o)

	if changed {
		t.Error("image geometry must not be altered")
	}
	if o.X != 5 {
		t.Errorf("X = %v, want 5", o.X)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(warnings))
	}
	if warnings[0].ObjectID != o.ID {
		t.Errorf("warning object = %s, want %s", warnings[0].ObjectID, o.ID)
	}
	if !strings.Contains(warnings[0].Message, "trim line") {
		t.Errorf("unexpected warning message %q", warnings[0].Message)
	}
}

func TestCheckBoundsInsideZonesIsQuiet(t *testing.T) {
	zones := testZones()
	var warnings []Warning
	e := NewEngine(zones, func(w Warning) { warnings = append(warnings, w) })

	o := textObject(100, 50, zones.CenterX(), zones.CenterY())
	if e.CheckBounds(o) {
		t.Error("no change expected for an in-bounds object")
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %d, want 0", len(warnings))
	}
}

func TestCheckAfterScaleDoesNotSnap(t *testing.T) {
	zones := testZones()
	e := NewEngine(zones, nil)

	// Within snap range of the vertical centerline
	o := textObject(100, 50, zones.CenterX()+5, zones.CenterY())
	e.CheckAfterScale(o)

	if o.X == zones.CenterX() {
		t.Error("scaling must not snap the object to center")
	}
}
