// Package scene provides the 2D design surface object model: placed
// elements, paint order, mutation events, and whole-scene serialization.
package scene

import (
	"math"
	"path/filepath"

	"github.com/google/uuid"

	"mug-studio/pkg/geometry"
)

// Kind identifies what a placed object renders as.
type Kind string

const (
	KindText    Kind = "text"
	KindImage   Kind = "image"
	KindPattern Kind = "pattern"
)

// Role tags how an object participates in the design.
type Role int

const (
	RoleOrdinary     Role = iota // regular user-placed design element
	RolePatternFill              // background-filling pattern, locked by default
	RoleGuide                    // alignment guide, never printed
	RoleExportHidden             // helper visuals excluded from rasterization
)

func (r Role) String() string {
	switch r {
	case RoleOrdinary:
		return "ordinary"
	case RolePatternFill:
		return "pattern-fill"
	case RoleGuide:
		return "guide"
	case RoleExportHidden:
		return "export-hidden"
	default:
		return "unknown"
	}
}

// Helper reports whether the role marks a non-design helper object.
func (r Role) Helper() bool {
	return r == RoleGuide || r == RoleExportHidden
}

// RGBA is a JSON-friendly color value.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// TextPayload holds the text-specific attributes of an object.
type TextPayload struct {
	Content       string  `json:"content"`
	Font          string  `json:"font"`
	FontSize      float64 `json:"font_size"`
	Color         RGBA    `json:"color"`
	LetterSpacing float64 `json:"letter_spacing"`
}

// ImagePayload references an uploaded image by path. The decoded pixels
// live in the application's image store, not on the object, so history
// snapshots stay cheap.
type ImagePayload struct {
	Ref string `json:"ref"`
}

// PatternPayload references a pattern tile from the pattern library.
type PatternPayload struct {
	Tile    string  `json:"tile"`
	Opacity float64 `json:"opacity"`
}

// Object is one placed design element on the 2D surface.
// X, Y is the object's center in canvas coordinates. Width and Height are
// the untransformed content size; Bounds applies scale and rotation.
type Object struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Role     Role    `json:"role"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ScaleX   float64 `json:"scale_x"`
	ScaleY   float64 `json:"scale_y"`
	Rotation float64 `json:"rotation"` // degrees
	Locked   bool    `json:"locked"`
	Visible  bool    `json:"visible"`

	Text    *TextPayload    `json:"text,omitempty"`
	Image   *ImagePayload   `json:"image,omitempty"`
	Pattern *PatternPayload `json:"pattern,omitempty"`
}

// NewObject creates an object with a fresh ID, unit scale, and
// visibility on.
func NewObject(kind Kind, role Role) *Object {
	return &Object{
		ID:      uuid.NewString(),
		Kind:    kind,
		Role:    role,
		ScaleX:  1,
		ScaleY:  1,
		Visible: true,
	}
}

// Center returns the object's center point.
func (o *Object) Center() geometry.Point2D {
	return geometry.Point2D{X: o.X, Y: o.Y}
}

// Bounds returns the axis-aligned bounding box of the scaled, rotated
// object in canvas coordinates.
func (o *Object) Bounds() geometry.Rect {
	halfW := o.Width * o.ScaleX / 2
	halfH := o.Height * o.ScaleY / 2
	if o.Rotation == 0 {
		return geometry.NewRect(o.X-halfW, o.Y-halfH, halfW*2, halfH*2)
	}

	center := o.Center()
	rad := o.Rotation * deg2rad
	corners := []geometry.Point2D{
		{X: o.X - halfW, Y: o.Y - halfH},
		{X: o.X + halfW, Y: o.Y - halfH},
		{X: o.X + halfW, Y: o.Y + halfH},
		{X: o.X - halfW, Y: o.Y + halfH},
	}
	for i, c := range corners {
		corners[i] = c.RotateAround(center, rad)
	}
	return geometry.BoundingBox(corners)
}

const deg2rad = math.Pi / 180

// HitTest returns true if the canvas point lies inside the object's
// bounding box.
func (o *Object) HitTest(x, y float64) bool {
	return o.Bounds().Contains(geometry.Point2D{X: x, Y: y})
}

// DisplayName returns a short user-facing label for layer lists.
func (o *Object) DisplayName() string {
	switch o.Kind {
	case KindText:
		if o.Text != nil && o.Text.Content != "" {
			return truncate(o.Text.Content, 20)
		}
		return "Text"
	case KindImage:
		if o.Image != nil && o.Image.Ref != "" {
			return filepath.Base(o.Image.Ref)
		}
		return "Image"
	case KindPattern:
		return "Pattern"
	default:
		return string(o.Kind)
	}
}

// Clone returns a deep copy of the object.
func (o *Object) Clone() *Object {
	clone := *o
	if o.Text != nil {
		t := *o.Text
		clone.Text = &t
	}
	if o.Image != nil {
		im := *o.Image
		clone.Image = &im
	}
	if o.Pattern != nil {
		p := *o.Pattern
		clone.Pattern = &p
	}
	return &clone
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
