// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// RotateAround returns the point rotated by the given angle (radians)
// around a pivot point.
func (p Point2D) RotateAround(pivot Point2D, radians float64) Point2D {
	sin, cos := math.Sincos(radians)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point2D{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Contains returns true if the point is inside the rectangle (inclusive).
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsRect returns true if the other rectangle lies fully inside this one.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// MaxX returns the right edge coordinate.
func (r Rect) MaxX() float64 {
	return r.X + r.Width
}

// MaxY returns the bottom edge coordinate.
func (r Rect) MaxY() float64 {
	return r.Y + r.Height
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Inset returns the rectangle shrunk by the given margin on all sides.
// A negative margin grows the rectangle.
func (r Rect) Inset(margin float64) Rect {
	return Rect{
		X:      r.X + margin,
		Y:      r.Y + margin,
		Width:  r.Width - 2*margin,
		Height: r.Height - 2*margin,
	}
}

// Intersects returns true if this rectangle intersects with another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height && r.Y+r.Height > other.Y
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	x2 := math.Max(r.X+r.Width, other.X+other.Width)
	y2 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x, Y: y, Width: x2 - x, Height: y2 - y}
}

// Size represents a 2D size.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clamp limits a value to the range [lo, hi]. If lo > hi the midpoint
// is returned, which is what center-clamping a too-large box wants.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BoundingBox computes the axis-aligned bounding box of a set of points.
func BoundingBox(points []Point2D) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
