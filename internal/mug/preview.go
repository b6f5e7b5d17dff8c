package mug

import (
	"image"
	"image/color"
	"math"
)

// Engine is the rendering surface the core talks to: node lookup,
// material mutation through the nodes, and a per-frame render call.
type Engine interface {
	NodeByName(name string) *Node
	Render(w, h int, yaw float64) *image.RGBA
}

// Preview renders the model as a software cylindrical projection. It is
// deliberately simple: per-column angle mapping, cosine shading, and a
// flat handle silhouette. Good enough to judge a design, cheap enough
// to re-render every frame on the CPU.
type Preview struct {
	model *Model
}

// NewPreview creates a preview for the model.
func NewPreview(model *Model) *Preview {
	return &Preview{model: model}
}

// NodeByName exposes the model's node lookup.
func (p *Preview) NodeByName(name string) *Node {
	return p.model.NodeByName(name)
}

// wrapCoverage is the fraction of the circumference covered by the
// printed wrap. Sublimation wraps leave a vertical seam gap.
const wrapCoverage = 0.92

var (
	bgColor      = color.RGBA{R: 236, G: 239, B: 242, A: 255}
	ceramicColor = color.RGBA{R: 250, G: 250, B: 248, A: 255}
	handleColor  = color.RGBA{R: 242, G: 242, B: 240, A: 255}
	rimColor     = color.RGBA{R: 210, G: 210, B: 206, A: 255}
)

// Render draws the mug at the given yaw (radians, 0 = seam at back)
// into a w x h frame. The outer node's texture is wrapped around the
// visible half of the body; columns outside the wrap show plain
// ceramic.
func (p *Preview) Render(w, h int, yaw float64) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			frame.SetRGBA(x, y, bgColor)
		}
	}

	outer := p.model.NodeByName(NodeOuter)
	if outer == nil || w < 8 || h < 8 {
		return frame
	}
	texture := outer.Material.Texture()

	// Body placement in the frame: centered, with room for the handle
	// on the right.
	bodyTop := h / 8
	bodyBottom := h - h/8
	bodyHeight := bodyBottom - bodyTop
	maxRadius := math.Max(outer.RadiusTop, outer.RadiusBottom)
	bodyHalfW := float64(w) * 0.30
	centerX := float64(w) * 0.45

	for y := bodyTop; y < bodyBottom; y++ {
		v := float64(y-bodyTop) / float64(bodyHeight)
		// Taper: interpolate the radius down the body.
		radius := outer.RadiusTop + (outer.RadiusBottom-outer.RadiusTop)*v
		rowHalfW := bodyHalfW * radius / maxRadius

		for x := int(centerX - rowHalfW); x <= int(centerX+rowHalfW); x++ {
			if x < 0 || x >= w {
				continue
			}
			// sinTheta in [-1,1] across the visible half-cylinder
			sinTheta := (float64(x) - centerX) / rowHalfW
			if sinTheta < -1 || sinTheta > 1 {
				continue
			}
			theta := math.Asin(sinTheta) + yaw

			c := ceramicColor
			if texture != nil {
				// Normalize theta into [0, 2pi) and map the wrap arc
				// onto the texture's horizontal extent.
				a := math.Mod(theta+math.Pi, 2*math.Pi)
				if a < 0 {
					a += 2 * math.Pi
				}
				u := a / (2 * math.Pi * wrapCoverage)
				if u >= 0 && u < 1 {
					tb := texture.Bounds()
					tx := tb.Min.X + int(u*float64(tb.Dx()))
					ty := tb.Min.Y + int(v*float64(tb.Dy()))
					c = color.RGBAModel.Convert(texture.At(tx, ty)).(color.RGBA)
				}
			}

			// Cosine shading across the curvature
			shade := 0.55 + 0.45*math.Cos(math.Asin(sinTheta))
			frame.SetRGBA(x, y, color.RGBA{
				R: uint8(float64(c.R) * shade),
				G: uint8(float64(c.G) * shade),
				B: uint8(float64(c.B) * shade),
				A: 255,
			})
		}
	}

	p.drawRim(frame, centerX, bodyHalfW, bodyTop)
	p.drawHandle(frame, centerX+bodyHalfW, bodyTop+bodyHeight/5, bodyHeight)
	return frame
}

// drawRim draws the flattened ellipse of the mug opening.
func (p *Preview) drawRim(frame *image.RGBA, centerX, halfW float64, top int) {
	rimHalfH := halfW * 0.12
	for dy := -rimHalfH; dy <= rimHalfH; dy++ {
		for dx := -halfW; dx <= halfW; dx++ {
			nx := dx / halfW
			ny := dy / rimHalfH
			if nx*nx+ny*ny > 1 {
				continue
			}
			x, y := int(centerX+dx), top+int(dy)
			if x >= 0 && x < frame.Rect.Max.X && y >= 0 && y < frame.Rect.Max.Y {
				frame.SetRGBA(x, y, rimColor)
			}
		}
	}
}

// drawHandle draws the handle as a flat C silhouette to the right of
// the body.
func (p *Preview) drawHandle(frame *image.RGBA, bodyRight float64, top, bodyHeight int) {
	handle := p.model.NodeByName(NodeHandle)
	if handle == nil {
		return
	}

	outerR := float64(bodyHeight) * 0.32
	innerR := outerR * 0.6
	cx := bodyRight + outerR*0.25
	cy := float64(top) + float64(bodyHeight)*0.35

	for y := int(cy - outerR); y <= int(cy+outerR); y++ {
		for x := int(cx); x <= int(cx+outerR); x++ {
			if x < 0 || x >= frame.Rect.Max.X || y < 0 || y >= frame.Rect.Max.Y {
				continue
			}
			dx := float64(x) - cx
			dy := float64(y) - cy
			d := math.Sqrt(dx*dx + dy*dy)
			if d <= outerR && d >= innerR {
				frame.SetRGBA(x, y, handleColor)
			}
		}
	}
}
