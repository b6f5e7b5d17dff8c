// Package render rasterizes the 2D scene to an RGBA bitmap for texture
// upload and export.
package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"mug-studio/internal/scene"
)

// ImageSource resolves image and pattern references to decoded pixels.
// Returns nil for unknown references; the rasterizer draws a
// placeholder box in that case rather than failing the whole frame.
type ImageSource interface {
	Resolve(ref string) image.Image
}

// Built-in font names selectable on text objects.
const (
	FontRegular = "regular"
	FontBold    = "bold"
	FontMono    = "mono"
)

// Rasterizer draws paint-ordered scene objects onto a canvas-sized
// bitmap. Helper objects (guides, zone outlines) are excluded here so
// the scene's visibility flags never need to be toggled for a render.
type Rasterizer struct {
	source ImageSource

	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	name string
	size float64
}

// NewRasterizer creates a rasterizer backed by the given image source.
func NewRasterizer(source ImageSource) *Rasterizer {
	return &Rasterizer{
		source: source,
		fonts:  make(map[string]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
	}
}

func (r *Rasterizer) fontFor(name string) (*truetype.Font, error) {
	if f, ok := r.fonts[name]; ok {
		return f, nil
	}

	var data []byte
	switch name {
	case FontBold:
		data = gobold.TTF
	case FontMono:
		data = gomono.TTF
	default:
		data = goregular.TTF
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	r.fonts[name] = f
	return f, nil
}

func (r *Rasterizer) face(name string, size float64) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := faceKey{name: name, size: size}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	f, err := r.fontFor(name)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: size})
	r.faces[key] = face
	return face, nil
}

// MeasureText returns the untransformed content size of a text payload.
// Letter spacing widens each glyph advance except the last.
func (r *Rasterizer) MeasureText(t *scene.TextPayload) (w, h float64, err error) {
	face, err := r.face(t.Font, t.FontSize)
	if err != nil {
		return 0, 0, err
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)

	runes := []rune(t.Content)
	for _, rn := range runes {
		rw, _ := dc.MeasureString(string(rn))
		w += rw
	}
	if n := len(runes); n > 1 {
		w += t.LetterSpacing * float64(n-1)
	}
	return w, t.FontSize * 1.2, nil
}

// Render rasterizes the objects onto a white canvasW x canvasH surface
// scaled by multiplier. Invisible objects and helper roles are skipped.
func (r *Rasterizer) Render(objects []*scene.Object, canvasW, canvasH, multiplier float64) (image.Image, error) {
	if multiplier <= 0 {
		multiplier = 1
	}
	w := int(canvasW * multiplier)
	h := int(canvasH * multiplier)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("render: empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.Scale(multiplier, multiplier)

	for _, o := range objects {
		if !o.Visible || o.Role.Helper() {
			continue
		}
		switch o.Kind {
		case scene.KindPattern:
			r.drawPattern(dc, o, canvasW, canvasH)
		case scene.KindImage:
			r.drawImage(dc, o)
		case scene.KindText:
			if err := r.drawText(dc, o); err != nil {
				return nil, err
			}
		}
	}

	return dc.Image(), nil
}

// drawPattern tiles the referenced image across the whole canvas.
// Pattern fills are backgrounds: object position and scale are ignored,
// only the tile and its opacity matter.
func (r *Rasterizer) drawPattern(dc *gg.Context, o *scene.Object, canvasW, canvasH float64) {
	if o.Pattern == nil {
		return
	}
	tile := r.source.Resolve(o.Pattern.Tile)
	if tile == nil {
		return
	}

	opacity := o.Pattern.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	if opacity < 1 {
		tile = fade(tile, opacity)
	}

	dc.Push()
	dc.SetFillStyle(gg.NewSurfacePattern(tile, gg.RepeatBoth))
	dc.DrawRectangle(0, 0, canvasW, canvasH)
	dc.Fill()
	dc.Pop()
}

func (r *Rasterizer) drawImage(dc *gg.Context, o *scene.Object) {
	var img image.Image
	if o.Image != nil {
		img = r.source.Resolve(o.Image.Ref)
	}

	dc.Push()
	defer dc.Pop()
	if o.Rotation != 0 {
		dc.RotateAbout(gg.Radians(o.Rotation), o.X, o.Y)
	}

	if img == nil {
		// Placeholder for an image that failed to load or is still decoding
		dc.SetRGBA(0.8, 0.8, 0.8, 1)
		dc.DrawRectangle(o.X-o.Width*o.ScaleX/2, o.Y-o.Height*o.ScaleY/2, o.Width*o.ScaleX, o.Height*o.ScaleY)
		dc.Fill()
		return
	}

	b := img.Bounds()
	sx, sy := o.ScaleX, o.ScaleY
	if o.Width > 0 && b.Dx() > 0 {
		sx *= o.Width / float64(b.Dx())
	}
	if o.Height > 0 && b.Dy() > 0 {
		sy *= o.Height / float64(b.Dy())
	}
	dc.ScaleAbout(sx, sy, o.X, o.Y)
	dc.DrawImageAnchored(img, int(o.X), int(o.Y), 0.5, 0.5)
}

func (r *Rasterizer) drawText(dc *gg.Context, o *scene.Object) error {
	if o.Text == nil {
		return nil
	}
	face, err := r.face(o.Text.Font, o.Text.FontSize)
	if err != nil {
		return err
	}

	dc.Push()
	defer dc.Pop()
	if o.Rotation != 0 {
		dc.RotateAbout(gg.Radians(o.Rotation), o.X, o.Y)
	}
	dc.ScaleAbout(o.ScaleX, o.ScaleY, o.X, o.Y)
	dc.SetFontFace(face)
	c := o.Text.Color
	dc.SetColor(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})

	if o.Text.LetterSpacing == 0 {
		dc.DrawStringAnchored(o.Text.Content, o.X, o.Y, 0.5, 0.5)
		return nil
	}

	// Manual advance for letter spacing: lay glyphs out left to right,
	// centered on the object position as a whole.
	runes := []rune(o.Text.Content)
	total := 0.0
	widths := make([]float64, len(runes))
	for i, rn := range runes {
		rw, _ := dc.MeasureString(string(rn))
		widths[i] = rw
		total += rw
	}
	if len(runes) > 1 {
		total += o.Text.LetterSpacing * float64(len(runes)-1)
	}

	x := o.X - total/2
	for i, rn := range runes {
		dc.DrawStringAnchored(string(rn), x+widths[i]/2, o.Y, 0.5, 0.5)
		x += widths[i] + o.Text.LetterSpacing
	}
	return nil
}

// fade returns a copy of img with its alpha multiplied by opacity.
// Works in non-premultiplied space so the color channels stay valid.
func fade(img image.Image, opacity float64) image.Image {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = uint8(float64(c.A) * opacity)
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
