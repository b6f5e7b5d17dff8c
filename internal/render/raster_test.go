package render

import (
	"image"
	"image/color"
	"testing"

	"mug-studio/internal/scene"
)

type mapSource map[string]image.Image

func (m mapSource) Resolve(ref string) image.Image { return m[ref] }

func solidTile(c color.RGBA, size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestMeasureText(t *testing.T) {
	r := NewRasterizer(mapSource{})

	w1, h, err := r.MeasureText(&scene.TextPayload{Content: "ab", Font: FontRegular, FontSize: 48})
	if err != nil {
		t.Fatal(err)
	}
	if w1 <= 0 {
		t.Errorf("width = %v, want > 0", w1)
	}
	if h != 48*1.2 {
		t.Errorf("height = %v, want %v", h, 48*1.2)
	}

	w2, _, err := r.MeasureText(&scene.TextPayload{Content: "ab", Font: FontRegular, FontSize: 48, LetterSpacing: 10})
	if err != nil {
		t.Fatal(err)
	}
	if w2 != w1+10 {
		t.Errorf("spaced width = %v, want %v + 10", w2, w1)
	}
}

func TestRenderSkipsHelpersAndInvisible(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	src := mapSource{"tile": solidTile(red, 4)}
	r := NewRasterizer(src)

	guide := scene.NewObject(scene.KindImage, scene.RoleGuide)
	guide.X, guide.Y = 10, 10
	guide.Width, guide.Height = 20, 20

	hidden := scene.NewObject(scene.KindPattern, scene.RolePatternFill)
	hidden.Pattern = &scene.PatternPayload{Tile: "tile", Opacity: 1}
	hidden.Visible = false

	img, err := r.Render([]*scene.Object{guide, hidden}, 20, 20, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Nothing drawable remains, so the canvas stays white.
	got := color.RGBAModel.Convert(img.At(10, 10)).(color.RGBA)
	if got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("pixel = %+v, want white", got)
	}
}

func TestRenderTilesPattern(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	r := NewRasterizer(mapSource{"dots": solidTile(red, 4)})

	o := scene.NewObject(scene.KindPattern, scene.RolePatternFill)
	o.Pattern = &scene.PatternPayload{Tile: "dots", Opacity: 1}
	o.X, o.Y = 15, 15
	o.Width, o.Height = 30, 30

	img, err := r.Render([]*scene.Object{o}, 30, 30, 1)
	if err != nil {
		t.Fatal(err)
	}

	// A 4px tile repeated over a 30px canvas covers every corner.
	for _, pt := range []image.Point{{1, 1}, {28, 1}, {1, 28}, {28, 28}} {
		got := color.RGBAModel.Convert(img.At(pt.X, pt.Y)).(color.RGBA)
		if got.R != 255 || got.G != 0 {
			t.Errorf("pixel at %v = %+v, want red tile", pt, got)
		}
	}
}

func TestRenderMissingImageDrawsPlaceholder(t *testing.T) {
	r := NewRasterizer(mapSource{})

	o := scene.NewObject(scene.KindImage, scene.RoleOrdinary)
	o.Image = &scene.ImagePayload{Ref: "still-decoding.png"}
	o.X, o.Y = 20, 20
	o.Width, o.Height = 20, 20

	img, err := r.Render([]*scene.Object{o}, 40, 40, 1)
	if err != nil {
		t.Fatal(err)
	}

	got := color.RGBAModel.Convert(img.At(20, 20)).(color.RGBA)
	if got.R == 255 && got.G == 255 && got.B == 255 {
		t.Error("placeholder box not drawn for an unresolved image")
	}
}

func TestRenderMultiplierScalesOutput(t *testing.T) {
	r := NewRasterizer(mapSource{})
	img, err := r.Render(nil, 100, 45, 4)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 180 {
		t.Errorf("bounds = %v, want 400x180", b)
	}
}

func TestFadePreservesColorChannels(t *testing.T) {
	tile := solidTile(color.RGBA{R: 200, G: 100, B: 50, A: 255}, 2)
	faded := fade(tile, 0.5)

	got := color.NRGBAModel.Convert(faded.At(0, 0)).(color.NRGBA)
	if got.R != 200 || got.G != 100 || got.B != 50 {
		t.Errorf("color = %+v, want channels unchanged", got)
	}
	if got.A < 126 || got.A > 128 {
		t.Errorf("alpha = %d, want about 127", got.A)
	}
}
