// Package texture runs the debounced 2D-to-3D synchronization pipeline:
// rasterize the scene, decode the bitmap, and hand it to the mug's
// outer-surface material.
package texture

import (
	"bytes"
	"image"
	"image/png"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"

	"mug-studio/internal/render"
	"mug-studio/internal/scene"
)

// DefaultDebounce is the trailing-edge debounce window: a burst of
// schedule calls collapses to one execution timed from the last call.
const DefaultDebounce = 300 * time.Millisecond

// Multiplier limits. The render multiplier scales with the preview
// viewport so a wide window gets a sharper texture, capped at 4x.
const (
	maxMultiplier  = 4.0
	viewportDivide = 500.0
)

// Material is the 3D-side sink for a synchronized texture.
type Material interface {
	// SetTexture replaces the material's texture image.
	SetTexture(img image.Image)
	// MarkDirty flags the material for re-render on the next frame.
	MarkDirty()
}

// Pipeline owns the debounce timer and the rasterize-decode-assign
// sequence. All entry points return immediately; the work runs on the
// debounce timer's goroutine and never blocks user input.
type Pipeline struct {
	mu        sync.Mutex
	sceneRef  *scene.Scene
	raster    *render.Rasterizer
	material  Material
	canvasW   float64
	canvasH   float64
	viewportW float64

	debounced func(func())
	// encode/decode are the bitmap round-trip. Split out so tests can
	// inject a corrupt-bitmap failure.
	encode func(image.Image) ([]byte, error)
	decode func([]byte) (image.Image, error)

	syncCount int
}

// NewPipeline creates a pipeline with the default 300ms window.
func NewPipeline(s *scene.Scene, r *render.Rasterizer, m Material) *Pipeline {
	return NewPipelineWithWindow(s, r, m, DefaultDebounce)
}

// NewPipelineWithWindow creates a pipeline with a custom debounce
// window. Tests use short windows.
func NewPipelineWithWindow(s *scene.Scene, r *render.Rasterizer, m Material, window time.Duration) *Pipeline {
	return &Pipeline{
		sceneRef:  s,
		raster:    r,
		material:  m,
		debounced: debounce.New(window),
		encode: func(img image.Image) ([]byte, error) {
			var buf bytes.Buffer
			err := png.Encode(&buf, img)
			return buf.Bytes(), err
		},
		decode: func(data []byte) (image.Image, error) {
			img, _, err := image.Decode(bytes.NewReader(data))
			return img, err
		},
	}
}

// SetCanvasSize updates the rasterization surface dimensions.
func (p *Pipeline) SetCanvasSize(w, h float64) {
	p.mu.Lock()
	p.canvasW = w
	p.canvasH = h
	p.mu.Unlock()
}

// SetViewportWidth records the preview viewport width used to pick the
// render multiplier.
func (p *Pipeline) SetViewportWidth(w float64) {
	p.mu.Lock()
	p.viewportW = w
	p.mu.Unlock()
}

// Multiplier returns the current render resolution multiplier:
// viewportWidth/500, at least 1, capped at 4.
func (p *Pipeline) Multiplier() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.multiplierLocked()
}

func (p *Pipeline) multiplierLocked() float64 {
	m := p.viewportW / viewportDivide
	if m < 1 {
		m = 1
	}
	if m > maxMultiplier {
		m = maxMultiplier
	}
	return m
}

// ScheduleSync requests a texture refresh. Repeated calls within the
// debounce window collapse to one execution at the window's end; a
// pending run is implicitly superseded, never explicitly cancelled.
func (p *Pipeline) ScheduleSync() {
	p.debounced(p.sync)
}

// SyncNow runs the pipeline immediately, bypassing the debounce.
// Export paths use it for a guaranteed-fresh texture.
func (p *Pipeline) SyncNow() {
	p.sync()
}

// sync is one pipeline execution: rasterize (helper objects excluded),
// round-trip the bitmap through its encoded form, and assign the
// decoded texture. A decode failure leaves the previous texture in
// place.
func (p *Pipeline) sync() {
	p.mu.Lock()
	w, h := p.canvasW, p.canvasH
	mult := p.multiplierLocked()
	p.mu.Unlock()
	if w <= 0 || h <= 0 {
		return
	}

	img, err := p.raster.Render(p.sceneRef.Snapshot(), w, h, mult)
	if err != nil {
		log.Printf("texture sync: render failed: %v", err)
		return
	}

	data, err := p.encode(img)
	if err != nil {
		log.Printf("texture sync: encode failed: %v", err)
		return
	}
	decoded, err := p.decode(data)
	if err != nil {
		// Corrupt bitmap: skip assignment, keep the previous texture.
		log.Printf("texture sync: decode failed, keeping previous texture: %v", err)
		return
	}

	p.material.SetTexture(decoded)
	p.material.MarkDirty()

	p.mu.Lock()
	p.syncCount++
	p.mu.Unlock()
}

// SyncCount returns how many pipeline executions have completed.
func (p *Pipeline) SyncCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.syncCount
}
