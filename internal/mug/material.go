package mug

import (
	"image"
	"sync"
)

// Material holds the texture for one node. It implements the texture
// pipeline's Material interface: the pipeline assigns a new texture and
// marks the material dirty; the render loop consumes the dirty flag and
// redraws the preview.
type Material struct {
	mu      sync.RWMutex
	texture image.Image
	dirty   bool
}

// NewMaterial creates an empty material.
func NewMaterial() *Material {
	return &Material{}
}

// SetTexture replaces the material's texture image.
func (m *Material) SetTexture(img image.Image) {
	m.mu.Lock()
	m.texture = img
	m.mu.Unlock()
}

// Texture returns the current texture, or nil if none assigned yet.
func (m *Material) Texture() image.Image {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.texture
}

// MarkDirty flags the material for re-render.
func (m *Material) MarkDirty() {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
}

// ConsumeDirty returns the dirty flag and clears it. The render loop
// calls this once per frame to decide whether to redraw.
func (m *Material) ConsumeDirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.dirty
	m.dirty = false
	return d
}
