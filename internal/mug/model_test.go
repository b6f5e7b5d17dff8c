package mug

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadModelMissingFileFallsBack(t *testing.T) {
	m := LoadModel(filepath.Join(t.TempDir(), "nope.json"))
	if m == nil {
		t.Fatal("LoadModel returned nil")
	}
	if m.Name != "placeholder" {
		t.Errorf("Name = %q, want placeholder", m.Name)
	}
	if m.NodeByName(NodeOuter) == nil {
		t.Error("placeholder has no outer node")
	}
	if m.OuterMaterial() == nil {
		t.Error("outer node has no material")
	}
}

func TestLoadModelFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mug.json")
	data := `{
		"name": "classic",
		"nodes": [
			{"name": "outer", "radius_top": 1, "radius_bottom": 1, "height": 2.2},
			{"name": "handle", "radius_top": 0.2, "radius_bottom": 0.2, "height": 1.2}
		]
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m := LoadModel(path)
	if m.Name != "classic" {
		t.Errorf("Name = %q, want classic", m.Name)
	}
	outer := m.NodeByName(NodeOuter)
	if outer == nil || outer.Height != 2.2 {
		t.Fatalf("outer node = %+v", outer)
	}
	if outer.Material == nil {
		t.Error("loaded nodes must get materials")
	}
	if m.NodeByName("spout") != nil {
		t.Error("unknown node name must return nil")
	}
}

func TestLoadModelWithoutOuterFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mug.json")
	data := `{"name": "broken", "nodes": [{"name": "handle"}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m := LoadModel(path)
	if m.Name != "placeholder" {
		t.Errorf("Name = %q, want placeholder fallback", m.Name)
	}
}

func TestMaterialDirtyLifecycle(t *testing.T) {
	m := NewMaterial()
	if m.Texture() != nil {
		t.Error("new material must have no texture")
	}
	if m.ConsumeDirty() {
		t.Error("new material must not be dirty")
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	m.SetTexture(img)
	m.MarkDirty()

	if m.Texture() != img {
		t.Error("Texture did not return the assigned image")
	}
	if !m.ConsumeDirty() {
		t.Fatal("expected dirty after MarkDirty")
	}
	if m.ConsumeDirty() {
		t.Error("ConsumeDirty must clear the flag")
	}
}
