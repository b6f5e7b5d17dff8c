// Package layout provides print-layout specifications and zone management.
package layout

import (
	"encoding/json"
	"fmt"
	"os"
)

// Spec defines a print layout for one product variant.
type Spec interface {
	Name() string
	// WrapSizeMM returns the physical wrap dimensions in millimeters.
	WrapSizeMM() (width, height float64)
	// CanvasSize returns the reference design canvas size in pixels.
	CanvasSize() (width, height float64)
	// SafeMargin returns the safe-zone margin in reference canvas pixels.
	SafeMargin() float64
	// BleedMargin returns the bleed-zone margin in reference canvas pixels.
	BleedMargin() float64
	// PrintDPI returns the target print resolution.
	PrintDPI() float64
	Validate() error
}

// BaseSpec provides a common implementation of Spec.
type BaseSpec struct {
	SpecName       string  `json:"name"`
	WrapWidthMM    float64 `json:"wrap_width_mm"`
	WrapHeightMM   float64 `json:"wrap_height_mm"`
	CanvasWidthPx  float64 `json:"canvas_width_px"`
	CanvasHeightPx float64 `json:"canvas_height_px"`
	SafeMarginPx   float64 `json:"safe_margin_px"`
	BleedMarginPx  float64 `json:"bleed_margin_px"`
	DPI            float64 `json:"print_dpi"`
}

func (s *BaseSpec) Name() string {
	return s.SpecName
}

func (s *BaseSpec) WrapSizeMM() (width, height float64) {
	return s.WrapWidthMM, s.WrapHeightMM
}

func (s *BaseSpec) CanvasSize() (width, height float64) {
	return s.CanvasWidthPx, s.CanvasHeightPx
}

func (s *BaseSpec) SafeMargin() float64 {
	return s.SafeMarginPx
}

func (s *BaseSpec) BleedMargin() float64 {
	return s.BleedMarginPx
}

func (s *BaseSpec) PrintDPI() float64 {
	return s.DPI
}

func (s *BaseSpec) Validate() error {
	if s.SpecName == "" {
		return fmt.Errorf("layout spec name is required")
	}
	if s.WrapWidthMM <= 0 || s.WrapHeightMM <= 0 {
		return fmt.Errorf("wrap dimensions must be positive")
	}
	if s.CanvasWidthPx <= 0 || s.CanvasHeightPx <= 0 {
		return fmt.Errorf("canvas dimensions must be positive")
	}
	if s.BleedMarginPx < 0 || s.SafeMarginPx <= s.BleedMarginPx {
		return fmt.Errorf("safe margin must exceed bleed margin")
	}
	if s.SafeMarginPx*2 >= s.CanvasWidthPx || s.SafeMarginPx*2 >= s.CanvasHeightPx {
		return fmt.Errorf("safe margin leaves no printable area")
	}
	return nil
}

// SaveToFile saves the spec to a JSON file.
func (s *BaseSpec) SaveToFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadFromFile loads a spec from a JSON file.
func LoadFromFile(path string) (*BaseSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec BaseSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout spec: %w", err)
	}

	return &spec, nil
}

// Registry of known layout specs
var registry = make(map[string]Spec)

// Register adds a layout spec to the registry.
func Register(spec Spec) {
	registry[spec.Name()] = spec
}

// GetSpec returns a layout spec by name.
func GetSpec(name string) Spec {
	if spec, ok := registry[name]; ok {
		return spec
	}
	return nil
}

// ListSpecs returns all registered layout spec names.
func ListSpecs() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func init() {
	// Register built-in mug layouts
	Register(Mug11ozSpec())
	Register(Mug15ozSpec())
	Register(LatteSpec())
}
