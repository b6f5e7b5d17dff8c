package app

import (
	"fmt"

	"mug-studio/internal/export"
)

// ExportPNG writes the print-resolution raster of the design.
func (s *State) ExportPNG(path string) error {
	zones := s.Zones()
	img, err := s.Raster.Render(s.Scene.Snapshot(), zones.CanvasWidth, zones.CanvasHeight, export.PrintMultiplier)
	if err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return export.WritePNG(path, img)
}

// ExportPDF writes a one-page proof sheet with the design at physical
// wrap size.
func (s *State) ExportPDF(path string) error {
	zones := s.Zones()
	img, err := s.Raster.Render(s.Scene.Snapshot(), zones.CanvasWidth, zones.CanvasHeight, export.PrintMultiplier)
	if err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return export.WritePDF(path, img, s.Spec())
}

// ExportJSON writes the design document: scene, layout metadata,
// analytics, and the version list.
func (s *State) ExportJSON(path string) error {
	design, err := s.Scene.Serialize()
	if err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	doc := export.BuildDocument(design, s.Spec(), s.Zones(), s.Analytics(), s.Versions.List())
	return export.WriteJSON(path, doc)
}
