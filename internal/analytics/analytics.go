// Package analytics derives side aggregates from scene state: color and
// font usage, object kind counts, and ink-coverage statistics. Nothing
// here is required for core correctness.
package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"mug-studio/internal/layout"
	"mug-studio/internal/scene"
)

// Summary is one recomputed snapshot of the aggregates.
type Summary struct {
	Objects int                `json:"objects"`
	ByKind  map[scene.Kind]int `json:"by_kind"`
	Colors  map[string]int     `json:"colors"`
	Fonts   map[string]int     `json:"fonts"`

	// Coverage is the fraction of the bleed area each design object's
	// bounding box occupies; mean and stddev over all design objects.
	CoverageMean   float64 `json:"coverage_mean"`
	CoverageStdDev float64 `json:"coverage_stddev"`
}

// Compute rebuilds the summary from the paint-ordered object list.
// Helper objects are excluded, matching the layer projection.
func Compute(objects []*scene.Object, zones layout.Zones) Summary {
	s := Summary{
		ByKind: make(map[scene.Kind]int),
		Colors: make(map[string]int),
		Fonts:  make(map[string]int),
	}

	bleedArea := zones.Bleed.Area()
	var coverages []float64

	for _, o := range objects {
		if o.Role.Helper() {
			continue
		}
		s.Objects++
		s.ByKind[o.Kind]++

		if o.Kind == scene.KindText && o.Text != nil {
			s.Fonts[o.Text.Font]++
			c := o.Text.Color
			s.Colors[fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)]++
		}

		if bleedArea > 0 {
			coverages = append(coverages, o.Bounds().Area()/bleedArea)
		}
	}

	if len(coverages) > 0 {
		s.CoverageMean = stat.Mean(coverages, nil)
		if len(coverages) > 1 {
			s.CoverageStdDev = stat.StdDev(coverages, nil)
		}
	}
	return s
}
