package panels

import (
	"fmt"
	"sort"
	"strings"

	"mug-studio/internal/analytics"
	"mug-studio/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// AnalyticsPanel shows live design statistics: object counts, palette,
// fonts, and coverage.
type AnalyticsPanel struct {
	state     *app.State
	container fyne.CanvasObject

	objectsLabel  *widget.Label
	colorsLabel   *widget.Label
	fontsLabel    *widget.Label
	coverageLabel *widget.Label
}

// NewAnalyticsPanel creates a new analytics panel.
func NewAnalyticsPanel(state *app.State) *AnalyticsPanel {
	ap := &AnalyticsPanel{
		state:         state,
		objectsLabel:  widget.NewLabel(""),
		colorsLabel:   widget.NewLabel(""),
		fontsLabel:    widget.NewLabel(""),
		coverageLabel: widget.NewLabel(""),
	}
	ap.colorsLabel.Wrapping = fyne.TextWrapWord
	ap.fontsLabel.Wrapping = fyne.TextWrapWord

	ap.container = container.NewVBox(
		widget.NewCard("Design Stats", "", container.NewVBox(
			ap.objectsLabel,
			ap.colorsLabel,
			ap.fontsLabel,
			ap.coverageLabel,
		)),
	)

	state.OnAnalytics(func(summary analytics.Summary) {
		ap.update(summary)
	})
	ap.update(state.Analytics())
	return ap
}

// Container returns the panel container.
func (ap *AnalyticsPanel) Container() fyne.CanvasObject {
	return ap.container
}

func (ap *AnalyticsPanel) update(s analytics.Summary) {
	var kinds []string
	for kind, n := range s.ByKind {
		kinds = append(kinds, fmt.Sprintf("%s: %d", kind, n))
	}
	sort.Strings(kinds)
	ap.objectsLabel.SetText(fmt.Sprintf("Objects: %d  (%s)", s.Objects, strings.Join(kinds, ", ")))
	ap.colorsLabel.SetText("Colors: " + strings.Join(sortedKeys(s.Colors), " "))
	ap.fontsLabel.SetText("Fonts: " + strings.Join(sortedKeys(s.Fonts), ", "))
	ap.coverageLabel.SetText(fmt.Sprintf("Coverage: %.1f%% mean, %.1f%% sd",
		s.CoverageMean*100, s.CoverageStdDev*100))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
