// Package panels provides UI panels for the application.
package panels

import (
	"mug-studio/internal/app"
	"mug-studio/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.DesignCanvas
	container *container.AppTabs

	layersPanel     *LayersPanel
	propertiesPanel *PropertiesPanel
	previewPanel    *PreviewPanel
	versionsPanel   *VersionsPanel
	analyticsPanel  *AnalyticsPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cvs *canvas.DesignCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: cvs,
	}

	sp.layersPanel = NewLayersPanel(state, cvs)
	sp.propertiesPanel = NewPropertiesPanel(state, cvs)
	sp.previewPanel = NewPreviewPanel(state)
	sp.versionsPanel = NewVersionsPanel(state, cvs)
	sp.analyticsPanel = NewAnalyticsPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Layers", sp.layersPanel.Container()),
		container.NewTabItem("Properties", sp.propertiesPanel.Container()),
		container.NewTabItem("Preview", sp.previewPanel.Container()),
		container.NewTabItem("Versions", sp.versionsPanel.Container()),
		container.NewTabItem("Analytics", sp.analyticsPanel.Container()),
	)

	// Keep the panels in step with the scene and selection.
	state.OnLayersChanged(func() {
		sp.layersPanel.Refresh()
		sp.propertiesPanel.Refresh()
	})

	cvs.OnSelect(func(id string) {
		sp.propertiesPanel.SetObject(id)
		sp.layersPanel.SelectObject(id)
	})

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// StartPreview begins the 3D preview render loop.
func (sp *SidePanel) StartPreview() {
	sp.previewPanel.Start()
}

// StopPreview stops the 3D preview render loop.
func (sp *SidePanel) StopPreview() {
	sp.previewPanel.Stop()
}
