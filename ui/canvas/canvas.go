// Package canvas provides the 2D design surface: the rasterized wrap
// with zone overlays, drag-to-move, and snap guides.
package canvas

import (
	"image"

	"mug-studio/internal/app"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.25
	maxZoom  = 4.0
	zoomStep = 1.25
)

// DesignCanvas displays the wrap design and handles direct
// manipulation of the placed objects.
type DesignCanvas struct {
	widget.BaseWidget

	state *app.State

	raster  *fynecanvas.Raster
	content *dragSurface
	scroll  *zoomScroll
	zoom    float64
	imgSize fyne.Size

	selectedID string
	dragging   bool
	dragOffX   float64
	dragOffY   float64

	showZones bool

	onSelect     func(id string)
	onZoomChange func(zoom float64)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *DesignCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *DesignCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// dragSurface wraps the raster to handle mouse events.
type dragSurface struct {
	widget.BaseWidget
	canvas *DesignCanvas
	raster *fynecanvas.Raster
}

func newDragSurface(dc *DesignCanvas, raster *fynecanvas.Raster) *dragSurface {
	ds := &dragSurface{canvas: dc, raster: raster}
	ds.ExtendBaseWidget(ds)
	return ds
}

func (ds *dragSurface) CreateRenderer() fyne.WidgetRenderer {
	return &dragSurfaceRenderer{content: ds}
}

func (ds *dragSurface) MinSize() fyne.Size {
	return ds.raster.MinSize()
}

// Tapped selects the topmost object under the pointer, or clears the
// selection on empty space.
func (ds *dragSurface) Tapped(ev *fyne.PointEvent) {
	dc := ds.canvas
	x, y := dc.toCanvas(ev.Position)

	var id string
	if o := dc.state.Scene.HitTest(x, y); o != nil {
		id = o.ID
	}
	dc.Select(id)
}

// Dragged moves the object picked up at drag start. Intermediate
// positions are staged; the mutation commits on DragEnd.
func (ds *dragSurface) Dragged(ev *fyne.DragEvent) {
	dc := ds.canvas
	x, y := dc.toCanvas(ev.Position)

	if !dc.dragging {
		o := dc.state.Scene.HitTest(x, y)
		if o == nil {
			return
		}
		dc.dragging = true
		dc.dragOffX = x - o.X
		dc.dragOffY = y - o.Y
		dc.Select(o.ID)
	}
	if dc.selectedID == "" {
		return
	}

	dc.state.MoveObject(dc.selectedID, x-dc.dragOffX, y-dc.dragOffY)
	dc.Refresh()
}

func (ds *dragSurface) DragEnd() {
	dc := ds.canvas
	if !dc.dragging {
		return
	}
	dc.dragging = false
	if dc.selectedID != "" {
		dc.state.EndMove(dc.selectedID)
	}
	dc.Refresh()
}

func (ds *dragSurface) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		ds.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		ds.canvas.ZoomOut()
	}
}

type dragSurfaceRenderer struct {
	content *dragSurface
}

func (r *dragSurfaceRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *dragSurfaceRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *dragSurfaceRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *dragSurfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *dragSurfaceRenderer) Destroy() {}

// NewDesignCanvas creates the design surface bound to the app state.
func NewDesignCanvas(state *app.State) *DesignCanvas {
	dc := &DesignCanvas{
		state:     state,
		zoom:      1.0,
		showZones: true,
	}

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.ScaleMode = fynecanvas.ImageScalePixels
	dc.updateContentSize()

	dc.content = newDragSurface(dc, dc.raster)
	dc.scroll = newZoomScroll(dc.content, dc)

	dc.ExtendBaseWidget(dc)
	return dc
}

// Container returns the canvas container for embedding in layouts.
func (dc *DesignCanvas) Container() fyne.CanvasObject {
	return dc.scroll
}

// Select sets the selected object and notifies the listener.
func (dc *DesignCanvas) Select(id string) {
	if dc.selectedID == id {
		return
	}
	dc.selectedID = id
	if dc.onSelect != nil {
		dc.onSelect(id)
	}
	dc.Refresh()
}

// SelectedID returns the selected object's ID, or "".
func (dc *DesignCanvas) SelectedID() string {
	return dc.selectedID
}

// OnSelect sets the selection-change callback.
func (dc *DesignCanvas) OnSelect(fn func(id string)) {
	dc.onSelect = fn
}

// OnZoomChange sets the zoom-change callback.
func (dc *DesignCanvas) OnZoomChange(fn func(zoom float64)) {
	dc.onZoomChange = fn
}

// SetShowZones toggles the safe and bleed zone overlays.
func (dc *DesignCanvas) SetShowZones(show bool) {
	dc.showZones = show
	dc.Refresh()
}

// ShowZones reports whether the zone overlays are drawn.
func (dc *DesignCanvas) ShowZones() bool {
	return dc.showZones
}

// SetZoom sets the zoom level, clamped to [minZoom, maxZoom].
func (dc *DesignCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	dc.zoom = zoom
	dc.updateContentSize()

	if dc.onZoomChange != nil {
		dc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (dc *DesignCanvas) Zoom() float64 {
	return dc.zoom
}

// ZoomIn increases the zoom level.
func (dc *DesignCanvas) ZoomIn() {
	dc.SetZoom(dc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (dc *DesignCanvas) ZoomOut() {
	dc.SetZoom(dc.zoom / zoomStep)
}

// Refresh redraws the design surface.
func (dc *DesignCanvas) Refresh() {
	dc.raster.Refresh()
}

// toCanvas converts a pointer position to canvas coordinates.
func (dc *DesignCanvas) toCanvas(pos fyne.Position) (x, y float64) {
	offset := dc.scroll.Offset()
	x = float64(pos.X+offset.X) / dc.zoom
	y = float64(pos.Y+offset.Y) / dc.zoom
	return
}

func (dc *DesignCanvas) updateContentSize() {
	zones := dc.state.Zones()
	dc.imgSize = fyne.NewSize(
		float32(zones.CanvasWidth*dc.zoom),
		float32(zones.CanvasHeight*dc.zoom),
	)

	dc.raster.SetMinSize(dc.imgSize)
	dc.raster.Resize(dc.imgSize)
	if dc.content != nil {
		dc.content.Resize(dc.imgSize)
		dc.content.Refresh()
	}
	dc.raster.Refresh()
	if dc.scroll != nil {
		dc.scroll.Refresh()
	}
}

// draw renders the wrap at screen zoom, then the overlays on top.
func (dc *DesignCanvas) draw(w, h int) image.Image {
	zones := dc.state.Zones()

	rendered, err := dc.state.Raster.Render(dc.state.Scene.Snapshot(), zones.CanvasWidth, zones.CanvasHeight, dc.zoom)
	if err != nil || rendered == nil {
		blank := image.NewRGBA(image.Rect(0, 0, w, h))
		return blank
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))
	b := rendered.Bounds()
	for y := 0; y < h && y < b.Dy(); y++ {
		for x := 0; x < w && x < b.Dx(); x++ {
			output.Set(x, y, rendered.At(b.Min.X+x, b.Min.Y+y))
		}
	}

	if dc.showZones {
		dc.drawZones(output, zones)
	}
	dc.drawGuides(output, zones)
	if dc.selectedID != "" {
		if o := dc.state.Scene.Get(dc.selectedID); o != nil {
			dc.drawSelection(output, o)
		}
	}
	return output
}

// CreateRenderer implements fyne.Widget.
func (dc *DesignCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &designCanvasRenderer{canvas: dc}
}

type designCanvasRenderer struct {
	canvas *DesignCanvas
}

func (r *designCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	}
}

func (r *designCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 120)
}

func (r *designCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *designCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.scroll}
}

func (r *designCanvasRenderer) Destroy() {}
