package panels

import (
	"math"
	"sync"
	"time"

	"mug-studio/internal/app"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	previewWidth  = 320
	previewHeight = 300
	previewFrame  = 33 * time.Millisecond
)

// PreviewPanel shows the mug with the current texture wrapped around
// it. A frame loop re-renders when the texture is marked dirty or the
// rotation changes.
type PreviewPanel struct {
	state     *app.State
	container fyne.CanvasObject

	image      *fynecanvas.Image
	yawSlider  *widget.Slider
	modelLabel *widget.Label

	mu      sync.Mutex
	yaw     float64
	lastYaw float64
	stop    chan struct{}
}

// NewPreviewPanel creates a new preview panel.
func NewPreviewPanel(state *app.State) *PreviewPanel {
	pp := &PreviewPanel{
		state:   state,
		lastYaw: -1,
	}

	pp.image = fynecanvas.NewImageFromImage(state.Preview.Render(previewWidth, previewHeight, 0))
	pp.image.FillMode = fynecanvas.ImageFillContain
	pp.image.SetMinSize(fyne.NewSize(previewWidth, previewHeight))

	pp.yawSlider = widget.NewSlider(0, 360)
	pp.yawSlider.OnChanged = func(val float64) {
		pp.mu.Lock()
		pp.yaw = val
		pp.mu.Unlock()
	}

	pp.modelLabel = widget.NewLabel("Model: " + state.Model.Name)

	pp.container = container.NewVBox(
		pp.image,
		widget.NewLabel("Rotation:"),
		pp.yawSlider,
		pp.modelLabel,
	)
	return pp
}

// Container returns the panel container.
func (pp *PreviewPanel) Container() fyne.CanvasObject {
	return pp.container
}

// Start launches the frame loop. Call Stop to end it.
func (pp *PreviewPanel) Start() {
	pp.mu.Lock()
	if pp.stop != nil {
		pp.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	pp.stop = stop
	pp.mu.Unlock()

	go func() {
		ticker := time.NewTicker(previewFrame)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				pp.frame()
			}
		}
	}()
}

// Stop ends the frame loop.
func (pp *PreviewPanel) Stop() {
	pp.mu.Lock()
	if pp.stop != nil {
		close(pp.stop)
		pp.stop = nil
	}
	pp.mu.Unlock()
}

// frame re-renders when something changed since the last frame.
func (pp *PreviewPanel) frame() {
	pp.mu.Lock()
	yaw := pp.yaw
	pp.mu.Unlock()

	material := pp.state.Model.OuterMaterial()
	dirty := material.ConsumeDirty()
	if !dirty && yaw == pp.lastYaw {
		return
	}
	pp.lastYaw = yaw

	frame := pp.state.Preview.Render(previewWidth, previewHeight, yaw*math.Pi/180)
	pp.image.Image = frame
	pp.image.Refresh()
}
