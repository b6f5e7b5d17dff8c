package panels

import (
	"fmt"

	"mug-studio/internal/app"
	"mug-studio/internal/layers"
	"mug-studio/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LayersPanel lists the design objects top-first and exposes
// visibility, lock, reorder, and delete controls.
type LayersPanel struct {
	state     *app.State
	canvas    *canvas.DesignCanvas
	container fyne.CanvasObject

	entries  []layers.Entry
	selected int

	list        *widget.List
	visibleChk  *widget.Check
	lockedChk   *widget.Check
	upBtn       *widget.Button
	downBtn     *widget.Button
	deleteBtn   *widget.Button
	statusLabel *widget.Label
}

// NewLayersPanel creates a new layers panel.
func NewLayersPanel(state *app.State, cvs *canvas.DesignCanvas) *LayersPanel {
	lp := &LayersPanel{
		state:    state,
		canvas:   cvs,
		selected: -1,
	}
	lp.entries = layers.Project(state.Scene.Snapshot())

	lp.list = widget.NewList(
		func() int {
			return len(lp.entries)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Layer")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(lp.entries) {
				return
			}
			e := lp.entries[id]
			label := e.Name
			if !e.Visible {
				label += " (hidden)"
			}
			if e.Locked {
				label += " (locked)"
			}
			obj.(*widget.Label).SetText(fmt.Sprintf("%s: %s", e.Kind, label))
		},
	)
	lp.list.OnSelected = func(id widget.ListItemID) {
		lp.selected = id
		lp.syncControls()
		if id < len(lp.entries) {
			cvs.Select(lp.entries[id].ObjectID)
		}
	}
	lp.list.OnUnselected = func(widget.ListItemID) {
		lp.selected = -1
		lp.syncControls()
	}

	lp.visibleChk = widget.NewCheck("Visible", func(checked bool) {
		if e, ok := lp.selectedEntry(); ok {
			layers.SetVisible(state.Scene, e, checked)
		}
	})
	lp.lockedChk = widget.NewCheck("Locked", func(checked bool) {
		if e, ok := lp.selectedEntry(); ok {
			layers.SetLocked(state.Scene, e, checked)
		}
	})

	lp.upBtn = widget.NewButton("Raise", func() { lp.move(-1) })
	lp.downBtn = widget.NewButton("Lower", func() { lp.move(1) })
	lp.deleteBtn = widget.NewButton("Delete", func() {
		if e, ok := lp.selectedEntry(); ok {
			layers.Delete(state.Scene, e)
			lp.selected = -1
		}
	})

	lp.statusLabel = widget.NewLabel("")
	lp.syncControls()

	lp.container = container.NewBorder(
		nil,
		container.NewVBox(
			container.NewHBox(lp.visibleChk, lp.lockedChk),
			container.NewHBox(lp.upBtn, lp.downBtn, lp.deleteBtn),
			lp.statusLabel,
		),
		nil, nil,
		lp.list,
	)
	return lp
}

// Container returns the panel container.
func (lp *LayersPanel) Container() fyne.CanvasObject {
	return lp.container
}

// Refresh re-projects the scene into the list.
func (lp *LayersPanel) Refresh() {
	lp.entries = layers.Project(lp.state.Scene.Snapshot())
	if lp.selected >= len(lp.entries) {
		lp.selected = -1
	}
	lp.list.Refresh()
	lp.syncControls()
	lp.statusLabel.SetText(fmt.Sprintf("%d layers", len(lp.entries)))
}

// SelectObject highlights the list row for a scene object.
func (lp *LayersPanel) SelectObject(id string) {
	for i, e := range lp.entries {
		if e.ObjectID == id {
			lp.list.Select(i)
			return
		}
	}
	lp.list.UnselectAll()
}

func (lp *LayersPanel) selectedEntry() (layers.Entry, bool) {
	if lp.selected < 0 || lp.selected >= len(lp.entries) {
		return layers.Entry{}, false
	}
	return lp.entries[lp.selected], true
}

// move shifts the selected layer within the panel ordering. The panel
// lists top-first, so "raise" is delta -1 here but a higher paint
// index in the scene.
func (lp *LayersPanel) move(delta int) {
	e, ok := lp.selectedEntry()
	if !ok {
		return
	}
	target := lp.selected + delta
	if target < 0 || target >= len(lp.entries) {
		return
	}
	layers.Reorder(lp.state.Scene, e, lp.entries[target])
	lp.selected = target
	lp.list.Select(target)
}

func (lp *LayersPanel) syncControls() {
	e, ok := lp.selectedEntry()
	if !ok {
		lp.visibleChk.Disable()
		lp.lockedChk.Disable()
		lp.deleteBtn.Disable()
		return
	}
	lp.visibleChk.Enable()
	lp.lockedChk.Enable()
	lp.deleteBtn.Enable()
	lp.visibleChk.SetChecked(e.Visible)
	lp.lockedChk.SetChecked(e.Locked)
}
