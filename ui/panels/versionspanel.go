package panels

import (
	"fmt"

	"mug-studio/internal/app"
	"mug-studio/internal/versions"
	"mug-studio/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// VersionsPanel saves and restores named design snapshots.
type VersionsPanel struct {
	state     *app.State
	canvas    *canvas.DesignCanvas
	container fyne.CanvasObject

	list     []*versions.Version
	selected int

	nameEntry   *widget.Entry
	listWidget  *widget.List
	statusLabel *widget.Label
}

// NewVersionsPanel creates a new versions panel.
func NewVersionsPanel(state *app.State, cvs *canvas.DesignCanvas) *VersionsPanel {
	vp := &VersionsPanel{
		state:    state,
		canvas:   cvs,
		selected: -1,
	}

	vp.nameEntry = widget.NewEntry()
	vp.nameEntry.PlaceHolder = "Version name"

	saveBtn := widget.NewButton("Save Version", func() {
		name := vp.nameEntry.Text
		if name == "" {
			name = fmt.Sprintf("Version %d", state.Versions.Len()+1)
		}
		if _, err := state.SaveVersion(name); err != nil {
			vp.statusLabel.SetText(err.Error())
			return
		}
		vp.nameEntry.SetText("")
		vp.Refresh()
	})

	vp.listWidget = widget.NewList(
		func() int { return len(vp.list) },
		func() fyne.CanvasObject {
			return widget.NewLabel("Version")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(vp.list) {
				return
			}
			v := vp.list[id]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %s", v.Name, v.CreatedAt.Format("15:04:05")))
		},
	)
	vp.listWidget.OnSelected = func(id widget.ListItemID) {
		vp.selected = id
	}
	vp.listWidget.OnUnselected = func(widget.ListItemID) {
		vp.selected = -1
	}

	restoreBtn := widget.NewButton("Restore", func() {
		v, ok := vp.selectedVersion()
		if !ok {
			return
		}
		if err := state.RestoreVersion(v.ID); err != nil {
			vp.statusLabel.SetText(err.Error())
			return
		}
		vp.statusLabel.SetText("Restored " + v.Name)
		cvs.Refresh()
	})
	deleteBtn := widget.NewButton("Delete", func() {
		v, ok := vp.selectedVersion()
		if !ok {
			return
		}
		state.Versions.Delete(v.ID)
		vp.selected = -1
		vp.Refresh()
	})

	vp.statusLabel = widget.NewLabel("")
	vp.Refresh()

	vp.container = container.NewBorder(
		container.NewVBox(vp.nameEntry, saveBtn),
		container.NewVBox(container.NewHBox(restoreBtn, deleteBtn), vp.statusLabel),
		nil, nil,
		vp.listWidget,
	)
	return vp
}

// Container returns the panel container.
func (vp *VersionsPanel) Container() fyne.CanvasObject {
	return vp.container
}

// Refresh reloads the version list, newest first.
func (vp *VersionsPanel) Refresh() {
	vp.list = vp.state.Versions.List()
	vp.listWidget.Refresh()
}

func (vp *VersionsPanel) selectedVersion() (*versions.Version, bool) {
	if vp.selected < 0 || vp.selected >= len(vp.list) {
		return nil, false
	}
	return vp.list[vp.selected], true
}
