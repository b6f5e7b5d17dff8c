// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"time"

	"mug-studio/internal/app"
	"mug-studio/internal/constraint"
	"mug-studio/internal/layout"
	"mug-studio/internal/version"
	"mug-studio/ui/canvas"
	"mug-studio/ui/panels"
	"mug-studio/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const warningDismiss = 3 * time.Second

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	canvas    *canvas.DesignCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	warnLabel *widget.Label

	warnTimer *time.Timer
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Mug Studio")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(1280, 760))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewDesignCanvas(mw.state)
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)

	mw.statusBar = widget.NewLabel(version.String())
	mw.warnLabel = widget.NewLabel("")
	mw.warnLabel.Hide()

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		container.NewVBox(mw.warnLabel, mw.statusBar),
		nil, nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(canvasArea, mw.sidePanel.Container())
	split.SetOffset(0.72)
	mw.SetContent(split)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	return container.NewHBox(
		widget.NewButton("Add Text", mw.onAddText),
		widget.NewButton("Add Image", mw.onAddImage),
		widget.NewButton("Add Pattern", mw.onAddPattern),
		widget.NewSeparator(),
		widget.NewButton("Undo", func() {
			mw.state.Undo()
			mw.canvas.Refresh()
		}),
		widget.NewButton("Redo", func() {
			mw.state.Redo()
			mw.canvas.Refresh()
		}),
		widget.NewSeparator(),
		widget.NewButton("Zoom -", mw.canvas.ZoomOut),
		widget.NewButton("Zoom +", mw.canvas.ZoomIn),
	)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Design...", mw.onOpenDesign),
		fyne.NewMenuItem("Save Design...", mw.onSaveDesign),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", func() { mw.onExport("png") }),
		fyne.NewMenuItem("Export PDF...", func() { mw.onExport("pdf") }),
		fyne.NewMenuItem("Export JSON...", func() { mw.onExport("json") }),
	)

	specItems := make([]*fyne.MenuItem, 0)
	for _, name := range layout.ListSpecs() {
		name := name
		specItems = append(specItems, fyne.NewMenuItem(name, func() {
			mw.switchSpec(name)
		}))
	}
	productMenu := fyne.NewMenu("Product", specItems...)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Zones", func() {
			mw.canvas.SetShowZones(!mw.canvas.ShowZones())
			mw.prefs.SetBool(prefs.KeyShowZones, mw.canvas.ShowZones())
		}),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, productMenu, viewMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.OnWarning(func(w constraint.Warning) {
		mw.showWarning(w.Message)
	})
	mw.state.OnError(func(err error) {
		mw.showWarning(err.Error())
		mw.canvas.Refresh()
	})
	mw.state.OnLayersChanged(func() {
		mw.canvas.Refresh()
	})

	mw.canvas.SetShowZones(mw.prefs.Bool(prefs.KeyShowZones, true))

	mw.SetOnClosed(func() {
		mw.sidePanel.StopPreview()
		mw.state.Patterns.Close()
		mw.prefs.Save()
	})
}

// showWarning displays a transient warning that auto-dismisses.
func (mw *MainWindow) showWarning(msg string) {
	mw.warnLabel.SetText(msg)
	mw.warnLabel.Show()

	if mw.warnTimer != nil {
		mw.warnTimer.Stop()
	}
	mw.warnTimer = time.AfterFunc(warningDismiss, func() {
		mw.warnLabel.Hide()
	})
}

func (mw *MainWindow) onAddText() {
	entry := widget.NewEntry()
	entry.PlaceHolder = "Your text"
	dialog.ShowForm("Add Text", "Add", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Text", entry)},
		func(ok bool) {
			if !ok || entry.Text == "" {
				return
			}
			o := mw.state.AddText(entry.Text)
			mw.canvas.Select(o.ID)
			mw.canvas.Refresh()
		}, mw.Window)
}

func (mw *MainWindow) onAddImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		o, err := mw.state.AddImage(path)
		if err != nil {
			mw.showWarning(err.Error())
			return
		}
		mw.canvas.Select(o.ID)
		mw.canvas.Refresh()
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif"}))
	fd.Show()
}

func (mw *MainWindow) onAddPattern() {
	names := mw.state.Patterns.Names()
	if len(names) == 0 {
		mw.showWarning("No pattern tiles found in the pattern directory")
		return
	}
	sel := widget.NewSelect(names, nil)
	sel.SetSelectedIndex(0)
	dialog.ShowForm("Add Pattern", "Add", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Tile", sel)},
		func(ok bool) {
			if !ok || sel.Selected == "" {
				return
			}
			o := mw.state.AddPattern(sel.Selected)
			mw.canvas.Select(o.ID)
			mw.canvas.Refresh()
		}, mw.Window)
}

func (mw *MainWindow) onOpenDesign() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if err := mw.state.LoadDesign(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastDesign, path)
		mw.canvas.Refresh()
		mw.statusBar.SetText("Loaded " + path)
	}, mw.Window)
}

func (mw *MainWindow) onSaveDesign() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := mw.state.SaveDesign(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastDesign, path)
		mw.statusBar.SetText("Saved " + path)
	}, mw.Window)
}

func (mw *MainWindow) onExport(format string) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		var exportErr error
		switch format {
		case "png":
			exportErr = mw.state.ExportPNG(path)
		case "pdf":
			exportErr = mw.state.ExportPDF(path)
		case "json":
			exportErr = mw.state.ExportJSON(path)
		}
		if exportErr != nil {
			dialog.ShowError(exportErr, mw.Window)
			return
		}
		mw.statusBar.SetText(fmt.Sprintf("Exported %s to %s", format, path))
	}, mw.Window)
}

// switchSpec changes the active product layout and rescales the zones.
func (mw *MainWindow) switchSpec(name string) {
	spec := layout.GetSpec(name)
	if spec == nil {
		return
	}
	mw.state.SwitchSpec(spec)
	mw.prefs.SetString(prefs.KeyLastSpec, name)
	mw.canvas.Refresh()
	mw.statusBar.SetText("Product: " + name)
}

// Start begins the background loops owned by the window.
func (mw *MainWindow) Start() {
	mw.sidePanel.StartPreview()
	if err := mw.state.Patterns.Watch(); err != nil {
		mw.showWarning("Pattern watcher unavailable: " + err.Error())
	}
}
