package panels

import (
	"fmt"
	"strconv"
	"time"

	"mug-studio/internal/app"
	"mug-studio/internal/render"
	"mug-studio/internal/scene"
	"mug-studio/ui/canvas"

	"github.com/bep/debounce"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// sliderDebounce coalesces rapid slider callbacks into one scene
// mutation, keeping the undo history at one entry per adjustment.
const sliderDebounce = 250 * time.Millisecond

// PropertiesPanel edits the selected object's attributes.
type PropertiesPanel struct {
	state     *app.State
	canvas    *canvas.DesignCanvas
	container fyne.CanvasObject

	objectID string
	updating bool

	titleLabel *widget.Label

	contentEntry  *widget.Entry
	fontSelect    *widget.Select
	sizeSlider    *widget.Slider
	spacingSlider *widget.Slider
	colorEntry    *widget.Entry
	textCard      *widget.Card

	rotationSlider *widget.Slider

	opacitySlider *widget.Slider
	patternCard   *widget.Card

	debounced func(func())
}

// NewPropertiesPanel creates a new properties panel.
func NewPropertiesPanel(state *app.State, cvs *canvas.DesignCanvas) *PropertiesPanel {
	pp := &PropertiesPanel{
		state:     state,
		canvas:    cvs,
		debounced: debounce.New(sliderDebounce),
	}

	pp.titleLabel = widget.NewLabel("No selection")

	pp.contentEntry = widget.NewEntry()
	pp.contentEntry.OnChanged = func(text string) {
		if pp.updating || pp.objectID == "" {
			return
		}
		id := pp.objectID
		pp.debounced(func() {
			state.SetTextContent(id, text)
		})
	}

	pp.fontSelect = widget.NewSelect(
		[]string{render.FontRegular, render.FontBold, render.FontMono},
		func(name string) {
			if pp.updating || pp.objectID == "" {
				return
			}
			state.SetFont(pp.objectID, name)
		},
	)

	pp.sizeSlider = widget.NewSlider(8, 200)
	pp.sizeSlider.OnChanged = func(val float64) {
		if pp.updating || pp.objectID == "" {
			return
		}
		id := pp.objectID
		pp.debounced(func() {
			state.SetFontSize(id, val)
		})
	}

	pp.spacingSlider = widget.NewSlider(-5, 40)
	pp.spacingSlider.OnChanged = func(val float64) {
		if pp.updating || pp.objectID == "" {
			return
		}
		id := pp.objectID
		pp.debounced(func() {
			state.SetLetterSpacing(id, val)
		})
	}

	pp.colorEntry = widget.NewEntry()
	pp.colorEntry.PlaceHolder = "#rrggbb"
	pp.colorEntry.OnSubmitted = func(text string) {
		if pp.objectID == "" {
			return
		}
		if c, ok := parseHexColor(text); ok {
			state.SetTextColor(pp.objectID, c)
		}
	}

	pp.textCard = widget.NewCard("Text", "", container.NewVBox(
		pp.contentEntry,
		widget.NewLabel("Font:"),
		pp.fontSelect,
		widget.NewLabel("Size:"),
		pp.sizeSlider,
		widget.NewLabel("Letter spacing:"),
		pp.spacingSlider,
		widget.NewLabel("Color:"),
		pp.colorEntry,
	))

	pp.rotationSlider = widget.NewSlider(-180, 180)
	pp.rotationSlider.OnChanged = func(val float64) {
		if pp.updating || pp.objectID == "" {
			return
		}
		id := pp.objectID
		pp.debounced(func() {
			state.RotateObject(id, val)
		})
	}

	pp.opacitySlider = widget.NewSlider(0, 100)
	pp.opacitySlider.OnChanged = func(val float64) {
		if pp.updating || pp.objectID == "" {
			return
		}
		id := pp.objectID
		pp.debounced(func() {
			state.SetPatternOpacity(id, val/100)
		})
	}
	pp.patternCard = widget.NewCard("Pattern", "", container.NewVBox(
		widget.NewLabel("Opacity:"),
		pp.opacitySlider,
	))

	pp.container = container.NewVBox(
		pp.titleLabel,
		pp.textCard,
		widget.NewCard("Transform", "", container.NewVBox(
			widget.NewLabel("Rotation:"),
			pp.rotationSlider,
		)),
		pp.patternCard,
	)

	pp.SetObject("")
	return pp
}

// Container returns the panel container.
func (pp *PropertiesPanel) Container() fyne.CanvasObject {
	return pp.container
}

// SetObject binds the panel to a scene object (or clears it with "").
func (pp *PropertiesPanel) SetObject(id string) {
	pp.objectID = id
	pp.Refresh()
}

// Refresh reloads the controls from the bound object.
func (pp *PropertiesPanel) Refresh() {
	o := pp.state.Scene.Get(pp.objectID)
	if o == nil {
		pp.objectID = ""
		pp.titleLabel.SetText("No selection")
		pp.textCard.Hide()
		pp.patternCard.Hide()
		return
	}

	pp.updating = true
	defer func() { pp.updating = false }()

	pp.titleLabel.SetText(o.DisplayName())
	pp.rotationSlider.SetValue(o.Rotation)

	if o.Text != nil {
		pp.textCard.Show()
		pp.contentEntry.SetText(o.Text.Content)
		pp.fontSelect.SetSelected(o.Text.Font)
		pp.sizeSlider.SetValue(o.Text.FontSize)
		pp.spacingSlider.SetValue(o.Text.LetterSpacing)
		pp.colorEntry.SetText(formatHexColor(o.Text.Color))
	} else {
		pp.textCard.Hide()
	}

	if o.Pattern != nil {
		pp.patternCard.Show()
		pp.opacitySlider.SetValue(o.Pattern.Opacity * 100)
	} else {
		pp.patternCard.Hide()
	}
}

func parseHexColor(s string) (scene.RGBA, bool) {
	if len(s) == 7 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return scene.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return scene.RGBA{}, false
	}
	return scene.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, true
}

func formatHexColor(c scene.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
