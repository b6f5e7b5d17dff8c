package app

import (
	"fmt"
	"image"
	"os"

	"mug-studio/internal/constraint"
	"mug-studio/internal/render"
	"mug-studio/internal/scene"
)

const (
	defaultFontSize    = 48.0
	placeholderImgSize = 200.0
)

// AddText places a text object centered in the safe zone. The size
// comes from measuring the content at the default font.
func (s *State) AddText(content string) *scene.Object {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	o := scene.NewObject(scene.KindText, scene.RoleOrdinary)
	o.Text = &scene.TextPayload{
		Content:  content,
		Font:     render.FontRegular,
		FontSize: defaultFontSize,
		Color:    scene.RGBA{A: 255},
	}

	w, h, err := s.Raster.MeasureText(o.Text)
	if err != nil {
		w, h = placeholderImgSize, defaultFontSize
	}
	o.Width, o.Height = w, h

	zones := s.Zones()
	o.X, o.Y = zones.CenterX(), zones.CenterY()
	s.Engine.CheckBounds(o)
	s.Scene.Add(o)
	return o
}

// AddImage places an image object for an uploaded file. The file must
// be openable up front; decoding happens in the background, and the
// object starts at a placeholder size until the pixels arrive. Decode
// failures remove the object and surface an error.
func (s *State) AddImage(path string) (*scene.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("add image: %w", err)
	}

	o := scene.NewObject(scene.KindImage, scene.RoleOrdinary)
	o.Image = &scene.ImagePayload{Ref: path}
	o.Width, o.Height = placeholderImgSize, placeholderImgSize

	s.applyMu.Lock()
	zones := s.Zones()
	o.X, o.Y = zones.CenterX(), zones.CenterY()
	s.Scene.Add(o)
	s.applyMu.Unlock()

	go func() {
		defer f.Close()
		img, _, err := image.Decode(f)

		// Completion mutates the scene under the same lock as direct
		// edits; only the decode itself runs unserialized.
		s.applyMu.Lock()
		defer s.applyMu.Unlock()
		if err != nil {
			s.Scene.Remove(o.ID)
			s.reportError(fmt.Errorf("decode image %s: %w", path, err))
			return
		}
		s.mu.Lock()
		s.images[path] = img
		s.mu.Unlock()

		// The object may have been removed (or the design replaced)
		// while the decode was running.
		if s.Scene.Get(o.ID) == nil {
			return
		}
		s.Scene.Update(o.ID, func(obj *scene.Object) {
			b := img.Bounds()
			obj.Width = float64(b.Dx())
			obj.Height = float64(b.Dy())
			s.Engine.CheckBounds(obj)
		})
	}()
	return o, nil
}

// reloadImages re-decodes every referenced upload after a design load.
func (s *State) reloadImages() {
	for _, o := range s.Scene.Objects() {
		if o.Kind != scene.KindImage || o.Image == nil || o.Image.Ref == "" {
			continue
		}
		ref := o.Image.Ref
		s.mu.RLock()
		_, have := s.images[ref]
		s.mu.RUnlock()
		if have {
			continue
		}
		go func() {
			f, err := os.Open(ref)
			if err != nil {
				s.reportError(fmt.Errorf("reload image: %w", err))
				return
			}
			defer f.Close()
			img, _, err := image.Decode(f)
			if err != nil {
				s.reportError(fmt.Errorf("decode image %s: %w", ref, err))
				return
			}
			s.mu.Lock()
			s.images[ref] = img
			s.mu.Unlock()
			s.Pipeline.ScheduleSync()
		}()
	}
}

// PreloadImages decodes every referenced upload synchronously. The
// headless proof tool uses it so exports never render placeholders.
func (s *State) PreloadImages() error {
	for _, o := range s.Scene.Objects() {
		if o.Kind != scene.KindImage || o.Image == nil || o.Image.Ref == "" {
			continue
		}
		ref := o.Image.Ref
		s.mu.RLock()
		_, have := s.images[ref]
		s.mu.RUnlock()
		if have {
			continue
		}
		f, err := os.Open(ref)
		if err != nil {
			return fmt.Errorf("preload image: %w", err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("decode image %s: %w", ref, err)
		}
		s.mu.Lock()
		s.images[ref] = img
		s.mu.Unlock()
	}
	return nil
}

// AddPattern places a full-canvas pattern fill at the bottom of the
// paint order.
func (s *State) AddPattern(tile string) *scene.Object {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	zones := s.Zones()

	o := scene.NewObject(scene.KindPattern, scene.RolePatternFill)
	o.Pattern = &scene.PatternPayload{Tile: tile, Opacity: 1}
	o.X, o.Y = zones.CenterX(), zones.CenterY()
	o.Width, o.Height = zones.CanvasWidth, zones.CanvasHeight

	s.Scene.AddAt(o, 0)
	return o
}

// RemoveObject deletes a design object.
func (s *State) RemoveObject(id string) bool {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.Scene.Remove(id)
}

// MoveObject stages a drag position: snap to center, then bounds
// check. No mutation event fires until EndMove; the texture sync is
// scheduled directly so the preview tracks the drag.
func (s *State) MoveObject(id string, x, y float64) constraint.SnapResult {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	var snap constraint.SnapResult
	ok := s.Scene.Stage(id, func(o *scene.Object) {
		o.X, o.Y = x, y
		snap = s.Engine.SnapToCenter(o, 0)
		s.Engine.CheckBounds(o)
	})
	if !ok {
		return snap
	}

	s.setGuides(snap)
	s.Pipeline.ScheduleSync()
	return snap
}

// EndMove commits the drag gesture, firing the mutation chain once.
func (s *State) EndMove(id string) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.setGuides(constraint.SnapResult{})
	s.Scene.Commit(id)
}

// ScaleObject stages a resize. Scaling checks bounds but never snaps.
func (s *State) ScaleObject(id string, sx, sy float64) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	ok := s.Scene.Stage(id, func(o *scene.Object) {
		o.ScaleX, o.ScaleY = sx, sy
		s.Engine.CheckAfterScale(o)
	})
	if ok {
		s.Pipeline.ScheduleSync()
	}
}

// EndScale commits the resize gesture.
func (s *State) EndScale(id string) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	s.Scene.Commit(id)
}

// RotateObject sets the rotation in degrees.
func (s *State) RotateObject(id string, degrees float64) bool {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.Scene.Update(id, func(o *scene.Object) {
		o.Rotation = degrees
		s.Engine.CheckBounds(o)
	})
}

// SetTextContent replaces the text and re-measures the object.
func (s *State) SetTextContent(id, content string) bool {
	return s.updateText(id, func(t *scene.TextPayload) {
		t.Content = content
	})
}

// SetTextColor sets the fill color of a text object.
func (s *State) SetTextColor(id string, c scene.RGBA) bool {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.Scene.Update(id, func(o *scene.Object) {
		if o.Text != nil {
			o.Text.Color = c
		}
	})
}

// SetLetterSpacing sets per-character spacing and re-measures.
func (s *State) SetLetterSpacing(id string, spacing float64) bool {
	return s.updateText(id, func(t *scene.TextPayload) {
		t.LetterSpacing = spacing
	})
}

// SetFont changes the font face and re-measures.
func (s *State) SetFont(id, font string) bool {
	return s.updateText(id, func(t *scene.TextPayload) {
		t.Font = font
	})
}

// SetFontSize changes the point size and re-measures.
func (s *State) SetFontSize(id string, size float64) bool {
	return s.updateText(id, func(t *scene.TextPayload) {
		t.FontSize = size
	})
}

func (s *State) updateText(id string, fn func(*scene.TextPayload)) bool {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.Scene.Update(id, func(o *scene.Object) {
		if o.Text == nil {
			return
		}
		fn(o.Text)
		if w, h, err := s.Raster.MeasureText(o.Text); err == nil {
			o.Width, o.Height = w, h
		}
		s.Engine.CheckBounds(o)
	})
}

// SetPatternOpacity adjusts a pattern fill's opacity, clamped to [0,1].
func (s *State) SetPatternOpacity(id string, opacity float64) bool {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	return s.Scene.Update(id, func(o *scene.Object) {
		if o.Pattern != nil {
			o.Pattern.Opacity = opacity
		}
	})
}

// setGuides stages the snap guide visibility for the current gesture.
func (s *State) setGuides(snap constraint.SnapResult) {
	_, _, guideV, guideH := s.HelperIDs()
	s.Scene.Stage(guideV, func(o *scene.Object) { o.Visible = snap.SnappedX })
	s.Scene.Stage(guideH, func(o *scene.Object) { o.Visible = snap.SnappedY })
}
