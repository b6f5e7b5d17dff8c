// Package app provides application lifecycle management and the
// designer state shared by the UI.
package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"os"
	"sync"

	"mug-studio/internal/analytics"
	"mug-studio/internal/constraint"
	"mug-studio/internal/history"
	"mug-studio/internal/layout"
	"mug-studio/internal/mug"
	"mug-studio/internal/pattern"
	"mug-studio/internal/render"
	"mug-studio/internal/scene"
	"mug-studio/internal/texture"
	"mug-studio/internal/versions"
)

// State is the explicit designer context: it owns the scene, layout,
// history, version store, texture pipeline, and mug model, and wires
// the fixed-order mutation effects. There are no package-level
// singletons; every component receives the state it needs.
type State struct {
	mu sync.RWMutex

	// applyMu serializes every mutation entry point. Background
	// completions (image decode) and debounced property setters take
	// the same lock as direct edits, so the scene event chain never
	// runs concurrently with itself.
	applyMu sync.Mutex

	// Design
	DesignPath string
	Modified   bool

	spec  layout.Spec
	zones layout.Zones

	Scene    *scene.Scene
	History  *history.Manager
	Versions *versions.Store
	Patterns *pattern.Library
	Raster   *render.Rasterizer
	Pipeline *texture.Pipeline
	Model    *mug.Model
	Preview  *mug.Preview
	Engine   *constraint.Engine

	// Uploaded images by reference (decoded out of band)
	images map[string]image.Image

	// Scene-visible helper objects
	guideVID string
	guideHID string
	safeID   string
	bleedID  string

	summary analytics.Summary

	// UI callbacks; each slot can hold several listeners
	onLayersChanged []func()
	onWarning       []func(constraint.Warning)
	onError         []func(error)
	onAnalytics     []func(analytics.Summary)
}

// Options configures state construction.
type Options struct {
	Spec       layout.Spec
	ModelPath  string
	PatternDir string
}

// NewState builds the full designer context and registers the mutation
// effect chain. Subscriber order is fixed and load-bearing: history
// snapshot, layer refresh, texture-sync schedule, analytics update.
func NewState(opts Options) *State {
	spec := opts.Spec
	if spec == nil {
		spec = layout.GetSpec("11oz Mug")
	}
	canvasW, canvasH := spec.CanvasSize()

	s := &State{
		spec:     spec,
		zones:    layout.ComputeZones(spec, canvasW, canvasH),
		Scene:    scene.NewScene(),
		History:  history.NewManager(history.DefaultLimit),
		Versions: versions.NewStore(),
		Patterns: pattern.NewLibrary(opts.PatternDir),
		Model:    mug.LoadModel(opts.ModelPath),
		images:   make(map[string]image.Image),
	}
	s.Preview = mug.NewPreview(s.Model)
	s.Raster = render.NewRasterizer(s)
	s.Pipeline = texture.NewPipeline(s.Scene, s.Raster, s.Model.OuterMaterial())
	s.Pipeline.SetCanvasSize(canvasW, canvasH)
	s.Engine = constraint.NewEngine(s.zones, func(w constraint.Warning) {
		s.mu.RLock()
		fns := s.onWarning
		s.mu.RUnlock()
		for _, fn := range fns {
			fn(w)
		}
	})

	// Helpers go in before the effect chain exists so their insertion
	// does not count as user mutations.
	s.initHelpers()

	s.Scene.Subscribe("history", func(ev scene.EventType, _ *scene.Object) {
		if !ev.Mutation() {
			return
		}
		snap, err := s.Scene.Serialize()
		if err != nil {
			log.Printf("history snapshot: %v", err)
			return
		}
		s.History.Snapshot(snap)
		s.setModified(true)
	})
	s.Scene.Subscribe("layers", func(scene.EventType, *scene.Object) {
		s.mu.RLock()
		fns := s.onLayersChanged
		s.mu.RUnlock()
		for _, fn := range fns {
			fn()
		}
	})
	s.Scene.Subscribe("texture", func(scene.EventType, *scene.Object) {
		s.Pipeline.ScheduleSync()
	})
	s.Scene.Subscribe("analytics", func(scene.EventType, *scene.Object) {
		summary := analytics.Compute(s.Scene.Snapshot(), s.Zones())
		s.mu.Lock()
		s.summary = summary
		fns := s.onAnalytics
		s.mu.Unlock()
		for _, fn := range fns {
			fn(summary)
		}
	})

	if err := s.Patterns.Load(); err != nil {
		log.Printf("pattern library: %v", err)
	}
	s.Patterns.OnChange(func() {
		s.Pipeline.ScheduleSync()
	})

	s.snapshotInitial()
	return s
}

// OnLayersChanged registers a layer refresh callback.
func (s *State) OnLayersChanged(fn func()) {
	s.mu.Lock()
	s.onLayersChanged = append(s.onLayersChanged, fn)
	s.mu.Unlock()
}

// OnWarning registers a transient constraint-warning callback.
func (s *State) OnWarning(fn func(constraint.Warning)) {
	s.mu.Lock()
	s.onWarning = append(s.onWarning, fn)
	s.mu.Unlock()
}

// OnError registers a callback for surfaced resource errors.
func (s *State) OnError(fn func(error)) {
	s.mu.Lock()
	s.onError = append(s.onError, fn)
	s.mu.Unlock()
}

// OnAnalytics registers an analytics refresh callback.
func (s *State) OnAnalytics(fn func(analytics.Summary)) {
	s.mu.Lock()
	s.onAnalytics = append(s.onAnalytics, fn)
	s.mu.Unlock()
}

// Spec returns the active layout spec.
func (s *State) Spec() layout.Spec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spec
}

// Zones returns the active zones.
func (s *State) Zones() layout.Zones {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zones
}

// Analytics returns the latest summary.
func (s *State) Analytics() analytics.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

func (s *State) setModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
}

func (s *State) reportError(err error) {
	s.mu.RLock()
	fns := s.onError
	s.mu.RUnlock()
	if len(fns) == 0 {
		log.Printf("designer: %v", err)
		return
	}
	for _, fn := range fns {
		fn(err)
	}
}

// snapshotInitial seeds the undo stack so the very first mutation can
// be undone back to the empty design.
func (s *State) snapshotInitial() {
	snap, err := s.Scene.Serialize()
	if err != nil {
		log.Printf("initial snapshot: %v", err)
		return
	}
	s.History.Snapshot(snap)
	s.setModified(false)
}

// initHelpers places the non-design helper objects: safe and bleed
// outlines (excluded from export) and the two snap guides (hidden
// until a snap engages).
func (s *State) initHelpers() {
	zones := s.Zones()

	safe := scene.NewObject(scene.KindImage, scene.RoleExportHidden)
	safe.X, safe.Y = zones.Safe.Center().X, zones.Safe.Center().Y
	safe.Width, safe.Height = zones.Safe.Width, zones.Safe.Height
	safe.Locked = true

	bleed := scene.NewObject(scene.KindImage, scene.RoleExportHidden)
	bleed.X, bleed.Y = zones.Bleed.Center().X, zones.Bleed.Center().Y
	bleed.Width, bleed.Height = zones.Bleed.Width, zones.Bleed.Height
	bleed.Locked = true

	guideV := scene.NewObject(scene.KindImage, scene.RoleGuide)
	guideV.X, guideV.Y = zones.CenterX(), zones.CenterY()
	guideV.Width, guideV.Height = 1, zones.CanvasHeight
	guideV.Locked = true
	guideV.Visible = false

	guideH := scene.NewObject(scene.KindImage, scene.RoleGuide)
	guideH.X, guideH.Y = zones.CenterX(), zones.CenterY()
	guideH.Width, guideH.Height = zones.CanvasWidth, 1
	guideH.Locked = true
	guideH.Visible = false

	s.Scene.Add(safe)
	s.Scene.Add(bleed)
	s.Scene.Add(guideV)
	s.Scene.Add(guideH)

	s.mu.Lock()
	s.safeID = safe.ID
	s.bleedID = bleed.ID
	s.guideVID = guideV.ID
	s.guideHID = guideH.ID
	s.mu.Unlock()
}

// HelperIDs returns the scene IDs of the safe outline, bleed outline,
// and the vertical and horizontal snap guides.
func (s *State) HelperIDs() (safe, bleed, guideV, guideH string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.safeID, s.bleedID, s.guideVID, s.guideHID
}

// SwitchSpec changes the active product layout. Objects keep their
// positions; the zones rescale to the new spec's canvas.
func (s *State) SwitchSpec(spec layout.Spec) {
	s.mu.Lock()
	s.spec = spec
	s.mu.Unlock()

	w, h := spec.CanvasSize()
	s.SetCanvasSize(w, h)
}

// SetCanvasSize recomputes the zones for new canvas dimensions and
// updates every zone consumer.
func (s *State) SetCanvasSize(w, h float64) {
	zones := layout.ComputeZones(s.Spec(), w, h)
	s.mu.Lock()
	s.zones = zones
	s.mu.Unlock()

	s.Engine.SetZones(zones)
	s.Pipeline.SetCanvasSize(w, h)
	s.restageHelpers(zones)
	s.Pipeline.ScheduleSync()
}

func (s *State) restageHelpers(zones layout.Zones) {
	safeID, bleedID, guideVID, guideHID := s.HelperIDs()
	s.Scene.Stage(safeID, func(o *scene.Object) {
		o.X, o.Y = zones.Safe.Center().X, zones.Safe.Center().Y
		o.Width, o.Height = zones.Safe.Width, zones.Safe.Height
	})
	s.Scene.Stage(bleedID, func(o *scene.Object) {
		o.X, o.Y = zones.Bleed.Center().X, zones.Bleed.Center().Y
		o.Width, o.Height = zones.Bleed.Width, zones.Bleed.Height
	})
	s.Scene.Stage(guideVID, func(o *scene.Object) {
		o.X, o.Y = zones.CenterX(), zones.CenterY()
		o.Height = zones.CanvasHeight
	})
	s.Scene.Stage(guideHID, func(o *scene.Object) {
		o.X, o.Y = zones.CenterX(), zones.CenterY()
		o.Width = zones.CanvasWidth
	})
}

// Resolve implements render.ImageSource: uploaded images first, then
// the pattern library.
func (s *State) Resolve(ref string) image.Image {
	s.mu.RLock()
	img := s.images[ref]
	s.mu.RUnlock()
	if img != nil {
		return img
	}
	return s.Patterns.Resolve(ref)
}

// Undo restores the state preceding the last mutation. No-op when only
// the initial state remains.
func (s *State) Undo() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	data, ok := s.History.Undo()
	if !ok {
		return
	}
	if err := s.Scene.Restore(data); err != nil {
		// Restore failed before touching the scene; put the popped
		// entry back so the stacks stay aligned with the screen.
		s.History.Redo()
		s.reportError(fmt.Errorf("undo: %w", err))
	}
}

// Redo re-applies the last undone mutation. No-op when the redo stack
// is empty.
func (s *State) Redo() {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	data, ok := s.History.Redo()
	if !ok {
		return
	}
	if err := s.Scene.Restore(data); err != nil {
		s.History.Undo()
		s.reportError(fmt.Errorf("redo: %w", err))
	}
}

// SaveVersion records the current design under a name.
func (s *State) SaveVersion(name string) (*versions.Version, error) {
	snap, err := s.Scene.Serialize()
	if err != nil {
		return nil, fmt.Errorf("save version: %w", err)
	}
	return s.Versions.Save(name, snap), nil
}

// RestoreVersion swaps the design to a named snapshot. The restored
// state is pushed onto the undo stack so the swap itself can be undone.
func (s *State) RestoreVersion(id string) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	v := s.Versions.Get(id)
	if v == nil {
		return fmt.Errorf("restore version: no version %s", id)
	}
	if err := s.Scene.Restore(v.Snapshot); err != nil {
		return err
	}
	s.History.Snapshot(v.Snapshot)
	return nil
}

// designFile is the on-disk design document.
type designFile struct {
	Version int             `json:"version"`
	Spec    string          `json:"spec"`
	Scene   json.RawMessage `json:"scene"`
}

// SaveDesign writes the design to a .mugproj JSON file.
func (s *State) SaveDesign(path string) error {
	snap, err := s.Scene.Serialize()
	if err != nil {
		return err
	}
	file := designFile{
		Version: 1,
		Spec:    s.Spec().Name(),
		Scene:   json.RawMessage(snap),
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	s.DesignPath = path
	s.Modified = false
	s.mu.Unlock()
	return nil
}

// LoadDesign replaces the current design with a saved file. History is
// reset; the loaded state becomes the new initial snapshot. Uploaded
// images are re-decoded from their recorded paths in the background.
func (s *State) LoadDesign(path string) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file designFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("load design %s: %w", path, err)
	}

	if file.Spec != "" {
		if spec := layout.GetSpec(file.Spec); spec != nil {
			s.SwitchSpec(spec)
		}
	}

	s.History.Clear()
	if err := s.Scene.Restore(file.Scene); err != nil {
		return err
	}
	s.snapshotInitial()
	s.rebindHelpers()
	s.reloadImages()

	s.mu.Lock()
	s.DesignPath = path
	s.mu.Unlock()
	return nil
}

// rebindHelpers re-discovers the helper objects after a restore that
// replaced every object instance.
func (s *State) rebindHelpers() {
	var safe, bleed, guideV, guideH string
	for _, o := range s.Scene.Objects() {
		switch {
		case o.Role == scene.RoleExportHidden && safe == "":
			safe = o.ID
		case o.Role == scene.RoleExportHidden:
			bleed = o.ID
		case o.Role == scene.RoleGuide && guideV == "":
			guideV = o.ID
		case o.Role == scene.RoleGuide:
			guideH = o.ID
		}
	}
	s.mu.Lock()
	s.safeID, s.bleedID = safe, bleed
	s.guideVID, s.guideHID = guideV, guideH
	s.mu.Unlock()
}
