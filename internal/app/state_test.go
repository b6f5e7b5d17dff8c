package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mug-studio/internal/layers"
	"mug-studio/internal/layout"
	"mug-studio/internal/scene"
)

// helperCount is the number of scene objects NewState seeds: the safe
// and bleed outlines plus the two snap guides.
const helperCount = 4

func newTestState(t *testing.T) *State {
	t.Helper()
	return NewState(Options{PatternDir: t.TempDir()})
}

func TestNewStateSeedsInitialSnapshot(t *testing.T) {
	s := newTestState(t)

	if s.History.Len() != 1 {
		t.Errorf("History.Len = %d, want 1 (initial snapshot)", s.History.Len())
	}
	if s.Scene.Len() != helperCount {
		t.Errorf("Scene.Len = %d, want %d helpers", s.Scene.Len(), helperCount)
	}
	if s.Modified {
		t.Error("fresh state must not be modified")
	}
	if len(layers.Project(s.Scene.Objects())) != 0 {
		t.Error("helpers must not appear in the layer projection")
	}
}

func TestAddTextRunsMutationChain(t *testing.T) {
	s := newTestState(t)

	layerRefreshes := 0
	s.OnLayersChanged(func() { layerRefreshes++ })

	o := s.AddText("World's Okayest Engineer")

	if s.History.Len() != 2 {
		t.Errorf("History.Len = %d, want 2", s.History.Len())
	}
	if !s.Modified {
		t.Error("mutation must mark the design modified")
	}
	if layerRefreshes != 1 {
		t.Errorf("layer refreshes = %d, want 1", layerRefreshes)
	}

	entries := layers.Project(s.Scene.Objects())
	if len(entries) != 1 || entries[0].ObjectID != o.ID {
		t.Errorf("layer entries = %+v, want the new text object", entries)
	}
	if got := s.Analytics(); got.Objects != 1 || got.ByKind[scene.KindText] != 1 {
		t.Errorf("analytics = %+v", got)
	}
}

func TestDragStagesThenCommits(t *testing.T) {
	s := newTestState(t)
	o := s.AddText("drag me")
	base := s.History.Len()

	zones := s.Zones()
	s.MoveObject(o.ID, zones.CenterX()+120, zones.CenterY())
	s.MoveObject(o.ID, zones.CenterX()+140, zones.CenterY())
	if s.History.Len() != base {
		t.Fatalf("staged moves must not snapshot, History.Len = %d", s.History.Len())
	}

	s.EndMove(o.ID)
	if s.History.Len() != base+1 {
		t.Errorf("History.Len = %d after commit, want %d", s.History.Len(), base+1)
	}
	if got := s.Scene.Get(o.ID).X; got != zones.CenterX()+140 {
		t.Errorf("X = %v, want %v", got, zones.CenterX()+140)
	}
}

func TestSnapTogglesGuideVisibility(t *testing.T) {
	s := newTestState(t)
	o := s.AddText("snap")
	zones := s.Zones()
	_, _, guideV, _ := s.HelperIDs()

	snap := s.MoveObject(o.ID, zones.CenterX()+5, zones.CenterY()+200)
	if !snap.SnappedX {
		t.Fatal("expected a horizontal snap within threshold")
	}
	if !s.Scene.Get(guideV).Visible {
		t.Error("vertical guide must show while snapped")
	}

	s.EndMove(o.ID)
	if s.Scene.Get(guideV).Visible {
		t.Error("guides must hide when the gesture ends")
	}
	if got := s.Scene.Get(o.ID).X; got != zones.CenterX() {
		t.Errorf("X = %v, want snapped to %v", got, zones.CenterX())
	}
}

func TestUndoRedo(t *testing.T) {
	s := newTestState(t)
	o := s.AddText("fleeting")

	s.Undo()
	if s.Scene.Get(o.ID) != nil {
		t.Fatal("undo must remove the added object")
	}
	if s.Scene.Len() != helperCount {
		t.Errorf("Scene.Len = %d after undo, want %d", s.Scene.Len(), helperCount)
	}

	s.Redo()
	if s.Scene.Get(o.ID) == nil {
		t.Fatal("redo must bring the object back")
	}

	// Undo/redo restores must not have grown the undo stack.
	if s.History.Len() != 2 {
		t.Errorf("History.Len = %d, want 2", s.History.Len())
	}
}

func TestAddImageUnopenablePath(t *testing.T) {
	s := newTestState(t)
	if _, err := s.AddImage(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("unopenable path must fail synchronously")
	}
	if s.Scene.Len() != helperCount {
		t.Error("failed add must not leave an object behind")
	}
}

func TestAddImageDecodeFailureRemovesObject(t *testing.T) {
	s := newTestState(t)

	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	errc := make(chan error, 1)
	s.OnError(func(err error) { errc <- err })

	o, err := s.AddImage(path)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case <-errc:
	case <-time.After(2 * time.Second):
		t.Fatal("decode error never surfaced")
	}
	if s.Scene.Get(o.ID) != nil {
		t.Error("object must be removed after a decode failure")
	}
}

func TestBackgroundDecodeSerializesWithEdits(t *testing.T) {
	s := newTestState(t)

	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}

	errc := make(chan error, 1)
	s.OnError(func(err error) { errc <- err })

	text := s.AddText("busy canvas")
	img, err := s.AddImage(path)
	if err != nil {
		t.Fatal(err)
	}

	// Keep editing while the decode completion lands.
	zones := s.Zones()
	const moves = 20
	for i := 0; i < moves; i++ {
		s.MoveObject(text.ID, zones.CenterX()+float64(40+i), zones.CenterY())
		s.EndMove(text.ID)
	}

	select {
	case <-errc:
	case <-time.After(2 * time.Second):
		t.Fatal("decode error never surfaced")
	}
	if s.Scene.Get(img.ID) != nil {
		t.Error("object must be removed after a decode failure")
	}

	// Every mutation snapshotted exactly once, regardless of how the
	// completion interleaved: initial + text + image + commits + remove.
	want := 1 + 1 + 1 + moves + 1
	if got := s.History.Len(); got != want {
		t.Errorf("History.Len = %d, want %d", got, want)
	}
}

func TestUndoKeepsStacksOnCorruptSnapshot(t *testing.T) {
	s := newTestState(t)

	// A corrupt entry beneath the current state, as if a snapshot had
	// been damaged.
	s.History.Snapshot([]byte("{not json"))
	o := s.AddText("still here")
	lenBefore := s.History.Len()

	errc := make(chan error, 1)
	s.OnError(func(err error) { errc <- err })

	s.Undo()

	select {
	case <-errc:
	case <-time.After(time.Second):
		t.Fatal("failed undo must surface an error")
	}
	if s.Scene.Get(o.ID) == nil {
		t.Fatal("scene must be unchanged when the restore fails")
	}
	if got := s.History.Len(); got != lenBefore {
		t.Errorf("History.Len = %d, want %d (entry pushed back)", got, lenBefore)
	}
	if s.History.CanRedo() {
		t.Error("failed undo must not leave a redo entry")
	}
}

func TestVersionSaveAndRestore(t *testing.T) {
	s := newTestState(t)
	o := s.AddText("keep this")

	v, err := s.SaveVersion("with text")
	if err != nil {
		t.Fatal(err)
	}

	s.RemoveObject(o.ID)
	if s.Scene.Get(o.ID) != nil {
		t.Fatal("remove failed")
	}

	if err := s.RestoreVersion(v.ID); err != nil {
		t.Fatal(err)
	}
	if s.Scene.Get(o.ID) == nil {
		t.Error("restored version must bring the object back")
	}

	// The swap pushed a snapshot, so it can be undone.
	s.Undo()
	if s.Scene.Get(o.ID) != nil {
		t.Error("undo after restore must return to the pre-restore state")
	}

	if err := s.RestoreVersion("no-such-id"); err == nil {
		t.Error("restoring an unknown version must fail")
	}
}

func TestSaveLoadDesignRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gift.mugproj")

	s := newTestState(t)
	o := s.AddText("Happy Birthday")
	s.SwitchSpec(layout.GetSpec("15oz Mug"))

	if err := s.SaveDesign(path); err != nil {
		t.Fatal(err)
	}
	if s.Modified {
		t.Error("save must clear the modified flag")
	}
	if s.DesignPath != path {
		t.Errorf("DesignPath = %q", s.DesignPath)
	}

	// Fresh session opens the file.
	s2 := NewState(Options{PatternDir: dir})
	if err := s2.LoadDesign(path); err != nil {
		t.Fatal(err)
	}

	if got := s2.Spec().Name(); got != "15oz Mug" {
		t.Errorf("loaded spec = %q, want 15oz Mug", got)
	}
	restored := s2.Scene.Get(o.ID)
	if restored == nil || restored.Text == nil || restored.Text.Content != "Happy Birthday" {
		t.Fatalf("restored object = %+v", restored)
	}
	if s2.History.Len() != 1 {
		t.Errorf("History.Len = %d after load, want fresh initial snapshot", s2.History.Len())
	}

	// Helpers were rebound, so gestures still drive the guides.
	_, _, guideV, guideH := s2.HelperIDs()
	if guideV == "" || guideH == "" {
		t.Error("helper IDs not rebound after load")
	}
}

func TestSwitchSpecRescalesZones(t *testing.T) {
	s := newTestState(t)
	before := s.Zones()

	s.SwitchSpec(layout.GetSpec("15oz Mug"))
	after := s.Zones()

	if after.CanvasHeight != 548 {
		t.Errorf("CanvasHeight = %v, want 548", after.CanvasHeight)
	}
	if after == before {
		t.Error("zones unchanged after spec switch")
	}

	safeID, _, _, _ := s.HelperIDs()
	safe := s.Scene.Get(safeID)
	if safe.Height != after.Safe.Height {
		t.Errorf("safe outline height = %v, want %v", safe.Height, after.Safe.Height)
	}
}
