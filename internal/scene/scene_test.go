package scene

import (
	"math"
	"testing"
)

func newTextObject(content string) *Object {
	o := NewObject(KindText, RoleOrdinary)
	o.Text = &TextPayload{Content: content, Font: "regular", FontSize: 48}
	o.Width, o.Height = 100, 50
	return o
}

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	s := NewScene()
	var order []string
	for _, name := range []string{"history", "layers", "texture", "analytics"} {
		name := name
		s.Subscribe(name, func(EventType, *Object) {
			order = append(order, name)
		})
	}

	s.Add(newTextObject("a"))

	want := []string{"history", "layers", "texture", "analytics"}
	if len(order) != len(want) {
		t.Fatalf("ran %d subscribers, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestStageDefersEventUntilCommit(t *testing.T) {
	s := NewScene()
	o := newTextObject("a")
	s.Add(o)

	var events []EventType
	s.Subscribe("probe", func(ev EventType, _ *Object) {
		events = append(events, ev)
	})

	for i := 0; i < 5; i++ {
		s.Stage(o.ID, func(obj *Object) { obj.X += 10 })
	}
	if len(events) != 0 {
		t.Fatalf("staging emitted %d events, want 0", len(events))
	}
	if got := s.Get(o.ID).X; got != 50 {
		t.Fatalf("staged X = %v, want 50", got)
	}

	s.Commit(o.ID)
	if len(events) != 1 || events[0] != EventObjectModified {
		t.Fatalf("events after commit = %v", events)
	}
}

func TestAddAtInsertsAtBottom(t *testing.T) {
	s := NewScene()
	top := newTextObject("top")
	s.Add(top)

	bg := NewObject(KindPattern, RolePatternFill)
	bg.Pattern = &PatternPayload{Tile: "dots.png", Opacity: 1}
	s.AddAt(bg, 0)

	if s.IndexOf(bg.ID) != 0 {
		t.Errorf("pattern index = %d, want 0", s.IndexOf(bg.ID))
	}
	if s.IndexOf(top.ID) != 1 {
		t.Errorf("text index = %d, want 1", s.IndexOf(top.ID))
	}
}

func TestSerializeRestoreRoundTrip(t *testing.T) {
	s := NewScene()
	a := newTextObject("first")
	b := newTextObject("second")
	a.X, a.Y = 100, 200
	s.Add(a)
	s.Add(b)

	data, err := s.Serialize()
	if err != nil {
		t.Fatal(err)
	}

	s.Update(a.ID, func(o *Object) { o.X = 999 })
	s.Remove(b.ID)

	var restored []EventType
	s.Subscribe("probe", func(ev EventType, _ *Object) {
		restored = append(restored, ev)
	})

	if err := s.Restore(data); err != nil {
		t.Fatal(err)
	}
	if len(restored) != 1 || restored[0] != EventSceneRestored {
		t.Fatalf("events = %v, want one EventSceneRestored", restored)
	}

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	got := s.Get(a.ID)
	if got == nil || got.X != 100 {
		t.Errorf("restored X = %+v, want 100", got)
	}
	if s.IndexOf(a.ID) != 0 || s.IndexOf(b.ID) != 1 {
		t.Error("restore must preserve paint order")
	}
}

func TestBoundsWithRotation(t *testing.T) {
	o := newTextObject("r")
	o.X, o.Y = 200, 200
	o.Rotation = 90

	b := o.Bounds()
	if math.Abs(b.Width-50) > 1e-9 || math.Abs(b.Height-100) > 1e-9 {
		t.Errorf("rotated bounds = %vx%v, want 50x100", b.Width, b.Height)
	}
	c := b.Center()
	if math.Abs(c.X-200) > 1e-9 || math.Abs(c.Y-200) > 1e-9 {
		t.Errorf("rotation must pivot on the center, got %+v", c)
	}
}

func TestRestoreRejectsBadSnapshotAtomically(t *testing.T) {
	s := NewScene()
	o := newTextObject("keep")
	s.Add(o)

	bad := [][]byte{
		[]byte("{not json"),
		[]byte(`{"version":99,"objects":[]}`),
		[]byte(`{"version":1,"objects":[{"id":""}]}`),
		[]byte(`{"version":1,"objects":[{"id":"x"},{"id":"x"}]}`),
	}
	for _, data := range bad {
		if err := s.Restore(data); err == nil {
			t.Errorf("Restore(%q) succeeded, want error", data)
		}
	}

	if s.Len() != 1 || s.Get(o.ID) == nil {
		t.Error("failed restores must leave the scene untouched")
	}
}

func TestRestoredEventIsNotAMutation(t *testing.T) {
	for _, ev := range []EventType{EventObjectAdded, EventObjectModified, EventObjectRemoved, EventSceneReset} {
		if !ev.Mutation() {
			t.Errorf("%s should be a mutation", ev)
		}
	}
	if EventSceneRestored.Mutation() {
		t.Error("scene-restored must not count as a mutation")
	}
}

func TestHitTestTopmostAndSkips(t *testing.T) {
	s := NewScene()

	bottom := newTextObject("bottom")
	bottom.X, bottom.Y = 100, 100
	s.Add(bottom)

	top := newTextObject("top")
	top.X, top.Y = 100, 100
	s.Add(top)

	if got := s.HitTest(100, 100); got == nil || got.ID != top.ID {
		t.Fatalf("hit = %v, want topmost", got)
	}

	s.Update(top.ID, func(o *Object) { o.Locked = true })
	if got := s.HitTest(100, 100); got == nil || got.ID != bottom.ID {
		t.Fatalf("hit = %v, want bottom after locking top", got)
	}

	s.Update(bottom.ID, func(o *Object) { o.Visible = false })
	if got := s.HitTest(100, 100); got != nil {
		t.Fatalf("hit = %v, want nil", got)
	}

	guide := NewObject(KindImage, RoleGuide)
	guide.X, guide.Y = 100, 100
	guide.Width, guide.Height = 500, 500
	s.Add(guide)
	if got := s.HitTest(100, 100); got != nil {
		t.Fatalf("hit = %v, helpers must not be selectable", got)
	}
}

func TestMoveIndex(t *testing.T) {
	s := NewScene()
	var objs []*Object
	for i := 0; i < 3; i++ {
		o := newTextObject("o")
		s.Add(o)
		objs = append(objs, o)
	}

	if !s.MoveIndex(objs[0].ID, 2) {
		t.Fatal("MoveIndex failed")
	}
	if s.IndexOf(objs[0].ID) != 2 {
		t.Errorf("index = %d, want 2", s.IndexOf(objs[0].ID))
	}
	if s.IndexOf(objs[1].ID) != 0 {
		t.Errorf("shifted index = %d, want 0", s.IndexOf(objs[1].ID))
	}
}
