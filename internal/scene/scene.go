package scene

import (
	"sync"
)

// EventType identifies scene mutation events.
type EventType int

const (
	EventObjectAdded EventType = iota
	EventObjectModified
	EventObjectRemoved
	EventSceneRestored
	EventSceneReset
)

func (t EventType) String() string {
	switch t {
	case EventObjectAdded:
		return "object-added"
	case EventObjectModified:
		return "object-modified"
	case EventObjectRemoved:
		return "object-removed"
	case EventSceneRestored:
		return "scene-restored"
	case EventSceneReset:
		return "scene-reset"
	default:
		return "unknown"
	}
}

// Mutation reports whether the event represents a user mutation, as
// opposed to a wholesale state swap from undo/redo or version restore.
func (t EventType) Mutation() bool {
	return t == EventObjectAdded || t == EventObjectModified ||
		t == EventObjectRemoved || t == EventSceneReset
}

// Subscriber is one named effect run after a scene event. Subscribers
// execute synchronously in registration order, immediately after the
// mutation that triggered them; the order is never changed at runtime.
type Subscriber struct {
	Name string
	Fn   func(event EventType, obj *Object)
}

// Scene owns the ordered object list. Index 0 paints first (bottom);
// the last object paints on top.
type Scene struct {
	mu          sync.RWMutex
	objects     []*Object
	byID        map[string]*Object
	subscribers []Subscriber
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{
		byID: make(map[string]*Object),
	}
}

// Subscribe registers a named subscriber. Registration order is
// execution order.
func (s *Scene) Subscribe(name string, fn func(EventType, *Object)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, Subscriber{Name: name, Fn: fn})
	s.mu.Unlock()
}

// emit runs the subscriber chain outside the scene lock so subscribers
// may read scene state.
func (s *Scene) emit(event EventType, obj *Object) {
	s.mu.RLock()
	subs := s.subscribers
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.Fn(event, obj)
	}
}

// Add appends an object on top of the paint order and emits
// EventObjectAdded.
func (s *Scene) Add(o *Object) {
	s.mu.Lock()
	s.objects = append(s.objects, o)
	s.byID[o.ID] = o
	s.mu.Unlock()

	s.emit(EventObjectAdded, o)
}

// AddAt inserts an object at a paint-order index and emits
// EventObjectAdded. Index 0 paints first (bottom). Out-of-range
// indices clamp.
func (s *Scene) AddAt(o *Object, index int) {
	s.mu.Lock()
	if index < 0 {
		index = 0
	}
	if index > len(s.objects) {
		index = len(s.objects)
	}
	s.objects = append(s.objects, nil)
	copy(s.objects[index+1:], s.objects[index:])
	s.objects[index] = o
	s.byID[o.ID] = o
	s.mu.Unlock()

	s.emit(EventObjectAdded, o)
}

// Remove deletes an object by ID. Returns false if no such object.
func (s *Scene) Remove(id string) bool {
	s.mu.Lock()
	o, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.byID, id)
	for i, obj := range s.objects {
		if obj.ID == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.emit(EventObjectRemoved, o)
	return true
}

// Update applies fn to the object under the scene lock, then emits
// EventObjectModified. Returns false if no such object.
func (s *Scene) Update(id string, fn func(*Object)) bool {
	s.mu.Lock()
	o, ok := s.byID[id]
	if ok {
		fn(o)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}

	s.emit(EventObjectModified, o)
	return true
}

// Stage applies fn without emitting an event. Continuous gestures
// (dragging, live sliders) stage their intermediate states and call
// Commit once when the gesture ends.
func (s *Scene) Stage(id string, fn func(*Object)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[id]
	if !ok {
		return false
	}
	fn(o)
	return true
}

// Commit emits EventObjectModified for a previously staged object.
func (s *Scene) Commit(id string) bool {
	s.mu.RLock()
	o, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	s.emit(EventObjectModified, o)
	return true
}

// Get returns the object with the given ID, or nil.
func (s *Scene) Get(id string) *Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

// Objects returns a copy of the paint-ordered object list.
func (s *Scene) Objects() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Snapshot returns deep copies of the paint-ordered objects. Renderers
// running off the mutation path (the texture-sync goroutine) rasterize
// the copies, so staged field writes never touch an object a render is
// reading.
func (s *Scene) Snapshot() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Object, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.Clone()
	}
	return out
}

// Len returns the number of objects in the scene.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// IndexOf returns the paint-order index of an object, or -1.
func (s *Scene) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, o := range s.objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// MoveIndex moves an object to a new paint-order index, shifting the
// objects between the old and new positions. Emits EventObjectModified.
func (s *Scene) MoveIndex(id string, index int) bool {
	s.mu.Lock()
	o, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return false
	}

	from := -1
	for i, obj := range s.objects {
		if obj.ID == id {
			from = i
			break
		}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(s.objects) {
		index = len(s.objects) - 1
	}
	if from == index {
		s.mu.Unlock()
		return true
	}

	s.objects = append(s.objects[:from], s.objects[from+1:]...)
	rest := make([]*Object, 0, len(s.objects)+1)
	rest = append(rest, s.objects[:index]...)
	rest = append(rest, o)
	rest = append(rest, s.objects[index:]...)
	s.objects = rest
	s.mu.Unlock()

	s.emit(EventObjectModified, o)
	return true
}

// HitTest returns the topmost unlocked, visible, non-helper object at
// the canvas point, or nil.
func (s *Scene) HitTest(x, y float64) *Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Topmost first
	for i := len(s.objects) - 1; i >= 0; i-- {
		o := s.objects[i]
		if o.Locked || !o.Visible || o.Role.Helper() {
			continue
		}
		if o.HitTest(x, y) {
			return o
		}
	}
	return nil
}

// Reset removes every object and emits EventSceneReset.
func (s *Scene) Reset() {
	s.mu.Lock()
	s.objects = nil
	s.byID = make(map[string]*Object)
	s.mu.Unlock()

	s.emit(EventSceneReset, nil)
}
