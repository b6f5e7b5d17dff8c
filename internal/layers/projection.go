// Package layers derives the user-facing layer list from the scene's
// paint-ordered object collection.
package layers

import (
	"mug-studio/internal/scene"
)

// Entry is a read-only projection of one scene object for display in
// the layers panel. Entries are never mutated directly: writes go
// through the scene object and the projection is rebuilt.
type Entry struct {
	ObjectID string
	Name     string
	Kind     scene.Kind
	Visible  bool
	Locked   bool
	// Index is the object's paint-order position in the scene,
	// used as the reinsertion target when reordering.
	Index int
}

// Project builds the layer list from the paint-ordered object slice:
// most-recently-added first, guide and export-hidden helpers excluded.
// The result is a pure function of scene state.
func Project(objects []*scene.Object) []Entry {
	entries := make([]Entry, 0, len(objects))
	for i := len(objects) - 1; i >= 0; i-- {
		o := objects[i]
		if o.Role.Helper() {
			continue
		}
		entries = append(entries, Entry{
			ObjectID: o.ID,
			Name:     o.DisplayName(),
			Kind:     o.Kind,
			Visible:  o.Visible,
			Locked:   o.Locked,
			Index:    i,
		})
	}
	return entries
}

// Reorder moves the entry's underlying object to the paint-order index
// of the target entry. Dropping a layer onto the top list position
// makes its object last-drawn (topmost); other objects keep their
// relative order.
func Reorder(s *scene.Scene, from, to Entry) bool {
	return s.MoveIndex(from.ObjectID, to.Index)
}

// SetVisible toggles the underlying object's visibility.
func SetVisible(s *scene.Scene, e Entry, visible bool) bool {
	return s.Update(e.ObjectID, func(o *scene.Object) {
		o.Visible = visible
	})
}

// SetLocked toggles the underlying object's lock flag.
func SetLocked(s *scene.Scene, e Entry, locked bool) bool {
	return s.Update(e.ObjectID, func(o *scene.Object) {
		o.Locked = locked
	})
}

// Delete removes the underlying object from the scene.
func Delete(s *scene.Scene, e Entry) bool {
	return s.Remove(e.ObjectID)
}
