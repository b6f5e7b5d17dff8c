// Package versions stores named, user-triggered design snapshots,
// independent of the undo/redo stacks. Session-only: nothing persists.
package versions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Version is one named snapshot.
type Version struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Snapshot  []byte    `json:"-"`
}

// Store holds the session's versions, newest first.
type Store struct {
	mu   sync.RWMutex
	list []*Version
}

// NewStore creates an empty version store.
func NewStore() *Store {
	return &Store{}
}

// Save records a snapshot under the given name and returns it.
func (s *Store) Save(name string, snapshot []byte) *Version {
	v := &Version{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
		Snapshot:  snapshot,
	}

	s.mu.Lock()
	s.list = append([]*Version{v}, s.list...)
	s.mu.Unlock()
	return v
}

// Get returns a version by ID, or nil.
func (s *Store) Get(id string) *Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.list {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// List returns the versions newest first.
func (s *Store) List() []*Version {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Version, len(s.list))
	copy(out, s.list)
	return out
}

// Delete removes a version by ID. Returns false if no such version.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.list {
		if v.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored versions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}
