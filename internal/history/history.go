// Package history provides linear undo/redo over serialized scene
// snapshots.
package history

import (
	"sync"
)

// DefaultLimit caps the undo stack. The oldest snapshot is evicted
// first once the cap is reached.
const DefaultLimit = 50

// Manager holds the undo and redo stacks. The top of the undo stack is
// always the current scene state; the entry below it is the state
// immediately preceding the most recent mutation.
type Manager struct {
	mu    sync.Mutex
	undo  [][]byte
	redo  [][]byte
	limit int
}

// NewManager creates a manager with the given stack limit; limit <= 0
// uses DefaultLimit.
func NewManager(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

// Snapshot pushes a serialized scene state onto the undo stack and
// clears the redo stack. A new mutation after an undo therefore ends
// the redo branch, keeping history strictly linear.
func (m *Manager) Snapshot(state []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.undo = append(m.undo, state)
	if len(m.undo) > m.limit {
		// FIFO eviction of the oldest entry
		copy(m.undo, m.undo[1:])
		m.undo = m.undo[:m.limit]
	}
	m.redo = m.redo[:0]
}

// Undo pops the current state onto the redo stack and returns the
// previous snapshot to restore. Returns (nil, false) when fewer than
// two entries exist: the initial state is always retained.
func (m *Manager) Undo() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.undo) < 2 {
		return nil, false
	}
	top := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, top)
	return m.undo[len(m.undo)-1], true
}

// Redo pops one entry off the redo stack, pushes it back onto the undo
// stack as the new current state, and returns it. Returns (nil, false)
// when the redo stack is empty.
func (m *Manager) Redo() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.redo) == 0 {
		return nil, false
	}
	entry := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, entry)
	return entry, true
}

// CanUndo reports whether an undo step is available.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo) >= 2
}

// CanRedo reports whether a redo step is available.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.redo) > 0
}

// Len returns the undo stack depth.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo)
}

// Oldest returns the oldest retained snapshot, or nil when empty.
func (m *Manager) Oldest() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return nil
	}
	return m.undo[0]
}

// Clear drops both stacks. Used when a new design is loaded.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo = m.undo[:0]
	m.redo = m.redo[:0]
}
