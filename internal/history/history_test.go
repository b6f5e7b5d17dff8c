package history

import (
	"bytes"
	"fmt"
	"testing"
)

func snap(n int) []byte {
	return []byte(fmt.Sprintf("state-%d", n))
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := NewManager(0)
	m.Snapshot(snap(1))
	m.Snapshot(snap(2))
	m.Snapshot(snap(3))

	got, ok := m.Undo()
	if !ok || !bytes.Equal(got, snap(2)) {
		t.Fatalf("first undo = %q, %v", got, ok)
	}
	got, ok = m.Undo()
	if !ok || !bytes.Equal(got, snap(1)) {
		t.Fatalf("second undo = %q, %v", got, ok)
	}
	if _, ok := m.Undo(); ok {
		t.Fatal("undo past the initial state must fail")
	}

	got, ok = m.Redo()
	if !ok || !bytes.Equal(got, snap(2)) {
		t.Fatalf("first redo = %q, %v", got, ok)
	}
	got, ok = m.Redo()
	if !ok || !bytes.Equal(got, snap(3)) {
		t.Fatalf("second redo = %q, %v", got, ok)
	}
	if _, ok := m.Redo(); ok {
		t.Fatal("redo with empty stack must fail")
	}
}

func TestSnapshotEvictsOldestAtLimit(t *testing.T) {
	m := NewManager(50)
	for i := 1; i <= 51; i++ {
		m.Snapshot(snap(i))
	}

	if m.Len() != 50 {
		t.Fatalf("Len = %d, want 50", m.Len())
	}
	if got := m.Oldest(); !bytes.Equal(got, snap(2)) {
		t.Errorf("oldest = %q, want %q", got, snap(2))
	}
}

func TestMutationAfterUndoClearsRedo(t *testing.T) {
	m := NewManager(0)
	m.Snapshot(snap(1))
	m.Snapshot(snap(2))

	if _, ok := m.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if !m.CanRedo() {
		t.Fatal("expected a redo entry after undo")
	}

	m.Snapshot(snap(3))
	if m.CanRedo() {
		t.Error("new mutation must clear the redo stack")
	}
}

func TestEmptyAndSingleEntry(t *testing.T) {
	m := NewManager(0)
	if _, ok := m.Undo(); ok {
		t.Error("undo on empty manager must fail")
	}
	if _, ok := m.Redo(); ok {
		t.Error("redo on empty manager must fail")
	}

	m.Snapshot(snap(1))
	if m.CanUndo() {
		t.Error("single entry is the initial state; no undo available")
	}
}

func TestClear(t *testing.T) {
	m := NewManager(0)
	m.Snapshot(snap(1))
	m.Snapshot(snap(2))
	m.Undo()

	m.Clear()
	if m.Len() != 0 || m.CanRedo() {
		t.Errorf("Clear left entries: len=%d canRedo=%v", m.Len(), m.CanRedo())
	}
}
