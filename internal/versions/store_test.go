package versions

import (
	"bytes"
	"testing"
)

func TestSaveListNewestFirst(t *testing.T) {
	s := NewStore()
	s.Save("draft", []byte("one"))
	s.Save("final", []byte("two"))

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("List = %d entries, want 2", len(list))
	}
	if list[0].Name != "final" || list[1].Name != "draft" {
		t.Errorf("order = [%s, %s], want newest first", list[0].Name, list[1].Name)
	}
	if list[0].ID == list[1].ID {
		t.Error("versions must get distinct IDs")
	}
	if list[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	s := NewStore()
	v := s.Save("draft", []byte("payload"))

	got := s.Get(v.ID)
	if got == nil {
		t.Fatal("Get returned nil for a saved version")
	}
	if !bytes.Equal(got.Snapshot, []byte("payload")) {
		t.Errorf("snapshot = %q", got.Snapshot)
	}
	if s.Get("no-such-id") != nil {
		t.Error("Get of an unknown ID must return nil")
	}
}

func TestDelete(t *testing.T) {
	s := NewStore()
	v := s.Save("draft", nil)

	if !s.Delete(v.ID) {
		t.Fatal("Delete returned false for an existing version")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after delete, want 0", s.Len())
	}
	if s.Delete(v.ID) {
		t.Error("second Delete must return false")
	}
}
