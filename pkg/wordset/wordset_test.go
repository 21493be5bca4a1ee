package wordset

import (
	"errors"
	"reflect"
	"testing"
)

func TestSet_Add(t *testing.T) {
	s := New()

	if s.Count() != 0 {
		t.Fatalf("want empty set, got %d entries", s.Count())
	}

	for _, w := range []string{"scunthorpe", "Scunthorpe", "ScunThorpe"} {
		if err := s.Add(w); err != nil {
			t.Fatalf("unexpected error adding %q: %v", w, err)
		}
	}
	if s.Count() != 1 {
		t.Errorf("want 1 entry after mixed case additions, got %d", s.Count())
	}

	ok, err := s.Contains("SCUNTHORPE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("want set to contain scunthorpe regardless of case")
	}

	if got := s.List(); !reflect.DeepEqual(got, []string{"scunthorpe"}) {
		t.Errorf("want stored word in lower case, got %v", got)
	}
}

func TestSet_InvalidArgument(t *testing.T) {
	s := New()

	if err := s.Add(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add: want ErrInvalidArgument, got %v", err)
	}
	if _, err := s.Remove(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Remove: want ErrInvalidArgument, got %v", err)
	}
	if _, err := s.Contains(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Contains: want ErrInvalidArgument, got %v", err)
	}
}

func TestSet_Remove(t *testing.T) {
	s := New("Scunthorpe", "Penistone", "Cockburn")

	removed, err := s.Remove("PENISTONE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Error("want Remove to report an existing word as removed")
	}

	removed, err = s.Remove("wibble")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("want Remove to report a missing word as not removed")
	}

	want := []string{"scunthorpe", "cockburn"}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}

	// index must follow the shifted slice
	if removed, _ := s.Remove("cockburn"); !removed {
		t.Error("want cockburn removed after shifting")
	}
	if ok, _ := s.Contains("cockburn"); ok {
		t.Error("want cockburn gone")
	}
	if ok, _ := s.Contains("scunthorpe"); !ok {
		t.Error("want scunthorpe kept")
	}
}

func TestSet_Clear(t *testing.T) {
	s := New("Scunthorpe", "Penistone")
	s.Clear()

	if s.Count() != 0 {
		t.Errorf("want 0 entries after Clear, got %d", s.Count())
	}
	if ok, _ := s.Contains("scunthorpe"); ok {
		t.Error("want cleared set not to contain scunthorpe")
	}

	if err := s.Add("Scunthorpe"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Count() != 1 {
		t.Errorf("want 1 entry after re-adding, got %d", s.Count())
	}
}

func TestSet_ListIsCopy(t *testing.T) {
	s := New("one", "two")
	l := s.List()
	l[0] = "changed"

	if ok, _ := s.Contains("one"); !ok {
		t.Error("want List to return a copy")
	}
}
