package state

import (
	"path/filepath"
	"testing"
)

func TestOpen_NoFileStartsFresh(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := s.GetBool("hw_check_enabled", true); got != true {
		t.Fatalf("GetBool default = %v, want true", got)
	}
}

func TestSetBool_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := s.SetBool("hw_check_enabled", true); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	if got := reopened.GetBool("hw_check_enabled", false); got != true {
		t.Fatalf("GetBool after reopen = %v, want true", got)
	}
}

func TestGetBool_WrongTypeFallsBackToDefault(t *testing.T) {
	s := &Store{path: filepath.Join(t.TempDir(), "state.json"), values: map[string]any{"k": "yes"}}
	if got := s.GetBool("k", false); got != false {
		t.Fatalf("GetBool on non-bool = %v, want default", got)
	}
}
