package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RoutesRoundTrip(t *testing.T) {
	s := openTestStore(t)

	routes := map[string][]string{
		"cb": {"Projects/CB", "Projects/CB-Extra"},
		"hr": {"People"},
	}
	exclusions := []string{"Archive", "Drafts"}
	if err := s.SaveRoutes(routes, exclusions); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotRoutes, gotExclusions, err := s.LoadRoutes()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(gotRoutes) != 2 || len(gotRoutes["cb"]) != 2 {
		t.Errorf("routes: %v", gotRoutes)
	}
	if len(gotExclusions) != 2 || gotExclusions[0] != "Archive" {
		t.Errorf("exclusions: %v", gotExclusions)
	}
}

func TestStore_SaveReplacesPrevious(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveRoutes(map[string][]string{"old": {"A"}}, []string{"X"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRoutes(map[string][]string{"new": {"B"}}, nil); err != nil {
		t.Fatal(err)
	}

	routes, exclusions, err := s.LoadRoutes()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := routes["old"]; ok {
		t.Error("stale route survived replacement")
	}
	if len(exclusions) != 0 {
		t.Errorf("stale exclusions survived: %v", exclusions)
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := openTestStore(t)
	routes, exclusions, err := s.LoadRoutes()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(routes) != 0 || len(exclusions) != 0 {
		t.Errorf("fresh store not empty: %v %v", routes, exclusions)
	}
}

func TestStore_Settings(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get("last_input"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set("last_input", "/docs/a.bdoc"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("last_input", "/docs/b.bdoc"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("last_input")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/docs/b.bdoc" {
		t.Errorf("expected overwrite to win, got %q", got)
	}
}
