package searcher

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrefixManager_AddAndRemove(t *testing.T) {
	m := NewPrefixManager(nil, nil)

	if !m.AddPrefixFolder("cb", "Projects/CB") {
		t.Fatal("valid prefix rejected")
	}
	if !m.IsPrefixWord("cb") {
		t.Error("prefix not registered")
	}
	if got := m.FoldersForPrefix("cb"); len(got) != 1 || got[0] != "Projects/CB" {
		t.Errorf("folders: %v", got)
	}

	if !m.RemovePrefixFolder("cb", "Projects/CB") {
		t.Fatal("remove failed")
	}
	if m.IsPrefixWord("cb") {
		t.Error("prefix survived removal of its last folder")
	}
}

func TestPrefixManager_InvalidPrefix(t *testing.T) {
	m := NewPrefixManager(nil, nil)
	for _, p := range []string{"", "with space", "tab\t", "semi;colon"} {
		if m.AddPrefixFolder(p, "folder") {
			t.Errorf("invalid prefix %q accepted", p)
		}
	}
	if m.RemovePrefixFolder("unknown", "folder") {
		t.Error("remove succeeded for unknown prefix")
	}
}

func TestPrefixManager_FolderNormalization(t *testing.T) {
	m := NewPrefixManager(nil, nil)
	m.AddPrefixFolder("cb", `\Projects\CB\`)
	if got := m.FoldersForPrefix("cb"); len(got) != 1 || got[0] != "Projects/CB" {
		t.Errorf("folders not normalized: %v", got)
	}
}

func TestPrefixManager_ExclusionCoversDescendants(t *testing.T) {
	m := NewPrefixManager(nil, nil)
	m.SetFolderExclusion("Archive", true)

	if !m.IsFolderExcluded("Archive") {
		t.Error("excluded folder not reported")
	}
	if !m.IsFolderExcluded("Archive/2023/Q1") {
		t.Error("descendant of excluded folder not reported")
	}
	if m.IsFolderExcluded("Archives") {
		t.Error("sibling with shared name prefix wrongly excluded")
	}
	if m.IsFolderExcluded("Current") {
		t.Error("unrelated folder excluded")
	}
}

func TestPrefixManager_ExcludingAncestorPurgesDescendants(t *testing.T) {
	m := NewPrefixManager(nil, nil)
	m.SetFolderExclusion("Archive/2023", true)
	m.SetFolderExclusion("Archive", true)

	got := m.Exclusions()
	if len(got) != 1 || got[0] != "Archive" {
		t.Errorf("descendant not purged: %v", got)
	}
}

func TestPrefixManager_ExcludingDescendantOfExcludedIsNoop(t *testing.T) {
	m := NewPrefixManager(nil, nil)
	m.SetFolderExclusion("Archive", true)
	m.SetFolderExclusion("Archive/2023", true)

	got := m.Exclusions()
	if len(got) != 1 || got[0] != "Archive" {
		t.Errorf("expected only the ancestor, got %v", got)
	}
}

func TestPrefixManager_RemoveExclusion(t *testing.T) {
	m := NewPrefixManager(nil, nil)
	m.SetFolderExclusion("Archive", true)
	m.SetFolderExclusion("Archive", false)
	if m.IsFolderExcluded("Archive") {
		t.Error("exclusion survived removal")
	}
}

func TestPrefixManager_VerifyFolders(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Projects", "CB"), 0o755); err != nil {
		t.Fatal(err)
	}

	m := NewPrefixManager(nil, nil)
	m.AddPrefixFolder("cb", "Projects/CB")
	m.AddPrefixFolder("cb", "Projects/Gone")

	missing := m.VerifyFolders(root)
	if len(missing) != 1 {
		t.Fatalf("expected 1 missing folder, got %v", missing)
	}
	if missing[0].Prefix != "cb" || missing[0].Folder != "Projects/Gone" {
		t.Errorf("missing: %+v", missing[0])
	}
}

func TestPrefixManager_CSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.csv")

	m := NewPrefixManager(nil, nil)
	m.AddPrefixFolder("cb", "Projects/CB")
	m.AddPrefixFolder("cb", "Projects/CB-Extra")
	m.AddPrefixFolder("hr", "People")
	m.SetFolderExclusion("Archive", true)

	if err := m.ExportCSV(path); err != nil {
		t.Fatalf("export: %v", err)
	}

	other := NewPrefixManager(nil, nil)
	other.AddPrefixFolder("stale", "Old")
	other.SetFolderExclusion("Keep", true)
	if err := other.ImportCSV(path); err != nil {
		t.Fatalf("import: %v", err)
	}

	if other.IsPrefixWord("stale") {
		t.Error("import did not replace the prefix table")
	}
	if got := other.FoldersForPrefix("cb"); len(got) != 2 {
		t.Errorf("cb folders after import: %v", got)
	}
	if got := other.FoldersForPrefix("hr"); len(got) != 1 || got[0] != "People" {
		t.Errorf("hr folders after import: %v", got)
	}
	// Exclusions are not part of the CSV and survive untouched.
	if !m.IsFolderExcluded("Archive") {
		t.Error("exporter lost its own exclusions")
	}
	if !other.IsFolderExcluded("Keep") {
		t.Error("import clobbered exclusions")
	}
}
