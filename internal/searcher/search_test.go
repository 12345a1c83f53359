package searcher

import (
	"testing"
	"time"
)

// testIndex builds an in-memory index without touching the filesystem.
func testIndex(recs ...*DocumentRecord) *Index {
	ix := NewIndex(".", nil)
	for _, rec := range recs {
		rec.SearchKey()
		ix.put(rec)
	}
	return ix
}

func rec(name, folder string) *DocumentRecord {
	return &DocumentRecord{Name: name, RelativeFolder: folder}
}

func TestSearch_AllTokensMustMatch(t *testing.T) {
	e := NewEngine(testIndex(
		rec("CB_Report_2024.bdoc", ""),
		rec("CB_Summary.bdoc", ""),
		rec("HR_Report.bdoc", ""),
	), NewPrefixManager(nil, nil))

	got := e.Search("cb report", SearchOptions{})
	if len(got) != 1 || got[0].Name != "CB_Report_2024.bdoc" {
		t.Errorf("expected only CB_Report_2024, got %v", names(got))
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	e := NewEngine(testIndex(rec("Annual_REPORT.bdoc", "")), NewPrefixManager(nil, nil))
	if got := e.Search("report", SearchOptions{}); len(got) != 1 {
		t.Errorf("case-insensitive match failed: %v", names(got))
	}
}

func TestSearch_ShortTokensDropped(t *testing.T) {
	e := NewEngine(testIndex(
		rec("A_Report.bdoc", ""),
		rec("B_Notes.bdoc", ""),
	), NewPrefixManager(nil, nil))

	// "a" is below the minimum token length; only "report" constrains.
	got := e.Search("a report", SearchOptions{})
	if len(got) != 1 || got[0].Name != "A_Report.bdoc" {
		t.Errorf("expected A_Report, got %v", names(got))
	}
}

func TestSearch_OnlyShortTokensReturnsNothing(t *testing.T) {
	e := NewEngine(testIndex(rec("A_Report.bdoc", "")), NewPrefixManager(nil, nil))
	if got := e.Search("a b c", SearchOptions{}); got != nil {
		t.Errorf("expected no results, got %v", names(got))
	}
}

func TestSearch_EmptyQueryReturnsAllNonExcluded(t *testing.T) {
	router := NewPrefixManager(nil, nil)
	router.SetFolderExclusion("Archive", true)

	e := NewEngine(testIndex(
		rec("Current.bdoc", ""),
		rec("Old.bdoc", "Archive"),
		rec("Older.bdoc", "Archive/2022"),
	), router)

	got := e.Search("", SearchOptions{})
	if len(got) != 1 || got[0].Name != "Current.bdoc" {
		t.Errorf("expected only Current, got %v", names(got))
	}
}

func TestSearch_PrefixRoutesToFolders(t *testing.T) {
	router := NewPrefixManager(nil, nil)
	router.AddPrefixFolder("cb", "Projects/CB")

	e := NewEngine(testIndex(
		rec("Report.bdoc", "Projects/CB"),
		rec("Report_Copy.bdoc", "Projects/Other"),
		rec("Deep_Report.bdoc", "Projects/CB/2024"),
	), router)

	got := e.Search("cb report", SearchOptions{})
	if len(got) != 2 {
		t.Fatalf("expected 2 routed results, got %v", names(got))
	}
	for _, r := range got {
		if r.RelativeFolder == "Projects/Other" {
			t.Error("routed search leaked outside the prefix folders")
		}
	}
}

func TestSearch_PrefixOverridesExclusion(t *testing.T) {
	router := NewPrefixManager(nil, nil)
	router.AddPrefixFolder("arc", "Archive")
	router.SetFolderExclusion("Archive", true)

	e := NewEngine(testIndex(rec("Old_Report.bdoc", "Archive")), router)

	if got := e.Search("report", SearchOptions{}); len(got) != 0 {
		t.Errorf("unprefixed search reached excluded folder: %v", names(got))
	}
	if got := e.Search("arc report", SearchOptions{}); len(got) != 1 {
		t.Errorf("prefixed search did not reach routed folder: %v", names(got))
	}
}

func TestSearch_PrefixRecognizedAcrossWhitespaceKinds(t *testing.T) {
	router := NewPrefixManager(nil, nil)
	router.AddPrefixFolder("cb", "Projects/CB")

	e := NewEngine(testIndex(
		rec("Report.bdoc", "Projects/CB"),
		rec("Report_Copy.bdoc", "Projects/Other"),
	), router)

	// The prefix word ends at any whitespace, not just a space.
	for _, query := range []string{"cb report", "cb\treport", "cb\n report"} {
		got := e.Search(query, SearchOptions{})
		if len(got) != 1 || got[0].RelativeFolder != "Projects/CB" {
			t.Errorf("query %q: expected routed result, got %v", query, names(got))
		}
	}
}

func TestSearch_PrefixOnlyQueryReturnsAllRouted(t *testing.T) {
	router := NewPrefixManager(nil, nil)
	router.AddPrefixFolder("cb", "Projects/CB")

	e := NewEngine(testIndex(
		rec("One.bdoc", "Projects/CB"),
		rec("Two.bdoc", "Projects/CB"),
		rec("Other.bdoc", "Elsewhere"),
	), router)

	got := e.Search("cb", SearchOptions{})
	if len(got) != 2 {
		t.Errorf("expected all routed records, got %v", names(got))
	}
}

func TestSearch_IncludePathMatchesFolder(t *testing.T) {
	e := NewEngine(testIndex(rec("Notes.bdoc", "Projects/Apollo")), NewPrefixManager(nil, nil))

	if got := e.Search("apollo", SearchOptions{}); len(got) != 0 {
		t.Errorf("folder matched without IncludePath: %v", names(got))
	}
	if got := e.Search("apollo", SearchOptions{IncludePath: true}); len(got) != 1 {
		t.Errorf("folder not matched with IncludePath: %v", names(got))
	}
}

func TestSearch_Sorting(t *testing.T) {
	older := &DocumentRecord{Name: "b.bdoc", SizeBytes: 10, ModifiedAt: time.Now().Add(-time.Hour)}
	newer := &DocumentRecord{Name: "a.bdoc", SizeBytes: 20, ModifiedAt: time.Now()}
	e := NewEngine(testIndex(older, newer), NewPrefixManager(nil, nil))

	byName := e.Search("", SearchOptions{SortKey: SortByName})
	if byName[0].Name != "a.bdoc" {
		t.Errorf("name sort: got %v", names(byName))
	}
	bySize := e.Search("", SearchOptions{SortKey: SortBySize, Reverse: true})
	if bySize[0].SizeBytes != 20 {
		t.Errorf("size desc sort: got %v", names(bySize))
	}
	byMod := e.Search("", SearchOptions{SortKey: SortByModified})
	if byMod[0].Name != "b.bdoc" {
		t.Errorf("modified sort: got %v", names(byMod))
	}
}

func TestSearch_UnsortedPreservesIndexOrder(t *testing.T) {
	e := NewEngine(testIndex(
		rec("zeta.bdoc", ""),
		rec("alpha.bdoc", ""),
	), NewPrefixManager(nil, nil))

	got := e.Search("", SearchOptions{})
	if len(got) != 2 || got[0].Name != "zeta.bdoc" {
		t.Errorf("insertion order not preserved: %v", names(got))
	}
}

func names(recs []*DocumentRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}
