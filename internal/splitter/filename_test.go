package splitter

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeFilename_IllegalCharacters(t *testing.T) {
	got := SanitizeFilename(`Budget: Q1/Q2 <draft>?`)
	if strings.ContainsAny(got, `<>:"/\|?*`) {
		t.Errorf("illegal characters survived: %q", got)
	}
	if got != "Budget_Q1Q2_draft" {
		t.Errorf("expected %q, got %q", "Budget_Q1Q2_draft", got)
	}
}

func TestSanitizeFilename_WhitespaceRuns(t *testing.T) {
	got := SanitizeFilename("Annual   Report \t 2024")
	if got != "Annual_Report_2024" {
		t.Errorf("expected %q, got %q", "Annual_Report_2024", got)
	}
}

func TestSanitizeFilename_DotRuns(t *testing.T) {
	got := SanitizeFilename("v1...2...final")
	if got != "v1.2.final" {
		t.Errorf("expected %q, got %q", "v1.2.final", got)
	}
}

func TestSanitizeFilename_TrimsLeadingTrailing(t *testing.T) {
	got := SanitizeFilename("..hidden section..")
	if strings.HasPrefix(got, ".") || strings.HasSuffix(got, ".") ||
		strings.HasPrefix(got, "_") || strings.HasSuffix(got, "_") {
		t.Errorf("leading/trailing dots or underscores survived: %q", got)
	}
}

func TestSanitizeFilename_Truncation(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("a", 500))
	if len(got) > MaxFilenameLength {
		t.Errorf("expected length <= %d, got %d", MaxFilenameLength, len(got))
	}
}

func TestSanitizeFilename_TruncationKeepsValidUTF8(t *testing.T) {
	// Multibyte runes straddling the length limit must not be cut in half.
	got := SanitizeFilename("a" + strings.Repeat("あ", 100))
	if len(got) > MaxFilenameLength {
		t.Errorf("expected length <= %d, got %d", MaxFilenameLength, len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated name is not valid UTF-8: %q", got)
	}
	if twice := SanitizeFilename(got); twice != got {
		t.Errorf("truncated name not idempotent: %q != %q", got, twice)
	}
}

func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{
		"Budget: Q1/Q2 <draft>?",
		"Annual   Report",
		"..v1...2..",
		"already_safe",
		strings.Repeat("x y", 200),
	}
	for _, in := range inputs {
		once := SanitizeFilename(in)
		twice := SanitizeFilename(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestEnsureUnique_FirstKeepsName(t *testing.T) {
	used := make(map[string]bool)
	if got := EnsureUnique("Section", used); got != "Section" {
		t.Errorf("expected %q, got %q", "Section", got)
	}
}

func TestEnsureUnique_CollisionsSuffix(t *testing.T) {
	used := make(map[string]bool)
	EnsureUnique("Section", used)
	if got := EnsureUnique("Section", used); got != "Section_1" {
		t.Errorf("expected %q, got %q", "Section_1", got)
	}
	if got := EnsureUnique("Section", used); got != "Section_2" {
		t.Errorf("expected %q, got %q", "Section_2", got)
	}
}

func TestEnsureUnique_SuffixBeforeExtension(t *testing.T) {
	used := map[string]bool{"notes.txt": true}
	if got := EnsureUnique("notes.txt", used); got != "notes_1.txt" {
		t.Errorf("expected %q, got %q", "notes_1.txt", got)
	}
}
