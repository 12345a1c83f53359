package searcher

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"blocksearch/internal/blockdoc"
	"blocksearch/internal/splitter"
)

func writeDoc(t *testing.T, path string, doc *blockdoc.Document) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := blockdoc.Save(path, doc); err != nil {
		t.Fatal(err)
	}
}

func writeSidecar(t *testing.T, path string, meta splitter.SectionMetadata) {
	t.Helper()
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIndexRebuild_FindsDocumentsRecursively(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "Top.bdoc"), &blockdoc.Document{})
	writeDoc(t, filepath.Join(root, "sub", "Nested.bdoc"), &blockdoc.Document{})
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ix := NewIndex(root, nil)
	if err := ix.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if ix.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", ix.Len())
	}

	nested, ok := ix.Get("nested")
	if !ok {
		t.Fatal("nested document not indexed")
	}
	if nested.RelativeFolder != "sub" {
		t.Errorf("relative folder: %q", nested.RelativeFolder)
	}
}

func TestIndexRebuild_SkipsSidecarFiles(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "Doc.bdoc"), &blockdoc.Document{})
	writeSidecar(t, filepath.Join(root, "Doc.bdoc"+splitter.MetaSuffix), splitter.SectionMetadata{})

	ix := NewIndex(root, nil)
	if err := ix.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if ix.Len() != 1 {
		t.Errorf("sidecar indexed as document: %d records", ix.Len())
	}
}

func TestIndexRebuild_LoadsSidecarHierarchy(t *testing.T) {
	root := t.TempDir()
	docPath := filepath.Join(root, "A1.bdoc")
	writeDoc(t, docPath, &blockdoc.Document{})
	writeSidecar(t, docPath+splitter.MetaSuffix, splitter.SectionMetadata{
		OriginalDocPath:    "/docs/source.bdoc",
		PositionInOriginal: 3,
		SectionLevel:       3,
		SectionTitle:       "A1",
		ParentDocName:      "A",
		SiblingDocs:        []string{"A2"},
	})

	ix := NewIndex(root, nil)
	if err := ix.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	rec, ok := ix.Get("a1")
	if !ok {
		t.Fatal("document not indexed")
	}
	if !rec.HasHierarchy() {
		t.Fatal("hierarchy not loaded")
	}
	if rec.OriginalDocPath != "/docs/source.bdoc" || rec.ParentDocName != "A" {
		t.Errorf("hierarchy fields: %+v", rec)
	}
	if rec.PositionInOriginal == nil || *rec.PositionInOriginal != 3 {
		t.Errorf("position: %v", rec.PositionInOriginal)
	}
}

func TestIndexRebuild_LegacySidecarName(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "B1.bdoc"), &blockdoc.Document{})
	// Older emitters replaced the extension instead of appending.
	writeSidecar(t, filepath.Join(root, "B1.meta.json"), splitter.SectionMetadata{
		OriginalDocPath: "legacy.bdoc",
		SiblingDocs:     []string{},
	})

	ix := NewIndex(root, nil)
	if err := ix.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	rec, _ := ix.Get("b1")
	if rec == nil || rec.OriginalDocPath != "legacy.bdoc" {
		t.Errorf("legacy sidecar not read: %+v", rec)
	}
}

func TestIndexRebuild_MirroredPropertiesFallback(t *testing.T) {
	root := t.TempDir()
	writeDoc(t, filepath.Join(root, "C1.bdoc"), &blockdoc.Document{
		Props: blockdoc.Properties{
			Identifier: "Original: source.bdoc",
			Category:   "position:9",
			Subject:    "parent:C",
			Comments:   `["C2","C3"]`,
		},
	})

	ix := NewIndex(root, nil)
	if err := ix.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	rec, _ := ix.Get("c1")
	if rec == nil {
		t.Fatal("document not indexed")
	}
	if rec.OriginalDocPath != "source.bdoc" || rec.ParentDocName != "C" {
		t.Errorf("mirror fields: %+v", rec)
	}
	if rec.PositionInOriginal == nil || *rec.PositionInOriginal != 9 {
		t.Errorf("position: %v", rec.PositionInOriginal)
	}
	if len(rec.SiblingDocs) != 2 {
		t.Errorf("siblings: %v", rec.SiblingDocs)
	}
}

func TestIndexRebuild_SidecarWinsOverMirror(t *testing.T) {
	root := t.TempDir()
	docPath := filepath.Join(root, "D1.bdoc")
	writeDoc(t, docPath, &blockdoc.Document{
		Props: blockdoc.Properties{Identifier: "Original: mirror.bdoc"},
	})
	writeSidecar(t, docPath+splitter.MetaSuffix, splitter.SectionMetadata{
		OriginalDocPath: "sidecar.bdoc",
		SiblingDocs:     []string{},
	})

	ix := NewIndex(root, nil)
	if err := ix.Rebuild(); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	rec, _ := ix.Get("d1")
	if rec == nil || rec.OriginalDocPath != "sidecar.bdoc" {
		t.Errorf("sidecar did not take precedence: %+v", rec)
	}
}

func TestIndexRebuild_DuplicateStemKeepsPosition(t *testing.T) {
	ix := testIndex(rec("Doc.bdoc", "first"))
	ix.put(&DocumentRecord{Name: "Doc.bdoc", RelativeFolder: "second"})

	if ix.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", ix.Len())
	}
	got, _ := ix.Get("doc")
	if got.RelativeFolder != "second" {
		t.Errorf("later record did not overwrite: %q", got.RelativeFolder)
	}
}
