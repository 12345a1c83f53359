package searcher

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"blocksearch/internal/blockdoc"
	"blocksearch/internal/splitter"
)

// legacyMetaSuffix is the older sidecar convention: the suffix replaces
// the document extension instead of following it.
const legacyMetaSuffix = ".meta.json"

// Index is the searchable corpus: a mapping keyed by lowercased file
// stem, rebuilt wholesale on every scan. Insertion order is preserved so
// unsorted search results are stable; a later file with the same stem
// overwrites an earlier one.
type Index struct {
	root    string
	records map[string]*DocumentRecord
	order   []string
	log     *slog.Logger
}

// NewIndex creates an empty index over the given search root.
func NewIndex(root string, log *slog.Logger) *Index {
	if log == nil {
		log = slog.Default()
	}
	return &Index{
		root:    root,
		records: make(map[string]*DocumentRecord),
		log:     log,
	}
}

// Root returns the search root the index scans.
func (ix *Index) Root() string { return ix.root }

// Len returns the number of indexed records.
func (ix *Index) Len() int { return len(ix.order) }

// Get returns the record for a lowercased file stem.
func (ix *Index) Get(stem string) (*DocumentRecord, bool) {
	rec, ok := ix.records[strings.ToLower(stem)]
	return rec, ok
}

// Records returns all records in insertion order.
func (ix *Index) Records() []*DocumentRecord {
	out := make([]*DocumentRecord, 0, len(ix.order))
	for _, key := range ix.order {
		out = append(out, ix.records[key])
	}
	return out
}

// Rebuild discards the index and rescans the root recursively. A failure
// on an individual file is logged and that file skipped; a directory-level
// failure aborts the scan and propagates.
func (ix *Index) Rebuild() error {
	ix.records = make(map[string]*DocumentRecord)
	ix.order = nil

	err := filepath.WalkDir(ix.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
		if d.IsDir() || !indexableFile(path) {
			return nil
		}
		rec, ferr := ix.buildRecord(path, d)
		if ferr != nil {
			ix.log.Warn("skipping file", "path", path, "error", ferr)
			return nil
		}
		ix.put(rec)
		return nil
	})
	if err != nil {
		return fmt.Errorf("index documents: %w", err)
	}
	ix.log.Info("index rebuilt", "root", ix.root, "documents", len(ix.order))
	return nil
}

func indexableFile(path string) bool {
	if strings.HasSuffix(path, legacyMetaSuffix) {
		return false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case blockdoc.Ext, ".docx":
		return true
	}
	return false
}

func (ix *Index) put(rec *DocumentRecord) {
	key := strings.ToLower(fileStem(rec.Name))
	if _, exists := ix.records[key]; !exists {
		ix.order = append(ix.order, key)
	}
	ix.records[key] = rec
}

func fileStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (ix *Index) buildRecord(path string, d fs.DirEntry) (*DocumentRecord, error) {
	info, err := d.Info()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	rel, err := filepath.Rel(ix.root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("relative folder: %w", err)
	}
	folder := filepath.ToSlash(rel)
	if folder == "." {
		folder = ""
	}

	rec := &DocumentRecord{
		Name:           d.Name(),
		Path:           path,
		SizeBytes:      info.Size(),
		ModifiedAt:     info.ModTime(),
		CreatedAt:      info.ModTime(), // birth time is not portably available
		RelativeFolder: folder,
	}
	rec.SearchKey()

	if err := ix.loadHierarchy(path, rec); err != nil {
		// Metadata is optional; the record stays searchable without it.
		ix.log.Warn("no hierarchy metadata", "path", path, "error", err)
	}
	return rec, nil
}

// loadHierarchy fills the record's hierarchy links: the emitter's sidecar
// convention first, then the legacy convention, then the property mirror
// inside the document itself.
func (ix *Index) loadHierarchy(path string, rec *DocumentRecord) error {
	sidecars := []string{
		path + splitter.MetaSuffix,
		strings.TrimSuffix(path, filepath.Ext(path)) + legacyMetaSuffix,
	}
	for _, sc := range sidecars {
		data, err := os.ReadFile(sc)
		if err != nil {
			continue
		}
		var meta splitter.SectionMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			return fmt.Errorf("parse sidecar %s: %w", sc, err)
		}
		rec.OriginalDocPath = meta.OriginalDocPath
		pos := meta.PositionInOriginal
		rec.PositionInOriginal = &pos
		rec.ParentDocName = meta.ParentDocName
		rec.SiblingDocs = meta.SiblingDocs
		return nil
	}

	if strings.ToLower(filepath.Ext(path)) == blockdoc.Ext {
		return ix.loadMirroredProps(path, rec)
	}
	return nil
}

// loadMirroredProps reads the legacy descriptive-property mirror written
// into the document for backward compatibility.
func (ix *Index) loadMirroredProps(path string, rec *DocumentRecord) error {
	doc, err := blockdoc.Load(path)
	if err != nil {
		return fmt.Errorf("read document properties: %w", err)
	}
	props := doc.Props

	if props.Identifier != "" {
		rec.OriginalDocPath = strings.TrimPrefix(props.Identifier, "Original: ")
	}
	if rest, ok := strings.CutPrefix(props.Category, "position:"); ok {
		var pos int
		if _, err := fmt.Sscanf(rest, "%d", &pos); err == nil {
			rec.PositionInOriginal = &pos
		}
	}
	if rest, ok := strings.CutPrefix(props.Subject, "parent:"); ok {
		rec.ParentDocName = rest
	}
	if props.Comments != "" {
		var siblings []string
		if err := json.Unmarshal([]byte(props.Comments), &siblings); err == nil {
			rec.SiblingDocs = siblings
		}
	}
	return nil
}
