package splitter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"blocksearch/internal/blockdoc"
)

// MetaSuffix is appended to an output document's filename to form its
// sidecar path.
const MetaSuffix = ".meta.json"

// maxMirroredParentLen bounds the parent name mirrored into document
// properties, which have tighter size limits than the sidecar.
const maxMirroredParentLen = 50

// SectionMetadata is the sidecar record that lets an indexer rebuild the
// original document's hierarchy from the split artifacts alone.
type SectionMetadata struct {
	OriginalDocPath    string   `json:"original_doc_path"`
	PositionInOriginal int      `json:"position_in_original"`
	SectionLevel       int      `json:"section_level"`
	SectionTitle       string   `json:"section_title"`
	ParentDocName      string   `json:"parent_doc_name,omitempty"`
	SiblingDocs        []string `json:"sibling_docs"`
}

// BuildMetadata computes the sidecar record for one section. Siblings are
// every other target-level section sharing the same parent (or sharing
// "no parent" for root-level sections), ordered by ascending start index,
// self excluded.
func BuildMetadata(section *Section, all []*Section, inputPath string) SectionMetadata {
	meta := SectionMetadata{
		OriginalDocPath:    inputPath,
		PositionInOriginal: section.StartIndex,
		SectionLevel:       section.Level,
		SectionTitle:       section.Title,
		SiblingDocs:        []string{},
	}
	if section.Parent != nil {
		meta.ParentDocName = section.Parent.SafeTitle
	}

	var siblings []*Section
	for _, s := range all {
		if s.Level != section.Level {
			continue
		}
		if sameParent(section, s) {
			siblings = append(siblings, s)
		}
	}
	sort.SliceStable(siblings, func(i, j int) bool {
		return siblings[i].StartIndex < siblings[j].StartIndex
	})
	for _, s := range siblings {
		if s.SafeTitle != section.SafeTitle {
			meta.SiblingDocs = append(meta.SiblingDocs, s.SafeTitle)
		}
	}
	return meta
}

func sameParent(a, b *Section) bool {
	if a.Parent == nil || b.Parent == nil {
		return a.Parent == nil && b.Parent == nil
	}
	return a.Parent.SafeTitle == b.Parent.SafeTitle
}

// WriteSidecar serializes the record next to the output document. docPath
// is the output document's full path; the sidecar name is the document
// filename plus MetaSuffix.
func WriteSidecar(docPath string, meta SectionMetadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sidecar: %w", err)
	}
	path := docPath + MetaSuffix
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}

// MirrorProperties writes a short subset of the metadata into the output
// document's descriptive properties for backward compatibility. The
// sidecar remains authoritative.
func MirrorProperties(doc *blockdoc.Document, meta SectionMetadata) {
	doc.Props.Identifier = "Original: " + filepath.Base(meta.OriginalDocPath)
	doc.Props.Category = fmt.Sprintf("position:%d", meta.PositionInOriginal)
	if meta.ParentDocName != "" {
		parent := meta.ParentDocName
		if len(parent) > maxMirroredParentLen {
			parent = parent[:maxMirroredParentLen]
		}
		doc.Props.Subject = "parent:" + parent
	}
	if len(meta.SiblingDocs) > 0 {
		if data, err := json.Marshal(meta.SiblingDocs); err == nil {
			doc.Props.Comments = string(data)
		}
	}
}
