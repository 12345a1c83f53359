package searcher

import (
	"sort"
	"strings"
)

// Context reconstructs a document-order view of a split fragment's family
// (parent first, then siblings by original position) using only
// sidecar-derived names resolved against the index. The original source
// document is never reopened.
func (e *Engine) Context(rec *DocumentRecord) []*DocumentRecord {
	if !rec.HasHierarchy() {
		return []*DocumentRecord{rec}
	}

	related := []*DocumentRecord{rec}
	for _, sibling := range rec.SiblingDocs {
		if found, ok := e.index.Get(strings.ToLower(sibling)); ok {
			related = append(related, found)
		}
	}
	if rec.ParentDocName != "" {
		if parent, ok := e.index.Get(strings.ToLower(rec.ParentDocName)); ok {
			related = append([]*DocumentRecord{parent}, related...)
		}
	}

	// Parent-less records first, then children ascending by position in
	// the original; records without a position sort last.
	var parents, children []*DocumentRecord
	for _, r := range related {
		if r.ParentDocName == "" {
			parents = append(parents, r)
		} else {
			children = append(children, r)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		pi, pj := children[i].PositionInOriginal, children[j].PositionInOriginal
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return *pi < *pj
		}
	})
	return append(parents, children...)
}
