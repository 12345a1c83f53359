package searcher

import (
	"strings"
	"time"
)

// DocumentRecord is one file in the searchable corpus. Hierarchy fields
// are populated from a sidecar metadata file (or the legacy property
// mirror) when one was readable at index time; otherwise they are absent.
type DocumentRecord struct {
	Name           string    `json:"name"`
	Path           string    `json:"path"`
	SizeBytes      int64     `json:"size_bytes"`
	ModifiedAt     time.Time `json:"modified_at"`
	CreatedAt      time.Time `json:"created_at"`
	RelativeFolder string    `json:"relative_folder"`

	// searchKey is the lowercased name, derived once at index time.
	searchKey string

	OriginalDocPath    string   `json:"original_doc_path,omitempty"`
	PositionInOriginal *int     `json:"position_in_original,omitempty"`
	ParentDocName      string   `json:"parent_doc_name,omitempty"`
	SiblingDocs        []string `json:"sibling_docs,omitempty"`
}

// SearchKey returns the lowercased name used for matching.
func (d *DocumentRecord) SearchKey() string {
	if d.searchKey == "" {
		d.searchKey = strings.ToLower(d.Name)
	}
	return d.searchKey
}

// HasHierarchy reports whether any sidecar-derived link is present.
func (d *DocumentRecord) HasHierarchy() bool {
	return d.OriginalDocPath != "" || len(d.SiblingDocs) > 0 || d.ParentDocName != ""
}
