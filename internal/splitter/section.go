package splitter

import "blocksearch/internal/blockdoc"

// Section is one heading-bounded region of the source document.
//
// Parent is a plain back-reference; the owning direction is strictly
// parent to children. StartIndex and EndIndex are inclusive paragraph
// indices in the source; Content holds the paragraphs in that range.
type Section struct {
	Title      string
	SafeTitle  string
	Level      int
	StartIndex int
	EndIndex   int
	Content    []*blockdoc.Paragraph
	Parent     *Section
	Children   []*Section
}

// PathComponents returns the ancestor chain's safe titles, outermost
// first, for building hierarchical output paths. A root section yields nil.
func (s *Section) PathComponents() []string {
	if s.Parent == nil {
		return nil
	}
	return append(s.Parent.PathComponents(), s.Parent.SafeTitle)
}

// HasText reports whether the section carries non-whitespace text beyond
// its own heading paragraph. A heading immediately followed only by
// another heading has none.
func (s *Section) HasText() bool {
	for i, p := range s.Content {
		if i == 0 {
			continue // the heading itself
		}
		if p.HasText() {
			return true
		}
	}
	return false
}
