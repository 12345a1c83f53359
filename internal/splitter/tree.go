package splitter

import (
	"sort"

	"blocksearch/internal/blockdoc"
)

// BuildSections parses the document into target-level sections.
//
// A single forward pass creates a Section for every non-empty heading at a
// level in [1, target]. End indices are then set so each section runs up
// to, but not including, the next heading of any level; the last section
// runs to the final paragraph. Parents are the nearest preceding section
// with a strictly lower level. The returned slice holds only sections at
// exactly the target level whose content contains non-whitespace text,
// but their parent links reach into the full tree.
//
// Headings deeper than the target level are ordinary paragraph content
// within their enclosing section.
func BuildSections(doc *blockdoc.Document, classifier *StyleClassifier, target int) []*Section {
	var all []*Section
	used := make(map[string]bool)

	for idx, para := range doc.Paragraphs {
		level, ok := classifier.HeadingLevel(para)
		if !ok || level < 1 || level > target || !para.HasText() {
			continue
		}
		title := para.Text()
		safe := EnsureUnique(SanitizeFilename(title), used)
		all = append(all, &Section{
			Title:      title,
			SafeTitle:  safe,
			Level:      level,
			StartIndex: idx,
		})
	}
	if len(all) == 0 {
		return nil
	}

	// The pass above is monotonic already; the ordering is an invariant
	// the later passes depend on, so it is made explicit.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartIndex < all[j].StartIndex
	})

	for i := 0; i < len(all)-1; i++ {
		all[i].EndIndex = all[i+1].StartIndex - 1
	}
	all[len(all)-1].EndIndex = len(doc.Paragraphs) - 1

	for _, s := range all {
		for idx := s.StartIndex; idx <= s.EndIndex && idx < len(doc.Paragraphs); idx++ {
			s.Content = append(s.Content, doc.Paragraphs[idx])
		}
	}

	// Parent is the nearest preceding section with a strictly lower
	// level; same-or-higher levels never interrupt the backward scan.
	for i, s := range all {
		if s.Level <= 1 {
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if all[j].Level < s.Level {
				s.Parent = all[j]
				all[j].Children = append(all[j].Children, s)
				break
			}
		}
	}

	var out []*Section
	for _, s := range all {
		if s.Level == target && s.HasText() {
			out = append(out, s)
		}
	}
	return out
}
