package splitter

import "blocksearch/internal/blockdoc"

// cancelCheckCadence is how often, in paragraphs, the cleaner polls the
// cancellation token.
const cancelCheckCadence = 100

// CleanDocument strips noise headings from the document in place before
// assembly: headings at a level strictly above the hierarchy root but
// below the target level, and headings of any level whose text is entirely
// whitespace, each together with its immediately following paragraph when
// that paragraph is also empty. Target-level headings are preserved.
//
// Removal indices are collected first and applied back to front so that
// removing one paragraph never shifts an index not yet removed. Returns
// false when the scan was canceled; the document is then unchanged apart
// from nothing (no removal has been applied yet).
func CleanDocument(doc *blockdoc.Document, classifier *StyleClassifier, target int, cancel *Token) bool {
	remove := make(map[int]bool)

	for idx, para := range doc.Paragraphs {
		if idx%cancelCheckCadence == 0 && cancel.Canceled() {
			return false
		}
		level, ok := classifier.HeadingLevel(para)
		if !ok {
			continue
		}
		if (level > 1 && level < target) || !para.HasText() {
			remove[idx] = true
			if idx+1 < len(doc.Paragraphs) && !doc.Paragraphs[idx+1].HasText() {
				remove[idx+1] = true
			}
		}
	}
	if len(remove) == 0 {
		return true
	}

	for idx := len(doc.Paragraphs) - 1; idx >= 0; idx-- {
		if remove[idx] {
			doc.Paragraphs = append(doc.Paragraphs[:idx], doc.Paragraphs[idx+1:]...)
		}
	}
	return true
}
