package splitter

import (
	"strconv"
	"strings"

	"blocksearch/internal/blockdoc"
)

const headingPrefix = "Heading "

// StyleClassifier maps paragraph style names to heading levels for one
// document. The mapping is seeded from the document's style table:
// built-in "Heading <N>" styles carry level N, and any custom style based
// on a built-in heading style inherits that level. Style names with an
// unparseable level suffix are skipped, never fatal.
type StyleClassifier struct {
	levels map[string]int
}

// NewStyleClassifier builds the classifier for a document.
func NewStyleClassifier(doc *blockdoc.Document) *StyleClassifier {
	c := &StyleClassifier{levels: make(map[string]int)}
	for _, style := range doc.Styles {
		if level, ok := parseHeadingLevel(style.Name); ok {
			c.levels[style.Name] = level
			continue
		}
		if style.BasedOn == "" {
			continue
		}
		if level, ok := parseHeadingLevel(style.BasedOn); ok {
			c.levels[style.Name] = level
		}
	}
	return c
}

// HeadingLevel returns the heading level of a paragraph's style, or false
// if the paragraph is not a heading.
func (c *StyleClassifier) HeadingLevel(p *blockdoc.Paragraph) (int, bool) {
	if p.StyleName == "" {
		return 0, false
	}
	if level, ok := c.levels[p.StyleName]; ok {
		return level, true
	}
	// Styles referenced by paragraphs but missing from the table still
	// classify when the name itself follows the built-in pattern.
	if level, ok := parseHeadingLevel(p.StyleName); ok {
		c.levels[p.StyleName] = level
		return level, true
	}
	return 0, false
}

func parseHeadingLevel(name string) (int, bool) {
	if !strings.HasPrefix(name, headingPrefix) {
		return 0, false
	}
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return 0, false
	}
	level, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || level < 1 {
		return 0, false
	}
	return level, true
}
