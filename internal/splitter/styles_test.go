package splitter

import (
	"testing"

	"blocksearch/internal/blockdoc"
)

func TestStyleClassifier_BuiltinHeadings(t *testing.T) {
	doc := &blockdoc.Document{
		Styles: []blockdoc.Style{
			{Name: "Normal"},
			{Name: "Heading 1"},
			{Name: "Heading 2"},
		},
	}
	c := NewStyleClassifier(doc)

	level, ok := c.HeadingLevel(para("Heading 2", "x"))
	if !ok || level != 2 {
		t.Errorf("expected level 2, got %d (ok=%v)", level, ok)
	}
	if _, ok := c.HeadingLevel(para("Normal", "x")); ok {
		t.Error("Normal classified as heading")
	}
}

func TestStyleClassifier_CustomStyleInheritsLevel(t *testing.T) {
	doc := &blockdoc.Document{
		Styles: []blockdoc.Style{
			{Name: "Heading 1"},
			{Name: "Chapter Title", BasedOn: "Heading 1"},
			{Name: "Body", BasedOn: "Normal"},
		},
	}
	c := NewStyleClassifier(doc)

	level, ok := c.HeadingLevel(para("Chapter Title", "x"))
	if !ok || level != 1 {
		t.Errorf("expected level 1, got %d (ok=%v)", level, ok)
	}
	if _, ok := c.HeadingLevel(para("Body", "x")); ok {
		t.Error("Body classified as heading")
	}
}

func TestStyleClassifier_UnlistedBuiltinNameStillClassifies(t *testing.T) {
	// A paragraph referencing "Heading 4" classifies even when the style
	// table does not carry it.
	doc := &blockdoc.Document{Styles: []blockdoc.Style{{Name: "Normal"}}}
	c := NewStyleClassifier(doc)

	level, ok := c.HeadingLevel(para("Heading 4", "x"))
	if !ok || level != 4 {
		t.Errorf("expected level 4, got %d (ok=%v)", level, ok)
	}
}

func TestStyleClassifier_MalformedLevelSuffix(t *testing.T) {
	doc := &blockdoc.Document{
		Styles: []blockdoc.Style{
			{Name: "Heading X"},
			{Name: "Heading 0"},
			{Name: "Heading "},
		},
	}
	c := NewStyleClassifier(doc)
	for _, name := range []string{"Heading X", "Heading 0", "Heading "} {
		if _, ok := c.HeadingLevel(para(name, "x")); ok {
			t.Errorf("%q classified as heading", name)
		}
	}
}

func TestStyleClassifier_NoStyleName(t *testing.T) {
	c := NewStyleClassifier(&blockdoc.Document{})
	if _, ok := c.HeadingLevel(&blockdoc.Paragraph{}); ok {
		t.Error("styleless paragraph classified as heading")
	}
}
