package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsMapToStyles(t *testing.T) {
	input := "# Title\n\nSome intro.\n\n## Section\n\nBody text.\n\n### Subsection\n\nDeep text.\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "guide.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStyles := []string{"Heading 1", "Normal", "Heading 2", "Normal", "Heading 3", "Normal"}
	if len(doc.Paragraphs) != len(wantStyles) {
		t.Fatalf("expected %d paragraphs, got %d", len(wantStyles), len(doc.Paragraphs))
	}
	for i, w := range wantStyles {
		if doc.Paragraphs[i].StyleName != w {
			t.Errorf("paragraph[%d]: expected style %q, got %q (text %q)",
				i, w, doc.Paragraphs[i].StyleName, doc.Paragraphs[i].Text())
		}
	}
	if doc.Paragraphs[0].Text() != "Title" {
		t.Errorf("heading text: %q", doc.Paragraphs[0].Text())
	}
}

func TestMarkdownParser_EmphasisBecomesRunProperties(t *testing.T) {
	input := "Plain **bold** and *italic* words.\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "em.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Paragraphs) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(doc.Paragraphs))
	}

	var sawBold, sawItalic bool
	for _, run := range doc.Paragraphs[0].Runs {
		if run.Props.Bold != nil && *run.Props.Bold && run.Text == "bold" {
			sawBold = true
		}
		if run.Props.Italic != nil && *run.Props.Italic && run.Text == "italic" {
			sawItalic = true
		}
	}
	if !sawBold {
		t.Error("bold run not produced")
	}
	if !sawItalic {
		t.Error("italic run not produced")
	}
}

func TestMarkdownParser_TitleFromFilename(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("text\n"), "readme.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "readme" {
		t.Errorf("expected title %q, got %q", "readme", doc.Title)
	}
}

func TestMarkdownParser_CarriesHeadingStyleTable(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("## X\n\nbody\n"), "x.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.StyleByName("Heading 2") == nil {
		t.Error("style table missing Heading 2")
	}
	if doc.StyleByName("Normal") == nil {
		t.Error("style table missing Normal")
	}
}
