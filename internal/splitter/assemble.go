package splitter

import (
	"fmt"
	"log/slog"
	"strings"

	"blocksearch/internal/blockdoc"
)

// Assembler builds one standalone output document per section, seeding
// each from a template document's style table. Property copying is
// best-effort per slot: a malformed slot is logged and skipped, never
// aborting the rest of the paragraph.
type Assembler struct {
	template *blockdoc.Document
	log      *slog.Logger
}

// NewAssembler returns an assembler seeded from template. A nil template
// falls back to a minimal blank document carrying only the built-in
// heading styles.
func NewAssembler(template *blockdoc.Document, log *slog.Logger) *Assembler {
	if template == nil {
		template = BlankTemplate()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{template: template, log: log}
}

// BlankTemplate returns the minimal template used when the caller
// supplies none: the default style plus the nine built-in heading styles.
func BlankTemplate() *blockdoc.Document {
	styles := []blockdoc.Style{{Name: "Normal"}}
	for i := 1; i <= 9; i++ {
		styles = append(styles, blockdoc.Style{Name: fmt.Sprintf("Heading %d", i)})
	}
	return &blockdoc.Document{Styles: styles}
}

// BuildDocument creates a fresh document for the section: template styles
// with all template content stripped, the section's heading re-emitted as
// the opening paragraph at the same level, then every remaining content
// paragraph copied run by run.
func (a *Assembler) BuildDocument(section *Section) *blockdoc.Document {
	doc := &blockdoc.Document{
		Title:  section.Title,
		Styles: append([]blockdoc.Style(nil), a.template.Styles...),
		// Template paragraphs are styling seed only; content is dropped.
		Paragraphs: nil,
	}

	doc.Paragraphs = append(doc.Paragraphs, &blockdoc.Paragraph{
		StyleName: fmt.Sprintf("Heading %d", section.Level),
		Runs:      []*blockdoc.Run{{Text: section.Title}},
	})

	for _, para := range section.Content {
		text := para.Text()
		if text == section.Title {
			continue // heading already re-emitted
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		doc.Paragraphs = append(doc.Paragraphs, a.copyParagraph(para))
	}
	return doc
}

func (a *Assembler) copyParagraph(src *blockdoc.Paragraph) *blockdoc.Paragraph {
	dst := &blockdoc.Paragraph{StyleName: src.StyleName, Shading: src.Shading}
	for _, run := range src.Runs {
		dst.Runs = append(dst.Runs, a.copyRun(run))
	}
	if src.Format != nil {
		f := *src.Format
		dst.Format = &f
	}
	return dst
}

// runSlot is one entry in the enumerated run-property table. Each slot
// copies independently; a failed slot is skipped.
type runSlot struct {
	name string
	copy func(src, dst *blockdoc.Run) error
}

func boolSlot(name string, get func(*blockdoc.RunProperties) **bool) runSlot {
	return runSlot{name: name, copy: func(src, dst *blockdoc.Run) error {
		if v := *get(&src.Props); v != nil {
			b := *v
			*get(&dst.Props) = &b
		}
		return nil
	}}
}

var runSlots = []runSlot{
	boolSlot("bold", func(p *blockdoc.RunProperties) **bool { return &p.Bold }),
	boolSlot("italic", func(p *blockdoc.RunProperties) **bool { return &p.Italic }),
	boolSlot("underline", func(p *blockdoc.RunProperties) **bool { return &p.Underline }),
	boolSlot("all_caps", func(p *blockdoc.RunProperties) **bool { return &p.AllCaps }),
	boolSlot("small_caps", func(p *blockdoc.RunProperties) **bool { return &p.SmallCaps }),
	boolSlot("strike", func(p *blockdoc.RunProperties) **bool { return &p.Strike }),
	boolSlot("double_strike", func(p *blockdoc.RunProperties) **bool { return &p.DoubleStrike }),
	boolSlot("superscript", func(p *blockdoc.RunProperties) **bool { return &p.Superscript }),
	boolSlot("subscript", func(p *blockdoc.RunProperties) **bool { return &p.Subscript }),
	boolSlot("outline", func(p *blockdoc.RunProperties) **bool { return &p.Outline }),
	boolSlot("emboss", func(p *blockdoc.RunProperties) **bool { return &p.Emboss }),
	boolSlot("imprint", func(p *blockdoc.RunProperties) **bool { return &p.Imprint }),
	boolSlot("shadow", func(p *blockdoc.RunProperties) **bool { return &p.Shadow }),
	{name: "font_name", copy: func(src, dst *blockdoc.Run) error {
		if src.Props.FontName != nil {
			s := *src.Props.FontName
			dst.Props.FontName = &s
		}
		return nil
	}},
	{name: "font_size", copy: func(src, dst *blockdoc.Run) error {
		if src.Props.FontSize != nil {
			if *src.Props.FontSize <= 0 {
				return fmt.Errorf("non-positive font size %v", *src.Props.FontSize)
			}
			f := *src.Props.FontSize
			dst.Props.FontSize = &f
		}
		return nil
	}},
	{name: "color", copy: func(src, dst *blockdoc.Run) error {
		if src.Props.Color == nil {
			return nil
		}
		if src.Props.Color.RGB == "" && src.Props.Color.Theme == "" {
			return fmt.Errorf("color carries neither rgb nor theme value")
		}
		c := *src.Props.Color
		dst.Props.Color = &c
		return nil
	}},
	{name: "highlight", copy: func(src, dst *blockdoc.Run) error {
		if src.Props.Highlight != nil {
			s := *src.Props.Highlight
			dst.Props.Highlight = &s
		}
		return nil
	}},
	{name: "shading", copy: func(src, dst *blockdoc.Run) error {
		// Opaque low-level fragment, copied verbatim.
		if src.Props.Shading != nil {
			s := *src.Props.Shading
			dst.Props.Shading = &s
		}
		return nil
	}},
}

func (a *Assembler) copyRun(src *blockdoc.Run) *blockdoc.Run {
	dst := &blockdoc.Run{Text: src.Text}
	for _, slot := range runSlots {
		if err := slot.copy(src, dst); err != nil {
			a.log.Warn("skipping run property", "property", slot.name, "error", err)
		}
	}
	return dst
}
