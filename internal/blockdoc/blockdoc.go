package blockdoc

import "strings"

// Document is the in-memory form of a structured document: an ordered
// paragraph sequence plus the style table the paragraphs refer to.
type Document struct {
	Title      string       `json:"title,omitempty"`
	Styles     []Style      `json:"styles,omitempty"`
	Paragraphs []*Paragraph `json:"paragraphs"`
	Props      Properties   `json:"props,omitempty"`
}

// Style is one entry in the document's style table. BasedOn names the
// style this one inherits from (empty for base styles).
type Style struct {
	Name    string `json:"name"`
	BasedOn string `json:"based_on,omitempty"`
}

// Properties are the document's descriptive properties. The splitter
// mirrors a short subset of the sidecar metadata into these for backward
// compatibility; the sidecar file is authoritative.
type Properties struct {
	Identifier string `json:"identifier,omitempty"`
	Category   string `json:"category,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Comments   string `json:"comments,omitempty"`
}

// Paragraph is one paragraph: a style name, its text runs, and
// paragraph-level formatting.
type Paragraph struct {
	StyleName string           `json:"style,omitempty"`
	Runs      []*Run           `json:"runs,omitempty"`
	Format    *ParagraphFormat `json:"format,omitempty"`
	// Shading carries low-level paragraph background markup as an opaque
	// fragment; it is copied verbatim, never reinterpreted.
	Shading string `json:"shading,omitempty"`
}

// ParagraphFormat holds the optional paragraph-level layout slots. Every
// field is independently nullable so a copy can skip absent ones.
type ParagraphFormat struct {
	Alignment       *string  `json:"alignment,omitempty"`
	LeftIndent      *float64 `json:"left_indent,omitempty"`
	RightIndent     *float64 `json:"right_indent,omitempty"`
	FirstLineIndent *float64 `json:"first_line_indent,omitempty"`
	LineSpacing     *float64 `json:"line_spacing,omitempty"`
	SpaceBefore     *float64 `json:"space_before,omitempty"`
	SpaceAfter      *float64 `json:"space_after,omitempty"`
	KeepTogether    *bool    `json:"keep_together,omitempty"`
	KeepWithNext    *bool    `json:"keep_with_next,omitempty"`
}

// Run is a span of text with uniform formatting.
type Run struct {
	Text  string        `json:"text"`
	Props RunProperties `json:"props,omitempty"`
}

// RunProperties is the fixed, enumerated table of optional formatting
// slots a run may carry. Each slot is independently nullable.
type RunProperties struct {
	Bold      *bool `json:"bold,omitempty"`
	Italic    *bool `json:"italic,omitempty"`
	Underline *bool `json:"underline,omitempty"`

	AllCaps      *bool `json:"all_caps,omitempty"`
	SmallCaps    *bool `json:"small_caps,omitempty"`
	Strike       *bool `json:"strike,omitempty"`
	DoubleStrike *bool `json:"double_strike,omitempty"`
	Superscript  *bool `json:"superscript,omitempty"`
	Subscript    *bool `json:"subscript,omitempty"`
	Outline      *bool `json:"outline,omitempty"`
	Emboss       *bool `json:"emboss,omitempty"`
	Imprint      *bool `json:"imprint,omitempty"`
	Shadow       *bool `json:"shadow,omitempty"`

	FontName *string  `json:"font_name,omitempty"`
	FontSize *float64 `json:"font_size,omitempty"`

	Color     *Color  `json:"color,omitempty"`
	Highlight *string `json:"highlight,omitempty"`
	// Shading is non-highlight background markup carried as an opaque
	// fragment from the source's low-level layer.
	Shading *string `json:"shading,omitempty"`
}

// Color is a foreground color: either an RGB hex value or a theme
// reference, never both.
type Color struct {
	RGB   string `json:"rgb,omitempty"`
	Theme string `json:"theme,omitempty"`
}

// Text returns the concatenated run text of the paragraph.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// HasText reports whether the paragraph contains any non-whitespace text.
func (p *Paragraph) HasText() bool {
	return strings.TrimSpace(p.Text()) != ""
}

// Text returns the concatenated text of all paragraphs, one per line.
// Used for whole-document emptiness checks and debugging.
func (d *Document) Text() string {
	var b strings.Builder
	for i, p := range d.Paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.Text())
	}
	return b.String()
}

// StyleByName returns the style table entry with the given name, or nil.
func (d *Document) StyleByName(name string) *Style {
	for i := range d.Styles {
		if d.Styles[i].Name == name {
			return &d.Styles[i]
		}
	}
	return nil
}
