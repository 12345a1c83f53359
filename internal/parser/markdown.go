package parser

import (
	"bytes"
	"io"
	"strings"

	"blocksearch/internal/blockdoc"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. ATX headings
// become "Heading <N>" paragraphs; strong and emphasis spans become bold
// and italic runs.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*blockdoc.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	out := &blockdoc.Document{
		Title:  strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown"),
		Styles: headingStyles(),
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			para := &blockdoc.Paragraph{StyleName: headingStyle(node.Level)}
			para.Runs = inlineRuns(node, src, false, false)
			out.Paragraphs = append(out.Paragraphs, para)
		case *ast.Paragraph:
			para := &blockdoc.Paragraph{StyleName: "Normal"}
			para.Runs = inlineRuns(node, src, false, false)
			if len(para.Runs) > 0 {
				out.Paragraphs = append(out.Paragraphs, para)
			}
		default:
			// Lists, code blocks and the rest flatten to plain text.
			if t := blockText(n, src); t != "" {
				out.Paragraphs = append(out.Paragraphs, &blockdoc.Paragraph{
					StyleName: "Normal",
					Runs:      []*blockdoc.Run{{Text: t}},
				})
			}
		}
	}
	return out, nil
}

// inlineRuns walks a block's inline children and emits one run per text
// span, carrying bold/italic from enclosing emphasis nodes.
func inlineRuns(n ast.Node, src []byte, bold, italic bool) []*blockdoc.Run {
	var runs []*blockdoc.Run
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			txt := string(node.Value(src))
			if node.HardLineBreak() || node.SoftLineBreak() {
				txt += " "
			}
			if txt == "" {
				continue
			}
			run := &blockdoc.Run{Text: txt}
			if bold {
				t := true
				run.Props.Bold = &t
			}
			if italic {
				t := true
				run.Props.Italic = &t
			}
			runs = append(runs, run)
		case *ast.Emphasis:
			b, i := bold, italic
			if node.Level >= 2 {
				b = true
			} else {
				i = true
			}
			runs = append(runs, inlineRuns(c, src, b, i)...)
		default:
			runs = append(runs, inlineRuns(c, src, bold, italic)...)
		}
	}
	return runs
}

// blockText gets the flattened text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(blockText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
