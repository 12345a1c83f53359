package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"blocksearch/internal/blockdoc"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. The conversion is best-effort: style
// names and run text carry over; formatting the library does not surface
// is left absent rather than guessed.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*blockdoc.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "blocksearch-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	wordDoc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &blockdoc.Document{
		Title: strings.TrimSuffix(filename, ".docx"),
	}
	seenStyles := make(map[string]bool)

	for _, item := range wordDoc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		bp := &blockdoc.Paragraph{StyleName: docxStyleName(para)}
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			var buf strings.Builder
			for _, rc := range run.Children {
				if t, ok := rc.(*docx.Text); ok {
					buf.WriteString(t.Text)
				}
			}
			if buf.Len() > 0 {
				bp.Runs = append(bp.Runs, &blockdoc.Run{Text: buf.String()})
			}
		}
		if bp.StyleName != "" && !seenStyles[bp.StyleName] {
			seenStyles[bp.StyleName] = true
			out.Styles = append(out.Styles, blockdoc.Style{Name: normalizeDocxStyle(bp.StyleName)})
		}
		bp.StyleName = normalizeDocxStyle(bp.StyleName)
		out.Paragraphs = append(out.Paragraphs, bp)
	}

	return out, nil
}

func docxStyleName(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// normalizeDocxStyle maps docx style identifiers like "Heading1" or
// "heading 2" onto the canonical "Heading <N>" names the classifier
// seeds from. Everything else passes through unchanged.
func normalizeDocxStyle(name string) string {
	for level := 1; level <= 9; level++ {
		compact := fmt.Sprintf("Heading%d", level)
		spaced := fmt.Sprintf("heading %d", level)
		if strings.EqualFold(name, compact) || strings.EqualFold(name, spaced) {
			return headingStyle(level)
		}
	}
	return name
}
