package parser

import (
	"bufio"
	"io"
	"strings"

	"blocksearch/internal/blockdoc"
)

// TextParser handles plain text files. Blank-line-separated blocks become
// paragraphs; like PDF, plain text carries no heading styles.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*blockdoc.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := &blockdoc.Document{
		Title: strings.TrimSuffix(filename, ".txt"),
	}

	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		out.Paragraphs = append(out.Paragraphs, &blockdoc.Paragraph{
			StyleName: "Normal",
			Runs:      []*blockdoc.Run{{Text: current.String()}},
		})
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
