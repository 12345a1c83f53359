package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"blocksearch/internal/blockdoc"
)

// Parser converts raw document bytes into a blockdoc document.
type Parser interface {
	Parse(r io.Reader, filename string) (*blockdoc.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	blockdoc.Ext: true,
	".txt":       true,
	".md":        true,
	".html":      true,
	".htm":       true,
	".pdf":       true,
	".docx":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case blockdoc.Ext:
		return &NativeParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ParseFile opens and parses a document from disk.
func ParseFile(path string) (*blockdoc.Document, error) {
	p, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return p.Parse(f, filepath.Base(path))
}

// headingStyle returns the built-in style name for a heading level.
func headingStyle(level int) string {
	return fmt.Sprintf("Heading %d", level)
}

// headingStyles returns a style table seeded with the default style and
// the built-in heading styles, for formats that carry no style table of
// their own.
func headingStyles() []blockdoc.Style {
	styles := []blockdoc.Style{{Name: "Normal"}}
	for i := 1; i <= 6; i++ {
		styles = append(styles, blockdoc.Style{Name: headingStyle(i)})
	}
	return styles
}
