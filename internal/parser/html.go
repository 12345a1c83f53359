package parser

import (
	"fmt"
	"io"
	"strings"

	"blocksearch/internal/blockdoc"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. h1-h6 map to heading paragraphs;
// b/strong and i/em map to bold and italic runs.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*blockdoc.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := &blockdoc.Document{
		Title:  strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm"),
		Styles: headingStyles(),
	}
	if title := findTitle(root); title != "" {
		out.Title = title
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				out.Paragraphs = append(out.Paragraphs, &blockdoc.Paragraph{
					StyleName: headingStyle(level),
					Runs:      elementRuns(n, false, false),
				})
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote":
				runs := elementRuns(n, false, false)
				if len(runs) > 0 {
					out.Paragraphs = append(out.Paragraphs, &blockdoc.Paragraph{
						StyleName: "Normal",
						Runs:      runs,
					})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(root); body != nil {
		walk(body)
	} else {
		walk(root)
	}
	return out, nil
}

// elementRuns flattens an element's text into runs, carrying bold/italic
// from enclosing b/strong and i/em tags.
func elementRuns(n *html.Node, bold, italic bool) []*blockdoc.Run {
	var runs []*blockdoc.Run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			txt := strings.TrimSpace(c.Data)
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
		case c.Type == html.ElementNode && (c.Data == "b" || c.Data == "strong"):
			runs = append(runs, elementRuns(c, true, italic)...)
		case c.Type == html.ElementNode && (c.Data == "i" || c.Data == "em"):
			runs = append(runs, elementRuns(c, bold, true)...)
		default:
			runs = append(runs, elementRuns(c, bold, italic)...)
		}
	}
	return runs
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
