package parser

import (
	"io"
	"strings"

	"blocksearch/internal/blockdoc"
)

// NativeParser handles natively serialized .bdoc documents.
type NativeParser struct{}

func (p *NativeParser) Parse(r io.Reader, filename string) (*blockdoc.Document, error) {
	doc, err := blockdoc.Decode(r)
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filename, blockdoc.Ext)
	}
	return doc, nil
}
