package odt

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.FormatReader = (*Reader)(nil)

// Reader handles OpenDocument text documents.
type Reader struct{}

// New creates a new ODT reader.
func New() *Reader {
	return &Reader{}
}

// Extensions returns the suffixes this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".odt"}
}

// ReadFile opens the document as a ZIP archive, parses content.xml and
// joins the text of all paragraph elements with single spaces.
func (r *Reader) ReadFile(_ context.Context, path string) (*driven.Payload, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open odt: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "content.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open content.xml: %w", err)
		}
		text, err := extractParagraphs(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return &driven.Payload{Text: text}, nil
	}
	return nil, fmt.Errorf("content.xml missing: %w", domain.ErrInvalidInput)
}

// paragraphLocal is the local name of ODF paragraph elements.
const paragraphLocal = "p"

// extractParagraphs streams content.xml and collects the character data
// of every text:p element, headings included via their nested spans.
func extractParagraphs(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	depth := 0

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse content.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == paragraphLocal && depth == 0 {
				depth = 1
				current.Reset()
			} else if depth > 0 {
				depth++
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				paragraphs = append(paragraphs, current.String())
			}
		case xml.CharData:
			if depth > 0 {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, " "), nil
}
