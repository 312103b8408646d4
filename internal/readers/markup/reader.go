// Package markup reads XML and HTML-like files with an
// encoding-tolerant parser, keeping text nodes only.
package markup

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.FormatReader = (*Reader)(nil)

// Reader handles XML and HTML markup files.
type Reader struct{}

// New creates a new markup reader.
func New() *Reader {
	return &Reader{}
}

// Extensions returns the suffixes this reader handles.
func (r *Reader) Extensions() []string {
	return []string{".xml"}
}

// ReadFile parses the markup tolerantly, sniffing the encoding from the
// content, and extracts the text nodes.
func (r *Reader) ReadFile(_ context.Context, path string) (*driven.Payload, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr, err := charset.NewReader(f, "")
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	root, err := html.Parse(cr)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	var text strings.Builder
	collectText(root, &text)
	return &driven.Payload{Text: text.String()}, nil
}

// collectText appends the data of every text node under n, skipping
// script and style subtrees.
func collectText(n *html.Node, out *strings.Builder) {
	if n.Type == html.TextNode {
		out.WriteString(n.Data)
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, out)
	}
}
