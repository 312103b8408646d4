package readers

import (
	"github.com/custodia-labs/corpora-cli/internal/readers/csvmeta"
	"github.com/custodia-labs/corpora-cli/internal/readers/docx"
	"github.com/custodia-labs/corpora-cli/internal/readers/markup"
	"github.com/custodia-labs/corpora-cli/internal/readers/odt"
	"github.com/custodia-labs/corpora-cli/internal/readers/pdf"
	"github.com/custodia-labs/corpora-cli/internal/readers/plaintext"
	"github.com/custodia-labs/corpora-cli/internal/readers/yamlmeta"
)

// NewDefault creates a registry with all built-in readers.
// The registration order below is the documented dispatch order;
// extend it by appending, never by reordering.
func NewDefault() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(docx.New())
	r.Register(odt.New())
	r.Register(pdf.New())
	r.Register(markup.New())
	r.Register(csvmeta.New())
	r.Register(yamlmeta.New())
	return r
}
