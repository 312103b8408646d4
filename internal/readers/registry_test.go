package readers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/core/ports/driven"
)

// stubReader is a minimal FormatReader for registry tests.
type stubReader struct {
	exts []string
	text string
}

func (s *stubReader) Extensions() []string {
	return s.exts
}

func (s *stubReader) ReadFile(_ context.Context, _ string) (*driven.Payload, error) {
	return &driven.Payload{Text: s.text}, nil
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	txt := &stubReader{exts: []string{".txt"}, text: "plain"}
	md := &stubReader{exts: []string{".md", ".markdown"}, text: "markdown"}
	r.Register(txt)
	r.Register(md)

	t.Run("dispatches on the final suffix", func(t *testing.T) {
		assert.Same(t, txt, r.Get("dir/notes.txt"))
		assert.Same(t, md, r.Get("README.md"))
		assert.Same(t, md, r.Get("README.markdown"))
	})

	t.Run("only the final suffix counts", func(t *testing.T) {
		assert.Same(t, txt, r.Get("archive.md.txt"))
	})

	t.Run("suffix comparison is exact case", func(t *testing.T) {
		payload, err := r.Get("notes.TXT").ReadFile(context.Background(), "notes.TXT")
		require.Error(t, err)
		assert.Nil(t, payload)
	})
}

func TestRegistry_Get_FirstRegisteredWins(t *testing.T) {
	r := NewRegistry()
	first := &stubReader{exts: []string{".txt"}, text: "first"}
	second := &stubReader{exts: []string{".txt"}, text: "second"}
	r.Register(first)
	r.Register(second)

	assert.Same(t, first, r.Get("a.txt"))
}

func TestRegistry_Get_UnknownExtension(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubReader{exts: []string{".txt"}})

	reader := r.Get("image.png")
	require.NotNil(t, reader)

	payload, err := reader.ReadFile(context.Background(), "image.png")
	assert.Nil(t, payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".png")
}

func TestRegistry_Extensions(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubReader{exts: []string{".txt"}})
	r.Register(&stubReader{exts: []string{".md", ".markdown"}})

	assert.Equal(t, []string{".txt", ".md", ".markdown"}, r.Extensions())
}

func TestNewDefault(t *testing.T) {
	r := NewDefault()

	exts := r.Extensions()
	for _, ext := range []string{".txt", ".docx", ".odt", ".pdf", ".xml", ".csv", ".yaml", ".yml"} {
		assert.Contains(t, exts, ext)
	}
}
