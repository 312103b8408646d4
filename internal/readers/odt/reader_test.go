package odt

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
)

// createTestODT writes a minimal ODT file containing contentXML as
// content.xml and returns its path.
func createTestODT(t *testing.T, contentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.odt")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	if contentXML != "" {
		content, err := w.Create("content.xml")
		require.NoError(t, err)
		_, err = content.Write([]byte(contentXML))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return path
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".odt"}, New().Extensions())
}

func TestReadFile_Success(t *testing.T) {
	contentXML := `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
<office:body><office:text>
<text:p>First paragraph</text:p>
<text:p>Second <text:span>with a span</text:span></text:p>
</office:text></office:body>
</office:document-content>`
	path := createTestODT(t, contentXML)

	payload, err := New().ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph Second with a span", payload.Text)
}

func TestReadFile_MissingContentXML(t *testing.T) {
	path := createTestODT(t, "")

	_, err := New().ReadFile(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReadFile_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.odt")
	require.NoError(t, os.WriteFile(path, []byte("plain bytes"), 0o644))

	_, err := New().ReadFile(context.Background(), path)
	assert.Error(t, err)
}

func TestExtractParagraphs_NestedParagraphs(t *testing.T) {
	// A nested p must not terminate the outer paragraph early.
	content := `<root xmlns:text="urn:t">
<text:p>outer <text:p>inner</text:p> tail</text:p>
</root>`

	text, err := extractParagraphs(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "outer inner tail", text)
}
