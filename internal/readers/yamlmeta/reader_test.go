package yamlmeta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExtensions(t *testing.T) {
	assert.Equal(t, []string{".yaml", ".yml"}, New().Extensions())
}

func TestReadFile_Success(t *testing.T) {
	path := writeFile(t, "meta.yaml", "Text file: doc.txt\nauthor: Ann\nyear: 2021\n")

	payload, err := New().ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, payload.Table)

	// Columns come out in sorted key order.
	assert.Equal(t, []string{"Text file", "author", "year"}, payload.Table.Columns)
	require.Len(t, payload.Table.Rows, 1)
	assert.Equal(t, []string{"doc.txt", "Ann", "2021"}, payload.Table.Rows[0])
}

func TestReadFile_NonScalarValuesStringified(t *testing.T) {
	path := writeFile(t, "meta.yml", "tags:\n  - a\n  - b\n")

	payload, err := New().ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"tags"}, payload.Table.Columns)
	assert.Equal(t, "[a b]", payload.Table.Rows[0][0])
}

func TestReadFile_NotAMapping(t *testing.T) {
	path := writeFile(t, "meta.yaml", "- just\n- a\n- list\n")

	_, err := New().ReadFile(context.Background(), path)
	assert.Error(t, err)
}

func TestReadFile_Empty(t *testing.T) {
	path := writeFile(t, "meta.yaml", "")

	_, err := New().ReadFile(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
