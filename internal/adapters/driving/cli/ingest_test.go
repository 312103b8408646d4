package cli

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/corpora-cli/internal/core/domain"
	"github.com/custodia-labs/corpora-cli/internal/corpus"
)

// execute runs the root command with args against an isolated home
// directory and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer resetIngestFlags()

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetIngestFlags() {
	ingestRemote = false
	ingestFormats = nil
	ingestExclude = nil
	ingestCollapse = false
	ingestOut = ""
	ingestSave = false
	ingestWatch = false
}

func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "corpora version dev")
}

func TestIngest_Summary(t *testing.T) {
	root := buildTree(t, map[string]string{
		"cats/a.txt": "meow",
		"dogs/b.txt": "woof",
	})

	out, err := execute(t, "ingest", root)
	require.NoError(t, err)
	assert.Contains(t, out, "2 documents")
	assert.Contains(t, out, "2 categories")
}

func TestIngest_EmptyRootFails(t *testing.T) {
	_, err := execute(t, "ingest", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents")
}

func TestIngest_ReportsUnreadableFiles(t *testing.T) {
	root := buildTree(t, map[string]string{
		"good.txt":    "fine",
		"broken.docx": "not a zip",
	})

	out, err := execute(t, "ingest", root)
	require.NoError(t, err)
	assert.Contains(t, out, "1 documents")
	assert.Contains(t, out, "1 files could not be read")
	assert.Contains(t, out, "broken.docx")
}

func TestIngest_CSVExport(t *testing.T) {
	root := buildTree(t, map[string]string{
		"cats/a.txt": "meow",
		"dogs/b.txt": "woof",
	})
	outPath := filepath.Join(t.TempDir(), "corpus.csv")

	_, err := execute(t, "ingest", root, "--out", outPath)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "path", "content", "category"}, records[0])
}

func TestIngest_FormatsFlag(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.txt": "text",
		"b.xml": "<doc>markup</doc>",
	})

	out, err := execute(t, "ingest", root, "--formats", "txt")
	require.NoError(t, err)
	assert.Contains(t, out, "1 documents")
}

func TestIngest_Save(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "text"})

	out, err := execute(t, "ingest", root, "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "saved to")
}

func TestIngest_WatchRejectsRemote(t *testing.T) {
	_, err := execute(t, "ingest", "http://host/", "--remote", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "local root")
}

func TestWriteCSV_NoCategoryColumnWhenSingleCategory(t *testing.T) {
	c := corpus.Build([]domain.TextRecord{
		{Name: "a", Path: "/r/a.txt", Category: "only", Content: "x"},
	})
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeCSV(path, c))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "path", "content"}, records[0])
}
