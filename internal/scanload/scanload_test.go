package scanload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestFindScanFiles orders matches newest first across both patterns.
func TestFindScanFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scanned-repos-2024-01-01.json", "{}")
	writeFile(t, dir, "scanned-repos-2024-03-01.json", "{}")
	writeFile(t, dir, "enhanced-features-2024-02-01.json", "{}")
	writeFile(t, dir, "unrelated.json", "{}")

	files, err := FindScanFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "scanned-repos-2024-03-01.json", filepath.Base(files[0]))
	assert.Equal(t, "scanned-repos-2024-01-01.json", filepath.Base(files[1]))
	assert.Equal(t, "enhanced-features-2024-02-01.json", filepath.Base(files[2]))
}

// TestFindScanFilesEmpty fails fast with a descriptive error.
func TestFindScanFilesEmpty(t *testing.T) {
	_, err := FindScanFiles(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scanned repository files found")
}

// TestLoadBothShapes accepts trainingData and repositories wrappers.
func TestLoadBothShapes(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "scanned-repos-1.json",
		`{"trainingData":[{"repo":"x/one","features":{"stars":10}}]}`)
	b := writeFile(t, dir, "scanned-repos-2.json",
		`{"repositories":[{"repo":"x/two","features":{"stars":20}},{"repo":"x/three","features":{}}]}`)

	l := &Loader{}
	records, err := l.Load(context.Background(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Input file order is preserved.
	assert.Equal(t, "x/one", records[0].Repo)
	assert.Equal(t, "x/two", records[1].Repo)
	assert.Equal(t, "scanned-repos-1.json", records[0].ScanFile)
	assert.Equal(t, 10.0, records[0].Features.Value("stars"))
}

// TestLoadMalformed surfaces the offending file in the error.
func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "scanned-repos-bad.json", `{"trainingData": [`)

	l := &Loader{}
	_, err := l.Load(context.Background(), []string{bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanned-repos-bad.json")
	assert.Contains(t, err.Error(), "malformed")
}

// TestLoadAll wires discovery and loading together.
func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scanned-repos-2024.json",
		`{"trainingData":[{"repo":"x/one","features":{"stars":1}}]}`)

	l := &Loader{Workers: 2}
	records, err := l.LoadAll(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = l.LoadAll(context.Background(), t.TempDir())
	assert.Error(t, err)
}

// TestLoadCanceledContext stops early.
func TestLoadCanceledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scanned-repos-1.json", `{"trainingData":[]}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Loader{}
	_, err := l.Load(ctx, []string{path})
	assert.Error(t, err)
}
