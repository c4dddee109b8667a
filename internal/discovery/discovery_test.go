package discovery_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dupscan/dupscan/internal/discovery"
)

func writeFile(t *testing.T, dir, rel string) string {
	t.Helper()

	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o600))

	return path
}

func TestFind_FiltersByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.go")
	writeFile(t, dir, "b.txt")

	out, err := discovery.Find([]string{dir}, discovery.Options{Extensions: []string{".go"}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, filepath.Join(dir, "a.go"), out[0])
}

func TestFind_ExcludesGlobMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "keep.go")
	writeFile(t, dir, "vendor/skip.go")

	out, err := discovery.Find([]string{dir}, discovery.Options{
		Extensions: []string{".go"},
		Exclude:    []string{"vendor/**"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, filepath.Join(dir, "keep.go"), out[0])
}

func TestFind_ResultsAreSortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "z.go")
	writeFile(t, dir, "a.go")

	out, err := discovery.Find([]string{dir, dir}, discovery.Options{Extensions: []string{".go"}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, filepath.Join(dir, "a.go"), out[0])
	assert.Equal(t, filepath.Join(dir, "z.go"), out[1])
}

func TestFind_SingleFileRootIsAccepted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "one.go")

	out, err := discovery.Find([]string{path}, discovery.Options{Extensions: []string{".go"}})
	require.NoError(t, err)
	require.Equal(t, []string{path}, out)
}

func TestFind_MissingRootIsLoggedAndSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := writeFile(t, dir, "present.go")
	missing := filepath.Join(t.TempDir(), "missing")

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	out, err := discovery.Find([]string{missing, dir}, discovery.Options{
		Extensions: []string{".go"},
		Logger:     logger,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{present}, out)
	assert.Contains(t, logBuf.String(), missing)
}

func TestFind_NoExtensionFilterAcceptsEverything(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.go")
	writeFile(t, dir, "b.txt")

	out, err := discovery.Find([]string{dir}, discovery.Options{})
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
