package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	return path
}

func TestDiscoverReceiptFiles_ExtensionsOnly(t *testing.T) {
	dir := t.TempDir()
	png := touch(t, filepath.Join(dir, "a.png"))
	jpg := touch(t, filepath.Join(dir, "b.JPG"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "doc.pdf"))

	files, err := discoverReceiptFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{png, jpg}, files)
}

func TestDiscoverReceiptFiles_Recursive(t *testing.T) {
	dir := t.TempDir()
	top := touch(t, filepath.Join(dir, "top.png"))
	nested := touch(t, filepath.Join(dir, "sub", "nested.jpeg"))

	flat, err := discoverReceiptFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{top}, flat)

	all, err := discoverReceiptFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{top, nested}, all)
}

func TestDiscoverReceiptFiles_Patterns(t *testing.T) {
	dir := t.TempDir()
	keep := touch(t, filepath.Join(dir, "receipt_1.png"))
	touch(t, filepath.Join(dir, "photo.png"))

	files, err := discoverReceiptFiles([]string{dir}, false, []string{"receipt_*"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)

	files, err = discoverReceiptFiles([]string{dir}, false, nil, []string{"photo*"})
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, files)
}

func TestDiscoverReceiptFiles_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	png := touch(t, filepath.Join(dir, "a.png"))

	files, err := discoverReceiptFiles([]string{png}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{png}, files)
}
