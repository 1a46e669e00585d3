package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveOpenDelete(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalStorage(dir)
	require.NoError(t, err)

	content := []byte("hello, disk")
	path, err := fs.Save("1_20260101_120000.txt", content)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "1_20260101_120000.txt"), path)
	assert.True(t, fs.Exists("1_20260101_120000.txt"))

	got, err := fs.Open("1_20260101_120000.txt")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, fs.Delete("1_20260101_120000.txt"))
	assert.False(t, fs.Exists("1_20260101_120000.txt"))
}

func TestLocalStorage_DeleteMissingIsNoError(t *testing.T) {
	fs, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, fs.Delete("never-saved.pdf"))
}

func TestLocalStorage_PathStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewLocalStorage(dir)
	require.NoError(t, err)

	// A stored name must never escape the upload directory.
	assert.Equal(t, filepath.Join(dir, "evil.txt"), fs.Path("../../evil.txt"))
}

func TestNewLocalStorage_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStorage(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewLocalStorage_EmptyDir(t *testing.T) {
	_, err := NewLocalStorage("")
	assert.Error(t, err)
}
