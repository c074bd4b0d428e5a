package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/media/")
	require.NoError(t, err)

	name, err := storage.Save(fileHeader(t, "Photo.PNG", 512))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(name, ".png"), "extension should be kept, lowercased")

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Len(t, data, 512)

	assert.Equal(t, "/media/"+name, storage.URL(name))
}

func TestLocalStorageSaveGeneratesUniqueNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	first, err := storage.Save(fileHeader(t, "same.jpg", 16))
	require.NoError(t, err)
	second, err := storage.Save(fileHeader(t, "same.jpg", 16))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStorageDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/media")
	require.NoError(t, err)

	name, err := storage.Save(fileHeader(t, "gone.gif", 64))
	require.NoError(t, err)

	require.NoError(t, storage.Delete(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// deleting a missing or empty path is not an error
	assert.NoError(t, storage.Delete(name))
	assert.NoError(t, storage.Delete(""))
}

func TestLocalStorageURLEmptyPath(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	assert.Empty(t, storage.URL(""))
}
