package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "case_1.jpg", "image/jpeg", strings.NewReader("fake image bytes"), 16)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/case_1.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "case_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), "case_1.jpg"))
	_, err = os.Stat(filepath.Join(dir, "case_1.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsPathTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "../escape.jpg", "image/jpeg", strings.NewReader("x"), 1)
	assert.Error(t, err)

	_, err = store.Save(context.Background(), "", "image/jpeg", strings.NewReader("x"), 1)
	assert.Error(t, err)

	assert.Error(t, store.Delete(context.Background(), "../escape.jpg"))
}

func TestLocalStorage_DeleteMissingFileIsNoop(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.jpg"))
}
