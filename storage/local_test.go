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

func TestLocalStore_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(LocalConfig{Dir: dir, BaseURL: "http://localhost:8080/"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads", store.PublicPath())

	url, err := store.Upload(context.Background(), []byte("png-bytes"), "living room.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"))
	assert.True(t, strings.HasSuffix(url, "_living_room.png"))

	path := filepath.Join(dir, KeyFromURL(url))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), url))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Delete(context.Background(), url))
}

func TestLocalStore_RejectsBadConfigAndURLs(t *testing.T) {
	_, err := NewLocalStore(LocalConfig{})
	assert.Error(t, err)

	store, err := NewLocalStore(LocalConfig{Dir: t.TempDir(), PublicPath: "files/"})
	require.NoError(t, err)
	assert.Equal(t, "/files", store.PublicPath())
	assert.Error(t, store.Delete(context.Background(), "http://localhost/uploads/"))
}

func TestLocalStore_CancelledContext(t *testing.T) {
	store, err := NewLocalStore(LocalConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Upload(ctx, []byte("x"), "a.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_ReservedCharactersInName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(LocalConfig{Dir: dir, BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	for _, name := range []string{"room #1.png", "a?b.png", "50%.png", "küche.jpg"} {
		t.Run(name, func(t *testing.T) {
			url, err := store.Upload(context.Background(), []byte("img"), name)
			require.NoError(t, err)
			assert.NotContains(t, url, "#")
			assert.NotContains(t, url, "?")
			assert.NotContains(t, url, "%")

			path := filepath.Join(dir, KeyFromURL(url))
			_, err = os.Stat(path)
			require.NoError(t, err)

			require.NoError(t, store.Delete(context.Background(), url))
			_, err = os.Stat(path)
			assert.True(t, os.IsNotExist(err))
		})
	}
}
