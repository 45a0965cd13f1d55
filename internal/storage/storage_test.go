package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "blogs/a.png", want: "blogs/a.png"},
		{key: "/blogs/a.png", want: "blogs/a.png"},
		{key: "../etc/passwd", wantErr: true},
		{key: "blogs/../../x", wantErr: true},
		{key: "blogs//a.png", wantErr: true},
		{key: `blogs\a.png`, wantErr: true},
		{key: "", wantErr: true},
		{key: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cleanKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiskStorage_SaveAndOpen(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	store, err := NewDiskStorage(root)
	require.NoError(t, err)

	content := "fake image bytes"
	require.NoError(t, store.Save(ctx, "blogs/a.png", strings.NewReader(content), int64(len(content)), "image/png"))

	onDisk, err := os.ReadFile(filepath.Join(root, "blogs", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, content, string(onDisk))

	obj, err := store.Open(ctx, "blogs/a.png")
	require.NoError(t, err)
	defer obj.Close()

	assert.Equal(t, int64(len(content)), obj.Size)
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestDiskStorage_Errors(t *testing.T) {
	ctx := context.Background()
	store, err := NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("missing object", func(t *testing.T) {
		_, err := store.Open(ctx, "blogs/none.png")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("directory is not an object", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "blogs/a.png", strings.NewReader("x"), 1, ""))
		_, err := store.Open(ctx, "blogs")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("traversal", func(t *testing.T) {
		err := store.Save(ctx, "../escape.png", strings.NewReader("x"), 1, "")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("no overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "blogs/once.png", strings.NewReader("x"), 1, ""))
		assert.Error(t, store.Save(ctx, "blogs/once.png", strings.NewReader("y"), 1, ""))
	})
}

func TestDiskStorage_Ping(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewDiskStorage(root)
	require.NoError(t, err)

	assert.NoError(t, store.Ping(context.Background()))

	require.NoError(t, os.RemoveAll(root))
	assert.Error(t, store.Ping(context.Background()))
}
