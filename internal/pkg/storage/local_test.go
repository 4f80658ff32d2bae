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

func newTestLocal(t *testing.T) *Local {
	t.Helper()
	return &Local{dir: t.TempDir(), appURL: "http://localhost:3000"}
}

func TestLocalUploadAndDelete(t *testing.T) {
	l := newTestLocal(t)

	obj, err := l.Upload(context.Background(), File{
		Name:   "avatar.txt",
		Folder: "posts",
		Data:   []byte("hello"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "posts/"))
	assert.Equal(t, "txt", obj.Format)
	assert.Equal(t, int64(5), obj.Size)
	assert.Equal(t, "http://localhost:3000/uploads/"+obj.Key, obj.URL)

	data, err := os.ReadFile(filepath.Join(l.dir, filepath.FromSlash(obj.Key)))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	removed, err := l.Delete(context.Background(), obj.Key)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = l.Delete(context.Background(), obj.Key)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestLocalDeleteRejectsTraversal(t *testing.T) {
	l := newTestLocal(t)

	_, err := l.Delete(context.Background(), "../outside.txt")
	assert.Error(t, err)

	_, err = l.Delete(context.Background(), "/etc/passwd")
	assert.Error(t, err)
}

func TestBuildKey(t *testing.T) {
	key := buildKey("posts", "Photo One.JPG")
	assert.True(t, strings.HasPrefix(key, "posts/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))

	key = buildKey("", "noext")
	assert.False(t, strings.Contains(key, "/"))
	assert.True(t, strings.HasSuffix(key, ".dat"))
}

func TestResizeImageSkipsNonImages(t *testing.T) {
	_, ok := resizeImage([]byte("not an image"), "jpg")
	assert.False(t, ok)

	_, ok = resizeImage([]byte("whatever"), "webp")
	assert.False(t, ok)
}
