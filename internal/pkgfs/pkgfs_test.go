package pkgfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mcmap/internal/document"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	logger, _ := test.NewNullLogger()
	return New(logger)
}

func TestStore_WriteThenReadPackage(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	dir := filepath.Join(t.TempDir(), "World.mcmap")

	f := document.Sample()
	name := f.AttachImage(0, []byte("photo"))
	layout, err := f.EncodeLayout()
	require.NoError(t, err)

	require.NoError(t, store.Write(ctx, dir, layout))

	metadata, err := os.ReadFile(filepath.Join(dir, document.MetadataKey))
	require.NoError(t, err)
	want, err := f.EncodeMetadata()
	require.NoError(t, err)
	assert.Equal(t, want, metadata)

	root, err := store.Read(ctx, dir)
	require.NoError(t, err)
	decoded, err := document.DecodeLayout(root)
	require.NoError(t, err)
	assert.Equal(t, f.Manifest, decoded.Manifest)
	assert.Equal(t, []byte("photo"), decoded.Images[name])
}

func TestStore_WriteReplacesExistingPackage(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	dir := filepath.Join(t.TempDir(), "World.mcmap")

	first := document.Directory(map[string]document.Entry{
		"stale.txt": document.RegularFile([]byte("old")),
	})
	require.NoError(t, store.Write(ctx, dir, first))

	second := document.Directory(map[string]document.Entry{
		"fresh.txt": document.RegularFile([]byte("new")),
	})
	require.NoError(t, store.Write(ctx, dir, second))

	_, err := os.Stat(filepath.Join(dir, "stale.txt"))
	assert.True(t, os.IsNotExist(err))
	contents, err := os.ReadFile(filepath.Join(dir, "fresh.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(contents))

	siblings, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)
	assert.Len(t, siblings, 1, "staging and backup directories should be cleaned up")
}

func TestStore_ReadRecordsSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, document.ImagesKey), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, document.ImagesKey, "a.heic"), []byte("a"), 0o644))
	require.NoError(t, os.Symlink("a.heic", filepath.Join(dir, document.ImagesKey, "b.heic")))

	root, err := newStore(t).Read(context.Background(), dir)
	require.NoError(t, err)

	images, ok := root.Child(document.ImagesKey)
	require.True(t, ok)
	assert.Equal(t, document.EntryRegular, images.Entries["a.heic"].Kind)
	assert.Equal(t, document.Symlink("a.heic"), images.Entries["b.heic"])
}

func TestStore_ReadErrors(t *testing.T) {
	store := newStore(t)

	_, err := store.Read(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = store.Read(context.Background(), file)
	assert.ErrorContains(t, err, "not a directory")
}

func TestStore_ReadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newStore(t).Read(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_WriteRejectsBadInput(t *testing.T) {
	store := newStore(t)
	dir := filepath.Join(t.TempDir(), "pkg")

	err := store.Write(context.Background(), dir, document.RegularFile(nil))
	assert.ErrorContains(t, err, "want directory")

	err = store.Write(context.Background(), dir, document.Directory(map[string]document.Entry{
		"../escape": document.RegularFile(nil),
	}))
	assert.ErrorContains(t, err, "invalid entry name")
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}
