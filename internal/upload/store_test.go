package upload

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, exts []string) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), "/uploads/test", exts)
	require.NoError(t, err)
	return s
}

func TestStore_Save_GeneratesFreshName(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, ImageExts)
	ref, err := s.Save(&File{
		Name:        "cat.PNG",
		ContentType: "image/png",
		Content:     strings.NewReader("not really a png"),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/test/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))
	assert.NotContains(t, ref, "cat")

	data, err := os.ReadFile(filepath.Join(s.Dir, path.Base(ref)))
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(data))
}

func TestStore_Save_RejectsUnknownExtension(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, ImageExts)
	_, err := s.Save(&File{
		Name:        "cat.bmp",
		ContentType: "image/bmp",
		Content:     strings.NewReader("x"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no file may be written for a rejected upload")
}

func TestStore_Save_RejectsNonImageContentType(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, ImageExts)
	_, err := s.Save(&File{
		Name:        "cat.png",
		ContentType: "application/octet-stream",
		Content:     strings.NewReader("x"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStore_Save_RejectsMissingName(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, ImageExts)
	_, err := s.Save(&File{ContentType: "image/png", Content: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestStore_GenericExts_AllowGif(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, GenericExts)
	ref, err := s.Save(&File{
		Name:        "anim.gif",
		ContentType: "image/gif",
		Content:     strings.NewReader("gif"),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(ref, ".gif"))

	imgOnly := newTestStore(t, ImageExts)
	_, err = imgOnly.Save(&File{
		Name:        "anim.gif",
		ContentType: "image/gif",
		Content:     strings.NewReader("gif"),
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, ImageExts)
	ref, err := s.Save(&File{
		Name:        "cat.jpg",
		ContentType: "image/jpeg",
		Content:     strings.NewReader("jpg"),
	})
	require.NoError(t, err)

	require.NoError(t, s.Remove(ref))
	_, statErr := os.Stat(filepath.Join(s.Dir, path.Base(ref)))
	assert.True(t, os.IsNotExist(statErr))

	assert.Error(t, s.Remove(ref), "second remove reports the missing file")
	assert.NoError(t, s.Remove(""), "empty reference is a no-op")
}
