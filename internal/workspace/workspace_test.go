package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestIsImage(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.Gif", "e.bmp", "dir/f.PNG"} {
		assert.True(t, IsImage(name), name)
	}
	for _, name := range []string{"a.tiff", "b.txt", "noext", ".png.bak", "webp.webp"} {
		assert.False(t, IsImage(name), name)
	}
}

func TestListFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.png", "a.JPG", "notes.txt", "c.gif", "d.bmp", "e.jpeg", "f.tif"} {
		touch(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.png"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, OutputDirName), 0o755))

	files, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.JPG", "b.png", "c.gif", "d.bmp", "e.jpeg"}, files)
}

func TestListMissingDirectory(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNoDirectory)

	_, err = List("")
	assert.ErrorIs(t, err, ErrNoDirectory)

	file := filepath.Join(t.TempDir(), "a.png")
	touch(t, file)
	_, err = List(file)
	assert.ErrorIs(t, err, ErrNoDirectory)
}

func TestOutputPaths(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "Modified"), OutputDir(dir))
	assert.Equal(t, filepath.Join(dir, "Modified", "cat.png"), OutputPath(dir, "cat.png"))

	out, err := EnsureOutputDir(dir)
	require.NoError(t, err)
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = EnsureOutputDir(dir)
	assert.NoError(t, err)
}

func TestCheckImage(t *testing.T) {
	assert.NoError(t, CheckImage("x.png"))
	assert.ErrorIs(t, CheckImage("x.svg"), ErrUnsupportedFormat)
}
