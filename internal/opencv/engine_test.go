//go:build opencv

package opencv

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"imgtransform/internal/logger"
	"imgtransform/internal/opencv/safe"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/processing/filters"
	"imgtransform/internal/workspace"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 25), G: uint8(y * 25), B: 90, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestRegisteredInPipeline(t *testing.T) {
	eng, err := pipeline.New(Name, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, Name, eng.Name())
}

func TestApplyAllFilters(t *testing.T) {
	eng := New(logger.Nop())

	src, err := eng.Load(fixture(t, "in.png", 9, 4))
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, 3, src.Channels())

	for _, f := range filters.All() {
		out, err := eng.Apply(src, f)
		require.NoError(t, err, f.String())
		if f.PreservesShape() {
			assert.Equal(t, image.Pt(9, 4), out.Bounds().Size(), f.String())
		} else {
			assert.Equal(t, image.Pt(4, 9), out.Bounds().Size(), f.String())
		}
		out.Close()
	}

	bw, err := eng.Apply(src, filters.Grayscale)
	require.NoError(t, err)
	defer bw.Close()
	assert.Equal(t, 1, bw.Channels())
}

func TestGIFAndSave(t *testing.T) {
	eng := New(logger.Nop())

	img, err := eng.Load(fixture(t, "in.gif", 5, 3))
	require.NoError(t, err)
	defer img.Close()

	dir := t.TempDir()
	for _, name := range []string{"a.gif", "a.jpg", "a.png", "a.bmp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, eng.Save(img, path), name)
		back, err := eng.Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, image.Pt(5, 3), back.Bounds().Size(), name)
		back.Close()
	}

	assert.ErrorIs(t, eng.Save(img, filepath.Join(dir, "a.tif")), workspace.ErrUnsupportedFormat)
}

func TestClosedImageIsRejected(t *testing.T) {
	eng := New(logger.Nop())
	before := safe.Live()

	img, err := eng.Load(fixture(t, "in.jpg", 3, 3))
	require.NoError(t, err)
	assert.Equal(t, before+1, safe.Live())

	img.Close()
	img.Close()
	assert.Equal(t, before, safe.Live())

	_, err = eng.Apply(img, filters.Blur)
	assert.ErrorIs(t, err, pipeline.ErrClosedImage)
}
