package native

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"imgtransform/internal/logger"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/processing/filters"
	"imgtransform/internal/workspace"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 30), B: uint8((x + y) * 10), A: 255})
		}
	}
	return img
}

func writeFixture(t *testing.T, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func pixels(t *testing.T, img pipeline.Image) image.Image {
	t.Helper()
	p, err := img.Preview()
	require.NoError(t, err)
	return p
}

func TestRegisteredInPipeline(t *testing.T) {
	eng, err := pipeline.New(Name, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, Name, eng.Name())
}

func TestLoad(t *testing.T) {
	eng := New(logger.Nop())

	for _, name := range []string{"a.png", "b.jpg", "c.gif", "d.bmp"} {
		path := writeFixture(t, name, gradient(6, 4))
		img, err := eng.Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, 6, img.Bounds().Dx(), name)
		assert.Equal(t, 4, img.Bounds().Dy(), name)
		assert.Equal(t, 4, img.Channels(), name)
		img.Close()
	}
}

func TestLoadErrors(t *testing.T) {
	eng := New(logger.Nop())
	dir := t.TempDir()

	_, err := eng.Load(filepath.Join(dir, "x.tiff"))
	assert.ErrorIs(t, err, workspace.ErrUnsupportedFormat)

	_, err = eng.Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o644))
	_, err = eng.Load(corrupt)
	assert.ErrorIs(t, err, pipeline.ErrDecode)
}

func TestApplyKeepsOrSwapsDimensions(t *testing.T) {
	eng := New(logger.Nop())
	src := wrap(gradient(7, 3))

	for _, f := range filters.All() {
		out, err := eng.Apply(src, f)
		require.NoError(t, err, f.String())

		if f.PreservesShape() {
			assert.Equal(t, image.Pt(7, 3), out.Bounds().Size(), f.String())
		} else {
			assert.Equal(t, image.Pt(3, 7), out.Bounds().Size(), f.String())
		}
		out.Close()
	}

	// the input stays usable
	assert.Equal(t, image.Pt(7, 3), src.Bounds().Size())
}

func TestLeftThenRightRestoresImage(t *testing.T) {
	eng := New(logger.Nop())
	orig := gradient(5, 2)
	src := wrap(orig)

	left, err := eng.Apply(src, filters.RotateLeft)
	require.NoError(t, err)
	back, err := eng.Apply(left, filters.RotateRight)
	require.NoError(t, err)

	got := pixels(t, back).(*image.NRGBA)
	assert.Equal(t, orig.Bounds(), got.Bounds())
	assert.Equal(t, orig.Pix, got.Pix)
}

func TestRotateLeftIsCounterClockwise(t *testing.T) {
	eng := New(logger.Nop())
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(1, 0, color.NRGBA{R: 255, A: 255})

	out, err := eng.Apply(wrap(src), filters.RotateLeft)
	require.NoError(t, err)

	got := pixels(t, out)
	r, _, _, _ := got.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r, "right-hand pixel moves to the top")
}

func TestFlipTwiceRestoresImage(t *testing.T) {
	eng := New(logger.Nop())
	orig := gradient(4, 4)

	once, err := eng.Apply(wrap(orig), filters.Flip)
	require.NoError(t, err)
	assert.NotEqual(t, orig.Pix, pixels(t, once).(*image.NRGBA).Pix)

	twice, err := eng.Apply(once, filters.Flip)
	require.NoError(t, err)
	assert.Equal(t, orig.Pix, pixels(t, twice).(*image.NRGBA).Pix)
}

func TestGrayscaleIsSingleChannelAndSticky(t *testing.T) {
	eng := New(logger.Nop())

	bw, err := eng.Apply(wrap(gradient(4, 4)), filters.Grayscale)
	require.NoError(t, err)
	assert.Equal(t, 1, bw.Channels())
	assert.IsType(t, &image.Gray{}, pixels(t, bw))

	for _, f := range []filters.Filter{filters.RotateLeft, filters.GaussianBlur, filters.Emboss, filters.UnsharpMask} {
		out, err := eng.Apply(bw, f)
		require.NoError(t, err, f.String())
		assert.Equal(t, 1, out.Channels(), f.String())
	}
}

func uniform(v uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 6))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	return img
}

func TestKernelOffsetsOnUniformImage(t *testing.T) {
	eng := New(logger.Nop())

	tests := []struct {
		filter filters.Filter
		want   float64
	}{
		{filters.Emboss, 128},
		{filters.FindEdges, 0},
		{filters.Contour, 255},
		{filters.Smooth, 100},
		{filters.Sharpen, 100},
	}
	for _, tt := range tests {
		out, err := eng.Apply(wrap(uniform(100)), tt.filter)
		require.NoError(t, err, tt.filter.String())

		nrgba := pixels(t, out).(*image.NRGBA)
		c := nrgba.NRGBAAt(3, 3)
		assert.InDelta(t, tt.want, float64(c.R), 1, tt.filter.String())
		assert.Equal(t, uint8(255), c.A, tt.filter.String())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	eng := New(logger.Nop())
	dir := t.TempDir()
	src := wrap(gradient(8, 5))

	for _, name := range []string{"out.png", "out.jpeg", "out.gif", "out.bmp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, eng.Save(src, path), name)

		back, err := eng.Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, image.Pt(8, 5), back.Bounds().Size(), name)
	}

	assert.ErrorIs(t, eng.Save(src, filepath.Join(dir, "out.webp")), workspace.ErrUnsupportedFormat)
}

func TestClosedImage(t *testing.T) {
	eng := New(logger.Nop())
	img := wrap(gradient(2, 2))
	img.Close()

	_, err := eng.Apply(img, filters.Blur)
	assert.ErrorIs(t, err, pipeline.ErrClosedImage)

	err = eng.Save(img, filepath.Join(t.TempDir(), "x.png"))
	assert.ErrorIs(t, err, pipeline.ErrClosedImage)

	assert.Equal(t, 0, img.Channels())
	assert.True(t, img.Bounds().Empty())
}

func TestApplyUnknownFilter(t *testing.T) {
	eng := New(logger.Nop())
	_, err := eng.Apply(wrap(gradient(2, 2)), filters.Filter(42))
	assert.ErrorIs(t, err, filters.ErrUnknownFilter)
}
