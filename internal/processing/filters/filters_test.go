package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllIsClosedAndOrdered(t *testing.T) {
	all := All()
	require.Len(t, all, 16)
	assert.Equal(t, RotateLeft, all[0])
	assert.Equal(t, FindEdges, all[len(all)-1])

	seen := make(map[Filter]bool)
	for _, f := range all {
		assert.True(t, f.Valid(), f.String())
		assert.False(t, seen[f], "duplicate %s", f)
		seen[f] = true
		assert.NotZero(t, f.Kind(), f.String())
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"Left", RotateLeft},
		{"right", RotateRight},
		{"B/W", Grayscale},
		{"bw", Grayscale},
		{"Edge enhance more", EdgeEnhanceMore},
		{"edge-enhance-more", EdgeEnhanceMore},
		{"gaussian_blur", GaussianBlur},
		{" Unsharp Mask ", UnsharpMask},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseRoundTripsNamesAndSlugs(t *testing.T) {
	for _, f := range All() {
		byName, err := Parse(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, byName)

		bySlug, err := Parse(f.Slug())
		require.NoError(t, err)
		assert.Equal(t, f, bySlug)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("sepia")
	assert.ErrorIs(t, err, ErrUnknownFilter)

	assert.Equal(t, "Filter(99)", Filter(99).String())
	assert.False(t, Filter(0).Valid())
}

func TestPreservesShape(t *testing.T) {
	for _, f := range All() {
		want := f != RotateLeft && f != RotateRight
		assert.Equal(t, want, f.PreservesShape(), f.String())
	}
	assert.False(t, Filter(0).PreservesShape())
}

func TestKernels(t *testing.T) {
	for _, f := range All() {
		k, ok := f.Kernel()
		if f.Kind() != KindConvolution {
			assert.False(t, ok, f.String())
			continue
		}
		require.True(t, ok, f.String())
		assert.Len(t, k.Weights, k.Size*k.Size, f.String())
		assert.NotZero(t, k.Scale, f.String())
	}

	smooth, _ := Smooth.Kernel()
	var sum float32
	for _, w := range smooth.Normalized() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}
