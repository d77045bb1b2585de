// Package filters defines the closed set of stock transformations the
// application offers and the kernel data each convolution variant needs.
package filters

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFilter = errors.New("unknown filter")

type Filter int

const (
	RotateLeft Filter = iota + 1
	RotateRight
	Sharpen
	Blur
	EdgeEnhance
	EdgeEnhanceMore
	Smooth
	SmoothMore
	Grayscale
	Contour
	Flip
	Emboss
	GaussianBlur
	UnsharpMask
	Detail
	FindEdges
)

type Kind int

const (
	KindGeometric Kind = iota + 1
	KindConvolution
	KindColor
	KindBlur
)

var names = map[Filter]string{
	RotateLeft:      "Left",
	RotateRight:     "Right",
	Sharpen:         "Sharp",
	Blur:            "Blur",
	EdgeEnhance:     "Edge enhance",
	EdgeEnhanceMore: "Edge enhance more",
	Smooth:          "Smooth",
	SmoothMore:      "Smooth more",
	Grayscale:       "B/W",
	Contour:         "Contour",
	Flip:            "Flip",
	Emboss:          "Emboss",
	GaussianBlur:    "Gaussian blur",
	UnsharpMask:     "Unsharp mask",
	Detail:          "Detail",
	FindEdges:       "Find edges",
}

// All returns every filter in menu order.
func All() []Filter {
	return []Filter{
		RotateLeft, RotateRight, Sharpen, Blur, EdgeEnhance, EdgeEnhanceMore,
		Smooth, SmoothMore, Grayscale, Contour, Flip, Emboss,
		GaussianBlur, UnsharpMask, Detail, FindEdges,
	}
}

func (f Filter) Valid() bool {
	_, ok := names[f]
	return ok
}

func (f Filter) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Slug is the command-line spelling of the filter name.
func (f Filter) Slug() string {
	if f == Grayscale {
		return "bw"
	}
	return strings.ReplaceAll(strings.ToLower(f.String()), " ", "-")
}

// Parse resolves a display name or slug, ignoring case.
func Parse(name string) (Filter, error) {
	key := normalize(name)
	for _, f := range All() {
		if key == normalize(f.String()) || key == normalize(f.Slug()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

func normalize(name string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "", "/", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(name)))
}

func (f Filter) Kind() Kind {
	switch f {
	case RotateLeft, RotateRight, Flip:
		return KindGeometric
	case Grayscale:
		return KindColor
	case GaussianBlur, UnsharpMask:
		return KindBlur
	case Sharpen, Blur, EdgeEnhance, EdgeEnhanceMore, Smooth, SmoothMore,
		Contour, Emboss, Detail, FindEdges:
		return KindConvolution
	default:
		return 0
	}
}

// PreservesShape reports whether the output has the input's dimensions.
func (f Filter) PreservesShape() bool {
	return f.Valid() && f != RotateLeft && f != RotateRight
}
