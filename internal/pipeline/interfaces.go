// Package pipeline declares the imaging engine contract shared by the
// backends and the engine registry used to select one by name.
package pipeline

import (
	"errors"
	"image"

	"imgtransform/internal/processing/filters"
)

var (
	ErrDecode      = errors.New("failed to decode image")
	ErrEncode      = errors.New("failed to encode image")
	ErrClosedImage = errors.New("image already released")
)

// Engine loads, transforms and saves images with one imaging backend.
// Apply never modifies its input; the caller still owns and must Close it.
type Engine interface {
	Name() string
	Load(path string) (Image, error)
	Apply(img Image, f filters.Filter) (Image, error)
	Save(img Image, path string) error
}

// Image is a decoded bitmap owned by an engine.
type Image interface {
	Bounds() image.Rectangle
	Channels() int
	Preview() (image.Image, error)
	Close()
}
