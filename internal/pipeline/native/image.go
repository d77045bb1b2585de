package native

import (
	"fmt"
	"image"
	"sync"

	"imgtransform/internal/pipeline"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

// Image holds either an *image.NRGBA or, after a grayscale conversion,
// an *image.Gray so single channel images stay single channel on disk.
type Image struct {
	mu  sync.RWMutex
	img image.Image
}

func wrap(img image.Image) *Image {
	return &Image{img: img}
}

// normalize converts decoded images into the two layouts the engine works on.
func normalize(img image.Image) image.Image {
	switch src := img.(type) {
	case *image.Gray:
		return src
	case *image.NRGBA:
		return src
	default:
		return imaging.Clone(img)
	}
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	dst := image.NewGray(img.Bounds())
	gift.New().Draw(dst, img)
	return dst
}

func (i *Image) Bounds() image.Rectangle {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.img == nil {
		return image.Rectangle{}
	}
	return i.img.Bounds()
}

func (i *Image) Channels() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	switch i.img.(type) {
	case nil:
		return 0
	case *image.Gray:
		return 1
	default:
		return 4
	}
}

func (i *Image) Preview() (image.Image, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.img == nil {
		return nil, pipeline.ErrClosedImage
	}
	return i.img, nil
}

func (i *Image) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.img = nil
}

func (i *Image) get() (image.Image, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.img == nil {
		return nil, pipeline.ErrClosedImage
	}
	return i.img, nil
}

func unwrap(img pipeline.Image) (image.Image, error) {
	n, ok := img.(*Image)
	if !ok {
		return nil, fmt.Errorf("native engine cannot handle %T", img)
	}
	return n.get()
}
