package native

import (
	"fmt"
	"image"
	"time"

	"imgtransform/internal/pipeline"
	"imgtransform/internal/processing/filters"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
)

func (e *Engine) Apply(img pipeline.Image, f filters.Filter) (pipeline.Image, error) {
	start := time.Now()

	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}

	out, err := apply(src, f)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("NativeProcessor", "filter applied", map[string]interface{}{
		"filter":      f.String(),
		"width":       out.Bounds().Dx(),
		"height":      out.Bounds().Dy(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return wrap(out), nil
}

func apply(src image.Image, f filters.Filter) (image.Image, error) {
	_, gray := src.(*image.Gray)

	var out image.Image
	switch f {
	case filters.RotateLeft:
		out = imaging.Rotate90(src)
	case filters.RotateRight:
		out = imaging.Rotate270(src)
	case filters.Flip:
		out = imaging.FlipH(src)
	case filters.Grayscale:
		return toGray(src), nil
	case filters.GaussianBlur:
		out = blur.Gaussian(src, filters.GaussianRadius)
	case filters.UnsharpMask:
		out = draw(src, gift.UnsharpMask(
			filters.UnsharpRadius,
			filters.UnsharpPercent/100.0,
			filters.UnsharpThreshold/255.0,
		))
	case filters.Sharpen, filters.Blur, filters.EdgeEnhance, filters.EdgeEnhanceMore,
		filters.Smooth, filters.SmoothMore, filters.Contour, filters.Emboss,
		filters.Detail, filters.FindEdges:
		k, _ := f.Kernel()
		out = draw(src, gift.Convolution(k.Normalized(), false, false, false, k.Offset/255))
	default:
		return nil, fmt.Errorf("%w: %s", filters.ErrUnknownFilter, f)
	}

	if gray {
		return toGray(out), nil
	}
	return normalize(out), nil
}

func draw(src image.Image, filter gift.Filter) image.Image {
	g := gift.New(filter)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}
