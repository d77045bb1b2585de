//go:build opencv

package opencv

import (
	"fmt"
	"image"
	"time"

	"imgtransform/internal/opencv/safe"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/processing/filters"

	"gocv.io/x/gocv"
)

func (e *Engine) Apply(img pipeline.Image, f filters.Filter) (pipeline.Image, error) {
	start := time.Now()

	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	err = src.With(func(m gocv.Mat) error {
		return apply(m, &dst, f)
	})
	if err != nil {
		dst.Close()
		return nil, err
	}

	out, err := safe.Wrap(dst, f.Slug())
	if err != nil {
		return nil, fmt.Errorf("filter %s produced no image: %w", f, err)
	}

	e.logger.Debug("OpenCVProcessor", "filter applied", map[string]interface{}{
		"filter":      f.String(),
		"width":       out.Cols(),
		"height":      out.Rows(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Image{mat: out}, nil
}

func apply(src gocv.Mat, dst *gocv.Mat, f filters.Filter) error {
	switch f {
	case filters.RotateLeft:
		gocv.Rotate(src, dst, gocv.Rotate90CounterClockwise)
	case filters.RotateRight:
		gocv.Rotate(src, dst, gocv.Rotate90Clockwise)
	case filters.Flip:
		gocv.Flip(src, dst, 1)
	case filters.Grayscale:
		if src.Channels() == 1 {
			src.CopyTo(dst)
		} else {
			gocv.CvtColor(src, dst, gocv.ColorBGRToGray)
		}
	case filters.GaussianBlur:
		gocv.GaussianBlur(src, dst, image.Point{}, filters.GaussianRadius, filters.GaussianRadius, gocv.BorderReplicate)
	case filters.UnsharpMask:
		unsharpMask(src, dst)
	case filters.Sharpen, filters.Blur, filters.EdgeEnhance, filters.EdgeEnhanceMore,
		filters.Smooth, filters.SmoothMore, filters.Contour, filters.Emboss,
		filters.Detail, filters.FindEdges:
		k, _ := f.Kernel()
		kernel := kernelMat(k)
		defer kernel.Close()
		gocv.Filter2D(src, dst, -1, kernel, image.Pt(-1, -1), float64(k.Offset), gocv.BorderReplicate)
	default:
		return fmt.Errorf("%w: %s", filters.ErrUnknownFilter, f)
	}
	return nil
}

func kernelMat(k filters.Kernel) gocv.Mat {
	m := gocv.NewMatWithSize(k.Size, k.Size, gocv.MatTypeCV32F)
	for i, w := range k.Normalized() {
		m.SetFloatAt(i/k.Size, i%k.Size, w)
	}
	return m
}

// unsharpMask sharpens src = src + amount*(src-blur) where |src-blur|
// exceeds the threshold, per channel.
func unsharpMask(src gocv.Mat, dst *gocv.Mat) {
	amount := float64(filters.UnsharpPercent) / 100

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(src, &blurred, image.Point{}, filters.UnsharpRadius, filters.UnsharpRadius, gocv.BorderReplicate)

	sharpened := gocv.NewMat()
	defer sharpened.Close()
	gocv.AddWeighted(src, 1+amount, blurred, -amount, 0, &sharpened)

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(src, blurred, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, filters.UnsharpThreshold, 255, gocv.ThresholdBinary)

	src.CopyTo(dst)
	sharpened.CopyToWithMask(dst, mask)
}
