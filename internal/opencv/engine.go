//go:build opencv

// Package opencv is the gocv backed imaging engine. It is compiled only
// with the opencv build tag because it links against the OpenCV libraries.
package opencv

import (
	"fmt"
	"image"

	"imgtransform/internal/logger"
	"imgtransform/internal/opencv/safe"
	"imgtransform/internal/pipeline"

	"gocv.io/x/gocv"
)

const Name = "opencv"

func init() {
	pipeline.Register(Name, func(log logger.Logger) (pipeline.Engine, error) {
		return New(log), nil
	})
}

type Engine struct {
	logger logger.Logger
}

func New(log logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{logger: log}
}

func (e *Engine) Name() string {
	return Name
}

// Image is a pipeline.Image backed by an OpenCV Mat in BGR or gray layout.
type Image struct {
	mat *safe.Mat
}

func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.mat.Cols(), i.mat.Rows())
}

func (i *Image) Channels() int {
	return i.mat.Channels()
}

func (i *Image) Preview() (image.Image, error) {
	var img image.Image
	err := i.mat.With(func(m gocv.Mat) error {
		var convErr error
		img, convErr = m.ToImage()
		return convErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert Mat for preview: %w", err)
	}
	return img, nil
}

func (i *Image) Close() {
	i.mat.Close()
}

func unwrap(img pipeline.Image) (*safe.Mat, error) {
	cv, ok := img.(*Image)
	if !ok {
		return nil, fmt.Errorf("opencv engine cannot handle %T", img)
	}
	if !cv.mat.IsValid() {
		return nil, pipeline.ErrClosedImage
	}
	return cv.mat, nil
}
