//go:build opencv

package opencv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"imgtransform/internal/opencv/safe"
	"imgtransform/internal/pipeline"
	"imgtransform/internal/workspace"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

func isGIF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gif")
}

func (e *Engine) Load(path string) (pipeline.Image, error) {
	start := time.Now()

	if err := workspace.CheckImage(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	var mat gocv.Mat
	if isGIF(path) {
		// OpenCV builds differ in GIF support, so decode in Go.
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", pipeline.ErrDecode, path, err)
		}
		mat, err = gocv.ImageToMatRGB(img)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", pipeline.ErrDecode, path, err)
		}
	} else {
		mat = gocv.IMRead(path, gocv.IMReadColor)
	}

	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("%w: %s", pipeline.ErrDecode, path)
	}

	safeMat, err := safe.Wrap(mat, "loaded_image")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrDecode, err)
	}

	e.logger.Info("OpenCVLoader", "image loaded", map[string]interface{}{
		"path":        path,
		"width":       safeMat.Cols(),
		"height":      safeMat.Rows(),
		"channels":    safeMat.Channels(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return &Image{mat: safeMat}, nil
}
