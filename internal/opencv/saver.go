//go:build opencv

package opencv

import (
	"fmt"
	"path/filepath"
	"strings"

	"imgtransform/internal/pipeline"
	"imgtransform/internal/workspace"

	"github.com/disintegration/imaging"
	"gocv.io/x/gocv"
)

const jpegQuality = 95

func (e *Engine) Save(img pipeline.Image, path string) error {
	if err := workspace.CheckImage(path); err != nil {
		return err
	}

	mat, err := unwrap(img)
	if err != nil {
		return err
	}

	e.logger.Debug("OpenCVSaver", "saving image", map[string]interface{}{
		"path":   path,
		"width":  mat.Cols(),
		"height": mat.Rows(),
	})

	err = mat.With(func(m gocv.Mat) error {
		return write(path, m)
	})
	if err != nil {
		e.logger.Error("OpenCVSaver", err, map[string]interface{}{
			"path": path,
		})
		return err
	}

	e.logger.Info("OpenCVSaver", "image saved", map[string]interface{}{
		"path": path,
	})
	return nil
}

func write(path string, m gocv.Mat) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		// OpenCV has no GIF encoder.
		img, err := m.ToImage()
		if err != nil {
			return fmt.Errorf("%w: %s: %v", pipeline.ErrEncode, path, err)
		}
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("%w: %s: %v", pipeline.ErrEncode, path, err)
		}
		return nil
	case ".jpg", ".jpeg":
		if !gocv.IMWriteWithParams(path, m, []int{int(gocv.IMWriteJpegQuality), jpegQuality}) {
			return fmt.Errorf("%w: %s", pipeline.ErrEncode, path)
		}
		return nil
	default:
		if !gocv.IMWrite(path, m) {
			return fmt.Errorf("%w: %s", pipeline.ErrEncode, path)
		}
		return nil
	}
}
