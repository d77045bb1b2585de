package native

import (
	"fmt"

	"imgtransform/internal/pipeline"
	"imgtransform/internal/workspace"

	"github.com/disintegration/imaging"
)

const jpegQuality = 95

func (e *Engine) Save(img pipeline.Image, path string) error {
	if err := workspace.CheckImage(path); err != nil {
		return err
	}

	src, err := unwrap(img)
	if err != nil {
		return err
	}

	e.logger.Debug("NativeSaver", "saving image", map[string]interface{}{
		"path":   path,
		"width":  src.Bounds().Dx(),
		"height": src.Bounds().Dy(),
	})

	if err := imaging.Save(src, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		e.logger.Error("NativeSaver", err, map[string]interface{}{
			"path": path,
		})
		return fmt.Errorf("%w: %s: %v", pipeline.ErrEncode, path, err)
	}

	e.logger.Info("NativeSaver", "image saved", map[string]interface{}{
		"path": path,
	})
	return nil
}
