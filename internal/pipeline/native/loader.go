package native

import (
	"fmt"
	"os"
	"time"

	"imgtransform/internal/pipeline"
	"imgtransform/internal/workspace"

	"github.com/disintegration/imaging"
)

func (e *Engine) Load(path string) (pipeline.Image, error) {
	start := time.Now()

	if err := workspace.CheckImage(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pipeline.ErrDecode, path, err)
	}

	loaded := wrap(normalize(img))
	bounds := loaded.Bounds()

	e.logger.Info("NativeLoader", "image loaded", map[string]interface{}{
		"path":        path,
		"width":       bounds.Dx(),
		"height":      bounds.Dy(),
		"channels":    loaded.Channels(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return loaded, nil
}
