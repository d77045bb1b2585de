// Package native is the pure Go imaging engine built on
// disintegration/imaging, disintegration/gift and bild.
package native

import (
	"imgtransform/internal/logger"
	"imgtransform/internal/pipeline"
)

const Name = "native"

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
