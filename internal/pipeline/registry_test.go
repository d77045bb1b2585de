package pipeline

import (
	"testing"

	"imgtransform/internal/logger"
	"imgtransform/internal/processing/filters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct{}

func (stubEngine) Name() string                               { return "stub" }
func (stubEngine) Load(string) (Image, error)                 { return nil, ErrDecode }
func (stubEngine) Apply(Image, filters.Filter) (Image, error) { return nil, ErrClosedImage }
func (stubEngine) Save(Image, string) error                   { return ErrEncode }

func TestRegistry(t *testing.T) {
	Register("stub", func(logger.Logger) (Engine, error) { return stubEngine{}, nil })

	eng, err := New("stub", logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "stub", eng.Name())
	assert.Contains(t, Engines(), "stub")

	_, err = New("missing", logger.Nop())
	assert.ErrorContains(t, err, "unknown engine")

	assert.Panics(t, func() {
		Register("stub", func(logger.Logger) (Engine, error) { return stubEngine{}, nil })
	})
}
