package filters

// Kernel is a square convolution matrix. Each output channel is
// sum(weights*pixels)/Scale + Offset, clamped to 0..255.
type Kernel struct {
	Size    int
	Weights []float32
	Scale   float32
	Offset  float32
}

// Normalized returns the weights already divided by Scale.
func (k Kernel) Normalized() []float32 {
	out := make([]float32, len(k.Weights))
	for i, w := range k.Weights {
		out[i] = w / k.Scale
	}
	return out
}

// Gaussian blur and unsharp mask parameters.
const (
	GaussianRadius   = 2.0
	UnsharpRadius    = 2.0
	UnsharpPercent   = 150
	UnsharpThreshold = 3
)

// Kernel returns the matrix for convolution filters; ok is false otherwise.
func (f Filter) Kernel() (Kernel, bool) {
	switch f {
	case Blur:
		return Kernel{Size: 5, Scale: 16, Weights: []float32{
			1, 1, 1, 1, 1,
			1, 0, 0, 0, 1,
			1, 0, 0, 0, 1,
			1, 0, 0, 0, 1,
			1, 1, 1, 1, 1,
		}}, true
	case Contour:
		return Kernel{Size: 3, Scale: 1, Offset: 255, Weights: []float32{
			-1, -1, -1,
			-1, 8, -1,
			-1, -1, -1,
		}}, true
	case Detail:
		return Kernel{Size: 3, Scale: 6, Weights: []float32{
			0, -1, 0,
			-1, 10, -1,
			0, -1, 0,
		}}, true
	case EdgeEnhance:
		return Kernel{Size: 3, Scale: 2, Weights: []float32{
			-1, -1, -1,
			-1, 10, -1,
			-1, -1, -1,
		}}, true
	case EdgeEnhanceMore:
		return Kernel{Size: 3, Scale: 1, Weights: []float32{
			-1, -1, -1,
			-1, 9, -1,
			-1, -1, -1,
		}}, true
	case Emboss:
		return Kernel{Size: 3, Scale: 1, Offset: 128, Weights: []float32{
			-1, 0, 0,
			0, 1, 0,
			0, 0, 0,
		}}, true
	case FindEdges:
		return Kernel{Size: 3, Scale: 1, Weights: []float32{
			-1, -1, -1,
			-1, 8, -1,
			-1, -1, -1,
		}}, true
	case Sharpen:
		return Kernel{Size: 3, Scale: 16, Weights: []float32{
			-2, -2, -2,
			-2, 32, -2,
			-2, -2, -2,
		}}, true
	case Smooth:
		return Kernel{Size: 3, Scale: 13, Weights: []float32{
			1, 1, 1,
			1, 5, 1,
			1, 1, 1,
		}}, true
	case SmoothMore:
		return Kernel{Size: 5, Scale: 100, Weights: []float32{
			1, 1, 1, 1, 1,
			1, 5, 5, 5, 1,
			1, 5, 44, 5, 1,
			1, 5, 5, 5, 1,
			1, 1, 1, 1, 1,
		}}, true
	default:
		return Kernel{}, false
	}
}
