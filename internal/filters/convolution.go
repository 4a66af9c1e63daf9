package filters

import (
	"errors"
	"fmt"
	"math"

	"github.com/bmplab/bmplab/internal/bmp"
	"github.com/bmplab/bmplab/internal/utils"
)

var ErrInvalidKernel = errors.New("filters: kernel size must be odd and positive")

// Kernel is a square convolution matrix with odd side length.
type Kernel struct {
	Size    int
	Weights []float64 // Size*Size weights, row-major
}

// NewKernel validates the geometry and wraps the weights.
func NewKernel(size int, weights []float64) (Kernel, error) {
	if size <= 0 || size%2 == 0 {
		return Kernel{}, ErrInvalidKernel
	}
	if len(weights) != size*size {
		return Kernel{}, fmt.Errorf("filters: kernel needs %d weights, got %d", size*size, len(weights))
	}
	return Kernel{Size: size, Weights: weights}, nil
}

// Radius is the neighborhood reach on each side of the center.
func (k Kernel) Radius() int {
	return (k.Size - 1) / 2
}

func (k Kernel) weight(ky, kx int) float64 {
	r := k.Radius()
	return k.Weights[(ky+r)*k.Size+(kx+r)]
}

// EdgePolicy selects how convolution treats pixels near the image border.
type EdgePolicy int

const (
	// EdgeReplicate clamps out-of-range neighbor coordinates to the nearest
	// in-bounds pixel; every pixel, including borders, is rewritten.
	EdgeReplicate EdgePolicy = iota

	// EdgeSkip leaves pixels within the kernel radius of any edge
	// unmodified; only the interior is rewritten.
	EdgeSkip
)

// Convolve applies k to the buffer in place. Every read comes from a
// snapshot taken before the first write, so no output pixel ever sees a
// partially-updated neighbor. Results are rounded and clipped to [0, 255]
// per channel.
func Convolve(b *bmp.Buffer, k Kernel, edges EdgePolicy) error {
	if b.Empty() {
		return bmp.ErrEmptyImage
	}
	if k.Size <= 0 || k.Size%2 == 0 || len(k.Weights) != k.Size*k.Size {
		return ErrInvalidKernel
	}

	radius := k.Radius()
	snapshot := b.Clone()

	switch edges {
	case EdgeReplicate:
		for y := range b.Height {
			for x := range b.Width {
				convolvePixel(b, snapshot, k, x, y)
			}
		}
	case EdgeSkip:
		// An image smaller than the kernel has no interior at all.
		for y := radius; y < b.Height-radius; y++ {
			for x := radius; x < b.Width-radius; x++ {
				convolvePixel(b, snapshot, k, x, y)
			}
		}
	default:
		return fmt.Errorf("filters: unknown edge policy %d", edges)
	}
	return nil
}

// convolvePixel rewrites dst's pixel at (x, y) from src's neighborhood.
// Out-of-range neighbors are clamped to the nearest in-bounds pixel; under
// EdgeSkip the loop bounds keep every neighbor in range anyway.
func convolvePixel(dst, src *bmp.Buffer, k Kernel, x, y int) {
	radius := k.Radius()
	out := dst.PixOffset(x, y)

	for ch := range dst.Channels {
		sum := 0.0
		for ky := -radius; ky <= radius; ky++ {
			ny := utils.ClampInt(y+ky, 0, src.Height-1)
			for kx := -radius; kx <= radius; kx++ {
				nx := utils.ClampInt(x+kx, 0, src.Width-1)
				sum += float64(src.Pix[src.PixOffset(nx, ny)+ch]) * k.weight(ky, kx)
			}
		}
		dst.Pix[out+ch] = utils.ClampByte(int(math.Round(sum)))
	}
}
