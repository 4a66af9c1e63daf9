// Filters perform color manipulation and per-pixel operations
package filters

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/bmplab/bmplab/internal/bmp"
	"github.com/bmplab/bmplab/internal/utils"
)

var (
	ErrNotGray  = errors.New("filters: operation requires an 8-bit grayscale image")
	ErrNotColor = errors.New("filters: operation requires a 24-bit color image")
)

// Negative inverts every sample in place: v -> 255 - v. Works for both
// grayscale and color buffers.
func Negative(b *bmp.Buffer) error {
	if b.Empty() {
		return bmp.ErrEmptyImage
	}
	for i := range b.Pix {
		b.Pix[i] = 255 - b.Pix[i]
	}
	return nil
}

// Brightness adds delta (which may be negative) to every sample, clipping
// to [0, 255].
func Brightness(b *bmp.Buffer, delta int) error {
	if b.Empty() {
		return bmp.ErrEmptyImage
	}
	for i := range b.Pix {
		b.Pix[i] = utils.ClampByte(int(b.Pix[i]) + delta)
	}
	return nil
}

// Threshold binarizes a grayscale buffer: samples >= value become 255, the
// rest 0. An out-of-range value is clamped into [0, 255] with a warning.
func Threshold(b *bmp.Buffer, value int) error {
	if b.Empty() {
		return bmp.ErrEmptyImage
	}
	if b.Channels != 1 {
		return ErrNotGray
	}
	if value < 0 || value > 255 {
		fmt.Fprintf(os.Stderr, "Warning: threshold %d is outside [0, 255], clamping\n", value)
		value = int(utils.ClampByte(value))
	}
	cutoff := byte(value)

	for i, v := range b.Pix {
		if v >= cutoff {
			b.Pix[i] = 255
		} else {
			b.Pix[i] = 0
		}
	}
	return nil
}

// Grayscale converts a color buffer to gray in place by writing the
// luminance of each pixel into all three channels.
func Grayscale(b *bmp.Buffer) error {
	if b.Empty() {
		return bmp.ErrEmptyImage
	}
	if b.Channels != 3 {
		return ErrNotColor
	}

	for i := 0; i < len(b.Pix); i += 3 {
		gray := byte(math.Round(luminance(b.Pix[i+bmp.ChanR], b.Pix[i+bmp.ChanG], b.Pix[i+bmp.ChanB])))
		b.Pix[i+0] = gray
		b.Pix[i+1] = gray
		b.Pix[i+2] = gray
	}
	return nil
}

// Isolate keeps a single color channel and zeroes the other two.
// channel can be one of (`red`, `green`, and `blue`)
func Isolate(b *bmp.Buffer, channel string) error {
	if b.Empty() {
		return bmp.ErrEmptyImage
	}
	if b.Channels != 3 {
		return ErrNotColor
	}

	var keep int
	switch channel {
	case "red":
		keep = bmp.ChanR
	case "green":
		keep = bmp.ChanG
	case "blue":
		keep = bmp.ChanB
	default:
		return errors.New("filters: invalid color channel: only red, green, and blue are supported")
	}

	for i := 0; i < len(b.Pix); i += 3 {
		for ch := range 3 {
			if ch != keep {
				b.Pix[i+ch] = 0
			}
		}
	}
	return nil
}

// Contrast scales every channel around its mean value in place.
// factor > 1.0 increases contrast, factor < 1.0 decreases it.
func Contrast(b *bmp.Buffer, factor float64) error {
	if b.Empty() {
		return bmp.ErrEmptyImage
	}

	// Compute mean for each channel
	sums := make([]int, b.Channels)
	for i, v := range b.Pix {
		sums[i%b.Channels] += int(v)
	}
	totalPixels := b.Width * b.Height
	means := make([]float64, b.Channels)
	for ch, sum := range sums {
		means[ch] = float64(sum) / float64(totalPixels)
	}

	for i, v := range b.Pix {
		mean := means[i%b.Channels]
		b.Pix[i] = utils.ClampByte(int(float64(v)*factor + (1-factor)*mean))
	}
	return nil
}

// luminance returns the ITU-R 601 luma of an RGB triple, unrounded.
func luminance(r, g, b byte) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
