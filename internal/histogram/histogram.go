// Package histogram implements intensity histograms and CDF-based
// equalization for grayscale and color bitmaps. Color images are equalized
// on luminance only: the image is taken to YUV, the Y channel is remapped
// through the equalization lookup table, and the original chrominance is
// kept, so brightness is redistributed without distorting hue.
package histogram

import (
	"fmt"
	"math"
	"os"

	"github.com/bmplab/bmplab/internal/bmp"
	"github.com/bmplab/bmplab/internal/utils"
)

// Compute counts the samples of each intensity 0..255. Grayscale buffers are
// counted directly; color buffers are counted by rounded pixel luminance.
// The counts always sum to Width*Height.
func Compute(b *bmp.Buffer) ([256]int, error) {
	var hist [256]int
	if b.Empty() {
		return hist, bmp.ErrEmptyImage
	}

	switch b.Channels {
	case 1:
		for _, v := range b.Pix {
			hist[v]++
		}
	case 3:
		for i := 0; i < len(b.Pix); i += 3 {
			y, _, _ := rgbToYUV(b.Pix[i+bmp.ChanR], b.Pix[i+bmp.ChanG], b.Pix[i+bmp.ChanB])
			hist[roundByte(y)]++
		}
	default:
		return hist, fmt.Errorf("histogram: unsupported channel count %d", b.Channels)
	}
	return hist, nil
}

// EqualizationLUT derives the intensity remap table from a histogram:
//
//	lut[i] = round(255 * (cdf[i] - cdfMin) / (totalPixels - cdfMin))
//
// where cdfMin is the smallest nonzero cumulative count. When the
// denominator is not positive (every pixel shares one intensity, or the
// image is empty) there is nothing to redistribute; the identity mapping is
// returned and degenerate is true.
func EqualizationLUT(hist [256]int, totalPixels int) (lut [256]byte, degenerate bool) {
	var cdf [256]int
	running := 0
	for i, count := range hist {
		running += count
		cdf[i] = running
	}

	cdfMin := 0
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}

	denom := totalPixels - cdfMin
	if denom <= 0 {
		for i := range lut {
			lut[i] = byte(i)
		}
		return lut, true
	}

	scale := 255.0 / float64(denom)
	for i := range lut {
		n := max(cdf[i]-cdfMin, 0)
		lut[i] = utils.ClampByte(int(math.Round(float64(n) * scale)))
	}
	return lut, false
}

// Equalize8 equalizes a grayscale image in place by passing every sample
// through the lookup table.
func Equalize8(img *bmp.Image8) error {
	hist, err := Compute(img.Buf)
	if err != nil {
		return err
	}

	lut, degenerate := EqualizationLUT(hist, img.Buf.Width*img.Buf.Height)
	if degenerate {
		fmt.Fprintln(os.Stderr, "Notice: uniform intensity, equalization leaves the image unchanged")
		return nil
	}

	for i, v := range img.Buf.Pix {
		img.Buf.Pix[i] = lut[v]
	}
	return nil
}

// Equalize24 equalizes a color image in place. The equalization table is
// built over the rounded luminance of the whole image; each pixel is then
// rebuilt from its equalized luminance and its original chrominance.
func Equalize24(img *bmp.Image24) error {
	if img.Buf.Empty() {
		return bmp.ErrEmptyImage
	}
	if img.Buf.Channels != 3 {
		return fmt.Errorf("histogram: unsupported channel count %d", img.Buf.Channels)
	}

	n := img.Buf.Width * img.Buf.Height
	us := make([]float64, n)
	vs := make([]float64, n)
	yInt := make([]byte, n)

	var hist [256]int
	for p := range n {
		i := p * 3
		y, u, v := rgbToYUV(img.Buf.Pix[i+bmp.ChanR], img.Buf.Pix[i+bmp.ChanG], img.Buf.Pix[i+bmp.ChanB])
		us[p] = u
		vs[p] = v
		yInt[p] = roundByte(y)
		hist[yInt[p]]++
	}

	lut, degenerate := EqualizationLUT(hist, n)
	if degenerate {
		fmt.Fprintln(os.Stderr, "Notice: uniform luminance, equalization leaves the image unchanged")
		return nil
	}

	for p := range n {
		i := p * 3
		r, g, b := yuvToRGB(float64(lut[yInt[p]]), us[p], vs[p])
		img.Buf.Pix[i+bmp.ChanR] = r
		img.Buf.Pix[i+bmp.ChanG] = g
		img.Buf.Pix[i+bmp.ChanB] = b
	}
	return nil
}

func rgbToYUV(r, g, b byte) (y, u, v float64) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	y = 0.299*rf + 0.587*gf + 0.114*bf
	u = -0.14713*rf - 0.28886*gf + 0.436*bf
	v = 0.615*rf - 0.51499*gf - 0.10001*bf
	return y, u, v
}

func yuvToRGB(y, u, v float64) (r, g, b byte) {
	r = roundByte(y + 1.13983*v)
	g = roundByte(y - 0.39465*u - 0.58060*v)
	b = roundByte(y + 2.03211*u)
	return r, g, b
}

func roundByte(f float64) byte {
	return utils.ClampByte(int(math.Round(f)))
}
