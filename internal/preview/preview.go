// Package preview renders a bitmap as truecolor blocks in the terminal.
// Large images are downscaled first so the preview fits the window.
package preview

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/bmplab/bmplab/internal/bmp"
	"github.com/bmplab/bmplab/internal/utils"
)

// DefaultWidth is the fallback maximum preview width in character pairs.
const DefaultWidth = 48

// Print writes the image to stdout as rows of colored blocks. maxWidth
// bounds the number of blocks per row; wider images are scaled down
// preserving aspect ratio.
func Print(im bmp.Image, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = DefaultWidth
	}

	var src *image.NRGBA
	switch im.Kind() {
	case bmp.KindGray:
		src = im.Gray.NRGBA()
	case bmp.KindColor:
		src = im.Color.NRGBA()
	default:
		return bmp.ErrEmptyImage
	}

	if w := src.Bounds().Dx(); w > maxWidth {
		h := src.Bounds().Dy() * maxWidth / w
		if h < 1 {
			h = 1
		}
		scaled := image.NewNRGBA(image.Rect(0, 0, maxWidth, h))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), draw.Src, nil)
		src = scaled
	}

	bounds := src.Bounds()
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			i := src.PixOffset(x, y)
			fmt.Print(utils.ColoredBlock("  ", int(src.Pix[i+0]), int(src.Pix[i+1]), int(src.Pix[i+2])))
		}
		fmt.Println()
	}
	return nil
}
