// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"errors"

	"github.com/bmplab/bmplab/internal/bmp"
)

// CropBuffer copies a region out of b into a new buffer. (0,0) is at the
// top-left of the image.
func CropBuffer(b *bmp.Buffer, x, y, width, height int) (*bmp.Buffer, error) {
	if b.Empty() {
		return nil, bmp.ErrEmptyImage
	}
	if x < 0 || y < 0 {
		return nil, errors.New("invalid bounds: origin must not be negative")
	}
	if x+width > b.Width {
		return nil, errors.New("invalid bounds: width out of bounds")
	}
	if y+height > b.Height {
		return nil, errors.New("invalid bounds: height out of bounds")
	}

	out, err := bmp.NewBuffer(width, height, b.Channels)
	if err != nil {
		return nil, err
	}

	rowBytes := width * b.Channels
	for row := range height {
		src := b.Row(row + y)
		copy(out.Row(row), src[x*b.Channels:x*b.Channels+rowBytes])
	}
	return out, nil
}

// Crop replaces a color image's pixels with the given region and refreshes
// the header metadata to match the new geometry.
func Crop(img *bmp.Image24, x, y, width, height int) error {
	out, err := CropBuffer(img.Buf, x, y, width, height)
	if err != nil {
		return err
	}
	img.Buf = out
	img.UpdateMeta()
	return nil
}
