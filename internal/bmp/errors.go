package bmp

import (
	"errors"
	"io"
)

var (
	// ErrNotBMP means the stream does not start with the 'BM' signature.
	ErrNotBMP = errors.New("bmp: not a bitmap file")

	// ErrUnsupportedDepth means the bitmap is valid but not 8 or 24 bits per pixel.
	ErrUnsupportedDepth = errors.New("bmp: unsupported bit depth")

	// ErrUnsupportedCompression means the bitmap uses a nonzero compression type.
	ErrUnsupportedCompression = errors.New("bmp: compressed bitmaps are not supported")

	// ErrUnsupportedHeader means the DIB header is not the 40-byte BITMAPINFOHEADER.
	ErrUnsupportedHeader = errors.New("bmp: unsupported DIB header variant")

	// ErrTruncated means the stream ended before the declared pixel data.
	ErrTruncated = errors.New("bmp: truncated stream")

	// ErrUnalignedWidth means an 8-bit bitmap has a width that is not a
	// multiple of 4. Such files carry row padding this codec does not model.
	ErrUnalignedWidth = errors.New("bmp: 8-bit width must be a multiple of 4")

	// ErrBadGeometry means the header declares dimensions that are zero,
	// negative, or too large for a sample array to be addressable.
	ErrBadGeometry = errors.New("bmp: invalid image dimensions")

	// ErrEmptyImage means an operation was handed a nil or zero-sized buffer.
	ErrEmptyImage = errors.New("bmp: nil or empty image")
)

// readErr converts short-read errors into ErrTruncated so callers can match
// on a single sentinel regardless of where the stream gave out.
func readErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
