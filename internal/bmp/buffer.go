package bmp

import "fmt"

// Channel offsets within a 3-channel pixel. Samples are stored in the same
// BGR order the file format uses.
const (
	ChanB = 0
	ChanG = 1
	ChanR = 2
)

// Buffer is the pixel store shared by both bitmap flavors: one contiguous
// sample array viewed as rows through index math. Each pixel occupies
// Channels consecutive bytes. Color images store row 0 as the topmost image
// row; 8-bit images keep the raw (bottom-up) file order.
type Buffer struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte // len == Width*Height*Channels
}

// NewBuffer allocates a zeroed buffer for the given geometry.
func NewBuffer(width, height, channels int) (*Buffer, error) {
	if width <= 0 {
		return nil, fmt.Errorf("bmp: width must be greater than 0, got %d", width)
	}
	if height <= 0 {
		return nil, fmt.Errorf("bmp: height must be greater than 0, got %d", height)
	}
	if channels != 1 && channels != 3 {
		return nil, fmt.Errorf("bmp: unsupported channel count %d", channels)
	}
	return &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}, nil
}

// Stride returns the number of bytes between vertically adjacent pixels.
func (b *Buffer) Stride() int {
	return b.Width * b.Channels
}

// PixOffset returns the index of the first sample of the pixel at (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return y*b.Stride() + x*b.Channels
}

// Row returns the samples of row y as a view into the underlying array.
func (b *Buffer) Row(y int) []byte {
	off := y * b.Stride()
	return b.Pix[off : off+b.Stride()]
}

// Empty reports whether b holds no samples. Safe to call on a nil buffer.
func (b *Buffer) Empty() bool {
	return b == nil || len(b.Pix) == 0
}

// Clone returns a copy sharing no storage with b.
func (b *Buffer) Clone() *Buffer {
	dup := &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      make([]byte, len(b.Pix)),
	}
	copy(dup.Pix, b.Pix)
	return dup
}
