package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Decode24 reads an uncompressed 24-bit bitmap. Rows are stored bottom-up on
// disk (top-down when the header height is negative); either way the decoded
// buffer has row 0 as the topmost row, with padding stripped.
func Decode24(r io.ReadSeeker) (*Image24, error) {
	var fh FileHeader
	if err := binary.Read(r, binary.LittleEndian, &fh); err != nil {
		return nil, readErr(err)
	}
	if !validSignature(fh) {
		return nil, ErrNotBMP
	}

	var ih InfoHeader
	if err := binary.Read(r, binary.LittleEndian, &ih); err != nil {
		return nil, readErr(err)
	}
	if ih.BitCount != bitsColor {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedDepth, ih.BitCount)
	}
	if ih.Compression != 0 {
		return nil, fmt.Errorf("%w: compression type %d", ErrUnsupportedCompression, ih.Compression)
	}

	width := int(ih.Width)
	height := int(ih.Height)
	topDown := false // Pixels are stored TopDown?
	if height < 0 {
		topDown = true
		height = -height // Abs(olute) Height
		ih.Height = int32(height)
	}

	if err := checkGeometry(width, height, 3); err != nil {
		return nil, err
	}

	rowBytes := width * 3
	stride := ((width*bitsColor + 31) / 32) * 4 // Total bytes in a row (incl. padding)

	// The declared rows must fit in the stream before the buffer is allocated.
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if end-int64(fh.OffBits) < int64(stride)*int64(height) {
		return nil, ErrTruncated
	}

	buf, err := NewBuffer(width, height, 3)
	if err != nil {
		return nil, err
	}

	// Seek to Pixel Array (OffBits)
	if _, err := r.Seek(int64(fh.OffBits), io.SeekStart); err != nil {
		return nil, err
	}

	row := make([]byte, stride)
	for i := range height {
		rowIndex := height - i - 1
		if topDown {
			rowIndex = i
		}

		if _, err := io.ReadFull(r, row); err != nil {
			return nil, readErr(err)
		}
		copy(buf.Row(rowIndex), row[:rowBytes])
	}

	return &Image24{FileHeader: fh, InfoHeader: ih, Buf: buf}, nil
}

// Encode writes the bitmap in 24-bit uncompressed layout: headers, then rows
// bottom-up with zero padding to a 4-byte boundary. Header size and offset
// fields are recomputed from the buffer first, stale stored values are never
// trusted.
func (img *Image24) Encode(w io.Writer) error {
	if img.Buf.Empty() {
		return ErrEmptyImage
	}
	img.UpdateMeta()

	if err := binary.Write(w, binary.LittleEndian, &img.FileHeader); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, &img.InfoHeader); err != nil {
		return err
	}

	height := img.Buf.Height
	rowBytes := img.Buf.Stride()
	stride := ((img.Buf.Width*bitsColor + 31) / 32) * 4
	padding := make([]byte, stride-rowBytes)

	// Write the pixels (BottomUp: last row first)
	for i := range height {
		if _, err := w.Write(img.Buf.Row(height - i - 1)); err != nil {
			return err
		}
		if _, err := w.Write(padding); err != nil {
			return err
		}
	}

	return nil
}
