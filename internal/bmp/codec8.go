package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Decode8 reads an uncompressed 8-bit bitmap: the 54-byte header pair, a
// 1024-byte color table, then width*height raw samples. Pixel data is taken
// verbatim with no row padding, which is only well-formed when the width is
// a multiple of 4; other widths are rejected.
func Decode8(r io.ReadSeeker) (*Image8, error) {
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
	if ih.Size != infoHeaderSize {
		return nil, fmt.Errorf("%w: %d-byte DIB header", ErrUnsupportedHeader, ih.Size)
	}
	if ih.BitCount != bitsGray {
		return nil, fmt.Errorf("%w: %d bits", ErrUnsupportedDepth, ih.BitCount)
	}
	if ih.Compression != 0 {
		return nil, fmt.Errorf("%w: compression type %d", ErrUnsupportedCompression, ih.Compression)
	}

	width := int(ih.Width)
	height := int(ih.Height)
	if err := checkGeometry(width, height, 1); err != nil {
		return nil, err
	}
	if width%4 != 0 {
		return nil, fmt.Errorf("%w, got %d", ErrUnalignedWidth, width)
	}

	// The header may declare the pixel data size; when it does, it must
	// agree with the unpadded geometry.
	dataSize := int(ih.SizeImage)
	if dataSize == 0 {
		dataSize = width * height
	}
	if dataSize != width*height {
		return nil, fmt.Errorf("bmp: declared pixel data size %d does not match %dx%d geometry", dataSize, width, height)
	}

	// The declared samples must fit in the stream before the buffer is
	// allocated.
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if end-int64(fh.OffBits) < int64(dataSize) {
		return nil, ErrTruncated
	}
	if _, err := r.Seek(fileHeaderSize+infoHeaderSize, io.SeekStart); err != nil {
		return nil, err
	}

	buf, err := NewBuffer(width, height, 1)
	if err != nil {
		return nil, err
	}

	img := &Image8{FileHeader: fh, InfoHeader: ih, Buf: buf}
	if _, err := io.ReadFull(r, img.ColorTable[:]); err != nil {
		return nil, readErr(err)
	}

	if _, err := r.Seek(int64(fh.OffBits), io.SeekStart); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, buf.Pix); err != nil {
		return nil, readErr(err)
	}

	return img, nil
}

// Encode writes the bitmap back in the fixed 8-bit layout: the preserved
// headers, the color table byte-for-byte, then the raw samples.
func (img *Image8) Encode(w io.Writer) error {
	if img.Buf.Empty() {
		return ErrEmptyImage
	}

	if err := binary.Write(w, binary.LittleEndian, &img.FileHeader); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, &img.InfoHeader); err != nil {
		return err
	}
	if _, err := w.Write(img.ColorTable[:]); err != nil {
		return err
	}
	if _, err := w.Write(img.Buf.Pix); err != nil {
		return err
	}
	return nil
}
