// bmp package implements a reader, writer and pixel store for uncompressed
// 8-bit and 24-bit bitmap images.
package bmp

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"os"
)

// Image8 is an 8-bit indexed/grayscale bitmap. The color table is carried
// byte-for-byte across load and save but never interpreted; a grayscale ramp
// is assumed.
type Image8 struct {
	Filename   string
	FileHeader FileHeader
	InfoHeader InfoHeader
	ColorTable [paletteSize]byte
	Buf        *Buffer // Channels == 1
}

// Image24 is a 24-bit color bitmap. Samples are stored in BGR order, row 0
// topmost, regardless of the bottom-up order used on disk.
type Image24 struct {
	Filename   string
	FileHeader FileHeader
	InfoHeader InfoHeader
	Buf        *Buffer // Channels == 3
}

// NewImage8 creates a blank 8-bit bitmap with a grayscale ramp palette.
// Width must be a multiple of 4: 8-bit pixel data is stored without row
// padding, which is only well-formed under that condition.
func NewImage8(width, height int) (*Image8, error) {
	if width%4 != 0 {
		return nil, fmt.Errorf("%w, got %d", ErrUnalignedWidth, width)
	}
	buf, err := NewBuffer(width, height, 1)
	if err != nil {
		return nil, err
	}

	dataSize := uint32(width * height)
	img := &Image8{
		FileHeader: FileHeader{
			Type:    [2]byte{'B', 'M'},
			Size:    fileHeaderSize + infoHeaderSize + paletteSize + dataSize,
			OffBits: fileHeaderSize + infoHeaderSize + paletteSize,
		},
		InfoHeader: InfoHeader{
			Size:       infoHeaderSize,
			Width:      int32(width),
			Height:     int32(height),
			Planes:     1,
			BitCount:   bitsGray,
			SizeImage:  dataSize,
			ColorsUsed: 256,
		},
		Buf: buf,
	}

	// Grayscale ramp: entry i is (i, i, i, 0) in BGRX order.
	for i := range 256 {
		img.ColorTable[4*i+0] = byte(i)
		img.ColorTable[4*i+1] = byte(i)
		img.ColorTable[4*i+2] = byte(i)
	}

	return img, nil
}

// NewImage24 creates a blank 24-bit bitmap (black pixels).
func NewImage24(width, height int) (*Image24, error) {
	buf, err := NewBuffer(width, height, 3)
	if err != nil {
		return nil, err
	}

	img := &Image24{
		FileHeader: FileHeader{Type: [2]byte{'B', 'M'}, OffBits: fileHeaderSize + infoHeaderSize},
		InfoHeader: InfoHeader{Size: infoHeaderSize, Planes: 1, BitCount: bitsColor},
		Buf:        buf,
	}
	img.UpdateMeta()
	return img, nil
}

// UpdateMeta recomputes the size, offset and geometry header fields from the
// current pixel buffer, so every save is self-describing even after the
// buffer was replaced or resized.
func (img *Image24) UpdateMeta() {
	width := img.Buf.Width
	height := img.Buf.Height
	stride := ((width*bitsColor + 31) / 32) * 4 // On-disk row bytes incl. padding
	sizeImage := uint32(stride * height)

	img.FileHeader.Type = [2]byte{'B', 'M'}
	img.FileHeader.OffBits = fileHeaderSize + infoHeaderSize
	img.FileHeader.Size = img.FileHeader.OffBits + sizeImage
	img.FileHeader.Reserved1 = 0
	img.FileHeader.Reserved2 = 0

	img.InfoHeader.Size = infoHeaderSize
	img.InfoHeader.Width = int32(width)
	img.InfoHeader.Height = int32(height)
	img.InfoHeader.Planes = 1
	img.InfoHeader.BitCount = bitsColor
	img.InfoHeader.Compression = 0
	img.InfoHeader.SizeImage = sizeImage
	img.InfoHeader.ColorsUsed = 0
	img.InfoHeader.ColorsImportant = 0
}

// NRGBA converts the bitmap to a standard library image.
func (img *Image24) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Buf.Width, img.Buf.Height))
	for y := range img.Buf.Height {
		for x := range img.Buf.Width {
			i := img.Buf.PixOffset(x, y)
			o := out.PixOffset(x, y)
			out.Pix[o+0] = img.Buf.Pix[i+ChanR]
			out.Pix[o+1] = img.Buf.Pix[i+ChanG]
			out.Pix[o+2] = img.Buf.Pix[i+ChanB]
			out.Pix[o+3] = 0xff
		}
	}
	return out
}

// NRGBA converts the bitmap to a standard library image, treating each
// sample as a gray level. 8-bit pixel data is kept in raw file order, which
// is bottom-up, so rows are flipped here.
func (img *Image8) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Buf.Width, img.Buf.Height))
	for y := range img.Buf.Height {
		for x := range img.Buf.Width {
			v := img.Buf.Pix[img.Buf.PixOffset(x, img.Buf.Height-y-1)]
			o := out.PixOffset(x, y)
			out.Pix[o+0] = v
			out.Pix[o+1] = v
			out.Pix[o+2] = v
			out.Pix[o+3] = 0xff
		}
	}
	return out
}

// Kind tells which bitmap flavor an Image handle holds.
type Kind int

const (
	KindNone Kind = iota
	KindGray
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindGray:
		return "8-bit grayscale"
	case KindColor:
		return "24-bit color"
	default:
		return "none"
	}
}

// Image is the handle for whichever bitmap flavor is currently loaded.
// Exactly one of Gray and Color is set; the zero value means no image.
type Image struct {
	Gray  *Image8
	Color *Image24
}

func (im Image) Kind() Kind {
	switch {
	case im.Gray != nil:
		return KindGray
	case im.Color != nil:
		return KindColor
	default:
		return KindNone
	}
}

// Buffer returns the active pixel buffer, or nil for an empty handle.
func (im Image) Buffer() *Buffer {
	switch im.Kind() {
	case KindGray:
		return im.Gray.Buf
	case KindColor:
		return im.Color.Buf
	default:
		return nil
	}
}

// Load reads a BMP file and decodes it as 8-bit or 24-bit depending on the
// bit depth declared in its info header.
func Load(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, err
	}
	if len(data) < fileHeaderSize+infoHeaderSize {
		return Image{}, ErrTruncated
	}
	if data[0] != 'B' || data[1] != 'M' {
		return Image{}, ErrNotBMP
	}

	// Bits-per-pixel lives at offset 28 (14-byte file header + 14 into the
	// info header).
	switch bits := binary.LittleEndian.Uint16(data[28:30]); bits {
	case bitsGray:
		img, err := Decode8(bytes.NewReader(data))
		if err != nil {
			return Image{}, err
		}
		img.Filename = path
		return Image{Gray: img}, nil
	case bitsColor:
		img, err := Decode24(bytes.NewReader(data))
		if err != nil {
			return Image{}, err
		}
		img.Filename = path
		return Image{Color: img}, nil
	default:
		return Image{}, fmt.Errorf("%w: %d bits", ErrUnsupportedDepth, bits)
	}
}

// Save encodes the held bitmap and writes it to path.
func (im Image) Save(path string) error {
	if im.Kind() == KindNone {
		return ErrEmptyImage
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Create a buffer (to reduce syscalls)
	w := bufio.NewWriter(file)
	switch im.Kind() {
	case KindGray:
		err = im.Gray.Encode(w)
	case KindColor:
		err = im.Color.Encode(w)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

// PrintInfo prints the bitmap metadata in human-readable format.
func (im Image) PrintInfo() {
	buf := im.Buffer()
	if buf == nil {
		fmt.Println("No image loaded.")
		return
	}

	var filename string
	var fh FileHeader
	switch im.Kind() {
	case KindGray:
		filename, fh = im.Gray.Filename, im.Gray.FileHeader
	case KindColor:
		filename, fh = im.Color.Filename, im.Color.FileHeader
	}

	fmt.Printf("Filename: \t%v\n", filename)
	fmt.Printf("Format: \t%v\n", im.Kind())
	fmt.Printf("Filesize: \t%v bytes\n", fh.Size)
	fmt.Printf("Width: \t\t%v px\n", buf.Width)
	fmt.Printf("Height: \t%v px\n", buf.Height)
	fmt.Printf("PixelOffset: \t%v bytes\n", fh.OffBits)
	fmt.Printf("PixelCount: \t%v pixels\n", buf.Width*buf.Height)
	fmt.Printf("Stride: \t%v bytes\n", buf.Stride())
}
