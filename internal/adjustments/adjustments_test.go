package adjustments

import (
	"testing"

	"github.com/bmplab/bmplab/internal/bmp"
)

func makeColor(t *testing.T, width, height int) *bmp.Image24 {
	t.Helper()
	img, err := bmp.NewImage24(width, height)
	if err != nil {
		t.Fatal(err)
	}
	for y := range height {
		for x := range width {
			i := img.Buf.PixOffset(x, y)
			img.Buf.Pix[i+bmp.ChanR] = byte(x)
			img.Buf.Pix[i+bmp.ChanG] = byte(y)
			img.Buf.Pix[i+bmp.ChanB] = byte(x + y)
		}
	}
	return img
}

func TestCropCopiesRegion(t *testing.T) {
	img := makeColor(t, 6, 5)
	if err := Crop(img, 2, 1, 3, 2); err != nil {
		t.Fatal(err)
	}
	if img.Buf.Width != 3 || img.Buf.Height != 2 {
		t.Fatalf("cropped geometry %dx%d, want 3x2", img.Buf.Width, img.Buf.Height)
	}
	for y := range 2 {
		for x := range 3 {
			i := img.Buf.PixOffset(x, y)
			if img.Buf.Pix[i+bmp.ChanR] != byte(x+2) || img.Buf.Pix[i+bmp.ChanG] != byte(y+1) {
				t.Fatalf("pixel (%d,%d) not taken from the source region", x, y)
			}
		}
	}
	if img.InfoHeader.Width != 3 || img.InfoHeader.Height != 2 {
		t.Fatal("crop did not refresh the header metadata")
	}
}

func TestCropRejectsBadBounds(t *testing.T) {
	cases := []struct {
		name       string
		x, y, w, h int
	}{
		{"width overflow", 4, 0, 3, 2},
		{"height overflow", 0, 4, 2, 2},
		{"negative origin", -1, 0, 2, 2},
		{"zero size", 0, 0, 0, 2},
	}
	for _, tc := range cases {
		img := makeColor(t, 6, 5)
		if err := Crop(img, tc.x, tc.y, tc.w, tc.h); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestCropBufferGray(t *testing.T) {
	b, err := bmp.NewBuffer(4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range b.Pix {
		b.Pix[i] = byte(i)
	}

	out, err := CropBuffer(b, 1, 2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{9, 10, 13, 14}
	for i, v := range out.Pix {
		if v != want[i] {
			t.Fatalf("sample %d: got %d, want %d", i, v, want[i])
		}
	}
}
