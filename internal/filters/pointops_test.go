package filters

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bmplab/bmplab/internal/bmp"
)

func makeGray(t *testing.T, width, height int) *bmp.Buffer {
	t.Helper()
	b, err := bmp.NewBuffer(width, height, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range b.Pix {
		b.Pix[i] = byte(13 * i)
	}
	return b
}

func makeColor(t *testing.T, width, height int) *bmp.Buffer {
	t.Helper()
	b, err := bmp.NewBuffer(width, height, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range b.Pix {
		b.Pix[i] = byte(11*i + 5)
	}
	return b
}

func makeSolidColor(t *testing.T, width, height int, r, g, b byte) *bmp.Buffer {
	t.Helper()
	buf, err := bmp.NewBuffer(width, height, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(buf.Pix); i += 3 {
		buf.Pix[i+bmp.ChanR] = r
		buf.Pix[i+bmp.ChanG] = g
		buf.Pix[i+bmp.ChanB] = b
	}
	return buf
}

func TestNegativeIsInvolution(t *testing.T) {
	for _, b := range []*bmp.Buffer{makeGray(t, 4, 4), makeColor(t, 5, 3)} {
		want := bytes.Clone(b.Pix)
		if err := Negative(b); err != nil {
			t.Fatal(err)
		}
		if bytes.Equal(b.Pix, want) {
			t.Fatal("negative left the image unchanged")
		}
		if err := Negative(b); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(b.Pix, want) {
			t.Fatal("negative twice should restore the image")
		}
	}
}

func TestNegativeSolidRed(t *testing.T) {
	b := makeSolidColor(t, 4, 4, 255, 0, 0)
	if err := Negative(b); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(b.Pix); i += 3 {
		if b.Pix[i+bmp.ChanR] != 0 || b.Pix[i+bmp.ChanG] != 255 || b.Pix[i+bmp.ChanB] != 255 {
			t.Fatalf("pixel %d: got RGB(%d,%d,%d), want (0,255,255)",
				i/3, b.Pix[i+bmp.ChanR], b.Pix[i+bmp.ChanG], b.Pix[i+bmp.ChanB])
		}
	}
}

func TestBrightness(t *testing.T) {
	b := makeColor(t, 4, 2)
	want := bytes.Clone(b.Pix)
	if err := Brightness(b, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.Pix, want) {
		t.Fatal("brightness delta 0 should be a no-op")
	}

	if err := Brightness(b, 300); err != nil {
		t.Fatal(err)
	}
	for i, v := range b.Pix {
		if v != 255 {
			t.Fatalf("sample %d: got %d after +300, want 255", i, v)
		}
	}
	if err := Brightness(b, -300); err != nil {
		t.Fatal(err)
	}
	for i, v := range b.Pix {
		if v != 0 {
			t.Fatalf("sample %d: got %d after -300, want 0", i, v)
		}
	}
}

func TestThreshold(t *testing.T) {
	b := makeGray(t, 4, 4)
	orig := bytes.Clone(b.Pix)
	if err := Threshold(b, 100); err != nil {
		t.Fatal(err)
	}
	for i, v := range b.Pix {
		switch {
		case v != 0 && v != 255:
			t.Fatalf("sample %d: threshold output %d is not binary", i, v)
		case orig[i] >= 100 && v != 255:
			t.Fatalf("sample %d: %d >= 100 should map to 255", i, orig[i])
		case orig[i] < 100 && v != 0:
			t.Fatalf("sample %d: %d < 100 should map to 0", i, orig[i])
		}
	}
}

func TestThresholdClampsOutOfRange(t *testing.T) {
	b := makeGray(t, 4, 4)
	b.Pix[0] = 255
	if err := Threshold(b, 400); err != nil {
		t.Fatal(err)
	}
	if b.Pix[0] != 255 {
		t.Fatal("sample equal to the clamped cutoff should map to 255")
	}
	for _, v := range b.Pix[1:] {
		if v != 0 && v != 255 {
			t.Fatalf("non-binary output %d", v)
		}
	}
}

func TestThresholdRequiresGray(t *testing.T) {
	if err := Threshold(makeColor(t, 2, 2), 100); !errors.Is(err, ErrNotGray) {
		t.Fatalf("got %v, want ErrNotGray", err)
	}
}

func TestGrayscale(t *testing.T) {
	b := makeSolidColor(t, 2, 2, 255, 0, 0)
	if err := Grayscale(b); err != nil {
		t.Fatal(err)
	}
	// round(0.299*255) = 76
	for i := 0; i < len(b.Pix); i += 3 {
		if b.Pix[i] != 76 || b.Pix[i+1] != 76 || b.Pix[i+2] != 76 {
			t.Fatalf("pixel %d: got (%d,%d,%d), want uniform 76", i/3, b.Pix[i], b.Pix[i+1], b.Pix[i+2])
		}
	}

	if err := Grayscale(makeGray(t, 2, 2)); !errors.Is(err, ErrNotColor) {
		t.Fatalf("got %v, want ErrNotColor", err)
	}
}

func TestIsolate(t *testing.T) {
	b := makeSolidColor(t, 2, 2, 10, 20, 30)
	if err := Isolate(b, "green"); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(b.Pix); i += 3 {
		if b.Pix[i+bmp.ChanR] != 0 || b.Pix[i+bmp.ChanG] != 20 || b.Pix[i+bmp.ChanB] != 0 {
			t.Fatalf("pixel %d: got (%d,%d,%d)", i/3, b.Pix[i+bmp.ChanR], b.Pix[i+bmp.ChanG], b.Pix[i+bmp.ChanB])
		}
	}

	if err := Isolate(b, "cyan"); err == nil {
		t.Fatal("expected an error for an unknown channel")
	}
}

func TestContrastFactorOneIsNoOp(t *testing.T) {
	b := makeColor(t, 4, 4)
	want := bytes.Clone(b.Pix)
	if err := Contrast(b, 1.0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.Pix, want) {
		t.Fatal("contrast factor 1 should be a no-op")
	}
}

func TestContrastScalesAroundFractionalMean(t *testing.T) {
	b, err := bmp.NewBuffer(2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.Pix[0], b.Pix[1] = 0, 1

	// The channel mean is 0.5; rounding it down to 0 would push the
	// brighter sample to 2 instead of 1.
	if err := Contrast(b, 2.0); err != nil {
		t.Fatal(err)
	}
	if b.Pix[0] != 0 || b.Pix[1] != 1 {
		t.Fatalf("got [%d %d], want [0 1]", b.Pix[0], b.Pix[1])
	}
}

func TestPointOpsRejectEmptyBuffers(t *testing.T) {
	empty := &bmp.Buffer{}
	ops := []error{
		Negative(empty),
		Brightness(empty, 1),
		Threshold(empty, 1),
		Grayscale(empty),
		Isolate(empty, "red"),
		Contrast(empty, 2),
	}
	for i, err := range ops {
		if !errors.Is(err, bmp.ErrEmptyImage) {
			t.Errorf("op %d: got %v, want ErrEmptyImage", i, err)
		}
	}
}
