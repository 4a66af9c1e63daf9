package bmp

import "testing"

func TestNewBufferRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name     string
		w, h, ch int
	}{
		{"zero width", 0, 4, 1},
		{"negative height", 4, -1, 3},
		{"bad channels", 4, 4, 2},
	}
	for _, tc := range cases {
		if _, err := NewBuffer(tc.w, tc.h, tc.ch); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestBufferLayout(t *testing.T) {
	b, err := NewBuffer(4, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Pix) != 4*3*3 {
		t.Fatalf("expected %d samples, got %d", 4*3*3, len(b.Pix))
	}
	if b.Stride() != 12 {
		t.Fatalf("expected stride 12, got %d", b.Stride())
	}
	if got := b.PixOffset(2, 1); got != 1*12+2*3 {
		t.Fatalf("unexpected PixOffset: %d", got)
	}

	b.Pix[b.PixOffset(3, 2)+ChanR] = 0xaa
	row := b.Row(2)
	if row[3*3+ChanR] != 0xaa {
		t.Fatal("Row view does not alias the sample array")
	}
}

func TestBufferClone(t *testing.T) {
	b, err := NewBuffer(2, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	b.Pix[0] = 7

	dup := b.Clone()
	dup.Pix[0] = 9
	if b.Pix[0] != 7 {
		t.Fatal("clone shares storage with the original")
	}
	if dup.Width != b.Width || dup.Height != b.Height || dup.Channels != b.Channels {
		t.Fatal("clone geometry mismatch")
	}
}

func TestBufferEmpty(t *testing.T) {
	var nilBuf *Buffer
	if !nilBuf.Empty() {
		t.Fatal("nil buffer should be empty")
	}
	if !(&Buffer{}).Empty() {
		t.Fatal("zero buffer should be empty")
	}
	b, err := NewBuffer(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if b.Empty() {
		t.Fatal("allocated buffer should not be empty")
	}
}
