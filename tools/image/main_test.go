package image

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"
)

func TestRGB565(t *testing.T) {
	cases := []struct {
		c    color.Color
		want uint16
	}{
		{color.Black, 0x0000},
		{color.White, 0xffff},
		{color.RGBA{0xff, 0, 0, 0xff}, 0xf800},
		{color.RGBA{0, 0xff, 0, 0xff}, 0x07e0},
		{color.RGBA{0, 0, 0xff, 0xff}, 0x001f},
	}
	for _, tc := range cases {
		if got := rgb565(tc.c); got != tc.want {
			t.Errorf("rgb565(%v) = %#04x, want %#04x", tc.c, got, tc.want)
		}
	}
}

func TestCI8(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	data, err := toCI8(img, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 256*2+16 {
		t.Fatalf("unexpected size: %d", len(data))
	}
	idx := data[512]
	entry := binary.LittleEndian.Uint16(data[2*int(idx):])
	if entry != 0xffff {
		t.Errorf("palette entry = %#04x, want 0xffff", entry)
	}
}
