// seehuhn.de/go/canvas - a device-independent canvas driver
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pack

import (
	"bytes"
	"errors"
	"testing"

	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/zoom"
)

// countingResolver records how often each color is resolved.
type countingResolver struct {
	pixel.Resolver
	calls map[pixel.RGB]int
}

func (c *countingResolver) Resolve(rgb pixel.RGB) pixel.Color {
	c.calls[rgb]++
	return c.Resolver.Resolve(rgb)
}

func testIndexed() *IndexedImage {
	return &IndexedImage{
		Width:  3,
		Height: 2,
		Pix:    []uint8{0, 1, 2, 2, 1, 0},
		Palette: []pixel.RGB{
			0x102030, 0xff8000, 0x00ffee,
		},
	}
}

func TestIndexedRoundTrip(t *testing.T) {
	for _, v := range []pixel.Visual{pixel.XRGB32, pixel.RGB24} {
		t.Run(v.String(), func(t *testing.T) {
			src := testIndexed()
			r := pixel.NewTrueColor(v)
			p := NewPacker(v, r)
			img, err := p.Indexed(src, zoom.Table(3, 3, 0), zoom.Table(2, 2, 0))
			if err != nil {
				t.Fatal(err)
			}
			got := Unpack(img, r)
			for k, idx := range src.Pix {
				want := src.Palette[idx]
				c := pixel.Encode(got.R[k], got.G[k], got.B[k])
				if c != want {
					t.Errorf("pixel %d: got %s, want %s", k, c, want)
				}
			}
		})
	}
}

func TestIndexedResolvesOnce(t *testing.T) {
	src := &IndexedImage{
		Width:   4,
		Height:  4,
		Pix:     []uint8{0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0},
		Palette: []pixel.RGB{pixel.Red, pixel.Blue, pixel.Green},
	}
	r := &countingResolver{
		Resolver: pixel.NewTrueColor(pixel.XRGB32),
		calls:    map[pixel.RGB]int{},
	}
	p := NewPacker(pixel.XRGB32, r)
	_, err := p.Indexed(src, zoom.Table(16, 4, 0), zoom.Table(16, 4, 0))
	if err != nil {
		t.Fatal(err)
	}
	if r.calls[pixel.Red] != 1 || r.calls[pixel.Blue] != 1 {
		t.Errorf("unexpected resolver calls %v", r.calls)
	}
	if r.calls[pixel.Green] != 0 {
		t.Error("unused palette entry was resolved")
	}
}

func TestIndexedLayouts(t *testing.T) {
	rgb444Wide := pixel.RGB444
	rgb444Wide.BitsPerPixel = 24
	gray4 := pixel.Visual{Class: pixel.PseudoColor, Depth: 4, BitsPerPixel: 8, ColormapSize: 16}

	cases := []struct {
		name  string
		v     pixel.Visual
		bpp   int
		order pixel.ByteOrder
		err   error
	}{
		{"8", pixel.Mapped8, 8, pixel.LSBFirst, nil},
		{"12", pixel.RGB444, 16, pixel.MSBFirst, nil},
		{"12 mismatch", rgb444Wide, 0, 0, ErrLayoutMismatch},
		{"16", pixel.RGB565, 16, pixel.LSBFirst, nil},
		{"24", pixel.RGB24, 24, pixel.MSBFirst, nil},
		{"32", pixel.XRGB32, 32, pixel.LSBFirst, nil},
		{"other", gray4, 32, pixel.MSBFirst, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPacker(tc.v, pixel.NewTrueColor(pixel.XRGB32))
			img, err := p.Indexed(testIndexed(), zoom.Table(3, 3, 0), zoom.Table(2, 2, 0))
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("got error %v, want %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if img.BitsPerPixel != tc.bpp || img.Order != tc.order {
				t.Errorf("got %d bits %d order, want %d bits %d order",
					img.BitsPerPixel, img.Order, tc.bpp, tc.order)
			}
			if img.Stride%4 != 0 {
				t.Errorf("stride %d is not padded", img.Stride)
			}
		})
	}
}

func TestByteOrder(t *testing.T) {
	cases := []struct {
		bpp   int
		order pixel.ByteOrder
		want  []byte
	}{
		{16, pixel.LSBFirst, []byte{0x34, 0x12}},
		{16, pixel.MSBFirst, []byte{0x12, 0x34}},
		{24, pixel.LSBFirst, []byte{0x34, 0x12, 0xab}},
		{24, pixel.MSBFirst, []byte{0xab, 0x12, 0x34}},
		{32, pixel.LSBFirst, []byte{0x34, 0x12, 0xab, 0x00}},
		{32, pixel.MSBFirst, []byte{0x00, 0xab, 0x12, 0x34}},
	}
	for _, tc := range cases {
		img, err := NewImage(1, 1, tc.bpp, tc.order)
		if err != nil {
			t.Fatal(err)
		}
		img.SetPixelAt(0, 0, 0xab1234)
		if got := img.Pix[:len(tc.want)]; !bytes.Equal(got, tc.want) {
			t.Errorf("%d/%d: got % x, want % x", tc.bpp, tc.order, got, tc.want)
		}
		want := uint32(0xab1234)
		if tc.bpp == 16 {
			want = 0x1234
		}
		if got := img.PixelAt(0, 0); got != want {
			t.Errorf("%d/%d: read back %x", tc.bpp, tc.order, got)
		}
	}
}

func TestRowOrder(t *testing.T) {
	src := &RGBImage{
		Width:  1,
		Height: 2,
		R:      []uint8{255, 0},
		G:      []uint8{0, 0},
		B:      []uint8{0, 255},
	}
	r := pixel.NewTrueColor(pixel.XRGB32)
	p := NewPacker(pixel.XRGB32, r)
	img, err := p.RGB(src, zoom.Table(1, 1, 0), zoom.Table(2, 2, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if top := r.ToRGB(img.PixelAt(0, 0)); top != pixel.Blue {
		t.Errorf("top row is %s, want blue", top)
	}
	if bottom := r.ToRGB(img.PixelAt(0, 1)); bottom != pixel.Red {
		t.Errorf("bottom row is %s, want red", bottom)
	}
}

func TestAlphaBlend(t *testing.T) {
	v := pixel.XRGB32
	r := pixel.NewTrueColor(v)
	under, _ := NewImageFor(v, 2, 1)
	under.SetPixelAt(0, 0, r.Encode(255, 255, 255))
	under.SetPixelAt(1, 0, r.Encode(0, 0, 0))

	src := &RGBImage{
		Width:  2,
		Height: 1,
		R:      []uint8{255, 200},
		G:      []uint8{0, 100},
		B:      []uint8{0, 50},
		A:      []uint8{128, 255},
	}
	p := NewPacker(v, r)
	img, err := p.RGB(src, zoom.Table(2, 2, 0), zoom.Table(1, 1, 0), under)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := r.ToRGB(img.PixelAt(0, 0)), pixel.Encode(255, 127, 127); got != want {
		t.Errorf("half transparent: got %s, want %s", got, want)
	}
	if got, want := r.ToRGB(img.PixelAt(1, 0)), pixel.Encode(200, 100, 50); got != want {
		t.Errorf("opaque: got %s, want %s", got, want)
	}
}

func TestBlend(t *testing.T) {
	cases := []struct{ src, dst, a, want uint8 }{
		{255, 0, 255, 255},
		{255, 0, 0, 0},
		{0, 255, 128, 127},
		{100, 100, 77, 100},
	}
	for _, tc := range cases {
		if got := Blend(tc.src, tc.dst, tc.a); got != tc.want {
			t.Errorf("Blend(%d, %d, %d) = %d, want %d", tc.src, tc.dst, tc.a, got, tc.want)
		}
	}
}

func TestUnsupportedLayout(t *testing.T) {
	v := pixel.XRGB32
	v.BitsPerPixel = 12
	p := NewPacker(v, pixel.NewTrueColor(v))
	src := &RGBImage{Width: 1, Height: 1, R: []uint8{1}, G: []uint8{2}, B: []uint8{3}}
	_, err := p.RGB(src, []int{0}, []int{0}, nil)
	if !errors.Is(err, ErrUnsupportedLayout) {
		t.Errorf("got %v, want %v", err, ErrUnsupportedLayout)
	}
}

func TestDirectQuantization(t *testing.T) {
	v := pixel.RGB565
	v.Class = pixel.DirectColor
	r := pixel.NewTrueColor(v)

	// a table which maps every level to black
	p := NewPacker(v, r)
	p.Direct = new(pixel.DirectTable)
	src := &RGBImage{Width: 1, Height: 1, R: []uint8{200}, G: []uint8{100}, B: []uint8{50}}
	img, err := p.RGB(src, []int{0}, []int{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.PixelAt(0, 0); got != 0 {
		t.Errorf("got %04x, want 0", got)
	}

	p.Direct = pixel.Identity()
	img, err = p.RGB(src, []int{0}, []int{0}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.PixelAt(0, 0), r.Encode(200, 100, 50); got != want {
		t.Errorf("got %04x, want %04x", got, want)
	}
}

func TestScratchGrowOnly(t *testing.T) {
	var s Scratch
	if _, err := s.Get(100); err != nil {
		t.Fatal(err)
	}
	c := s.Cap()
	if c < 100 {
		t.Fatalf("capacity %d after requesting 100 bytes", c)
	}
	buf, err := s.Get(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 10 || s.Cap() != c {
		t.Errorf("got len %d cap %d, want 10 and %d", len(buf), s.Cap(), c)
	}

	s.MaxBytes = 50
	if _, err := s.Get(1000); !errors.Is(err, ErrTooLarge) {
		t.Errorf("got %v, want %v", err, ErrTooLarge)
	}
	if s.Cap() != c {
		t.Error("failed request changed the buffer")
	}
}

func TestScratchCleared(t *testing.T) {
	var s Scratch
	buf, _ := s.Get(8)
	for i := range buf {
		buf[i] = 0xff
	}
	buf, _ = s.Get(8)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not cleared", i)
		}
	}
}

func TestSubImage(t *testing.T) {
	img, _ := NewImage(4, 4, 8, pixel.LSBFirst)
	for y := range 4 {
		for x := range 4 {
			img.SetPixelAt(x, y, uint32(10*y+x))
		}
	}
	sub := img.SubImage(2, 2, 3, 3)
	if got := sub.PixelAt(0, 0); got != 22 {
		t.Errorf("got %d, want 22", got)
	}
	if got := sub.PixelAt(1, 1); got != 33 {
		t.Errorf("got %d, want 33", got)
	}
	if got := sub.PixelAt(2, 2); got != 0 {
		t.Errorf("outside pixel is %d", got)
	}
}

func BenchmarkRGB(b *testing.B) {
	const w, h = 256, 256
	src := &RGBImage{Width: w, Height: h,
		R: make([]uint8, w*h), G: make([]uint8, w*h), B: make([]uint8, w*h)}
	for i := range src.R {
		src.R[i], src.G[i], src.B[i] = uint8(i), uint8(i>>8), uint8(i*7)
	}
	p := NewPacker(pixel.XRGB32, pixel.NewTrueColor(pixel.XRGB32))
	fx, fy := zoom.Table(400, w, 0), zoom.Table(300, h, 0)
	for b.Loop() {
		if _, err := p.RGB(src, fx, fy, nil); err != nil {
			b.Fatal(err)
		}
	}
}
