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

package affine

import (
	"errors"
	"math"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/memsurf"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
)

const gray = pixel.RGB(0x808080)

func setup(t *testing.T, w, h int) (*memsurf.Surface, *Compositor) {
	t.Helper()
	s, err := memsurf.New(pixel.XRGB32, w, h)
	if err != nil {
		t.Fatal(err)
	}
	r := pixel.NewTrueColor(pixel.XRGB32)
	s.SetForeground(r.Resolve(gray).Pixel)
	s.FillRect(0, 0, w, h)
	return s, &Compositor{Surface: s, Packer: pack.NewPacker(pixel.XRGB32, r)}
}

func TestRotate90(t *testing.T) {
	s, c := setup(t, 20, 20)
	src := &pack.IndexedImage{
		Width:   2,
		Height:  2,
		Pix:     []uint8{0, 1, 2, 3},
		Palette: []pixel.RGB{pixel.Red, pixel.Green, pixel.Blue, pixel.White},
	}
	// a quarter turn counter-clockwise around (7, 7)
	pl := Placement{
		X: 5, Y: 5, W: 4, H: 4,
		XMin: 0, XMax: 1, YMin: 0, YMax: 1,
		Matrix: matrix.Matrix{0, 1, -1, 0, 14, 0},
	}
	if b := pl.Bounds(); b != (Box{5, 8, 5, 8}) {
		t.Fatalf("bounds %+v", b)
	}
	before := s.Pixels().Clone()

	if err := c.Map(src, pl); err != nil {
		t.Fatal(err)
	}

	// canvas (x, y) is device (x, 19-y)
	cases := []struct {
		x, y int
		want pixel.RGB
	}{
		{5, 5, pixel.Blue}, {6, 6, pixel.Blue},
		{8, 5, pixel.Red}, {7, 6, pixel.Red},
		{5, 8, pixel.White}, {6, 7, pixel.White},
		{8, 8, pixel.Green}, {7, 7, pixel.Green},
	}
	for _, tc := range cases {
		if got := s.RGBAt(tc.x, 19-tc.y); got != tc.want {
			t.Errorf("canvas (%d, %d) is %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}

	// everything outside the box is untouched
	for y := range 20 {
		for x := range 20 {
			cy := 19 - y
			if x >= 5 && x <= 8 && cy >= 5 && cy <= 8 {
				continue
			}
			if s.Pixels().PixelAt(x, y) != before.PixelAt(x, y) {
				t.Fatalf("device pixel (%d, %d) changed", x, y)
			}
		}
	}
}

func TestRotate45(t *testing.T) {
	s, c := setup(t, 20, 20)
	src := &pack.RGBImage{
		Width: 2, Height: 2,
		R: []uint8{255, 255, 255, 255},
		G: []uint8{255, 255, 255, 255},
		B: []uint8{255, 255, 255, 255},
	}
	cs, sn := math.Cos(math.Pi/4), math.Sin(math.Pi/4)
	pl := Placement{
		X: 6, Y: 6, W: 8, H: 8,
		XMin: 0, XMax: 1, YMin: 0, YMax: 1,
		Matrix: matrix.Matrix{cs, sn, -sn, cs, 10 - 10*cs + 10*sn, 10 - 10*sn - 10*cs},
	}
	before := s.Pixels().Clone()
	if err := c.RGBA(src, pl); err != nil {
		t.Fatal(err)
	}

	halfDiag := 4 * math.Sqrt2
	changed := 0
	for y := range 20 {
		for x := range 20 {
			cx, cy := float64(x)+0.5, float64(19-y)+0.5
			same := s.Pixels().PixelAt(x, y) == before.PixelAt(x, y)
			if !same {
				changed++
			}
			if math.Abs(cx-10)+math.Abs(cy-10) > halfDiag+0.01 && !same {
				t.Errorf("device pixel (%d, %d) outside the rotated square changed", x, y)
			}
		}
	}
	if s.RGBAt(10, 9) != pixel.White {
		t.Error("center not painted")
	}
	// the square has area 64
	if changed < 50 || changed > 64 {
		t.Errorf("%d pixels changed", changed)
	}
}

func TestAlpha(t *testing.T) {
	s, c := setup(t, 8, 8)
	src := &pack.RGBImage{
		Width: 2, Height: 1,
		R: []uint8{255, 255}, G: []uint8{0, 0}, B: []uint8{0, 0},
		A: []uint8{0, 255},
	}
	pl := Placement{
		X: 0, Y: 0, W: 8, H: 4,
		XMin: 0, XMax: 1, YMin: 0, YMax: 0,
		Matrix: matrix.Identity,
	}
	if err := c.RGBA(src, pl); err != nil {
		t.Fatal(err)
	}
	// bottom rows: left half transparent, right half opaque
	if got := s.RGBAt(1, 7); got != gray {
		t.Errorf("transparent part is %s", got)
	}
	if got := s.RGBAt(6, 7); got != pixel.Red {
		t.Errorf("opaque part is %s", got)
	}
	if got := s.RGBAt(6, 2); got != gray {
		t.Errorf("pixel above the image is %s", got)
	}
}

func TestClipCombinedAndRestored(t *testing.T) {
	s, c := setup(t, 10, 10)
	clip := region.NewBitmap(10, 10)
	clip.FillRect(0, 0, 5, 10)
	s.SetClipMask(clip)
	c.Clip = clip

	src := &pack.IndexedImage{Width: 1, Height: 1, Pix: []uint8{0}, Palette: []pixel.RGB{pixel.Blue}}
	pl := Placement{W: 10, H: 10, Matrix: matrix.Identity}
	if err := c.Map(src, pl); err != nil {
		t.Fatal(err)
	}
	if s.RGBAt(2, 2) != pixel.Blue || s.RGBAt(7, 2) == pixel.Blue {
		t.Error("image not clipped")
	}

	r := pixel.NewTrueColor(pixel.XRGB32)
	s.SetForeground(r.Resolve(pixel.Green).Pixel)
	s.FillRect(0, 0, 10, 10)
	if s.RGBAt(7, 2) == pixel.Green {
		t.Error("clip mask not restored")
	}
	if clip.Count() != 50 {
		t.Error("clip mask was modified")
	}
}

func TestSingular(t *testing.T) {
	_, c := setup(t, 10, 10)
	src := &pack.IndexedImage{Width: 1, Height: 1, Pix: []uint8{0}, Palette: []pixel.RGB{pixel.Blue}}
	pl := Placement{W: 5, H: 5, Matrix: matrix.Matrix{1, 1, 2, 2, 0, 0}}
	if err := c.Map(src, pl); !errors.Is(err, ErrSingular) {
		t.Errorf("got %v, want %v", err, ErrSingular)
	}

	// off-surface placements are a no-op
	pl = Placement{X: 100, Y: 100, W: 5, H: 5, Matrix: matrix.Identity}
	if err := c.Map(src, pl); err != nil {
		t.Error(err)
	}
}

func TestInvert(t *testing.T) {
	m := matrix.Matrix{2, 1, -1, 3, 5, -7}
	inv, err := Invert(m)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: -3, Y: 0.5}} {
		q := Apply(inv, Apply(m, p))
		if math.Abs(q.X-p.X) > 1e-9 || math.Abs(q.Y-p.Y) > 1e-9 {
			t.Errorf("%v -> %v", p, q)
		}
	}
}

func TestBilinear(t *testing.T) {
	plane := []uint8{0, 100, 200, 100}
	cases := []struct {
		x, y float64
		want uint8
	}{
		{0.5, 0.5, 0},
		{1.5, 0.5, 100},
		{1.0, 0.5, 50},
		{0.5, 1.0, 100},
		{1.0, 1.0, 100},
		{0.1, 0.1, 0},
		{1.9, 1.9, 100},
	}
	for _, tc := range cases {
		if got := Bilinear(2, 2, plane, tc.x, tc.y); got != tc.want {
			t.Errorf("(%g, %g): got %d, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}
