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

package region

import (
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// dump writes a bitmap to the test's temporary directory, for inspection
// after a failure.
func dump(t *testing.T, name string, b *Bitmap) {
	t.Helper()
	fname := filepath.Join(t.TempDir(), name+".png")
	f, err := os.Create(fname)
	if err != nil {
		t.Log(err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, b.Image()); err != nil {
		t.Log(err)
		return
	}
	t.Logf("bitmap written to %s", fname)
}

func TestAccumulationScenario(t *testing.T) {
	r := New(20, 20)
	r.CombineRect(Union, 0, 0, 10, 10)
	r.CombineRect(Intersect, 5, 5, 15, 15)

	if !r.Contains(7, 7) {
		t.Error("(7,7) should be inside")
	}
	if r.Contains(2, 2) {
		t.Error("(2,2) should be outside")
	}
	xmin, xmax, ymin, ymax := r.Bounds()
	if xmin != 5 || xmax != 9 || ymin != 5 || ymax != 9 {
		t.Errorf("bounds (%d,%d,%d,%d), want (5,9,5,9)", xmin, xmax, ymin, ymax)
		dump(t, "scenario", r.Bitmap())
	}
}

func TestEmptyBounds(t *testing.T) {
	r := New(30, 17)
	xmin, xmax, ymin, ymax := r.Bounds()
	if xmin != 29 || xmax != 0 || ymin != 16 || ymax != 0 {
		t.Errorf("got (%d,%d,%d,%d), want (29,0,16,0)", xmin, xmax, ymin, ymax)
	}
	if !r.IsEmpty() {
		t.Error("new region is not empty")
	}
}

func TestContainsOutOfBounds(t *testing.T) {
	r := New(10, 10)
	r.CombineRect(Union, -5, -5, 20, 20)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 10}, {1000, 1000}} {
		if r.Contains(p[0], p[1]) {
			t.Errorf("%v should be outside", p)
		}
	}
	if r.Bitmap().Count() != 100 {
		t.Errorf("got %d pixels, want 100", r.Bitmap().Count())
	}
}

func TestModes(t *testing.T) {
	cases := []struct {
		mode  Mode
		in    [4]bool // (1,1) only in A, (4,4) in both, (7,7) only in B, (9,9) in neither
		count int
	}{
		{Union, [4]bool{true, true, true, false}, 36 + 36 - 9},
		{Intersect, [4]bool{false, true, false, false}, 9},
		{Difference, [4]bool{true, false, false, false}, 36 - 9},
		{NotIntersect, [4]bool{true, false, true, false}, 36 + 36 - 18},
	}
	probes := [][2]int{{1, 1}, {4, 4}, {7, 7}, {9, 9}}
	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			r := New(10, 10)
			r.CombineRect(Union, 0, 0, 6, 6)
			r.CombineRect(tc.mode, 3, 3, 9, 9)
			for i, p := range probes {
				if got := r.Contains(p[0], p[1]); got != tc.in[i] {
					t.Errorf("Contains%v = %t, want %t", p, got, tc.in[i])
				}
			}
			if got := r.Bitmap().Count(); got != tc.count {
				t.Errorf("got %d pixels, want %d", got, tc.count)
			}
		})
	}
}

func TestUnionDifferenceLaw(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const w, h = 37, 23
	for range 50 {
		r := New(w, h)
		for range 3 {
			x0, y0 := rng.IntN(w), rng.IntN(h)
			r.CombineRect(Union, x0, y0, x0+rng.IntN(15), y0+rng.IntN(15))
		}
		orig := r.Bitmap().Clone()

		x0, y0 := rng.IntN(w), rng.IntN(h)
		x1, y1 := x0+rng.IntN(20), y0+rng.IntN(20)
		shape := NewBitmap(w, h)
		shape.FillRect(x0, y0, x1, y1)

		r.CombineRect(Union, x0, y0, x1, y1)
		r.CombineRect(Difference, x0, y0, x1, y1)

		for y := range h {
			for x := range w {
				got := r.Contains(x, y)
				switch {
				case shape.Get(x, y) && got:
					t.Fatalf("(%d,%d) inside the shape is still set", x, y)
				case !shape.Get(x, y) && got != orig.Get(x, y):
					t.Fatalf("(%d,%d) outside the shape changed", x, y)
				}
			}
		}
	}
}

func TestPointAgreesWithBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	const w, h = 40, 30
	for range 20 {
		r := New(w, h)
		for range 4 {
			mode := Mode(rng.IntN(4))
			x0, y0 := rng.IntN(w), rng.IntN(h)
			r.CombineRect(mode, x0, y0, x0+rng.IntN(20), y0+rng.IntN(20))
		}
		if r.IsEmpty() {
			continue
		}
		xmin, xmax, ymin, ymax := r.Bounds()
		for y := range h {
			for x := range w {
				if r.Contains(x, y) && (x < xmin || x > xmax || y < ymin || y > ymax) {
					t.Fatalf("(%d,%d) outside bounds (%d,%d,%d,%d)", x, y, xmin, xmax, ymin, ymax)
				}
			}
		}
	}
}

func TestOffset(t *testing.T) {
	r := New(10, 10)
	r.CombineRect(Union, 0, 0, 4, 4)
	r.Offset(8, 1)

	xmin, xmax, ymin, ymax := r.Bounds()
	if xmin != 8 || xmax != 9 || ymin != 1 || ymax != 4 {
		t.Errorf("bounds (%d,%d,%d,%d), want (8,9,1,4)", xmin, xmax, ymin, ymax)
	}
	if n := r.Bitmap().Count(); n != 8 {
		t.Errorf("got %d pixels, want 8", n)
	}

	// moving back does not restore the lost pixels
	r.Offset(-8, -1)
	if n := r.Bitmap().Count(); n != 8 {
		t.Errorf("got %d pixels, want 8", n)
	}
	if r.Contains(3, 0) || !r.Contains(0, 0) {
		t.Error("wrong pixels after moving back")
	}
}

func TestPolygonShape(t *testing.T) {
	r := New(20, 20)
	r.Combine(Union, func(b *Bitmap) {
		b.FillPolygon([]vec.Vec2{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 0, Y: 20}}, false)
	})
	if !r.Contains(1, 1) || r.Contains(18, 18) {
		t.Error("wrong triangle")
		dump(t, "triangle", r.Bitmap())
	}

	p := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).LineTo(vec.Vec2{X: 20, Y: 10}).
		LineTo(vec.Vec2{X: 20, Y: 20}).LineTo(vec.Vec2{X: 10, Y: 20}).Close()
	r.Combine(NotIntersect, func(b *Bitmap) { b.FillPath(p, true) })
	if !r.Contains(15, 15) {
		t.Error("(15,15) should be set")
	}
}

func TestSpanEdges(t *testing.T) {
	for x0 := 0; x0 < 20; x0++ {
		for x1 := x0; x1 <= 20; x1++ {
			b := NewBitmap(19, 1)
			b.Span(0, x0, x1)
			for x := range 19 {
				want := x >= x0 && x < x1
				if b.Get(x, 0) != want {
					t.Fatalf("Span(%d,%d): pixel %d is %t", x0, x1, x, b.Get(x, 0))
				}
			}
			if b.Bits[2]&0x1f != 0 {
				t.Fatalf("Span(%d,%d): padding bits set", x0, x1)
			}
		}
	}
}

func TestComposePadding(t *testing.T) {
	a := NewBitmap(11, 3)
	b := NewBitmap(11, 3)
	a.Compose(OpEquiv, b)
	if n := a.Count(); n != 33 {
		t.Errorf("equiv of two empty bitmaps has %d pixels, want 33", n)
	}
	a.Invert()
	if !a.IsEmpty() {
		t.Error("inverted full bitmap is not empty")
	}
}
