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

package canvas

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/memsurf"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
)

func newTest(t *testing.T, v pixel.Visual, w, h int, opts ...Option) (*Canvas, *memsurf.Surface) {
	t.Helper()
	s, err := memsurf.New(v, w, h)
	if err != nil {
		t.Fatal(err)
	}
	c, err := New(s, opts...)
	if err != nil {
		t.Fatal(err)
	}
	c.Clear()
	dumpOnFailure(t, s)
	return c, s
}

// dumpOnFailure writes the surface to debug/<test>.png when the test
// fails, if the debug directory exists.
func dumpOnFailure(t *testing.T, s *memsurf.Surface) {
	t.Cleanup(func() {
		if !t.Failed() {
			return
		}
		name := strings.ReplaceAll(t.Name(), "/", "_")
		f, err := os.Create(filepath.Join("debug", name+".png"))
		if err != nil {
			return
		}
		err = png.Encode(f, s.Image())
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			t.Log(err)
		}
	})
}

// at returns the color of canvas pixel (x, y).
func at(s *memsurf.Surface, x, y int) pixel.RGB {
	_, h := s.Size()
	return s.RGBAt(x, h-1-y)
}

// ink returns the bounding box of all pixels which are not white, in
// canvas coordinates.
func ink(s *memsurf.Surface) (xmin, xmax, ymin, ymax, n int) {
	w, h := s.Size()
	xmin, ymin = w, h
	xmax, ymax = -1, -1
	for y := range h {
		for x := range w {
			if at(s, x, y) == pixel.White {
				continue
			}
			n++
			xmin, xmax = min(xmin, x), max(xmax, x)
			ymin, ymax = min(ymin, y), max(ymax, y)
		}
	}
	return
}

func TestBox(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.SetForeground(pixel.Red)
	c.Box(4, 2, 1, 3)

	xmin, xmax, ymin, ymax, n := ink(s)
	if xmin != 2 || xmax != 4 || ymin != 1 || ymax != 3 || n != 9 {
		t.Errorf("box covers [%d,%d]×[%d,%d] with %d pixels", xmin, xmax, ymin, ymax, n)
	}
	if at(s, 3, 2) != pixel.Red {
		t.Errorf("box is %s", at(s, 3, 2))
	}
}

func TestRegion(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 20, 20)
	if _, _, _, _, err := c.RegionBox(); !errors.Is(err, region.ErrNoRegion) {
		t.Errorf("got %v, want %v", err, region.ErrNoRegion)
	}

	c.NewRegion()
	xmin, xmax, ymin, ymax, err := c.RegionBox()
	if err != nil || xmin != 19 || xmax != 0 || ymin != 19 || ymax != 0 {
		t.Errorf("empty region box (%d, %d, %d, %d), %v", xmin, xmax, ymin, ymax, err)
	}

	c.Box(5, 9, 5, 9)
	c.EndRegion()
	xmin, xmax, ymin, ymax, err = c.RegionBox()
	if err != nil || xmin != 5 || xmax != 9 || ymin != 5 || ymax != 9 {
		t.Errorf("region box (%d, %d, %d, %d), %v", xmin, xmax, ymin, ymax, err)
	}
	if !c.IsPointInRegion(5, 5) || !c.IsPointInRegion(9, 9) || c.IsPointInRegion(4, 5) {
		t.Error("wrong region membership")
	}
	if _, _, _, _, n := ink(s); n != 0 {
		t.Errorf("%d pixels drawn while building the region", n)
	}

	c.OffsetRegion(2, 1)
	xmin, xmax, ymin, ymax, _ = c.RegionBox()
	if xmin != 7 || xmax != 11 || ymin != 6 || ymax != 10 {
		t.Errorf("offset region box (%d, %d, %d, %d)", xmin, xmax, ymin, ymax)
	}
}

func TestRegionCombine(t *testing.T) {
	c, _ := newTest(t, pixel.XRGB32, 20, 20)
	c.NewRegion()
	c.Box(0, 9, 0, 9)
	c.SetRegionCombineMode(region.Intersect)
	c.Box(5, 14, 5, 14)
	c.EndRegion()
	xmin, xmax, ymin, ymax, _ := c.RegionBox()
	if xmin != 5 || xmax != 9 || ymin != 5 || ymax != 9 {
		t.Errorf("intersection box (%d, %d, %d, %d)", xmin, xmax, ymin, ymax)
	}

	c.NewRegion()
	c.SetRegionCombineMode(region.Union)
	c.Box(0, 9, 0, 9)
	c.SetRegionCombineMode(region.Difference)
	c.Box(0, 9, 5, 9)
	c.EndRegion()
	xmin, xmax, ymin, ymax, _ = c.RegionBox()
	if xmin != 0 || xmax != 9 || ymin != 0 || ymax != 4 {
		t.Errorf("difference box (%d, %d, %d, %d)", xmin, xmax, ymin, ymax)
	}
}

func TestOffsetWithoutRegion(t *testing.T) {
	c, _ := newTest(t, pixel.XRGB32, 10, 10)
	c.OffsetRegion(1, 1)
	if err := c.Err(); !errors.Is(err, region.ErrNoRegion) {
		t.Errorf("got %v, want %v", err, region.ErrNoRegion)
	}
	if c.IsPointInRegion(0, 0) {
		t.Error("point in missing region")
	}
}

func TestXor(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.SetForeground(pixel.Red)
	if old := c.SetWriteMode(Xor); old != Replace {
		t.Errorf("old write mode %d", old)
	}
	c.Box(0, 4, 0, 4)
	if got := at(s, 2, 2); got != pixel.Encode(0, 255, 255) {
		t.Errorf("white xor red is %s", got)
	}
	c.Box(0, 4, 0, 4)
	if got := at(s, 2, 2); got != pixel.White {
		t.Errorf("drawing twice gives %s", got)
	}
}

func TestHatch(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 16, 16)
	c.SetHatch(Cross)
	c.SetHatch(Cross)
	if c.hatches.misses != 1 {
		t.Errorf("%d cache misses for one hatch", c.hatches.misses)
	}
	c.SetHatch(Horizontal)
	if c.hatches.misses != 2 || c.InteriorStyle() != Hatch {
		t.Errorf("%d misses, style %d", c.hatches.misses, c.InteriorStyle())
	}

	// lines are always solid
	c.Line(0, 0, 15, 0)
	if s.RGBAt(7, 15) != pixel.Black {
		t.Error("line not solid")
	}

	c.Box(0, 15, 1, 15)
	for x := range 16 {
		if s.RGBAt(x, 2) != pixel.Black || s.RGBAt(x, 6) != pixel.Black {
			t.Fatalf("hatch line missing in column %d", x)
		}
		if s.RGBAt(x, 3) != pixel.White {
			t.Fatalf("transparent hatch painted column %d", x)
		}
	}

	c.SetBackground(pixel.Blue)
	c.SetBackOpacity(Opaque)
	c.Box(0, 15, 1, 15)
	if s.RGBAt(4, 3) != pixel.Blue || s.RGBAt(4, 2) != pixel.Black {
		t.Errorf("opaque hatch gives %s and %s", s.RGBAt(4, 3), s.RGBAt(4, 2))
	}
}

func TestInteriorStyleNeedsData(t *testing.T) {
	c, _ := newTest(t, pixel.XRGB32, 10, 10)
	for _, style := range []InteriorStyle{Hatch, Stipple, Pattern} {
		c.SetInteriorStyle(style)
		if c.InteriorStyle() != Solid {
			t.Errorf("style %d accepted without data", style)
		}
	}
	c.SetStipple(1, 1, []uint8{1})
	c.SetInteriorStyle(Solid)
	c.SetInteriorStyle(Stipple)
	if c.InteriorStyle() != Stipple {
		t.Error("stipple style not restored")
	}
}

func TestStipple(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 4, 4)
	data := []uint8{
		1, 0, // bottom row
		0, 0,
	}
	c.SetStipple(2, 2, data)
	c.SetStipple(2, 2, data)
	if c.stipples.misses != 1 {
		t.Errorf("%d cache misses", c.stipples.misses)
	}
	c.Box(0, 3, 0, 3)
	if s.RGBAt(0, 1) != pixel.Black || s.RGBAt(2, 3) != pixel.Black {
		t.Error("stipple pixel not painted")
	}
	if s.RGBAt(1, 1) != pixel.White || s.RGBAt(0, 0) != pixel.White {
		t.Error("transparent stipple pixel painted")
	}

	c.SetStipple(3, 3, data)
	if err := c.Err(); !errors.Is(err, errInvalidImage) {
		t.Errorf("short stipple: got %v", err)
	}
}

func TestPattern(t *testing.T) {
	for _, v := range []pixel.Visual{pixel.XRGB32, pixel.Mapped8} {
		t.Run(v.String(), func(t *testing.T) {
			c, s := newTest(t, v, 8, 8)
			c.SetPattern(2, 1, []pixel.RGB{pixel.Red, pixel.Blue})
			if c.InteriorStyle() != Pattern {
				t.Fatal("pattern not selected")
			}
			c.Box(0, 7, 0, 7)
			for y := range 8 {
				if s.RGBAt(4, y) != pixel.Red || s.RGBAt(5, y) != pixel.Blue {
					t.Fatalf("row %d: %s %s", y, s.RGBAt(4, y), s.RGBAt(5, y))
				}
			}
		})
	}
}

func TestQuantize(t *testing.T) {
	colors := make([]pixel.RGB, 301)
	for i := range 300 {
		colors[i] = pixel.Encode(uint8(i%256), uint8(i/256)*100, 0)
	}
	colors[300] = colors[7]

	idx, palette := quantize(colors)
	if len(palette) != maxPatternColors {
		t.Fatalf("%d palette entries", len(palette))
	}
	for i := range 256 {
		if idx[i] != uint8(i) || palette[i] != colors[i] {
			t.Fatalf("entry %d maps to %d", i, idx[i])
		}
	}
	// (0, 100, 0) is closest to black
	if idx[256] != 0 {
		t.Errorf("overflow color maps to %d", idx[256])
	}
	if idx[300] != 7 {
		t.Errorf("repeated color maps to %d", idx[300])
	}
}

func TestClipArea(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.SetClipArea(2, 5, 2, 5)
	if old := c.Clip(ClipArea); old != ClipOff {
		t.Errorf("old clip mode %d", old)
	}
	c.SetForeground(pixel.Red)
	c.Box(0, 9, 0, 9)
	xmin, xmax, ymin, ymax, n := ink(s)
	if xmin != 2 || xmax != 5 || ymin != 2 || ymax != 5 || n != 16 {
		t.Errorf("clipped box covers [%d,%d]×[%d,%d] with %d pixels", xmin, xmax, ymin, ymax, n)
	}

	c.Clip(ClipOff)
	c.Box(0, 9, 0, 9)
	if _, _, _, _, n := ink(s); n != 100 {
		t.Errorf("%d pixels after removing the clip", n)
	}
}

func TestClipRegion(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.NewRegion()
	c.Box(0, 4, 0, 4)
	c.EndRegion()
	c.Clip(ClipRegion)
	c.SetForeground(pixel.Red)
	c.Box(0, 9, 0, 9)
	if at(s, 4, 4) != pixel.Red || at(s, 5, 5) != pixel.White || at(s, 0, 5) != pixel.White {
		t.Error("box not clipped to the region")
	}
}

func TestClipPolygon(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.Poly(PolyClip, []vec.Vec2{{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 0, Y: 9}})
	c.Clip(ClipPolygon)
	c.SetForeground(pixel.Red)
	c.Box(0, 9, 0, 9)
	if at(s, 1, 1) != pixel.Red {
		t.Error("inside of the clip polygon not painted")
	}
	if at(s, 8, 8) != pixel.White {
		t.Error("outside of the clip polygon painted")
	}
}

func TestVertices(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.Begin(Fill)
	c.Vertex(1, 1)
	c.Vertex(8, 1)
	c.Vertex(8, 8)
	c.Vertex(1, 8)
	c.End()
	if at(s, 4, 4) != pixel.Black || at(s, 0, 0) != pixel.White {
		t.Error("polygon not filled")
	}
	c.Vertex(0, 0) // ignored outside Begin/End
	if len(c.polyPts) != 4 {
		t.Errorf("%d vertices", len(c.polyPts))
	}
}

func TestPixelAndClear(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.Pixel(3, 4, pixel.Green)
	if at(s, 3, 4) != pixel.Green {
		t.Errorf("pixel is %s", at(s, 3, 4))
	}
	if c.Foreground() != pixel.Black {
		t.Error("foreground changed")
	}
	c.Box(0, 1, 0, 1)
	if at(s, 0, 0) != pixel.Black {
		t.Error("foreground not restored on the surface")
	}

	c.SetBackground(pixel.Blue)
	c.Clear()
	if at(s, 3, 4) != pixel.Blue {
		t.Error("canvas not cleared")
	}
}

func TestImage(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 20, 20)
	src := &pack.RGBImage{
		Width: 2, Height: 2,
		R: []uint8{255, 0, 0, 255},
		G: []uint8{0, 255, 0, 255},
		B: []uint8{0, 0, 255, 255},
	}
	if err := c.PutImageRGB(src, 3, 3, 4, 4); err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y int
		want pixel.RGB
	}{
		{3, 3, pixel.Red}, {4, 4, pixel.Red},
		{5, 3, pixel.Green}, {6, 4, pixel.Green},
		{3, 5, pixel.Blue}, {4, 6, pixel.Blue},
		{6, 6, pixel.White}, {5, 5, pixel.White},
		{7, 7, pixel.White}, {2, 3, pixel.White},
	}
	for _, tc := range cases {
		if got := at(s, tc.x, tc.y); got != tc.want {
			t.Errorf("(%d, %d) is %s, want %s", tc.x, tc.y, got, tc.want)
		}
	}
	// the top-right quarter is white
	if _, _, _, _, n := ink(s); n != 12 {
		t.Errorf("%d pixels drawn", n)
	}

	back, err := c.GetImageRGB(3, 3, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if back.R[0] != 255 || back.G[0] != 0 || back.B[15] != 255 || back.G[3] != 255 {
		t.Errorf("read back R=%v G=%v B=%v", back.R, back.G, back.B)
	}
}

func TestImagePart(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	src := &pack.IndexedImage{
		Width: 3, Height: 1,
		Pix:     []uint8{0, 1, 2},
		Palette: []pixel.RGB{pixel.Red, pixel.Green, pixel.Blue},
	}
	if err := c.PutImageRectMap(src, 0, 0, 0, 0, 1, 2, 0, 0); err != nil {
		t.Fatal(err)
	}
	if at(s, 0, 0) != pixel.Green || at(s, 1, 0) != pixel.Blue || at(s, 2, 0) != pixel.White {
		t.Errorf("got %s %s %s", at(s, 0, 0), at(s, 1, 0), at(s, 2, 0))
	}

	err := c.PutImageRectMap(src, 0, 0, 0, 0, 1, 3, 0, 0)
	if !errors.Is(err, errInvalidImage) {
		t.Errorf("got %v, want %v", err, errInvalidImage)
	}
}

func TestImageAlpha(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 8, 8)
	src := &pack.RGBImage{
		Width: 2, Height: 1,
		R: []uint8{255, 255}, G: []uint8{0, 0}, B: []uint8{0, 0},
		A: []uint8{0, 255},
	}
	if err := c.PutImageRectRGBA(src, 0, 0, 8, 2, 0, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if at(s, 1, 0) != pixel.White || at(s, 6, 1) != pixel.Red {
		t.Errorf("got %s and %s", at(s, 1, 0), at(s, 6, 1))
	}

	// without alpha, the transparent part is painted
	if err := c.PutImageRectRGB(src, 0, 4, 8, 2, 0, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if at(s, 1, 4) != pixel.Red {
		t.Errorf("got %s", at(s, 1, 4))
	}
}

func TestRotatedImage(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 20, 20)
	c.Rotate(90, 10, 10)
	if a, cx, cy := c.Rotation(); a != 90 || cx != 10 || cy != 10 {
		t.Errorf("rotation %g around (%g, %g)", a, cx, cy)
	}
	src := &pack.RGBImage{
		Width: 1, Height: 1,
		R: []uint8{255}, G: []uint8{0}, B: []uint8{0},
	}
	if err := c.PutImageRGB(src, 12, 10, 4, 4); err != nil {
		t.Fatal(err)
	}
	// [12, 16] × [10, 14] turns into [6, 10] × [12, 16]
	if at(s, 8, 14) != pixel.Red {
		t.Error("rotated image not drawn")
	}
	if at(s, 13, 12) != pixel.White {
		t.Error("image drawn without rotation")
	}

	c.Rotate(0, 0, 0)
	if _, ok := c.Matrix(); ok {
		t.Error("rotation by 0 keeps a transformation")
	}
}

func TestTransformSingular(t *testing.T) {
	c, _ := newTest(t, pixel.XRGB32, 10, 10)
	c.Transform(&matrix.Matrix{1, 1, 1, 1, 0, 0})
	if c.Err() == nil {
		t.Error("singular matrix accepted")
	}
	if _, ok := c.Matrix(); ok {
		t.Error("singular matrix installed")
	}
}

func TestTransformBox(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 20, 20)
	m := matrix.Matrix{2, 0, 0, 2, 1, 1}
	c.Transform(&m)
	c.Box(0, 1, 0, 1)
	xmin, xmax, ymin, ymax, n := ink(s)
	if xmin != 1 || xmax != 4 || ymin != 1 || ymax != 4 || n != 16 {
		t.Errorf("scaled box covers [%d,%d]×[%d,%d] with %d pixels", xmin, xmax, ymin, ymax, n)
	}
}

func TestServerImage(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.SetForeground(pixel.Red)
	c.Box(0, 1, 0, 0)

	si, err := c.CreateImage(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.GetImage(si, 0, 0); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if err := c.PutImageRect(si, 5, 5, 0, 1, 0, 1); err != nil {
		t.Fatal(err)
	}
	if at(s, 5, 5) != pixel.Red || at(s, 6, 5) != pixel.Red || at(s, 5, 6) != pixel.White {
		t.Error("server image not copied")
	}

	// the top row only
	c.Clear()
	if err := c.PutImageRect(si, 0, 0, 0, 1, 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, _, _, _, n := ink(s); n != 0 {
		t.Errorf("%d pixels of the white row drawn", n)
	}
}

func TestScroll(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 10, 10)
	c.Pixel(1, 1, pixel.Red)
	c.ScrollArea(0, 4, 0, 4, 2, 3)
	if at(s, 3, 4) != pixel.Red {
		t.Error("pixel not moved")
	}
}

func TestText(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 80, 40)
	if err := c.NativeFont("Courier, 12"); err != nil {
		t.Fatal(err)
	}
	c.Text(2, 10, "Hi")
	xmin, xmax, ymin, ymax, n := ink(s)
	if n == 0 {
		t.Fatal("no text drawn")
	}
	w, _ := c.TextSize("Hi")
	_, _, ascent, _ := c.FontDim()
	if xmin < 2 || xmax >= 2+w || ymin < 9 || ymax > 10+ascent {
		t.Errorf("text covers [%d,%d]×[%d,%d]", xmin, xmax, ymin, ymax)
	}
}

func TestTextOrientation(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 80, 80)
	c.SetTextOrientation(90)
	c.Text(40, 5, "HHHH")
	xmin, xmax, ymin, ymax, n := ink(s)
	if n == 0 {
		t.Fatal("no text drawn")
	}
	if ymax-ymin <= xmax-xmin {
		t.Errorf("vertical text covers [%d,%d]×[%d,%d]", xmin, xmax, ymin, ymax)
	}
	if xmax > 41 {
		t.Errorf("text extends to the right of the baseline, to x=%d", xmax)
	}
}

func TestTextRegion(t *testing.T) {
	c, s := newTest(t, pixel.XRGB32, 60, 30)
	c.NewRegion()
	c.Text(2, 10, "Hi")
	c.EndRegion()
	if _, _, _, _, n := ink(s); n != 0 {
		t.Errorf("%d pixels drawn", n)
	}
	xmin, _, ymin, _, err := c.RegionBox()
	if err != nil || c.region.IsEmpty() {
		t.Fatalf("empty region, %v", err)
	}
	if xmin < 2 || ymin < 9 {
		t.Errorf("region starts at (%d, %d)", xmin, ymin)
	}
}

func TestFont(t *testing.T) {
	c, _ := newTest(t, pixel.XRGB32, 10, 10)
	if err := c.Font("Times", Bold|Underline, 12); err != nil {
		t.Fatal(err)
	}
	spec := c.FontSpec()
	if !spec.Bold || spec.Italic || !spec.Underline || spec.Size != 12 {
		t.Errorf("font %s", spec)
	}
	if err := c.NativeFont("Courier New, Italic 10"); err != nil {
		t.Error(err)
	}
	if err := c.NativeFont("No Such Font, 10"); err == nil {
		t.Error("unknown font accepted")
	}
	if c.FontSpec().Family != "Courier New" {
		t.Error("failed font change replaced the font")
	}
	if err := c.Font("Times", Plain, 0); err == nil {
		t.Error("size 0 accepted")
	}
}

func TestErrorReporting(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	c, _ := newTest(t, pixel.XRGB32, 10, 10, WithLogger(logger))

	bad := &pack.RGBImage{Width: 2, Height: 2, R: []uint8{1}}
	if err := c.PutImageRGB(bad, 0, 0, 0, 0); !errors.Is(err, errInvalidImage) {
		t.Errorf("got %v", err)
	}
	if err := c.Err(); err == nil || !strings.Contains(err.Error(), "PutImageRectRGB") {
		t.Errorf("Err() = %v", err)
	}
	if err := c.Err(); err != nil {
		t.Errorf("error not cleared: %v", err)
	}
	if !strings.Contains(buf.String(), "canvas operation aborted") {
		t.Errorf("nothing logged: %q", buf.String())
	}
}

func TestPaletteDisplay(t *testing.T) {
	c, s := newTest(t, pixel.Mapped8, 10, 10)
	c.SetForeground(pixel.Red)
	c.Box(0, 4, 0, 4)
	if at(s, 2, 2) != pixel.Red || at(s, 7, 7) != pixel.White {
		t.Errorf("got %s and %s", at(s, 2, 2), at(s, 7, 7))
	}

	c.SetPalette([]pixel.RGB{pixel.Black, pixel.White, pixel.Green}, pixel.Force)
	c.SetForeground(pixel.Green)
	c.Box(5, 9, 5, 9)
	if at(s, 7, 7) != pixel.Green {
		t.Errorf("got %s", at(s, 7, 7))
	}
}

func BenchmarkBox(b *testing.B) {
	s, _ := memsurf.New(pixel.XRGB32, 256, 256)
	c, _ := New(s)
	c.SetHatch(DiagonalCross)
	for b.Loop() {
		c.Box(10, 200, 10, 200)
	}
}
