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
	"image"
	"image/color"
	"math/bits"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/internal/raster"
)

// Op is a raster operation combining a source bitmap into a destination.
type Op int

const (
	OpCopy   Op = iota // dst = src
	OpAnd              // dst = dst & src
	OpOr               // dst = dst | src
	OpXor              // dst = dst ^ src
	OpAndNot           // dst = dst &^ src
	OpEquiv            // dst = ^(dst ^ src)
)

// Bitmap is a 1-bit image.  Pixels are stored row by row, most significant
// bit first.  Padding bits at the end of each row are always zero.
//
// The zero value is an empty 0x0 bitmap.
type Bitmap struct {
	Width, Height int
	Stride        int
	Bits          []byte

	filler *raster.Filler
}

// NewBitmap allocates a cleared bitmap.
func NewBitmap(w, h int) *Bitmap {
	w, h = max(w, 0), max(h, 0)
	stride := (w + 7) / 8
	return &Bitmap{
		Width:  w,
		Height: h,
		Stride: stride,
		Bits:   make([]byte, stride*h),
	}
}

// Get reports whether the pixel (x, y) is set.  Pixels outside the bitmap
// are never set.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Bits[y*b.Stride+x>>3]&(0x80>>(x&7)) != 0
}

// Set changes a single pixel.  Pixels outside the bitmap are ignored.
func (b *Bitmap) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := y*b.Stride + x>>3
	m := byte(0x80 >> (x & 7))
	if on {
		b.Bits[i] |= m
	} else {
		b.Bits[i] &^= m
	}
}

// Clear resets all pixels.
func (b *Bitmap) Clear() {
	clear(b.Bits)
}

// Span sets the pixels [x0, x1) of row y.  The span is clipped to the
// bitmap.  Span has the signature of a raster span callback.
func (b *Bitmap) Span(y, x0, x1 int) {
	if y < 0 || y >= b.Height {
		return
	}
	x0 = max(x0, 0)
	x1 = min(x1, b.Width)
	if x0 >= x1 {
		return
	}
	row := b.Bits[y*b.Stride : (y+1)*b.Stride]
	first, last := x0>>3, (x1-1)>>3
	lm := byte(0xff >> (x0 & 7))
	rm := byte(0xff << (7 - (x1-1)&7))
	if first == last {
		row[first] |= lm & rm
		return
	}
	row[first] |= lm
	for i := first + 1; i < last; i++ {
		row[i] = 0xff
	}
	row[last] |= rm
}

// FillRect sets all pixels in [x0, x1) × [y0, y1).
func (b *Bitmap) FillRect(x0, y0, x1, y1 int) {
	y0 = max(y0, 0)
	y1 = min(y1, b.Height)
	for y := y0; y < y1; y++ {
		b.Span(y, x0, x1)
	}
}

// Filler returns the rasterizer used for drawing shapes into b.  The
// clip rectangle is the bitmap area and the CTM is the identity.
func (b *Bitmap) Filler() *raster.Filler {
	clip := rect.Rect{URx: float64(b.Width), URy: float64(b.Height)}
	if b.filler == nil {
		b.filler = raster.New(clip)
	}
	b.filler.Clip = clip
	return b.filler
}

// FillPath sets all pixels whose centers are inside p.
func (b *Bitmap) FillPath(p *path.Data, evenOdd bool) {
	b.Filler().Fill(p, rule(evenOdd), b.Span)
}

// FillPolygon sets all pixels whose centers are inside the polygon.
func (b *Bitmap) FillPolygon(pts []vec.Vec2, evenOdd bool) {
	b.Filler().Polygon(pts, rule(evenOdd), b.Span)
}

func rule(evenOdd bool) raster.Rule {
	if evenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}

// Compose combines src into b.  Both bitmaps must have the same size.
func (b *Bitmap) Compose(op Op, src *Bitmap) {
	d, s := b.Bits, src.Bits[:len(b.Bits)]
	switch op {
	case OpCopy:
		copy(d, s)
	case OpAnd:
		for i := range d {
			d[i] &= s[i]
		}
	case OpOr:
		for i := range d {
			d[i] |= s[i]
		}
	case OpXor:
		for i := range d {
			d[i] ^= s[i]
		}
	case OpAndNot:
		for i := range d {
			d[i] &^= s[i]
		}
	case OpEquiv:
		for i := range d {
			d[i] = ^(d[i] ^ s[i])
		}
		b.clearPadding()
	}
}

// Invert flips all pixels.
func (b *Bitmap) Invert() {
	for i := range b.Bits {
		b.Bits[i] = ^b.Bits[i]
	}
	b.clearPadding()
}

func (b *Bitmap) clearPadding() {
	if b.Width&7 == 0 || b.Stride == 0 {
		return
	}
	m := byte(0xff << (8 - b.Width&7))
	for y := range b.Height {
		b.Bits[y*b.Stride+b.Stride-1] &= m
	}
}

// CopyShifted replaces the contents of b by src, moved by (dx, dy).
// Pixels moved outside the bitmap are lost.
func (b *Bitmap) CopyShifted(src *Bitmap, dx, dy int) {
	b.Clear()
	for y := range src.Height {
		ty := y + dy
		if ty < 0 || ty >= b.Height {
			continue
		}
		row := src.Bits[y*src.Stride : (y+1)*src.Stride]
		for i, v := range row {
			if v == 0 {
				continue
			}
			for k := range 8 {
				if v&(0x80>>k) != 0 {
					b.Set(i*8+k+dx, ty, true)
				}
			}
		}
	}
}

// IsEmpty reports whether no pixel is set.
func (b *Bitmap) IsEmpty() bool {
	for _, v := range b.Bits {
		if v != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Bits {
		n += bits.OnesCount8(v)
	}
	return n
}

// Bounds returns the smallest box containing all set pixels.  The limits
// are inclusive.  For an empty bitmap the inverted box (w-1, 0, h-1, 0)
// is returned.
func (b *Bitmap) Bounds() (xmin, xmax, ymin, ymax int) {
	xmin, xmax = b.Width-1, 0
	ymin, ymax = b.Height-1, 0
	for y := range b.Height {
		row := b.Bits[y*b.Stride : (y+1)*b.Stride]
		first := -1
		for i, v := range row {
			if v != 0 {
				first = i*8 + bits.LeadingZeros8(v)
				break
			}
		}
		if first < 0 {
			continue
		}
		last := first
		for i := len(row) - 1; i >= 0; i-- {
			if v := row[i]; v != 0 {
				last = i*8 + 7 - bits.TrailingZeros8(v)
				break
			}
		}
		xmin = min(xmin, first)
		xmax = max(xmax, last)
		ymin = min(ymin, y)
		ymax = max(ymax, y)
	}
	return xmin, xmax, ymin, ymax
}

// Clone returns an independent copy of b.
func (b *Bitmap) Clone() *Bitmap {
	c := NewBitmap(b.Width, b.Height)
	copy(c.Bits, b.Bits)
	return c
}

// Image returns a black and white image of b, for debugging.
func (b *Bitmap) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		for x := range b.Width {
			if b.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
