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

// Package region implements clip regions built from boolean combinations
// of shapes, stored as 1-bit bitmaps.
//
// A [Region] owns two bitmaps of the canvas size: the accumulated region
// and a scratch bitmap on which each new shape is drawn before it is
// combined into the accumulator.
package region

import (
	"errors"
	"fmt"
)

// ErrNoRegion is returned for region operations when no region is active.
var ErrNoRegion = errors.New("no active region")

// Mode selects how a new shape is combined with a region.
type Mode int

const (
	Union Mode = iota
	Intersect
	Difference
	NotIntersect // symmetric difference
)

func (m Mode) String() string {
	switch m {
	case Union:
		return "union"
	case Intersect:
		return "intersect"
	case Difference:
		return "difference"
	case NotIntersect:
		return "notintersect"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Op returns the raster operation implementing m.
func (m Mode) Op() Op {
	switch m {
	case Intersect:
		return OpAnd
	case Difference:
		return OpAndNot
	case NotIntersect:
		return OpXor
	default:
		return OpOr
	}
}

// Region is an accumulated clip region.
type Region struct {
	acc     *Bitmap
	scratch *Bitmap
}

// New returns an empty region of the given size.
func New(w, h int) *Region {
	return &Region{
		acc:     NewBitmap(w, h),
		scratch: NewBitmap(w, h),
	}
}

// Size returns the dimensions of the region bitmap.
func (r *Region) Size() (w, h int) {
	return r.acc.Width, r.acc.Height
}

// Bitmap returns the accumulated region.  The bitmap is owned by r.
func (r *Region) Bitmap() *Bitmap {
	return r.acc
}

// Combine draws a shape and merges it into the region.  The draw function
// receives the cleared scratch bitmap and sets the pixels of the shape.
func (r *Region) Combine(mode Mode, draw func(shape *Bitmap)) {
	r.scratch.Clear()
	draw(r.scratch)
	r.acc.Compose(mode.Op(), r.scratch)
}

// CombineRect merges the rectangle [x0, x1) × [y0, y1) into the region.
func (r *Region) CombineRect(mode Mode, x0, y0, x1, y1 int) {
	r.Combine(mode, func(b *Bitmap) { b.FillRect(x0, y0, x1, y1) })
}

// Offset moves the region by (dx, dy).  Parts moved outside the bitmap are
// dropped.
func (r *Region) Offset(dx, dy int) {
	r.scratch.CopyShifted(r.acc, dx, dy)
	r.acc.Compose(OpCopy, r.scratch)
}

// Contains reports whether (x, y) belongs to the region.
func (r *Region) Contains(x, y int) bool {
	return r.acc.Get(x, y)
}

// Bounds returns the inclusive bounding box of the region.  An empty
// region gives the inverted box (w-1, 0, h-1, 0); use [Region.IsEmpty] to
// tell the cases apart.
func (r *Region) Bounds() (xmin, xmax, ymin, ymax int) {
	return r.acc.Bounds()
}

// IsEmpty reports whether the region contains no pixel.
func (r *Region) IsEmpty() bool {
	return r.acc.IsEmpty()
}
