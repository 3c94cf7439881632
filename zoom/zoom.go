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

// Package zoom computes nearest-neighbour resampling tables for scaling
// images along one axis.
package zoom

// Table returns, for every destination index d in [0, destExtent), the
// source index srcOffset + floor(d*srcExtent/destExtent).  Indices are
// clamped to [srcOffset, srcOffset+srcExtent).  The result is
// non-decreasing.
//
// Table returns nil if destExtent or srcExtent is not positive.
func Table(destExtent, srcExtent, srcOffset int) []int {
	if destExtent <= 0 || srcExtent <= 0 {
		return nil
	}
	t := make([]int, destExtent)
	last := srcOffset + srcExtent - 1
	for d := range t {
		s := srcOffset + int(int64(d)*int64(srcExtent)/int64(destExtent))
		t[d] = min(s, last)
	}
	return t
}

// Span describes the visible part of a scaled image along one axis.
type Span struct {
	// Dest and DestLen give the visible destination range.
	Dest, DestLen int

	// Src and SrcLen give the source range which is mapped onto it.
	Src, SrcLen int
}

// Fit clips the placement of a source range onto a destination axis.
//
// The source range [srcMin, srcMin+srcExtent) is scaled to cover the
// destination range [pos, pos+size), which is then clipped to [0, extent).
// The source range is cropped in proportion.  If flip is set, the source
// runs in the opposite direction of the destination axis, so that cutting
// off the start of the destination removes the end of the source.
//
// The second return value is false if nothing is visible.
func Fit(extent, pos, size, srcMin, srcExtent int, flip bool) (Span, bool) {
	if size <= 0 || srcExtent <= 0 || extent <= 0 {
		return Span{}, false
	}
	d0 := max(pos, 0)
	d1 := min(pos+size, extent)
	if d0 >= d1 {
		return Span{}, false
	}

	lead := d0 - pos
	trail := pos + size - d1
	if flip {
		lead, trail = trail, lead
	}

	s0 := srcMin + lead*srcExtent/size
	s1 := srcMin + srcExtent - trail*srcExtent/size
	if s1 <= s0 {
		s1 = s0 + 1
	}
	return Span{Dest: d0, DestLen: d1 - d0, Src: s0, SrcLen: s1 - s0}, true
}
