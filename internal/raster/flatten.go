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

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// deviceLength returns the length of v after the linear part of the CTM
// has been applied.
func (f *Filler) deviceLength(v vec.Vec2) float64 {
	m := f.CTM
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}.Length()
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
// The number of segments is chosen so that the deviation in device space
// stays below f.Flatness.
func (f *Filler) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25)

	n := 1
	if d := f.deviceLength(e); d > f.Flatness {
		n = int(math.Ceil(math.Sqrt(d / f.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the segment count.
func (f *Filler) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)

	n := 1
	if m := max(f.deviceLength(d1), f.deviceLength(d2)); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * f.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

// Flatten returns the vertices of every subpath of p, with all curves
// replaced by line segments.  Each subpath is reported together with a
// flag indicating whether it was explicitly closed.  The slice passed to
// yield is only valid during the call.
func (f *Filler) Flatten(p *path.Data, yield func(pts []vec.Vec2, closed bool)) {
	var pts []vec.Vec2
	var current vec.Vec2
	flush := func(closed bool) {
		if len(pts) > 0 {
			yield(pts, closed)
		}
		pts = pts[:0]
	}
	begin := func() {
		if len(pts) == 0 {
			pts = append(pts, current)
		}
	}
	add := func(_, to vec.Vec2) { pts = append(pts, to) }

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush(false)
			current = p.Coords[k]
			pts = append(pts, current)
			k++
		case path.CmdLineTo:
			begin()
			current = p.Coords[k]
			pts = append(pts, current)
			k++
		case path.CmdQuadTo:
			begin()
			f.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], add)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			begin()
			f.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], add)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if len(pts) > 0 {
				current = pts[0]
				flush(true)
			}
		}
	}
	flush(false)
}
