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
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a non-degenerate line segment in user space.
type segment struct {
	a, b vec.Vec2
	t    vec.Vec2 // unit tangent from a to b
	l    float64
}

func newSegment(a, b vec.Vec2) (segment, bool) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return segment{}, false
	}
	return segment{a: a, b: b, t: d.Mul(1 / l), l: l}, true
}

// normal returns the left normal of the unit vector t.
func normal(t vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -t.Y, Y: t.X}
}

// Stroke calls emit for every pixel run covered by the stroked path, using
// Width, Cap, Join, MiterLimit, Dash and DashPhase.
//
// The stroke is built from one convex polygon per segment, join and cap.
// All polygons are oriented the same way and filled together with the
// nonzero rule, so that overlapping parts are only painted once.
func (f *Filler) Stroke(p *path.Data, emit SpanFunc) {
	f.resetEdges()
	if f.Width <= 0 {
		f.Flatten(p, func(pts []vec.Vec2, closed bool) {
			f.forEachPiece(pts, closed, func(piece []vec.Vec2) {
				f.thinPolyline(piece, emit)
			})
		})
		return
	}
	f.Flatten(p, func(pts []vec.Vec2, closed bool) {
		f.strokeSubpath(pts, closed)
	})
	f.scan(NonZero, emit)
}

// forEachPiece splits a flattened subpath into the visible pieces of the
// dash pattern.  Without a dash pattern the subpath itself is visited,
// with the start point repeated at the end if it is closed.
func (f *Filler) forEachPiece(pts []vec.Vec2, closed bool, visit func(piece []vec.Vec2)) {
	f.poly = append(f.poly[:0], pts...)
	if closed && len(f.poly) > 1 && f.poly[0] != f.poly[len(f.poly)-1] {
		f.poly = append(f.poly, f.poly[0])
	}
	if !f.dashing() {
		visit(f.poly)
		return
	}
	f.applyDash(f.poly, visit)
}

func (f *Filler) strokeSubpath(pts []vec.Vec2, closed bool) {
	if f.dashing() {
		f.forEachPiece(pts, closed, func(piece []vec.Vec2) {
			f.strokeOpen(piece)
		})
		return
	}

	f.segs = f.segs[:0]
	for i := 1; i < len(pts); i++ {
		if s, ok := newSegment(pts[i-1], pts[i]); ok {
			f.segs = append(f.segs, s)
		}
	}
	if closed && len(pts) > 1 {
		if s, ok := newSegment(pts[len(pts)-1], pts[0]); ok {
			f.segs = append(f.segs, s)
		}
	}

	switch {
	case len(f.segs) == 0:
		if len(pts) > 1 {
			f.addDot(pts[0])
		}
	case closed:
		d := f.Width / 2
		for i, s := range f.segs {
			f.addBody(s, d)
			next := f.segs[(i+1)%len(f.segs)]
			f.addJoin(s.b, s.t, next.t, d)
		}
	default:
		f.strokeSegments(f.segs)
	}
}

// strokeOpen strokes an open polyline with caps at both ends.
func (f *Filler) strokeOpen(pts []vec.Vec2) {
	f.segs = f.segs[:0]
	for i := 1; i < len(pts); i++ {
		if s, ok := newSegment(pts[i-1], pts[i]); ok {
			f.segs = append(f.segs, s)
		}
	}
	if len(f.segs) == 0 {
		if len(pts) > 1 {
			f.addDot(pts[0])
		}
		return
	}
	f.strokeSegments(f.segs)
}

func (f *Filler) strokeSegments(segs []segment) {
	d := f.Width / 2
	for i, s := range segs {
		f.addBody(s, d)
		if i > 0 {
			f.addJoin(s.a, segs[i-1].t, s.t, d)
		}
	}
	first, last := segs[0], segs[len(segs)-1]
	f.addCap(first.a, first.t.Mul(-1), d)
	f.addCap(last.b, last.t, d)
}

// addDot handles a zero-length subpath.  Only round and square caps
// produce visible output.
func (f *Filler) addDot(p vec.Vec2) {
	d := f.Width / 2
	switch f.Cap {
	case graphics.LineCapRound:
		f.addCircle(p, d)
	case graphics.LineCapSquare:
		f.addConvex(
			vec.Vec2{X: p.X - d, Y: p.Y - d},
			vec.Vec2{X: p.X + d, Y: p.Y - d},
			vec.Vec2{X: p.X + d, Y: p.Y + d},
			vec.Vec2{X: p.X - d, Y: p.Y + d})
	}
}

func (f *Filler) addBody(s segment, d float64) {
	n := normal(s.t).Mul(d)
	f.addConvex(s.a.Add(n), s.b.Add(n), s.b.Sub(n), s.a.Sub(n))
}

// addCap adds the cap at p.  The unit vector t points away from the line.
func (f *Filler) addCap(p, t vec.Vec2, d float64) {
	switch f.Cap {
	case graphics.LineCapRound:
		f.addCircle(p, d)
	case graphics.LineCapSquare:
		n := normal(t).Mul(d)
		e := t.Mul(d)
		f.addConvex(p.Add(n), p.Add(n).Add(e), p.Sub(n).Add(e), p.Sub(n))
	}
}

// addJoin adds the join at p where the tangent turns from t1 to t2.
func (f *Filler) addJoin(p, t1, t2 vec.Vec2, d float64) {
	cross := t1.X*t2.Y - t1.Y*t2.X
	dot := t1.X*t2.X + t1.Y*t2.Y
	if math.Abs(cross) < collinearityThreshold && dot > 0 {
		return
	}

	if f.Join == graphics.LineJoinRound {
		f.addCircle(p, d)
		return
	}

	// offsets on the outer side of the corner
	o1, o2 := normal(t1).Mul(d), normal(t2).Mul(d)
	if cross > 0 {
		o1, o2 = o1.Mul(-1), o2.Mul(-1)
	}

	if f.Join == graphics.LineJoinMiter {
		cosHalf := math.Sqrt((1 + dot) / 2)
		if cosHalf > 0 && 1/cosHalf <= f.MiterLimit {
			bisector := o1.Add(o2)
			if l := bisector.Length(); l > zeroLengthThreshold {
				tip := p.Add(bisector.Mul(d / (cosHalf * l)))
				f.addConvex(p, p.Add(o1), tip, p.Add(o2))
				return
			}
		}
	}
	f.addConvex(p, p.Add(o1), p.Add(o2))
}

// addCircle approximates a disk of radius r by a regular polygon fine
// enough for the current flatness.
func (f *Filler) addCircle(c vec.Vec2, r float64) {
	rDev := max(f.deviceLength(vec.Vec2{X: r}), f.deviceLength(vec.Vec2{Y: r}))
	n := 8
	if rDev > f.Flatness {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-f.Flatness/rDev))))
	}
	n = min(n, 256)

	f.circle = f.circle[:0]
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		f.circle = append(f.circle, vec.Vec2{X: c.X + r*math.Cos(phi), Y: c.Y + r*math.Sin(phi)})
	}
	f.addPolygon(f.circle)
}

// addConvex adds a convex polygon with counter-clockwise orientation.
func (f *Filler) addConvex(pts ...vec.Vec2) {
	if signedArea(pts) < 0 {
		slices.Reverse(pts)
	}
	f.addPolygon(pts)
}

func signedArea(pts []vec.Vec2) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

func (f *Filler) dashing() bool {
	if len(f.Dash) == 0 {
		return false
	}
	var total float64
	for _, d := range f.Dash {
		if d < 0 {
			return false
		}
		total += d
	}
	return total > 0
}

// applyDash walks the polyline pts and calls visit for every "on" piece
// of the dash pattern.
func (f *Filler) applyDash(pts []vec.Vec2, visit func(piece []vec.Vec2)) {
	var total float64
	for _, d := range f.Dash {
		total += d
	}
	pattern := f.Dash
	if len(pattern)%2 == 1 {
		pattern = append(slices.Clone(pattern), pattern...)
		total *= 2
	}

	idx := 0
	phase := math.Mod(f.DashPhase, total)
	if phase < 0 {
		phase += total
	}
	for phase >= pattern[idx] {
		phase -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	remaining := pattern[idx] - phase
	on := idx%2 == 0

	var piece []vec.Vec2
	if on && len(pts) > 0 {
		piece = append(piece, pts[0])
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := b.Sub(a)
		l := seg.Length()
		pos := 0.0
		for l-pos > remaining {
			pos += remaining
			q := a.Add(seg.Mul(pos / l))
			if on {
				piece = append(piece, q)
				visit(piece)
				piece = piece[:0]
			} else {
				piece = append(piece[:0], q)
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= l - pos
		if on {
			piece = append(piece, b)
		}
	}
	if on && len(piece) > 1 {
		visit(piece)
	}
}

// thinPolyline draws a polyline of one pixel wide segments in device
// space.
func (f *Filler) thinPolyline(pts []vec.Vec2, emit SpanFunc) {
	for i := 1; i < len(pts); i++ {
		f.thinLine(pts[i-1], pts[i], emit)
	}
	if len(pts) == 1 {
		f.thinLine(pts[0], pts[0], emit)
	}
}

// thinLine draws the segment from a to b with Bresenham's algorithm.
// Both end points are included.
func (f *Filler) thinLine(a, b vec.Vec2, emit SpanFunc) {
	ax, ay := f.apply(a)
	bx, by := f.apply(b)
	x0, y0 := int(math.Floor(ax)), int(math.Floor(ay))
	x1, y1 := int(math.Floor(bx)), int(math.Floor(by))

	cx0, cy0 := int(f.Clip.LLx), int(f.Clip.LLy)
	cx1, cy1 := int(f.Clip.URx), int(f.Clip.URy)
	plot := func(x, y int) {
		if x >= cx0 && x < cx1 && y >= cy0 && y < cy1 {
			emit(y, x, x+1)
		}
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
