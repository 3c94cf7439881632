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

// AppendArc appends an elliptical arc to p, as a sequence of cubic Bézier
// curves.  The ellipse has center c and radii rx, ry; the arc runs
// counter-clockwise from angle a1 to a2 (in degrees).  If a2 <= a1, a full
// turn is added to a2.
//
// If connect is true, the arc is joined to the current point of p with a
// straight line, otherwise a new subpath is started.
func AppendArc(p *path.Data, c vec.Vec2, rx, ry, a1, a2 float64, connect bool) *path.Data {
	if a2 <= a1 {
		a2 += 360
	}
	t1 := a1 * math.Pi / 180
	t2 := a2 * math.Pi / 180

	at := func(t float64) vec.Vec2 {
		return vec.Vec2{X: c.X + rx*math.Cos(t), Y: c.Y + ry*math.Sin(t)}
	}
	deriv := func(t float64) vec.Vec2 {
		return vec.Vec2{X: -rx * math.Sin(t), Y: ry * math.Cos(t)}
	}

	start := at(t1)
	if connect {
		p = p.LineTo(start)
	} else {
		p = p.MoveTo(start)
	}

	n := int(math.Ceil((t2 - t1) / (math.Pi / 2)))
	n = max(n, 1)
	step := (t2 - t1) / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := range n {
		s := t1 + float64(i)*step
		e := s + step
		p0, p3 := at(s), at(e)
		p = p.CubeTo(p0.Add(deriv(s).Mul(k)), p3.Sub(deriv(e).Mul(k)), p3)
	}
	return p
}
