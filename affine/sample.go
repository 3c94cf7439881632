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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Apply transforms a point.
func Apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Invert returns the inverse of m.
func Invert(m matrix.Matrix) (matrix.Matrix, error) {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 || math.IsNaN(det) || math.IsInf(det, 0) {
		return matrix.Matrix{}, ErrSingular
	}
	a := m[3] / det
	b := -m[1] / det
	c := -m[2] / det
	d := m[0] / det
	return matrix.Matrix{
		a, b,
		c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, nil
}

// Bilinear samples a w×h channel plane at the continuous position
// (x, y).  Pixel (i, j) has its center at (i+0.5, j+0.5).  Positions
// within half a pixel of the border use the border pixels.
func Bilinear(w, h int, plane []uint8, x, y float64) uint8 {
	x0, x1, t := interval(x, w)
	y0, y1, u := interval(y, h)

	f00 := float64(plane[y0*w+x0])
	f10 := float64(plane[y0*w+x1])
	f01 := float64(plane[y1*w+x0])
	f11 := float64(plane[y1*w+x1])

	lo := f00 + t*(f10-f00)
	hi := f01 + t*(f11-f01)
	v := lo + u*(hi-lo)
	return uint8(math.Round(min(max(v, 0), 255)))
}

// interval returns the two pixel indices around x, and the weight of the
// second one.
func interval(x float64, n int) (int, int, float64) {
	switch {
	case x < 0.5:
		return 0, 0, 0
	case x >= float64(n)-0.5:
		return n - 1, n - 1, 0
	}
	i := int(x - 0.5)
	return i, i + 1, x - (float64(i) + 0.5)
}

// Nearest returns the value of the pixel containing (x, y) in a w×h
// plane.  Positions outside the plane use the closest border pixel.
func Nearest(w, h int, plane []uint8, x, y float64) uint8 {
	i := min(max(int(math.Floor(x)), 0), w-1)
	j := min(max(int(math.Floor(y)), 0), h-1)
	return plane[j*w+i]
}
