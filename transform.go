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
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/canvas/affine"
)

// Transform sets a transformation which is applied to all coordinates
// before drawing.  The matrix maps canvas coordinates, with the origin in
// the bottom-left corner, to canvas coordinates.  A nil matrix removes the
// transformation.
//
// Singular matrices are rejected.
func (c *Canvas) Transform(m *matrix.Matrix) {
	if m == nil {
		c.matrix = nil
	} else {
		if _, err := affine.Invert(*m); err != nil {
			c.report("Transform", err)
			return
		}
		mm := *m
		c.matrix = &mm
	}
	c.rotation = rotation{}

	// the clip rectangle follows the transformation
	c.areaMask = nil
	if c.clipMode == ClipArea {
		c.applyClip()
	}
}

// Matrix returns the current transformation.  The second return value is
// false if there is none.
func (c *Canvas) Matrix() (matrix.Matrix, bool) {
	if c.matrix == nil {
		return matrix.Identity, false
	}
	return *c.matrix, true
}

type rotation struct {
	angle  float64
	cx, cy float64
}

// Rotate sets a transformation which rotates the drawing by angle degrees
// counter-clockwise around (cx, cy).  It replaces any previous
// transformation.  An angle of 0 removes the transformation.
func (c *Canvas) Rotate(angle, cx, cy float64) {
	if angle == 0 {
		c.Transform(nil)
		return
	}
	s, co := math.Sincos(angle * math.Pi / 180)
	m := matrix.Matrix{
		co, s,
		-s, co,
		cx - co*cx + s*cy,
		cy - s*cx - co*cy,
	}
	c.Transform(&m)
	c.rotation = rotation{angle: angle, cx: cx, cy: cy}
}

// Rotation returns the parameters of the last call to [Canvas.Rotate], if
// the rotation is still in effect.
func (c *Canvas) Rotation() (angle, cx, cy float64) {
	r := c.rotation
	return r.angle, r.cx, r.cy
}
