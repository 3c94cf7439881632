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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/internal/raster"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
)

// PolyMode selects what [Canvas.Poly] does with its points.
type PolyMode int

const (
	// Fill fills the polygon using the interior style and fill rule.
	Fill PolyMode = iota

	// ClosedLines draws the outline of the polygon.
	ClosedLines

	// OpenLines draws a polyline.
	OpenLines

	// PolyClip makes the polygon the clip polygon.
	PolyClip

	// Bezier draws a sequence of cubic Bézier curves.  The first point
	// starts the curve, each following group of three points gives two
	// control points and an end point.
	Bezier
)

// Line draws a line from (x1, y1) to (x2, y2).  Both end points are
// drawn.
func (c *Canvas) Line(x1, y1, x2, y2 int) {
	o := c.override().solid()
	defer o.release()

	a := c.center(float64(x1), float64(y1))
	b := c.center(float64(x2), float64(y2))
	c.report("Line", c.surf.DrawLine(a.X, a.Y, b.X, b.Y))
}

// Rect draws the outline of a rectangle.  The limits are inclusive.
func (c *Canvas) Rect(xmin, xmax, ymin, ymax int) {
	xmin, xmax = min(xmin, xmax), max(xmin, xmax)
	ymin, ymax = min(ymin, ymax), max(ymin, ymax)

	o := c.override().solid()
	defer o.release()

	x0, y0, x1, y1 := float64(xmin), float64(ymin), float64(xmax), float64(ymax)
	pts := []vec.Vec2{
		c.center(x0, y0), c.center(x1, y0), c.center(x1, y1), c.center(x0, y1), c.center(x0, y0),
	}
	c.report("Rect", c.surf.DrawLines(pts))
}

// Box fills a rectangle.  The limits are inclusive.
func (c *Canvas) Box(xmin, xmax, ymin, ymax int) {
	xmin, xmax = min(xmin, xmax), max(xmin, xmax)
	ymin, ymax = min(ymin, ymax), max(ymin, ymax)

	if c.interior == Hollow && !c.building() {
		c.Rect(xmin, xmax, ymin, ymax)
		return
	}

	if c.matrix == nil {
		x, y := xmin, c.deviceRow(ymax)
		w, h := xmax-xmin+1, ymax-ymin+1
		if c.building() {
			c.combineShape(func(b *region.Bitmap) { b.FillRect(x, y, x+w, y+h) })
			return
		}
		c.report("Box", c.surf.FillRect(x, y, w, h))
		return
	}

	x0, y0, x1, y1 := float64(xmin), float64(ymin), float64(xmax+1), float64(ymax+1)
	c.fillPolygon("Box", []vec.Vec2{
		c.edge(x0, y0), c.edge(x1, y0), c.edge(x1, y1), c.edge(x0, y1),
	})
}

// Arc draws an elliptical arc.  The ellipse has center (xc, yc), width w
// and height h.  The arc runs counter-clockwise from angle a1 to angle a2,
// in degrees.
func (c *Canvas) Arc(xc, yc, w, h int, a1, a2 float64) {
	p, ok := arcPath(xc, yc, w, h, a1, a2, false)
	if !ok {
		return
	}
	o := c.override().solid()
	defer o.release()
	c.report("Arc", c.surf.StrokePath(c.devicePath(p)))
}

// Sector fills an elliptical pie slice.  The parameters are as for
// [Canvas.Arc].
func (c *Canvas) Sector(xc, yc, w, h int, a1, a2 float64) {
	p, ok := arcPath(xc, yc, w, h, a1, a2, true)
	if !ok {
		return
	}
	c.fillPath("Sector", c.devicePath(p.Close()))
}

// Chord fills the area between an elliptical arc and the line joining
// its end points.  The parameters are as for [Canvas.Arc].
func (c *Canvas) Chord(xc, yc, w, h int, a1, a2 float64) {
	p, ok := arcPath(xc, yc, w, h, a1, a2, false)
	if !ok {
		return
	}
	c.fillPath("Chord", c.devicePath(p.Close()))
}

// arcPath returns an elliptical arc in canvas coordinates.  If sector is
// set, the path starts at the center.
func arcPath(xc, yc, w, h int, a1, a2 float64, sector bool) (*path.Data, bool) {
	if w <= 0 || h <= 0 || math.IsNaN(a1) || math.IsNaN(a2) || math.IsInf(a1, 0) || math.IsInf(a2, 0) {
		return nil, false
	}
	ctr := vec.Vec2{X: float64(xc), Y: float64(yc)}
	p := &path.Data{}
	if sector {
		p = p.MoveTo(ctr)
	}
	p = raster.AppendArc(p, ctr, float64(w)/2, float64(h)/2, a1, a2, sector)
	return p, true
}

// Poly draws a polygon given by its vertices.  See [PolyMode] for the
// available modes.  Too few points for the mode are ignored.
func (c *Canvas) Poly(mode PolyMode, pts []vec.Vec2) {
	if mode == Bezier {
		c.bezier(pts)
		return
	}

	dev := make([]vec.Vec2, len(pts))
	for i, p := range pts {
		dev[i] = c.center(p.X, p.Y)
	}

	switch mode {
	case Fill:
		if len(dev) < 3 {
			return
		}
		c.fillPolygon("Poly", dev)
	case ClosedLines:
		if len(dev) < 2 {
			return
		}
		c.polyline("Poly", append(dev, dev[0]))
	case OpenLines:
		if len(dev) < 2 {
			return
		}
		c.polyline("Poly", dev)
	case PolyClip:
		if len(dev) < 3 {
			return
		}
		c.setClipPolygon(dev)
	}
}

// Begin starts collecting the vertices of a polygon.
func (c *Canvas) Begin(mode PolyMode) {
	c.polyMode = mode
	c.polyPts = c.polyPts[:0]
	c.inPoly = true
}

// Vertex adds a vertex to the polygon started by [Canvas.Begin].
func (c *Canvas) Vertex(x, y int) {
	if !c.inPoly {
		return
	}
	c.polyPts = append(c.polyPts, vec.Vec2{X: float64(x), Y: float64(y)})
}

// End draws the polygon started by [Canvas.Begin].
func (c *Canvas) End() {
	if !c.inPoly {
		return
	}
	c.inPoly = false
	c.Poly(c.polyMode, c.polyPts)
}

func (c *Canvas) bezier(pts []vec.Vec2) {
	n := (len(pts) - 1) / 3
	if n < 1 {
		return
	}
	p := (&path.Data{}).MoveTo(pts[0])
	for i := range n {
		p = p.CubeTo(pts[3*i+1], pts[3*i+2], pts[3*i+3])
	}
	o := c.override().solid()
	defer o.release()
	c.report("Poly", c.surf.StrokePath(c.devicePath(p)))
}

func (c *Canvas) polyline(op string, dev []vec.Vec2) {
	o := c.override().solid()
	defer o.release()
	c.report(op, c.surf.DrawLines(dev))
}

// fillPolygon fills a polygon given in device space, or adds it to the
// region.
func (c *Canvas) fillPolygon(op string, dev []vec.Vec2) {
	if c.building() {
		c.combineShape(func(b *region.Bitmap) { b.FillPolygon(dev, c.evenOdd()) })
		return
	}
	if c.interior == Hollow {
		c.polyline(op, append(dev, dev[0]))
		return
	}
	c.report(op, c.surf.FillPolygon(dev, c.evenOdd()))
}

// fillPath fills a path given in device space, or adds it to the region.
func (c *Canvas) fillPath(op string, p *path.Data) {
	if c.building() {
		c.combineShape(func(b *region.Bitmap) { b.FillPath(p, false) })
		return
	}
	if c.interior == Hollow {
		o := c.override().solid()
		defer o.release()
		c.report(op, c.surf.StrokePath(p))
		return
	}
	c.report(op, c.surf.FillPath(p, false))
}

// Pixel sets a single pixel to the given color.
func (c *Canvas) Pixel(x, y int, col pixel.RGB) {
	p := c.fgPix
	if col != c.fg {
		p = c.res.Resolve(col).Pixel
	}
	o := c.override().foreground(p)
	defer o.release()

	d := c.center(float64(x), float64(y))
	c.report("Pixel", c.surf.DrawPoint(int(math.Floor(d.X)), int(math.Floor(d.Y))))
}

// Clear fills the canvas with the background color.  The clip mask and
// the write mode apply.
func (c *Canvas) Clear() {
	o := c.override().solid().foreground(c.bgPix)
	defer o.release()
	c.report("Clear", c.surf.FillRect(0, 0, c.width, c.height))
}
