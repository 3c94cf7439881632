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

// Package raster converts paths into runs of device pixels.
//
// Unlike an anti-aliasing rasterizer, a [Filler] makes a binary decision
// for every pixel: a pixel belongs to a shape if and only if its center
// lies inside the shape.  This is what 1-bit clip masks, regions and
// palette displays need.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// SpanFunc receives the pixels [x0, x1) of scanline y.
type SpanFunc func(y, x0, x1 int)

// Rule selects how the inside of a self-intersecting shape is determined.
type Rule int

const (
	NonZero Rule = iota
	EvenOdd
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

func (e *edge) yMin() float64 { return min(e.y0, e.y1) }
func (e *edge) yMax() float64 { return max(e.y0, e.y1) }

// crossing is the intersection of an edge with a scanline center.
type crossing struct {
	x   float64
	dir int
}

// Filler converts paths to pixel spans.  Create one instance and reuse it
// for many shapes; the internal buffers grow as needed but never shrink.
//
// A Filler is not safe for concurrent use.
type Filler struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip restricts output to this integer-aligned device rectangle.
	Clip rect.Rect

	// Flatness is the curve approximation tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in user space.  Zero selects thin lines
	// which are exactly one pixel wide.
	Width float64

	Cap        graphics.LineCapStyle
	Join       graphics.LineJoinStyle
	MiterLimit float64

	// Dash lists alternating on/off lengths in user space.  Nil means
	// solid lines.
	Dash      []float64
	DashPhase float64

	edges  []edge
	active []int
	xs     []crossing

	// bounding box of the collected edges in device space
	edgeBBoxFirst bool
	edgeXMin      float64
	edgeXMax      float64
	edgeYMin      float64
	edgeYMax      float64

	// stroking state
	segs   []segment
	poly   []vec.Vec2
	circle []vec.Vec2
}

// New returns a Filler with the given clip rectangle, an identity CTM and
// thin solid lines.
func New(clip rect.Rect) *Filler {
	return &Filler{
		CTM:        matrix.Identity,
		Clip:       clip,
		Flatness:   defaultFlatness,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,
	}
}

// Fill calls emit for every pixel run inside the path.  Open subpaths
// are closed implicitly.
func (f *Filler) Fill(p *path.Data, rule Rule, emit SpanFunc) {
	f.resetEdges()
	f.collectPathEdges(p)
	f.scan(rule, emit)
}

// Polygon fills the polygon with the given vertices in user space.
func (f *Filler) Polygon(pts []vec.Vec2, rule Rule, emit SpanFunc) {
	f.resetEdges()
	f.addPolygon(pts)
	f.scan(rule, emit)
}

func (f *Filler) resetEdges() {
	f.edges = f.edges[:0]
	f.edgeBBoxFirst = true
}

func (f *Filler) collectPathEdges(p *path.Data) {
	var current, start vec.Vec2
	open := false
	closeSub := func() {
		if open && current != start {
			f.addEdge(current, start)
		}
		current = start
		open = false
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			closeSub()
			current = p.Coords[k]
			start = current
			open = true
			k++
		case path.CmdLineTo:
			f.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			f.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], f.addEdge)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			f.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], f.addEdge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			closeSub()
		}
	}
	closeSub()
}

func (f *Filler) addPolygon(pts []vec.Vec2) {
	n := len(pts)
	if n < 3 {
		return
	}
	for i := range n {
		f.addEdge(pts[i], pts[(i+1)%n])
	}
}

// addEdge transforms a user space segment to device space and records it.
func (f *Filler) addEdge(p0, p1 vec.Vec2) {
	x0, y0 := f.apply(p0)
	x1, y1 := f.apply(p1)

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	f.edges = append(f.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if f.edgeBBoxFirst {
		f.edgeXMin, f.edgeXMax = min(x0, x1), max(x0, x1)
		f.edgeYMin, f.edgeYMax = min(y0, y1), max(y0, y1)
		f.edgeBBoxFirst = false
	} else {
		f.edgeXMin = min(f.edgeXMin, x0, x1)
		f.edgeXMax = max(f.edgeXMax, x0, x1)
		f.edgeYMin = min(f.edgeYMin, y0, y1)
		f.edgeYMax = max(f.edgeYMax, y0, y1)
	}
}

func (f *Filler) apply(p vec.Vec2) (float64, float64) {
	m := f.CTM
	return m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]
}

// scan samples every scanline at its pixel centers and emits the runs of
// pixels whose centers are inside the collected edges.
func (f *Filler) scan(rule Rule, emit SpanFunc) {
	if len(f.edges) == 0 {
		return
	}

	clipXMin, clipXMax := int(f.Clip.LLx), int(f.Clip.URx)
	yMin := max(int(math.Floor(f.edgeYMin)), int(f.Clip.LLy))
	yMax := min(int(math.Ceil(f.edgeYMax)), int(f.Clip.URy))
	if yMin >= yMax || clipXMin >= clipXMax {
		return
	}

	slices.SortFunc(f.edges, func(a, b edge) int {
		return cmp.Compare(a.yMin(), b.yMin())
	})

	f.active = f.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yc := float64(y) + 0.5

		for next < len(f.edges) && f.edges[next].yMin() <= yc {
			f.active = append(f.active, next)
			next++
		}

		f.xs = f.xs[:0]
		for i := 0; i < len(f.active); {
			e := &f.edges[f.active[i]]
			if e.yMax() <= yc {
				f.active[i] = f.active[len(f.active)-1]
				f.active = f.active[:len(f.active)-1]
				continue
			}
			i++
			if e.yMin() > yc {
				continue
			}
			dir := 1
			if e.y1 < e.y0 {
				dir = -1
			}
			f.xs = append(f.xs, crossing{x: e.x0 + e.dxdy*(yc-e.y0), dir: dir})
		}
		if len(f.xs) < 2 {
			continue
		}
		slices.SortFunc(f.xs, func(a, b crossing) int {
			return cmp.Compare(a.x, b.x)
		})

		winding := 0
		var left float64
		for _, c := range f.xs {
			wasInside := inside(winding, rule)
			winding += c.dir
			isInside := inside(winding, rule)
			switch {
			case !wasInside && isInside:
				left = c.x
			case wasInside && !isInside:
				x0 := max(pixelStart(left), clipXMin)
				x1 := min(pixelStart(c.x), clipXMax)
				if x0 < x1 {
					emit(y, x0, x1)
				}
			}
		}
	}
}

func inside(winding int, rule Rule) bool {
	if rule == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// pixelStart returns the first pixel whose center is at or right of x.
func pixelStart(x float64) int {
	return int(math.Ceil(x - 0.5))
}

const (
	defaultFlatness   = 0.25
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6
)
