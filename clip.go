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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/region"
)

// ClipMode selects what restricts drawing.
type ClipMode int

const (
	ClipOff ClipMode = iota
	ClipArea
	ClipPolygon
	ClipRegion
)

// Clip selects the clip mode and returns the previous one.  ClipPolygon
// uses the polygon defined with [Canvas.Poly] and mode [PolyClip]; ClipRegion
// uses the region built after [Canvas.NewRegion].  If the polygon or
// region does not exist, drawing is not restricted.
func (c *Canvas) Clip(mode ClipMode) ClipMode {
	old := c.clipMode
	if mode < ClipOff || mode > ClipRegion {
		return old
	}
	c.clipMode = mode
	c.applyClip()
	return old
}

// ClipMode returns the current clip mode.
func (c *Canvas) ClipMode() ClipMode {
	return c.clipMode
}

// SetClipArea sets the rectangle used in mode ClipArea.  The limits are
// inclusive.
func (c *Canvas) SetClipArea(xmin, xmax, ymin, ymax int) {
	c.clipRect = [4]int{xmin, xmax, ymin, ymax}
	c.areaMask = nil
	if c.clipMode == ClipArea {
		c.applyClip()
	}
}

// GetClipArea returns the rectangle used in mode ClipArea.
func (c *Canvas) GetClipArea() (xmin, xmax, ymin, ymax int) {
	r := c.clipRect
	return r[0], r[1], r[2], r[3]
}

// applyClip installs the clip mask for the current mode.
func (c *Canvas) applyClip() {
	var mask *region.Bitmap
	switch c.clipMode {
	case ClipArea:
		if c.areaMask == nil {
			c.areaMask = c.buildAreaMask()
		}
		mask = c.areaMask
	case ClipPolygon:
		mask = c.clipPolygon
	case ClipRegion:
		if c.region != nil {
			mask = c.region.Bitmap()
		}
	}
	c.clipMask = mask
	c.comp.Clip = mask
	c.surf.SetClipMask(mask)
}

// buildAreaMask rasterizes the clip rectangle.  Under a transformation
// the rectangle becomes a polygon.
func (c *Canvas) buildAreaMask() *region.Bitmap {
	xmin, xmax, ymin, ymax := c.GetClipArea()
	b := region.NewBitmap(c.width, c.height)
	if c.matrix == nil {
		b.FillRect(xmin, c.deviceRow(ymax), xmax+1, c.deviceRow(ymin)+1)
		return b
	}
	x0, y0 := float64(xmin), float64(ymin)
	x1, y1 := float64(xmax+1), float64(ymax+1)
	b.FillPolygon([]vec.Vec2{
		c.edge(x0, y0), c.edge(x1, y0), c.edge(x1, y1), c.edge(x0, y1),
	}, false)
	return b
}

// setClipPolygon replaces the clip polygon.  The points are in device
// space.
func (c *Canvas) setClipPolygon(pts []vec.Vec2) {
	b := region.NewBitmap(c.width, c.height)
	b.FillPolygon(pts, c.evenOdd())
	c.clipPolygon = b
	if c.clipMode == ClipPolygon {
		c.applyClip()
	}
}

// NewRegion starts a new, empty region.  Until [Canvas.EndRegion] is
// called, the filled shapes drawn by Box, Sector, Chord, Poly with mode
// Fill and Text are combined into the region instead of being drawn.
func (c *Canvas) NewRegion() {
	c.region = region.New(c.width, c.height)
	c.buildMode = true
	if c.clipMode == ClipRegion {
		c.applyClip()
	}
}

// EndRegion stops adding shapes to the region.  The region is kept and
// can be used for clipping.
func (c *Canvas) EndRegion() {
	c.buildMode = false
}

// SetRegionCombineMode sets how shapes are combined with the region.
func (c *Canvas) SetRegionCombineMode(m region.Mode) region.Mode {
	old := c.combine
	c.combine = m
	return old
}

// building reports whether shapes go into the region.
func (c *Canvas) building() bool {
	return c.buildMode && c.region != nil
}

// combineShape draws a shape into the region.  The draw function sets the
// pixels of the shape in device space.
func (c *Canvas) combineShape(draw func(shape *region.Bitmap)) {
	c.region.Combine(c.combine, draw)
}

// OffsetRegion moves the region.  Parts moved off the canvas are lost.
func (c *Canvas) OffsetRegion(dx, dy int) {
	if c.region == nil {
		c.report("OffsetRegion", region.ErrNoRegion)
		return
	}
	c.region.Offset(dx, -dy)
}

// IsPointInRegion reports whether pixel (x, y) belongs to the region.
func (c *Canvas) IsPointInRegion(x, y int) bool {
	if c.region == nil {
		return false
	}
	return c.region.Contains(x, c.deviceRow(y))
}

// RegionBox returns the bounding box of the region, with inclusive
// limits.  An empty region gives the inverted box (w-1, 0, h-1, 0).
func (c *Canvas) RegionBox() (xmin, xmax, ymin, ymax int, err error) {
	if c.region == nil {
		return 0, 0, 0, 0, region.ErrNoRegion
	}
	xmin, xmax, dmin, dmax := c.region.Bounds()
	if c.region.IsEmpty() {
		return c.width - 1, 0, c.height - 1, 0, nil
	}
	return xmin, xmax, c.deviceRow(dmax), c.deviceRow(dmin), nil
}
