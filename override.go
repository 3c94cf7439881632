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

import "seehuhn.de/go/canvas/device"

// override is a temporary change of the surface state.  Every change is
// undone by release, which restores the state recorded in the canvas.
//
//	o := c.override().solid()
//	defer o.release()
type override struct {
	c       *Canvas
	fg      bool
	fill    bool
	applied bool
}

func (c *Canvas) override() *override {
	return &override{c: c}
}

// solid paints filled shapes in the foreground color.
func (o *override) solid() *override {
	if o.c.fill.Kind != device.FillSolid {
		o.c.surf.SetFill(device.FillStyle{Kind: device.FillSolid})
		o.fill = true
	}
	return o
}

// foreground changes the foreground pixel value.
func (o *override) foreground(p uint32) *override {
	o.c.surf.SetForeground(p)
	o.fg = true
	return o
}

// release restores the surface state.  Calling release more than once
// has no effect.
func (o *override) release() {
	if o.applied {
		return
	}
	o.applied = true
	c := o.c
	if o.fg {
		c.surf.SetForeground(c.fgPix)
	}
	if o.fill {
		c.surf.SetFill(c.fill)
	}
}
