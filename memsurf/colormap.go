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

package memsurf

import "seehuhn.de/go/canvas/pixel"

// Colormap simulates the shared colormap of a window system.  Cells are
// allocated read-only and shared between all clients asking for the same
// intensities.
type Colormap struct {
	cells []pixel.Color
	refs  []int

	// Allocs counts the calls to Alloc.
	Allocs int
}

// NewColormap returns a colormap with n free cells.
func NewColormap(n int) *Colormap {
	return &Colormap{
		cells: make([]pixel.Color, n),
		refs:  make([]int, n),
	}
}

// Len implements the [pixel.Colormap] interface.
func (c *Colormap) Len() int {
	return len(c.cells)
}

// Alloc implements the [pixel.Colormap] interface.
func (c *Colormap) Alloc(r, g, b uint16) (uint32, bool) {
	c.Allocs++
	for i, cell := range c.cells {
		if c.refs[i] > 0 && cell.R == r && cell.G == g && cell.B == b {
			c.refs[i]++
			return uint32(i), true
		}
	}
	for i := range c.cells {
		if c.refs[i] == 0 {
			c.cells[i] = pixel.Color{Pixel: uint32(i), R: r, G: g, B: b}
			c.refs[i] = 1
			return uint32(i), true
		}
	}
	return 0, false
}

// Query implements the [pixel.Colormap] interface.
func (c *Colormap) Query(p uint32) pixel.Color {
	if int(p) >= len(c.cells) {
		return pixel.Color{Pixel: p}
	}
	return c.cells[p]
}

// Free implements the [pixel.Colormap] interface.
func (c *Colormap) Free(pixels ...uint32) {
	for _, p := range pixels {
		if int(p) < len(c.refs) && c.refs[p] > 0 {
			c.refs[p]--
		}
	}
}

// Reserve allocates cells on behalf of another client.  It returns the
// number of colors which could be allocated.
func (c *Colormap) Reserve(colors ...pixel.RGB) int {
	n := 0
	for _, rgb := range colors {
		col := rgb16(rgb)
		if _, ok := c.Alloc(col.R, col.G, col.B); ok {
			n++
		}
	}
	return n
}

// Store replaces the contents of a cell, as another client with a
// writable cell would do.
func (c *Colormap) Store(p uint32, rgb pixel.RGB) {
	if int(p) >= len(c.cells) {
		return
	}
	col := rgb16(rgb)
	col.Pixel = p
	c.cells[p] = col
}

// Used returns the number of allocated cells.
func (c *Colormap) Used() int {
	n := 0
	for _, r := range c.refs {
		if r > 0 {
			n++
		}
	}
	return n
}

func rgb16(c pixel.RGB) pixel.Color {
	return pixel.Color{
		R: uint16(c.Red()) * 0x101,
		G: uint16(c.Green()) * 0x101,
		B: uint16(c.Blue()) * 0x101,
	}
}
