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

package pixel

// Resolver converts between device-independent colors and device pixels.
// Implementations are not safe for concurrent use.
type Resolver interface {
	// Resolve returns the device color used to display c.
	Resolve(c RGB) Color

	// ToRGB returns the color displayed for a device pixel value.
	ToRGB(pixel uint32) RGB
}

// Colormap is the window-system palette of a palette-limited or
// direct-color display.
type Colormap interface {
	// Len returns the number of cells in the colormap.
	Len() int

	// Alloc allocates a read-only cell holding the given intensities.
	// A cell with identical intensities is shared.  The second return
	// value is false if no free cell is left.
	Alloc(r, g, b uint16) (uint32, bool)

	// Query returns the intensities currently stored in a cell.
	Query(pixel uint32) Color

	// Free releases cells obtained from Alloc.
	Free(pixels ...uint32)
}

// NewResolver returns the resolver strategy for v.  Palette-limited
// visuals need the display colormap; it is ignored otherwise.
func NewResolver(v Visual, cm Colormap) Resolver {
	if v.PaletteLimited() {
		return NewPalette(v, cm)
	}
	return NewTrueColor(v)
}
