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

import "fmt"

// RGB is a device-independent 24-bit color of the form 0xRRGGBB.
type RGB uint32

// Frequently used colors.
const (
	Black RGB = 0x000000
	White RGB = 0xffffff
	Red   RGB = 0xff0000
	Green RGB = 0x00ff00
	Blue  RGB = 0x0000ff
)

// Encode packs three 8-bit channels into an RGB value.
func Encode(r, g, b uint8) RGB {
	return RGB(r)<<16 | RGB(g)<<8 | RGB(b)
}

// Red returns the red channel of c.
func (c RGB) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel of c.
func (c RGB) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel of c.
func (c RGB) Blue() uint8 { return uint8(c) }

func (c RGB) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Color is a device color: a pixel value together with the 16-bit channel
// intensities it was derived from.
type Color struct {
	Pixel   uint32
	R, G, B uint16
}

// RGB returns the 8-bit channels of c.
func (c Color) RGB() RGB {
	return Encode(narrow(c.R), narrow(c.G), narrow(c.B))
}

// intensities returns a Color with the channels of c and no pixel value.
func intensities(c RGB) Color {
	return Color{R: widen(c.Red()), G: widen(c.Green()), B: widen(c.Blue())}
}

// widen maps [0, 255] onto [0, 65535].
func widen(c uint8) uint16 { return uint16(c)<<8 | uint16(c) }

// narrow maps [0, 65535] onto [0, 255].
func narrow(c uint16) uint8 { return uint8(c >> 8) }
