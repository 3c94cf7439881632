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

// TrueColorResolver encodes colors by shifting each 8-bit channel into
// the position of the corresponding visual mask.
type TrueColorResolver struct {
	rMask, gMask, bMask    uint32
	rShift, gShift, bShift int // left shift aligning bit 7 with the mask's high bit
}

// NewTrueColor returns the resolver for a true-color or direct-color
// visual.
func NewTrueColor(v Visual) *TrueColorResolver {
	return &TrueColorResolver{
		rMask:  v.RedMask,
		gMask:  v.GreenMask,
		bMask:  v.BlueMask,
		rShift: highBit(v.RedMask) - 7,
		gShift: highBit(v.GreenMask) - 7,
		bShift: highBit(v.BlueMask) - 7,
	}
}

// Resolve implements the [Resolver] interface.
func (t *TrueColorResolver) Resolve(c RGB) Color {
	col := intensities(c)
	col.Pixel = t.Encode(c.Red(), c.Green(), c.Blue())
	return col
}

// Encode packs 8-bit channels into a pixel value.
func (t *TrueColorResolver) Encode(r, g, b uint8) uint32 {
	return place(r, t.rMask, t.rShift) |
		place(g, t.gMask, t.gShift) |
		place(b, t.bMask, t.bShift)
}

// ToRGB implements the [Resolver] interface.
func (t *TrueColorResolver) ToRGB(pixel uint32) RGB {
	return Encode(
		extract(pixel, t.rMask, t.rShift),
		extract(pixel, t.gMask, t.gShift),
		extract(pixel, t.bMask, t.bShift))
}

func place(c uint8, mask uint32, shift int) uint32 {
	v := uint32(c)
	if shift >= 0 {
		v <<= shift
	} else {
		v >>= -shift
	}
	return v & mask
}

func extract(pixel, mask uint32, shift int) uint8 {
	v := pixel & mask
	if shift >= 0 {
		v >>= shift
	} else {
		v <<= -shift
	}
	return uint8(v)
}
