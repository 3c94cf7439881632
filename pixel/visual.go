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

// Package pixel maps device-independent RGB colors to the pixel values of
// a concrete display, and back.
//
// A display is described by a [Visual]. True-color and direct-color
// visuals encode the channels directly through bit masks; palette-limited
// visuals (depth 8 or less) use indices into a shared [Colormap] of
// limited size. [NewResolver] selects the matching [Resolver] strategy
// for a visual.
package pixel

import (
	"fmt"
	"math/bits"
)

// Class describes how pixel values are turned into colors by a display.
type Class int

const (
	// PseudoColor pixels are indices into a shared colormap.
	PseudoColor Class = iota

	// TrueColor pixels encode red, green and blue through fixed bit masks.
	TrueColor

	// DirectColor pixels encode the channels through bit masks, but each
	// channel is looked up in a small per-channel colormap.
	DirectColor
)

func (c Class) String() string {
	switch c {
	case PseudoColor:
		return "PseudoColor"
	case TrueColor:
		return "TrueColor"
	case DirectColor:
		return "DirectColor"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// ByteOrder is the order in which multi-byte pixels are stored.
type ByteOrder int

const (
	LSBFirst ByteOrder = iota
	MSBFirst
)

// Visual describes the pixel layout and color model of a display.
type Visual struct {
	Class Class

	// Depth is the number of significant bits per pixel.
	Depth int

	// BitsPerPixel is the size of one pixel in memory.  It is at least
	// Depth and usually one of 8, 16, 24 or 32.
	BitsPerPixel int

	// RedMask, GreenMask and BlueMask select the channel bits of a pixel
	// value.  They are zero for PseudoColor visuals.
	RedMask, GreenMask, BlueMask uint32

	Order ByteOrder

	// ColormapSize is the number of entries in the display colormap.
	ColormapSize int
}

// Common visuals.
var (
	XRGB32 = Visual{
		Class: TrueColor, Depth: 24, BitsPerPixel: 32,
		RedMask: 0xff0000, GreenMask: 0x00ff00, BlueMask: 0x0000ff,
		Order: LSBFirst, ColormapSize: 256,
	}
	RGB24 = Visual{
		Class: TrueColor, Depth: 24, BitsPerPixel: 24,
		RedMask: 0xff0000, GreenMask: 0x00ff00, BlueMask: 0x0000ff,
		Order: MSBFirst, ColormapSize: 256,
	}
	RGB565 = Visual{
		Class: TrueColor, Depth: 16, BitsPerPixel: 16,
		RedMask: 0xf800, GreenMask: 0x07e0, BlueMask: 0x001f,
		Order: LSBFirst, ColormapSize: 64,
	}
	RGB555 = Visual{
		Class: TrueColor, Depth: 15, BitsPerPixel: 16,
		RedMask: 0x7c00, GreenMask: 0x03e0, BlueMask: 0x001f,
		Order: LSBFirst, ColormapSize: 32,
	}
	RGB444 = Visual{
		Class: TrueColor, Depth: 12, BitsPerPixel: 16,
		RedMask: 0x0f00, GreenMask: 0x00f0, BlueMask: 0x000f,
		Order: MSBFirst, ColormapSize: 16,
	}
	Mapped8 = Visual{
		Class: PseudoColor, Depth: 8, BitsPerPixel: 8,
		ColormapSize: 256,
	}
)

// PaletteLimited reports whether pixel values of v are colormap indices.
func (v Visual) PaletteLimited() bool {
	return v.Depth <= 8 && v.Class == PseudoColor
}

// TableSize returns the number of color table slots used for v.
// This is zero for visuals which are not palette-limited.
func (v Visual) TableSize() int {
	if !v.PaletteLimited() {
		return 0
	}
	n := 1 << v.Depth
	if v.ColormapSize > 0 && v.ColormapSize < n {
		n = v.ColormapSize
	}
	return min(n, 256)
}

func (v Visual) String() string {
	if v.Class == PseudoColor {
		return fmt.Sprintf("%s/%d", v.Class, v.Depth)
	}
	return fmt.Sprintf("%s/%d r%06x g%06x b%06x", v.Class, v.Depth,
		v.RedMask, v.GreenMask, v.BlueMask)
}

// highBit returns the position of the highest set bit in x, or -1 if x
// is zero.
func highBit(x uint32) int {
	return 31 - bits.LeadingZeros32(x)
}
