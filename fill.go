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
	"fmt"

	"seehuhn.de/go/canvas/device"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
	"seehuhn.de/go/canvas/zoom"
)

// InteriorStyle selects how filled shapes are painted.
type InteriorStyle int

const (
	Solid InteriorStyle = iota
	Hatch
	Stipple
	Pattern

	// Hollow draws the outline of filled shapes instead of their
	// interior.
	Hollow
)

// HatchStyle selects one of the predefined hatch patterns.
type HatchStyle int

const (
	Horizontal HatchStyle = iota
	Vertical
	ForwardDiagonal
	BackwardDiagonal
	Cross
	DiagonalCross
)

// hatch patterns, 8×8 pixels, one byte per row, least significant bit
// leftmost
var hatchBits = [...][8]byte{
	{0x00, 0x00, 0xFF, 0x00, 0x00, 0x00, 0xFF, 0x00},
	{0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22, 0x22},
	{0x08, 0x10, 0x20, 0x40, 0x80, 0x01, 0x02, 0x04},
	{0x10, 0x08, 0x04, 0x02, 0x01, 0x80, 0x40, 0x20},
	{0x22, 0x22, 0xFF, 0x22, 0x22, 0x22, 0xFF, 0x22},
	{0x18, 0x18, 0x24, 0x42, 0x81, 0x81, 0x42, 0x24},
}

// maxPatternColors is the size of the palette used for patterns on
// palette-limited displays.
const maxPatternColors = 256

// SetInteriorStyle selects how filled shapes are painted.  Hatch, Stipple
// and Pattern are only accepted after a hatch, stipple or pattern has been
// set.
func (c *Canvas) SetInteriorStyle(s InteriorStyle) InteriorStyle {
	old := c.interior
	switch s {
	case Hatch:
		if _, ok := c.hatches.current(); !ok {
			return old
		}
	case Stipple:
		if _, ok := c.stipples.current(); !ok {
			return old
		}
	case Pattern:
		if _, ok := c.patterns.current(); !ok {
			return old
		}
	case Solid, Hollow:
	default:
		return old
	}
	c.interior = s
	c.updateFill()
	return old
}

// InteriorStyle returns the current interior style.
func (c *Canvas) InteriorStyle() InteriorStyle {
	return c.interior
}

// SetHatch selects a hatch pattern and the Hatch interior style.
func (c *Canvas) SetHatch(h HatchStyle) HatchStyle {
	old := c.hatchStyle
	if h < Horizontal || int(h) >= len(hatchBits) {
		return old
	}
	bits := hatchBits[h]
	_, err := c.hatches.get(keyOf(8, 8, bits[:]), func() (*region.Bitmap, error) {
		b := region.NewBitmap(8, 8)
		for y, row := range bits {
			for x := range 8 {
				b.Set(x, y, row&(1<<x) != 0)
			}
		}
		return b, nil
	})
	if err != nil {
		c.report("SetHatch", err)
		return old
	}
	c.hatchStyle = h
	c.interior = Hatch
	c.updateFill()
	return old
}

// SetStipple sets a w×h stipple and selects the Stipple interior style.
// The stipple is given row by row, starting with the bottom row.  Pixels
// with non-zero values are painted in the foreground color.
func (c *Canvas) SetStipple(w, h int, data []uint8) {
	if w <= 0 || h <= 0 || len(data) < w*h {
		c.report("SetStipple", fmt.Errorf("%w: %dx%d stipple with %d values", errInvalidImage, w, h, len(data)))
		return
	}
	data = data[:w*h]
	_, err := c.stipples.get(keyOf(w, h, data), func() (*region.Bitmap, error) {
		b := region.NewBitmap(w, h)
		for y := range h {
			for x := range w {
				b.Set(x, h-1-y, data[y*w+x] != 0)
			}
		}
		return b, nil
	})
	if err != nil {
		c.report("SetStipple", err)
		return
	}
	c.interior = Stipple
	c.updateFill()
}

// SetPattern sets a w×h color pattern and selects the Pattern interior
// style.  The pattern is given row by row, starting with the bottom row.
//
// On palette-limited displays the pattern uses at most 256 colors; further
// colors are replaced by the closest of these.
func (c *Canvas) SetPattern(w, h int, colors []pixel.RGB) {
	if w <= 0 || h <= 0 || len(colors) < w*h {
		c.report("SetPattern", fmt.Errorf("%w: %dx%d pattern with %d colors", errInvalidImage, w, h, len(colors)))
		return
	}
	colors = colors[:w*h]
	raw := make([]byte, 0, 3*len(colors))
	for _, col := range colors {
		raw = append(raw, col.Red(), col.Green(), col.Blue())
	}
	_, err := c.patterns.get(keyOf(w, h, raw), func() (*pack.Image, error) {
		return c.buildPattern(w, h, colors)
	})
	if err != nil {
		c.report("SetPattern", err)
		return
	}
	c.interior = Pattern
	c.updateFill()
}

// buildPattern converts a pattern into a tile in the display layout.
func (c *Canvas) buildPattern(w, h int, colors []pixel.RGB) (*pack.Image, error) {
	fx, fy := zoom.Table(w, w, 0), zoom.Table(h, h, 0)
	var img *pack.Image
	var err error
	if c.visual.PaletteLimited() {
		idx, palette := quantize(colors)
		src := &pack.IndexedImage{Width: w, Height: h, Pix: idx, Palette: palette}
		img, err = c.packer.Indexed(src, fx, fy)
		if err == nil {
			c.logger().Debug("pattern quantized", "colors", len(palette))
		}
	} else {
		src := &pack.RGBImage{
			Width:  w,
			Height: h,
			R:      make([]uint8, w*h),
			G:      make([]uint8, w*h),
			B:      make([]uint8, w*h),
		}
		for i, col := range colors {
			src.R[i], src.G[i], src.B[i] = col.Red(), col.Green(), col.Blue()
		}
		img, err = c.packer.RGB(src, fx, fy, nil)
	}
	if err != nil {
		return nil, err
	}
	return img.Clone(), nil
}

// quantize assigns palette indices to colors.  The first 256 distinct
// colors form the palette, in order of appearance.  Later colors map to
// the closest palette entry.
func quantize(colors []pixel.RGB) ([]uint8, []pixel.RGB) {
	idx := make([]uint8, len(colors))
	var palette []pixel.RGB
	var table []pixel.Color
	lookup := make(map[pixel.RGB]uint8)
	for i, col := range colors {
		k, ok := lookup[col]
		if !ok {
			if len(palette) < maxPatternColors {
				k = uint8(len(palette))
				palette = append(palette, col)
			} else {
				if table == nil {
					table = make([]pixel.Color, len(palette))
					for j, p := range palette {
						table[j] = color16(p)
					}
				}
				k = uint8(pixel.Nearest(table, color16(col)))
			}
			lookup[col] = k
		}
		idx[i] = k
	}
	return idx, palette
}

func color16(c pixel.RGB) pixel.Color {
	return pixel.Color{
		R: uint16(c.Red()) * 0x101,
		G: uint16(c.Green()) * 0x101,
		B: uint16(c.Blue()) * 0x101,
	}
}

// updateFill sends the interior style to the surface.
func (c *Canvas) updateFill() {
	fs := device.FillStyle{Kind: device.FillSolid}
	stippled := device.FillStippled
	if c.opacity == Opaque {
		stippled = device.FillOpaqueStippled
	}
	switch c.interior {
	case Hatch:
		if b, ok := c.hatches.current(); ok {
			fs = device.FillStyle{Kind: stippled, Stipple: b}
		}
	case Stipple:
		if b, ok := c.stipples.current(); ok {
			fs = device.FillStyle{Kind: stippled, Stipple: b}
		}
	case Pattern:
		if img, ok := c.patterns.current(); ok {
			fs = device.FillStyle{Kind: device.FillTiled, Tile: img}
		}
	}
	c.fill = fs
	c.surf.SetFill(fs)
}
