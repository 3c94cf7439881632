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
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/canvas/device"
	"seehuhn.de/go/canvas/pixel"
)

// WriteMode selects how drawn pixels combine with the pixels on the
// surface.
type WriteMode int

const (
	Replace WriteMode = iota
	Xor
	NotXor
)

func (m WriteMode) op() device.Op {
	switch m {
	case Xor:
		return device.OpXor
	case NotXor:
		return device.OpEquiv
	default:
		return device.OpCopy
	}
}

// LineStyle selects the dash pattern of lines.
type LineStyle int

const (
	Continuous LineStyle = iota
	Dashed
	Dotted
	DashDot
	DashDotDot
	CustomDashes
)

// dash patterns in pixels, indexed by LineStyle-Dashed
var dashPatterns = [][]float64{
	{6, 2},
	{2, 2},
	{6, 2, 2, 2},
	{6, 2, 2, 2, 2, 2},
}

// LineCap selects the shape of line ends.
type LineCap int

const (
	CapFlat LineCap = iota
	CapSquare
	CapRound
)

// LineJoin selects the shape of line corners.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinBevel
	JoinRound
)

// Opacity controls whether gaps in dashed lines and hatch patterns are
// painted in the background color.
type Opacity int

const (
	Transparent Opacity = iota
	Opaque
)

// FillRule selects how the inside of self-intersecting polygons is
// determined.
type FillRule int

const (
	EvenOdd FillRule = iota
	Winding
)

// SetForeground sets the color for lines, text and solid fills.
func (c *Canvas) SetForeground(col pixel.RGB) {
	c.fg = col
	c.fgPix = c.res.Resolve(col).Pixel
	c.surf.SetForeground(c.fgPix)
}

// Foreground returns the current foreground color.
func (c *Canvas) Foreground() pixel.RGB {
	return c.fg
}

// SetBackground sets the color used by [Canvas.Clear], opaque hatches and
// opaque dashed lines.
func (c *Canvas) SetBackground(col pixel.RGB) {
	c.bg = col
	c.bgPix = c.res.Resolve(col).Pixel
	c.surf.SetBackground(c.bgPix)
}

// Background returns the current background color.
func (c *Canvas) Background() pixel.RGB {
	return c.bg
}

// SetPalette loads colors into the display colormap.  This only has an
// effect on palette-limited displays.
func (c *Canvas) SetPalette(colors []pixel.RGB, mode pixel.PaletteMode) {
	if c.palette == nil {
		return
	}
	c.palette.SetPalette(colors, mode)

	// cells may have been released
	c.patterns.reset()
	if c.interior == Pattern {
		c.interior = Solid
		c.updateFill()
	}
	c.SetForeground(c.fg)
	c.SetBackground(c.bg)
}

// SetWriteMode sets how drawn pixels are combined with the surface.
func (c *Canvas) SetWriteMode(m WriteMode) WriteMode {
	old := c.writeMode
	c.writeMode = m
	c.surf.SetOp(m.op())
	return old
}

// SetLineStyle sets the dash pattern of lines.  CustomDashes uses the
// pattern set by [Canvas.SetLineDashes].
func (c *Canvas) SetLineStyle(s LineStyle) LineStyle {
	old := c.lineStyle
	if s == CustomDashes && len(c.dashes) == 0 {
		return old
	}
	if s < Continuous || s > CustomDashes {
		return old
	}
	c.lineStyle = s
	c.updateLine()
	return old
}

// SetLineDashes sets a custom dash pattern, given as alternating dash and
// gap lengths in pixels, and selects it.
func (c *Canvas) SetLineDashes(dashes []int) {
	var valid []int
	for _, d := range dashes {
		if d > 0 {
			valid = append(valid, d)
		}
	}
	if len(valid) == 0 {
		return
	}
	c.dashes = valid
	c.lineStyle = CustomDashes
	c.updateLine()
}

// SetLineWidth sets the line width in pixels.  Width 1 selects thin lines.
func (c *Canvas) SetLineWidth(w int) int {
	old := c.lineWidth
	c.lineWidth = max(w, 1)
	c.updateLine()
	return old
}

// SetLineCap sets the shape of line ends.
func (c *Canvas) SetLineCap(lc LineCap) LineCap {
	old := c.lineCap
	c.lineCap = lc
	c.updateLine()
	return old
}

// SetLineJoin sets the shape of line corners.
func (c *Canvas) SetLineJoin(join LineJoin) LineJoin {
	old := c.lineJoin
	c.lineJoin = join
	c.updateLine()
	return old
}

// SetBackOpacity controls whether the gaps of dashed lines and hatch
// patterns are painted in the background color.
func (c *Canvas) SetBackOpacity(o Opacity) Opacity {
	old := c.opacity
	c.opacity = o
	c.updateLine()
	c.updateFill()
	return old
}

// SetFillRule sets the rule for filling polygons.
func (c *Canvas) SetFillRule(r FillRule) FillRule {
	old := c.fillRule
	c.fillRule = r
	return old
}

func (c *Canvas) evenOdd() bool {
	return c.fillRule == EvenOdd
}

// deviceLine translates the line attributes for the surface.
func (c *Canvas) deviceLine() device.LineStyle {
	ls := device.LineStyle{
		Cap:  graphics.LineCapButt,
		Join: graphics.LineJoinMiter,
	}
	if c.lineWidth > 1 {
		ls.Width = float64(c.lineWidth)
	}
	switch c.lineCap {
	case CapSquare:
		ls.Cap = graphics.LineCapSquare
	case CapRound:
		ls.Cap = graphics.LineCapRound
	}
	switch c.lineJoin {
	case JoinBevel:
		ls.Join = graphics.LineJoinBevel
	case JoinRound:
		ls.Join = graphics.LineJoinRound
	}

	switch c.lineStyle {
	case Dashed, Dotted, DashDot, DashDotDot:
		ls.Dash = dashPatterns[c.lineStyle-Dashed]
	case CustomDashes:
		ls.Dash = make([]float64, len(c.dashes))
		for i, d := range c.dashes {
			ls.Dash[i] = float64(d)
		}
	}
	ls.DoubleDash = ls.Dash != nil && c.opacity == Opaque
	return ls
}

func (c *Canvas) updateLine() {
	c.surf.SetLine(c.deviceLine())
}
