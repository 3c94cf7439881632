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
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/affine"
	"seehuhn.de/go/canvas/device"
	"seehuhn.de/go/canvas/region"
)

// FontStyle is a combination of style flags.
type FontStyle int

const (
	Plain     FontStyle = 0
	Bold      FontStyle = 1 << 0
	Italic    FontStyle = 1 << 1
	Underline FontStyle = 1 << 2
	Strikeout FontStyle = 1 << 3
)

// Alignment selects which point of the text is placed at the position
// given to [Canvas.Text].
type Alignment int

const (
	North Alignment = iota
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
	Center
	BaseLeft
	BaseCenter
	BaseRight
)

type fontState struct {
	spec device.FontSpec
}

// Font selects the font for text.  Sizes are in points; negative sizes
// are in pixels.  The families "Courier", "Times" and "Helvetica" are
// always available.
func (c *Canvas) Font(family string, style FontStyle, size int) error {
	spec := device.FontSpec{
		Family:    family,
		Bold:      style&Bold != 0,
		Italic:    style&Italic != 0,
		Underline: style&Underline != 0,
		Strikeout: style&Strikeout != 0,
		Size:      float64(size),
	}
	return c.setFont("Font", spec)
}

// NativeFont selects a font given as a string of the form
// "Family, Style Size", for example "Times, Bold Italic 12".
func (c *Canvas) NativeFont(s string) error {
	spec, err := device.ParseFontSpec(s)
	if err != nil {
		return c.report("NativeFont", err)
	}
	return c.setFont("NativeFont", spec)
}

func (c *Canvas) setFont(op string, spec device.FontSpec) error {
	if spec.Size == 0 {
		return c.report(op, errInvalidFontSize)
	}
	if err := c.text.SetFont(spec, c.dpi); err != nil {
		return c.report(op, err)
	}
	c.font.spec = spec
	return nil
}

// FontSpec returns the current font.
func (c *Canvas) FontSpec() device.FontSpec {
	return c.font.spec
}

// FontDim returns the dimensions of the current font in pixels.  The
// width is that of a wide character.
func (c *Canvas) FontDim() (maxWidth, height, ascent, descent int) {
	m := c.text.Metrics()
	w, _ := c.text.Measure("W")
	return w, m.Ascent + m.Descent, m.Ascent, m.Descent
}

// TextSize returns the size of s in pixels, when drawn in the current
// font.
func (c *Canvas) TextSize(s string) (w, h int) {
	return c.text.Measure(s)
}

// SetTextAlignment selects the point of the text which is placed at the
// position given to [Canvas.Text].
func (c *Canvas) SetTextAlignment(a Alignment) Alignment {
	old := c.align
	if a >= North && a <= BaseRight {
		c.align = a
	}
	return old
}

// SetTextOrientation sets the angle of the text baseline, in degrees
// counter-clockwise.
func (c *Canvas) SetTextOrientation(angle float64) float64 {
	old := c.orientation
	if !math.IsNaN(angle) && !math.IsInf(angle, 0) {
		c.orientation = math.Mod(angle, 360)
	}
	return old
}

// Text draws s at (x, y), using the foreground color.  While a region is
// built, the text shape is added to the region instead.
func (c *Canvas) Text(x, y int, s string) {
	if s == "" {
		return
	}
	mask, _, base := c.text.Render(s)
	c.decorate(mask, base)

	b := mask.Bounds()
	ax, ay := c.anchor(b.Dx(), b.Dy(), base)
	if c.matrix == nil && c.orientation == 0 {
		c.drawMask(mask, x-ax, c.deviceRow(y)-ay)
		return
	}
	rot, dx, dy := c.transformMask(mask, ax, ay, x, y)
	c.drawMask(rot, dx, dy)
}

// anchor returns the mask pixel which is placed at the text position.
func (c *Canvas) anchor(w, h, base int) (int, int) {
	var ax, ay int
	switch c.align {
	case East, NorthEast, SouthEast, BaseRight:
		ax = w - 1
	case North, South, Center, BaseCenter:
		ax = w / 2
	}
	switch c.align {
	case BaseLeft, BaseCenter, BaseRight:
		ay = base - 1
	case South, SouthEast, SouthWest:
		ay = h - 1
	case Center, East, West:
		ay = h / 2
	}
	return max(ax, 0), max(ay, 0)
}

// decorate adds underline and strikeout to a rendered text.
func (c *Canvas) decorate(mask *image.Alpha, base int) {
	spec := c.font.spec
	if !spec.Underline && !spec.Strikeout {
		return
	}
	m := c.text.Metrics()
	t := max(1, m.Height/20)
	if spec.Underline {
		fillRows(mask, base+1, t)
	}
	if spec.Strikeout {
		fillRows(mask, base-m.Ascent/3, t)
	}
}

func fillRows(mask *image.Alpha, y0, n int) {
	b := mask.Bounds()
	for y := max(y0, b.Min.Y); y < min(y0+n, b.Max.Y); y++ {
		row := mask.Pix[(y-b.Min.Y)*mask.Stride:]
		for x := range b.Dx() {
			row[x] = 0xff
		}
	}
}

// transformMask rotates a rendered text by the text orientation and
// applies the canvas transformation.  Mask pixel (ax, ay) is placed on
// canvas pixel (x, y).  The result is returned with the device position
// of its top-left corner.
func (c *Canvas) transformMask(mask *image.Alpha, ax, ay, x, y int) (*image.Alpha, int, int) {
	sin, cos := math.Sincos(c.orientation * math.Pi / 180)
	u := vec.Vec2{X: cos, Y: sin}
	up := vec.Vec2{X: -sin, Y: cos}
	if c.matrix != nil {
		u = linear(*c.matrix, u)
		up = linear(*c.matrix, up)
	}
	o := c.center(float64(x), float64(y))
	m := matrix.Matrix{u.X, -u.Y, -up.X, up.Y, o.X, o.Y}
	inv, err := affine.Invert(m)
	if err != nil {
		return image.NewAlpha(image.Rectangle{}), 0, 0
	}

	b := mask.Bounds()
	fx0, fy0 := -float64(ax)-0.5, -float64(ay)-0.5
	fx1, fy1 := fx0+float64(b.Dx()), fy0+float64(b.Dy())
	xMin, yMin := math.Inf(1), math.Inf(1)
	xMax, yMax := math.Inf(-1), math.Inf(-1)
	for _, p := range []vec.Vec2{{X: fx0, Y: fy0}, {X: fx1, Y: fy0}, {X: fx1, Y: fy1}, {X: fx0, Y: fy1}} {
		q := affine.Apply(m, p)
		xMin, xMax = min(xMin, q.X), max(xMax, q.X)
		yMin, yMax = min(yMin, q.Y), max(yMax, q.Y)
	}
	dx, dy := int(math.Floor(xMin)), int(math.Floor(yMin))
	w, h := int(math.Ceil(xMax))-dx, int(math.Ceil(yMax))-dy

	out := image.NewAlpha(image.Rect(0, 0, w, h))
	for py := range h {
		for px := range w {
			q := affine.Apply(inv, vec.Vec2{X: float64(dx+px) + 0.5, Y: float64(dy+py) + 0.5})
			mx := int(math.Floor(q.X+0.5)) + ax
			my := int(math.Floor(q.Y+0.5)) + ay
			if mx < 0 || my < 0 || mx >= b.Dx() || my >= b.Dy() {
				continue
			}
			out.Pix[py*out.Stride+px] = mask.Pix[my*mask.Stride+mx]
		}
	}
	return out, dx, dy
}

// linear applies the linear part of m to v.
func linear(m matrix.Matrix, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: m[0]*v.X + m[2]*v.Y, Y: m[1]*v.X + m[3]*v.Y}
}

// drawMask paints the pixels of a text mask, or adds them to the region.
func (c *Canvas) drawMask(mask *image.Alpha, x, y int) {
	if c.building() {
		b := mask.Bounds()
		c.combineShape(func(shape *region.Bitmap) {
			for my := range b.Dy() {
				for mx := range b.Dx() {
					if mask.Pix[my*mask.Stride+mx] >= 128 {
						shape.Set(x+mx, y+my, true)
					}
				}
			}
		})
		return
	}
	o := c.override().solid()
	defer o.release()
	c.report("Text", c.surf.DrawMask(mask, x, y))
}
