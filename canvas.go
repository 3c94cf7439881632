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
	"errors"
	"fmt"
	"log/slog"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/affine"
	"seehuhn.de/go/canvas/device"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
	"seehuhn.de/go/canvas/textface"
)

// Canvas draws onto a surface.
type Canvas struct {
	surf          device.Surface
	width, height int
	visual        pixel.Visual

	res     pixel.Resolver
	palette *pixel.PaletteResolver // nil unless the display is palette-limited
	packer  *pack.Packer
	comp    *affine.Compositor
	text    device.TextLayout
	log     *slog.Logger
	dpi     float64
	err     error

	fg, bg       pixel.RGB
	fgPix, bgPix uint32
	writeMode    WriteMode

	lineStyle  LineStyle
	dashes     []int
	lineWidth  int
	lineCap    LineCap
	lineJoin   LineJoin
	opacity    Opacity
	interior   InteriorStyle
	hatchStyle HatchStyle
	fillRule   FillRule
	fill       device.FillStyle

	clipMode    ClipMode
	clipRect    [4]int // xmin, xmax, ymin, ymax
	areaMask    *region.Bitmap
	clipPolygon *region.Bitmap
	clipMask    *region.Bitmap // as installed on the surface

	region    *region.Region
	combine   region.Mode
	buildMode bool

	matrix   *matrix.Matrix
	rotation rotation

	font        fontState
	align       Alignment
	orientation float64

	polyMode PolyMode
	polyPts  []vec.Vec2
	inPoly   bool

	hatches  cache[*region.Bitmap]
	stipples cache[*region.Bitmap]
	patterns cache[*pack.Image]
}

// New creates a canvas for the given surface.
//
// The canvas starts with black foreground, white background, thin solid
// lines, solid even-odd fill, no clipping and no transformation.
func New(s device.Surface, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	v := s.Visual()
	cm := s.Colormap()
	if v.PaletteLimited() && cm == nil {
		return nil, fmt.Errorf("visual %s: missing colormap", v)
	}

	c := &Canvas{
		surf:   s,
		width:  w,
		height: h,
		visual: v,
		text:   o.text,
		log:    o.logger,
		dpi:    o.dpi,
	}
	if c.text == nil {
		c.text = textface.New()
	}

	c.res = pixel.NewResolver(v, cm)
	if p, ok := c.res.(*pixel.PaletteResolver); ok {
		p.SetRetries(o.retries)
		c.palette = p
	}
	c.packer = pack.NewPacker(v, c.res)
	if v.Class == pixel.DirectColor && cm != nil {
		c.packer.Direct = pixel.BuildDirectTable(v, cm)
	}
	c.comp = &affine.Compositor{Surface: s, Packer: c.packer}

	c.fg, c.bg = pixel.Black, pixel.White
	c.fgPix = c.res.Resolve(c.fg).Pixel
	c.bgPix = c.res.Resolve(c.bg).Pixel
	c.lineWidth = 1
	c.combine = region.Union

	s.SetForeground(c.fgPix)
	s.SetBackground(c.bgPix)
	s.SetOp(device.OpCopy)
	s.SetClipMask(nil)
	c.updateLine()
	c.updateFill()

	c.align = BaseLeft
	c.font = fontState{spec: device.FontSpec{Family: "Courier", Size: 12}}
	if err := c.text.SetFont(c.font.spec, c.dpi); err != nil {
		c.report("New", err)
	}

	c.logger().Debug("canvas created",
		"width", w, "height", h, "visual", v.String())
	return c, nil
}

// Size returns the size of the canvas in pixels.
func (c *Canvas) Size() (w, h int) {
	return c.width, c.height
}

// Surface returns the surface the canvas draws on.
func (c *Canvas) Surface() device.Surface {
	return c.surf
}

// Resolver returns the color resolver for the display.
func (c *Canvas) Resolver() pixel.Resolver {
	return c.res
}

// Err returns the error of the most recent drawing operation which failed,
// and clears it.
func (c *Canvas) Err() error {
	err := c.err
	c.err = nil
	return err
}

// Flush sends all pending drawing operations to the display.
func (c *Canvas) Flush() {
	c.report("Flush", c.surf.Flush())
}

func (c *Canvas) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return Logger()
}

// report records a failed operation.  Nil errors are ignored.
func (c *Canvas) report(op string, err error) error {
	if err == nil {
		return nil
	}
	err = fmt.Errorf("%s: %w", op, err)
	c.err = err
	c.logger().Warn("canvas operation aborted", "op", op, "err", err)
	return err
}

var (
	errInvalidImage    = errors.New("invalid image data")
	errInvalidFontSize = errors.New("invalid font size")
)

// center maps the center of canvas pixel (x, y) to device space.
func (c *Canvas) center(x, y float64) vec.Vec2 {
	return c.edge(x+0.5, y+0.5)
}

// edge maps a canvas position, with pixel (x, y) covering the unit square
// [x, x+1) × [y, y+1), to device space.
func (c *Canvas) edge(x, y float64) vec.Vec2 {
	if c.matrix != nil {
		p := affine.Apply(*c.matrix, vec.Vec2{X: x, Y: y})
		x, y = p.X, p.Y
	}
	return vec.Vec2{X: x, Y: float64(c.height) - y}
}

// devicePath maps a path given in canvas coordinates to device space.
// The path is modified in place.
func (c *Canvas) devicePath(p *path.Data) *path.Data {
	for i, pt := range p.Coords {
		p.Coords[i] = c.center(pt.X, pt.Y)
	}
	return p
}

// deviceRow returns the device row of canvas row y.
func (c *Canvas) deviceRow(y int) int {
	return c.height - 1 - y
}
