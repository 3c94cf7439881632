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

// Package pdfout implements a drawing surface which writes a single PDF
// page.
//
// Shapes painted in a solid color without a clip mask are written as
// vector graphics.  All other output is rasterized at the resolution of
// the page and written as runs of filled pixels.  The surface cannot read
// back pixels and ignores raster operations; everything is painted as if
// with [device.OpCopy].
package pdfout

import (
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/canvas/device"
	"seehuhn.de/go/canvas/internal/raster"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
)

// Surface writes drawing operations to a PDF file.
type Surface struct {
	cfg    Config
	page   *document.Page
	w, h   int
	colors *pixel.TrueColorResolver

	fg, bg uint32
	clip   *region.Bitmap
	line   device.LineStyle
	fill   device.FillStyle

	mask   *region.Bitmap
	filler *raster.Filler

	fillColor   pixel.RGB
	fillValid   bool
	strokeColor pixel.RGB
	strokeValid bool
}

var _ device.Surface = (*Surface)(nil)

// Open parses a driver data string, see [ParseData], and creates the
// file.
func Open(data string) (*Surface, error) {
	cfg, err := ParseData(data)
	if err != nil {
		return nil, err
	}
	return Create(cfg)
}

// Create creates the PDF file described by cfg.  The file is complete
// after [Surface.Close] has been called.
func Create(cfg *Config) (*Surface, error) {
	w, h := cfg.PixelSize()
	paper := &pdf.Rectangle{
		URx: cfg.Width / 25.4 * 72,
		URy: cfg.Height / 25.4 * 72,
	}
	page, err := document.CreateSinglePage(cfg.Filename, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}

	// user space is in canvas pixels, with y pointing down
	scale := 72 / cfg.Resolution
	page.Transform(matrix.Matrix{scale, 0, 0, -scale, 0, paper.URy})

	return &Surface{
		cfg:    *cfg,
		page:   page,
		w:      w,
		h:      h,
		colors: pixel.NewTrueColor(pixel.XRGB32),
		mask:   region.NewBitmap(w, h),
		filler: raster.New(rect.Rect{URx: float64(w), URy: float64(h)}),
	}, nil
}

// Close finishes the page and closes the file.
func (s *Surface) Close() error {
	return s.page.Close()
}

// Config returns the page description.
func (s *Surface) Config() Config { return s.cfg }

// Visual implements the [device.Surface] interface.
func (s *Surface) Visual() pixel.Visual { return pixel.XRGB32 }

// Size implements the [device.Surface] interface.
func (s *Surface) Size() (w, h int) { return s.w, s.h }

// Colormap implements the [device.Surface] interface.
func (s *Surface) Colormap() pixel.Colormap { return nil }

// SetForeground implements the [device.Surface] interface.
func (s *Surface) SetForeground(p uint32) { s.fg = p }

// SetBackground implements the [device.Surface] interface.
func (s *Surface) SetBackground(p uint32) { s.bg = p }

// SetOp implements the [device.Surface] interface.  The operation is
// ignored.
func (s *Surface) SetOp(device.Op) {}

// SetClipMask implements the [device.Surface] interface.
func (s *Surface) SetClipMask(mask *region.Bitmap) { s.clip = mask }

// SetLine implements the [device.Surface] interface.
func (s *Surface) SetLine(style device.LineStyle) { s.line = style }

// SetFill implements the [device.Surface] interface.
func (s *Surface) SetFill(style device.FillStyle) { s.fill = style }

// DrawLine implements the [device.Surface] interface.
func (s *Surface) DrawLine(x0, y0, x1, y1 float64) error {
	p := (&path.Data{}).MoveTo(vec.Vec2{X: x0, Y: y0}).LineTo(vec.Vec2{X: x1, Y: y1})
	return s.StrokePath(p)
}

// DrawLines implements the [device.Surface] interface.
func (s *Surface) DrawLines(pts []vec.Vec2) error {
	if len(pts) == 0 {
		return nil
	}
	p := (&path.Data{}).MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p = p.LineTo(pt)
	}
	return s.StrokePath(p)
}

// StrokePath implements the [device.Surface] interface.
func (s *Surface) StrokePath(p *path.Data) error {
	if s.clip != nil {
		f := s.filler
		f.Width = s.line.Width
		f.Cap = s.line.Cap
		f.Join = s.line.Join
		if s.line.DoubleDash && s.line.Dash != nil {
			f.Dash = nil
			s.mask.Clear()
			f.Stroke(p, s.mask.Span)
			s.paint(s.constant(s.bg))
		}
		f.Dash = s.line.Dash
		f.DashPhase = s.line.DashPhase
		s.mask.Clear()
		f.Stroke(p, s.mask.Span)
		s.paint(s.constant(s.fg))
		return nil
	}

	// thin lines are one pixel wide
	s.page.SetLineWidth(max(s.line.Width, 1))
	s.page.SetLineCap(s.line.Cap)
	s.page.SetLineJoin(s.line.Join)
	if s.line.DoubleDash && s.line.Dash != nil {
		s.page.SetLineDash(nil, 0)
		s.setStrokeColor(s.colors.ToRGB(s.bg))
		s.addPath(p)
		s.page.Stroke()
	}
	s.page.SetLineDash(s.line.Dash, s.line.DashPhase)
	s.setStrokeColor(s.colors.ToRGB(s.fg))
	s.addPath(p)
	s.page.Stroke()
	return nil
}

// FillPolygon implements the [device.Surface] interface.
func (s *Surface) FillPolygon(pts []vec.Vec2, evenOdd bool) error {
	if !s.solid() {
		s.mask.Clear()
		s.mask.FillPolygon(pts, evenOdd)
		s.paint(s.fillSource())
		return nil
	}
	if len(pts) < 3 {
		return nil
	}
	s.setFillColor(s.colors.ToRGB(s.fg))
	s.page.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		s.page.LineTo(pt.X, pt.Y)
	}
	s.page.ClosePath()
	s.fillPath(evenOdd)
	return nil
}

// FillPath implements the [device.Surface] interface.
func (s *Surface) FillPath(p *path.Data, evenOdd bool) error {
	if !s.solid() {
		s.mask.Clear()
		s.mask.FillPath(p, evenOdd)
		s.paint(s.fillSource())
		return nil
	}
	s.setFillColor(s.colors.ToRGB(s.fg))
	s.addPath(p)
	s.fillPath(evenOdd)
	return nil
}

// FillRect implements the [device.Surface] interface.
func (s *Surface) FillRect(x, y, w, h int) error {
	if !s.solid() {
		s.mask.Clear()
		s.mask.FillRect(x, y, x+w, y+h)
		s.paint(s.fillSource())
		return nil
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	s.setFillColor(s.colors.ToRGB(s.fg))
	s.page.Rectangle(float64(x), float64(y), float64(w), float64(h))
	s.page.Fill()
	return nil
}

// DrawPoint implements the [device.Surface] interface.
func (s *Surface) DrawPoint(x, y int) error {
	s.mask.Clear()
	s.mask.Set(x, y, true)
	s.paint(s.constant(s.fg))
	return nil
}

// DrawMask implements the [device.Surface] interface.
func (s *Surface) DrawMask(m *image.Alpha, x, y int) error {
	s.mask.Clear()
	b := m.Bounds()
	for my := b.Min.Y; my < b.Max.Y; my++ {
		for mx := b.Min.X; mx < b.Max.X; mx++ {
			if m.AlphaAt(mx, my).A >= 128 {
				s.mask.Set(x+mx-b.Min.X, y+my-b.Min.Y, true)
			}
		}
	}
	s.paint(s.constant(s.fg))
	return nil
}

// PutImage implements the [device.Surface] interface.  The image must
// use the layout of [pixel.XRGB32].
func (s *Surface) PutImage(img *pack.Image, x, y int) error {
	s.mask.Clear()
	s.mask.FillRect(x, y, x+img.Width, y+img.Height)
	s.paint(func(dx, dy int) (pixel.RGB, bool) {
		return s.colors.ToRGB(img.PixelAt(dx-x, dy-y)), true
	})
	return nil
}

// GetImage implements the [device.Surface] interface.  PDF output cannot
// be read back, so this always fails.
func (s *Surface) GetImage(x, y, w, h int) (*pack.Image, error) {
	return nil, device.ErrNotSupported
}

// CopyArea implements the [device.Surface] interface.  PDF output cannot
// be read back, so this always fails.
func (s *Surface) CopyArea(sx, sy, w, h, dx, dy int) error {
	return device.ErrNotSupported
}

// Flush implements the [device.Surface] interface.
func (s *Surface) Flush() error { return nil }

// solid reports whether filled shapes can be written as vector graphics.
func (s *Surface) solid() bool {
	return s.clip == nil && s.fill.Kind == device.FillSolid
}

func (s *Surface) fillPath(evenOdd bool) {
	if evenOdd {
		s.page.FillEvenOdd()
	} else {
		s.page.Fill()
	}
}

// addPath appends p to the current PDF path.
func (s *Surface) addPath(p *path.Data) {
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			s.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			s.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			s.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			s.page.ClosePath()
		}
	}
}

func (s *Surface) setFillColor(c pixel.RGB) {
	if s.fillValid && s.fillColor == c {
		return
	}
	r, g, b := channels(c)
	if r == g && g == b {
		s.page.SetFillColor(color.DeviceGray(r))
	} else {
		s.page.SetFillColor(color.DeviceRGB(r, g, b))
	}
	s.fillColor, s.fillValid = c, true
}

func (s *Surface) setStrokeColor(c pixel.RGB) {
	if s.strokeValid && s.strokeColor == c {
		return
	}
	r, g, b := channels(c)
	if r == g && g == b {
		s.page.SetStrokeColor(color.DeviceGray(r))
	} else {
		s.page.SetStrokeColor(color.DeviceRGB(r, g, b))
	}
	s.strokeColor, s.strokeValid = c, true
}

func channels(c pixel.RGB) (r, g, b float64) {
	return float64(c.Red()) / 255, float64(c.Green()) / 255, float64(c.Blue()) / 255
}

// source gives the color of a covered pixel, or false to leave the pixel
// unchanged.
type source func(x, y int) (pixel.RGB, bool)

func (s *Surface) constant(p uint32) source {
	c := s.colors.ToRGB(p)
	return func(int, int) (pixel.RGB, bool) { return c, true }
}

func (s *Surface) fillSource() source {
	switch s.fill.Kind {
	case device.FillStippled, device.FillOpaqueStippled:
		st := s.fill.Stipple
		if st == nil || st.Width == 0 || st.Height == 0 {
			break
		}
		opaque := s.fill.Kind == device.FillOpaqueStippled
		fg, bg := s.colors.ToRGB(s.fg), s.colors.ToRGB(s.bg)
		return func(x, y int) (pixel.RGB, bool) {
			if st.Get(x%st.Width, y%st.Height) {
				return fg, true
			}
			return bg, opaque
		}
	case device.FillTiled:
		tile := s.fill.Tile
		if tile == nil || tile.Width == 0 || tile.Height == 0 {
			break
		}
		return func(x, y int) (pixel.RGB, bool) {
			return s.colors.ToRGB(tile.PixelAt(x%tile.Width, y%tile.Height)), true
		}
	}
	return s.constant(s.fg)
}

// paint writes the pixels set in the coverage mask and the clip mask as
// filled rectangles.  Horizontal runs of the same color become a single
// rectangle.
func (s *Surface) paint(src source) {
	pending := false
	flush := func() {
		if pending {
			s.page.Fill()
			pending = false
		}
	}
	emit := func(c pixel.RGB, x0, x1, y int) {
		if !s.fillValid || s.fillColor != c {
			flush()
			s.setFillColor(c)
		}
		s.page.Rectangle(float64(x0), float64(y), float64(x1-x0), 1)
		pending = true
	}

	xmin, xmax, ymin, ymax := s.mask.Bounds()
	for y := ymin; y <= ymax; y++ {
		start := -1
		var cur pixel.RGB
		for x := xmin; x <= xmax; x++ {
			c, ok := pixel.RGB(0), s.mask.Get(x, y) && (s.clip == nil || s.clip.Get(x, y))
			if ok {
				c, ok = src(x, y)
			}
			if start >= 0 && (!ok || c != cur) {
				emit(cur, start, x, y)
				start = -1
			}
			if ok && start < 0 {
				start, cur = x, c
			}
		}
		if start >= 0 {
			emit(cur, start, xmax+1, y)
		}
	}
	flush()
}
