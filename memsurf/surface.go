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

// Package memsurf implements a drawing surface in memory.
//
// A [Surface] stores pixels in the native layout of a display visual, so
// that a canvas drawing on it goes through the same color resolution and
// pixel packing as on a real display.  Every primitive is first
// rasterized into a 1-bit coverage mask, which is then painted once
// through the clip mask with the current raster operation.
package memsurf

import (
	"fmt"
	"image"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/device"
	"seehuhn.de/go/canvas/internal/raster"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
)

// Surface is an in-memory implementation of [device.Surface].
type Surface struct {
	img     *pack.Image
	visual  pixel.Visual
	cmap    *Colormap
	decoder *pixel.TrueColorResolver
	pixMask uint32

	fg, bg uint32
	op     device.Op
	clip   *region.Bitmap
	line   device.LineStyle
	fill   device.FillStyle

	mask   *region.Bitmap
	filler *raster.Filler
}

var _ device.Surface = (*Surface)(nil)

// New allocates a surface for the given visual.  Palette-limited and
// direct-color visuals get a colormap with v.ColormapSize free cells.
func New(v pixel.Visual, w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	img, err := pack.NewImageFor(v, w, h)
	if err != nil {
		return nil, err
	}
	s := &Surface{
		img:    img,
		visual: v,
		mask:   region.NewBitmap(w, h),
		filler: raster.New(rect.Rect{URx: float64(w), URy: float64(h)}),
	}
	if v.Class != pixel.TrueColor {
		s.cmap = NewColormap(v.ColormapSize)
	}
	if !v.PaletteLimited() {
		s.decoder = pixel.NewTrueColor(v)
	}
	s.pixMask = 0xffffffff
	if v.BitsPerPixel < 32 {
		s.pixMask = 1<<v.BitsPerPixel - 1
	}
	return s, nil
}

// Visual implements the [device.Surface] interface.
func (s *Surface) Visual() pixel.Visual { return s.visual }

// Size implements the [device.Surface] interface.
func (s *Surface) Size() (w, h int) { return s.img.Width, s.img.Height }

// Colormap implements the [device.Surface] interface.
func (s *Surface) Colormap() pixel.Colormap {
	if s.cmap == nil {
		return nil
	}
	return s.cmap
}

// Cells returns the simulated colormap, or nil for true-color visuals.
func (s *Surface) Cells() *Colormap { return s.cmap }

// Pixels returns the pixel buffer of the surface.
func (s *Surface) Pixels() *pack.Image { return s.img }

// SetForeground implements the [device.Surface] interface.
func (s *Surface) SetForeground(p uint32) { s.fg = p }

// SetBackground implements the [device.Surface] interface.
func (s *Surface) SetBackground(p uint32) { s.bg = p }

// SetOp implements the [device.Surface] interface.
func (s *Surface) SetOp(op device.Op) { s.op = op }

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

// FillPolygon implements the [device.Surface] interface.
func (s *Surface) FillPolygon(pts []vec.Vec2, evenOdd bool) error {
	s.mask.Clear()
	s.mask.FillPolygon(pts, evenOdd)
	s.paint(s.fillSource())
	return nil
}

// FillPath implements the [device.Surface] interface.
func (s *Surface) FillPath(p *path.Data, evenOdd bool) error {
	s.mask.Clear()
	s.mask.FillPath(p, evenOdd)
	s.paint(s.fillSource())
	return nil
}

// FillRect implements the [device.Surface] interface.
func (s *Surface) FillRect(x, y, w, h int) error {
	s.mask.Clear()
	s.mask.FillRect(x, y, x+w, y+h)
	s.paint(s.fillSource())
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

// PutImage implements the [device.Surface] interface.
func (s *Surface) PutImage(img *pack.Image, x, y int) error {
	s.mask.Clear()
	s.mask.FillRect(x, y, x+img.Width, y+img.Height)
	s.paint(func(dx, dy int) (uint32, bool) {
		return img.PixelAt(dx-x, dy-y), true
	})
	return nil
}

// GetImage implements the [device.Surface] interface.
func (s *Surface) GetImage(x, y, w, h int) (*pack.Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", w, h)
	}
	return s.img.SubImage(x, y, w, h), nil
}

// CopyArea implements the [device.Surface] interface.
func (s *Surface) CopyArea(sx, sy, w, h, dx, dy int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	src := s.img.SubImage(sx, sy, w, h)
	return s.PutImage(src, dx, dy)
}

// Flush implements the [device.Surface] interface.
func (s *Surface) Flush() error { return nil }

// source gives the color of a covered pixel, or false to leave the pixel
// unchanged.
type source func(x, y int) (uint32, bool)

func (s *Surface) constant(p uint32) source {
	return func(int, int) (uint32, bool) { return p, true }
}

func (s *Surface) fillSource() source {
	switch s.fill.Kind {
	case device.FillStippled, device.FillOpaqueStippled:
		st := s.fill.Stipple
		if st == nil || st.Width == 0 || st.Height == 0 {
			break
		}
		opaque := s.fill.Kind == device.FillOpaqueStippled
		fg, bg := s.fg, s.bg
		return func(x, y int) (uint32, bool) {
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
		return func(x, y int) (uint32, bool) {
			return tile.PixelAt(x%tile.Width, y%tile.Height), true
		}
	}
	return s.constant(s.fg)
}

// paint applies src to all pixels which are set in the coverage mask and
// in the clip mask.
func (s *Surface) paint(src source) {
	m := s.mask
	for y := range m.Height {
		row := m.Bits[y*m.Stride : (y+1)*m.Stride]
		var clipRow []byte
		if s.clip != nil {
			clipRow = s.clip.Bits[y*s.clip.Stride : (y+1)*s.clip.Stride]
		}
		for i, v := range row {
			if clipRow != nil {
				v &= clipRow[i]
			}
			if v == 0 {
				continue
			}
			for k := range 8 {
				if v&(0x80>>k) == 0 {
					continue
				}
				x := i*8 + k
				c, ok := src(x, y)
				if !ok {
					continue
				}
				old := s.img.PixelAt(x, y)
				s.img.SetPixelAt(x, y, s.op.Apply(c, old, s.pixMask))
			}
		}
	}
}

// ToRGB returns the color shown for a pixel value.
func (s *Surface) ToRGB(p uint32) pixel.RGB {
	if s.decoder != nil {
		return s.decoder.ToRGB(p)
	}
	return s.cmap.Query(p).RGB()
}

// RGBAt returns the color shown at (x, y).
func (s *Surface) RGBAt(x, y int) pixel.RGB {
	return s.ToRGB(s.img.PixelAt(x, y))
}

// Image converts the surface contents to an image, for example for
// writing PNG files.
func (s *Surface) Image() *image.RGBA {
	w, h := s.Size()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := s.RGBAt(x, y)
			out.SetRGBA(x, y, color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 255})
		}
	}
	return out
}
