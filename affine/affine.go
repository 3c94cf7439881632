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

// Package affine draws images under an affine transformation.
//
// The destination area is the bounding box of the transformed image
// rectangle.  Every pixel in this box is mapped back into the source image
// and sampled there.  The resulting axis-aligned image is then packed and
// drawn through a clip mask which has the shape of the transformed
// rectangle, combined with the clip mask already in use.
package affine

import (
	"errors"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas/device"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/region"
	"seehuhn.de/go/canvas/zoom"
)

// ErrSingular is returned for transformations which cannot be inverted.
var ErrSingular = errors.New("singular transformation matrix")

// Placement describes where an image is drawn.  All coordinates use the
// canvas convention, with the origin in the bottom-left corner.
type Placement struct {
	// X, Y, W and H give the rectangle [X, X+W) × [Y, Y+H) which the
	// image would cover without transformation.
	X, Y, W, H int

	// XMin, XMax, YMin and YMax select the part of the source image to
	// draw.  The limits are inclusive.
	XMin, XMax, YMin, YMax int

	// Matrix maps canvas coordinates to transformed canvas coordinates.
	Matrix matrix.Matrix
}

// Compositor draws transformed images onto a surface.
type Compositor struct {
	Surface device.Surface
	Packer  *pack.Packer

	// Clip is the clip mask in use on the surface, or nil.  It is
	// restored after every operation.
	Clip *region.Bitmap

	mask *region.Bitmap
}

// Box is a rectangle of canvas pixels.  The limits are inclusive.
type Box struct {
	XMin, XMax, YMin, YMax int
}

// Empty reports whether the box contains no pixels.
func (b Box) Empty() bool {
	return b.XMin > b.XMax || b.YMin > b.YMax
}

// Corners returns the transformed corners of the placement rectangle, in
// counter-clockwise order before transformation.
func (pl *Placement) Corners() [4]vec.Vec2 {
	x0, y0 := float64(pl.X), float64(pl.Y)
	x1, y1 := x0+float64(pl.W), y0+float64(pl.H)
	return [4]vec.Vec2{
		Apply(pl.Matrix, vec.Vec2{X: x0, Y: y0}),
		Apply(pl.Matrix, vec.Vec2{X: x1, Y: y0}),
		Apply(pl.Matrix, vec.Vec2{X: x1, Y: y1}),
		Apply(pl.Matrix, vec.Vec2{X: x0, Y: y1}),
	}
}

// Bounds returns the pixels touched by the transformed rectangle.
func (pl *Placement) Bounds() Box {
	c := pl.Corners()
	xMin, xMax := c[0].X, c[0].X
	yMin, yMax := c[0].Y, c[0].Y
	for _, p := range c[1:] {
		xMin, xMax = min(xMin, p.X), max(xMax, p.X)
		yMin, yMax = min(yMin, p.Y), max(yMax, p.Y)
	}
	return Box{
		XMin: int(math.Floor(xMin)),
		XMax: int(math.Ceil(xMax)) - 1,
		YMin: int(math.Floor(yMin)),
		YMax: int(math.Ceil(yMax)) - 1,
	}
}

// sampler maps canvas pixel centers to source image coordinates.
type sampler struct {
	inv            matrix.Matrix
	x, y           float64
	xScale, yScale float64
	xMin, yMin     float64
	xLim, yLim     float64
}

func newSampler(pl *Placement) (*sampler, error) {
	inv, err := Invert(pl.Matrix)
	if err != nil {
		return nil, err
	}
	return &sampler{
		inv:    inv,
		x:      float64(pl.X),
		y:      float64(pl.Y),
		xScale: float64(pl.XMax-pl.XMin+1) / float64(pl.W),
		yScale: float64(pl.YMax-pl.YMin+1) / float64(pl.H),
		xMin:   float64(pl.XMin),
		yMin:   float64(pl.YMin),
		xLim:   float64(pl.XMax + 1),
		yLim:   float64(pl.YMax + 1),
	}, nil
}

// source returns the source position seen at the center of canvas pixel
// (tx, ty).  The second result is false if the position is outside the
// selected part of the image.
func (s *sampler) source(tx, ty int) (float64, float64, bool) {
	p := Apply(s.inv, vec.Vec2{X: float64(tx) + 0.5, Y: float64(ty) + 0.5})
	ix := s.xMin + (p.X-s.x)*s.xScale
	iy := s.yMin + (p.Y-s.y)*s.yScale
	ok := ix > s.xMin && iy > s.yMin && ix < s.xLim && iy < s.yLim
	return ix, iy, ok
}

// RGBA draws a transformed RGB image.  If the image has an alpha channel,
// it is blended with the pixels already on the surface.
func (c *Compositor) RGBA(src *pack.RGBImage, pl Placement) error {
	box, ok := c.visible(&pl)
	if !ok {
		return nil
	}
	smp, err := newSampler(&pl)
	if err != nil {
		return err
	}

	ew, eh := box.XMax-box.XMin+1, box.YMax-box.YMin+1
	dst := &pack.RGBImage{
		Width:  ew,
		Height: eh,
		R:      make([]uint8, ew*eh),
		G:      make([]uint8, ew*eh),
		B:      make([]uint8, ew*eh),
	}
	if src.A != nil {
		dst.A = make([]uint8, ew*eh)
	}

	mask := c.polygonMask(&pl)
	for ty := box.YMin; ty <= box.YMax; ty++ {
		row := (ty - box.YMin) * ew
		for tx := box.XMin; tx <= box.XMax; tx++ {
			ix, iy, ok := smp.source(tx, ty)
			if !ok {
				c.unmask(tx, ty)
				continue
			}
			k := row + tx - box.XMin
			dst.R[k] = Bilinear(src.Width, src.Height, src.R, ix, iy)
			dst.G[k] = Bilinear(src.Width, src.Height, src.G, ix, iy)
			dst.B[k] = Bilinear(src.Width, src.Height, src.B, ix, iy)
			if src.A != nil {
				dst.A[k] = Bilinear(src.Width, src.Height, src.A, ix, iy)
			}
		}
	}

	return c.blit(mask, box, func(fx, fy []int) (*pack.Image, error) {
		if dst.A == nil {
			return c.Packer.RGB(dst, fx, fy, nil)
		}
		_, h := c.Surface.Size()
		under, err := c.Surface.GetImage(box.XMin, h-1-box.YMax, ew, eh)
		if err != nil {
			return nil, err
		}
		return c.Packer.RGB(dst, fx, fy, under)
	})
}

// Map draws a transformed indexed image.  Palette indices are not
// interpolated; every pixel takes the index of the nearest source pixel.
func (c *Compositor) Map(src *pack.IndexedImage, pl Placement) error {
	box, ok := c.visible(&pl)
	if !ok {
		return nil
	}
	smp, err := newSampler(&pl)
	if err != nil {
		return err
	}

	ew, eh := box.XMax-box.XMin+1, box.YMax-box.YMin+1
	dst := &pack.IndexedImage{
		Width:   ew,
		Height:  eh,
		Pix:     make([]uint8, ew*eh),
		Palette: src.Palette,
	}

	mask := c.polygonMask(&pl)
	for ty := box.YMin; ty <= box.YMax; ty++ {
		row := (ty - box.YMin) * ew
		for tx := box.XMin; tx <= box.XMax; tx++ {
			ix, iy, ok := smp.source(tx, ty)
			if !ok {
				c.unmask(tx, ty)
				continue
			}
			dst.Pix[row+tx-box.XMin] = Nearest(src.Width, src.Height, src.Pix, ix, iy)
		}
	}

	return c.blit(mask, box, func(fx, fy []int) (*pack.Image, error) {
		return c.Packer.Indexed(dst, fx, fy)
	})
}

// visible returns the part of the transformed rectangle which is on the
// surface.
func (c *Compositor) visible(pl *Placement) (Box, bool) {
	if pl.W <= 0 || pl.H <= 0 || pl.XMax < pl.XMin || pl.YMax < pl.YMin {
		return Box{}, false
	}
	w, h := c.Surface.Size()
	box := pl.Bounds()
	box.XMin = max(box.XMin, 0)
	box.YMin = max(box.YMin, 0)
	box.XMax = min(box.XMax, w-1)
	box.YMax = min(box.YMax, h-1)
	return box, !box.Empty()
}

// polygonMask fills the transformed rectangle into the scratch mask and
// combines it with the current clip.
func (c *Compositor) polygonMask(pl *Placement) *region.Bitmap {
	w, h := c.Surface.Size()
	if c.mask == nil || c.mask.Width != w || c.mask.Height != h {
		c.mask = region.NewBitmap(w, h)
	}
	c.mask.Clear()

	corners := pl.Corners()
	pts := make([]vec.Vec2, len(corners))
	for i, p := range corners {
		pts[i] = vec.Vec2{X: p.X, Y: float64(h) - p.Y}
	}
	c.mask.FillPolygon(pts, false)
	if c.Clip != nil {
		c.mask.Compose(region.OpAnd, c.Clip)
	}
	return c.mask
}

// unmask removes canvas pixel (tx, ty) from the mask.
func (c *Compositor) unmask(tx, ty int) {
	c.mask.Set(tx, c.mask.Height-1-ty, false)
}

// blit packs the sampled image and draws it through the mask.  The clip
// mask of the surface is restored afterwards.
func (c *Compositor) blit(mask *region.Bitmap, box Box, packFn func(fx, fy []int) (*pack.Image, error)) error {
	ew, eh := box.XMax-box.XMin+1, box.YMax-box.YMin+1
	img, err := packFn(zoom.Table(ew, ew, 0), zoom.Table(eh, eh, 0))
	if err != nil {
		return err
	}

	c.Surface.SetClipMask(mask)
	defer c.Surface.SetClipMask(c.Clip)

	_, h := c.Surface.Size()
	return c.Surface.PutImage(img, box.XMin, h-1-box.YMax)
}
