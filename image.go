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

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/canvas/affine"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/zoom"
)

// placement describes where a part of a source image is drawn.
type placement struct {
	x, y, w, h             int
	xmin, xmax, ymin, ymax int
}

// fix fills in the defaults for the placement of an iw×ih image and checks
// the source rectangle.
func (pl *placement) fix(iw, ih int) error {
	if pl.w == 0 {
		pl.w = pl.xmax - pl.xmin + 1
	}
	if pl.h == 0 {
		pl.h = pl.ymax - pl.ymin + 1
	}
	if pl.xmin < 0 || pl.xmax >= iw || pl.xmin > pl.xmax ||
		pl.ymin < 0 || pl.ymax >= ih || pl.ymin > pl.ymax {
		return fmt.Errorf("%w: rectangle [%d,%d]×[%d,%d] outside %dx%d image",
			errInvalidImage, pl.xmin, pl.xmax, pl.ymin, pl.ymax, iw, ih)
	}
	return nil
}

func (pl *placement) toAffine(m matrix.Matrix) affine.Placement {
	return affine.Placement{
		X: pl.x, Y: pl.y, W: pl.w, H: pl.h,
		XMin: pl.xmin, XMax: pl.xmax, YMin: pl.ymin, YMax: pl.ymax,
		Matrix: m,
	}
}

// fit computes the visible part of the placement and the resampling
// tables.  The results are in device space; fy runs from the bottom row
// upwards.
func (c *Canvas) fit(pl *placement) (x, y int, fx, fy []int, ok bool) {
	sx, ok := zoom.Fit(c.width, pl.x, pl.w, pl.xmin, pl.xmax-pl.xmin+1, false)
	if !ok {
		return 0, 0, nil, nil, false
	}
	sy, ok := zoom.Fit(c.height, c.height-(pl.y+pl.h), pl.h, pl.ymin, pl.ymax-pl.ymin+1, true)
	if !ok {
		return 0, 0, nil, nil, false
	}
	fx = zoom.Table(sx.DestLen, sx.SrcLen, sx.Src)
	fy = zoom.Table(sy.DestLen, sy.SrcLen, sy.Src)
	return sx.Dest, sy.Dest, fx, fy, true
}

// PutImageRGB draws an RGB image with its bottom-left corner at (x, y),
// scaled to w×h pixels.  If w or h is zero, the image size is used.
func (c *Canvas) PutImageRGB(src *pack.RGBImage, x, y, w, h int) error {
	return c.PutImageRectRGB(src, x, y, w, h, 0, src.Width-1, 0, src.Height-1)
}

// PutImageRectRGB draws the part [xmin, xmax] × [ymin, ymax] of an RGB
// image, scaled to w×h pixels with the bottom-left corner at (x, y).  An
// alpha channel in src is ignored.
func (c *Canvas) PutImageRectRGB(src *pack.RGBImage, x, y, w, h, xmin, xmax, ymin, ymax int) error {
	opaque := *src
	opaque.A = nil
	return c.putRGB("PutImageRectRGB", &opaque, placement{x, y, w, h, xmin, xmax, ymin, ymax})
}

// PutImageRectRGBA is like [Canvas.PutImageRectRGB], but blends the image
// with the canvas using its alpha channel.
func (c *Canvas) PutImageRectRGBA(src *pack.RGBImage, x, y, w, h, xmin, xmax, ymin, ymax int) error {
	return c.putRGB("PutImageRectRGBA", src, placement{x, y, w, h, xmin, xmax, ymin, ymax})
}

func (c *Canvas) putRGB(op string, src *pack.RGBImage, pl placement) error {
	if err := checkRGB(src); err != nil {
		return c.report(op, err)
	}
	if err := pl.fix(src.Width, src.Height); err != nil {
		return c.report(op, err)
	}
	if pl.w <= 0 || pl.h <= 0 {
		return nil
	}

	if c.matrix != nil {
		return c.report(op, c.comp.RGBA(src, pl.toAffine(*c.matrix)))
	}

	x, y, fx, fy, ok := c.fit(&pl)
	if !ok {
		return nil
	}
	var under *pack.Image
	if src.A != nil {
		var err error
		under, err = c.surf.GetImage(x, y, len(fx), len(fy))
		if err != nil {
			return c.report(op, err)
		}
	}
	img, err := c.packer.RGB(src, fx, fy, under)
	if err != nil {
		return c.report(op, err)
	}
	c.logger().Debug("image packed", "op", op,
		"width", img.Width, "height", img.Height, "scratch", c.packer.Scratch.Cap())
	return c.report(op, c.surf.PutImage(img, x, y))
}

// PutImageRectMap draws the part [xmin, xmax] × [ymin, ymax] of an
// indexed image, scaled to w×h pixels with the bottom-left corner at
// (x, y).
func (c *Canvas) PutImageRectMap(src *pack.IndexedImage, x, y, w, h, xmin, xmax, ymin, ymax int) error {
	const op = "PutImageRectMap"
	if src.Width <= 0 || src.Height <= 0 || len(src.Pix) < src.Width*src.Height {
		return c.report(op, fmt.Errorf("%w: %dx%d image with %d pixels",
			errInvalidImage, src.Width, src.Height, len(src.Pix)))
	}
	pl := placement{x, y, w, h, xmin, xmax, ymin, ymax}
	if err := pl.fix(src.Width, src.Height); err != nil {
		return c.report(op, err)
	}
	if pl.w <= 0 || pl.h <= 0 {
		return nil
	}

	if c.matrix != nil {
		return c.report(op, c.comp.Map(src, pl.toAffine(*c.matrix)))
	}

	dx, dy, fx, fy, ok := c.fit(&pl)
	if !ok {
		return nil
	}
	img, err := c.packer.Indexed(src, fx, fy)
	if err != nil {
		return c.report(op, err)
	}
	return c.report(op, c.surf.PutImage(img, dx, dy))
}

func checkRGB(src *pack.RGBImage) error {
	n := src.Width * src.Height
	if src.Width <= 0 || src.Height <= 0 ||
		len(src.R) < n || len(src.G) < n || len(src.B) < n ||
		(src.A != nil && len(src.A) < n) {
		return fmt.Errorf("%w: %dx%d RGB image", errInvalidImage, src.Width, src.Height)
	}
	return nil
}

// GetImageRGB reads back the w×h pixels with the bottom-left corner at
// (x, y).  The rows of the result start at the bottom.
func (c *Canvas) GetImageRGB(x, y, w, h int) (*pack.RGBImage, error) {
	img, err := c.surf.GetImage(x, c.height-(y+h), w, h)
	if err != nil {
		return nil, c.report("GetImageRGB", err)
	}
	return pack.Unpack(img, c.res), nil
}

// ServerImage holds pixels in the layout of the display, for fast copying
// to and from the canvas.
type ServerImage struct {
	img *pack.Image
}

// Size returns the dimensions of the image.
func (si *ServerImage) Size() (w, h int) {
	return si.img.Width, si.img.Height
}

// CreateImage allocates a w×h server image, filled with white.
func (c *Canvas) CreateImage(w, h int) (*ServerImage, error) {
	img, err := pack.NewImageFor(c.visual, w, h)
	if err != nil {
		return nil, c.report("CreateImage", err)
	}
	white := c.res.Resolve(pixel.White).Pixel
	for y := range h {
		for x := range w {
			img.SetPixelAt(x, y, white)
		}
	}
	return &ServerImage{img: img}, nil
}

// GetImage copies the canvas pixels with bottom-left corner (x, y) into si.
func (c *Canvas) GetImage(si *ServerImage, x, y int) error {
	w, h := si.Size()
	img, err := c.surf.GetImage(x, c.height-(y+h), w, h)
	if err != nil {
		return c.report("GetImage", err)
	}
	for row := range h {
		for col := range w {
			si.img.SetPixelAt(col, row, img.PixelAt(col, row))
		}
	}
	return nil
}

// PutImageRect copies the part [xmin, xmax] × [ymin, ymax] of si to the
// canvas, with the bottom-left corner at (x, y).
func (c *Canvas) PutImageRect(si *ServerImage, x, y, xmin, xmax, ymin, ymax int) error {
	w, h := si.Size()
	xmin, ymin = max(xmin, 0), max(ymin, 0)
	xmax, ymax = min(xmax, w-1), min(ymax, h-1)
	if xmin > xmax || ymin > ymax {
		return nil
	}
	pw, ph := xmax-xmin+1, ymax-ymin+1
	part := si.img.SubImage(xmin, h-1-ymax, pw, ph)
	return c.report("PutImageRect", c.surf.PutImage(part, x, c.height-(y+ph)))
}

// ScrollArea moves the pixels in [xmin, xmax] × [ymin, ymax] by (dx, dy).
func (c *Canvas) ScrollArea(xmin, xmax, ymin, ymax, dx, dy int) {
	w, h := xmax-xmin+1, ymax-ymin+1
	if w <= 0 || h <= 0 {
		return
	}
	sy := c.deviceRow(ymax)
	c.report("ScrollArea", c.surf.CopyArea(xmin, sy, w, h, xmin+dx, sy-dy))
}
