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

// Package device defines the interfaces between a canvas and the
// libraries which do the actual drawing.
//
// All coordinates in this package are device coordinates: the origin is
// the top-left corner of the surface, y grows downwards, and pixel (x, y)
// covers the unit square [x, x+1) × [y, y+1).
package device

import (
	"errors"
	"image"

	"golang.org/x/image/font"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
)

// ErrNotSupported is returned by surfaces for operations they cannot
// perform, for example reading back pixels from a file.
var ErrNotSupported = errors.New("operation not supported by surface")

// Op is the raster operation which combines drawn pixels with the
// pixels already on the surface.
type Op int

const (
	OpCopy  Op = iota // dst = src
	OpXor             // dst = src ^ dst
	OpEquiv           // dst = ^(src ^ dst)
	OpAnd             // dst = src & dst
	OpOr              // dst = src | dst
)

// Apply combines a source and destination pixel value.  Only the bits in
// mask are kept.
func (op Op) Apply(src, dst, mask uint32) uint32 {
	var v uint32
	switch op {
	case OpXor:
		v = src ^ dst
	case OpEquiv:
		v = ^(src ^ dst)
	case OpAnd:
		v = src & dst
	case OpOr:
		v = src | dst
	default:
		v = src
	}
	return v & mask
}

// LineStyle describes how lines are stroked.
type LineStyle struct {
	// Width is the line width in pixels.  Zero selects thin lines
	// which are drawn with exactly one pixel per step.
	Width float64

	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// Dash gives alternating lengths of dashes and gaps.  A nil slice
	// gives solid lines.
	Dash      []float64
	DashPhase float64

	// DoubleDash causes the gaps between dashes to be drawn in the
	// background color.
	DoubleDash bool
}

// FillKind selects how the interior of shapes is painted.
type FillKind int

const (
	// FillSolid paints with the foreground color.
	FillSolid FillKind = iota

	// FillStippled paints the foreground color where the stipple bitmap
	// is set, and leaves the other pixels alone.
	FillStippled

	// FillOpaqueStippled paints the foreground color where the stipple
	// bitmap is set, and the background color elsewhere.
	FillOpaqueStippled

	// FillTiled paints the pixels of the tile image.
	FillTiled
)

// FillStyle describes how the interior of shapes is painted.  Stipple and
// tile are repeated over the whole surface, starting at the origin.
type FillStyle struct {
	Kind    FillKind
	Stipple *region.Bitmap
	Tile    *pack.Image
}

// Surface is a drawable area with pixels in the layout of a display.
//
// The state set through the Set* methods applies to all following
// drawing operations.  A surface may keep references to the clip mask,
// stipple and tile until they are replaced; the caller must not change
// them in the mean time.
type Surface interface {
	Visual() pixel.Visual
	Size() (w, h int)

	// Colormap returns the display colormap, or nil if the display does
	// not have one.
	Colormap() pixel.Colormap

	SetForeground(pixel uint32)
	SetBackground(pixel uint32)
	SetOp(op Op)

	// SetClipMask restricts drawing to the pixels set in mask.  The mask
	// has the size of the surface.  A nil mask removes the restriction.
	SetClipMask(mask *region.Bitmap)

	SetLine(style LineStyle)
	SetFill(style FillStyle)

	DrawLine(x0, y0, x1, y1 float64) error
	DrawLines(pts []vec.Vec2) error
	StrokePath(p *path.Data) error
	FillPolygon(pts []vec.Vec2, evenOdd bool) error
	FillPath(p *path.Data, evenOdd bool) error
	FillRect(x, y, w, h int) error
	DrawPoint(x, y int) error

	// DrawMask paints the foreground color through an alpha mask placed
	// with its top-left corner at (x, y).  Mask values of 128 and more
	// are painted.
	DrawMask(mask *image.Alpha, x, y int) error

	// PutImage copies packed pixels to the surface, with the top-left
	// corner of the image at (x, y).  The clip mask applies.
	PutImage(img *pack.Image, x, y int) error

	// GetImage reads back a rectangle of pixels in the native layout.
	GetImage(x, y, w, h int) (*pack.Image, error)

	// CopyArea copies the rectangle at (sx, sy) to (dx, dy).  The clip
	// mask applies to the destination.
	CopyArea(sx, sy, w, h, dx, dy int) error

	Flush() error
}

// Metrics describes the vertical dimensions of a font, in pixels.
type Metrics struct {
	Height  int // line height
	Ascent  int
	Descent int
}

// FontSpec describes a font by family, style and size.
type FontSpec struct {
	Family string
	Bold   bool
	Italic bool
	Size   float64 // in points

	// Underline and Strikeout are drawn by the canvas, text layouts
	// ignore them.
	Underline bool
	Strikeout bool
}

// TextLayout measures and renders text.
type TextLayout interface {
	// SetFont selects the font for the following calls.
	SetFont(spec FontSpec, dpi float64) error

	// Face returns the selected font face.
	Face() font.Face

	Metrics() Metrics

	// Measure returns the advance width and the height of s.
	Measure(s string) (w, h int)

	// Render draws s into a new alpha mask.  The baseline origin of the
	// text is at (ox, oy) in mask coordinates.
	Render(s string) (mask *image.Alpha, ox, oy int)
}
