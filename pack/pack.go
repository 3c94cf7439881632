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

// Package pack converts device-independent images into buffers of
// device-native pixels.
//
// Source images use the canvas convention: row 0 is the bottom row.
// Packed images use the display convention: row 0 is the top row.  The
// zoom tables passed to the packers select, for each packed column and
// row, the source column and row to use, with fy[0] giving the source
// row of the bottom row of the packed image.
package pack

import (
	"errors"
	"fmt"

	"seehuhn.de/go/canvas/pixel"
)

var (
	// ErrLayoutMismatch indicates that the display layout does not match
	// what its color depth requires.
	ErrLayoutMismatch = errors.New("pixel layout does not match display depth")

	// ErrUnsupportedLayout indicates a pixel size the packer cannot write.
	ErrUnsupportedLayout = errors.New("unsupported pixel layout")

	// ErrTooLarge indicates that a buffer would exceed the scratch limit.
	ErrTooLarge = errors.New("image buffer too large")
)

// IndexedImage is an image of palette indices.
type IndexedImage struct {
	Width, Height int
	Pix           []uint8 // Width*Height indices, bottom row first
	Palette       []pixel.RGB
}

// RGBImage is an image with separate channel planes.  The alpha plane is
// optional.
type RGBImage struct {
	Width, Height int
	R, G, B       []uint8 // Width*Height values each, bottom row first
	A             []uint8
}

// Packer produces packed images for one display.
//
// The returned images share the packer's scratch buffer and are only
// valid until the next call.
type Packer struct {
	Visual   pixel.Visual
	Resolver pixel.Resolver

	// Direct, if set, quantizes the channels of RGB images for a
	// direct-color display.
	Direct *pixel.DirectTable

	Scratch Scratch

	slots    []uint32
	resolved []bool
}

// NewPacker returns a packer for the given display.
func NewPacker(v pixel.Visual, r pixel.Resolver) *Packer {
	return &Packer{Visual: v, Resolver: r}
}

// Indexed packs an indexed image.  Every palette slot used is resolved
// once.
//
// Indices outside the palette are shown in black.
func (p *Packer) Indexed(src *IndexedImage, fx, fy []int) (*Image, error) {
	ew, eh := len(fx), len(fy)

	bpp, order, err := p.indexedLayout()
	if err != nil {
		return nil, err
	}

	palSize := 0
	for _, sy := range fy {
		row := src.Pix[sy*src.Width:]
		for _, sx := range fx {
			palSize = max(palSize, int(row[sx])+1)
		}
	}
	p.slots = growSlice(p.slots, palSize)
	p.resolved = growSlice(p.resolved, palSize)
	clear(p.resolved)

	img, err := p.Scratch.image(ew, eh, bpp, order)
	if err != nil {
		return nil, err
	}
	for i, sy := range fy {
		row := src.Pix[sy*src.Width:]
		dy := eh - 1 - i
		for j, sx := range fx {
			img.SetPixelAt(j, dy, p.slot(src.Palette, row[sx]))
		}
	}
	return img, nil
}

// indexedLayout returns the pixel size and byte order used for indexed
// images on the display.
func (p *Packer) indexedLayout() (int, pixel.ByteOrder, error) {
	v := p.Visual
	switch v.Depth {
	case 8:
		return 8, v.Order, nil
	case 12, 15, 16:
		if v.Depth == 12 && v.BitsPerPixel != 16 {
			return 0, 0, fmt.Errorf("depth %d with %d bits per pixel: %w",
				v.Depth, v.BitsPerPixel, ErrLayoutMismatch)
		}
		return 16, v.Order, nil
	case 24, 32:
		if v.BitsPerPixel == 32 {
			return 32, v.Order, nil
		}
		return 24, v.Order, nil
	default:
		return 32, pixel.MSBFirst, nil
	}
}

func (p *Packer) slot(palette []pixel.RGB, idx uint8) uint32 {
	if !p.resolved[idx] {
		c := pixel.Black
		if int(idx) < len(palette) {
			c = palette[idx]
		}
		p.slots[idx] = p.Resolver.Resolve(c).Pixel
		p.resolved[idx] = true
	}
	return p.slots[idx]
}

// RGB packs an RGB image.  If the image has an alpha plane, each pixel is
// blended with the pixel at the same position of under, which must be
// at least as large as the packed image.
func (p *Packer) RGB(src *RGBImage, fx, fy []int, under *Image) (*Image, error) {
	ew, eh := len(fx), len(fy)
	v := p.Visual

	img, err := p.Scratch.image(ew, eh, v.BitsPerPixel, v.Order)
	if err != nil {
		return nil, err
	}

	var enc func(r, g, b uint8) uint32
	if v.PaletteLimited() {
		enc = func(r, g, b uint8) uint32 {
			return p.Resolver.Resolve(pixel.Encode(r, g, b)).Pixel
		}
	} else {
		tc := pixel.NewTrueColor(v)
		enc = tc.Encode
		if p.Direct != nil {
			shift := pixel.DirectShift(v)
			enc = func(r, g, b uint8) uint32 {
				return tc.Encode(
					p.Direct.Quantize(r, shift),
					p.Direct.Quantize(g, shift),
					p.Direct.Quantize(b, shift))
			}
		}
	}

	blend := src.A != nil && under != nil
	for i, sy := range fy {
		base := sy * src.Width
		dy := eh - 1 - i
		for j, sx := range fx {
			k := base + sx
			r, g, b := src.R[k], src.G[k], src.B[k]
			if blend {
				old := p.Resolver.ToRGB(under.PixelAt(j, dy))
				a := src.A[k]
				r = Blend(r, old.Red(), a)
				g = Blend(g, old.Green(), a)
				b = Blend(b, old.Blue(), a)
			}
			img.SetPixelAt(j, dy, enc(r, g, b))
		}
	}
	return img, nil
}

// Blend mixes a source channel value over a destination value.
func Blend(src, dst, alpha uint8) uint8 {
	a := uint32(alpha)
	return uint8((uint32(src)*a + uint32(dst)*(255-a)) / 255)
}

// Unpack converts a packed image back into RGB planes, using the
// packed-image row convention.  Row 0 of the result is the bottom row.
func Unpack(img *Image, r pixel.Resolver) *RGBImage {
	n := img.Width * img.Height
	out := &RGBImage{
		Width:  img.Width,
		Height: img.Height,
		R:      make([]uint8, n),
		G:      make([]uint8, n),
		B:      make([]uint8, n),
	}
	for y := range img.Height {
		k := (img.Height - 1 - y) * img.Width
		for x := range img.Width {
			c := r.ToRGB(img.PixelAt(x, y))
			out.R[k+x] = c.Red()
			out.G[k+x] = c.Green()
			out.B[k+x] = c.Blue()
		}
	}
	return out
}

func growSlice[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
