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

package pack

import (
	"fmt"

	"seehuhn.de/go/canvas/pixel"
)

// Image is a buffer of device pixels.  Row 0 is the top row of the image,
// as on the display.  Rows start at multiples of 4 bytes.
type Image struct {
	Width, Height int
	Stride        int
	BitsPerPixel  int // 8, 16, 24 or 32
	Order         pixel.ByteOrder
	Pix           []byte
}

// Stride returns the row length in bytes for the given width and pixel
// size, padded to a multiple of 4.
func Stride(width, bitsPerPixel int) int {
	return (width*bitsPerPixel/8 + 3) &^ 3
}

// NewImage allocates a cleared image.
func NewImage(w, h, bitsPerPixel int, order pixel.ByteOrder) (*Image, error) {
	if err := checkBPP(bitsPerPixel); err != nil {
		return nil, err
	}
	w, h = max(w, 0), max(h, 0)
	stride := Stride(w, bitsPerPixel)
	return &Image{
		Width:        w,
		Height:       h,
		Stride:       stride,
		BitsPerPixel: bitsPerPixel,
		Order:        order,
		Pix:          make([]byte, stride*h),
	}, nil
}

// NewImageFor allocates a cleared image in the native layout of v.
func NewImageFor(v pixel.Visual, w, h int) (*Image, error) {
	return NewImage(w, h, v.BitsPerPixel, v.Order)
}

func checkBPP(bpp int) error {
	switch bpp {
	case 8, 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%d bits per pixel: %w", bpp, ErrUnsupportedLayout)
}

// In reports whether (x, y) is inside the image.
func (img *Image) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < img.Width && y < img.Height
}

// PixelAt returns the pixel value at (x, y).  Pixels outside the image
// read as zero.
func (img *Image) PixelAt(x, y int) uint32 {
	if !img.In(x, y) {
		return 0
	}
	p := img.Pix[y*img.Stride+x*img.BitsPerPixel/8:]
	msb := img.Order == pixel.MSBFirst
	switch img.BitsPerPixel {
	case 8:
		return uint32(p[0])
	case 16:
		if msb {
			return uint32(p[0])<<8 | uint32(p[1])
		}
		return uint32(p[1])<<8 | uint32(p[0])
	case 24:
		if msb {
			return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
		}
		return uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
	case 32:
		if msb {
			return uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
		}
		return uint32(p[3])<<24 | uint32(p[2])<<16 | uint32(p[1])<<8 | uint32(p[0])
	}
	return 0
}

// SetPixelAt stores a pixel value at (x, y).  Bits which do not fit into
// a pixel are dropped.  Pixels outside the image are ignored.
func (img *Image) SetPixelAt(x, y int, v uint32) {
	if !img.In(x, y) {
		return
	}
	p := img.Pix[y*img.Stride+x*img.BitsPerPixel/8:]
	msb := img.Order == pixel.MSBFirst
	switch img.BitsPerPixel {
	case 8:
		p[0] = byte(v)
	case 16:
		if msb {
			p[0], p[1] = byte(v>>8), byte(v)
		} else {
			p[0], p[1] = byte(v), byte(v>>8)
		}
	case 24:
		if msb {
			p[0], p[1], p[2] = byte(v>>16), byte(v>>8), byte(v)
		} else {
			p[0], p[1], p[2] = byte(v), byte(v>>8), byte(v>>16)
		}
	case 32:
		if msb {
			p[0], p[1], p[2], p[3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
		} else {
			p[0], p[1], p[2], p[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
		}
	}
}

// SubImage returns a copy of the rectangle [x, x+w) × [y, y+h).  Parts
// outside img read as zero.
func (img *Image) SubImage(x, y, w, h int) *Image {
	sub, _ := NewImage(w, h, img.BitsPerPixel, img.Order)
	bpp := img.BitsPerPixel / 8
	for j := range sub.Height {
		sy := y + j
		if sy < 0 || sy >= img.Height {
			continue
		}
		x0, x1 := max(x, 0), min(x+w, img.Width)
		if x0 >= x1 {
			continue
		}
		src := img.Pix[sy*img.Stride+x0*bpp : sy*img.Stride+x1*bpp]
		copy(sub.Pix[j*sub.Stride+(x0-x)*bpp:], src)
	}
	return sub
}

// Clone returns an independent copy of img.
func (img *Image) Clone() *Image {
	c := *img
	c.Pix = append([]byte(nil), img.Pix...)
	return &c
}
