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
	"math"
	"slices"

	"seehuhn.de/go/canvas/pixel"
)

// Scratch is a reusable byte buffer which grows on demand and never
// shrinks.
type Scratch struct {
	// MaxBytes limits the size of the buffer.  Zero means no limit.
	MaxBytes int

	buf []byte
}

// Get returns a cleared buffer of n bytes.  The buffer is valid until the
// next call to Get.  If n exceeds the limit, the old buffer is kept and
// ErrTooLarge is returned.
func (s *Scratch) Get(n int) ([]byte, error) {
	if n < 0 || s.MaxBytes > 0 && n > s.MaxBytes {
		return nil, fmt.Errorf("%d bytes requested: %w", n, ErrTooLarge)
	}
	s.buf = slices.Grow(s.buf[:0], n)[:n]
	clear(s.buf)
	return s.buf, nil
}

// Cap returns the current capacity of the buffer.
func (s *Scratch) Cap() int {
	return cap(s.buf)
}

// image returns an image on top of the scratch buffer.
func (s *Scratch) image(w, h, bpp int, order pixel.ByteOrder) (*Image, error) {
	if err := checkBPP(bpp); err != nil {
		return nil, err
	}
	stride := Stride(w, bpp)
	if h > 0 && stride > math.MaxInt/h {
		return nil, fmt.Errorf("%dx%d image: %w", w, h, ErrTooLarge)
	}
	buf, err := s.Get(stride * h)
	if err != nil {
		return nil, err
	}
	return &Image{
		Width:        w,
		Height:       h,
		Stride:       stride,
		BitsPerPixel: bpp,
		Order:        order,
		Pix:          buf,
	}, nil
}
