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

package pixel

// DirectTable quantizes 8-bit channel values for a direct-color visual.
// Entry i is the channel value which is used in place of i.
type DirectTable [256]uint8

// Identity returns the table which leaves all values unchanged.
func Identity() *DirectTable {
	t := new(DirectTable)
	for i := range t {
		t[i] = uint8(i)
	}
	return t
}

// BuildDirectTable probes which gray levels the colormap of a direct-color
// visual can actually provide.  Levels which could not be allocated are
// replaced by the nearest level which could, preferring the darker one
// only if it is strictly closer.
func BuildDirectTable(v Visual, cm Colormap) *DirectTable {
	t := Identity()

	n := min(v.ColormapSize, 256)
	if n < 2 {
		return t
	}

	rMask := mask16(v.RedMask)
	gMask := mask16(v.GreenMask)
	bMask := mask16(v.BlueMask)

	got := make([]bool, n)
	numGot := 0
	for i := range n {
		level := uint16(i * 0xffff / (n - 1))
		if _, ok := cm.Alloc(level&rMask, level&gMask, level&bMask); ok {
			got[i] = true
			numGot++
		}
	}
	if numGot == 0 {
		return t
	}

	const far = 999
	for i := range n {
		if got[i] {
			continue
		}
		back := far
		for j := i - 1; j >= 0; j-- {
			if got[j] {
				back = i - j
				break
			}
		}
		fwd := far
		for j := i + 1; j < n; j++ {
			if got[j] {
				fwd = j - i
				break
			}
		}
		switch {
		case back < fwd:
			t[i] = t[i-back]
		case fwd < far:
			t[i] = t[i+fwd]
		}
	}
	return t
}

// mask16 aligns the high bit of a channel mask with bit 15.
func mask16(m uint32) uint16 {
	shift := highBit(m) - 15
	if shift < 0 {
		return uint16(m << -shift)
	}
	return uint16(m >> shift)
}

// DirectShift returns the right shift which maps 8-bit channel values onto
// the cells of the colormap of v.
func DirectShift(v Visual) int {
	n := min(v.ColormapSize, 256)
	if n < 2 {
		return 0
	}
	return 7 - highBit(uint32(n-1))
}

// Quantize remaps an 8-bit channel value.  The shift must be the value
// returned by [DirectShift] for the visual the table was built for.
func (t *DirectTable) Quantize(c uint8, shift int) uint8 {
	return t[c>>shift] << shift
}
