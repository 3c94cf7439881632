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

import "math"

// PaletteMode selects how [PaletteResolver.SetPalette] treats colors
// which are already allocated.
type PaletteMode int

const (
	// Polite allocates as many palette colors as the shared colormap
	// allows, approximating the rest.
	Polite PaletteMode = iota

	// Force gives the palette priority: the leading entries of the old
	// table are kept only as far as the palette leaves room for them.
	Force
)

// Channel divisors for the nearest color search.  They weight the 16-bit
// channel differences by approximately 0.30, 0.59 and 0.11.
const (
	redDivisor   = 850
	greenDivisor = 432
	blueDivisor  = 2318
)

// PaletteResolver resolves colors on a palette-limited display.  It keeps
// a table of the colors currently stored in the display colormap, which
// is used to approximate colors once the colormap is full.
type PaletteResolver struct {
	cm      Colormap
	table   []Color
	cache   map[RGB]Color
	retries int
}

// NewPalette returns the resolver for a palette-limited visual.  The color
// table is loaded from cm.
func NewPalette(v Visual, cm Colormap) *PaletteResolver {
	n := min(v.TableSize(), cm.Len())
	p := &PaletteResolver{
		cm:      cm,
		table:   make([]Color, n),
		cache:   make(map[RGB]Color),
		retries: 1,
	}
	p.Refresh()
	return p
}

// SetRetries changes the number of table refreshes [PaletteResolver.Resolve]
// performs before it settles for an approximate color.
func (p *PaletteResolver) SetRetries(n int) {
	p.retries = max(n, 0)
	clear(p.cache)
}

// Table returns the current color table.  The returned slice must not be
// modified.
func (p *PaletteResolver) Table() []Color {
	return p.table
}

// Refresh reloads the color table from the colormap.  This must be called
// whenever the colormap may have been changed by somebody else.
func (p *PaletteResolver) Refresh() {
	for i := range p.table {
		c := p.cm.Query(uint32(i))
		c.Pixel = uint32(i)
		p.table[i] = c
	}
	clear(p.cache)
}

// Resolve implements the [Resolver] interface.  Repeated calls with the
// same color return the same result without touching the colormap.
func (p *PaletteResolver) Resolve(c RGB) Color {
	return p.ResolveWithRetry(c, p.retries)
}

// ResolveWithRetry returns the device color for c.  If c cannot be
// allocated exactly, the nearest entry of the color table is used.  If
// that entry cannot be allocated either, the table is refreshed from the
// colormap and the search repeated, at most maxRetries times.  After the
// last attempt the nearest entry of the (possibly stale) table is
// returned.
func (p *PaletteResolver) ResolveWithRetry(c RGB, maxRetries int) Color {
	if col, ok := p.cache[c]; ok {
		return col
	}

	want := intensities(c)
	if pix, ok := p.cm.Alloc(want.R, want.G, want.B); ok {
		want.Pixel = pix
		if int(pix) < len(p.table) {
			p.table[pix] = want
		}
		p.cache[c] = want
		return want
	}

	if len(p.table) == 0 {
		return want
	}

	for attempt := 0; ; attempt++ {
		best := p.table[Nearest(p.table, want)]
		if pix, ok := p.cm.Alloc(best.R, best.G, best.B); ok {
			best.Pixel = pix
			p.cache[c] = best
			return best
		}
		if attempt >= maxRetries {
			return best
		}
		p.Refresh()
	}
}

// ToRGB implements the [Resolver] interface, by querying the live
// colormap.
func (p *PaletteResolver) ToRGB(pixel uint32) RGB {
	return p.cm.Query(pixel).RGB()
}

// SetPalette installs a palette.  Cells held by the current color table
// are released first.
func (p *PaletteResolver) SetPalette(palette []RGB, mode PaletteMode) {
	old := make([]uint32, len(p.table))
	for i, c := range p.table {
		old[i] = c.Pixel
	}
	p.cm.Free(old...)

	if mode == Force {
		keep := len(p.table) - len(palette)
		for i := 0; i < keep; i++ {
			c := p.table[i]
			p.cm.Alloc(c.R, c.G, c.B)
		}
		for _, rgb := range palette {
			c := intensities(rgb)
			p.cm.Alloc(c.R, c.G, c.B)
		}
		p.Refresh()
		return
	}

	p.Refresh()
	for _, rgb := range palette {
		p.Resolve(rgb)
	}
}

// Nearest returns the index of the table entry closest to c.  Channel
// differences are weighted by approximate luminance sensitivity.  Of
// several entries with the same distance, the first one is returned.
func Nearest(table []Color, c Color) int {
	pos := 0
	minDist := uint64(math.MaxUint64)
	for i, e := range table {
		dr := (int64(c.R) - int64(e.R)) / redDivisor
		dg := (int64(c.G) - int64(e.G)) / greenDivisor
		db := (int64(c.B) - int64(e.B)) / blueDivisor
		dist := uint64(dr*dr + dg*dg + db*db)
		if dist < minDist {
			minDist = dist
			pos = i
		}
	}
	return pos
}
