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

// Package textface measures and renders text with OpenType fonts.
//
// The Go fonts are built in.  The usual PostScript family names are mapped
// onto them: "Times" and "Helvetica" use Go, "Courier" uses Go Mono.
package textface

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"seehuhn.de/go/canvas/device"
)

// style indices into a family
const (
	regular = iota
	bold
	italic
	boldItalic
)

type family struct {
	data  [4][]byte
	fonts [4]*opentype.Font
}

// Layout implements [device.TextLayout].
type Layout struct {
	families map[string]*family
	aliases  map[string]string

	face    font.Face
	metrics device.Metrics
}

var _ device.TextLayout = (*Layout)(nil)

// New returns a text layout with the Go fonts.
func New() *Layout {
	l := &Layout{
		families: map[string]*family{},
		aliases:  map[string]string{},
	}
	l.add("go", goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF)
	l.add("go mono", gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF)
	for _, name := range []string{"system", "times", "times new roman", "helvetica", "arial", "serif", "sans", "sans serif"} {
		l.aliases[name] = "go"
	}
	for _, name := range []string{"courier", "courier new", "monospace"} {
		l.aliases[name] = "go mono"
	}
	return l
}

func (l *Layout) add(name string, r, b, i, bi []byte) {
	l.families[name] = &family{data: [4][]byte{r, b, i, bi}}
}

// Register adds a font family.  Styles which are missing use the regular
// font.  The fonts are parsed when they are first used.
func (l *Layout) Register(name string, regular, bold, italic, boldItalic []byte) error {
	if regular == nil {
		return fmt.Errorf("font family %q: missing regular font", name)
	}
	if _, err := opentype.Parse(regular); err != nil {
		return fmt.Errorf("font family %q: %w", name, err)
	}
	l.add(strings.ToLower(name), regular, bold, italic, boldItalic)
	return nil
}

func (l *Layout) lookup(name string) (*family, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := l.aliases[key]; ok {
		key = alias
	}
	fam, ok := l.families[key]
	return fam, ok
}

func (fam *family) font(style int) (*opentype.Font, error) {
	if fam.data[style] == nil {
		style = regular
	}
	if fam.fonts[style] == nil {
		f, err := opentype.Parse(fam.data[style])
		if err != nil {
			return nil, err
		}
		fam.fonts[style] = f
	}
	return fam.fonts[style], nil
}

// SetFont implements the [device.TextLayout] interface.  Unknown families
// are an error.  Negative sizes are in pixels.
func (l *Layout) SetFont(spec device.FontSpec, dpi float64) error {
	fam, ok := l.lookup(spec.Family)
	if !ok {
		return fmt.Errorf("unknown font family %q", spec.Family)
	}
	style := regular
	if spec.Bold {
		style |= bold
	}
	if spec.Italic {
		style |= italic
	}
	f, err := fam.font(style)
	if err != nil {
		return fmt.Errorf("font %s: %w", spec, err)
	}

	size := spec.Size
	if size < 0 {
		size = -size * 72 / dpi
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("font %s: %w", spec, err)
	}

	m := face.Metrics()
	l.face = face
	l.metrics = device.Metrics{
		Height:  m.Height.Ceil(),
		Ascent:  m.Ascent.Ceil(),
		Descent: m.Descent.Ceil(),
	}
	return nil
}

// Face implements the [device.TextLayout] interface.
func (l *Layout) Face() font.Face {
	return l.face
}

// Metrics implements the [device.TextLayout] interface.
func (l *Layout) Metrics() device.Metrics {
	return l.metrics
}

// Measure implements the [device.TextLayout] interface.
func (l *Layout) Measure(s string) (w, h int) {
	if l.face == nil {
		return 0, 0
	}
	return font.MeasureString(l.face, s).Ceil(), l.metrics.Ascent + l.metrics.Descent
}

// Render implements the [device.TextLayout] interface.
func (l *Layout) Render(s string) (*image.Alpha, int, int) {
	w, h := l.Measure(s)
	mask := image.NewAlpha(image.Rect(0, 0, max(w, 1), max(h, 1)))
	if l.face == nil {
		return mask, 0, 0
	}
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: l.face,
		Dot:  fixed.P(0, l.metrics.Ascent),
	}
	d.DrawString(s)
	return mask, 0, l.metrics.Ascent
}
