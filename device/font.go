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

package device

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFontSpec parses a font description of the form
// "Family, Style... Size", for example "Times, Bold Italic 12".  The
// style words are optional.  Negative sizes are in pixels instead of
// points, and are returned unchanged.
func ParseFontSpec(s string) (FontSpec, error) {
	family, rest, ok := strings.Cut(s, ",")
	family = strings.TrimSpace(family)
	if !ok || family == "" {
		return FontSpec{}, fmt.Errorf("font %q: missing family", s)
	}

	spec := FontSpec{Family: family}
	words := strings.Fields(rest)
	if len(words) == 0 {
		return FontSpec{}, fmt.Errorf("font %q: missing size", s)
	}
	size, err := strconv.ParseFloat(words[len(words)-1], 64)
	if err != nil || size == 0 {
		return FontSpec{}, fmt.Errorf("font %q: invalid size", s)
	}
	spec.Size = size

	for _, w := range words[:len(words)-1] {
		switch strings.ToLower(w) {
		case "bold":
			spec.Bold = true
		case "italic", "oblique":
			spec.Italic = true
		case "underline":
			spec.Underline = true
		case "strikeout":
			spec.Strikeout = true
		case "normal", "plain", "regular":
			// pass
		default:
			return FontSpec{}, fmt.Errorf("font %q: unknown style %q", s, w)
		}
	}
	return spec, nil
}

func (f FontSpec) String() string {
	var b strings.Builder
	b.WriteString(f.Family)
	b.WriteString(",")
	if f.Bold {
		b.WriteString(" Bold")
	}
	if f.Italic {
		b.WriteString(" Italic")
	}
	if f.Underline {
		b.WriteString(" Underline")
	}
	if f.Strikeout {
		b.WriteString(" Strikeout")
	}
	b.WriteString(" ")
	b.WriteString(strconv.FormatFloat(f.Size, 'g', -1, 64))
	return b.String()
}
