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

package pdfout

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Paper is a standard paper size.
type Paper int

const (
	A0 Paper = iota
	A1
	A2
	A3
	A4
	A5
	Letter
	Legal
)

// paper sizes in millimeters, portrait orientation
var paperSizes = [...][2]float64{
	A0:     {841, 1189},
	A1:     {594, 841},
	A2:     {420, 594},
	A3:     {297, 420},
	A4:     {210, 297},
	A5:     {148, 210},
	Letter: {216, 279},
	Legal:  {216, 356},
}

// Size returns the width and height of the paper in millimeters.
func (p Paper) Size() (w, h float64) {
	if p < A0 || int(p) >= len(paperSizes) {
		p = A4
	}
	s := paperSizes[p]
	return s[0], s[1]
}

// Config describes the output file and its page.
type Config struct {
	Filename string

	// Width and Height give the page size in millimeters.
	Width, Height float64

	// Resolution is the number of canvas pixels per inch.
	Resolution float64
}

// DefaultResolution is used when the driver data does not set one.
const DefaultResolution = 300

var errNoFilename = errors.New("missing file name")

// ParseData reads a driver data string of the form
//
//	"file.pdf -p4 -w210 -h297 -o -s300"
//
// The options are -p (paper, an index as in [Paper]), -w and -h (page
// size in millimeters, overriding the paper), -o (landscape) and -s
// (resolution in pixels per inch).  File names with spaces must be
// quoted.  Without options, the page is A4 portrait at 300 pixels per
// inch.
func ParseData(data string) (*Config, error) {
	args, err := shellwords.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("driver data %q: %w", data, err)
	}

	cfg := &Config{Resolution: DefaultResolution}
	cfg.Width, cfg.Height = A4.Size()
	landscape := false
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || len(arg) < 2 {
			if cfg.Filename != "" {
				return nil, fmt.Errorf("driver data %q: unexpected argument %q", data, arg)
			}
			cfg.Filename = arg
			continue
		}

		flag, val := arg[1], arg[2:]
		if flag == 'o' {
			landscape = true
			continue
		}
		x, err := strconv.ParseFloat(val, 64)
		if err != nil || x < 0 || math.IsInf(x, 0) || (x == 0 && flag != 'p') {
			return nil, fmt.Errorf("driver data %q: invalid value in %q", data, arg)
		}
		switch flag {
		case 'p':
			p := Paper(x)
			if float64(p) != x || int(p) >= len(paperSizes) {
				return nil, fmt.Errorf("driver data %q: unknown paper %q", data, val)
			}
			cfg.Width, cfg.Height = p.Size()
		case 'w':
			cfg.Width = x
		case 'h':
			cfg.Height = x
		case 's':
			cfg.Resolution = x
		default:
			return nil, fmt.Errorf("driver data %q: unknown option %q", data, arg)
		}
	}
	if cfg.Filename == "" {
		return nil, fmt.Errorf("driver data %q: %w", data, errNoFilename)
	}
	if landscape {
		cfg.Width, cfg.Height = cfg.Height, cfg.Width
	}
	return cfg, nil
}

// PixelSize returns the size of the page in canvas pixels.
func (cfg *Config) PixelSize() (w, h int) {
	w = int(math.Round(cfg.Width / 25.4 * cfg.Resolution))
	h = int(math.Round(cfg.Height / 25.4 * cfg.Resolution))
	return max(w, 1), max(h, 1)
}
