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
	"log/slog"

	"seehuhn.de/go/canvas/device"
)

// Option configures a Canvas during creation.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	text    device.TextLayout
	retries int
	dpi     float64
}

func defaultOptions() options {
	return options{
		retries: 1,
		dpi:     96,
	}
}

// WithLogger sets the logger for one canvas, overriding [SetLogger].
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTextLayout sets the library used to measure and draw text.  The
// default uses the Go fonts.
func WithTextLayout(t device.TextLayout) Option {
	return func(o *options) {
		o.text = t
	}
}

// WithRetry sets how often a palette-limited display reloads its color
// table before an unavailable color is approximated by the nearest
// allocated one.  The default is 1.
func WithRetry(n int) Option {
	return func(o *options) {
		o.retries = max(n, 0)
	}
}

// WithResolution sets the resolution of the surface in dots per inch.
// This is used to convert font sizes between points and pixels.  The
// default is 96.
func WithResolution(dpi float64) Option {
	return func(o *options) {
		if dpi > 0 {
			o.dpi = dpi
		}
	}
}
