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

// Package canvas implements a device-independent drawing canvas on top of
// a display surface.
//
// A [Canvas] keeps the drawing state (colors, line and fill attributes,
// clipping, transformation, font) and translates every drawing call into
// operations of a [device.Surface].  Images are converted into the pixel
// layout of the display, resampled through zoom tables or an affine
// transformation, and clipped to the active clip area, clip polygon or
// region.
//
// Canvas coordinates have their origin in the bottom-left corner of the
// surface, with y growing upwards.  Integer coordinates name pixels.
//
// Drawing methods do not return errors.  Failures abort the operation,
// are logged through the logger set with [SetLogger] or [WithLogger], and
// can be retrieved with [Canvas.Err].  Methods dealing with images also
// return the error directly.
//
// A Canvas is not safe for concurrent use.
package canvas
