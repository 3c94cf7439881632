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

// Command canvasdemo draws a test picture, to a PNG file and optionally to
// a PDF file.
//
// Usage:
//
//	canvasdemo [-png out.png] [-mapped] [-pdf "out.pdf -p4 -s150"]
//
// The -pdf option takes a driver data string, see [pdfout.ParseData].
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/canvas"
	"seehuhn.de/go/canvas/memsurf"
	"seehuhn.de/go/canvas/pack"
	"seehuhn.de/go/canvas/pdfout"
	"seehuhn.de/go/canvas/pixel"
	"seehuhn.de/go/canvas/region"
)

func main() {
	pngName := flag.String("png", "canvasdemo.png", "PNG output file")
	pdfData := flag.String("pdf", "", "PDF driver data, for example \"out.pdf -p4 -s150\"")
	mapped := flag.Bool("mapped", false, "use an 8-bit palette display for the PNG output")
	verbose := flag.Bool("v", false, "log diagnostics")
	flag.Parse()

	if *verbose {
		level := new(slog.LevelVar)
		level.Set(slog.LevelDebug)
		canvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	if err := writePNG(*pngName, *mapped); err != nil {
		fmt.Fprintln(os.Stderr, "canvasdemo:", err)
		os.Exit(1)
	}
	if *pdfData != "" {
		if err := writePDF(*pdfData); err != nil {
			fmt.Fprintln(os.Stderr, "canvasdemo:", err)
			os.Exit(1)
		}
	}
}

func writePNG(name string, mapped bool) error {
	v := pixel.XRGB32
	if mapped {
		v = pixel.Mapped8
	}
	s, err := memsurf.New(v, 640, 480)
	if err != nil {
		return err
	}
	c, err := canvas.New(s)
	if err != nil {
		return err
	}
	draw(c)
	if err := c.Err(); err != nil {
		return err
	}

	out, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(out, s.Image()); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writePDF(data string) error {
	s, err := pdfout.Open(data)
	if err != nil {
		return err
	}
	cfg := s.Config()
	c, err := canvas.New(s, canvas.WithResolution(cfg.Resolution))
	if err != nil {
		s.Close()
		return err
	}
	draw(c)
	if err := c.Err(); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

// draw paints the test picture, scaled to the canvas size.  The layout
// uses a 640×480 grid.
func draw(c *canvas.Canvas) {
	w, h := c.Size()
	k := min(float64(w)/640, float64(h)/480)
	u := func(x float64) int { return int(math.Round(x * k)) }

	c.SetBackground(pixel.Encode(250, 250, 240))
	c.Clear()

	// filled shapes in the four interior styles
	c.SetForeground(pixel.Encode(40, 90, 200))
	c.Box(u(20), u(140), u(340), u(460))
	c.SetForeground(pixel.Encode(200, 40, 40))
	c.SetHatch(canvas.DiagonalCross)
	c.Box(u(160), u(280), u(340), u(460))
	c.SetStipple(4, 4, []uint8{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 1,
		0, 0, 1, 1,
	})
	c.SetForeground(pixel.Encode(20, 130, 60))
	c.Box(u(300), u(420), u(340), u(460))
	checker := make([]pixel.RGB, 16*16)
	for i := range checker {
		if (i%16/8+i/16/8)%2 == 0 {
			checker[i] = pixel.Encode(255, 200, 0)
		} else {
			checker[i] = pixel.Encode(120, 0, 160)
		}
	}
	c.SetPattern(16, 16, checker)
	c.Box(u(440), u(560), u(340), u(460))
	c.SetInteriorStyle(canvas.Solid)

	// lines and curves
	c.SetForeground(pixel.Black)
	for i, style := range []canvas.LineStyle{canvas.Continuous, canvas.Dashed, canvas.Dotted, canvas.DashDot, canvas.DashDotDot} {
		c.SetLineStyle(style)
		c.SetLineWidth(1 + i)
		y := u(310 - 12*float64(i))
		c.Line(u(20), y, u(280), y)
	}
	c.SetLineStyle(canvas.Continuous)
	c.SetLineWidth(u(3))
	c.Arc(u(380), u(270), u(120), u(80), 0, 270)
	c.SetForeground(pixel.Encode(230, 120, 30))
	c.Sector(u(520), u(270), u(100), u(100), 30, 300)
	c.SetLineWidth(1)
	c.Poly(canvas.Bezier, []vec.Vec2{
		{X: float64(u(20)), Y: float64(u(150))},
		{X: float64(u(100)), Y: float64(u(240))},
		{X: float64(u(180)), Y: float64(u(60))},
		{X: float64(u(260)), Y: float64(u(150))},
	})

	// text clipped to a region of two overlapping circles
	c.NewRegion()
	c.Sector(u(380), u(130), u(160), u(160), 0, 360)
	c.SetRegionCombineMode(region.NotIntersect)
	c.Sector(u(460), u(130), u(160), u(160), 0, 360)
	c.EndRegion()
	c.Clip(canvas.ClipRegion)
	c.SetForeground(pixel.Encode(60, 60, 160))
	c.Box(u(280), u(560), u(40), u(220))
	c.Clip(canvas.ClipOff)

	c.SetForeground(pixel.Black)
	c.Font("Helvetica", canvas.Bold, u(18))
	c.SetTextAlignment(canvas.BaseCenter)
	c.Text(u(320), u(20), "canvas demo")
	c.SetTextOrientation(90)
	c.Font("Courier", canvas.Underline, u(12))
	c.Text(u(620), u(60), "rotated text")
	c.SetTextOrientation(0)

	// a small image, rotated by 30 degrees
	img := &pack.RGBImage{Width: 8, Height: 8}
	img.R = make([]uint8, 64)
	img.G = make([]uint8, 64)
	img.B = make([]uint8, 64)
	for i := range 64 {
		img.R[i] = uint8(i % 8 * 32)
		img.G[i] = uint8(i / 8 * 32)
		img.B[i] = 128
	}
	c.Rotate(30, float64(u(100)), float64(u(80)))
	c.PutImageRGB(img, u(60), u(40), u(80), u(80))
	c.Transform(nil)
}
