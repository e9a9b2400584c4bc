// Package paint draws the anti-aliased shapes the picker widgets are made of.
package paint

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// circleSegments is enough for edges to look round at picker sizes.
const circleSegments = 96

// Clear makes every pixel of dst transparent.
func Clear(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillRect paints r with an opaque color, replacing what was there.
func FillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// BlendOver composites c over the pixel at (x, y).
func BlendOver(dst *image.RGBA, x, y int, c color.Color) {
	r := image.Rect(x, y, x+1, y+1)
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// FillCircle fills a disc centered at (cx, cy).
func FillCircle(dst *image.RGBA, cx, cy, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	z := newRasterizer(dst)
	circlePath(z, cx, cy, radius, false)
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// StrokeCircle draws a ring of the given width centered on the radius.
func StrokeCircle(dst *image.RGBA, cx, cy, radius, width float64, c color.Color) {
	outer := radius + width/2
	inner := radius - width/2
	FillRing(dst, cx, cy, inner, outer, c)
}

// FillRing fills the annulus between inner and outer. The inner contour winds
// the other way so the hole stays empty.
func FillRing(dst *image.RGBA, cx, cy, inner, outer float64, c color.Color) {
	if outer <= 0 || outer <= inner {
		return
	}
	z := newRasterizer(dst)
	circlePath(z, cx, cy, outer, false)
	if inner > 0 {
		circlePath(z, cx, cy, inner, true)
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// StrokeLine draws a straight segment of the given width.
func StrokeLine(dst *image.RGBA, x0, y0, x1, y1, width float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	z := newRasterizer(dst)
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// StrokePolygon outlines a closed polygon. Joins are covered by round caps.
func StrokePolygon(dst *image.RGBA, points [][2]float64, width float64, c color.Color) {
	if len(points) < 2 {
		return
	}
	for i, p := range points {
		q := points[(i+1)%len(points)]
		StrokeLine(dst, p[0], p[1], q[0], q[1], width, c)
		if width > 1 {
			FillCircle(dst, p[0], p[1], width/2, c)
		}
	}
}

func newRasterizer(dst *image.RGBA) *vector.Rasterizer {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Max.X, b.Max.Y)
	z.DrawOp = draw.Over
	return z
}

func circlePath(z *vector.Rasterizer, cx, cy, radius float64, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		step := i
		if reverse {
			step = circleSegments - i
		}
		angle := 2 * math.Pi * float64(step) / circleSegments
		x := float32(cx + radius*math.Cos(angle))
		y := float32(cy + radius*math.Sin(angle))
		if i == 0 {
			z.MoveTo(x, y)
			continue
		}
		z.LineTo(x, y)
	}
	z.ClosePath()
}
