// Package colorwheel draws the radial hue/saturation wheel used to pick and
// display palette colors.
package colorwheel

import (
	"colormeow/pkg/colorutils"
	"colormeow/pkg/geometry"
	"colormeow/pkg/paint"
	"image"
	"image/color"
	"math"
)

const (
	// Margin is kept between the wheel rim and the canvas edge.
	Margin = 10
	// whiteFalloff is the fraction of the radius covered by the white center glow.
	whiteFalloff  = 0.2
	borderWidth   = 2
	markerRadius  = 4
	markerOutline = 2
)

var (
	borderColor  = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	markerStroke = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// Wheel is a hue/saturation disc drawn at full value. Hue runs clockwise from
// 12 o'clock and saturation grows from the center to the rim.
type Wheel struct {
	Surface *image.RGBA
	Radius  float64
	Center  geometry.Point2D
}

// New creates a wheel on a square surface of the given size.
func New(size int) *Wheel {
	return &Wheel{
		Surface: image.NewRGBA(image.Rect(0, 0, size, size)),
		Radius:  float64(size)/2 - Margin,
		Center:  geometry.NewPoint2D(float64(size)/2, float64(size)/2),
	}
}

// Render clears the surface and paints the wheel.
func (w *Wheel) Render() {
	paint.Clear(w.Surface)
	if w.Radius <= 0 {
		return
	}

	b := w.Surface.Bounds()
	glow := w.Radius * whiteFalloff
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - w.Center.X
			dy := float64(y) + 0.5 - w.Center.Y
			dist := math.Hypot(dx, dy)

			// one degree slice by one pixel ring
			ring := math.Floor(dist)
			if ring >= w.Radius {
				continue
			}
			slice := math.Floor(geometry.AngleToHue(dx, dy))
			rgb := colorutils.HSVToRGB(slice, ring/w.Radius*100, 100)
			w.Surface.SetRGBA(x, y, color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff})

			if dist < glow {
				alpha := 1 - dist/glow
				paint.BlendOver(w.Surface, x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(math.Round(alpha * 0xff))})
			}
		}
	}

	paint.StrokeCircle(w.Surface, w.Center.X, w.Center.Y, w.Radius, borderWidth, borderColor)
}

// RenderMarkers renders the wheel and marks the position of every color.
func (w *Wheel) RenderMarkers(colors []colorutils.ColorRecord) {
	w.Render()

	for _, c := range colors {
		p := w.PositionForColor(c.HSV.H, c.HSV.S)
		paint.FillCircle(w.Surface, p.X, p.Y, markerRadius, color.White)
		paint.StrokeCircle(w.Surface, p.X, p.Y, markerRadius, markerOutline, markerStroke)
	}
}

// ColorAtPosition returns the color under a surface point. The second result
// is false when the point lies outside the wheel.
func (w *Wheel) ColorAtPosition(x, y float64) (colorutils.HSV, bool) {
	dx := x - w.Center.X
	dy := y - w.Center.Y
	if math.Hypot(dx, dy) > w.Radius {
		return colorutils.HSV{}, false
	}

	h, s := geometry.WheelPositionToHSV(dx, dy, w.Radius)
	return colorutils.HSV{H: h, S: s, V: 100}, true
}

// PositionForColor returns the surface point for a hue and saturation.
func (w *Wheel) PositionForColor(h, s float64) geometry.Point2D {
	return w.Center.Add(geometry.HSVToWheelPosition(h, s, w.Radius))
}
