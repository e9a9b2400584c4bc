// Package huewheel implements the fine-adjustment picker: a hue ring around a
// saturation/value triangle.
package huewheel

import (
	"colormeow/pkg/colorutils"
	"colormeow/pkg/geometry"
	"colormeow/pkg/paint"
	"image"
	"image/color"
	"math"
)

const (
	DefaultSize   = 200
	DefaultSteps  = 50
	OuterRadius   = 90
	InnerRadius   = 70
	TriangleInset = 5

	hueIndicatorRadius = 6
	svIndicatorRadius  = 5
	indicatorStroke    = 2
	outlineWidth       = 1
)

var (
	outlineColor   = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	indicatorFill  = color.NRGBA{A: 0x80}
	indicatorColor = color.White
)

// Target is the part of the wheel a pointer landed on.
type Target int

const (
	TargetNone Target = iota
	TargetRing
	TargetTriangle
)

func (t Target) String() string {
	switch t {
	case TargetRing:
		return "ring"
	case TargetTriangle:
		return "triangle"
	default:
		return "none"
	}
}

// Change describes an accepted interaction and the resulting color.
type Change struct {
	Target Target
	H      float64
	S      float64
	V      float64
}

// HSV returns the color carried by the change.
func (c Change) HSV() colorutils.HSV {
	return colorutils.HSV{H: c.H, S: c.S, V: c.V}
}

// HueWheel holds the selected color and the surface it is drawn on. Hue is
// kept as picked on the ring; saturation and value are whole percents.
type HueWheel struct {
	Surface     *image.RGBA
	Center      geometry.Point2D
	OuterRadius float64
	InnerRadius float64
	Steps       int

	Hue        float64
	Saturation float64
	Value      float64

	onColorChange func(h, s, v float64)
}

// New creates a wheel with the default geometry, selected to pure red.
func New() *HueWheel {
	return NewSized(DefaultSize, DefaultSteps)
}

// NewSized creates a wheel on a square surface. The radii stay fixed, only the
// canvas and mesh density change.
func NewSized(size, steps int) *HueWheel {
	if steps <= 0 {
		steps = DefaultSteps
	}
	w := &HueWheel{
		Surface:     image.NewRGBA(image.Rect(0, 0, size, size)),
		Center:      geometry.NewPoint2D(float64(size)/2, float64(size)/2),
		OuterRadius: OuterRadius,
		InnerRadius: InnerRadius,
		Steps:       steps,
		Hue:         0,
		Saturation:  100,
		Value:       100,
	}
	w.Render()
	return w
}

// Triangle returns the saturation/value triangle inside the ring.
func (w *HueWheel) Triangle() geometry.Triangle {
	return geometry.NewTriangle(w.Center, w.InnerRadius-TriangleInset)
}

// HSV returns the selected color.
func (w *HueWheel) HSV() colorutils.HSV {
	return colorutils.HSV{H: w.Hue, S: w.Saturation, V: w.Value}
}

// SetOnColorChange sets the function called after every accepted interaction.
// Only the latest function is kept.
func (w *HueWheel) SetOnColorChange(f func(h, s, v float64)) {
	w.onColorChange = f
}

// SetColor selects a color and redraws without notifying.
func (w *HueWheel) SetColor(h, s, v float64) {
	w.Hue = h
	w.Saturation = s
	w.Value = v
	w.Render()
}

// Hit reports which part of the wheel is under a surface point.
func (w *HueWheel) Hit(x, y float64) Target {
	d := math.Hypot(x-w.Center.X, y-w.Center.Y)
	switch {
	case d >= w.InnerRadius && d <= w.OuterRadius:
		return TargetRing
	case d < w.InnerRadius:
		if _, _, _, inside := w.Triangle().Barycentric(geometry.NewPoint2D(x, y)); inside {
			return TargetTriangle
		}
	}
	return TargetNone
}

// PointerDown applies a press at a surface point. A press on the ring sets the
// hue, a press inside the triangle sets saturation and value, anything else is
// ignored and returns false.
func (w *HueWheel) PointerDown(x, y float64) (Change, bool) {
	dx := x - w.Center.X
	dy := y - w.Center.Y
	d := math.Hypot(dx, dy)

	var target Target
	switch {
	case d >= w.InnerRadius && d <= w.OuterRadius:
		target = TargetRing
		w.Hue = geometry.AngleToHue(dx, dy)
	case d < w.InnerRadius:
		s, v, err := w.Triangle().PositionToSV(geometry.NewPoint2D(x, y))
		if err != nil {
			return Change{}, false
		}
		target = TargetTriangle
		w.Saturation = s
		w.Value = v
	default:
		return Change{}, false
	}

	w.Render()
	change := Change{Target: target, H: w.Hue, S: w.Saturation, V: w.Value}
	if w.onColorChange != nil {
		w.onColorChange(change.H, change.S, change.V)
	}
	return change, true
}

// Render redraws the ring, the triangle for the current hue and both
// indicators.
func (w *HueWheel) Render() {
	paint.Clear(w.Surface)
	w.renderRing()

	tri := w.Triangle()
	w.renderMesh(tri)
	paint.StrokePolygon(w.Surface, [][2]float64{
		{tri.Hue.X, tri.Hue.Y},
		{tri.White.X, tri.White.Y},
		{tri.Black.X, tri.Black.Y},
	}, outlineWidth, outlineColor)
	// corners go over the outline so the vertex colors stay exact
	w.stampCell(tri.Hue, 100, 100)
	w.stampCell(tri.White, 0, 100)
	w.stampCell(tri.Black, 0, 0)

	w.renderIndicators(tri)
}

func (w *HueWheel) renderRing() {
	b := w.Surface.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - w.Center.X
			dy := float64(y) + 0.5 - w.Center.Y
			d := math.Hypot(dx, dy)
			if d < w.InnerRadius || d > w.OuterRadius {
				continue
			}
			rgb := colorutils.HSVToRGB(math.Floor(geometry.AngleToHue(dx, dy)), 100, 100)
			w.Surface.SetRGBA(x, y, color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff})
		}
	}
}

// renderMesh paints the inclusive barycentric grid. Each sample covers a 3x3
// cell so neighbouring samples overlap without gaps.
func (w *HueWheel) renderMesh(tri geometry.Triangle) {
	steps := w.Steps
	for i := 0; i <= steps; i++ {
		for j := 0; j <= steps-i; j++ {
			if isCorner(i, j, steps) {
				continue
			}
			u := float64(i) / float64(steps)
			vb := float64(j) / float64(steps)
			wt := math.Max(0, 1-u-vb)

			s, v := geometry.SVFromWeights(wt, u)
			w.stampCell(tri.Interpolate(wt, u, vb), s, v)
		}
	}
}

func isCorner(i, j, steps int) bool {
	return (i == 0 && j == 0) || (i == steps && j == 0) || (i == 0 && j == steps)
}

func (w *HueWheel) stampCell(p geometry.Point2D, s, v float64) {
	rgb := colorutils.HSVToRGB(w.Hue, s, v)
	px := int(math.Floor(p.X))
	py := int(math.Floor(p.Y))
	paint.FillRect(w.Surface, image.Rect(px-1, py-1, px+2, py+2), rgb.NRGBA())
}

func (w *HueWheel) renderIndicators(tri geometry.Triangle) {
	ringRadius := (w.OuterRadius + w.InnerRadius) / 2
	angle := (w.Hue - 90) * math.Pi / 180
	hx := w.Center.X + ringRadius*math.Cos(angle)
	hy := w.Center.Y + ringRadius*math.Sin(angle)
	paint.FillCircle(w.Surface, hx, hy, hueIndicatorRadius, indicatorFill)
	paint.StrokeCircle(w.Surface, hx, hy, hueIndicatorRadius, indicatorStroke, indicatorColor)

	sv := tri.SVToPosition(w.Saturation, w.Value)
	paint.FillCircle(w.Surface, sv.X, sv.Y, svIndicatorRadius, indicatorFill)
	paint.StrokeCircle(w.Surface, sv.X, sv.Y, svIndicatorRadius, indicatorStroke, indicatorColor)
}
