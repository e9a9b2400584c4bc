package geometry

import (
	"errors"
	"math"
)

// ErrOutsideTriangle is returned when a point maps to no saturation/value pair.
var ErrOutsideTriangle = errors.New("point outside triangle")

// epsilon absorbs rounding when a point sits exactly on an edge or vertex.
const epsilon = 1e-9

// Triangle is the saturation/value triangle inscribed in the hue ring.
//
// Hue is the top vertex (s=100, v=100). White sits 120° clockwise from it
// (s=0, v=100) and Black 240° clockwise (v=0, any saturation).
type Triangle struct {
	Hue   Point2D `json:"hue"`
	White Point2D `json:"white"`
	Black Point2D `json:"black"`
}

// NewTriangle places the three vertices on a circle of the given radius.
func NewTriangle(center Point2D, radius float64) Triangle {
	vertex := func(angle float64) Point2D {
		return Point2D{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}

	top := -math.Pi / 2
	return Triangle{
		Hue:   vertex(top),
		White: vertex(top + 2*math.Pi/3),
		Black: vertex(top + 4*math.Pi/3),
	}
}

// Interpolate returns the point with barycentric weights w (hue), u (white)
// and vb (black).
func (t Triangle) Interpolate(w, u, vb float64) Point2D {
	return t.Hue.Scale(w).Add(t.White.Scale(u)).Add(t.Black.Scale(vb))
}

// SVToPosition maps saturation and value (percent) to a point in the triangle.
func (t Triangle) SVToPosition(s, v float64) Point2D {
	black := 1 - v/100
	remaining := 1 - black
	w := remaining * (s / 100)
	u := remaining * (1 - s/100)

	return t.Interpolate(w, u, black)
}

// Barycentric solves p against the triangle with the dot-product method and
// reports whether p lies inside it (edges included).
func (t Triangle) Barycentric(p Point2D) (w, u, vb float64, inside bool) {
	v0 := t.White.Sub(t.Hue)
	v1 := t.Black.Sub(t.Hue)
	v2 := p.Sub(t.Hue)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return 0, 0, 0, false
	}
	invDenom := 1 / denom
	u = (dot11*dot02 - dot01*dot12) * invDenom
	vb = (dot00*dot12 - dot01*dot02) * invDenom

	if u < -epsilon || vb < -epsilon || u+vb > 1+epsilon {
		return 0, 0, 0, false
	}

	u = clamp01(u)
	vb = clamp01(vb)
	w = clamp01(1 - u - vb)
	return w, u, vb, true
}

// PositionToSV is the inverse of SVToPosition, rounded to whole percents.
func (t Triangle) PositionToSV(p Point2D) (s, v float64, err error) {
	w, u, _, inside := t.Barycentric(p)
	if !inside {
		return 0, 0, ErrOutsideTriangle
	}

	s, v = SVFromWeights(w, u)
	return math.Round(s), math.Round(v), nil
}

// SVFromWeights converts the hue and white weights into saturation and value.
// Saturation is 0 wherever value is 0.
func SVFromWeights(w, u float64) (s, v float64) {
	v = (w + u) * 100
	if v < epsilon {
		return 0, 0
	}
	return w / (w + u) * 100, v
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
