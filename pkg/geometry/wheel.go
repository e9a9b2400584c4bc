package geometry

import (
	"colormeow/pkg/colorutils"
	"math"
)

// HSVToWheelPosition returns the offset from the wheel center for hue h and
// saturation s. Hue 0 points to 12 o'clock and increases clockwise.
func HSVToWheelPosition(h, s, radius float64) Point2D {
	angle := (h - 90) * math.Pi / 180
	distance := s / 100 * radius

	return Point2D{
		X: math.Cos(angle) * distance,
		Y: math.Sin(angle) * distance,
	}
}

// WheelPositionToHSV is the inverse of HSVToWheelPosition. Saturation is
// clamped to 100; callers reject points outside the disc themselves.
func WheelPositionToHSV(x, y, radius float64) (h, s float64) {
	distance := math.Sqrt(x*x + y*y)
	h = AngleToHue(x, y)
	s = math.Min(distance/radius*100, 100)
	return h, s
}

// AngleToHue converts a center-relative offset into a hue in [0,360).
func AngleToHue(dx, dy float64) float64 {
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	return colorutils.NormalizeHue(angle + 90)
}
