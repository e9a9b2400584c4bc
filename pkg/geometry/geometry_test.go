package geometry_test

import (
	"colormeow/pkg/geometry"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHSVToWheelPosition(t *testing.T) {
	p := geometry.HSVToWheelPosition(0, 100, 80)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, -80, p.Y, 1e-9)

	p = geometry.HSVToWheelPosition(90, 50, 80)
	assert.InDelta(t, 40, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)

	p = geometry.HSVToWheelPosition(180, 0, 80)
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)
}

func TestWheelPositionToHSV(t *testing.T) {
	h, s := geometry.WheelPositionToHSV(0, -80, 80)
	assert.InDelta(t, 0, h, 1e-9)
	assert.InDelta(t, 100, s, 1e-9)

	h, s = geometry.WheelPositionToHSV(-40, 0, 80)
	assert.InDelta(t, 270, h, 1e-9)
	assert.InDelta(t, 50, s, 1e-9)

	// saturation never exceeds 100 even past the rim
	_, s = geometry.WheelPositionToHSV(0, 200, 80)
	assert.Equal(t, 100.0, s)
}

func TestWheelRoundTrip(t *testing.T) {
	for h := 0.0; h < 360; h += 15 {
		for s := 10.0; s <= 100; s += 10 {
			p := geometry.HSVToWheelPosition(h, s, 80)
			gotH, gotS := geometry.WheelPositionToHSV(p.X, p.Y, 80)
			d := math.Abs(gotH - h)
			assert.Less(t, math.Min(d, 360-d), 1e-6, "hue %v sat %v", h, s)
			assert.InDelta(t, s, gotS, 1e-6, "hue %v sat %v", h, s)
		}
	}
}

func TestAngleToHue(t *testing.T) {
	assert.InDelta(t, 0, geometry.AngleToHue(0, -1), 1e-9)
	assert.InDelta(t, 90, geometry.AngleToHue(1, 0), 1e-9)
	assert.InDelta(t, 180, geometry.AngleToHue(0, 1), 1e-9)
	assert.InDelta(t, 270, geometry.AngleToHue(-1, 0), 1e-9)
}

func TestNewTriangle(t *testing.T) {
	tri := geometry.NewTriangle(geometry.NewPoint2D(100, 100), 65)

	assert.InDelta(t, 100, tri.Hue.X, 1e-9)
	assert.InDelta(t, 35, tri.Hue.Y, 1e-9)
	assert.InDelta(t, 65, tri.White.Distance(geometry.NewPoint2D(100, 100)), 1e-9)
	assert.InDelta(t, 65, tri.Black.Distance(geometry.NewPoint2D(100, 100)), 1e-9)
	assert.InDelta(t, tri.Hue.Distance(tri.White), tri.White.Distance(tri.Black), 1e-9)
}

func TestSVToPositionCorners(t *testing.T) {
	tri := geometry.NewTriangle(geometry.NewPoint2D(100, 100), 65)

	assertNear(t, tri.Hue, tri.SVToPosition(100, 100))
	assertNear(t, tri.White, tri.SVToPosition(0, 100))
	assertNear(t, tri.Black, tri.SVToPosition(0, 0))
	assertNear(t, tri.Black, tri.SVToPosition(73, 0))
}

func TestPositionToSVAtVertices(t *testing.T) {
	tri := geometry.NewTriangle(geometry.NewPoint2D(100, 100), 65)

	s, v, err := tri.PositionToSV(tri.Hue)
	require.NoError(t, err)
	assert.Equal(t, 100.0, s)
	assert.Equal(t, 100.0, v)

	s, v, err = tri.PositionToSV(tri.White)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 100.0, v)

	s, v, err = tri.PositionToSV(tri.Black)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, v)
}

func TestTriangleRoundTrip(t *testing.T) {
	tri := geometry.NewTriangle(geometry.NewPoint2D(100, 100), 65)

	for s := 0.0; s <= 100; s += 5 {
		for v := 5.0; v <= 100; v += 5 {
			gotS, gotV, err := tri.PositionToSV(tri.SVToPosition(s, v))
			require.NoError(t, err, "s=%v v=%v", s, v)
			assert.Equal(t, s, gotS, "s=%v v=%v", s, v)
			assert.Equal(t, v, gotV, "s=%v v=%v", s, v)
		}
	}
}

func TestPositionToSVOutside(t *testing.T) {
	tri := geometry.NewTriangle(geometry.NewPoint2D(100, 100), 65)

	for _, p := range []geometry.Point2D{
		geometry.NewPoint2D(0, 0),
		geometry.NewPoint2D(100, 30),
		geometry.NewPoint2D(200, 200),
		tri.Hue.Add(geometry.NewPoint2D(5, -1)),
	} {
		_, _, err := tri.PositionToSV(p)
		assert.ErrorIs(t, err, geometry.ErrOutsideTriangle, "point %v", p)
	}
}

func TestCenterIsInside(t *testing.T) {
	tri := geometry.NewTriangle(geometry.NewPoint2D(100, 100), 65)

	w, u, vb, inside := tri.Barycentric(geometry.NewPoint2D(100, 100))
	require.True(t, inside)
	assert.InDelta(t, 1.0/3, w, 1e-9)
	assert.InDelta(t, 1.0/3, u, 1e-9)
	assert.InDelta(t, 1.0/3, vb, 1e-9)
}

func TestSVFromWeights(t *testing.T) {
	s, v := geometry.SVFromWeights(0, 0)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 0.0, v)

	s, v = geometry.SVFromWeights(0.25, 0.25)
	assert.InDelta(t, 50, s, 1e-9)
	assert.InDelta(t, 50, v, 1e-9)
}

func assertNear(t *testing.T, want, got geometry.Point2D) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}
