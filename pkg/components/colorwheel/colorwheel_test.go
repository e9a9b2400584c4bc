package colorwheel

import (
	"colormeow/pkg/colorutils"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestNew(t *testing.T) {
	w := New(200)
	assert.Equal(t, 90.0, w.Radius)
	assert.Equal(t, 100.0, w.Center.X)
	assert.Equal(t, 100.0, w.Center.Y)
	assert.Equal(t, 200, w.Surface.Bounds().Dx())
}

func TestColorAtPosition(t *testing.T) {
	w := New(180) // radius 80

	hsv, ok := w.ColorAtPosition(90, 90-80)
	require.True(t, ok)
	assert.InDelta(t, 0, hsv.H, 1e-9)
	assert.InDelta(t, 100, hsv.S, 1e-9)
	assert.Equal(t, 100.0, hsv.V)

	hsv, ok = w.ColorAtPosition(90+40, 90)
	require.True(t, ok)
	assert.InDelta(t, 90, hsv.H, 1e-9)
	assert.InDelta(t, 50, hsv.S, 1e-9)

	hsv, ok = w.ColorAtPosition(90, 90)
	require.True(t, ok)
	assert.Equal(t, 0.0, hsv.S)

	_, ok = w.ColorAtPosition(90, 90+81)
	assert.False(t, ok)
	_, ok = w.ColorAtPosition(0, 0)
	assert.False(t, ok)
}

func TestPositionForColorRoundTrip(t *testing.T) {
	w := New(180)

	for _, c := range []colorutils.HSV{{H: 0, S: 100}, {H: 45, S: 30}, {H: 200, S: 75}, {H: 359, S: 5}} {
		p := w.PositionForColor(c.H, c.S)
		got, ok := w.ColorAtPosition(p.X, p.Y)
		require.True(t, ok)
		assert.InDelta(t, c.H, got.H, 1e-6)
		assert.InDelta(t, c.S, got.S, 1e-6)
	}
}

func TestRender(t *testing.T) {
	w := New(180)
	w.Render()

	want := colorutils.HSVToRGB(0, 69.0/80*100, 100)
	assert.Equal(t, color.RGBA{R: want.R, G: want.G, B: want.B, A: 255}, w.Surface.RGBAAt(90, 20))

	assert.Equal(t, white, w.Surface.RGBAAt(90, 90), "center glow")
	assert.Equal(t, borderColor, w.Surface.RGBAAt(90, 10), "rim border")
	assert.Equal(t, uint8(0), w.Surface.RGBAAt(0, 0).A, "outside the wheel")
}

func TestRenderMarkers(t *testing.T) {
	w := New(180)
	w.RenderMarkers([]colorutils.ColorRecord{colorutils.RecordFromHSV(colorutils.HSV{H: 90, S: 50, V: 100})})

	assert.Equal(t, white, w.Surface.RGBAAt(130, 90))
	assert.NotEqual(t, white, w.Surface.RGBAAt(90, 130))
}

func TestWidgetTapped(t *testing.T) {
	test.NewApp()

	w := NewWidget(180)
	w.Resize(fyne.NewSize(180, 180))

	var picked []colorutils.HSV
	w.SetOnPicked(func(c colorutils.HSV) {
		picked = append(picked, c)
	})

	w.Tapped(&fyne.PointEvent{Position: fyne.NewPos(90, 50)})
	w.Tapped(&fyne.PointEvent{Position: fyne.NewPos(2, 2)})

	require.Len(t, picked, 1)
	assert.InDelta(t, 0, picked[0].H, 1e-6)
	assert.InDelta(t, 50, picked[0].S, 1e-6)
	assert.Equal(t, 100.0, picked[0].V)
}

func TestWidgetScalesTaps(t *testing.T) {
	test.NewApp()

	w := NewWidget(180)
	w.Resize(fyne.NewSize(360, 360))

	var got colorutils.HSV
	w.SetOnPicked(func(c colorutils.HSV) { got = c })
	w.Tapped(&fyne.PointEvent{Position: fyne.NewPos(180+80, 180)})

	assert.InDelta(t, 90, got.H, 1e-6)
	assert.InDelta(t, 50, got.S, 1e-6)
}

func TestWidgetMarkers(t *testing.T) {
	test.NewApp()

	w := NewWidget(180)
	colors := []colorutils.ColorRecord{colorutils.RecordFromHSV(colorutils.HSV{H: 90, S: 50, V: 100})}
	w.SetMarkers(colors)

	assert.Equal(t, colors, w.Markers())
	assert.Equal(t, white, w.Wheel.Surface.RGBAAt(130, 90))
}
