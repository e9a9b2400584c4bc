package colorwheel

import (
	"colormeow/pkg/colorutils"
	"colormeow/pkg/components/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Widget shows a Wheel and reports taps on it.
type Widget struct {
	widget.BaseWidget
	Wheel    *Wheel
	Image    *canvas.Image
	markers  []colorutils.ColorRecord
	onPicked func(colorutils.HSV)
}

// NewWidget creates a rendered wheel widget of the given pixel size.
func NewWidget(size int) *Widget {
	w := &Widget{Wheel: New(size)}
	w.ExtendBaseWidget(w)
	w.Wheel.Render()
	w.Image = surface.NewImage(w.Wheel.Surface)
	return w
}

// SetOnPicked sets the function called with the color under a tap
func (w *Widget) SetOnPicked(f func(colorutils.HSV)) {
	w.onPicked = f
}

// SetMarkers redraws the wheel with a marker for every color.
func (w *Widget) SetMarkers(colors []colorutils.ColorRecord) {
	w.markers = colors
	w.Wheel.RenderMarkers(colors)
	w.Refresh()
}

// Markers returns the colors currently marked on the wheel.
func (w *Widget) Markers() []colorutils.ColorRecord {
	return w.markers
}

// Tapped handles the tap event
func (w *Widget) Tapped(ev *fyne.PointEvent) {
	x, y := surface.ToPixels(ev.Position, w.Size(), w.Wheel.Surface.Bounds())
	hsv, ok := w.Wheel.ColorAtPosition(x, y)
	if !ok {
		return
	}
	if w.onPicked != nil {
		w.onPicked(hsv)
	}
}

// Refresh updates the widget's appearance
func (w *Widget) Refresh() {
	w.BaseWidget.Refresh()
	canvas.Refresh(w.Image)
}

// CreateRenderer implements the fyne.Widget interface
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.Image)
}
