package huewheel

import (
	"colormeow/pkg/components/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// Widget shows a HueWheel and forwards taps and drags to it.
type Widget struct {
	widget.BaseWidget
	Wheel      *HueWheel
	Image      *canvas.Image
	dragTarget Target
	dragging   bool
}

// NewWidget creates a widget around a default sized wheel with the given mesh density.
func NewWidget(steps int) *Widget {
	w := &Widget{Wheel: NewSized(DefaultSize, steps)}
	w.ExtendBaseWidget(w)
	w.Image = surface.NewImage(w.Wheel.Surface)
	return w
}

// SetOnColorChange sets the function called when the user changes the color
func (w *Widget) SetOnColorChange(f func(h, s, v float64)) {
	w.Wheel.SetOnColorChange(f)
}

// SetColor selects a color without notifying.
func (w *Widget) SetColor(h, s, v float64) {
	w.Wheel.SetColor(h, s, v)
	w.Refresh()
}

// Tapped handles the tap event
func (w *Widget) Tapped(ev *fyne.PointEvent) {
	x, y := w.toPixels(ev.Position)
	if _, ok := w.Wheel.PointerDown(x, y); ok {
		w.Refresh()
	}
}

// Dragged keeps adjusting the part of the wheel the drag started on.
func (w *Widget) Dragged(ev *fyne.DragEvent) {
	x, y := w.toPixels(ev.Position)
	hit := w.Wheel.Hit(x, y)
	if !w.dragging {
		// a drag starting outside both parts adjusts nothing until it ends
		w.dragging = true
		w.dragTarget = hit
	}
	if w.dragTarget == TargetNone || hit != w.dragTarget {
		return
	}
	if _, ok := w.Wheel.PointerDown(x, y); ok {
		w.Refresh()
	}
}

// DragEnd handles the end of a drag
func (w *Widget) DragEnd() {
	w.dragTarget = TargetNone
	w.dragging = false
}

func (w *Widget) toPixels(pos fyne.Position) (float64, float64) {
	return surface.ToPixels(pos, w.Size(), w.Wheel.Surface.Bounds())
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
