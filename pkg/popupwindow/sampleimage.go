package popupwindow

import (
	"colormeow/pkg/components/surface"
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// sampleImage shows the image being sampled and reports the tapped pixel.
type sampleImage struct {
	widget.BaseWidget
	Image    *canvas.Image
	img      image.Image
	onTapped func(image.Point)
}

func newSampleImage(onTapped func(image.Point)) *sampleImage {
	s := &sampleImage{onTapped: onTapped}
	s.ExtendBaseWidget(s)
	s.Image = canvas.NewImageFromImage(nil)
	s.Image.FillMode = canvas.ImageFillContain
	s.Image.SetMinSize(fyne.NewSize(260, 160))
	return s
}

func (s *sampleImage) SetImage(img image.Image) {
	s.img = img
	s.Image.Image = img
	s.Refresh()
}

// Tapped maps the tap onto image pixels
func (s *sampleImage) Tapped(ev *fyne.PointEvent) {
	if s.img == nil || s.onTapped == nil {
		return
	}
	x, y := surface.ToPixels(ev.Position, s.Size(), s.img.Bounds())
	s.onTapped(image.Pt(int(math.Floor(x)), int(math.Floor(y))))
}

func (s *sampleImage) Refresh() {
	s.BaseWidget.Refresh()
	canvas.Refresh(s.Image)
}

func (s *sampleImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.Image)
}
