package surface

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// NewImage wraps a drawing surface in a canvas image that keeps its aspect
// ratio and never shrinks below the surface size.
func NewImage(src *image.RGBA) *canvas.Image {
	img := canvas.NewImageFromImage(src)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest
	img.SetMinSize(fyne.NewSize(float32(src.Bounds().Dx()), float32(src.Bounds().Dy())))
	return img
}

// ToPixels maps a position inside a widget of the given size onto the pixels
// of an image drawn with ImageFillContain.
func ToPixels(pos fyne.Position, size fyne.Size, bounds image.Rectangle) (x, y float64) {
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if size.Width <= 0 || size.Height <= 0 || w == 0 || h == 0 {
		return float64(pos.X), float64(pos.Y)
	}

	scale := math.Min(float64(size.Width)/w, float64(size.Height)/h)
	offsetX := (float64(size.Width) - w*scale) / 2
	offsetY := (float64(size.Height) - h*scale) / 2

	return (float64(pos.X) - offsetX) / scale, (float64(pos.Y) - offsetY) / scale
}
