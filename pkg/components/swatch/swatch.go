package swatch

import (
	"colormeow/pkg/colorutils"
	"image/color"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// DefaultSize is the edge length of a swatch in the palette views.
const DefaultSize = 30

var (
	borderColor   = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	selectedColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// Swatch represents a clickable color square
type Swatch struct {
	widget.BaseWidget
	Color          colorutils.ColorRecord
	Selected       bool
	LongPressDelay time.Duration

	fill         *canvas.Rectangle
	border       *canvas.Rectangle
	onTapped     func()
	onLongTap    func()
	onRightClick func()
	longTapTimer *time.Timer
	longPressed  atomic.Bool
}

// New creates a swatch of DefaultSize showing c
func New(c colorutils.ColorRecord) *Swatch {
	return NewSized(c, DefaultSize)
}

// NewSized creates a square swatch with the given edge length
func NewSized(c colorutils.ColorRecord, size float32) *Swatch {
	s := &Swatch{Color: c, LongPressDelay: 400 * time.Millisecond}
	s.ExtendBaseWidget(s)

	s.fill = canvas.NewRectangle(c.RGB.NRGBA())
	s.fill.CornerRadius = 4
	s.fill.SetMinSize(fyne.NewSize(size, size))

	s.border = canvas.NewRectangle(color.Transparent)
	s.border.CornerRadius = 4
	s.border.StrokeWidth = 2
	s.border.StrokeColor = borderColor
	return s
}

// SetOnTapped sets the function to be called when the swatch is tapped
func (s *Swatch) SetOnTapped(f func()) {
	s.onTapped = f
}

// SetOnLongTap sets the function to be called when the swatch is long-pressed
func (s *Swatch) SetOnLongTap(f func()) {
	s.onLongTap = f
}

// SetOnRightClick sets the function to be called when the swatch is right-clicked
func (s *Swatch) SetOnRightClick(f func()) {
	s.onRightClick = f
}

// SetColor changes the displayed color.
func (s *Swatch) SetColor(c colorutils.ColorRecord) {
	s.Color = c
	s.fill.FillColor = c.RGB.NRGBA()
	s.Refresh()
}

func (s *Swatch) SetSelected(selected bool) {
	s.Selected = selected
	s.Refresh()
}

// Tapped handles the tap event. A tap that ends a long press is swallowed.
func (s *Swatch) Tapped(_ *fyne.PointEvent) {
	if s.longPressed.Swap(false) {
		return
	}
	if s.onTapped != nil {
		s.onTapped()
	}
}

// TappedSecondary handles the right-click event
func (s *Swatch) TappedSecondary(_ *fyne.PointEvent) {
	if s.onRightClick != nil {
		s.onRightClick()
	}
}

// MouseDown starts the long press timer
func (s *Swatch) MouseDown(me *desktop.MouseEvent) {
	if me.Button != desktop.MouseButtonPrimary {
		return
	}
	s.longPressed.Store(false)
	s.longTapTimer = time.AfterFunc(s.LongPressDelay, func() {
		if s.onLongTap != nil {
			s.longPressed.Store(true)
			s.onLongTap()
		}
	})
}

// MouseUp stops the long press timer
func (s *Swatch) MouseUp(_ *desktop.MouseEvent) {
	if s.longTapTimer != nil {
		s.longTapTimer.Stop()
	}
}

// Refresh updates the widget's appearance
func (s *Swatch) Refresh() {
	if s.Selected {
		s.border.StrokeColor = selectedColor
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = borderColor
		s.border.StrokeWidth = 2
	}
	s.BaseWidget.Refresh()
	canvas.Refresh(s.fill)
	canvas.Refresh(s.border)
}

// CreateRenderer implements the fyne.Widget interface
func (s *Swatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(s.fill, s.border))
}
