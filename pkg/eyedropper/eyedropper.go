// Package eyedropper samples a color from an image chosen by the user.
package eyedropper

import (
	"colormeow/pkg/colorutils"
	"colormeow/pkg/imageconv"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
)

var (
	ErrCancelled   = errors.New("eyedropper cancelled")
	ErrOutOfBounds = errors.New("point outside image")
)

// Sampler yields one picked color as "#RRGGBB".
type Sampler interface {
	Pick(ctx context.Context) (string, error)
}

// SampleHex returns the color of the pixel at (x, y) relative to the image
// origin. Alpha is dropped.
func SampleHex(img image.Image, x, y int) (string, error) {
	b := img.Bounds()
	p := image.Pt(b.Min.X+x, b.Min.Y+y)
	if !p.In(b) {
		return "", fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return colorutils.FromColor(img.At(p.X, p.Y)).Hex(), nil
}

// ImageSampler picks from a decoded image. The UI submits the pixel the user
// clicked or cancels; Pick waits for either.
type ImageSampler struct {
	img    image.Image
	points chan image.Point
	cancel chan struct{}
	mu     sync.Mutex
}

// NewImageSampler samples img.
func NewImageSampler(img image.Image) *ImageSampler {
	return &ImageSampler{
		img:    img,
		points: make(chan image.Point, 1),
		cancel: make(chan struct{}, 1),
	}
}

// OpenImageSampler decodes the image at path and samples it.
func OpenImageSampler(path string) (*ImageSampler, error) {
	img, err := imageconv.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return NewImageSampler(img), nil
}

// Image returns the image being sampled.
func (s *ImageSampler) Image() image.Image {
	return s.img
}

// Submit offers a pixel to a pending or future Pick. Only the first pending
// point is kept.
func (s *ImageSampler) Submit(p image.Point) {
	select {
	case s.points <- p:
	default:
	}
}

// Cancel makes a pending or future Pick return ErrCancelled.
func (s *ImageSampler) Cancel() {
	select {
	case s.cancel <- struct{}{}:
	default:
	}
}

// Pick blocks until a point is submitted, the pick is cancelled or ctx ends.
func (s *ImageSampler) Pick(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.cancel:
		return "", ErrCancelled
	case p := <-s.points:
		return SampleHex(s.img, p.X, p.Y)
	}
}

// PickRecord runs a sampler and converts its result into a palette record.
func PickRecord(ctx context.Context, s Sampler) (colorutils.ColorRecord, error) {
	hex, err := s.Pick(ctx)
	if err != nil {
		return colorutils.ColorRecord{}, err
	}
	return colorutils.NewColorRecord(hex)
}
