package utilwindows

import (
	"colormeow/pkg/fileutils"
	"colormeow/pkg/imageconv"
	"colormeow/pkg/options"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const LAYOUT = "2006-01-02-150405"

var (
	MinWheelSize     = 120
	MaxWheelSize     = 480
	MinTriangleSteps = 10
	MaxTriangleSteps = 100
	MinSwatchCell    = 8
	MaxSwatchCell    = 256

	ErrInvalidSetting = errors.New("invalid setting")
)

// Settings is the editable copy of the options shown in the settings window.
type Settings struct {
	DatabasePath  string
	WheelSize     int
	TriangleSteps int
	SwatchFormat  string
	SwatchCell    int
	UseRGB        bool
	Profiling     bool
}

func SettingsFrom(opts *options.Options) Settings {
	return Settings{
		DatabasePath:  opts.DatabasePath,
		WheelSize:     opts.WheelSize,
		TriangleSteps: opts.TriangleSteps,
		SwatchFormat:  opts.SwatchFormat,
		SwatchCell:    opts.SwatchCell,
		UseRGB:        opts.UseRGB,
		Profiling:     opts.Profiling,
	}
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.DatabasePath) == "" {
		return fmt.Errorf("%w: database path cannot be empty", ErrInvalidSetting)
	}
	if s.WheelSize < MinWheelSize || s.WheelSize > MaxWheelSize {
		return fmt.Errorf("%w: wheel size must be between %d and %d", ErrInvalidSetting, MinWheelSize, MaxWheelSize)
	}
	if s.TriangleSteps < MinTriangleSteps || s.TriangleSteps > MaxTriangleSteps {
		return fmt.Errorf("%w: triangle steps must be between %d and %d", ErrInvalidSetting, MinTriangleSteps, MaxTriangleSteps)
	}
	if s.SwatchCell < MinSwatchCell || s.SwatchCell > MaxSwatchCell {
		return fmt.Errorf("%w: swatch cell must be between %d and %d", ErrInvalidSetting, MinSwatchCell, MaxSwatchCell)
	}
	if !slices.Contains(imageconv.ImageTypes, strings.ToUpper(s.SwatchFormat)) {
		return fmt.Errorf("%w: unknown swatch format %q", ErrInvalidSetting, s.SwatchFormat)
	}
	return nil
}

// Apply validates s and copies it into opts.
func (s Settings) Apply(opts *options.Options) error {
	if err := s.Validate(); err != nil {
		return err
	}
	opts.DatabasePath = strings.TrimSpace(s.DatabasePath)
	opts.WheelSize = s.WheelSize
	opts.TriangleSteps = s.TriangleSteps
	opts.SwatchFormat = strings.ToUpper(s.SwatchFormat)
	opts.SwatchCell = s.SwatchCell
	opts.UseRGB = s.UseRGB
	opts.Profiling = s.Profiling
	return nil
}

// BundleFileName names an export bundle created at now.
func BundleFileName(now time.Time, ext string) string {
	return fileutils.WithExtension("palettes-"+now.Format(LAYOUT), ext)
}
