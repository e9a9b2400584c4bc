package apptheme

import (
	"bytes"
	"colormeow/pkg/components/colorwheel"
	"colormeow/pkg/imageconv"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// IconSizes are the pixel sizes the app icon is rendered at.
var IconSizes = []int{16, 32, 48, 128}

// DefaultTheme is the light, soft-purple look of the picker windows.
type DefaultTheme struct{}

func (DefaultTheme) Color(c fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	switch c {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0xfa, G: 0xf7, B: 0xff, A: 0xff}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0xe9, G: 0xe1, B: 0xfb, A: 0xff}
	case theme.ColorNameDisabledButton:
		return color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff}
	case theme.ColorNameDisabled:
		return color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x42}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0x7e, G: 0x57, B: 0xc2, A: 0x7f}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0x7e, G: 0x57, B: 0xc2, A: 0x19}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	case theme.ColorNamePlaceHolder:
		return color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	case theme.ColorNamePressed:
		return color.NRGBA{R: 0x7e, G: 0x57, B: 0xc2, A: 0x66}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x7e, G: 0x57, B: 0xc2, A: 0xff}
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0xb3, G: 0x9d, B: 0xdb, A: 0xff}
	case theme.ColorNameShadow:
		return color.NRGBA{R: 0x0, G: 0x0, B: 0x0, A: 0x33}
	default:
		return theme.DefaultTheme().Color(c, theme.VariantLight)
	}
}

func (DefaultTheme) Font(s fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(s)
}

func (DefaultTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (DefaultTheme) Size(s fyne.ThemeSizeName) float32 {
	switch s {
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameInlineIcon:
		return 20
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameScrollBarSmall:
		return 4
	case theme.SizeNameSeparatorThickness:
		return 1
	case theme.SizeNameText:
		return 13
	case theme.SizeNameInputBorder:
		return 2
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 6
	default:
		return theme.DefaultTheme().Size(s)
	}
}

// Icon renders the color wheel as a PNG app icon of the given size.
func Icon(size int) (fyne.Resource, error) {
	wheel := colorwheel.New(size)
	// the editor margin would swallow the small sizes
	wheel.Radius = float64(size)/2 - 1
	wheel.Render()

	var buf bytes.Buffer
	if err := imageconv.Encode(&buf, wheel.Surface, "PNG"); err != nil {
		return nil, fmt.Errorf("failed to render icon: %w", err)
	}
	return fyne.NewStaticResource(fmt.Sprintf("icon%d.png", size), buf.Bytes()), nil
}
