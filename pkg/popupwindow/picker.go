package popupwindow

import (
	"bytes"
	"colormeow/pkg/colorutils"
	"colormeow/pkg/components/huewheel"
	"colormeow/pkg/components/swatch"
	"colormeow/pkg/eyedropper"
	"colormeow/pkg/fileutils"
	"colormeow/pkg/imageconv"
	"colormeow/pkg/options"
	"colormeow/pkg/popup"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	xwidget "fyne.io/x/fyne/widget"
)

var errUnsupportedImage = errors.New("unsupported image file")

var emptyPreview = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}

type pickerView struct {
	p       *PopupWindow
	content fyne.CanvasObject

	image     *sampleImage
	hint      *widget.Label
	preview   *canvas.Rectangle
	hexLabel  *widget.Label
	rgbLabel  *widget.Label
	hsvLabel  *widget.Label
	nameLabel *widget.Label
	values    *fyne.Container
	wheel     *huewheel.Widget
	recent    *fyne.Container

	paletteEntry *xwidget.CompletionEntry
	paletteIDs   map[string]string
	addButton    *widget.Button

	sampler *eyedropper.ImageSampler
}

func newPickerView(p *PopupWindow) *pickerView {
	v := &pickerView{
		p:          p,
		hint:       widget.NewLabel("Open an image and click a pixel to pick its color."),
		preview:    canvas.NewRectangle(emptyPreview),
		hexLabel:   widget.NewLabel("-"),
		rgbLabel:   widget.NewLabel("-"),
		hsvLabel:   widget.NewLabel("-"),
		nameLabel:  widget.NewLabel("-"),
		values:     container.NewVBox(),
		wheel:      huewheel.NewWidget(p.opts.TriangleSteps),
		recent:     container.NewHBox(),
		paletteIDs: map[string]string{},
	}
	v.image = newSampleImage(v.submitPoint)
	v.preview.SetMinSize(fyne.NewSize(64, 64))
	v.preview.CornerRadius = 5
	v.hint.Wrapping = fyne.TextWrapWord
	v.wheel.SetOnColorChange(v.adjustColor)

	v.paletteEntry = xwidget.NewCompletionEntry(nil)
	v.paletteEntry.SetPlaceHolder("Select palette")
	v.paletteEntry.OnChanged = func(text string) {
		names := v.choosePalette(text)
		v.paletteEntry.SetOptions(names)
		if len(names) == 0 || text == "" {
			v.paletteEntry.HideCompletion()
			return
		}
		v.paletteEntry.ShowCompletion()
	}

	v.addButton = widget.NewButtonWithIcon("Add to Palette", theme.ContentAddIcon(), v.addToPalette)
	v.addButton.Importance = widget.HighImportance

	openButton := widget.NewButtonWithIcon("Open Image", theme.FolderOpenIcon(), v.openImage)
	copyButton := widget.NewButtonWithIcon("", theme.ContentCopyIcon(), func() {
		if c := v.p.State().CurrentColor; c != nil {
			v.p.copyToClipboard(c.Hex)
		}
	})

	body := container.NewVBox(
		openButton,
		container.NewStack(v.hint, v.image),
		container.NewBorder(nil, nil, v.preview, copyButton, v.values),
		container.NewCenter(v.wheel),
		widget.NewLabel("Recent colors"),
		container.NewHScroll(v.recent),
		v.paletteEntry,
		v.addButton,
	)
	v.content = container.NewBorder(p.header(widget.NewLabel("Color Picker")), nil, nil, nil, container.NewVScroll(body))
	return v
}

// refresh syncs every widget with the current state.
func (v *pickerView) refresh() {
	s := v.p.State()

	v.values.Objects = nil
	if v.p.opts.UseRGB {
		v.values.Add(v.rgbLabel)
		v.values.Add(v.hsvLabel)
	} else {
		v.values.Add(v.hsvLabel)
		v.values.Add(v.rgbLabel)
	}
	v.values.Add(v.hexLabel)
	v.values.Add(v.nameLabel)
	v.values.Refresh()

	v.refreshColor()
	if s.CurrentColor != nil {
		v.wheel.SetColor(s.CurrentColor.HSV.H, s.CurrentColor.HSV.S, s.CurrentColor.HSV.V)
	}
	if s.SelectedPaletteID == "" && v.paletteEntry.Text != "" {
		v.paletteEntry.SetText("")
	}
	v.refreshRecent()
}

func (v *pickerView) refreshColor() {
	s := v.p.State()
	if c := s.CurrentColor; c != nil {
		v.preview.FillColor = c.RGB.NRGBA()
		v.rgbLabel.SetText(colorutils.FormatRGB(c.RGB))
		v.hsvLabel.SetText(colorutils.FormatHSV(c.HSV))
		v.hexLabel.SetText(c.Hex)
		v.nameLabel.SetText(colorutils.NearestName(c.RGB))
	} else {
		v.preview.FillColor = emptyPreview
		for _, l := range []*widget.Label{v.rgbLabel, v.hsvLabel, v.hexLabel, v.nameLabel} {
			l.SetText("-")
		}
	}
	v.preview.Refresh()

	if s.CanAddToPalette() {
		v.addButton.Enable()
	} else {
		v.addButton.Disable()
	}
}

func (v *pickerView) refreshRecent() {
	v.recent.Objects = nil
	for _, hex := range v.p.opts.RecentColors {
		c, err := colorutils.NewColorRecord(hex)
		if err != nil {
			continue
		}
		sw := swatch.NewSized(c, 24)
		sw.SetOnTapped(func() { v.pickColor(c.Hex) })
		sw.SetOnRightClick(func() { v.p.copyToClipboard(c.Hex) })
		v.recent.Add(sw)
	}
	v.recent.Refresh()
}

// pickColor makes hex the current color and remembers it as recent.
func (v *pickerView) pickColor(hex string) {
	s, err := v.p.State().PickColor(hex)
	if err != nil {
		v.p.showError(err)
		return
	}
	v.p.update(s)
	c := s.CurrentColor
	v.wheel.SetColor(c.HSV.H, c.HSV.S, c.HSV.V)
	v.refreshColor()

	v.p.opts.AddRecentColor(c.Hex)
	if err := options.SaveOptionsToDB(v.p.db, v.p.opts); err != nil {
		appLogger.Println("Failed to save recent colors:", err)
	}
	v.refreshRecent()
}

func (v *pickerView) adjustColor(h, s, val float64) {
	v.p.update(v.p.State().AdjustColor(h, s, val))
	v.refreshColor()
}

// choosePalette selects the palette whose name is text and returns the
// names matching it for the completion list.
func (v *pickerView) choosePalette(text string) []string {
	found, err := v.p.store.SearchByName(strings.TrimSpace(text))
	if err != nil {
		appLogger.Println("Error searching palettes:", err)
		return nil
	}

	names := make([]string, 0, len(found))
	v.paletteIDs = map[string]string{}
	for _, pal := range found {
		if _, ok := v.paletteIDs[pal.Name]; ok {
			continue
		}
		v.paletteIDs[pal.Name] = pal.ID
		names = append(names, pal.Name)
	}

	v.p.update(v.p.State().SelectPalette(v.paletteIDs[text]))
	v.refreshColor()
	return names
}

func (v *pickerView) addToPalette() {
	s := v.p.State()
	if s.CurrentColor == nil {
		v.p.showInfo("Error", "Please pick a color first")
		return
	}
	if s.SelectedPaletteID == "" {
		v.p.showInfo("Error", "Please select a palette")
		return
	}
	if err := v.p.store.AddColor(s.SelectedPaletteID, *s.CurrentColor); err != nil {
		v.p.showError(fmt.Errorf("failed to add color to palette: %w", err))
		return
	}
	v.p.showInfo("Success", "Color added to palette successfully!")
	v.p.update(s.ResetColorPicker())
	v.refresh()
}

func (v *pickerView) openImage() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			v.p.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			v.p.showError(fmt.Errorf("failed to read image: %w", err))
			return
		}
		img, err := decodeImage(reader.URI().Name(), data)
		if err != nil {
			v.p.showError(err)
			return
		}
		v.startSampling(img)
	}, v.p.window)
	open.SetFilter(storage.NewExtensionFileFilter(fileutils.ImageExtensions()))
	open.Show()
}

// decodeImage decodes an image file the eyedropper can sample.
func decodeImage(name string, data []byte) (image.Image, error) {
	if !fileutils.IsImageFileMap(name) {
		return nil, fmt.Errorf("%w: %s", errUnsupportedImage, name)
	}
	return imageconv.Decode(bytes.NewReader(data), filepath.Ext(name))
}

// startSampling shows img and picks colors from it until the view is left.
func (v *pickerView) startSampling(img image.Image) {
	v.stopSampling()
	v.hint.Hide()
	v.image.SetImage(img)
	v.sampler = eyedropper.NewImageSampler(img)
}

// submitPoint runs on the tap handler. The point is buffered before Pick, so
// Pick returns at once and the color is applied on the UI thread.
func (v *pickerView) submitPoint(pt image.Point) {
	if v.sampler == nil || v.p.State().View != popup.ViewColorPicker {
		return
	}
	v.sampler.Submit(pt)
	rec, err := eyedropper.PickRecord(context.Background(), v.sampler)
	switch {
	case errors.Is(err, eyedropper.ErrCancelled), errors.Is(err, eyedropper.ErrOutOfBounds):
		return
	case err != nil:
		appLogger.Println("Error picking color:", err)
		return
	}
	v.pickColor(rec.Hex)
}

func (v *pickerView) stopSampling() {
	if v.sampler != nil {
		v.sampler.Cancel()
		v.sampler = nil
	}
}
