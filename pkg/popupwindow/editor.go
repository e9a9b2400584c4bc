package popupwindow

import (
	"colormeow/pkg/colorutils"
	"colormeow/pkg/components/colorwheel"
	"colormeow/pkg/components/swatch"
	"colormeow/pkg/popup"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

type editorView struct {
	p       *PopupWindow
	content fyne.CanvasObject

	title        *widget.Label
	name         *widget.Entry
	description  *widget.Entry
	count        *widget.Label
	colors       *fyne.Container
	wheel        *colorwheel.Widget
	deleteButton *widget.Button
	loading      bool
}

func newEditorView(p *PopupWindow) *editorView {
	v := &editorView{
		p:           p,
		title:       widget.NewLabel("Create New Palette"),
		name:        widget.NewEntry(),
		description: widget.NewMultiLineEntry(),
		count:       widget.NewLabel("(0)"),
		colors:      container.NewGridWrap(fyne.NewSize(swatch.DefaultSize+6, swatch.DefaultSize+34)),
		wheel:       colorwheel.NewWidget(p.opts.WheelSize),
	}
	v.name.SetPlaceHolder("Palette name")
	v.description.SetPlaceHolder("Description (optional)")
	v.description.SetMinRowsVisible(2)

	details := func(string) {
		if v.loading {
			return
		}
		v.p.update(v.p.State().SetPaletteDetails(v.name.Text, v.description.Text))
	}
	v.name.OnChanged = details
	v.description.OnChanged = details

	v.wheel.SetOnPicked(func(hsv colorutils.HSV) {
		v.addColor(colorutils.RecordFromHSV(hsv))
	})

	saveButton := widget.NewButtonWithIcon("Save Palette", theme.DocumentSaveIcon(), v.save)
	saveButton.Importance = widget.HighImportance
	v.deleteButton = widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), v.confirmDelete)
	v.deleteButton.Importance = widget.DangerImportance

	body := container.NewVBox(
		v.name,
		v.description,
		container.NewHBox(widget.NewLabel("Colors"), v.count),
		v.colors,
		widget.NewLabel("Click the wheel to add a color"),
		container.NewCenter(v.wheel),
		container.NewGridWithColumns(2, saveButton, v.deleteButton),
	)
	v.content = container.NewBorder(p.header(v.title), nil, nil, nil, container.NewVScroll(body))
	return v
}

// load fills the form from the palette being edited.
func (v *editorView) load() {
	s := v.p.State()
	v.loading = true
	v.title.SetText(s.EditorTitle())
	if s.CurrentPalette != nil {
		v.name.SetText(s.CurrentPalette.Name)
		v.description.SetText(s.CurrentPalette.Description)
	} else {
		v.name.SetText("")
		v.description.SetText("")
	}
	v.loading = false

	if s.IsEditing() {
		v.deleteButton.Show()
	} else {
		v.deleteButton.Hide()
	}
	v.renderColors()
}

// renderColors rebuilds the swatch grid and the wheel markers.
func (v *editorView) renderColors() {
	colors := v.p.State().EditorColors()
	v.count.SetText(fmt.Sprintf("(%d)", len(colors)))

	v.colors.Objects = nil
	for i, c := range colors {
		sw := swatch.New(c)
		sw.SetOnRightClick(func() { v.p.copyToClipboard(c.Hex) })
		sw.SetOnLongTap(func() {
			v.p.showInfo(c.Hex, colorutils.FormatRGB(c.RGB)+"\n"+colorutils.FormatHSV(c.HSV))
		})
		remove := widget.NewButtonWithIcon("", theme.CancelIcon(), func() { v.removeColor(i) })
		remove.Importance = widget.LowImportance
		v.colors.Add(container.NewVBox(sw, remove))
	}
	v.colors.Refresh()
	v.wheel.SetMarkers(colors)
}

func (v *editorView) addColor(c colorutils.ColorRecord) {
	v.p.update(v.p.State().AddEditorColor(c))
	v.renderColors()
}

func (v *editorView) removeColor(index int) {
	v.p.update(v.p.State().RemoveEditorColor(index))
	v.renderColors()
}

func (v *editorView) save() {
	s := v.p.State().SetPaletteDetails(v.name.Text, v.description.Text)
	pal, err := s.PaletteForSave()
	if errors.Is(err, popup.ErrNameRequired) {
		v.p.showInfo("Error", "Please enter a palette name")
		return
	}
	if err != nil {
		v.p.showError(err)
		return
	}
	if err := v.p.store.Save(pal); err != nil {
		v.p.showError(fmt.Errorf("failed to save palette: %w", err))
		return
	}
	v.p.showInfo("Success", "Palette saved successfully!")
	v.p.update(s.ResetPaletteEditor().ShowView(popup.ViewMainMenu))
}

func (v *editorView) confirmDelete() {
	if !v.p.State().IsEditing() {
		return
	}
	dialog.ShowConfirm("Delete Palette", "Are you sure you want to delete this palette?", func(ok bool) {
		if ok {
			v.delete()
		}
	}, v.p.window)
}

func (v *editorView) delete() {
	s := v.p.State()
	if !s.IsEditing() {
		return
	}
	if err := v.p.store.Delete(s.CurrentPaletteID); err != nil {
		v.p.showError(fmt.Errorf("failed to delete palette: %w", err))
		return
	}
	v.p.showInfo("Success", "Palette deleted successfully!")
	v.p.update(s.ResetPaletteEditor().ShowView(popup.ViewMainMenu))
}
