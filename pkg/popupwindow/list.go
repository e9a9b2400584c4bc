package popupwindow

import (
	"colormeow/pkg/components/swatch"
	"colormeow/pkg/palettes"
	"colormeow/pkg/utilwindows"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
)

// maxCardColors is the number of swatches shown on a palette card.
const maxCardColors = 10

type listView struct {
	p       *PopupWindow
	content fyne.CanvasObject
	search  *widget.Entry
	cards   *fyne.Container
}

func newListView(p *PopupWindow) *listView {
	v := &listView{
		p:      p,
		search: widget.NewEntry(),
		cards:  container.NewVBox(),
	}
	v.search.SetPlaceHolder("Search palettes")
	v.search.OnChanged = func(string) { v.refresh() }

	exportButton := widget.NewButtonWithIcon("Export", theme.DownloadIcon(), v.exportJSON)
	importButton := widget.NewButtonWithIcon("Import", theme.UploadIcon(), func() {
		utilwindows.ShowImportWindow(p.app, p.window, p.store, v.refresh)
	})
	bundleButton := widget.NewButtonWithIcon("Bundle", theme.StorageIcon(), func() {
		utilwindows.ShowExportBundleWindow(p.app, p.window, p.store, p.opts)
	})

	top := container.NewVBox(p.header(widget.NewLabel("My Palettes")), v.search)
	bottom := container.NewGridWithColumns(3, exportButton, importButton, bundleButton)
	v.content = container.NewBorder(top, bottom, nil, nil, container.NewVScroll(v.cards))
	return v
}

func (v *listView) refresh() {
	list, err := v.p.store.SearchByName(strings.TrimSpace(v.search.Text))
	if err != nil {
		appLogger.Println("Error loading palettes:", err)
		v.p.showError(err)
		return
	}

	v.cards.Objects = nil
	if len(list) == 0 {
		v.cards.Add(widget.NewLabel("No palettes yet. Create one from the main menu."))
	}
	for _, pal := range list {
		v.cards.Add(v.card(pal))
	}
	v.cards.Refresh()
}

// card shows the palette name, up to maxCardColors swatches and when it last changed.
func (v *listView) card(pal palettes.Palette) fyne.CanvasObject {
	edit := func() { v.p.update(v.p.State().EditPalette(&pal)) }

	colors := container.NewHBox()
	for _, c := range pal.Colors[:min(len(pal.Colors), maxCardColors)] {
		sw := swatch.NewSized(c, 20)
		sw.SetOnTapped(edit)
		colors.Add(sw)
	}

	card := widget.NewCard(pal.Name, cardSubtitle(pal, v.p.now()), colors)
	button := widget.NewButton("", edit)
	button.Importance = widget.LowImportance
	return container.NewStack(button, card)
}

func cardSubtitle(pal palettes.Palette, now time.Time) string {
	n := len(pal.Colors)
	noun := "colors"
	if n == 1 {
		noun = "color"
	}
	modified := pal.LastModified()
	if modified.IsZero() {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %s, updated %s", n, noun, humanize.RelTime(modified, now, "ago", "from now"))
}

// ExportFileName names a JSON export written at now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("palettes-%d.json", now.UnixMilli())
}

func (v *listView) exportJSON() {
	exported, err := v.p.store.ExportAll()
	if err != nil {
		v.p.showError(err)
		return
	}
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			v.p.showError(err)
			return
		}
		if writer == nil {
			return
		}
		writer, err = utilwindows.EnsureExtension(writer, ".json")
		if err != nil {
			v.p.showError(err)
			return
		}
		defer writer.Close()
		if _, err := writer.Write([]byte(exported)); err != nil {
			v.p.showError(fmt.Errorf("failed to write export: %w", err))
			return
		}
		v.p.showInfo("Success", "Palettes exported successfully!")
	}, v.p.window)
	save.SetFileName(ExportFileName(v.p.now()))
	save.Show()
}
