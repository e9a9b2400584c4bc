// Package popupwindow builds the views of the main window around a popup.State.
package popupwindow

import (
	"colormeow/pkg/logger"
	"colormeow/pkg/options"
	"colormeow/pkg/palettes"
	"colormeow/pkg/popup"
	"colormeow/pkg/utilwindows"
	"database/sql"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var appLogger = logger.InitLogger()

type PopupWindow struct {
	app    fyne.App
	window fyne.Window
	db     *sql.DB
	store  *palettes.Store
	opts   *options.Options
	now    func() time.Time

	mu    sync.Mutex
	state popup.State

	picker *pickerView
	editor *editorView
	list   *listView
}

// New builds every view and shows the main menu in w.
func New(a fyne.App, w fyne.Window, db *sql.DB, store *palettes.Store, opts *options.Options) *PopupWindow {
	p := &PopupWindow{
		app:    a,
		window: w,
		db:     db,
		store:  store,
		opts:   opts,
		now:    time.Now,
		state:  popup.New(),
	}
	p.buildViews()
	p.render()
	return p
}

func (p *PopupWindow) buildViews() {
	if p.picker != nil {
		p.picker.stopSampling()
	}
	p.picker = newPickerView(p)
	p.editor = newEditorView(p)
	p.list = newListView(p)
}

// State returns a snapshot of the current state.
func (p *PopupWindow) State() popup.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// update replaces the state and swaps the window content when the view changed.
func (p *PopupWindow) update(s popup.State) {
	p.mu.Lock()
	changed := p.state.View != s.View
	p.state = s
	p.mu.Unlock()

	if changed {
		p.render()
	}
}

func (p *PopupWindow) render() {
	var content fyne.CanvasObject
	switch p.State().View {
	case popup.ViewColorPicker:
		p.picker.refresh()
		content = p.picker.content
	case popup.ViewPaletteEditor:
		p.editor.load()
		content = p.editor.content
	case popup.ViewPalettesList:
		p.list.refresh()
		content = p.list.content
	default:
		content = p.mainMenu()
	}
	p.window.SetContent(container.NewPadded(content))
}

func (p *PopupWindow) mainMenu() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("Color Meow", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	return container.NewVBox(
		title,
		widget.NewButtonWithIcon("Color Picker", theme.ColorPaletteIcon(), func() {
			p.update(p.State().ShowView(popup.ViewColorPicker))
		}),
		widget.NewButtonWithIcon("Create Palette", theme.ContentAddIcon(), func() {
			p.update(p.State().StartNewPalette())
		}),
		widget.NewButtonWithIcon("View Palettes", theme.ListIcon(), func() {
			p.update(p.State().ShowView(popup.ViewPalettesList))
		}),
		widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
			utilwindows.ShowSettingsWindow(p.app, p.window, p.db, p.opts, func(*options.Options) {
				p.buildViews()
				p.render()
			})
		}),
	)
}

// back leaves the current view, resetting what it was editing.
func (p *PopupWindow) back() {
	if p.State().View == popup.ViewColorPicker {
		p.picker.stopSampling()
	}
	p.update(p.State().Back())
}

// header is the back button and title row on top of every view.
func (p *PopupWindow) header(title *widget.Label) fyne.CanvasObject {
	backButton := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), p.back)
	backButton.Importance = widget.LowImportance
	title.TextStyle = fyne.TextStyle{Bold: true}
	return container.NewBorder(nil, nil, backButton, nil, title)
}

func (p *PopupWindow) showError(err error) {
	dialog.ShowError(err, p.window)
}

func (p *PopupWindow) showInfo(title, message string) {
	dialog.ShowInformation(title, message, p.window)
}

func (p *PopupWindow) copyToClipboard(text string) {
	p.window.Clipboard().SetContent(text)
}
