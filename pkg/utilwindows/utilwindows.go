package utilwindows

import (
	"colormeow/pkg/archives"
	"colormeow/pkg/fileutils"
	"colormeow/pkg/imageconv"
	"colormeow/pkg/logger"
	"colormeow/pkg/options"
	"colormeow/pkg/palettes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var appLogger = logger.InitLogger()

var ErrImportFailed = errors.New("failed to import palettes, please check the file format")

// settingsForm holds the widgets of the settings window.
type settingsForm struct {
	dbPath        *widget.Entry
	wheelSize     *widget.Slider
	triangleSteps *widget.Slider
	swatchFormat  *widget.Select
	swatchCell    *widget.Slider
	useRGB        *widget.Check
	profiling     *widget.Check
}

func newSettingsForm(s Settings) *settingsForm {
	f := &settingsForm{
		dbPath:        widget.NewEntry(),
		wheelSize:     widget.NewSlider(float64(MinWheelSize), float64(MaxWheelSize)),
		triangleSteps: widget.NewSlider(float64(MinTriangleSteps), float64(MaxTriangleSteps)),
		swatchFormat:  widget.NewSelect(imageconv.ImageTypes, nil),
		swatchCell:    widget.NewSlider(float64(MinSwatchCell), float64(MaxSwatchCell)),
		useRGB:        widget.NewCheck("Show RGB first", nil),
		profiling:     widget.NewCheck("Enable profiling (restart required)", nil),
	}
	f.dbPath.SetText(s.DatabasePath)
	for _, slider := range []*widget.Slider{f.wheelSize, f.triangleSteps, f.swatchCell} {
		slider.Step = 1
	}
	f.wheelSize.SetValue(float64(s.WheelSize))
	f.triangleSteps.SetValue(float64(s.TriangleSteps))
	f.swatchCell.SetValue(float64(s.SwatchCell))
	f.swatchFormat.SetSelected(s.SwatchFormat)
	f.useRGB.SetChecked(s.UseRGB)
	f.profiling.SetChecked(s.Profiling)
	return f
}

func (f *settingsForm) read() Settings {
	return Settings{
		DatabasePath:  f.dbPath.Text,
		WheelSize:     int(f.wheelSize.Value),
		TriangleSteps: int(f.triangleSteps.Value),
		SwatchFormat:  f.swatchFormat.Selected,
		SwatchCell:    int(f.swatchCell.Value),
		UseRGB:        f.useRGB.Checked,
		Profiling:     f.profiling.Checked,
	}
}

// sliderRow shows a slider with its current value next to it
func sliderRow(s *widget.Slider) fyne.CanvasObject {
	value := widget.NewLabel(strconv.Itoa(int(s.Value)))
	s.OnChanged = func(v float64) { value.SetText(strconv.Itoa(int(v))) }
	return container.NewBorder(nil, nil, nil, value, s)
}

// ShowSettingsWindow opens the settings window. onSaved runs after the
// options were written to the database.
func ShowSettingsWindow(a fyne.App, parent fyne.Window, db *sql.DB, opts *options.Options, onSaved func(*options.Options)) fyne.Window {
	settingsWindow := a.NewWindow("Settings")
	form := newSettingsForm(SettingsFrom(opts))

	saveOptionsButton := widget.NewButton("Save Options", func() {
		if err := form.read().Apply(opts); err != nil {
			dialog.ShowError(err, settingsWindow)
			return
		}
		if err := options.SaveOptionsToDB(db, opts); err != nil {
			appLogger.Println("Failed to save Options: ", err)
			dialog.ShowError(err, settingsWindow)
			return
		}
		dialog.ShowInformation("Success", "Options saved successfully", settingsWindow)
		if onSaved != nil {
			onSaved(opts)
		}
	})

	content := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Database Path", form.dbPath),
			widget.NewFormItem("Wheel size", sliderRow(form.wheelSize)),
			widget.NewFormItem("Triangle steps", sliderRow(form.triangleSteps)),
			widget.NewFormItem("Swatch format", form.swatchFormat),
			widget.NewFormItem("Swatch cell", sliderRow(form.swatchCell)),
		),
		form.useRGB,
		form.profiling,
		widget.NewLabel("Database path changes apply on the next start."),
		saveOptionsButton,
	)

	settingsWindow.SetContent(container.NewPadded(content))
	settingsWindow.Resize(fyne.NewSize(420, 360))
	settingsWindow.Show()
	return settingsWindow
}

// ShowPasswordWindow asks for a password and hands a non-empty one to onPassword.
func ShowPasswordWindow(a fyne.App, title string, onPassword func(string)) fyne.Window {
	passwordWindow := a.NewWindow(title)
	label := widget.NewLabel("Enter Password:")
	password := widget.NewPasswordEntry()
	submit := func(text string) {
		if text == "" {
			dialog.ShowInformation("Error", "Password cannot be empty", passwordWindow)
			return
		}
		passwordWindow.Close()
		onPassword(text)
	}
	password.OnSubmitted = submit
	okButton := widget.NewButton("OK", func() { submit(password.Text) })

	passwordWindow.SetContent(container.NewVBox(label, password, okButton))
	passwordWindow.Resize(fyne.NewSize(300, 120))
	passwordWindow.Show()
	return passwordWindow
}

// ShowExportBundleWindow lets the user pick an archive format and writes
// every palette plus its swatch image to the chosen file.
func ShowExportBundleWindow(a fyne.App, w fyne.Window, store *palettes.Store, opts *options.Options) {
	content := container.NewVBox()
	var chooser dialog.Dialog
	for _, format := range archives.Formats {
		content.Add(widget.NewButton(fmt.Sprintf("%s archive", format), func() {
			chooser.Hide()
			if format.Encrypted() {
				ShowPasswordWindow(a, "Enter Password", func(password string) {
					saveBundle(w, store, opts, format, password)
				})
				return
			}
			saveBundle(w, store, opts, format, "")
		}))
	}
	chooser = dialog.NewCustom("Choose Archive Type", "Close", content, w)
	chooser.Show()
}

func saveBundle(w fyne.Window, store *palettes.Store, opts *options.Options, format archives.Format, password string) {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if writer == nil {
			return
		}
		writer, err = EnsureExtension(writer, format.Extension())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		defer writer.Close()

		if err := WriteBundle(writer, store, opts, format, password); err != nil {
			appLogger.Println("Error exporting bundle:", err)
			dialog.ShowError(err, w)
			return
		}
		dialog.ShowInformation("Success", fmt.Sprintf("Archive created successfully at %s", writer.URI().Path()), w)
	}, w)
	save.SetFileName(BundleFileName(time.Now(), format.Extension()))
	save.Show()
}

// EnsureExtension returns a writer whose path ends in ext, so the file can be
// imported again by its name. When the chosen path lacks ext the empty file
// behind writer is closed and removed.
func EnsureExtension(writer fyne.URIWriteCloser, ext string) (fyne.URIWriteCloser, error) {
	uri := writer.URI()
	fixed := fileutils.WithExtension(uri.Path(), ext)
	if fixed == uri.Path() {
		return writer, nil
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	if err := storage.Delete(uri); err != nil {
		appLogger.Println("Error removing", uri.Path(), err)
	}
	return storage.Writer(storage.NewFileURI(fixed))
}

// WriteBundle streams the export bundle to out.
func WriteBundle(out io.Writer, store *palettes.Store, opts *options.Options, format archives.Format, password string) error {
	entries, err := archives.BuildBundle(store, opts.SwatchFormat, opts.SwatchCell)
	if err != nil {
		return err
	}
	return archives.Write(out, format, entries, password)
}

// ImportPalettesFile merges a palette JSON file or an export bundle into the store.
func ImportPalettesFile(name string, data []byte, password string, store *palettes.Store) error {
	var err error
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		err = store.ImportAll(string(data), true)
	} else {
		err = archives.ImportBundleData(name, data, password, store, true)
	}
	if err == nil || errors.Is(err, archives.ErrPasswordRequired) {
		return err
	}
	appLogger.Println("Error importing palettes:", err)
	return fmt.Errorf("%w: %w", ErrImportFailed, err)
}

// ShowImportWindow opens a palette JSON file or bundle and merges it into the
// store, asking for a password when the bundle is encrypted.
func ShowImportWindow(a fyne.App, w fyne.Window, store *palettes.Store, onImported func()) {
	finish := func(err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		dialog.ShowInformation("Success", "Palettes imported successfully!", w)
		if onImported != nil {
			onImported()
		}
	}

	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read file: %w", err), w)
			return
		}
		name := reader.URI().Name()

		err = ImportPalettesFile(name, data, "", store)
		if errors.Is(err, archives.ErrPasswordRequired) {
			ShowPasswordWindow(a, "Bundle Password", func(password string) {
				finish(ImportPalettesFile(name, data, password, store))
			})
			return
		}
		finish(err)
	}, w)
}
