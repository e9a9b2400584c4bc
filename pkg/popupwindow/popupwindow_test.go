package popupwindow

import (
	"bytes"
	"colormeow/pkg/colorutils"
	"colormeow/pkg/database"
	"colormeow/pkg/options"
	"colormeow/pkg/palettes"
	"colormeow/pkg/popup"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPopup(t *testing.T) *PopupWindow {
	t.Helper()
	a := test.NewApp()
	db, err := database.Open(filepath.Join(t.TempDir(), "popup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	opts := options.Options{}.InitDefault()
	w := a.NewWindow("Color Meow")
	p := New(a, w, db, palettes.NewStore(db), opts)
	t.Cleanup(p.picker.stopSampling)
	return p
}

func record(t *testing.T, hex string) colorutils.ColorRecord {
	t.Helper()
	c, err := colorutils.NewColorRecord(hex)
	require.NoError(t, err)
	return c
}

func TestStartsOnMainMenu(t *testing.T) {
	p := newPopup(t)
	assert.Equal(t, popup.ViewMainMenu, p.State().View)
	assert.NotNil(t, p.window.Content())
}

func TestCreatePalette(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().StartNewPalette())
	assert.Equal(t, "Create New Palette", p.editor.title.Text)
	assert.False(t, p.editor.deleteButton.Visible())

	p.editor.name.SetText("  Warm ")
	p.editor.addColor(record(t, "#FF0000"))
	p.editor.addColor(record(t, "#FFA500"))
	assert.Equal(t, "(2)", p.editor.count.Text)
	assert.Len(t, p.editor.wheel.Markers(), 2)

	p.editor.save()
	assert.Equal(t, popup.ViewMainMenu, p.State().View)
	assert.Nil(t, p.State().CurrentPalette)

	list, err := p.store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Warm", list[0].Name)
	assert.Len(t, list[0].Colors, 2)
}

func TestSaveNeedsName(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().StartNewPalette())
	p.editor.name.SetText("   ")
	p.editor.save()

	assert.Equal(t, popup.ViewPaletteEditor, p.State().View)
	list, err := p.store.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestEditAndDeletePalette(t *testing.T) {
	p := newPopup(t)
	stored := &palettes.Palette{Name: "Mix", Colors: []colorutils.ColorRecord{record(t, "#FF0000"), record(t, "#0000FF")}}
	require.NoError(t, p.store.Save(stored))

	p.update(p.State().ShowView(popup.ViewPalettesList))
	require.Len(t, p.list.cards.Objects, 1)

	p.update(p.State().EditPalette(stored))
	assert.Equal(t, "Edit Palette", p.editor.title.Text)
	assert.Equal(t, "Mix", p.editor.name.Text)
	assert.True(t, p.editor.deleteButton.Visible())
	assert.Len(t, p.editor.colors.Objects, 2)

	p.editor.removeColor(0)
	p.editor.save()
	got, err := p.store.Get(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, []colorutils.ColorRecord{record(t, "#0000FF")}, got.Colors)

	p.update(p.State().EditPalette(got))
	p.editor.delete()
	assert.Equal(t, popup.ViewMainMenu, p.State().View)
	_, err = p.store.Get(stored.ID)
	assert.ErrorIs(t, err, palettes.ErrPaletteNotFound)
}

func TestPickAndAddToPalette(t *testing.T) {
	p := newPopup(t)
	target := &palettes.Palette{Name: "Warm"}
	require.NoError(t, p.store.Save(target))
	require.NoError(t, p.store.Save(&palettes.Palette{Name: "Cold"}))

	p.update(p.State().ShowView(popup.ViewColorPicker))
	assert.True(t, p.picker.addButton.Disabled())

	p.picker.pickColor("#ff5733")
	assert.Equal(t, "#FF5733", p.picker.hexLabel.Text)
	assert.Equal(t, "rgb(255, 87, 51)", p.picker.rgbLabel.Text)
	assert.Equal(t, []string{"#FF5733"}, p.opts.RecentColors)
	assert.Len(t, p.picker.recent.Objects, 1)
	assert.True(t, p.picker.addButton.Disabled())

	assert.Equal(t, []string{"Warm"}, p.picker.choosePalette("War"))
	assert.Empty(t, p.State().SelectedPaletteID)
	p.picker.choosePalette("Warm")
	assert.Equal(t, target.ID, p.State().SelectedPaletteID)
	assert.False(t, p.picker.addButton.Disabled())

	p.picker.addToPalette()
	got, err := p.store.Get(target.ID)
	require.NoError(t, err)
	require.Len(t, got.Colors, 1)
	assert.Equal(t, "#FF5733", got.Colors[0].Hex)

	assert.Nil(t, p.State().CurrentColor)
	assert.Equal(t, "-", p.picker.hexLabel.Text)
	assert.True(t, p.picker.addButton.Disabled())
}

func TestAdjustColorFromWheel(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().ShowView(popup.ViewColorPicker))
	p.picker.adjustColor(240, 100, 100)
	assert.Equal(t, "#0000FF", p.picker.hexLabel.Text)
	assert.Equal(t, "blue", p.picker.nameLabel.Text)
}

func TestBackFromPickerResets(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().ShowView(popup.ViewColorPicker))
	p.picker.pickColor("#00FF00")
	p.back()
	assert.Equal(t, popup.ViewMainMenu, p.State().View)
	assert.Nil(t, p.State().CurrentColor)
}

func TestEyedropperPicksTappedPixel(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().ShowView(popup.ViewColorPicker))

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(2, 3, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	p.picker.startSampling(img)
	p.picker.image.Resize(fyne.NewSize(10, 10))

	test.TapAt(p.picker.image, fyne.NewPos(2.5, 3.5))
	require.NotNil(t, p.State().CurrentColor)
	assert.Equal(t, "#123456", p.State().CurrentColor.Hex)
	assert.Equal(t, "#123456", p.picker.hexLabel.Text)
	assert.Equal(t, []string{"#123456"}, p.opts.RecentColors)
}

func TestEyedropperPickRunsOnCallerGoroutine(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().ShowView(popup.ViewColorPicker))

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 0xab, G: 0xcd, B: 0xef, A: 0xff})
	p.picker.startSampling(img)
	p.picker.image.Resize(fyne.NewSize(4, 4))

	test.TapAt(p.picker.image, fyne.NewPos(1.5, 1.5))
	for i := 0; i < 50; i++ {
		p.picker.wheel.SetColor(float64(i), 50, 50)
		p.picker.refreshRecent()
	}
	assert.Equal(t, "#ABCDEF", p.State().CurrentColor.Hex)
	assert.Len(t, p.picker.recent.Objects, 1)
}

func TestEyedropperIgnoresTapAfterBack(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().ShowView(popup.ViewColorPicker))

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	p.picker.startSampling(img)
	p.picker.image.Resize(fyne.NewSize(4, 4))
	p.back()

	test.TapAt(p.picker.image, fyne.NewPos(1.5, 1.5))
	assert.Equal(t, popup.ViewMainMenu, p.State().View)
	assert.Nil(t, p.State().CurrentColor)
	assert.Empty(t, p.opts.RecentColors)
}

func TestEyedropperOutOfBoundsTapIsIgnored(t *testing.T) {
	p := newPopup(t)
	p.update(p.State().ShowView(popup.ViewColorPicker))
	p.picker.startSampling(image.NewRGBA(image.Rect(0, 0, 4, 4)))

	p.picker.submitPoint(image.Pt(9, 9))
	assert.Nil(t, p.State().CurrentColor)
}

func TestDecodeImageRejectsUnsupportedFiles(t *testing.T) {
	_, err := decodeImage("palettes.json", []byte("[]"))
	assert.ErrorIs(t, err, errUnsupportedImage)

	_, err = decodeImage("photo.heic", nil)
	assert.ErrorIs(t, err, errUnsupportedImage)
}

func TestDecodeImagePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := decodeImage("shot.PNG", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestCardSubtitle(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-3 * time.Hour)
	pal := palettes.Palette{
		Colors:    []colorutils.ColorRecord{{}, {}},
		UpdatedAt: &updated,
	}
	assert.Equal(t, "2 colors, updated 3 hours ago", cardSubtitle(pal, now))
	assert.Equal(t, "1 color", cardSubtitle(palettes.Palette{Colors: []colorutils.ColorRecord{{}}}, now))
}

func TestCardShowsAtMostTenSwatches(t *testing.T) {
	p := newPopup(t)
	colors := make([]colorutils.ColorRecord, 14)
	for i := range colors {
		colors[i] = record(t, "#101010")
	}
	require.NoError(t, p.store.Save(&palettes.Palette{Name: "Many", Colors: colors}))
	p.update(p.State().ShowView(popup.ViewPalettesList))

	list, err := p.store.List()
	require.NoError(t, err)
	obj := p.list.card(list[0])
	card := findCard(t, obj)
	assert.Len(t, card.Content.(*fyne.Container).Objects, maxCardColors)
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "palettes-1714564800000.json", ExportFileName(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
}

func findCard(t *testing.T, obj fyne.CanvasObject) *widget.Card {
	t.Helper()
	stack, ok := obj.(*fyne.Container)
	require.True(t, ok)
	require.Len(t, stack.Objects, 2)
	card, ok := stack.Objects[1].(*widget.Card)
	require.True(t, ok)
	return card
}
