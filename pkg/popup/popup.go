// Package popup holds the application state behind the picker window. Every
// handler takes the current State by value and returns the next one.
package popup

import (
	"colormeow/pkg/colorutils"
	"colormeow/pkg/palettes"
	"errors"
	"slices"
	"strings"
)

// View names one of the screens of the window.
type View string

const (
	ViewMainMenu      View = "main-menu"
	ViewColorPicker   View = "color-picker"
	ViewPaletteEditor View = "palette-editor"
	ViewPalettesList  View = "palettes-list"
)

var ErrNameRequired = errors.New("please enter a palette name")

type State struct {
	View              View
	CurrentColor      *colorutils.ColorRecord
	CurrentPalette    *palettes.Palette
	CurrentPaletteID  string
	SelectedPaletteID string
}

// New returns the state the window opens with.
func New() State {
	return State{View: ViewMainMenu}
}

func (s State) ShowView(v View) State {
	s.View = v
	return s
}

// Back returns to the main menu, clearing whatever the current view was editing.
func (s State) Back() State {
	switch s.View {
	case ViewColorPicker:
		s = s.ResetColorPicker()
	case ViewPaletteEditor:
		s = s.ResetPaletteEditor()
	}
	return s.ShowView(ViewMainMenu)
}

// PickColor makes an eyedropper result the current color.
func (s State) PickColor(hex string) (State, error) {
	c, err := colorutils.NewColorRecord(hex)
	if err != nil {
		return s, err
	}
	s.CurrentColor = &c
	return s, nil
}

// AdjustColor replaces the current color with a fine-adjusted HSV value.
func (s State) AdjustColor(h, sat, v float64) State {
	c := colorutils.RecordFromHSV(colorutils.HSV{H: h, S: sat, V: v})
	s.CurrentColor = &c
	return s
}

func (s State) ResetColorPicker() State {
	s.CurrentColor = nil
	s.SelectedPaletteID = ""
	return s
}

func (s State) SelectPalette(id string) State {
	s.SelectedPaletteID = id
	return s
}

// CanAddToPalette reports whether both a color and a target palette are chosen.
func (s State) CanAddToPalette() bool {
	return s.CurrentColor != nil && s.SelectedPaletteID != ""
}

func (s State) StartNewPalette() State {
	s.CurrentPaletteID = ""
	s.CurrentPalette = &palettes.Palette{Colors: []colorutils.ColorRecord{}}
	return s.ShowView(ViewPaletteEditor)
}

// EditPalette opens a copy of p in the editor.
func (s State) EditPalette(p *palettes.Palette) State {
	s.CurrentPaletteID = p.ID
	s.CurrentPalette = clonePalette(p)
	return s.ShowView(ViewPaletteEditor)
}

// IsEditing reports whether the editor holds a stored palette rather than a new one.
func (s State) IsEditing() bool {
	return s.CurrentPaletteID != ""
}

func (s State) EditorTitle() string {
	if s.IsEditing() {
		return "Edit Palette"
	}
	return "Create New Palette"
}

// EditorColors returns the colors of the palette being edited.
func (s State) EditorColors() []colorutils.ColorRecord {
	if s.CurrentPalette == nil {
		return nil
	}
	return s.CurrentPalette.Colors
}

func (s State) AddEditorColor(c colorutils.ColorRecord) State {
	p := s.editorPalette()
	p.Colors = append(p.Colors, c)
	s.CurrentPalette = p
	return s
}

// RemoveEditorColor drops the color at index; out of range indexes are ignored.
func (s State) RemoveEditorColor(index int) State {
	if s.CurrentPalette == nil || index < 0 || index >= len(s.CurrentPalette.Colors) {
		return s
	}
	p := clonePalette(s.CurrentPalette)
	p.Colors = slices.Delete(p.Colors, index, index+1)
	s.CurrentPalette = p
	return s
}

func (s State) SetPaletteDetails(name, description string) State {
	p := s.editorPalette()
	p.Name = name
	p.Description = description
	s.CurrentPalette = p
	return s
}

// PaletteForSave returns the palette to hand to the store, with name and
// description trimmed.
func (s State) PaletteForSave() (*palettes.Palette, error) {
	p := s.editorPalette()
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	if s.CurrentPaletteID != "" {
		p.ID = s.CurrentPaletteID
	}
	return p, nil
}

func (s State) ResetPaletteEditor() State {
	s.CurrentPaletteID = ""
	s.CurrentPalette = nil
	return s
}

// editorPalette returns a copy of the palette being edited, creating one when
// the editor is empty.
func (s State) editorPalette() *palettes.Palette {
	if s.CurrentPalette == nil {
		return &palettes.Palette{Colors: []colorutils.ColorRecord{}}
	}
	return clonePalette(s.CurrentPalette)
}

func clonePalette(p *palettes.Palette) *palettes.Palette {
	c := *p
	c.Colors = slices.Clone(p.Colors)
	if c.Colors == nil {
		c.Colors = []colorutils.ColorRecord{}
	}
	return &c
}
