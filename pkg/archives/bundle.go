package archives

import (
	"bytes"
	"colormeow/pkg/imageconv"
	"colormeow/pkg/palettes"
	"fmt"
	"os"
)

// PalettesFile is the name of the palette JSON inside a bundle.
const PalettesFile = "palettes.json"

// BuildBundle returns the bundle entries: the exported palette JSON followed
// by one swatch image per palette.
func BuildBundle(store *palettes.Store, swatchFormat string, cell int) ([]Entry, error) {
	exported, err := store.ExportAll()
	if err != nil {
		return nil, err
	}
	list, err := store.List()
	if err != nil {
		return nil, err
	}

	entries := []Entry{{Name: PalettesFile, Data: []byte(exported)}}
	for i, p := range list {
		var buf bytes.Buffer
		if err := imageconv.EncodeSwatch(&buf, p.Colors, cell, swatchFormat); err != nil {
			return nil, fmt.Errorf("failed to render swatch for %s: %w", p.Name, err)
		}
		name := fmt.Sprintf("swatches/%02d-%s%s", i+1, imageconv.SafeName(p.Name), imageconv.Extension(swatchFormat))
		entries = append(entries, Entry{Name: name, Data: buf.Bytes()})
	}
	return entries, nil
}

// ExportBundle writes every palette and its swatch to archivePath.
func ExportBundle(archivePath string, format Format, password string, store *palettes.Store, swatchFormat string, cell int) error {
	entries, err := BuildBundle(store, swatchFormat, cell)
	if err != nil {
		return err
	}
	return Create(archivePath, format, entries, password)
}

// ImportBundle reads the palette JSON of a bundle into the store.
func ImportBundle(archivePath, password string, store *palettes.Store, merge bool) error {
	data, err := os.ReadFile(archivePath)
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}
	return ImportBundleData(archivePath, data, password, store, merge)
}

// ImportBundleData imports the bundle bytes of a file called fileName. An
// encrypted tar opened without a password reports ErrPasswordRequired.
func ImportBundleData(fileName string, data []byte, password string, store *palettes.Store, merge bool) error {
	format, err := FormatForPath(fileName)
	if err != nil {
		return err
	}
	content, err := Read(data, format, PalettesFile, password)
	if err != nil {
		return err
	}
	if password == "" && !bytes.HasPrefix(bytes.TrimSpace(content), []byte("[")) {
		return ErrPasswordRequired
	}
	return store.ImportAll(string(content), merge)
}
