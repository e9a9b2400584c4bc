package imageconv

import (
	"colormeow/pkg/colorutils"
	"colormeow/pkg/paint"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	chaiWebp "github.com/chai2010/webp"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/svg"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ImageTypes are the formats swatches can be written in.
var ImageTypes []string = []string{
	"PNG",
	"JPG",
	"WEBP",
	"GIF",
	"BMP",
	"TIFF",
	"AVIF",
	"QOI",
}

// swatchColumns is the number of cells per swatch row.
const swatchColumns = 8

var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrNotAnImage    = errors.New("selected file not an image")
)

// Extension returns the file extension for a swatch format, e.g. ".png".
func Extension(format string) string {
	switch strings.ToUpper(format) {
	case "JPG", "JPEG":
		return ".jpg"
	case "TIFF", "TIF":
		return ".tiff"
	default:
		return "." + strings.ToLower(format)
	}
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch strings.ToUpper(format) {
	case "PNG":
		err = png.Encode(w, img)
	case "JPG", "JPEG":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 85})
	case "WEBP":
		// swatches are flat color, lossless keeps cells exact
		err = chaiWebp.Encode(w, img, &chaiWebp.Options{Lossless: true})
	case "GIF":
		err = gif.Encode(w, img, &gif.Options{})
	case "BMP":
		err = bmp.Encode(w, img)
	case "TIFF", "TIF":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "AVIF":
		err = avif.Encode(w, img, avif.Options{Quality: 85})
	case "QOI":
		err = qoi.Encode(w, img)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", format, err)
	}
	return nil
}

// Decode reads an image, picking the decoder from the file extension.
func Decode(r io.Reader, ext string) (image.Image, error) {
	var img image.Image
	var err error

	// switch on the image extension
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif":
		img, _, err = image.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	case ".tiff", ".tif":
		img, err = tiff.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	case ".svg":
		img, err = svg.Decode(r)
	case ".avif":
		img, err = avif.Decode(r)
	case ".qoi":
		img, err = qoi.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotAnImage, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding %s image: %w", ext, err)
	}
	return img, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Decode(file, filepath.Ext(path))
}

// Swatch renders colors as rows of square cells. An empty palette gives a
// single transparent cell.
func Swatch(colors []colorutils.ColorRecord, cell int) *image.RGBA {
	if cell <= 0 {
		cell = 1
	}
	if len(colors) == 0 {
		return image.NewRGBA(image.Rect(0, 0, cell, cell))
	}

	cols := min(len(colors), swatchColumns)
	rows := (len(colors) + swatchColumns - 1) / swatchColumns
	img := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cell))
	for i, c := range colors {
		x := (i % swatchColumns) * cell
		y := (i / swatchColumns) * cell
		paint.FillRect(img, image.Rect(x, y, x+cell, y+cell), c.RGB.NRGBA())
	}
	return img
}

// EncodeSwatch renders and encodes a palette swatch.
func EncodeSwatch(w io.Writer, colors []colorutils.ColorRecord, cell int, format string) error {
	return Encode(w, Swatch(colors, cell), format)
}

// WriteSwatchFile writes a swatch named after name into dir and returns its path.
func WriteSwatchFile(dir, name string, colors []colorutils.ColorRecord, cell int, format string) (string, error) {
	path := filepath.Join(dir, SafeName(name)+Extension(format))
	res, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer res.Close()

	if err := EncodeSwatch(res, colors, cell, format); err != nil {
		return "", err
	}
	return path, nil
}

// SafeName turns a palette name into a file name.
func SafeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "palette"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
