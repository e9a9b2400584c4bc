package imageconv

import (
	"bytes"
	"colormeow/pkg/colorutils"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, hexes ...string) []colorutils.ColorRecord {
	t.Helper()
	var out []colorutils.ColorRecord
	for _, h := range hexes {
		c, err := colorutils.NewColorRecord(h)
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestSwatchLayout(t *testing.T) {
	img := Swatch(records(t, "#FF0000", "#00FF00", "#0000FF"), 10)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(15, 5))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(29, 9))

	many := make([]string, 10)
	for i := range many {
		many[i] = "#123456"
	}
	img = Swatch(records(t, many...), 4)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
	assert.Equal(t, uint8(0), img.RGBAAt(31, 7).A, "unused cells stay transparent")
}

func TestSwatchEmpty(t *testing.T) {
	img := Swatch(nil, 16)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
}

func TestEncodeDecodeLosslessFormats(t *testing.T) {
	colors := records(t, "#FF5733", "#112233")

	for _, format := range []string{"PNG", "BMP", "TIFF", "QOI", "WEBP"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeSwatch(&buf, colors, 8, format))

			img, err := Decode(&buf, Extension(format))
			require.NoError(t, err)
			assert.Equal(t, 16, img.Bounds().Dx())
			assert.Equal(t, colorutils.RGB{R: 0xFF, G: 0x57, B: 0x33}, colorutils.FromColor(img.At(2, 2)))
			assert.Equal(t, colorutils.RGB{R: 0x11, G: 0x22, B: 0x33}, colorutils.FromColor(img.At(12, 2)))
		})
	}
}

func TestEncodeDecodeLossyFormats(t *testing.T) {
	colors := records(t, "#FF0000", "#0000FF")

	for _, format := range []string{"JPG", "GIF", "AVIF"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeSwatch(&buf, colors, 16, format))

			img, err := Decode(&buf, Extension(format))
			require.NoError(t, err)
			assert.Equal(t, 32, img.Bounds().Dx())
			assert.Equal(t, 16, img.Bounds().Dy())
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, Swatch(nil, 1), "XCF")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeSVG(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="#ff0000"/></svg>`

	img, err := Decode(strings.NewReader(src), ".svg")
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	r, g, b, a := img.At(5, 5).RGBA()
	assert.Greater(t, r, uint32(0xf000))
	assert.Less(t, g, uint32(0x1000))
	assert.Less(t, b, uint32(0x1000))
	assert.Greater(t, a, uint32(0xf000))
}

func TestDecodeRejectsOtherFiles(t *testing.T) {
	_, err := Decode(strings.NewReader("{}"), ".json")
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestWriteSwatchFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSwatchFile(dir, "Warm/Cool", records(t, "#FF5733"), 4, "PNG")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Warm_Cool.png"), path)

	img, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".jpg", Extension("JPEG"))
	assert.Equal(t, ".tiff", Extension("tif"))
	assert.Equal(t, ".qoi", Extension("QOI"))
	assert.Equal(t, "palette", SafeName("  "))
}
