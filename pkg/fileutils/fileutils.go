package fileutils

import (
	"path/filepath"
	"sort"
	"strings"
)

var (
	// images the eyedropper can decode
	imageMap = map[string]bool{
		".png":  true,
		".jpg":  true,
		".jpeg": true,
		".bmp":  true,
		".gif":  true,
		".tiff": true,
		".tif":  true,
		".webp": true,
		".svg":  true,
		".avif": true,
		".qoi":  true,
		".ico":  false,
		".heic": false,
		".raw":  false,
	}
)

func IsImageFileMap(filename string) bool {
	// get the file extension
	ext := strings.ToLower(filepath.Ext(filename))
	// if the file extension is in the image file map return true
	return imageMap[ext]
}

// ImageExtensions lists the decodable image extensions, sorted.
func ImageExtensions() []string {
	var exts []string
	for ext, ok := range imageMap {
		if ok {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// WithExtension appends ext to path unless the path already ends with it.
func WithExtension(path, ext string) string {
	if strings.HasSuffix(strings.ToLower(path), strings.ToLower(ext)) {
		return path
	}
	return path + ext
}
