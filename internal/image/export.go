package image

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"drawing-studio/pkg/colorutil"
)

// Format is an export encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
)

// JPEGQuality is the quality used for JPEG exports.
const JPEGQuality = 95

func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// Extension returns the canonical file extension for the format.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// FormatForPath picks the export format from the file name: .jpg and .jpeg
// are JPEG, everything else is PNG.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	default:
		return FormatPNG
	}
}

// ResolveExportPath returns the path an export will actually be written to
// and its format. Names without a .jpg, .jpeg or .png extension get .png
// appended.
func ResolveExportPath(path string) (string, Format) {
	f := FormatForPath(path)
	if f == FormatPNG && strings.ToLower(filepath.Ext(path)) != ".png" {
		path += f.Extension()
	}
	return path, f
}

// Encode writes img in the given format. JPEG has no alpha channel, so
// transparent areas are flattened onto white first.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatJPEG:
		flat := Flatten(img, colorutil.White)
		if err := jpeg.Encode(w, flat, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return fmt.Errorf("failed to encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	}
	return nil
}

// Save writes img to path, choosing the format from the extension. It
// returns the path written, which may have gained a .png extension.
func Save(path string, img image.Image) (string, error) {
	path, f := ResolveExportPath(path)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := Encode(file, img, f); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
