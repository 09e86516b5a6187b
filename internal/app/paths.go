package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"drawing-studio/internal/compose"
)

// ErrFolderNotFound is returned when an image library folder is missing.
var ErrFolderNotFound = errors.New("folder not found")

// LibraryDir returns the folder holding the bundled images of a category,
// relative to the working directory. Custom images come from the user's
// Pictures folder.
func LibraryDir(category compose.Category) (string, error) {
	var dir string
	switch category {
	case compose.CategoryAnimal, compose.CategoryFlower:
		dir = category.String()
	default:
		dir = PicturesDir()
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrFolderNotFound, dir)
	}
	return dir, nil
}

// PicturesDir returns ~/Pictures. The folder may not exist.
func PicturesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Pictures"
	}
	return filepath.Join(home, "Pictures")
}

// ParseCanvasSize validates width and height text fields from the new
// canvas form.
func ParseCanvasSize(width, height string) (int, int, error) {
	w, errW := strconv.Atoi(strings.TrimSpace(width))
	h, errH := strconv.Atoi(strings.TrimSpace(height))
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("please enter valid numbers: %w", compose.ErrInvalidSize)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("please enter positive values: %w", compose.ErrInvalidSize)
	}
	return w, h, nil
}
