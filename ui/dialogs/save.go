package dialogs

import (
	"os"

	"fyne.io/fyne/v2"
)

// SaveURI finishes a file save dialog: it closes the writer the dialog
// opened and hands the path to save. When save adds an extension, the empty
// file the dialog created is removed.
func SaveURI(writer fyne.URIWriteCloser, save func(path string) (string, error)) (string, error) {
	path := writer.URI().Path()
	writer.Close()

	written, err := save(path)
	if written != path {
		os.Remove(path)
	}
	if err != nil {
		return "", err
	}
	return written, nil
}
