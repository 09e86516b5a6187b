// Package dialogs provides application dialogs.
package dialogs

import (
	"strconv"

	"drawing-studio/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// ShowNewCanvas asks for a canvas size, prefilled with the current one, and
// calls onCreate with the validated values. Invalid input is reported and
// nothing is changed.
func ShowNewCanvas(width, height int, window fyne.Window, onCreate func(w, h int) error) {
	widthEntry := widget.NewEntry()
	widthEntry.SetText(strconv.Itoa(width))
	heightEntry := widget.NewEntry()
	heightEntry.SetText(strconv.Itoa(height))

	items := []*widget.FormItem{
		widget.NewFormItem("Width", widthEntry),
		widget.NewFormItem("Height", heightEntry),
	}

	dialog.ShowForm("New Canvas Size", "Create", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		w, h, err := app.ParseCanvasSize(widthEntry.Text, heightEntry.Text)
		if err != nil {
			dialog.ShowError(err, window)
			return
		}
		if err := onCreate(w, h); err != nil {
			dialog.ShowError(err, window)
		}
	}, window)
}
