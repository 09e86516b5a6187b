package dialogs

import (
	"image"
	"log/slog"

	studioimage "drawing-studio/internal/image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// PreviewWindow shows a flattened copy of the composer that can be rotated
// and saved independently of the live canvas.
type PreviewWindow struct {
	fyne.Window

	img     *image.RGBA
	picture *fynecanvas.Image
	log     *slog.Logger

	// location returns the folder the save dialog opens in; may be nil.
	location func() fyne.ListableURI
	// onSaved is told the path written.
	onSaved func(path string)
}

// NewPreviewWindow creates the preview for snapshot.
func NewPreviewWindow(fyneApp fyne.App, snapshot *image.RGBA, logger *slog.Logger) *PreviewWindow {
	pw := &PreviewWindow{
		Window: fyneApp.NewWindow("Composed Canvas"),
		img:    snapshot,
		log:    logger.With("component", "preview"),
	}

	pw.picture = fynecanvas.NewImageFromImage(snapshot)
	pw.picture.FillMode = fynecanvas.ImageFillOriginal
	pw.picture.ScaleMode = fynecanvas.ImageScalePixels

	saveBtn := widget.NewButton("Save Composed Canvas", pw.onSave)
	rotateBtn := widget.NewButton("Rotate 90°", pw.onRotate)

	pw.SetContent(container.NewBorder(
		nil,
		container.NewHBox(saveBtn, rotateBtn),
		nil,
		nil,
		container.NewScroll(pw.picture),
	))
	b := snapshot.Bounds()
	pw.Resize(fyne.NewSize(float32(b.Dx()+40), float32(b.Dy()+80)))
	return pw
}

// SetLocation sets the function supplying the save dialog's start folder.
func (pw *PreviewWindow) SetLocation(location func() fyne.ListableURI) {
	pw.location = location
}

// OnSaved registers a callback run after a successful save.
func (pw *PreviewWindow) OnSaved(callback func(path string)) {
	pw.onSaved = callback
}

// Image returns the image currently shown.
func (pw *PreviewWindow) Image() *image.RGBA {
	return pw.img
}

func (pw *PreviewWindow) onRotate() {
	rotated, err := studioimage.Rotate90(pw.img)
	if err != nil {
		dialog.ShowError(err, pw.Window)
		return
	}
	pw.img = rotated
	pw.picture.Image = rotated
	pw.picture.Refresh()
	pw.log.Debug("preview rotated", "size", rotated.Bounds().Size())
}

func (pw *PreviewWindow) onSave() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		written, err := SaveURI(writer, func(path string) (string, error) {
			return studioimage.Save(path, pw.img)
		})
		if err != nil {
			dialog.ShowError(err, pw.Window)
			return
		}
		pw.log.Info("preview saved", "path", written)
		dialog.ShowInformation("Saved", "Canvas saved successfully!", pw.Window)
		if pw.onSaved != nil {
			pw.onSaved(written)
		}
	}, pw.Window)
	fd.SetFileName("composed.png")
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	if pw.location != nil {
		if loc := pw.location(); loc != nil {
			fd.SetLocation(loc)
		}
	}
	fd.Show()
}
