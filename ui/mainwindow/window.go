// Package mainwindow provides the main application window.
package mainwindow

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"

	"drawing-studio/internal/app"
	"drawing-studio/internal/compose"
	studioimage "drawing-studio/internal/image"
	"drawing-studio/internal/version"
	"drawing-studio/pkg/colorutil"
	"drawing-studio/ui/canvas"
	"drawing-studio/ui/dialogs"
	"drawing-studio/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle       = "Drawing Studio Pro"
	prefKeyLastDir = "lastDirectory"
	swatchSize     = 22
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs
	log   *slog.Logger

	composer  *canvas.ComposerView
	sketchpad *canvas.SketchpadView
	statusBar *widget.Label

	penSlider *widget.Slider
	swatch    *fynecanvas.Circle
	eraserBtn *widget.Button
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, logger *slog.Logger) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
		log:    logger.With("component", "mainwindow"),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.composer = canvas.NewComposerView(mw.state)
	mw.sketchpad = canvas.NewSketchpadView(mw.state)
	mw.sketchpad.OnSecondaryTap(mw.onPenColor)
	mw.sketchpad.OnSelectionChange(func(selected bool) {
		if selected {
			mw.updateStatus("Image selected: drag to move, double-click to release")
		} else {
			mw.updateStatus("Image released")
		}
	})

	mw.statusBar = widget.NewLabel("Ready")

	// Left: composer, right: sketchpad
	sketchArea := container.NewBorder(
		widget.NewLabel("Right-click to change pen color! Double-click image to move it."),
		nil,
		nil,
		nil,
		mw.sketchpad,
	)
	split := container.NewHSplit(mw.composer, sketchArea)
	split.SetOffset(0.5)

	toolbar := mw.createToolbar()

	content := container.NewBorder(
		nil, // top
		container.NewVBox(
			container.NewHScroll(toolbar),
			container.NewPadded(mw.statusBar),
		), // bottom
		nil,   // left
		nil,   // right
		split, // center
	)

	mw.SetContent(content)
	mw.SetOnDropped(mw.onDropped)
	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyDelete || ev.Name == fyne.KeyBackspace {
			mw.onDelete()
		}
	})
}

// createToolbar creates the toolbar shared by both canvases.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.penSlider = widget.NewSlider(1, 20)
	mw.penSlider.Step = 1
	mw.penSlider.SetValue(float64(mw.state.PenSize()))
	mw.penSlider.OnChanged = func(v float64) {
		mw.state.SetPenSize(int(v))
		mw.prefs.SetInt(prefs.KeyPenSize, mw.state.PenSize())
	}
	sliderBox := container.NewGridWrap(fyne.NewSize(120, mw.penSlider.MinSize().Height), mw.penSlider)

	mw.swatch = fynecanvas.NewCircle(color.Black)
	mw.swatch.StrokeWidth = 2
	mw.updateSwatch()

	mw.eraserBtn = widget.NewButton("Eraser", mw.onToggleEraser)

	return container.NewHBox(
		widget.NewButton("Animal", func() { mw.onInsertFromLibrary(compose.CategoryAnimal) }),
		widget.NewButton("Flower", func() { mw.onInsertFromLibrary(compose.CategoryFlower) }),
		widget.NewButton("Load", func() { mw.onInsertFromLibrary(compose.CategoryCustom) }),
		widget.NewButton("Save", mw.onSaveComposer),
		widget.NewButton("Compose", mw.onCompose),
		widget.NewButton("Rotate 90°", mw.onRotateCanvas),
		widget.NewButton("Delete", mw.onDelete),
		widget.NewButton("New Canvas", mw.onNewCanvas),
		widget.NewSeparator(),
		widget.NewLabel("Pen:"),
		sliderBox,
		container.NewGridWrap(fyne.NewSize(swatchSize, swatchSize), mw.swatch),
		widget.NewButton("Color", mw.onPenColor),
		mw.eraserBtn,
		widget.NewButton("Clear", mw.onClearSketch),
		widget.NewButton("Load Right", mw.onLoadSketchImage),
		widget.NewButton("Save Right", mw.onSaveSketch),
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Insert Animal...", func() { mw.onInsertFromLibrary(compose.CategoryAnimal) }),
		fyne.NewMenuItem("Insert Flower...", func() { mw.onInsertFromLibrary(compose.CategoryFlower) }),
		fyne.NewMenuItem("Insert Image...", func() { mw.onInsertFromLibrary(compose.CategoryCustom) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Canvas...", mw.onSaveComposer),
		fyne.NewMenuItem("Compose Preview", mw.onCompose),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	canvasMenu := fyne.NewMenu("Canvas",
		fyne.NewMenuItem("New Canvas...", mw.onNewCanvas),
		fyne.NewMenuItem("Rotate 90°", mw.onRotateCanvas),
		fyne.NewMenuItem("Delete Selected", mw.onDelete),
	)

	sketchMenu := fyne.NewMenu("Sketch",
		fyne.NewMenuItem("Load Image...", mw.onLoadSketchImage),
		fyne.NewMenuItem("Save Sketch...", mw.onSaveSketch),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Pen Color...", mw.onPenColor),
		fyne.NewMenuItem("Toggle Eraser", mw.onToggleEraser),
		fyne.NewMenuItem("Clear", mw.onClearSketch),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, canvasMenu, sketchMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventLayersChanged, func(data interface{}) {
		if n, ok := data.(int); ok {
			mw.updateStatus(fmt.Sprintf("%d layer(s)", n))
		}
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		if id, ok := data.(compose.LayerID); ok && id != 0 {
			mw.updateStatus(fmt.Sprintf("Selected layer %d", id))
		}
	})

	mw.state.On(app.EventCanvasResized, func(data interface{}) {
		if sz, ok := data.(image.Point); ok {
			mw.updateStatus(fmt.Sprintf("Canvas %d×%d", sz.X, sz.Y))
		}
	})

	mw.state.On(app.EventCanvasRotated, func(data interface{}) {
		if rad, ok := data.(float64); ok {
			mw.updateStatus(fmt.Sprintf("Canvas rotation %.0f°", rad*180/math.Pi))
		}
	})

	mw.state.On(app.EventExported, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + path)
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// showError logs err and reports it in a dialog.
func (mw *MainWindow) showError(msg string, err error) {
	mw.log.Error(msg, "err", err)
	dialog.ShowError(err, mw.Window)
}

// getLastDir returns the last used directory as a ListableURI, falling back
// to ~/Pictures, or nil when neither exists.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	for _, path := range []string{mw.app.Preferences().String(prefKeyLastDir), app.PicturesDir()} {
		if loc := listable(path); loc != nil {
			return loc
		}
	}
	return nil
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// getSaveDir returns the folder of the last export, or the open location.
func (mw *MainWindow) getSaveDir() fyne.ListableURI {
	if loc := listable(mw.prefs.String(prefs.KeyLastSaveDir)); loc != nil {
		return loc
	}
	return mw.getLastDir()
}

func listable(path string) fyne.ListableURI {
	if path == "" {
		return nil
	}
	loc, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return loc
}

// openImage shows a file open dialog for images starting at loc and passes
// the chosen path to load.
func (mw *MainWindow) openImage(loc fyne.ListableURI, load func(path string) error) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		mw.saveLastDir(path)

		if err := load(path); err != nil {
			mw.showError("load failed", err)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(studioimage.SupportedFormats()))
	if loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// saveImage shows a file save dialog and passes the chosen path to save.
func (mw *MainWindow) saveImage(name string, save func(path string) (string, error)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		written, err := dialogs.SaveURI(writer, save)
		if err != nil {
			mw.showError("save failed", err)
			return
		}
		mw.prefs.SetString(prefs.KeyLastSaveDir, filepath.Dir(written))
		dialog.ShowInformation("Saved", "Canvas saved successfully!", mw.Window)
	}, mw.Window)
	fd.SetFileName(name)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	if loc := mw.getSaveDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// Toolbar and menu actions

func (mw *MainWindow) onInsertFromLibrary(category compose.Category) {
	dir, err := app.LibraryDir(category)
	if err != nil {
		if errors.Is(err, app.ErrFolderNotFound) {
			dialog.ShowInformation("Insert Image", "Folder not found: "+category.String(), mw.Window)
			return
		}
		mw.showError("library lookup failed", err)
		return
	}

	// Library folders open where the images live; custom images start
	// from the last used folder.
	loc := listable(dir)
	if category == compose.CategoryCustom {
		loc = mw.getLastDir()
	}
	mw.openImage(loc, func(path string) error {
		_, err := mw.state.InsertImageFile(path, category)
		return err
	})
}

func (mw *MainWindow) onSaveComposer() {
	mw.saveImage("canvas.png", mw.state.SaveComposer)
}

func (mw *MainWindow) onCompose() {
	pw := dialogs.NewPreviewWindow(mw.app, mw.state.ComposerSnapshot(), mw.log)
	pw.SetLocation(mw.getSaveDir)
	pw.OnSaved(func(path string) {
		mw.prefs.SetString(prefs.KeyLastSaveDir, filepath.Dir(path))
		mw.updateStatus("Saved " + path)
	})
	pw.Show()
}

func (mw *MainWindow) onRotateCanvas() {
	mw.state.RotateCanvas(math.Pi / 2)
}

func (mw *MainWindow) onDelete() {
	if !mw.state.DeleteSelected() {
		mw.updateStatus("Nothing selected")
	}
}

func (mw *MainWindow) onNewCanvas() {
	info := mw.state.ComposerInfo()
	dialogs.ShowNewCanvas(info.Width, info.Height, mw.Window, func(w, h int) error {
		if err := mw.state.NewCanvas(w, h); err != nil {
			return err
		}
		mw.prefs.SetInt(prefs.KeyCanvasWidth, w)
		mw.prefs.SetInt(prefs.KeyCanvasHeight, h)
		return nil
	})
}

func (mw *MainWindow) onPenColor() {
	picker := dialog.NewColorPicker("Choose Pen Color!", "", func(c color.Color) {
		mw.state.SetPenColor(c)
		mw.updateSwatch()
	}, mw.Window)
	picker.Advanced = true
	picker.SetColor(mw.state.PenColor())
	picker.Show()
}

// updateSwatch paints the pen color circle with a darker outline.
func (mw *MainWindow) updateSwatch() {
	c := mw.state.PenColor()
	mw.swatch.FillColor = c
	mw.swatch.StrokeColor = colorutil.Darker(c)
	mw.swatch.Refresh()
}

func (mw *MainWindow) onToggleEraser() {
	on := mw.state.ToggleEraser()
	if on {
		mw.eraserBtn.Importance = widget.HighImportance
		mw.updateStatus("Eraser on")
	} else {
		mw.eraserBtn.Importance = widget.MediumImportance
		mw.updateStatus("Eraser off")
	}
	mw.eraserBtn.Refresh()
}

func (mw *MainWindow) onClearSketch() {
	mw.state.ClearSketch()
}

func (mw *MainWindow) onLoadSketchImage() {
	mw.openImage(mw.getLastDir(), func(path string) error {
		return mw.state.LoadSketchImageFile(path, mw.sketchpad.ViewSize())
	})
}

func (mw *MainWindow) onSaveSketch() {
	mw.saveImage("sketch.png", mw.state.SaveSketch)
}

// onDropped loads the first dropped file into whichever canvas is under
// the pointer.
func (mw *MainWindow) onDropped(pos fyne.Position, uris []fyne.URI) {
	if len(uris) == 0 {
		return
	}
	path := uris[0].Path()
	if !studioimage.IsSupportedFormat(path) {
		mw.showError("drop rejected", fmt.Errorf("%s: %w", filepath.Base(path), studioimage.ErrUnsupportedFormat))
		return
	}

	var err error
	if mw.sketchpad.ContainsAbsolute(pos) {
		err = mw.state.LoadSketchImageFile(path, mw.sketchpad.ViewSize())
	} else {
		_, err = mw.state.InsertImageFile(path, compose.CategoryCustom)
	}
	if err != nil {
		mw.showError("drop failed", err)
		return
	}
	mw.saveLastDir(path)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Compose images on the left, sketch on the right.\n\n"+
			"%s",
			appTitle, version.Version, version.Summary()),
		mw.Window)
}
