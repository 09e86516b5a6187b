package canvas

import (
	"image"

	"drawing-studio/internal/app"
	"drawing-studio/internal/compose"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// ComposerView shows the composer canvas and turns mouse input into layer
// manipulation.
type ComposerView struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster
	view   pixelView

	pressed bool
	cursor  desktop.Cursor
}

var (
	_ desktop.Mouseable  = (*ComposerView)(nil)
	_ desktop.Hoverable  = (*ComposerView)(nil)
	_ desktop.Cursorable = (*ComposerView)(nil)
	_ fyne.Draggable     = (*ComposerView)(nil)
)

// NewComposerView creates the composer widget bound to state.
func NewComposerView(state *app.State) *ComposerView {
	cv := &ComposerView{
		state:  state,
		cursor: desktop.DefaultCursor,
	}
	cv.raster = fynecanvas.NewRaster(cv.draw)
	cv.raster.ScaleMode = fynecanvas.ImageScalePixels

	state.On(app.EventComposerChanged, func(interface{}) { cv.raster.Refresh() })
	state.On(app.EventCanvasResized, func(interface{}) { cv.Refresh() })

	cv.ExtendBaseWidget(cv)
	return cv
}

// draw is the raster drawing function.
func (cv *ComposerView) draw(w, h int) image.Image {
	cv.view.update(w, h, cv.Size())
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	cv.state.RenderComposer(output)
	return output
}

// ContainsAbsolute reports whether a window position is over the composer,
// for routing dropped files.
func (cv *ComposerView) ContainsAbsolute(pos fyne.Position) bool {
	return containsAbsolute(cv, pos)
}

func (cv *ComposerView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	cv.pressed = true
	cv.state.PointerPress(cv.view.rect(), cv.view.toPixels(ev.Position))
}

func (cv *ComposerView) MouseUp(*desktop.MouseEvent) {
	cv.release()
}

func (cv *ComposerView) Dragged(ev *fyne.DragEvent) {
	if !cv.pressed {
		return
	}
	cv.state.PointerDrag(cv.view.rect(), cv.view.toPixels(ev.Position))
}

func (cv *ComposerView) DragEnd() {
	cv.release()
}

func (cv *ComposerView) release() {
	if !cv.pressed {
		return
	}
	cv.pressed = false
	cv.state.PointerRelease()
}

func (cv *ComposerView) MouseIn(ev *desktop.MouseEvent) {
	cv.MouseMoved(ev)
}

func (cv *ComposerView) MouseMoved(ev *desktop.MouseEvent) {
	cv.cursor = CursorFor(cv.state.HoverHandle(cv.view.rect(), cv.view.toPixels(ev.Position)))
}

func (cv *ComposerView) MouseOut() {
	cv.cursor = desktop.DefaultCursor
}

// Cursor implements desktop.Cursorable.
func (cv *ComposerView) Cursor() desktop.Cursor {
	return cv.cursor
}

// CursorFor returns the pointer shape hinting what a press on handle does.
func CursorFor(h compose.HandleKind) desktop.Cursor {
	switch h {
	case compose.HandleScale:
		return desktop.CrosshairCursor
	case compose.HandleFlipLeft, compose.HandleFlipRight:
		return desktop.HResizeCursor
	case compose.HandleFlipTop, compose.HandleFlipBottom:
		return desktop.VResizeCursor
	case compose.HandleMove, compose.HandleRotate:
		return desktop.PointerCursor
	default:
		return desktop.DefaultCursor
	}
}

// MinSize fits the whole canvas at one canvas pixel per device pixel.
func (cv *ComposerView) MinSize() fyne.Size {
	info := cv.state.ComposerInfo()
	return unitsFor(image.Pt(info.Width, info.Height), canvasScale(cv))
}

// CreateRenderer implements fyne.Widget.
func (cv *ComposerView) CreateRenderer() fyne.WidgetRenderer {
	return &rasterRenderer{raster: cv.raster}
}

// rasterRenderer lays out a single raster filling the widget.
type rasterRenderer struct {
	raster *fynecanvas.Raster
}

func (r *rasterRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *rasterRenderer) MinSize() fyne.Size {
	return r.raster.MinSize()
}

func (r *rasterRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *rasterRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *rasterRenderer) Destroy() {}
