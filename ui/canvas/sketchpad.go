package canvas

import (
	"image"

	"drawing-studio/internal/app"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// SketchpadView shows the sketchpad and handles drawing, image selection
// and the pen color shortcut.
type SketchpadView struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster
	view   pixelView

	pressed         bool
	onSecondaryTap  func()
	onSelectionFlip func(selected bool)
}

var (
	_ desktop.Mouseable      = (*SketchpadView)(nil)
	_ fyne.Draggable         = (*SketchpadView)(nil)
	_ fyne.DoubleTappable    = (*SketchpadView)(nil)
	_ fyne.SecondaryTappable = (*SketchpadView)(nil)
)

// NewSketchpadView creates the sketchpad widget bound to state.
func NewSketchpadView(state *app.State) *SketchpadView {
	sv := &SketchpadView{state: state}
	sv.raster = fynecanvas.NewRaster(sv.draw)
	sv.raster.ScaleMode = fynecanvas.ImageScalePixels
	sv.raster.SetMinSize(fyne.NewSize(400, 300))

	state.On(app.EventSketchChanged, func(interface{}) { sv.raster.Refresh() })

	sv.ExtendBaseWidget(sv)
	return sv
}

// OnSecondaryTap sets the callback for right clicks, used to pick the pen
// color.
func (sv *SketchpadView) OnSecondaryTap(callback func()) {
	sv.onSecondaryTap = callback
}

// OnSelectionChange sets the callback run after a double click toggles the
// image selection.
func (sv *SketchpadView) OnSelectionChange(callback func(selected bool)) {
	sv.onSelectionFlip = callback
}

// ViewSize returns the current view size in raster pixels, used to center
// uploaded images.
func (sv *SketchpadView) ViewSize() image.Point {
	if r := sv.view.rect(); !r.Empty() {
		return r.Size()
	}
	size := sv.Size()
	return image.Pt(int(size.Width), int(size.Height))
}

// ContainsAbsolute reports whether a window position is over the sketchpad.
func (sv *SketchpadView) ContainsAbsolute(pos fyne.Position) bool {
	return containsAbsolute(sv, pos)
}

func (sv *SketchpadView) draw(w, h int) image.Image {
	sv.view.update(w, h, sv.Size())
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	sv.state.RenderSketch(output)
	return output
}

func (sv *SketchpadView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	sv.pressed = true
	sv.state.SketchPress(sv.view.toPixels(ev.Position))
}

func (sv *SketchpadView) MouseUp(*desktop.MouseEvent) {
	sv.release()
}

func (sv *SketchpadView) Dragged(ev *fyne.DragEvent) {
	if !sv.pressed {
		return
	}
	sv.state.SketchDrag(sv.view.toPixels(ev.Position), sv.view.rect().Size())
}

func (sv *SketchpadView) DragEnd() {
	sv.release()
}

func (sv *SketchpadView) release() {
	if !sv.pressed {
		return
	}
	sv.pressed = false
	sv.state.SketchRelease()
}

func (sv *SketchpadView) DoubleTapped(ev *fyne.PointEvent) {
	selected := sv.state.SketchToggleSelection(sv.view.toPixels(ev.Position))
	if sv.onSelectionFlip != nil {
		sv.onSelectionFlip(selected)
	}
}

func (sv *SketchpadView) TappedSecondary(*fyne.PointEvent) {
	if sv.onSecondaryTap != nil {
		sv.onSecondaryTap()
	}
}

// CreateRenderer implements fyne.Widget.
func (sv *SketchpadView) CreateRenderer() fyne.WidgetRenderer {
	return &rasterRenderer{raster: sv.raster}
}
