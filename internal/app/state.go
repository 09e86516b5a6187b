// Package app provides application state, configuration, and events shared
// by the composer and sketchpad views.
package app

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"drawing-studio/internal/compose"
	studioimage "drawing-studio/internal/image"
	"drawing-studio/internal/sketch"
	"drawing-studio/pkg/geometry"
)

// Config holds the startup settings, normally read from preferences.
type Config struct {
	CanvasWidth  int
	CanvasHeight int
	SketchWidth  int
	SketchHeight int
	PenSize      int
	Compose      compose.Options
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:  compose.DefaultWidth,
		CanvasHeight: compose.DefaultHeight,
		SketchWidth:  sketch.DefaultWidth,
		SketchHeight: sketch.DefaultHeight,
		PenSize:      sketch.DefaultPenSize,
		Compose:      compose.DefaultOptions(),
	}
}

// EventType identifies different application events.
type EventType int

const (
	EventLayersChanged    EventType = iota // data: int layer count
	EventSelectionChanged                  // data: compose.LayerID, zero when cleared
	EventCanvasResized                     // data: image.Point size
	EventCanvasRotated                     // data: float64 radians
	EventComposerChanged                   // data: nil; any redraw-worthy composer change
	EventSketchChanged                     // data: nil
	EventExported                          // data: string path written
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// ComposerInfo summarizes the composer for status display.
type ComposerInfo struct {
	Width, Height int
	Rotation      float64
	Layers        int
	Selected      compose.LayerID
	Mode          compose.Mode
}

// State owns both canvases. The engines are not thread-safe and Fyne
// draws rasters on its own goroutine, so every access goes through mu.
// Events are emitted after mu is released.
type State struct {
	mu sync.RWMutex

	composer *compose.Canvas
	session  compose.Session
	pad      *sketch.Pad

	log *slog.Logger

	listeners   map[EventType][]EventListener
	listenersMu sync.RWMutex
}

// NewState creates the application state. A nil logger discards output.
func NewState(cfg Config, logger *slog.Logger) *State {
	if logger == nil {
		logger = discardLogger()
	}
	pad := sketch.New(cfg.SketchWidth, cfg.SketchHeight)
	pad.SetPenSize(cfg.PenSize)

	return &State{
		composer:  compose.NewCanvas(cfg.CanvasWidth, cfg.CanvasHeight, cfg.Compose),
		pad:       pad,
		log:       logger.With("component", "state"),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.listenersMu.RLock()
	listeners := s.listeners[event]
	s.listenersMu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Composer

// ComposerInfo returns a snapshot of the composer's state.
func (s *State) ComposerInfo() ComposerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info := ComposerInfo{
		Width:    s.composer.Width(),
		Height:   s.composer.Height(),
		Rotation: s.composer.Rotation(),
		Layers:   s.composer.Len(),
		Mode:     s.session.Mode(),
	}
	if l := s.composer.Selected(); l != nil {
		info.Selected = l.ID
	}
	return info
}

// ComposerOptions returns the composer's handle, scale and color settings.
func (s *State) ComposerOptions() compose.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composer.Options()
}

// InsertImage adds img as the new top layer.
func (s *State) InsertImage(img image.Image, category compose.Category) (compose.LayerID, error) {
	s.mu.Lock()
	l, err := s.composer.Insert(img, category)
	n := s.composer.Len()
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	s.log.Info("layer inserted", "id", l.ID, "category", category, "scale", l.Scale)
	s.Emit(EventLayersChanged, n)
	s.Emit(EventComposerChanged, nil)
	return l.ID, nil
}

// InsertImageFile decodes the file at path and inserts it. Decoding happens
// outside the lock; on failure the canvas is untouched.
func (s *State) InsertImageFile(path string, category compose.Category) (compose.LayerID, error) {
	img, err := studioimage.Load(path)
	if err != nil {
		s.log.Error("insert failed", "path", path, "err", err)
		return 0, err
	}
	return s.InsertImage(img, category)
}

// DeleteSelected removes the selected layer. Without a selection it does
// nothing and returns false.
func (s *State) DeleteSelected() bool {
	s.mu.Lock()
	if s.session.Active() {
		s.session.Release()
	}
	ok := s.composer.DeleteSelected()
	n := s.composer.Len()
	s.mu.Unlock()
	if !ok {
		return false
	}

	s.log.Info("selected layer deleted", "remaining", n)
	s.Emit(EventLayersChanged, n)
	s.Emit(EventSelectionChanged, compose.LayerID(0))
	s.Emit(EventComposerChanged, nil)
	return true
}

// NewCanvas replaces the composer with an empty canvas of the given size.
func (s *State) NewCanvas(width, height int) error {
	s.mu.Lock()
	s.session.Release()
	err := s.composer.Reset(width, height)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.log.Info("new canvas", "width", width, "height", height)
	s.Emit(EventCanvasResized, image.Pt(width, height))
	s.Emit(EventLayersChanged, 0)
	s.Emit(EventSelectionChanged, compose.LayerID(0))
	s.Emit(EventComposerChanged, nil)
	return nil
}

// ResizeCanvas changes the canvas size and keeps the layers.
func (s *State) ResizeCanvas(width, height int) error {
	s.mu.Lock()
	err := s.composer.Resize(width, height)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.Emit(EventCanvasResized, image.Pt(width, height))
	s.Emit(EventComposerChanged, nil)
	return nil
}

// RotateCanvas turns the whole composer by radians.
func (s *State) RotateCanvas(radians float64) {
	s.mu.Lock()
	s.composer.RotateCanvas(radians)
	total := s.composer.Rotation()
	s.mu.Unlock()

	s.Emit(EventCanvasRotated, total)
	s.Emit(EventComposerChanged, nil)
}

// PointerPress starts a composer interaction at viewport point p.
func (s *State) PointerPress(viewport image.Rectangle, p geometry.Point2D) compose.HandleKind {
	s.mu.Lock()
	before := selectedID(s.composer)
	cp := s.composer.ViewToCanvas(viewport, p)
	handle := s.session.Press(s.composer, cp)
	after := selectedID(s.composer)
	s.mu.Unlock()

	s.log.Debug("press", "x", cp.X, "y", cp.Y, "handle", handle)
	if before != after {
		s.Emit(EventSelectionChanged, after)
	}
	if handle.IsFlip() || before != after {
		s.Emit(EventComposerChanged, nil)
	}
	return handle
}

// PointerDrag continues the interaction. It reports whether a redraw is
// needed.
func (s *State) PointerDrag(viewport image.Rectangle, p geometry.Point2D) bool {
	s.mu.Lock()
	changed := s.session.Drag(s.composer, s.composer.ViewToCanvas(viewport, p))
	s.mu.Unlock()

	if changed {
		s.Emit(EventComposerChanged, nil)
	}
	return changed
}

// PointerRelease ends the interaction; the selection is kept.
func (s *State) PointerRelease() {
	s.mu.Lock()
	s.session.Release()
	s.mu.Unlock()
}

// HoverHandle reports the handle of the selected layer under viewport
// point p, for cursor feedback.
func (s *State) HoverHandle(viewport image.Rectangle, p geometry.Point2D) compose.HandleKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composer.HandleAt(s.composer.ViewToCanvas(viewport, p))
}

// RenderComposer draws the composer into dst.
func (s *State) RenderComposer(dst *image.RGBA) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.composer.Render(dst)
}

// ComposerSnapshot renders the composer for export.
func (s *State) ComposerSnapshot() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composer.Snapshot()
}

// SaveComposer exports the composer snapshot to path. It returns the path
// actually written.
func (s *State) SaveComposer(path string) (string, error) {
	return s.save(path, s.ComposerSnapshot())
}

// Sketchpad

// SketchBounds returns the sketch buffer size.
func (s *State) SketchBounds() image.Rectangle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pad.Bounds()
}

// LoadSketchImage replaces the sketchpad's uploaded image, centered in a
// view of the given size.
func (s *State) LoadSketchImage(img image.Image, view image.Point) error {
	s.mu.Lock()
	err := s.pad.LoadImage(img, view)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventSketchChanged, nil)
	return nil
}

// LoadSketchImageFile decodes the file at path into the sketchpad.
func (s *State) LoadSketchImageFile(path string, view image.Point) error {
	img, err := studioimage.Load(path)
	if err != nil {
		s.log.Error("sketch load failed", "path", path, "err", err)
		return err
	}
	s.log.Info("sketch image loaded", "path", path)
	return s.LoadSketchImage(img, view)
}

// SketchToggleSelection handles a double click on the sketchpad.
func (s *State) SketchToggleSelection(p geometry.Point2D) bool {
	s.mu.Lock()
	selected := s.pad.ToggleSelection(p)
	s.mu.Unlock()
	s.Emit(EventSketchChanged, nil)
	return selected
}

// SketchPress starts a stroke or an image move.
func (s *State) SketchPress(p geometry.Point2D) {
	s.mu.Lock()
	s.pad.Press(p)
	s.mu.Unlock()
}

// SketchDrag continues the sketch gesture in a view of the given size.
func (s *State) SketchDrag(p geometry.Point2D, view image.Point) bool {
	s.mu.Lock()
	changed := s.pad.Drag(p, view)
	s.mu.Unlock()
	if changed {
		s.Emit(EventSketchChanged, nil)
	}
	return changed
}

// SketchRelease ends the sketch gesture.
func (s *State) SketchRelease() {
	s.mu.Lock()
	s.pad.Release()
	s.mu.Unlock()
}

// PenColor returns the sketch pen color.
func (s *State) PenColor() color.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pad.PenColor()
}

// SetPenColor changes the sketch pen color.
func (s *State) SetPenColor(c color.Color) {
	s.mu.Lock()
	s.pad.SetPenColor(c)
	s.mu.Unlock()
}

// PenSize returns the sketch pen width.
func (s *State) PenSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pad.PenSize()
}

// SetPenSize changes the sketch pen width; it is clamped to 1..20.
func (s *State) SetPenSize(size int) {
	s.mu.Lock()
	s.pad.SetPenSize(size)
	s.mu.Unlock()
}

// Eraser reports whether the sketch pen erases.
func (s *State) Eraser() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pad.Eraser()
}

// ToggleEraser flips eraser mode and returns the new state.
func (s *State) ToggleEraser() bool {
	s.mu.Lock()
	on := s.pad.ToggleEraser()
	s.mu.Unlock()
	s.log.Debug("eraser toggled", "on", on)
	return on
}

// ClearSketch wipes strokes and the uploaded image.
func (s *State) ClearSketch() {
	s.mu.Lock()
	s.pad.Clear()
	s.mu.Unlock()
	s.Emit(EventSketchChanged, nil)
}

// RenderSketch draws the sketchpad into dst.
func (s *State) RenderSketch(dst *image.RGBA) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.pad.Render(dst)
}

// SketchSnapshot flattens the sketchpad for export.
func (s *State) SketchSnapshot() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pad.Snapshot()
}

// SaveSketch exports the sketchpad to path. It returns the path actually
// written.
func (s *State) SaveSketch(path string) (string, error) {
	return s.save(path, s.SketchSnapshot())
}

// save encodes outside the lock; the snapshot is already a private copy.
func (s *State) save(path string, img image.Image) (string, error) {
	written, err := studioimage.Save(path, img)
	if err != nil {
		s.log.Error("export failed", "path", path, "err", err)
		return "", fmt.Errorf("failed to save canvas: %w", err)
	}
	s.log.Info("exported", "path", written)
	s.Emit(EventExported, written)
	return written, nil
}

func selectedID(c *compose.Canvas) compose.LayerID {
	if l := c.Selected(); l != nil {
		return l.ID
	}
	return 0
}
