// Package board is the whiteboard engine: it turns pointer events into ink
// strokes and image moves/resizes, keeps the undo history and exposes the
// live scene for painting.
//
// An Engine is owned by one goroutine (the UI event loop). Only DecodeImage
// may be called from elsewhere.
package board

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"ChalkBoard/internal/bitmap"
	"ChalkBoard/internal/geom"
	"ChalkBoard/internal/render"
	"ChalkBoard/internal/state"
)

const (
	DefaultColor        = "#ffffff"
	DefaultStrokeWidth  = 3.0
	DefaultMinImageSize = 10.0

	// Newly placed images land here, DefaultImageWidth wide.
	DefaultImageX     = 100.0
	DefaultImageY     = 100.0
	DefaultImageWidth = 200.0
)

// Options configure an Engine.
type Options struct {
	Tool         state.Tool
	Color        string
	StrokeWidth  float64
	MinImageSize float64

	// RecordStrokeStart records an extra history entry holding the first
	// point of every stroke, so even a click without movement is its own
	// undo step.
	RecordStrokeStart bool
}

// DefaultOptions returns the stock pen and image settings.
func DefaultOptions() Options {
	return Options{
		Color:        DefaultColor,
		StrokeWidth:  DefaultStrokeWidth,
		MinImageSize: DefaultMinImageSize,
	}
}

// Engine holds the live board, the history and the interaction state.
type Engine struct {
	opts    Options
	history *state.History
	bitmaps *bitmap.Cache
	comp    *render.Compositor

	doc      state.CanvasState
	ink      *state.Stroke
	gesture  gesture
	selected string

	tool   state.Tool
	color  string
	width  float64
	canvas image.Point

	// OnChange is called after every change to anything the compositor or
	// the toolbar reads.
	OnChange func()
}

// New creates an engine. A nil cache gets a private one.
func New(opts Options, cache *bitmap.Cache) (*Engine, error) {
	def := DefaultOptions()
	if opts.Color == "" {
		opts.Color = def.Color
	}
	if opts.StrokeWidth == 0 {
		opts.StrokeWidth = def.StrokeWidth
	}
	if opts.MinImageSize <= 0 {
		opts.MinImageSize = def.MinImageSize
	}
	if cache == nil {
		cache = bitmap.NewCache()
	}

	e := &Engine{
		opts:    opts,
		history: state.NewHistory(),
		bitmaps: cache,
		comp:    render.NewCompositor(),
		tool:    opts.Tool,
	}
	if err := e.SetColor(opts.Color); err != nil {
		return nil, err
	}
	if err := e.SetStrokeWidth(opts.StrokeWidth); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) changed() {
	if e.OnChange != nil {
		e.OnChange()
	}
}

// PointerDown starts a gesture. Images are hit-tested first, topmost first;
// a miss deselects and, with the pen tool, starts a stroke.
func (e *Engine) PointerDown(p geom.Point) {
	if e.gesture != nil {
		e.endGesture()
	}

	if hit, ok := e.hitTest(p); ok {
		e.selected = hit.id
		if hit.onHandle {
			e.gesture = e.beginResize(hit.id, hit.handle, p)
		} else {
			e.gesture = e.beginDrag(hit.id, p)
		}
		e.changed()
		return
	}

	e.selected = ""
	switch e.tool {
	case state.ToolPen:
		e.gesture = e.beginStroke(p)
	case state.ToolImage:
		// A miss with the image tool only clears the selection.
	}
	e.changed()
}

// PointerMove feeds the active gesture. Without one it does nothing.
func (e *Engine) PointerMove(p geom.Point) {
	if e.gesture == nil {
		return
	}
	e.gesture.move(e, p)
	e.changed()
}

// PointerUp finishes the active gesture.
func (e *Engine) PointerUp(geom.Point) {
	if e.gesture == nil {
		return
	}
	e.endGesture()
	e.changed()
}

// PointerLeave is treated exactly like a release.
func (e *Engine) PointerLeave() {
	e.PointerUp(geom.Point{})
}

func (e *Engine) endGesture() {
	g := e.gesture
	e.gesture = nil
	g.end(e)
}

// Undo restores the previous snapshot. It reports false at the start of
// history.
func (e *Engine) Undo() bool {
	if e.gesture != nil {
		e.endGesture()
	}
	cs, ok := e.history.Undo()
	if ok {
		e.restore(cs)
	}
	e.changed()
	return ok
}

// Redo reapplies the next snapshot. It reports false at the end of history.
func (e *Engine) Redo() bool {
	if e.gesture != nil {
		e.endGesture()
	}
	cs, ok := e.history.Redo()
	if ok {
		e.restore(cs)
	}
	e.changed()
	return ok
}

func (e *Engine) restore(cs state.CanvasState) {
	e.doc = cs
	if e.selected != "" && cs.ImageIndex(e.selected) < 0 {
		e.selected = ""
	}
}

// Clear wipes the board and its history. Any gesture in progress is dropped.
func (e *Engine) Clear() {
	e.gesture = nil
	e.ink = nil
	e.doc = state.CanvasState{}
	e.selected = ""
	e.history.Clear()
	log.Println("[BOARD] Canvas cleared")
	e.changed()
}

// Resize records the new canvas size. Board content is untouched.
func (e *Engine) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if e.canvas.X == width && e.canvas.Y == height {
		return
	}
	e.canvas = image.Pt(width, height)
	e.changed()
}

func (e *Engine) SetTool(t state.Tool) {
	if t == e.tool {
		return
	}
	e.tool = t
	e.changed()
}

// SetColor sets the pen colour for future strokes.
func (e *Engine) SetColor(c string) error {
	norm, err := state.NormalizeColor(c)
	if err != nil {
		return err
	}
	e.color = norm
	e.changed()
	return nil
}

// SetStrokeWidth sets the pen width for future strokes.
func (e *Engine) SetStrokeWidth(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return fmt.Errorf("%w: %v", state.ErrInvalidWidth, w)
	}
	e.width = w
	e.changed()
	return nil
}

func (e *Engine) Tool() state.Tool     { return e.tool }
func (e *Engine) Color() string        { return e.color }
func (e *Engine) StrokeWidth() float64 { return e.width }
func (e *Engine) HistoryLen() int      { return e.history.Len() }
func (e *Engine) HistoryCursor() int   { return e.history.Cursor() }
func (e *Engine) CanUndo() bool        { return e.history.CanUndo() }
func (e *Engine) CanRedo() bool        { return e.history.CanRedo() }
func (e *Engine) Size() image.Point    { return e.canvas }

// Drawing reports whether a stroke is in progress.
func (e *Engine) Drawing() bool { return e.ink != nil }

// State returns the committed board, without any stroke in progress.
func (e *Engine) State() state.CanvasState { return e.doc }

// Strokes returns the live strokes, the one being drawn included.
func (e *Engine) Strokes() []state.Stroke {
	s := e.doc.Strokes
	if e.ink != nil {
		s = append(s[:len(s):len(s)], *e.ink)
	}
	return s
}

// Images returns the live images in creation order.
func (e *Engine) Images() []state.ImageObject { return e.doc.Images }

// Scene returns the compositor input for the current frame.
func (e *Engine) Scene() render.Scene {
	return render.Scene{
		Width:    e.canvas.X,
		Height:   e.canvas.Y,
		Strokes:  e.Strokes(),
		Images:   e.doc.Images,
		Selected: e.selected,
		Bitmaps:  e.bitmaps,
	}
}

// Render paints the live scene into dst.
func (e *Engine) Render(dst *image.RGBA, opts render.Options) {
	e.comp.Render(dst, e.Scene(), opts)
}

// Snapshot returns the whole canvas flattened on background, without
// selection chrome.
func (e *Engine) Snapshot(background color.Color) image.Image {
	return e.comp.Snapshot(e.Scene(), background)
}

// SnapshotPNG is Snapshot encoded as PNG.
func (e *Engine) SnapshotPNG(background color.Color) ([]byte, error) {
	return e.comp.SnapshotPNG(e.Scene(), background)
}

// DecodeImage decodes src through the shared bitmap cache. It is safe to call
// from any goroutine; hand the result to PlaceImage on the UI goroutine.
func (e *Engine) DecodeImage(ctx context.Context, src bitmap.Source) (*bitmap.Bitmap, error) {
	return e.bitmaps.Load(ctx, src)
}

// AddImage decodes src and places it on the board. A decode failure leaves
// the board and history untouched.
func (e *Engine) AddImage(ctx context.Context, src bitmap.Source) (state.ImageObject, error) {
	bm, err := e.DecodeImage(ctx, src)
	if err != nil {
		return state.ImageObject{}, err
	}
	return e.PlaceImage(bm), nil
}
