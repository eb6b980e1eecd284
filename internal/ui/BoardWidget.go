package ui

import (
	"image"
	"image/color"
	"math"

	"ChalkBoard/internal/board"
	"ChalkBoard/internal/geom"
	"ChalkBoard/internal/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows an engine's scene and feeds it pointer input. All engine
// calls happen on the fyne event goroutine.
type BoardWidget struct {
	widget.BaseWidget
	engine     *board.Engine
	background color.Color
	raster     *canvas.Raster
	frame      *image.RGBA
	lastPos    fyne.Position

	// OnStateChanged runs after every engine change, for toolbar state.
	OnStateChanged func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(engine *board.Engine, background color.Color) *BoardWidget {
	b := &BoardWidget{engine: engine, background: background}
	b.raster = canvas.NewRaster(b.paint)
	engine.OnChange = b.engineChanged
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Engine() *board.Engine { return b.engine }

func (b *BoardWidget) engineChanged() {
	b.raster.Refresh()
	if b.OnStateChanged != nil {
		b.OnStateChanged()
	}
}

// paint renders the scene at device resolution. The engine works in widget
// units, so the compositor scales by pixels per unit.
func (b *BoardWidget) paint(w, h int) image.Image {
	if b.frame == nil || b.frame.Rect.Dx() != w || b.frame.Rect.Dy() != h {
		b.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	scale := 1.0
	if size := b.Size(); size.Width > 0 {
		scale = float64(w) / float64(size.Width)
	}
	b.engine.Render(b.frame, render.Options{Background: b.background, Scale: scale})
	return b.frame
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.lastPos = e.Position
	b.engine.PointerDown(toPoint(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.engine.PointerUp(toPoint(e.Position))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastPos = e.Position
	b.engine.PointerMove(toPoint(e.Position))
}

func (b *BoardWidget) DragEnd() {
	b.engine.PointerUp(toPoint(b.lastPos))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.engine.PointerMove(toPoint(e.Position))
}

// MouseOut ends whatever the pointer was doing, like a release.
func (b *BoardWidget) MouseOut() {
	b.engine.PointerLeave()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: b}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
	r.board.engine.Resize(int(math.Round(float64(size.Width))), int(math.Round(float64(size.Height))))
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
