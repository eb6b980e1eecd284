package board

import (
	"log"

	"ChalkBoard/internal/geom"
	"ChalkBoard/internal/state"
)

// gesture is the context of one pointer-down..pointer-up sequence. Each
// variant carries the fixed reference it measures pointer deltas against.
type gesture interface {
	move(e *Engine, p geom.Point)
	end(e *Engine)
}

var (
	_ gesture = (*strokeGesture)(nil)
	_ gesture = (*dragGesture)(nil)
	_ gesture = (*resizeGesture)(nil)
)

type strokeGesture struct{}

func (e *Engine) beginStroke(p geom.Point) gesture {
	e.ink = &state.Stroke{
		Tool:   state.ToolPen,
		Points: []geom.Point{p},
		Color:  e.color,
		Width:  e.width,
	}
	if e.opts.RecordStrokeStart {
		e.history.Record(e.doc.WithStroke(*e.ink))
	}
	return &strokeGesture{}
}

func (g *strokeGesture) move(e *Engine, p geom.Point) {
	e.ink.Points = append(e.ink.Points, p)
}

func (g *strokeGesture) end(e *Engine) {
	e.doc = e.doc.WithStroke(*e.ink)
	e.ink = nil
	e.history.Record(e.doc)
}

// dragGesture moves an image by the pointer offset from anchor.
type dragGesture struct {
	id     string
	anchor geom.Point
	start  geom.Rect
}

func (e *Engine) beginDrag(id string, p geom.Point) gesture {
	i := e.doc.ImageIndex(id)
	im := e.doc.Images[i]
	im.Dragging = true
	e.doc = e.doc.ReplaceImage(i, im)
	return &dragGesture{id: id, anchor: p, start: im.Rect()}
}

func (g *dragGesture) move(e *Engine, p geom.Point) {
	i := e.doc.ImageIndex(g.id)
	if i < 0 {
		return
	}
	d := p.Sub(g.anchor)
	r := g.start
	r.X += d.X
	r.Y += d.Y
	e.doc = e.doc.ReplaceImage(i, e.doc.Images[i].WithRect(r))
}

func (g *dragGesture) end(e *Engine) {
	e.finishImageGesture(g.id, g.start, "moved")
}

// resizeGesture scales an image from one corner, keeping its aspect ratio.
type resizeGesture struct {
	id     string
	handle geom.Handle
	anchor geom.Point
	start  geom.Rect
}

func (e *Engine) beginResize(id string, h geom.Handle, p geom.Point) gesture {
	im := e.doc.Images[e.doc.ImageIndex(id)]
	return &resizeGesture{id: id, handle: h, anchor: p, start: im.Rect()}
}

func (g *resizeGesture) move(e *Engine, p geom.Point) {
	i := e.doc.ImageIndex(g.id)
	if i < 0 {
		return
	}
	im := e.doc.Images[i]
	r := geom.Resize(g.start, g.handle, p.Sub(g.anchor), im.AspectRatio, e.opts.MinImageSize)
	e.doc = e.doc.ReplaceImage(i, im.WithRect(r))
}

func (g *resizeGesture) end(e *Engine) {
	e.finishImageGesture(g.id, g.start, "resized")
}

// finishImageGesture settles the image and records one history entry for
// the whole gesture. A gesture that left the geometry as it was records
// nothing.
func (e *Engine) finishImageGesture(id string, start geom.Rect, verb string) {
	i := e.doc.ImageIndex(id)
	if i < 0 {
		return
	}
	im := e.doc.Images[i]
	if im.Dragging {
		im.Dragging = false
		e.doc = e.doc.ReplaceImage(i, im)
	}
	if im.Rect() == start {
		return
	}
	e.history.Record(e.doc)
	log.Printf("[BOARD] Image %s %s to %.0fx%.0f at (%.0f, %.0f)", id, verb, im.Width, im.Height, im.X, im.Y)
}
