package board

import (
	"log"

	"ChalkBoard/internal/bitmap"
	"ChalkBoard/internal/geom"
	"ChalkBoard/internal/state"
)

type hit struct {
	id       string
	handle   geom.Handle
	onHandle bool
}

// hitTest resolves p to an image, newest first. Resize handles only exist on
// the selected image and win over its body.
func (e *Engine) hitTest(p geom.Point) (hit, bool) {
	images := e.doc.Images
	for i := len(images) - 1; i >= 0; i-- {
		im := images[i]
		r := im.Rect()
		if im.ID == e.selected {
			if h, ok := geom.HitHandle(r, p); ok {
				return hit{id: im.ID, handle: h, onHandle: true}, true
			}
		}
		if r.Contains(p) {
			return hit{id: im.ID}, true
		}
	}
	return hit{}, false
}

// ImageAt returns the id of the topmost image under p.
func (e *Engine) ImageAt(p geom.Point) (string, bool) {
	h, ok := e.hitTest(p)
	return h.id, ok
}

// PlaceImage adds an already decoded bitmap at the default spot and size,
// keeping its natural aspect ratio, and records the addition. Very wide
// images are widened until their height reaches the minimum size.
func (e *Engine) PlaceImage(bm *bitmap.Bitmap) state.ImageObject {
	aspect := bm.AspectRatio()
	width := max(DefaultImageWidth, geom.MinWidth(aspect, e.opts.MinImageSize))
	im := state.ImageObject{
		ID:          state.NewID(),
		Source:      bm.Key,
		X:           DefaultImageX,
		Y:           DefaultImageY,
		Width:       width,
		Height:      width / aspect,
		AspectRatio: aspect,
	}
	e.doc = e.doc.WithImage(im)
	e.history.Record(e.doc)
	log.Printf("[BOARD] Image %s added (%dx%d source)", im.ID, bm.Width(), bm.Height())
	e.changed()
	return im
}

// Selected returns the id of the selected image.
func (e *Engine) Selected() (string, bool) {
	return e.selected, e.selected != ""
}

// Select makes id the only selected image. Unknown ids are ignored.
func (e *Engine) Select(id string) bool {
	if e.doc.ImageIndex(id) < 0 {
		return false
	}
	if e.selected != id {
		e.selected = id
		e.changed()
	}
	return true
}

// Deselect clears the selection.
func (e *Engine) Deselect() {
	if e.selected == "" {
		return
	}
	e.selected = ""
	e.changed()
}
