// Package render composites the board into a raster image.
//
// Layers are painted back to front:
//
//  1. background clear
//  2. images, in creation order
//  3. selection outline and corner handles of the selected image
//  4. ink strokes, in creation order
//
// Ink always lands on top of pictures so students can write over them.
package render

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"ChalkBoard/internal/bitmap"
	"ChalkBoard/internal/geom"
	"ChalkBoard/internal/state"
)

const (
	selectionColor = "#3b82f6"
	selectionWidth = 2.0
	selectionPad   = 2.0
)

// Bitmaps resolves an image object's source key to its decoded bitmap.
type Bitmaps interface {
	Get(key string) (*bitmap.Bitmap, bool)
}

// Scene is everything the compositor needs to paint one frame.
type Scene struct {
	Width, Height int
	Strokes       []state.Stroke
	Images        []state.ImageObject
	Selected      string // id of the selected image, "" for none
	Bitmaps       Bitmaps
}

// Options control how a scene is painted.
type Options struct {
	// Background fills the canvas on clear. Nil clears to transparent.
	Background color.Color
	// Scale maps canvas pixels to output pixels. Zero means 1.
	Scale float64
	// HideSelection suppresses the selection outline and handles.
	HideSelection bool
}

type scaledImage struct {
	source string
	w, h   int
	img    image.Image
}

// Compositor paints scenes. It keeps one resampled copy of each image
// object's bitmap so repeated frames at the same size skip the resampling.
type Compositor struct {
	mu     sync.Mutex
	scaled map[string]scaledImage // by image object id
}

func NewCompositor() *Compositor {
	return &Compositor{scaled: make(map[string]scaledImage)}
}

// Render paints scene into dst, replacing its previous contents.
func (c *Compositor) Render(dst *image.RGBA, scene Scene, opts Options) {
	dc := gg.NewContextForRGBA(dst)
	c.paint(dc, scene, opts)
}

// Image paints scene into a new image sized to scene.Width x scene.Height
// times the scale option.
func (c *Compositor) Image(scene Scene, opts Options) image.Image {
	s := opts.Scale
	if s <= 0 {
		s = 1
	}
	w := int(math.Ceil(float64(scene.Width) * s))
	h := int(math.Ceil(float64(scene.Height) * s))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	c.paint(dc, scene, opts)
	return dc.Image()
}

func (c *Compositor) paint(dc *gg.Context, scene Scene, opts Options) {
	if opts.Background != nil {
		dc.SetColor(opts.Background)
	} else {
		dc.SetColor(color.Transparent)
	}
	dc.Clear()

	s := opts.Scale
	if s <= 0 {
		s = 1
	}

	view := geom.Rect{Width: float64(scene.Width), Height: float64(scene.Height)}
	for _, im := range scene.Images {
		if visible(im.Rect(), view) {
			c.drawImage(dc, scene.Bitmaps, im, s)
		}
	}
	c.prune(scene.Images)

	if !opts.HideSelection && scene.Selected != "" {
		for _, im := range scene.Images {
			if im.ID == scene.Selected {
				drawSelection(dc, im.Rect(), s)
				break
			}
		}
	}

	dc.Push()
	dc.Scale(s, s)
	for _, st := range scene.Strokes {
		if b, ok := st.Bounds(); ok && visible(b, view) {
			drawStroke(dc, st)
		}
	}
	dc.Pop()
}

func (c *Compositor) drawImage(dc *gg.Context, bitmaps Bitmaps, im state.ImageObject, s float64) {
	if bitmaps == nil {
		return
	}
	bm, ok := bitmaps.Get(im.Source)
	if !ok {
		return
	}
	w := int(math.Round(im.Width * s))
	h := int(math.Round(im.Height * s))
	if w <= 0 || h <= 0 {
		return
	}
	dc.DrawImage(c.resampled(im.ID, bm, w, h), int(math.Round(im.X*s)), int(math.Round(im.Y*s)))
}

func (c *Compositor) resampled(id string, bm *bitmap.Bitmap, w, h int) image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.scaled[id]; ok && e.source == bm.Key && e.w == w && e.h == h {
		return e.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), bm.Image, bm.Image.Bounds(), draw.Over, nil)
	c.scaled[id] = scaledImage{source: bm.Key, w: w, h: h, img: dst}
	return dst
}

// prune drops cached copies of image objects no longer in the scene.
func (c *Compositor) prune(images []state.ImageObject) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.scaled) == 0 {
		return
	}
	keep := make(map[string]bool, len(images))
	for _, im := range images {
		keep[im.ID] = true
	}
	for id := range c.scaled {
		if !keep[id] {
			delete(c.scaled, id)
		}
	}
}

// visible reports whether r is on the canvas. An unsized canvas shows
// everything.
func visible(r, view geom.Rect) bool {
	if view.Width <= 0 || view.Height <= 0 {
		return true
	}
	return r.Overlaps(view)
}

func drawSelection(dc *gg.Context, r geom.Rect, s float64) {
	dc.Push()
	dc.Scale(s, s)
	defer dc.Pop()

	dc.SetHexColor(selectionColor)
	dc.SetLineWidth(selectionWidth)
	outline := r.Inset(-selectionPad)
	dc.DrawRectangle(outline.X, outline.Y, outline.Width, outline.Height)
	dc.Stroke()

	for _, h := range geom.Handles {
		z := h.Zone(r)
		dc.DrawRectangle(z.X, z.Y, z.Width, z.Height)
	}
	dc.Fill()
}

func drawStroke(dc *gg.Context, st state.Stroke) {
	if len(st.Points) == 0 {
		return
	}
	dc.SetHexColor(st.Color)
	if len(st.Points) == 1 {
		p := st.Points[0]
		dc.DrawCircle(p.X, p.Y, st.Width/2)
		dc.Fill()
		return
	}
	dc.SetLineWidth(st.Width)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.MoveTo(st.Points[0].X, st.Points[0].Y)
	for _, p := range st.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}

// Snapshot paints the scene without selection chrome, for handing the board
// to an outside reader such as the tutor service or an export.
func (c *Compositor) Snapshot(scene Scene, background color.Color) image.Image {
	return c.Image(scene, Options{Background: background, HideSelection: true})
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	dc := gg.NewContextForImage(img)
	return dc.EncodePNG(w)
}

// SnapshotPNG returns the PNG bytes of Snapshot.
func (c *Compositor) SnapshotPNG(scene Scene, background color.Color) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, c.Snapshot(scene, background)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
