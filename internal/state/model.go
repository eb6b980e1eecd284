package state

import (
	"fmt"

	"ChalkBoard/internal/geom"
)

// Tool is the active input tool of the board.
type Tool int

const (
	ToolPen Tool = iota
	ToolImage
)

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolImage:
		return "image"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool maps "pen" or "image" to a Tool.
func ParseTool(s string) (Tool, error) {
	switch s {
	case "pen":
		return ToolPen, nil
	case "image":
		return ToolImage, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Stroke is one freehand ink path. Once committed to a CanvasState its
// points are never modified.
type Stroke struct {
	Tool   Tool         `json:"tool"`
	Points []geom.Point `json:"points"`
	Color  string       `json:"color"` // #rrggbb
	Width  float64      `json:"width"`
}

// Bounds returns the area covered by the stroke, including its line width.
func (s Stroke) Bounds() (geom.Rect, bool) {
	return geom.Bounds(s.Points, s.Width/2)
}

// ImageObject is a raster image placed on the canvas. Source is the cache
// key of the decoded bitmap it displays.
type ImageObject struct {
	ID          string  `json:"id"`
	Source      string  `json:"source"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`

	// Dragging is transient gesture state and is always false in history.
	Dragging bool `json:"-"`
}

// Rect returns the current on-canvas geometry of the image.
func (im ImageObject) Rect() geom.Rect {
	return geom.Rect{X: im.X, Y: im.Y, Width: im.Width, Height: im.Height}
}

// WithRect returns a copy of im moved and sized to r.
func (im ImageObject) WithRect(r geom.Rect) ImageObject {
	im.X, im.Y, im.Width, im.Height = r.X, r.Y, r.Width, r.Height
	return im
}

// CanvasState is a complete snapshot of the board. The slices are shared
// between snapshots and must be treated as read-only; every change builds
// new slices.
type CanvasState struct {
	Strokes []Stroke      `json:"strokes"`
	Images  []ImageObject `json:"images"`
}

// Empty reports whether the state holds no strokes and no images.
func (cs CanvasState) Empty() bool {
	return len(cs.Strokes) == 0 && len(cs.Images) == 0
}

// WithStroke returns a state with s appended to the strokes.
func (cs CanvasState) WithStroke(s Stroke) CanvasState {
	s.Points = s.Points[:len(s.Points):len(s.Points)]
	cs.Strokes = append(cs.Strokes[:len(cs.Strokes):len(cs.Strokes)], s)
	return cs
}

// WithImage returns a state with im appended to the images.
func (cs CanvasState) WithImage(im ImageObject) CanvasState {
	cs.Images = append(cs.Images[:len(cs.Images):len(cs.Images)], im)
	return cs
}

// ReplaceImage returns a state with the image at index i swapped for im.
func (cs CanvasState) ReplaceImage(i int, im ImageObject) CanvasState {
	images := make([]ImageObject, len(cs.Images))
	copy(images, cs.Images)
	images[i] = im
	cs.Images = images
	return cs
}

// ImageIndex returns the index of the image with the given id, or -1.
func (cs CanvasState) ImageIndex(id string) int {
	for i := range cs.Images {
		if cs.Images[i].ID == id {
			return i
		}
	}
	return -1
}

// settled returns the state with all transient image flags cleared, copying
// the image slice only when some flag is set.
func (cs CanvasState) settled() CanvasState {
	for i := range cs.Images {
		if cs.Images[i].Dragging {
			images := make([]ImageObject, len(cs.Images))
			copy(images, cs.Images)
			for j := range images {
				images[j].Dragging = false
			}
			cs.Images = images
			return cs
		}
	}
	return cs
}
