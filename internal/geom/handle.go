package geom

import (
	"fmt"
	"math"
)

// HandleSize is the side length of a corner resize handle, in pixels.
const HandleSize = 8.0

// Handle identifies one of the four corner resize handles of an image.
type Handle int

const (
	HandleNW Handle = iota
	HandleNE
	HandleSW
	HandleSE
)

// Handles lists every handle in hit-test order.
var Handles = [...]Handle{HandleNW, HandleNE, HandleSW, HandleSE}

func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	}
	return fmt.Sprintf("Handle(%d)", int(h))
}

// Corner returns the corner of r the handle sits on.
func (h Handle) Corner(r Rect) Point {
	switch h {
	case HandleNW:
		return Point{X: r.X, Y: r.Y}
	case HandleNE:
		return Point{X: r.Right(), Y: r.Y}
	case HandleSW:
		return Point{X: r.X, Y: r.Bottom()}
	case HandleSE:
		return Point{X: r.Right(), Y: r.Bottom()}
	}
	panic(fmt.Sprintf("geom: unknown handle %d", int(h)))
}

// Zone returns the square hit zone of the handle, centred on its corner.
func (h Handle) Zone(r Rect) Rect {
	c := h.Corner(r)
	return Rect{
		X:      c.X - HandleSize/2,
		Y:      c.Y - HandleSize/2,
		Width:  HandleSize,
		Height: HandleSize,
	}
}

// HitHandle returns the handle of r whose zone contains p. On a thin rect
// the zones overlap; the handle with the nearest corner wins.
func HitHandle(r Rect, p Point) (Handle, bool) {
	best, found := Handle(0), false
	bestDist := math.Inf(1)
	for _, h := range Handles {
		if !h.Zone(r).Contains(p) {
			continue
		}
		c := h.Corner(r)
		if d := math.Hypot(p.X-c.X, p.Y-c.Y); d < bestDist {
			best, bestDist, found = h, d, true
		}
	}
	return best, found
}

// MinWidth is the narrowest an image of the given aspect can be with
// neither side under minSize.
func MinWidth(aspect, minSize float64) float64 {
	return math.Max(minSize, minSize*validAspect(aspect))
}

func validAspect(aspect float64) float64 {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return 1
	}
	return aspect
}

// Resize computes the aspect-locked geometry of start after the handle h has
// been dragged by delta. Width follows the horizontal delta; height is always
// derived from the width and aspect. The edges opposite the handle stay where
// they were in start. Neither dimension goes below minSize.
func Resize(start Rect, h Handle, delta Point, aspect, minSize float64) Rect {
	aspect = validAspect(aspect)

	var width float64
	switch h {
	case HandleSE, HandleNE:
		width = start.Width + delta.X
	case HandleSW, HandleNW:
		width = start.Width - delta.X
	default:
		return start
	}

	if floor := MinWidth(aspect, minSize); width < floor {
		width = floor
	}
	height := width / aspect

	out := Rect{X: start.X, Y: start.Y, Width: width, Height: height}
	switch h {
	case HandleSW, HandleNW:
		out.X = start.Right() - width
	}
	switch h {
	case HandleNE, HandleNW:
		out.Y = start.Bottom() - height
	}
	return out
}
