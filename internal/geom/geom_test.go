package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 200, Height: 100}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Pt(150, 150), true},
		{"top-left corner", Pt(100, 100), true},
		{"bottom-right corner", Pt(300, 200), true},
		{"left of", Pt(99, 150), false},
		{"below", Pt(150, 201), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !a.Overlaps(Rect{X: 5, Y: 5, Width: 10, Height: 10}) {
		t.Error("expected overlap")
	}
	if a.Overlaps(Rect{X: 11, Y: 0, Width: 5, Height: 5}) {
		t.Error("expected no overlap")
	}
}

func TestBounds(t *testing.T) {
	if _, ok := Bounds(nil, 0); ok {
		t.Fatal("Bounds(nil) should report !ok")
	}
	r, ok := Bounds([]Point{{X: 5, Y: 8}, {X: 1, Y: 10}, {X: 3, Y: 2}}, 1)
	if !ok {
		t.Fatal("Bounds reported !ok")
	}
	want := Rect{X: 0, Y: 1, Width: 6, Height: 10}
	if r != want {
		t.Errorf("Bounds = %+v, want %+v", r, want)
	}
}

func TestHitHandle(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 200, Height: 100}
	tests := []struct {
		name   string
		p      Point
		want   Handle
		wantOK bool
	}{
		{"nw exact", Pt(100, 100), HandleNW, true},
		{"nw outside body", Pt(97, 97), HandleNW, true},
		{"ne", Pt(302, 99), HandleNE, true},
		{"sw", Pt(101, 203), HandleSW, true},
		{"se", Pt(300, 200), HandleSE, true},
		{"body", Pt(200, 150), 0, false},
		{"just past zone", Pt(305, 205), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitHandle(r, tt.p)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("HitHandle(%v) = %v, %v; want %v, %v", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHitHandleThinRectPicksNearestCorner(t *testing.T) {
	// 4px tall: the ne/se zones and nw/sw zones overlap.
	r := Rect{X: 100, Y: 100, Width: 100, Height: 4}
	tests := []struct {
		p    Point
		want Handle
	}{
		{Pt(200, 103.5), HandleSE},
		{Pt(200, 100.5), HandleNE},
		{Pt(99, 104), HandleSW},
		{Pt(101, 99), HandleNW},
	}
	for _, tt := range tests {
		got, ok := HitHandle(r, tt.p)
		if !ok || got != tt.want {
			t.Errorf("HitHandle(%v) = %v, %v; want %v", tt.p, got, ok, tt.want)
		}
	}
}

func TestMinWidth(t *testing.T) {
	tests := []struct {
		aspect, min, want float64
	}{
		{2, 10, 20},
		{0.5, 10, 10},
		{1000, 10, 10000},
		{0, 10, 10},
	}
	for _, tt := range tests {
		if got := MinWidth(tt.aspect, tt.min); got != tt.want {
			t.Errorf("MinWidth(%v, %v) = %v, want %v", tt.aspect, tt.min, got, tt.want)
		}
	}
}

func TestResize(t *testing.T) {
	start := Rect{X: 100, Y: 100, Width: 200, Height: 100}
	tests := []struct {
		name  string
		h     Handle
		delta Point
		want  Rect
	}{
		{"se grows", HandleSE, Pt(50, 25), Rect{X: 100, Y: 100, Width: 250, Height: 125}},
		{"se ignores dy", HandleSE, Pt(50, -300), Rect{X: 100, Y: 100, Width: 250, Height: 125}},
		{"nw shrinks keeps bottom-right", HandleNW, Pt(20, 10), Rect{X: 120, Y: 110, Width: 180, Height: 90}},
		{"sw keeps right and top", HandleSW, Pt(-40, 0), Rect{X: 60, Y: 100, Width: 240, Height: 120}},
		{"ne keeps left and bottom", HandleNE, Pt(40, 0), Rect{X: 100, Y: 80, Width: 240, Height: 120}},
		{"se clamps", HandleSE, Pt(-500, 0), Rect{X: 100, Y: 100, Width: 20, Height: 10}},
		{"nw clamps keeps opposite edges", HandleNW, Pt(500, 0), Rect{X: 280, Y: 190, Width: 20, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resize(start, tt.h, tt.delta, 2.0, 10)
			if got != tt.want {
				t.Errorf("Resize(%v, %v) = %+v, want %+v", tt.h, tt.delta, got, tt.want)
			}
		})
	}
}

func TestHandleString(t *testing.T) {
	for h, want := range map[Handle]string{HandleNW: "nw", HandleNE: "ne", HandleSW: "sw", HandleSE: "se"} {
		if h.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(h), h.String(), want)
		}
	}
}
