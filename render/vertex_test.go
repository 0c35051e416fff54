package render

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/pane"
)

func getFloat32(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestBuildRectVerticesEmpty(t *testing.T) {
	_, data := buildRectVertices(nil, nil)
	if data != nil {
		t.Errorf("empty list produced %d bytes, want none", len(data))
	}
}

func TestBuildRectVerticesSingleRect(t *testing.T) {
	list := pane.DisplayList{{Rect: pane.Rect{X: 10, Y: 20, Width: 100, Height: 50}, Color: pane.Red}}
	_, data := buildRectVertices(list, nil)

	if want := vertsPerRect * vertexStride; len(data) != want {
		t.Fatalf("len(data) = %d, want %d", len(data), want)
	}

	// Expected corner positions for the two triangles.
	wantPos := [][2]float32{
		{10, 20}, {10, 70}, {110, 70},
		{110, 70}, {110, 20}, {10, 20},
	}
	for i, want := range wantPos {
		off := i * vertexStride
		x := getFloat32(data, off)
		y := getFloat32(data, off+4)
		if x != want[0] || y != want[1] {
			t.Errorf("vertex %d position = (%v,%v), want (%v,%v)", i, x, y, want[0], want[1])
		}
		// Opaque red, premultiplied == itself.
		r := getFloat32(data, off+8)
		a := getFloat32(data, off+20)
		if r != 1 || a != 1 {
			t.Errorf("vertex %d color r=%v a=%v, want r=1 a=1", i, r, a)
		}
	}
}

func TestBuildRectVerticesPremultipliesColor(t *testing.T) {
	list := pane.DisplayList{{
		Rect:  pane.Rect{Width: 1, Height: 1},
		Color: pane.RGBA{R: 1, G: 0.5, B: 0, A: 0.5},
	}}
	_, data := buildRectVertices(list, nil)

	if got := getFloat32(data, 8); got != 0.5 {
		t.Errorf("premultiplied R = %v, want 0.5", got)
	}
	if got := getFloat32(data, 12); got != 0.25 {
		t.Errorf("premultiplied G = %v, want 0.25", got)
	}
	if got := getFloat32(data, 20); got != 0.5 {
		t.Errorf("A = %v, want 0.5", got)
	}
}

func TestBuildRectVerticesIdempotent(t *testing.T) {
	list := pane.DisplayList{
		{Rect: pane.Rect{X: 0, Y: 0, Width: 50, Height: 50}, Color: pane.Red},
		{Rect: pane.Rect{X: 10, Y: 10, Width: 30, Height: 30}, Color: pane.Blue},
	}
	_, a := buildRectVertices(list, nil)
	_, b := buildRectVertices(list, nil)
	if !bytes.Equal(a, b) {
		t.Error("two expansions of the same list differ")
	}
}

func TestBuildRectVerticesPreservesOrder(t *testing.T) {
	list := pane.DisplayList{
		{Rect: pane.Rect{X: 0, Y: 0, Width: 10, Height: 10}, Color: pane.Red},
		{Rect: pane.Rect{X: 100, Y: 100, Width: 10, Height: 10}, Color: pane.Blue},
	}
	_, data := buildRectVertices(list, nil)

	// First vertex of the first rect, then of the second rect: buffer
	// order must match list (painter's) order.
	if x := getFloat32(data, 0); x != 0 {
		t.Errorf("first rect starts at x=%v, want 0", x)
	}
	second := vertsPerRect * vertexStride
	if x := getFloat32(data, second); x != 100 {
		t.Errorf("second rect starts at x=%v, want 100", x)
	}
}

func TestBuildRectVerticesReusesStaging(t *testing.T) {
	list := pane.DisplayList{{Rect: pane.Rect{X: 0, Y: 0, Width: 10, Height: 10}, Color: pane.Red}}

	staging, first := buildRectVertices(list, nil)
	reused, second := buildRectVertices(list, staging)

	if &reused[0] != &staging[0] {
		t.Error("staging buffer was reallocated for an identical frame")
	}
	if !bytes.Equal(first, second) {
		t.Error("reused staging produced different bytes")
	}

	// A bigger frame grows the buffer rather than truncating the data.
	bigger := append(list, list[0], list[0])
	_, data := buildRectVertices(bigger, reused)
	if want := 3 * vertsPerRect * vertexStride; len(data) != want {
		t.Errorf("grown frame len = %d, want %d", len(data), want)
	}
}

func TestProjectionBytes(t *testing.T) {
	m := Projection(800, 600)
	buf := projectionBytes(m)
	if len(buf) != 64 {
		t.Fatalf("len = %d, want 64", len(buf))
	}
	for i, want := range m {
		if got := getFloat32(buf, i*4); got != want {
			t.Errorf("element %d = %v, want %v", i, got, want)
		}
	}
}
