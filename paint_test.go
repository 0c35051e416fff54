package pane

import (
	"image"
	"testing"
)

func TestPaintEmptyListIsClearColor(t *testing.T) {
	img := Paint(nil, Rect{Width: 16, Height: 16}, White)
	if got := img.Bounds(); got != image.Rect(0, 0, 16, 16) {
		t.Fatalf("bounds = %v, want 16x16", got)
	}
	for _, p := range []image.Point{{0, 0}, {15, 15}, {8, 8}} {
		r, g, b, a := img.RGBAAt(p.X, p.Y).RGBA()
		if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
			t.Errorf("pixel %v = (%d,%d,%d,%d), want white", p, r, g, b, a)
		}
	}
}

func TestPaintSingleRect(t *testing.T) {
	list := DisplayList{{Rect: Rect{10, 10, 100, 50}, Color: Red}}
	img := Paint(list, Rect{Width: 800, Height: 600}, White)

	inside := []image.Point{{10, 10}, {109, 59}, {60, 35}}
	for _, p := range inside {
		if got := img.RGBAAt(p.X, p.Y); got.R != 255 || got.G != 0 || got.B != 0 {
			t.Errorf("pixel %v = %+v, want red", p, got)
		}
	}
	outside := []image.Point{{9, 10}, {110, 59}, {0, 0}, {799, 599}}
	for _, p := range outside {
		if got := img.RGBAAt(p.X, p.Y); got.R != 255 || got.G != 255 || got.B != 255 {
			t.Errorf("pixel %v = %+v, want clear color (white)", p, got)
		}
	}
}

func TestPaintLaterCommandsOverwrite(t *testing.T) {
	list := DisplayList{
		{Rect: Rect{0, 0, 20, 20}, Color: Red},
		{Rect: Rect{5, 5, 10, 10}, Color: Blue},
	}
	img := Paint(list, Rect{Width: 20, Height: 20}, White)

	if got := img.RGBAAt(10, 10); got.B != 255 || got.R != 0 {
		t.Errorf("overlap pixel = %+v, want blue (later command wins)", got)
	}
	if got := img.RGBAAt(1, 1); got.R != 255 || got.B != 0 {
		t.Errorf("non-overlap pixel = %+v, want red", got)
	}
}

func TestPaintCompositesTranslucent(t *testing.T) {
	// Half-transparent white over opaque red blends source-over: the result
	// is an opaque pink, the same pixel the GPU's premultiplied blend and
	// the PDF's alpha graphics state produce.
	list := DisplayList{
		{Rect: Rect{0, 0, 4, 4}, Color: Red},
		{Rect: Rect{0, 0, 4, 4}, Color: RGBA{R: 1, G: 1, B: 1, A: 0.5}},
	}
	img := Paint(list, Rect{Width: 4, Height: 4}, White)

	got := img.RGBAAt(2, 2)
	if got.A != 255 {
		t.Errorf("blended pixel alpha = %d, want 255 (opaque dst stays opaque)", got.A)
	}
	if got.R != 255 || got.G != 127 || got.B != 127 {
		t.Errorf("blended pixel = %+v, want {255 127 127 255}", got)
	}
}

func TestPaintTransparentCommandIsNoop(t *testing.T) {
	list := DisplayList{{Rect: Rect{0, 0, 4, 4}, Color: Transparent}}
	img := Paint(list, Rect{Width: 4, Height: 4}, Red)
	if got := img.RGBAAt(1, 1); got.R != 255 || got.G != 0 {
		t.Errorf("pixel = %+v, want untouched red", got)
	}
}

func TestPaintClipsToCanvas(t *testing.T) {
	// Commands straddling the canvas are clipped, not an error.
	list := DisplayList{{Rect: Rect{-5, -5, 10, 10}, Color: Black}}
	img := Paint(list, Rect{Width: 8, Height: 8}, White)
	if got := img.RGBAAt(4, 4); got.R != 0 {
		t.Errorf("pixel (4,4) = %+v, want black", got)
	}
	if got := img.RGBAAt(6, 6); got.R != 255 {
		t.Errorf("pixel (6,6) = %+v, want white", got)
	}
}

func TestPaintMatchesDisplayListBuild(t *testing.T) {
	// End to end: layout tree → display list → reference painter.
	child := blockBox(Rect{20, 20, 40, 40}, Style{Background: Blue}, EdgeSizes{})
	root := blockBox(Rect{0, 0, 100, 100}, Style{Background: Red}, EdgeSizes{}, child)
	viewport := Rect{Width: 100, Height: 100}

	img := Paint(BuildDisplayList(&root, viewport), viewport, White)
	if got := img.RGBAAt(30, 30); got.B != 255 {
		t.Errorf("child area = %+v, want blue on top", got)
	}
	if got := img.RGBAAt(5, 5); got.R != 255 || got.B != 0 {
		t.Errorf("parent area = %+v, want red", got)
	}
}
