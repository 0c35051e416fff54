// Package pane renders a tree of positioned, styled layout boxes to a
// GPU-backed window, and can snapshot the view to a PDF document.
//
// pane is the final, presentation stage of a toy web-rendering pipeline.
// The earlier stages (HTML parsing, CSS cascade, layout) are external: they
// hand this package a read-only [LayoutBox] tree whose rectangles are already
// resolved to pixel coordinates.
//
// # Pipeline
//
//	LayoutBox tree → BuildDisplayList → DisplayList → render.Renderer → surface
//
// [BuildDisplayList] flattens the box tree into an ordered list of solid
// rectangles in painter's order (background, border edges, then children).
// The render subpackage expands that list into a vertex buffer and draws it
// in a single batched GPU call; the window subpackage owns the event loop;
// the export subpackage replays the same list onto a PDF page.
//
// # Quick start
//
//	src := myLayoutSource{} // implements window.LayoutSource
//	win, err := window.New(window.DefaultConfig().WithTitle("pane"), src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := win.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Pressing P in the window exports the current view to a PDF at the
// configured path.
package pane
