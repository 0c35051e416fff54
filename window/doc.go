// Package window owns the presentation surface and the event loop.
//
// A Window wraps a gogpu application in event-driven mode: the loop blocks
// until the system delivers an event, so idle CPU usage is near zero. Each
// dirty frame runs exactly one pass of layout snapshot → display list →
// GPU render before the next event is polled. Pressing the export key (P)
// queues a PDF snapshot that is written after the current frame's GPU
// submission completes, never interleaved with it.
//
// The loop is the sole owner of the GPU context and the frame's display
// list; no other goroutine touches GPU state.
package window
