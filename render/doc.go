// Package render draws display lists with the GPU via gogpu/wgpu.
//
// The renderer owns one shader pipeline for solid rectangles: a vertex stage
// that applies a 4x4 pixel-to-NDC projection, and a fragment stage that
// outputs the interpolated vertex color. Every display command is expanded
// into two triangles and the whole frame is issued as a single batched draw
// call. There is no depth buffer; occlusion comes from painter's-algorithm
// ordering, which the GPU command stream preserves exactly.
//
// Rendering targets either a window surface view (the window package hands
// one over per frame) or an offscreen texture with CPU readback, which backs
// the framebuffer export strategy and headless operation.
package render
