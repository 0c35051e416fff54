// Package export writes PDF snapshots of the rendered view.
//
// Two strategies are supported. DisplayList replays the frame's paint
// commands as vector rectangles on a page sized to the viewport — the
// preferred path, since the result stays resolution independent.
// Framebuffer embeds an already-rendered frame as a full-page lossless
// image, for callers that only have pixels (e.g. a GPU readback).
//
// Page dimensions use a fixed scale of 0.75 points per pixel (96 px/inch
// mapped onto PDF's 72 pt/inch), so an 800x600 viewport becomes a 600x450 pt
// page. Colors are carried as 8-bit sRGB components with no conversion.
package export
