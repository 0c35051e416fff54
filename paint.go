package pane

import "image"

// Paint rasterizes a display list into an RGBA image on the CPU.
//
// It is the reference implementation of the painter's algorithm: the canvas
// is filled with the clear color, then each command is composited source-over
// onto its rectangle in list order. Opaque commands replace the pixels
// beneath them; translucent commands blend with premultiplied alpha, exactly
// as the GPU pipeline's blend state does.
//
// Paint backs the headless PNG output and serves as the golden reference
// for renderer tests. Width and height are derived from the viewport.
func Paint(list DisplayList, viewport Rect, clear RGBA) *image.RGBA {
	w := int(viewport.Width)
	h := int(viewport.Height)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	fillRect(img, 0, 0, w, h, clear)
	for _, cmd := range list {
		// Clip to the canvas; the builder already clips to the viewport,
		// but the canvas may be smaller than the viewport it was built for.
		x0 := clampInt(int(cmd.Rect.X), 0, w)
		y0 := clampInt(int(cmd.Rect.Y), 0, h)
		x1 := clampInt(int(cmd.Rect.X+cmd.Rect.Width), 0, w)
		y1 := clampInt(int(cmd.Rect.Y+cmd.Rect.Height), 0, h)
		fillRect(img, x0, y0, x1-x0, y1-y0, cmd.Color)
	}
	return img
}

func fillRect(img *image.RGBA, x, y, w, h int, c RGBA) {
	if w <= 0 || h <= 0 || c.IsTransparent() {
		return
	}
	// image.RGBA stores premultiplied components, matching the GPU blend
	// state: out = src + dst*(1-srcAlpha).
	p := c.Premultiplied()
	pr := uint32(clamp255(p.R * 255))
	pg := uint32(clamp255(p.G * 255))
	pb := uint32(clamp255(p.B * 255))
	pa := uint32(clamp255(p.A * 255))

	if pa == 255 {
		for row := y; row < y+h; row++ {
			i := img.PixOffset(x, row)
			for col := 0; col < w; col++ {
				img.Pix[i+0] = uint8(pr)
				img.Pix[i+1] = uint8(pg)
				img.Pix[i+2] = uint8(pb)
				img.Pix[i+3] = 255
				i += 4
			}
		}
		return
	}

	inv := 255 - pa
	for row := y; row < y+h; row++ {
		i := img.PixOffset(x, row)
		for col := 0; col < w; col++ {
			img.Pix[i+0] = uint8(pr + uint32(img.Pix[i+0])*inv/255)
			img.Pix[i+1] = uint8(pg + uint32(img.Pix[i+1])*inv/255)
			img.Pix[i+2] = uint8(pb + uint32(img.Pix[i+2])*inv/255)
			img.Pix[i+3] = uint8(pa + uint32(img.Pix[i+3])*inv/255)
			i += 4
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
