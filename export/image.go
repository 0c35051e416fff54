package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"codeberg.org/go-pdf/fpdf"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/pane"
)

// Framebuffer embeds an already-rendered frame as a full-page lossless PNG
// in a PDF sized to the viewport, and writes the document to path.
//
// The framebuffer may be larger than the logical viewport (HiDPI surfaces
// render at the physical pixel size); in that case it is resampled to the
// viewport's pixel dimensions before embedding, so the page always matches
// the viewport at the fixed PageScale.
func Framebuffer(img image.Image, viewport pane.Rect, path string) error {
	vw, vh := int(viewport.Width), int(viewport.Height)
	if vw <= 0 || vh <= 0 {
		return fmt.Errorf("%w: empty viewport", ErrEncode)
	}
	if img == nil {
		return fmt.Errorf("%w: nil framebuffer", ErrEncode)
	}

	if b := img.Bounds(); b.Dx() != vw || b.Dy() != vh {
		scaled := image.NewNRGBA(image.Rect(0, 0, vw, vh))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: png: %w", ErrEncode, err)
	}

	pdf, pageW, pageH := newPage(viewport)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("frame", opts, &buf)
	pdf.ImageOptions("frame", 0, 0, pageW, pageH, false, opts, 0, "")

	return write(pdf, path)
}
