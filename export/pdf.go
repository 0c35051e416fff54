package export

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gogpu/pane"
)

// PageScale is the fixed conversion from viewport pixels to PDF points:
// 96 px per inch rendered onto PDF's 72 pt per inch.
const PageScale = 0.75

// DisplayList replays a display list as vector rectangles on a single PDF
// page sized to the viewport and writes the document to path.
//
// The page is first filled with the clear color, then one filled rectangle
// is emitted per command in list order, so the document stacks exactly like
// the rendered frame. An empty list produces a valid blank page.
func DisplayList(list pane.DisplayList, viewport pane.Rect, clear pane.RGBA, path string) error {
	pdf, _, _ := newPage(viewport)

	fillRect(pdf, pane.DisplayCommand{
		Rect:  pane.Rect{Width: viewport.Width, Height: viewport.Height},
		Color: clear,
	})
	for _, cmd := range list {
		fillRect(pdf, cmd)
	}

	return write(pdf, path)
}

func newPage(viewport pane.Rect) (pdf *fpdf.Fpdf, pageW, pageH float64) {
	pageW = float64(viewport.Width) * PageScale
	pageH = float64(viewport.Height) * PageScale
	pdf = fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.AddPage()
	return pdf, pageW, pageH
}

func fillRect(pdf *fpdf.Fpdf, cmd pane.DisplayCommand) {
	if cmd.Rect.IsEmpty() {
		return
	}
	r, g, b, a := cmd.Color.RGBA8()
	pdf.SetFillColor(int(r), int(g), int(b))
	pdf.SetAlpha(float64(a)/255, "Normal")
	pdf.Rect(
		float64(cmd.Rect.X)*PageScale,
		float64(cmd.Rect.Y)*PageScale,
		float64(cmd.Rect.Width)*PageScale,
		float64(cmd.Rect.Height)*PageScale,
		"F",
	)
}

func write(pdf *fpdf.Fpdf, path string) error {
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
