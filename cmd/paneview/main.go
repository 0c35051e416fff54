// Command paneview presents a demo layout tree in a GPU window.
//
// Press P to export the current view to a PDF. With -headless the demo is
// rendered without a window straight to a PDF (vector replay) or PNG
// (CPU reference painter), matching the pipeline's original file-output
// mode. Adding -raster renders the headless frame on the GPU offscreen and
// embeds the readback instead of replaying vectors.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/pane"
	"github.com/gogpu/pane/export"
	"github.com/gogpu/pane/render"
	"github.com/gogpu/pane/window"
)

func main() {
	var (
		width      = flag.Int("width", 800, "viewport width in pixels")
		height     = flag.Int("height", 600, "viewport height in pixels")
		exportPath = flag.String("export", "snapshot.pdf", "PDF path for the P key")
		headless   = flag.Bool("headless", false, "render to -o without opening a window")
		output     = flag.String("o", "output.pdf", "headless output file (.pdf or .png)")
		raster     = flag.Bool("raster", false, "headless: render on the GPU and embed the framebuffer")
		verbose    = flag.Bool("v", false, "enable info logging to stderr")
	)
	flag.Parse()

	if *verbose {
		pane.SetLogger(slog.Default())
	}

	if *headless {
		runHeadless(*width, *height, *output, *raster)
		return
	}

	cfg := window.DefaultConfig().
		WithTitle("paneview").
		WithSize(*width, *height).
		WithExportPath(*exportPath)

	win, err := window.New(cfg, window.LayoutFunc(demoLayout))
	if err != nil {
		log.Fatal(err)
	}
	if err := win.Run(); err != nil {
		log.Fatal(err)
	}
}

// runHeadless renders the demo layout once at the given size and writes it
// to a file. PNG output and the default PDF path use the CPU painter and the
// vector replay, no GPU required; -raster renders offscreen on the GPU and
// embeds the framebuffer readback.
func runHeadless(width, height int, output string, raster bool) {
	viewport := pane.Rect{Width: float32(width), Height: float32(height)}
	list := pane.BuildDisplayList(demoLayout(viewport), viewport)

	var err error
	switch {
	case raster:
		err = exportRaster(list, viewport, width, height, output)
	case strings.HasSuffix(output, ".png"):
		err = writePNG(pane.Paint(list, viewport, pane.White), output)
	default:
		err = export.DisplayList(list, viewport, pane.White, output)
	}
	if err != nil {
		log.Fatalf("headless render failed: %v", err)
	}
	log.Printf("wrote %s (%dx%d, %d commands)", output, width, height, len(list))
}

// exportRaster draws the list into an offscreen GPU texture, reads the frame
// back, and embeds it in the PDF.
func exportRaster(list pane.DisplayList, viewport pane.Rect, width, height int, output string) error {
	dev, err := render.Open()
	if err != nil {
		return err
	}
	defer dev.Close()

	renderer, err := render.NewRenderer(dev)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	img, err := renderer.RenderOffscreen(list, width, height, pane.White)
	if err != nil {
		return err
	}
	return export.Framebuffer(img, viewport, output)
}

func writePNG(img image.Image, output string) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// demoLayout builds a small hard-coded box tree: a page body with a header,
// three content rows in stepped hues, and a bordered footer. It stands in
// for the external layout stage.
func demoLayout(viewport pane.Rect) *pane.LayoutBox {
	const (
		margin  = 24
		rowGap  = 16
		rows    = 3
		rowH    = 90
		headerH = 60
		footerH = 40
	)
	contentW := viewport.Width - 2*margin

	body := &pane.LayoutBox{
		Kind: pane.BoxBlock,
		Dimensions: pane.Dimensions{
			Content: pane.Rect{X: margin, Y: margin, Width: contentW, Height: viewport.Height - 2*margin},
		},
		Style: pane.Style{Background: pane.Hex("#f4f4f0")},
	}

	y := float32(margin) + rowGap
	header := pane.LayoutBox{
		Kind: pane.BoxBlock,
		Dimensions: pane.Dimensions{
			Content: pane.Rect{X: margin + rowGap, Y: y, Width: contentW - 2*rowGap, Height: headerH},
			Border:  pane.EdgeSizes{Left: 4, Right: 4, Top: 4, Bottom: 4},
		},
		Style: pane.Style{
			Background:  pane.Hex("#2d3142"),
			BorderColor: pane.Hex("#ef8354"),
		},
	}
	body.Children = append(body.Children, header)
	y += headerH + rowGap

	for i := 0; i < rows; i++ {
		hue := 360 * float64(i) / rows
		fill := colorful.Hsv(hue, 0.45, 0.92)
		edge := colorful.Hsv(hue, 0.65, 0.55)
		row := pane.LayoutBox{
			Kind: pane.BoxBlock,
			Dimensions: pane.Dimensions{
				Content: pane.Rect{X: margin + rowGap, Y: y, Width: contentW - 2*rowGap, Height: rowH},
				Border:  pane.EdgeSizes{Left: 2, Right: 2, Top: 2, Bottom: 2},
			},
			Style: pane.Style{
				Background:  pane.RGB(fill.R, fill.G, fill.B),
				BorderColor: pane.RGB(edge.R, edge.G, edge.B),
			},
		}
		// Nested block showing the painter's order: the child overlaps and
		// paints after its parent.
		row.Children = append(row.Children, pane.LayoutBox{
			Kind: pane.BoxBlock,
			Dimensions: pane.Dimensions{
				Content: pane.Rect{X: margin + 2*rowGap, Y: y + 12, Width: (contentW - 4*rowGap) / 3, Height: rowH - 24},
			},
			Style: pane.Style{Background: pane.RGBA{R: 1, G: 1, B: 1, A: 0.65}},
		})
		body.Children = append(body.Children, row)
		y += rowH + rowGap
	}

	body.Children = append(body.Children, pane.LayoutBox{
		Kind: pane.BoxBlock,
		Dimensions: pane.Dimensions{
			Content: pane.Rect{X: margin + rowGap, Y: y, Width: contentW - 2*rowGap, Height: footerH},
			Border:  pane.EdgeSizes{Top: 3},
		},
		Style: pane.Style{
			Background:  pane.Transparent,
			BorderColor: pane.Hex("#2d3142"),
		},
	})

	return body
}
