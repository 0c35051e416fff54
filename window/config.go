package window

import "github.com/gogpu/pane"

// Config holds window parameters. Construct with DefaultConfig and adjust
// with the With methods; the zero value is not usable.
type Config struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial viewport size in pixels.
	Width, Height int
	// ClearColor paints the parts of the frame no display command covers.
	ClearColor pane.RGBA
	// ExportPath is where the P key writes the PDF snapshot.
	ExportPath string
}

// DefaultConfig returns the standard configuration: an 800x600 window with
// a white background, exporting to "snapshot.pdf" in the working directory.
func DefaultConfig() Config {
	return Config{
		Title:      "pane",
		Width:      800,
		Height:     600,
		ClearColor: pane.White,
		ExportPath: "snapshot.pdf",
	}
}

// WithTitle sets the window title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize sets the initial viewport size in pixels.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithClearColor sets the frame clear color.
func (c Config) WithClearColor(color pane.RGBA) Config {
	c.ClearColor = color
	return c
}

// WithExportPath sets the PDF snapshot destination.
func (c Config) WithExportPath(path string) Config {
	c.ExportPath = path
	return c
}
