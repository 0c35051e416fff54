package window

import (
	"testing"

	"github.com/gogpu/pane"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Title != "pane" {
		t.Errorf("Title = %q, want %q", cfg.Title, "pane")
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.ClearColor != pane.White {
		t.Errorf("ClearColor = %+v, want white", cfg.ClearColor)
	}
	if cfg.ExportPath != "snapshot.pdf" {
		t.Errorf("ExportPath = %q, want %q", cfg.ExportPath, "snapshot.pdf")
	}
}

func TestConfigChaining(t *testing.T) {
	cfg := DefaultConfig().
		WithTitle("demo").
		WithSize(1024, 768).
		WithClearColor(pane.Black).
		WithExportPath("/tmp/out.pdf")

	if cfg.Title != "demo" {
		t.Errorf("Title = %q, want %q", cfg.Title, "demo")
	}
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}
	if cfg.ClearColor != pane.Black {
		t.Errorf("ClearColor = %+v, want black", cfg.ClearColor)
	}
	if cfg.ExportPath != "/tmp/out.pdf" {
		t.Errorf("ExportPath = %q, want %q", cfg.ExportPath, "/tmp/out.pdf")
	}
}

func TestConfigWithDoesNotMutate(t *testing.T) {
	base := DefaultConfig()
	_ = base.WithTitle("other").WithSize(1, 1)
	if base.Title != "pane" || base.Width != 800 {
		t.Error("With methods mutated the receiver")
	}
}
