package export

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/pane"
)

var testViewport = pane.Rect{Width: 800, Height: 600}

func readPDF(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatalf("output does not start with a PDF header")
	}
	return string(data)
}

// contentStreams inflates every zlib stream in the document and returns the
// concatenated page content, so tests can assert on the emitted operators.
func contentStreams(t *testing.T, doc string) string {
	t.Helper()
	var out strings.Builder
	rest := []byte(doc)
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}
		raw := bytes.TrimSuffix(rest[:j], []byte("\n"))
		rest = rest[j:]

		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			continue // not a page content stream
		}
		inflated, err := io.ReadAll(zr)
		zr.Close()
		if err != nil {
			continue
		}
		out.Write(inflated)
	}
	if out.Len() == 0 {
		t.Fatal("document contains no inflatable content stream")
	}
	return out.String()
}

func TestDisplayListWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.pdf")
	list := pane.DisplayList{
		{Rect: pane.Rect{X: 10, Y: 10, Width: 100, Height: 50}, Color: pane.Red},
		{Rect: pane.Rect{X: 40, Y: 20, Width: 60, Height: 60}, Color: pane.Blue},
	}

	if err := DisplayList(list, testViewport, pane.White, path); err != nil {
		t.Fatalf("DisplayList() error: %v", err)
	}
	readPDF(t, path)
}

func TestDisplayListPageSize(t *testing.T) {
	// 800x600 px at 0.75 pt/px gives a 600x450 pt page.
	path := filepath.Join(t.TempDir(), "page.pdf")
	if err := DisplayList(nil, testViewport, pane.White, path); err != nil {
		t.Fatalf("DisplayList() error: %v", err)
	}

	doc := readPDF(t, path)
	if !strings.Contains(doc, "/MediaBox [0 0 600.00 450.00]") {
		t.Error("page MediaBox is not 600x450 pt")
	}
}

func TestDisplayListRectFidelity(t *testing.T) {
	// A red rect at (10,10) 100x50 px on an 800x600 white page must come
	// through as the exact PDF fill operators: 0.75 pt/px scale, y flipped
	// to the PDF's bottom-left origin, colors carried without conversion.
	path := filepath.Join(t.TempDir(), "fidelity.pdf")
	list := pane.DisplayList{
		{Rect: pane.Rect{X: 10, Y: 10, Width: 100, Height: 50}, Color: pane.Red},
	}
	if err := DisplayList(list, testViewport, pane.White, path); err != nil {
		t.Fatalf("DisplayList() error: %v", err)
	}

	content := contentStreams(t, readPDF(t, path))
	checks := []struct {
		name string
		want string
	}{
		{"clear fill color (white, grayscale operator)", "1.000 g"},
		{"clear fill covers the page", "0.00 450.00 600.00 -450.00 re f"},
		{"rect fill color (red)", "1.000 0.000 0.000 rg"},
		{"rect geometry scaled and flipped", "7.50 442.50 75.00 -37.50 re f"},
	}
	for _, c := range checks {
		if !strings.Contains(content, c.want) {
			t.Errorf("%s: content stream does not contain %q", c.name, c.want)
		}
	}

	// The clear fill paints before the rect.
	if strings.Index(content, "0.00 450.00") > strings.Index(content, "7.50 442.50") {
		t.Error("rect painted before the page background")
	}
}

func TestDisplayListEmptyList(t *testing.T) {
	// No commands still yields a valid single-page document filled with the
	// clear color.
	path := filepath.Join(t.TempDir(), "blank.pdf")
	if err := DisplayList(nil, testViewport, pane.White, path); err != nil {
		t.Fatalf("DisplayList() error: %v", err)
	}
	readPDF(t, path)
}

func TestDisplayListSkipsDegenerateRects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "degenerate.pdf")
	list := pane.DisplayList{
		{Rect: pane.Rect{X: 5, Y: 5, Width: 0, Height: 40}, Color: pane.Red},
	}
	if err := DisplayList(list, testViewport, pane.White, path); err != nil {
		t.Fatalf("DisplayList() error: %v", err)
	}
	readPDF(t, path)
}

func TestDisplayListUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "nested", "out.pdf")
	err := DisplayList(nil, testViewport, pane.White, path)
	if !errors.Is(err, ErrIO) {
		t.Errorf("DisplayList() error = %v, want ErrIO", err)
	}
}
