package window

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/pane"
	"github.com/gogpu/pane/export"
	"github.com/gogpu/pane/render"
)

// LayoutSource is the boundary to the external layout stage. Layout is
// called once per dirty frame with the current viewport and must return a
// tree that stays immutable until the next call; pane never mutates it.
// Returning nil means "nothing to paint" and yields a frame of clear color.
type LayoutSource interface {
	Layout(viewport pane.Rect) *pane.LayoutBox
}

// LayoutFunc adapts a plain function to the LayoutSource interface.
type LayoutFunc func(viewport pane.Rect) *pane.LayoutBox

// Layout implements LayoutSource.
func (f LayoutFunc) Layout(viewport pane.Rect) *pane.LayoutBox { return f(viewport) }

// ErrNilSource is returned by New when no layout source is given.
var ErrNilSource = errors.New("window: nil layout source")

// Window drives the render loop for one presentation surface. It owns the
// GPU context, the renderer, and the current frame's display list. All
// callbacks run on the event loop; Window is not safe for concurrent use
// except for MarkDirty and RequestExport, which any goroutine may call.
type Window struct {
	config Config
	source LayoutSource

	dev      *render.Device
	renderer *render.Renderer

	// Current frame state, owned by the loop.
	list          pane.DisplayList
	width, height int

	dirty         atomic.Bool
	exportPending atomic.Bool

	// mu guards app and wakeToken: wake may run on any goroutine while the
	// loop stops the token in onDraw.
	mu        sync.Mutex
	app       *gogpu.App
	wakeToken *gogpu.AnimationToken

	// runErr holds the first fatal loop error; Run returns it after the
	// app quits. Written only on the loop goroutine.
	runErr error

	// surfaceRetried records that the one transparent surface recreation
	// has been spent.
	surfaceRetried bool
}

// New creates a window that presents the given layout source.
func New(config Config, source LayoutSource) (*Window, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	w := &Window{config: config, source: source}
	w.dirty.Store(true)
	return w, nil
}

// MarkDirty tells the window the layout changed. The next frame re-queries
// the layout source and rebuilds the display list; without it, redraws
// (expose, resize with unchanged size) reuse the cached list. Safe to call
// from any goroutine.
func (w *Window) MarkDirty() {
	w.dirty.Store(true)
	w.wake()
}

// RequestExport queues a PDF snapshot as if the export key had been
// pressed. The snapshot is written after the next frame completes.
func (w *Window) RequestExport() {
	w.exportPending.Store(true)
	w.wake()
}

// wake schedules one frame in the event-driven app. A short-lived animation
// token is the gogpu way to force a redraw; it is stopped in onDraw.
func (w *Window) wake() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.app == nil || w.wakeToken != nil {
		return
	}
	w.wakeToken = w.app.StartAnimation()
}

// stopWake releases the pending wake token, if any.
func (w *Window) stopWake() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.wakeToken != nil {
		w.wakeToken.Stop()
		w.wakeToken = nil
	}
}

// fail records the first fatal loop error and quits the app so Run can
// return it.
func (w *Window) fail(err error) {
	if w.runErr == nil {
		w.runErr = err
	}
	w.mu.Lock()
	app := w.app
	w.mu.Unlock()
	if app != nil {
		app.Quit()
	}
}

// Run opens the window and blocks in the event loop until it is closed.
// It returns nil on a clean close, and the first fatal error otherwise:
// GPU or pipeline initialization failure, or a render failure that survived
// the surface recreation retry.
func (w *Window) Run() error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(w.config.Title).
		WithSize(w.config.Width, w.config.Height).
		WithContinuousRender(false)) // block in event wait; render only when dirty
	w.mu.Lock()
	w.app = app
	w.mu.Unlock()

	app.OnDraw(w.onDraw)

	app.EventSource().OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key != gpucontext.KeyP {
			return
		}
		w.RequestExport()
	})

	app.OnClose(func() {
		// In-flight submissions have completed: the renderer waits on a
		// fence per frame, so teardown here never aborts a draw.
		if w.renderer != nil {
			w.renderer.Destroy()
			w.renderer = nil
		}
		if w.dev != nil {
			w.dev.Close()
			w.dev = nil
		}
	})

	if err := app.Run(); err != nil {
		return err
	}
	return w.runErr
}

// onDraw runs once per frame the app deems necessary: after a resize, an
// expose, or a wake. It performs the layout → display list → render pass
// and then services a queued export.
func (w *Window) onDraw(dc *gogpu.Context) {
	w.stopWake()

	width, height := dc.Width(), dc.Height()
	if width <= 0 || height <= 0 {
		return
	}

	if w.renderer == nil && !w.initRenderer(dc) {
		return
	}

	// A resize dirties the frame: the projection and the layout both depend
	// on the viewport.
	if width != w.width || height != w.height {
		w.width, w.height = width, height
		w.dirty.Store(true)
	}

	viewport := pane.Rect{Width: float32(width), Height: float32(height)}
	if w.dirty.Swap(false) {
		root := w.source.Layout(viewport)
		w.list = pane.BuildDisplayList(root, viewport)
		pane.Logger().Debug("display list rebuilt", "commands", len(w.list))
	}

	if err := w.renderer.Render(dc.SurfaceView(), w.list, width, height, w.config.ClearColor); err != nil {
		w.handleRenderError(dc, err)
		return
	}
	w.surfaceRetried = false

	// Export was queued mid-frame: the submission above has completed
	// (fence wait), so writing the snapshot now never interleaves with it.
	if w.exportPending.Swap(false) {
		w.exportSnapshot(viewport)
	}
}

// initRenderer builds the renderer on the app's shared GPU device. Returns
// false while the provider is not available yet (first frames of startup)
// and on fatal init failure, which quits the loop via fail.
func (w *Window) initRenderer(dc *gogpu.Context) bool {
	provider := w.app.GPUContextProvider()
	if provider == nil {
		return false
	}
	dev, err := render.FromProvider(provider)
	if err != nil {
		// No shared device means no way to draw anything, ever.
		w.fail(fmt.Errorf("GPU context unavailable: %w", err))
		return false
	}
	renderer, err := render.NewRenderer(dev)
	if err != nil {
		w.fail(fmt.Errorf("renderer init: %w", err))
		return false
	}
	w.dev = dev
	w.renderer = renderer
	pane.Logger().Info("renderer ready", "backend", dc.Backend())
	return true
}

// handleRenderError implements the surface-lost policy: one transparent
// recreation of the renderer, then the loop quits with the error.
func (w *Window) handleRenderError(dc *gogpu.Context, err error) {
	if !errors.Is(err, render.ErrSurfaceLost) || w.surfaceRetried {
		w.fail(err)
		return
	}
	pane.Logger().Warn("surface lost, recreating renderer", "err", err)
	w.surfaceRetried = true

	w.renderer.Destroy()
	w.renderer = nil
	if !w.initRenderer(dc) {
		w.fail(fmt.Errorf("surface recreation: %w", err))
		return
	}
	if err := w.renderer.Render(dc.SurfaceView(), w.list, w.width, w.height, w.config.ClearColor); err != nil {
		w.fail(fmt.Errorf("after surface recreation: %w", err))
		return
	}
	w.surfaceRetried = false
}

// exportSnapshot replays the current display list onto a PDF page. Export
// failure is a warning, not a reason to stop the loop.
func (w *Window) exportSnapshot(viewport pane.Rect) {
	err := export.DisplayList(w.list, viewport, w.config.ClearColor, w.config.ExportPath)
	if err != nil {
		pane.Logger().Warn("snapshot export failed", "path", w.config.ExportPath, "err", err)
		return
	}
	pane.Logger().Info("snapshot written", "path", w.config.ExportPath)
}
