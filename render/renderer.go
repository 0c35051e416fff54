package render

import (
	_ "embed"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pane"
)

//go:embed shaders/rect.wgsl
var rectShaderSource string

// uniformSize is the byte size of the projection uniform buffer: one
// mat4x4<f32>.
const uniformSize = 64

// frameTimeout bounds the fence wait after each submit. A healthy frame
// completes in well under a millisecond; hitting this means the device is
// gone.
const frameTimeout = 5 * time.Second

// Renderer owns the solid-rectangle shader pipeline and the per-frame
// buffers. One Renderer serves one surface; it is not safe for concurrent
// use, matching the single-threaded ownership of the render loop.
//
// The pipeline is acquired once at construction and released by Destroy on
// every exit path. The vertex staging buffer and the GPU vertex buffer are
// reused across frames, growing only when a frame needs more room.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	vertBuf    hal.Buffer
	vertBufCap uint64

	staging []byte

	// Current viewport. The projection uniform is rewritten only when
	// these change.
	width, height uint32
}

// NewRenderer compiles the rect shader and builds the render pipeline on
// the given device. Any failure here is a fatal initialization error; the
// caller should abort startup before showing a window.
func NewRenderer(dev *Device) (*Renderer, error) {
	device, queue := dev.HAL()
	if device == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil device", ErrInit)
	}
	r := &Renderer{device: device, queue: queue}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	return r, nil
}

// createPipeline compiles the shader and creates the layouts, pipeline,
// uniform buffer, and bind group.
func (r *Renderer) createPipeline() error {
	if rectShaderSource == "" {
		return fmt.Errorf("rect shader source is empty")
	}

	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "rect_shader",
		Source: hal.ShaderSource{WGSL: rectShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile rect shader: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "rect_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "rect_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "rect_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    rectVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create rect pipeline: %w", err)
	}
	r.pipeline = pipeline

	uniformBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rect_uniform",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}
	r.uniformBuf = uniformBuf

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "rect_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	r.bindGroup = bindGroup

	return nil
}

// ensureViewport uploads a fresh projection matrix when the viewport size
// changed since the last frame.
func (r *Renderer) ensureViewport(w, h uint32) {
	if r.width == w && r.height == h {
		return
	}
	m := Projection(float32(w), float32(h))
	r.queue.WriteBuffer(r.uniformBuf, 0, projectionBytes(m))
	r.width = w
	r.height = h
	pane.Logger().Debug("projection updated", "width", w, "height", h)
}

// ensureVertexBuffer grows the persistent GPU vertex buffer to hold at
// least size bytes. The buffer doubles so steady-state frames allocate
// nothing.
func (r *Renderer) ensureVertexBuffer(size uint64) error {
	if r.vertBuf != nil && r.vertBufCap >= size {
		return nil
	}
	newCap := r.vertBufCap
	if newCap == 0 {
		newCap = 4096
	}
	for newCap < size {
		newCap *= 2
	}
	if r.vertBuf != nil {
		r.device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "rect_verts",
		Size:  newCap,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create vertex buffer: %w", err)
	}
	r.vertBuf = buf
	r.vertBufCap = newCap
	return nil
}

// Render draws a display list into a surface texture view. The view comes
// from the window's per-frame draw context; width and height are the current
// viewport in pixels. Draw order in the GPU command stream matches display
// list order exactly. An empty list still clears the frame.
//
// Submission failures are wrapped in ErrSurfaceLost so the window can
// recreate the surface once before giving up.
func (r *Renderer) Render(target any, list pane.DisplayList, width, height int, clear pane.RGBA) error {
	view, ok := target.(hal.TextureView)
	if !ok || view == nil {
		return ErrInvalidTarget
	}
	if err := r.renderToView(view, list, width, height, clear, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	}
	return nil
}

// RenderOffscreen draws a display list into a freshly created texture and
// reads the pixels back into an RGBA image. It backs the framebuffer export
// strategy and headless rendering; failures here are ordinary errors, not
// surface loss.
func (r *Renderer) RenderOffscreen(list pane.DisplayList, width, height int, clear pane.RGBA) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid offscreen size %dx%d", width, height)
	}
	w, h := uint32(width), uint32(height)

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "rect_offscreen",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create offscreen texture: %w", err)
	}
	defer r.device.DestroyTexture(tex)

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "rect_offscreen_view",
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create offscreen view: %w", err)
	}
	defer r.device.DestroyTextureView(view)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if err := r.renderToView(view, list, width, height, clear, &readback{tex: tex, img: img}); err != nil {
		return nil, err
	}
	return img, nil
}

// readback asks renderToView to copy the frame into img after drawing.
type readback struct {
	tex hal.Texture
	img *image.RGBA
}

// renderToView encodes one frame: optional vertex upload, a single render
// pass with one batched draw, optional readback, then submit and wait.
// In-flight work always completes before this returns, so teardown after a
// frame never aborts a draw call mid-flight.
func (r *Renderer) renderToView(view hal.TextureView, list pane.DisplayList, width, height int, clear pane.RGBA, rb *readback) error {
	w, h := uint32(max(width, 1)), uint32(max(height, 1))
	r.ensureViewport(w, h)

	var data []byte
	r.staging, data = buildRectVertices(list, r.staging)
	vertexCount := uint32(len(list) * vertsPerRect)
	if len(data) > 0 {
		if err := r.ensureVertexBuffer(uint64(len(data))); err != nil {
			return err
		}
		r.queue.WriteBuffer(r.vertBuf, 0, data)
	}
	pane.Logger().Debug("frame encoded", "commands", len(list), "vertices", vertexCount)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "rect_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rect_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	cc := clear.Premultiplied()
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "rect_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: cc.R, G: cc.G, B: cc.B, A: cc.A},
			},
		},
	})
	if vertexCount > 0 {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.vertBuf, 0)
		rp.Draw(vertexCount, 1, 0, 0)
	}
	rp.End()

	var stagingBuf hal.Buffer
	if rb != nil {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: rb.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})

		pixelBufSize := uint64(w) * uint64(h) * 4
		stagingBuf, err = r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "rect_readback",
			Size:  pixelBufSize,
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			encoder.DiscardEncoding()
			return fmt.Errorf("create readback buffer: %w", err)
		}
		defer r.device.DestroyBuffer(stagingBuf)

		encoder.CopyTextureToBuffer(rb.tex, stagingBuf, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: rb.tex, MipLevel: 0},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, frameTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	if rb != nil {
		raw := make([]byte, uint64(w)*uint64(h)*4)
		if err := r.queue.ReadBuffer(stagingBuf, 0, raw); err != nil {
			return fmt.Errorf("readback: %w", err)
		}
		bgraToRGBA(raw, rb.img.Pix)
	}
	return nil
}

// bgraToRGBA converts the BGRA8 readback bytes into the premultiplied RGBA
// layout of image.RGBA. The GPU blend state is premultiplied, so only the
// channel order changes.
func bgraToRGBA(src, dst []byte) {
	n := min(len(src), len(dst))
	for i := 0; i+3 < n; i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}

// Viewport returns the size the projection was last computed for.
func (r *Renderer) Viewport() (width, height int) {
	return int(r.width), int(r.height)
}

// Destroy releases all GPU resources in reverse creation order. Safe to
// call multiple times; the renderer must not be used afterward.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.vertBuf != nil {
		r.device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
		r.vertBufCap = 0
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	r.width, r.height = 0, 0
}

// rectVertexLayout returns the vertex buffer layout for the rect pipeline.
func rectVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}
