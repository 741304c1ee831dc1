// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/novage/novage"
	"github.com/novage/novage/render"
)

// defaultCircleSegments matches the software renderer's polygon
// resolution for callers that pass fewer than 3 segments.
const defaultCircleSegments = 32

type cmdKind uint8

const (
	cmdFilledRect cmdKind = iota
	cmdFilledCircle
	cmdLine
)

// command is one accumulated primitive in render-space coordinates.
type command struct {
	kind     cmdKind
	v        [5]float32
	segments int
	color    novage.RGBA
}

// Renderer executes batched primitives on the GPU. Commands accumulate
// on the CPU and are tessellated, drawn into an offscreen BGRA8 color
// texture, and read back into the CPU pixel target on flush.
//
// The whole frame is a single render pass with LoadOpClear, so one
// flush per frame is expected; the clear color is whatever the last
// Clear call set.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	target *render.PixmapTarget
	batch  *gpuBatch

	width, height uint32
	clearColor    novage.RGBA

	// Pipeline objects, created lazily on first flush.
	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	colorTex  hal.Texture
	colorView hal.TextureView

	frameOpen bool
	closed    bool
	stats     render.BatchStats
}

func newRenderer(device hal.Device, queue hal.Queue, width, height int) (*Renderer, error) {
	r := &Renderer{
		device: device,
		queue:  queue,
		target: render.NewPixmapTarget(width, height),
		width:  uint32(width),
		height: uint32(height),
	}
	r.batch = &gpuBatch{r: r}
	return r, nil
}

// BeginFrame opens a frame.
func (r *Renderer) BeginFrame() error {
	if r.closed {
		return render.ErrRendererClosed
	}
	if r.frameOpen {
		return render.ErrFrameAlreadyOpen
	}
	r.frameOpen = true
	return nil
}

// EndFrame closes the current frame.
func (r *Renderer) EndFrame() error {
	if r.closed {
		return render.ErrRendererClosed
	}
	if !r.frameOpen {
		return render.ErrFrameNotOpen
	}
	r.frameOpen = false
	return nil
}

// Clear records the frame clear color and fills the CPU target
// immediately so reads between Clear and the next flush see it.
func (r *Renderer) Clear(c novage.RGBA) error {
	if r.closed {
		return render.ErrRendererClosed
	}
	r.clearColor = c
	r.target.FillUniform(c.Color())
	return nil
}

// Batch returns the renderer's command batch.
func (r *Renderer) Batch() render.Batch { return r.batch }

// Target returns the CPU pixel target holding the last flushed frame.
func (r *Renderer) Target() render.RenderTarget { return r.target }

// Stats returns a snapshot of accumulated batch statistics.
func (r *Renderer) Stats() render.BatchStats { return r.stats }

// Close releases all GPU resources. Further calls return
// ErrRendererClosed.
func (r *Renderer) Close() error {
	if r.closed {
		return render.ErrRendererClosed
	}
	r.closed = true
	r.batch.cmds = nil
	r.destroyPipeline()
	r.destroyTexture()
	return nil
}

// gpuBatch accumulates commands for Renderer.
type gpuBatch struct {
	r    *Renderer
	cmds []command
	open bool
}

func (b *gpuBatch) Begin() error {
	if b.r.closed {
		return render.ErrRendererClosed
	}
	if b.open {
		return render.ErrBatchAlreadyOpen
	}
	b.open = true
	return nil
}

func (b *gpuBatch) append(cmd command) error {
	if b.r.closed {
		return render.ErrRendererClosed
	}
	if !b.open {
		return render.ErrBatchNotOpen
	}
	b.cmds = append(b.cmds, cmd)
	b.r.stats.PrimitivesBatched++
	return nil
}

func (b *gpuBatch) AppendFilledRect(x, y, w, h float32, c novage.RGBA) error {
	return b.append(command{kind: cmdFilledRect, v: [5]float32{x, y, w, h}, color: c})
}

func (b *gpuBatch) AppendFilledCircle(cx, cy, r float32, segments int, c novage.RGBA) error {
	if segments < 3 {
		segments = defaultCircleSegments
	}
	return b.append(command{kind: cmdFilledCircle, v: [5]float32{cx, cy, r}, segments: segments, color: c})
}

func (b *gpuBatch) AppendLine(x0, y0, x1, y1, thickness float32, c novage.RGBA) error {
	return b.append(command{kind: cmdLine, v: [5]float32{x0, y0, x1, y1, thickness}, color: c})
}

func (b *gpuBatch) End() error {
	if b.r.closed {
		return render.ErrRendererClosed
	}
	if !b.open {
		return render.ErrBatchNotOpen
	}
	b.open = false
	return nil
}

// Flush tessellates and submits all accumulated commands as one draw
// call, waits for the GPU, and reads the frame back into the CPU
// target. Empty batches count as a flush but submit nothing.
func (b *gpuBatch) Flush() error {
	if b.r.closed {
		return render.ErrRendererClosed
	}
	if b.open {
		return render.ErrBatchAlreadyOpen
	}
	b.r.stats.BatchesFlushed++
	if len(b.cmds) == 0 {
		return nil
	}
	if err := b.r.flush(b.cmds); err != nil {
		return err
	}
	b.r.stats.DrawCalls++
	b.cmds = b.cmds[:0]
	return nil
}

func (b *gpuBatch) Len() int { return len(b.cmds) }

// flush executes one render pass over the accumulated commands and
// reads the color texture back into the pixel target.
func (r *Renderer) flush(cmds []command) error {
	if err := r.ensurePipeline(); err != nil {
		return err
	}
	if err := r.ensureTexture(); err != nil {
		return err
	}

	vertexData := tessellate(cmds)
	vertexCount := uint32(len(vertexData) / vertexStride)

	vertBuf, err := r.createAndUploadBuffer("novage_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer r.device.DestroyBuffer(vertBuf)

	uniformBuf, err := r.createAndUploadBuffer("novage_uniform", makeViewportUniform(r.width, r.height),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer r.device.DestroyBuffer(uniformBuf)

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "novage_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: viewportUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	defer r.device.DestroyBindGroup(bindGroup)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "novage_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("novage_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	// Premultiplied clear to match the blend state.
	cc := r.clearColor
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "novage_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.colorView,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: cc.R * cc.A, G: cc.G * cc.A, B: cc.B * cc.A, A: cc.A},
		}},
	})
	rp.SetPipeline(r.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.Draw(vertexCount, 1, 0, 0)
	rp.End()

	// CopyTextureToBuffer needs the texture in copy-source usage.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	// Readback rows must be 256-byte aligned.
	bytesPerRow := r.width * 4
	const copyPitchAlignment = 256
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(r.height)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "novage_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.colorTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: r.height},
		TextureBase:  hal.ImageCopyTexture{Texture: r.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
	}})

	// Return to render-attachment usage for the next frame's pass.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("wgpu: readback: %w", err)
	}

	r.copyToTarget(readback, alignedBytesPerRow)
	return nil
}

// copyToTarget strips row padding and converts BGRA to RGBA into the
// pixel target. Texture row 0 is the top of the frame, matching the
// image row convention.
func (r *Renderer) copyToTarget(readback []byte, alignedBytesPerRow uint32) {
	pix := r.target.Pixels()
	stride := r.target.Stride()
	for row := uint32(0); row < r.height; row++ {
		src := readback[row*alignedBytesPerRow:]
		dst := pix[int(row)*stride:]
		for x := uint32(0); x < r.width; x++ {
			o := x * 4
			dst[o] = src[o+2]
			dst[o+1] = src[o+1]
			dst[o+2] = src[o]
			dst[o+3] = src[o+3]
		}
	}
}

func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// ensurePipeline compiles the shader and creates the render pipeline if
// they don't already exist.
func (r *Renderer) ensurePipeline() error {
	if r.pipeline != nil {
		return nil
	}

	shader, err := createShaderModule(r.device, "novage_shader")
	if err != nil {
		return err
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "novage_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "novage_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "novage_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: vertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
					},
				},
			},
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
		return fmt.Errorf("wgpu: create pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

// ensureTexture creates the offscreen color texture if it doesn't
// already exist.
func (r *Renderer) ensureTexture() error {
	if r.colorTex != nil {
		return nil
	}

	colorTex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "novage_color",
		Size:          hal.Extent3D{Width: r.width, Height: r.height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color texture: %w", err)
	}
	r.colorTex = colorTex

	colorView, err := r.device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: "novage_color_view",
	})
	if err != nil {
		r.destroyTexture()
		return fmt.Errorf("wgpu: create color view: %w", err)
	}
	r.colorView = colorView
	return nil
}

// destroyPipeline releases pipeline resources in reverse creation order.
func (r *Renderer) destroyPipeline() {
	if r.device == nil {
		return
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
}

func (r *Renderer) destroyTexture() {
	if r.device == nil {
		return
	}
	if r.colorView != nil {
		r.device.DestroyTextureView(r.colorView)
		r.colorView = nil
	}
	if r.colorTex != nil {
		r.device.DestroyTexture(r.colorTex)
		r.colorTex = nil
	}
}

var (
	_ render.Renderer      = (*Renderer)(nil)
	_ render.StatsReporter = (*Renderer)(nil)
	_ render.Batch         = (*gpuBatch)(nil)
)
